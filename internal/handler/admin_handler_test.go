package handler_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/dto"
	"github.com/logistics-backoffice/internal/testutil"
)

// adminClient входит суперпользователем
func adminClient(t *testing.T, env *testEnv) *client {
	t.Helper()
	testutil.CreateUser(t, env.db, "root", "secret", testutil.Superuser())
	c := env.client(t)
	c.mustLogin("root", "secret")
	return c
}

func TestAdminRequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice", "secret")

	anon := env.client(t)
	expectStatus(t, anon.get("/admin/"), http.StatusUnauthorized)

	c := env.client(t)
	c.mustLogin("alice", "secret")
	for _, path := range []string{"/admin/", "/admin/cargos/", "/admin/cargos/meta/", "/admin/users/positions/"} {
		resp := c.get(path)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
}

func TestAdminIndex(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	resp := c.get("/admin/")
	expectStatus(t, resp, http.StatusOK)
	assert.Equal(t, "uk", resp.Header.Get("Content-Language"))

	body := decode[dto.AdminIndexResponse](t, resp)
	assert.Equal(t, "Адміністрування", body.Title)
	require.Len(t, body.Models, 13)
	assert.Equal(t, "departments", body.Models[0].Slug)

	last := body.Models[12]
	assert.Equal(t, "cargos", last.Slug)
	assert.Equal(t, "Вантажі", last.NamePlural)
	assert.Equal(t, "/admin/cargos/", last.URL)
}

func TestAdminUnknownModel(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	expectStatus(t, c.get("/admin/ships/"), http.StatusNotFound)
	expectStatus(t, c.get("/admin/cargos/999/"), http.StatusNotFound)
	expectStatus(t, c.get("/admin/cargos/abc/"), http.StatusBadRequest)
}

func TestAdminStaffNeedsModelPermissions(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "clerk", "secret", testutil.Staff(), testutil.WithPermissions("admin.add_currency"))
	c := env.client(t)
	c.mustLogin("clerk", "secret")

	expectStatus(t, c.get("/admin/currencies/"), http.StatusOK)

	resp := c.send(http.MethodPost, "/admin/currencies/", map[string]any{"name": "Euro", "code": "EUR"})
	expectStatus(t, resp, http.StatusCreated)
	created := decode[map[string]any](t, resp)
	id := int64(created["id"].(float64))

	resp = c.send(http.MethodPost, "/admin/cargos/", map[string]any{"name_en": "Steel", "cargo_code": "7208"})
	expectStatus(t, resp, http.StatusForbidden)

	resp = c.send(http.MethodPut, fmt.Sprintf("/admin/currencies/%d/", id), map[string]any{"name": "Euro"})
	expectStatus(t, resp, http.StatusForbidden)

	resp = c.send(http.MethodDelete, fmt.Sprintf("/admin/currencies/%d/", id), nil)
	expectStatus(t, resp, http.StatusForbidden)
}

func TestAdminCargoDangerClassRules(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	danger := domain.DangerClass{ClassNumber: "3", Description: "Flammable liquids"}
	testutil.MustCreate(t, env.db, &danger)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"dangerous without class", map[string]any{"name_en": "Paint", "cargo_code": "3208", "is_dangerous": true}, http.StatusBadRequest},
		{"safe with class", map[string]any{"name_en": "Paint", "cargo_code": "3208", "is_dangerous": false, "danger_class_id": danger.ID}, http.StatusBadRequest},
		{"dangerous with class", map[string]any{"name_en": "Paint", "cargo_code": "3208", "is_dangerous": true, "danger_class_id": danger.ID}, http.StatusCreated},
		{"safe without class", map[string]any{"name_en": "Steel", "cargo_code": "7208", "is_dangerous": false}, http.StatusCreated},
		{"short cargo code", map[string]any{"name_en": "Steel", "cargo_code": "72", "is_dangerous": false}, http.StatusBadRequest},
		{"unknown danger class", map[string]any{"name_en": "Acid", "cargo_code": "2807", "is_dangerous": true, "danger_class_id": 999}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := c.send(http.MethodPost, "/admin/cargos/", tt.body)
			expectStatus(t, resp, tt.status)
			if tt.status == http.StatusBadRequest {
				assert.Equal(t, "помилка валідації", decode[dto.ErrorResponse](t, resp).Error)
			}
		})
	}

	var count int64
	env.db.Model(&domain.Cargo{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAdminCargoDangerClassRulesOnUpdate(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	danger := domain.DangerClass{ClassNumber: "3", Description: "Flammable liquids"}
	testutil.MustCreate(t, env.db, &danger)
	paint := domain.Cargo{NameEN: "Paint", CargoCode: "3208", IsDangerous: true, DangerClassID: &danger.ID}
	steel := domain.Cargo{NameEN: "Steel", CargoCode: "7208"}
	testutil.MustCreate(t, env.db, &paint, &steel)
	paintPath := fmt.Sprintf("/admin/cargos/%d/", paint.ID)

	resp := c.send(http.MethodPut, paintPath, map[string]any{"is_dangerous": false})
	expectStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "помилка валідації", decode[dto.ErrorResponse](t, resp).Error)

	resp = c.send(http.MethodPut, fmt.Sprintf("/admin/cargos/%d/", steel.ID), map[string]any{"is_dangerous": true})
	expectStatus(t, resp, http.StatusBadRequest)

	var stored domain.Cargo
	require.NoError(t, env.db.First(&stored, paint.ID).Error)
	assert.True(t, stored.IsDangerous)
	require.NotNil(t, stored.DangerClassID)

	resp = c.send(http.MethodPut, paintPath, map[string]any{"is_dangerous": false, "danger_class_id": nil})
	expectStatus(t, resp, http.StatusOK)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, false, body["is_dangerous"])
	assert.Nil(t, body["danger_class_id"])

	stored = domain.Cargo{}
	require.NoError(t, env.db.First(&stored, paint.ID).Error)
	assert.False(t, stored.IsDangerous)
	assert.Nil(t, stored.DangerClassID)
}

func TestAdminCRUD(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	resp := c.send(http.MethodPost, "/admin/incoterms/", map[string]any{"abbreviation": "FOB", "description": "Free On Board"})
	expectStatus(t, resp, http.StatusCreated)
	created := decode[map[string]any](t, resp)
	path := fmt.Sprintf("/admin/incoterms/%d/", int64(created["id"].(float64)))

	resp = c.send(http.MethodPut, path, map[string]any{"description": "Free on board vessel"})
	expectStatus(t, resp, http.StatusOK)
	updated := decode[map[string]any](t, resp)
	assert.Equal(t, "FOB", updated["abbreviation"])
	assert.Equal(t, "Free on board vessel", updated["description"])

	resp = c.get(path)
	expectStatus(t, resp, http.StatusOK)
	assert.Equal(t, "Free on board vessel", decode[map[string]any](t, resp)["description"])

	resp = c.send(http.MethodPost, "/admin/incoterms/", map[string]any{"abbreviation": "FOB", "description": "Duplicate"})
	expectStatus(t, resp, http.StatusConflict)

	expectStatus(t, c.send(http.MethodDelete, path, nil), http.StatusNoContent)
	expectStatus(t, c.get(path), http.StatusNotFound)
	expectStatus(t, c.send(http.MethodDelete, path, nil), http.StatusNotFound)
}

func TestAdminRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	for _, body := range []string{"", "[1, 2]", "{broken", `{"name": 42}`} {
		resp := c.send(http.MethodPost, "/admin/currencies/", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestAdminDeleteProtectedDepartment(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	org := testutil.CreateOrg(t, env.db, "Sales", "Manager")
	user := testutil.CreateUser(t, env.db, "olena", "secret")
	testutil.CreateEmployee(t, env.db, user, org)

	resp := c.send(http.MethodDelete, fmt.Sprintf("/admin/departments/%d/", org.Department.ID), nil)
	expectStatus(t, resp, http.StatusConflict)

	var positions int64
	env.db.Model(&domain.Position{}).Count(&positions)
	assert.Equal(t, int64(1), positions)

	empty := testutil.CreateOrg(t, env.db, "Archive", "Archivist")
	resp = c.send(http.MethodDelete, fmt.Sprintf("/admin/departments/%d/", empty.Department.ID), nil)
	expectStatus(t, resp, http.StatusNoContent)

	env.db.Model(&domain.Position{}).Count(&positions)
	assert.Equal(t, int64(1), positions)
}

func TestAdminDeleteCountryCascades(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	country := domain.Country{NameEN: "Ukraine", Alpha2: "UA", Alpha3: "UKR", NumericCode: "804"}
	testutil.MustCreate(t, env.db, &country)
	city := domain.City{NameEN: "Odesa", CountryID: country.ID}
	testutil.MustCreate(t, env.db, &city)
	testutil.MustCreate(t, env.db, &domain.Terminal{
		NameEN: "Odesa Seaport", TerminalType: domain.TerminalSeaport, CityID: city.ID, CountryID: country.ID,
	})

	expectStatus(t, c.send(http.MethodDelete, fmt.Sprintf("/admin/countries/%d/", country.ID), nil), http.StatusNoContent)

	var cities, terminals int64
	env.db.Model(&domain.City{}).Count(&cities)
	env.db.Model(&domain.Terminal{}).Count(&terminals)
	assert.Zero(t, cities)
	assert.Zero(t, terminals)
}

func TestAdminDeleteDangerClassKeepsCargo(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	danger := domain.DangerClass{ClassNumber: "8", Description: "Corrosive substances"}
	testutil.MustCreate(t, env.db, &danger)
	cargo := domain.Cargo{NameEN: "Acid", CargoCode: "2807", IsDangerous: true, DangerClassID: &danger.ID}
	testutil.MustCreate(t, env.db, &cargo)

	expectStatus(t, c.send(http.MethodDelete, fmt.Sprintf("/admin/danger-classes/%d/", danger.ID), nil), http.StatusNoContent)

	var reloaded domain.Cargo
	require.NoError(t, env.db.First(&reloaded, cargo.ID).Error)
	assert.Nil(t, reloaded.DangerClassID)
}

func TestAdminListSearchAndFilter(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	danger := domain.DangerClass{ClassNumber: "3", Description: "Flammable liquids"}
	testutil.MustCreate(t, env.db, &danger)
	testutil.MustCreate(t, env.db,
		&domain.Cargo{NameEN: "Paint", CargoCode: "3208", IsDangerous: true, DangerClassID: &danger.ID},
		&domain.Cargo{NameEN: "Steel sheets", CargoCode: "7208"},
		&domain.Cargo{NameEN: "Steel pipes", CargoCode: "7304"},
	)

	resp := c.get("/admin/cargos/")
	expectStatus(t, resp, http.StatusOK)
	list := decode[dto.AdminListResponse](t, resp)
	assert.Equal(t, "Вантажі", list.Title)
	assert.Equal(t, 3, list.Count)
	require.Len(t, list.Columns, 4)
	assert.Equal(t, dto.AdminColumn{Name: "name_en", Label: "Назва (EN)"}, list.Columns[0])
	assert.Equal(t, "Paint", list.Results[0]["name_en"])
	assert.Equal(t, "Class 3", list.Results[0]["danger_class"])

	list = decode[dto.AdminListResponse](t, c.get("/admin/cargos/?q=STEEL"))
	assert.Equal(t, 2, list.Count)

	list = decode[dto.AdminListResponse](t, c.get("/admin/cargos/?q=7304"))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Steel pipes", list.Results[0]["name_en"])

	list = decode[dto.AdminListResponse](t, c.get("/admin/cargos/?is_dangerous=true"))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Paint", list.Results[0]["name_en"])

	list = decode[dto.AdminListResponse](t, c.get("/admin/cargos/?is_dangerous=false&q=sheets&unknown=1"))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Steel sheets", list.Results[0]["name_en"])

	expectStatus(t, c.get("/admin/cargos/?is_dangerous=maybe"), http.StatusBadRequest)
}

func TestAdminMeta(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	resp := c.get("/admin/cargos/meta/")
	expectStatus(t, resp, http.StatusOK)
	meta := decode[dto.AdminMetaResponse](t, resp)
	assert.Equal(t, "cargos", meta.Model)
	assert.Equal(t, "Вантаж", meta.Title)

	var dangerField *dto.AdminField
	for i := range meta.Fields {
		if meta.Fields[i].Name == "danger_class_id" {
			dangerField = &meta.Fields[i]
		}
	}
	require.NotNil(t, dangerField)
	require.NotNil(t, dangerField.EnabledWhen)
	assert.Equal(t, "is_dangerous", dangerField.EnabledWhen.Field)
	assert.Equal(t, true, dangerField.EnabledWhen.Value)
	assert.Equal(t, "danger-classes", dangerField.Related)

	meta = decode[dto.AdminMetaResponse](t, c.get("/admin/terminals/meta/"))
	for _, f := range meta.Fields {
		if f.Name == "terminal_type" {
			require.Len(t, f.Choices, 5)
			assert.Equal(t, dto.AdminChoice{Value: domain.TerminalSeaport, Label: "Морський порт"}, f.Choices[0])
		}
	}
}

func TestAdminExport(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)

	danger := domain.DangerClass{ClassNumber: "3", Description: "Flammable liquids"}
	testutil.MustCreate(t, env.db, &danger)
	testutil.MustCreate(t, env.db,
		&domain.Cargo{NameEN: "Paint", CargoCode: "3208", IsDangerous: true, DangerClassID: &danger.ID},
		&domain.Cargo{NameEN: "Steel", CargoCode: "7208"},
	)

	resp := c.get("/admin/cargos/export/")
	expectStatus(t, resp, http.StatusOK)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cargos_")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("cargos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Назва (EN)", "Код вантажу", "Небезпечний", "Клас небезпеки"}, rows[0])
	assert.Equal(t, []string{"Paint", "3208", "+", "Class 3"}, rows[1][1:])
	assert.Equal(t, []string{"Steel", "7208", "-"}, rows[2][1:4])

	for _, cell := range []string{"A1", "E1"} {
		styleID, err := f.GetCellStyle("cargos", cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
	}
}

func TestAdminCreateUserWithEmployee(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)
	org := testutil.CreateOrg(t, env.db, "Logistics", "Dispatcher")
	testutil.MustCreate(t, env.db, &domain.Permission{Codename: domain.PermViewEmployeesList, Name: "Can view employees list"})

	body := map[string]any{
		"username":   "newbie",
		"password":   "s3cret",
		"first_name": "Taras",
		"last_name":  "Shevchenko",
		"email":      "taras@example.com",
		"employee": map[string]any{
			"department_id": org.Department.ID,
			"position_id":   org.Position.ID,
			"phone":         "+380671234567",
			"hire_date":     "2024-02-01",
		},
		"permissions": []string{domain.PermViewEmployeesList},
	}

	t.Run("password is required", func(t *testing.T) {
		withoutPassword := map[string]any{"username": "nopass"}
		resp := c.send(http.MethodPost, "/admin/users/", withoutPassword)
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("unknown permission", func(t *testing.T) {
		bad := map[string]any{"username": "badperm", "password": "x", "permissions": []string{"nope.nothing"}}
		expectStatus(t, c.send(http.MethodPost, "/admin/users/", bad), http.StatusBadRequest)

		var count int64
		env.db.Model(&domain.User{}).Where(&domain.User{Username: "badperm"}).Count(&count)
		assert.Zero(t, count)
	})

	resp := c.send(http.MethodPost, "/admin/users/", body)
	expectStatus(t, resp, http.StatusCreated)
	created := decode[map[string]any](t, resp)
	assert.NotContains(t, created, "password")
	assert.Equal(t, true, created["is_active"])
	assert.Equal(t, []any{domain.PermViewEmployeesList}, created["permissions"])
	employee, _ := created["employee"].(map[string]any)
	require.NotNil(t, employee)
	assert.Equal(t, "2024-02-01", employee["hire_date"])

	list := decode[dto.AdminListResponse](t, c.get("/admin/users/?q=newbie"))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "+380671234567", list.Results[0]["phone_number"])
	assert.Equal(t, "Dispatcher (Logistics)", list.Results[0]["position_info"])

	newbie := env.client(t)
	newbie.mustLogin("newbie", "s3cret")
	resp = newbie.get("/api/current-user/")
	expectStatus(t, resp, http.StatusOK)
	profile := decode[dto.CurrentUserResponse](t, resp)
	assert.Equal(t, "Taras", profile.FirstName)
	require.NotNil(t, profile.Phone)
	assert.Equal(t, "+380671234567", *profile.Phone)
	assert.Equal(t, []string{domain.PermViewEmployeesList}, profile.Permissions)
	expectStatus(t, newbie.get("/dictionary/get_employees/"), http.StatusOK)

	userPath := fmt.Sprintf("/admin/users/%d/", int64(created["id"].(float64)))
	resp = c.send(http.MethodPut, userPath, map[string]any{
		"employee":    map[string]any{"phone": "+380500000000"},
		"permissions": []string{},
	})
	expectStatus(t, resp, http.StatusOK)

	var employees int64
	env.db.Model(&domain.Employee{}).Count(&employees)
	assert.Equal(t, int64(1), employees)

	profile = decode[dto.CurrentUserResponse](t, newbie.get("/api/current-user/"))
	require.NotNil(t, profile.Phone)
	assert.Equal(t, "+380500000000", *profile.Phone)
	assert.Empty(t, profile.Permissions)
	expectStatus(t, newbie.get("/dictionary/get_employees/"), http.StatusForbidden)

	// старый пароль продолжает работать после изменения без пароля
	again := env.client(t)
	again.mustLogin("newbie", "s3cret")

	expectStatus(t, c.send(http.MethodDelete, userPath, nil), http.StatusNoContent)
	env.db.Model(&domain.Employee{}).Count(&employees)
	assert.Zero(t, employees)
	expectStatus(t, newbie.get("/api/current-user/"), http.StatusUnauthorized)
}

func TestAdminPositions(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)
	sales := testutil.CreateOrg(t, env.db, "Sales", "Manager")
	testutil.CreateOrg(t, env.db, "Accounting", "Accountant")

	resp := c.get(fmt.Sprintf("/admin/users/positions/?department=%d", sales.Department.ID))
	expectStatus(t, resp, http.StatusOK)
	body := decode[dto.PositionsResponse](t, resp)
	assert.Equal(t, []dto.RefResponse{{ID: sales.Position.ID, Name: "Manager"}}, body.Positions)

	for _, query := range []string{"", "?department=", "?department=abc"} {
		resp := c.get("/admin/users/positions/" + query)
		expectStatus(t, resp, http.StatusOK)
		assert.Empty(t, decode[dto.PositionsResponse](t, resp).Positions, query)
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (c *client) upload(path, field, fileName string, content []byte) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	require.NoError(c.t, err)
	_, err = part.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())
	return c.do(http.MethodPost, path, mw.FormDataContentType(), &buf)
}

func TestAdminUploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	c := adminClient(t, env)
	org := testutil.CreateOrg(t, env.db, "Sales", "Manager")
	user := testutil.CreateUser(t, env.db, "olena", "secret")
	testutil.CreateEmployee(t, env.db, user, org)
	path := fmt.Sprintf("/admin/users/%d/avatar/", user.ID)

	resp := c.upload(path, "avatar", "notes.txt", []byte("just text"))
	expectStatus(t, resp, http.StatusBadRequest)

	resp = c.upload(path, "avatar", "me.png", pngBytes(t))
	expectStatus(t, resp, http.StatusOK)
	first := decode[map[string]string](t, resp)["avatar"]
	require.True(t, strings.HasPrefix(first, env.server.URL+"/media/avatars/"), first)
	assert.True(t, strings.HasSuffix(first, ".png"), first)

	var emp domain.Employee
	require.NoError(t, env.db.Where(&domain.Employee{UserID: user.ID}).Take(&emp).Error)
	require.NotNil(t, emp.Avatar)
	firstFile := filepath.Join(env.mediaRoot, filepath.FromSlash(*emp.Avatar))
	assert.FileExists(t, firstFile)

	served := c.get(strings.TrimPrefix(first, env.server.URL))
	expectStatus(t, served, http.StatusOK)
	assert.Equal(t, "image/png", served.Header.Get("Content-Type"))
	data, err := io.ReadAll(served.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes(t), data)

	// содержимое определяет расширение, имя файла от клиента игнорируется
	resp = c.upload(path, "avatar", "me.html", []byte("GIF89a<html><script>alert(document.cookie)</script></html>"))
	expectStatus(t, resp, http.StatusOK)
	disguised := decode[map[string]string](t, resp)["avatar"]
	assert.True(t, strings.HasSuffix(disguised, ".gif"), disguised)
	served = c.get(strings.TrimPrefix(disguised, env.server.URL))
	expectStatus(t, served, http.StatusOK)
	assert.Equal(t, "image/gif", served.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", served.Header.Get("X-Content-Type-Options"))

	resp = c.upload(path, "avatar", "me.bmp", append([]byte("BM"), make([]byte, 64)...))
	expectStatus(t, resp, http.StatusBadRequest)

	resp = c.upload(path, "avatar", "me2.png", pngBytes(t))
	expectStatus(t, resp, http.StatusOK)
	_, err = os.Stat(firstFile)
	assert.True(t, os.IsNotExist(err), "previous avatar must be removed")

	noProfile := testutil.CreateUser(t, env.db, "robot", "secret")
	resp = c.upload(fmt.Sprintf("/admin/users/%d/avatar/", noProfile.ID), "avatar", "me.png", pngBytes(t))
	expectStatus(t, resp, http.StatusNotFound)
}

func TestMediaHasNoDirectoryListing(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Join(env.mediaRoot, "avatars"), 0o755))

	resp := env.client(t).get("/media/avatars/")
	expectStatus(t, resp, http.StatusNotFound)
}
