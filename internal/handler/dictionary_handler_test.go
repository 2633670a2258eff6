package handler_test

import (
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/testutil"
)

var dictionaryRoutes = []string{
	"/dictionary/list/",
	"/dictionary/all/",
	"/dictionary/list/countries/",
	"/dictionary/list/cities/",
	"/dictionary/list/terminals/",
	"/dictionary/list/currencies/",
	"/dictionary/list/containers/",
	"/dictionary/list/danger-classes/",
	"/dictionary/list/incoterms/",
	"/dictionary/list/packaging-types/",
	"/dictionary/list/delivery-types/",
	"/dictionary/list/cargos/",
	"/dictionary/get_departments/",
}

// seedDictionaries заполняет по одной записи в каждом справочнике
func seedDictionaries(t *testing.T, env *testEnv) {
	t.Helper()

	country := domain.Country{NameEN: "Ukraine", NameUK: strPtr("Україна"), Alpha2: "UA", Alpha3: "UKR", NumericCode: "804"}
	testutil.MustCreate(t, env.db, &country)
	city := domain.City{NameEN: "Odesa", NameUK: strPtr("Одеса"), CountryID: country.ID}
	testutil.MustCreate(t, env.db, &city)
	danger := domain.DangerClass{ClassNumber: "3", Description: "Flammable liquids"}
	testutil.MustCreate(t, env.db, &danger)

	testutil.MustCreate(t, env.db,
		&domain.Terminal{NameEN: "Odesa Seaport", TerminalType: domain.TerminalSeaport, CityID: city.ID, CountryID: country.ID},
		&domain.Currency{Name: "Euro", Code: "EUR"},
		&domain.Container{Size: "40ft", ContainerType: "HC", Length: 12.03, Width: 2.35, Height: 2.69, InternalVolume: 76.3},
		&domain.Incoterms{Abbreviation: "FOB", Description: "Free On Board"},
		&domain.PackagingType{NameEN: "Pallet", Description: strPtr("Wooden pallet")},
		&domain.DeliveryType{ShortName: "FCL", FullName: "Full Container Load"},
		&domain.Cargo{NameEN: "Paint", CargoCode: "3208", IsDangerous: true, DangerClassID: &danger.ID},
	)
}

func TestDictionaryRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	for _, route := range append(dictionaryRoutes, "/dictionary/get_employees/", "/api/current-user/") {
		resp := c.get(route)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route)
		assert.Equal(t, "authentication required", decode[map[string]string](t, resp)["error"], route)
	}
}

func TestDictionaryNames(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice", "secret")
	c := env.client(t)
	c.mustLogin("alice", "secret")

	resp := c.get("/dictionary/list/")
	expectStatus(t, resp, http.StatusOK)
	body := decode[map[string][]string](t, resp)
	assert.Equal(t, []string{
		"countries", "cities", "terminals", "currencies", "containers",
		"danger_classes", "incoterms", "packaging_types", "delivery_types", "cargos",
	}, body["dictionaries"])
}

func TestDictionaryListsProjectFields(t *testing.T) {
	env := newTestEnv(t)
	seedDictionaries(t, env)
	testutil.CreateUser(t, env.db, "alice", "secret")
	c := env.client(t)
	c.mustLogin("alice", "secret")

	tests := []struct {
		route  string
		key    string
		fields []string
	}{
		{"/dictionary/list/countries/", "countries", []string{"id", "name_en", "name_uk", "alpha2", "alpha3"}},
		{"/dictionary/list/cities/", "cities", []string{"id", "name_en", "name_uk", "country__name_en"}},
		{"/dictionary/list/terminals/", "terminals", []string{"id", "name_en", "name_uk", "terminal_type"}},
		{"/dictionary/list/currencies/", "currencies", []string{"id", "name", "code"}},
		{"/dictionary/list/containers/", "containers", []string{"id", "size", "container_type"}},
		{"/dictionary/list/danger-classes/", "danger_classes", []string{"id", "class_number", "description"}},
		{"/dictionary/list/incoterms/", "incoterms", []string{"id", "abbreviation", "description"}},
		{"/dictionary/list/packaging-types/", "packaging_types", []string{"id", "name_en", "name_uk"}},
		{"/dictionary/list/delivery-types/", "delivery_types", []string{"id", "short_name", "full_name"}},
		{"/dictionary/list/cargos/", "cargos", []string{"id", "name_en", "name_uk", "cargo_code"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resp := c.get(tt.route)
			expectStatus(t, resp, http.StatusOK)
			body := decode[map[string][]map[string]any](t, resp)

			require.Len(t, body, 1)
			items := body[tt.key]
			require.Len(t, items, 1)

			keys := make([]string, 0, len(items[0]))
			for k := range items[0] {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			want := append([]string(nil), tt.fields...)
			sort.Strings(want)
			assert.Equal(t, want, keys)
		})
	}

	t.Run("city carries country name", func(t *testing.T) {
		body := decode[map[string][]map[string]any](t, c.get("/dictionary/list/cities/"))
		assert.Equal(t, "Ukraine", body["cities"][0]["country__name_en"])
		assert.Equal(t, "Одеса", body["cities"][0]["name_uk"])
	})
}

func TestDictionaryAll(t *testing.T) {
	env := newTestEnv(t)
	seedDictionaries(t, env)
	testutil.CreateUser(t, env.db, "alice", "secret")
	c := env.client(t)
	c.mustLogin("alice", "secret")

	resp := c.get("/dictionary/all/")
	expectStatus(t, resp, http.StatusOK)
	body := decode[map[string][]map[string]any](t, resp)

	assert.Len(t, body, 10)
	for name, items := range body {
		assert.Len(t, items, 1, name)
	}

	country := body["countries"][0]
	assert.Equal(t, "804", country["numeric_code"])

	container := body["containers"][0]
	assert.InDelta(t, 76.3, container["internal_volume"], 0.001)

	cargo := body["cargos"][0]
	assert.Equal(t, true, cargo["is_dangerous"])
	assert.NotNil(t, cargo["danger_class_id"])

	assert.Equal(t, "Wooden pallet", body["packaging_types"][0]["description"])
}

func TestDictionaryEmptyLists(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice", "secret")
	c := env.client(t)
	c.mustLogin("alice", "secret")

	resp := c.get("/dictionary/list/cargos/")
	expectStatus(t, resp, http.StatusOK)
	body := decode[map[string][]map[string]any](t, resp)
	require.Contains(t, body, "cargos")
	assert.Empty(t, body["cargos"])
	assert.NotNil(t, body["cargos"])
}
