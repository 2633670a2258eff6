package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/dto"
	"github.com/logistics-backoffice/internal/i18n"
	"github.com/logistics-backoffice/internal/middleware"
	"github.com/logistics-backoffice/internal/service"
	"github.com/logistics-backoffice/internal/storage"
)

const (
	maxBodySize   = 1 << 20
	maxAvatarSize = 5 << 20
	avatarPrefix  = "avatars"
)

// AdminHandler обслуживает административный интерфейс
type AdminHandler struct {
	responder
	adminService service.AdminService
	deptService  service.DepartmentService
	empService   service.EmployeeService
	files        storage.FileStorage
	mediaURL     string
}

func NewAdminHandler(
	adminService service.AdminService,
	deptService service.DepartmentService,
	empService service.EmployeeService,
	files storage.FileStorage,
	mediaURL string,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		responder:    responder{logger: logger},
		adminService: adminService,
		deptService:  deptService,
		empService:   empService,
		files:        files,
		mediaURL:     mediaURL,
	}
}

// Index перечисляет зарегистрированные модели
func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := dto.AdminIndexResponse{Title: i18n.T(ctx, "Administration")}
	for _, m := range h.adminService.Models() {
		resp.Models = append(resp.Models, dto.AdminModelInfo{
			Slug:       m.Slug,
			Name:       i18n.T(ctx, m.Verbose),
			NamePlural: i18n.T(ctx, m.VerbosePlural),
			URL:        middleware.AdminPrefix + "/" + m.Slug + "/",
		})
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	m, rows, err := h.rows(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	ctx := r.Context()
	resp := dto.AdminListResponse{
		Title:   i18n.T(ctx, m.VerbosePlural),
		Columns: make([]dto.AdminColumn, len(m.Columns)),
		Results: rows,
		Count:   len(rows),
	}
	for i, c := range m.Columns {
		resp.Columns[i] = dto.AdminColumn{Name: c.Name, Label: i18n.T(ctx, c.Label)}
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// rows выполняет поиск и фильтрацию и строит строки списка
func (h *AdminHandler) rows(r *http.Request) (*admin.ModelAdmin, []map[string]any, error) {
	query := admin.ListQuery{Filters: make(map[string]string)}
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if key == "q" {
			query.Search = values[0]
			continue
		}
		query.Filters[key] = values[0]
	}

	m, objects, err := h.adminService.List(r.Context(), r.PathValue("model"), query)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]map[string]any, 0, len(objects))
	for _, obj := range objects {
		row, err := m.Row(obj)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return m, rows, nil
}

// Meta описывает форму модели
func (h *AdminHandler) Meta(w http.ResponseWriter, r *http.Request) {
	m, err := h.adminService.Model(r.PathValue("model"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	ctx := r.Context()
	resp := dto.AdminMetaResponse{
		Model:  m.Slug,
		Title:  i18n.T(ctx, m.Verbose),
		Fields: make([]dto.AdminField, len(m.Fields)),
	}
	for i, f := range m.Fields {
		field := dto.AdminField{
			Name:     f.Name,
			Label:    i18n.T(ctx, f.Label),
			Type:     f.Type,
			Required: f.Required,
			Related:  f.Related,
		}
		for _, c := range f.Choices {
			field.Choices = append(field.Choices, dto.AdminChoice{Value: c.Value, Label: i18n.T(ctx, c.Label)})
		}
		if f.EnabledWhen != nil {
			field.EnabledWhen = &dto.AdminCondition{Field: f.EnabledWhen.Field, Value: f.EnabledWhen.Value}
		}
		resp.Fields[i] = field
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// Export выгружает экран списка в xlsx
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	m, rows, err := h.rows(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	ctx := r.Context()
	f := excelize.NewFile()
	defer f.Close()

	sheet := m.Slug
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	header := make([]any, 0, len(m.Columns)+1)
	header = append(header, "ID")
	for _, c := range m.Columns {
		header = append(header, i18n.T(ctx, c.Label))
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		h.logger.Warn("failed to style xlsx header", slog.String("model", m.Slug), slog.Any("error", err))
	}

	for i, row := range rows {
		values := make([]any, 0, len(header))
		values = append(values, row["id"])
		for _, c := range m.Columns {
			values = append(values, cellValue(row[c.Name]))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			h.handleServiceError(w, r, err)
			return
		}
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", m.Slug, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write xlsx", slog.Any("error", err))
	}
}

func boldHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "+"
		}
		return "-"
	default:
		return val
	}
}

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id", err.Error())
		return
	}

	m, obj, err := h.adminService.Get(r.Context(), r.PathValue("model"), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondObject(w, r, http.StatusOK, m, obj)
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	m, obj, err := h.adminService.Create(r.Context(), middleware.CurrentUser(r.Context()), r.PathValue("model"), body)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondObject(w, r, http.StatusCreated, m, obj)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id", err.Error())
		return
	}
	body, err := readBody(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	m, obj, err := h.adminService.Update(r.Context(), middleware.CurrentUser(r.Context()), r.PathValue("model"), id, body)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondObject(w, r, http.StatusOK, m, obj)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id", err.Error())
		return
	}

	if err := h.adminService.Delete(r.Context(), middleware.CurrentUser(r.Context()), r.PathValue("model"), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Positions возвращает должности отдела для формы сотрудника
func (h *AdminHandler) Positions(w http.ResponseWriter, r *http.Request) {
	resp := dto.PositionsResponse{Positions: []dto.RefResponse{}}

	departmentID, err := strconv.ParseInt(r.URL.Query().Get("department"), 10, 64)
	if err != nil {
		h.respondJSON(w, http.StatusOK, resp)
		return
	}

	positions, err := h.deptService.Positions(r.Context(), departmentID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	resp.Positions = toRefs(positions)
	h.respondJSON(w, http.StatusOK, resp)
}

// avatarExtensions допустимые типы аватаров и расширения, под которыми они хранятся
var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadAvatar сохраняет аватар сотрудника в media и записывает путь в профиль
func (h *AdminHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id", err.Error())
		return
	}
	if err := h.adminService.Authorize(middleware.CurrentUser(ctx), "users", "change"); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	profile, err := h.empService.Profile(ctx, &domain.User{ID: userID})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, _ := io.ReadFull(file, sniff)
	ext, ok := avatarExtensions[http.DetectContentType(sniff[:n])]
	if !ok {
		h.respondError(w, http.StatusBadRequest, i18n.T(ctx, "validation error"), "avatar must be a PNG, JPEG, GIF or WebP image")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	// расширение берётся из содержимого, имя файла клиента не используется
	path, err := h.files.Save(file, "avatar"+ext, avatarPrefix)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if err := h.empService.SetAvatar(ctx, userID, path); err != nil {
		_ = h.files.Delete(path)
		h.handleServiceError(w, r, err)
		return
	}

	if old := profile.Employee.Avatar; old != nil && *old != "" && *old != path {
		if err := h.files.Delete(*old); err != nil {
			h.logger.Warn("failed to delete previous avatar", slog.String("path", *old), slog.Any("error", err))
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"avatar": absoluteMediaURL(r, h.mediaURL, path)})
}

func (h *AdminHandler) respondObject(w http.ResponseWriter, r *http.Request, status int, m *admin.ModelAdmin, obj any) {
	detail, err := m.Detail(obj)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondJSON(w, status, detail)
}

func readBody(r *http.Request) (json.RawMessage, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) || !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return nil, errors.New("body must be a JSON object")
	}
	return data, nil
}
