package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/dto"
	"github.com/logistics-backoffice/internal/service"
)

// EmployeeHandler обслуживает справочник сотрудников и отделов
type EmployeeHandler struct {
	responder
	empService  service.EmployeeService
	deptService service.DepartmentService
	mediaURL    string
}

func NewEmployeeHandler(
	empService service.EmployeeService,
	deptService service.DepartmentService,
	mediaURL string,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		responder:   responder{logger: logger},
		empService:  empService,
		deptService: deptService,
		mediaURL:    mediaURL,
	}
}

func (h *EmployeeHandler) Employees(w http.ResponseWriter, r *http.Request) {
	users, err := h.empService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := dto.EmployeesResponse{Employees: make([]dto.EmployeeResponse, len(users))}
	for i := range users {
		resp.Employees[i] = toEmployeeResponse(r, h.mediaURL, &users[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.deptService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := dto.DepartmentsResponse{Departments: make([]dto.DepartmentResponse, len(departments))}
	for i, dept := range departments {
		resp.Departments[i] = dto.DepartmentResponse{
			ID:        dept.ID,
			Name:      dept.Name,
			Positions: toRefs(dept.Positions),
		}
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func toRefs(positions []domain.Position) []dto.RefResponse {
	refs := make([]dto.RefResponse, len(positions))
	for i, p := range positions {
		refs[i] = dto.RefResponse{ID: p.ID, Name: p.Name}
	}
	return refs
}

// toEmployeeResponse ожидает пользователя с загруженным профилем, отделом и должностью
func toEmployeeResponse(r *http.Request, mediaURL string, user *domain.User) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	emp := user.Employee
	if emp == nil {
		return resp
	}

	resp.AdditionalEmail = emp.AdditionalEmail
	resp.Phone = emp.Phone
	resp.AdditionalPhone = emp.AdditionalPhone
	resp.BirthDate = domain.FormatDate(emp.BirthDate)
	resp.HireDate = domain.FormatDate(emp.HireDate)
	resp.TerminationDate = domain.FormatDate(emp.TerminationDate)
	resp.RegistrationAddress = emp.RegistrationAddress
	resp.LivingAddress = emp.LivingAddress

	if emp.Department != nil {
		resp.Department = &dto.RefResponse{ID: emp.Department.ID, Name: emp.Department.Name}
	}
	if emp.Position != nil {
		resp.Position = &dto.RefResponse{ID: emp.Position.ID, Name: emp.Position.Name}
	}
	if emp.Avatar != nil && *emp.Avatar != "" {
		url := absoluteMediaURL(r, mediaURL, *emp.Avatar)
		resp.Avatar = &url
	}
	return resp
}

// absoluteMediaURL строит полный адрес файла с учётом схемы и хоста запроса
func absoluteMediaURL(r *http.Request, mediaURL, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	// прокси может передать список через запятую, учитывается первый
	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")
	switch proto = strings.ToLower(strings.TrimSpace(proto)); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + r.Host + strings.TrimSuffix(mediaURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
