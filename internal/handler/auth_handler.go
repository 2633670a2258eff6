package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/dto"
	"github.com/logistics-backoffice/internal/middleware"
	"github.com/logistics-backoffice/internal/service"
	"github.com/logistics-backoffice/internal/session"
)

// AuthHandler обслуживает вход, выход и профиль текущего пользователя
type AuthHandler struct {
	responder
	authService service.AuthService
	empService  service.EmployeeService
	sessions    *session.Manager
	validator   *validator.Validate
	mediaURL    string
}

func NewAuthHandler(
	authService service.AuthService,
	empService service.EmployeeService,
	sessions *session.Manager,
	v *validator.Validate,
	mediaURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		responder:   responder{logger: logger},
		authService: authService,
		empService:  empService,
		sessions:    sessions,
		validator:   v,
		mediaURL:    mediaURL,
	}
}

// CSRFToken выдаёт токен и ставит cookie csrftoken
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessions.IssueCSRF(w, r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dto.CSRFResponse{CSRFToken: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.respondDetail(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.respondDetail(w, http.StatusBadRequest, "Invalid credentials.")
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.sessions.Start(r.Context(), w, r, user.ID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if _, err := h.sessions.RotateCSRF(w); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	h.respondDetail(w, http.StatusOK, "Successfully logged in.")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("failed to destroy session", slog.Any("error", err))
		h.respondDetail(w, http.StatusInternalServerError, "An error occurred during logout.")
		return
	}
	h.respondDetail(w, http.StatusOK, "Successfully logged out.")
}

// CurrentUser возвращает профиль сотрудника текущего пользователя с группами и правами
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	profile, err := h.empService.Profile(r.Context(), user)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.CurrentUserResponse{
		EmployeeResponse: toEmployeeResponse(r, h.mediaURL, profile),
		Groups:           profile.GroupNames(),
		Permissions:      profile.PermissionNames(),
	})
}
