package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/dto"
	"github.com/logistics-backoffice/internal/i18n"
)

// responder общие методы ответа для всех обработчиков
type responder struct {
	logger *slog.Logger
}

// badRequestErrors ошибки ввода, возвращаемые как 400
var badRequestErrors = []error{
	domain.ErrDangerClassRequired,
	domain.ErrDangerClassNotAllowed,
	domain.ErrPasswordRequired,
	domain.ErrInvalidFilter,
	domain.ErrInvalidReference,
}

func (h *responder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		h.respondError(w, http.StatusBadRequest, i18n.T(ctx, "validation error"), validationMessage(ctx, verrs))
		return
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			h.respondError(w, http.StatusBadRequest, i18n.T(ctx, "validation error"), i18n.T(ctx, target.Error()))
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidBody):
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "Employee profile not found", "")
	case errors.Is(err, domain.ErrModelNotFound):
		h.respondError(w, http.StatusNotFound, i18n.T(ctx, domain.ErrModelNotFound.Error()), "")
	case errors.Is(err, domain.ErrObjectNotFound), errors.Is(err, domain.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, i18n.T(ctx, domain.ErrObjectNotFound.Error()), "")
	case errors.Is(err, domain.ErrPermissionDenied):
		h.respondError(w, http.StatusForbidden, "permission denied", "")
	case errors.Is(err, domain.ErrDuplicate):
		h.respondError(w, http.StatusConflict, i18n.T(ctx, domain.ErrDuplicate.Error()), "")
	case errors.Is(err, domain.ErrProtected):
		h.respondError(w, http.StatusConflict, i18n.T(ctx, domain.ErrProtected.Error()), err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err), slog.String("path", r.URL.Path))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// validationMessage собирает переведённые сообщения по полям
func validationMessage(ctx context.Context, verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, i18n.T(ctx, "field %s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func (h *responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *responder) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	h.respondJSON(w, status, resp)
}

func (h *responder) respondDetail(w http.ResponseWriter, status int, detail string) {
	h.respondJSON(w, status, dto.DetailResponse{Detail: detail})
}

// pathID читает числовой параметр пути
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
