package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/teamhub/internal/domain"
)

// ErrorResponse представляет тело ответа с ошибкой.
// Поле message дублируется клиенту как текст для отображения.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Code:    string(code),
		Message: message,
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		RespondWithError(w, r, http.StatusConflict, domain.CodeEmailTaken, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrAlreadyMember):
		RespondWithError(w, r, http.StatusConflict, domain.CodeAlreadyMember, "User is already a member")
	case errors.Is(err, domain.ErrNotMember):
		RespondWithError(w, r, http.StatusForbidden, domain.CodeNotMember, "Not a member of this team")
	case errors.Is(err, domain.ErrInsufficientRole):
		RespondWithError(w, r, http.StatusForbidden, domain.CodeForbidden, "Insufficient permissions")
	case errors.Is(err, domain.ErrSelfMutation):
		RespondWithError(w, r, http.StatusForbidden, domain.CodeForbidden, "Cannot modify own membership")
	case errors.Is(err, domain.ErrTeamNotFound):
		RespondWithError(w, r, http.StatusNotFound, domain.CodeNotFound, "Team not found")
	case errors.Is(err, domain.ErrUserNotFound):
		RespondWithError(w, r, http.StatusNotFound, domain.CodeNotFound, "Team or user not found")
	case errors.Is(err, domain.ErrMembershipNotFound):
		RespondWithError(w, r, http.StatusNotFound, domain.CodeNotFound, "Membership not found")
	case errors.Is(err, domain.ErrInvalidRole):
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "Invalid role")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "Unauthorized")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, domain.CodeInternal, "Internal server error")
	}
}
