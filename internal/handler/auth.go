package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aidar/teamhub/internal/domain"
	"github.com/aidar/teamhub/internal/middleware"
	"github.com/aidar/teamhub/internal/service"
)

// Ограничения на пароль (совпадают с исходной схемой регистрации)
const (
	passwordMinLen = 8
	passwordMaxLen = 128
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CredentialsRequest представляет тело запроса на регистрацию и логин
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse представляет тело ответа на логин
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if !validEmail(req.Email) {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "valid email is required")
		return
	}
	if len(req.Password) < passwordMinLen || len(req.Password) > passwordMaxLen {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "password must be 8-128 characters")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, user.Profile())
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me обрабатывает GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		// Пользователь из валидного токена больше не существует
		RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "Unauthorized")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user.Profile())
}

// validEmail выполняет минимальную проверку формата email
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
