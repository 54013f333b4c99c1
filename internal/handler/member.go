package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aidar/teamhub/internal/domain"
	"github.com/aidar/teamhub/internal/middleware"
	"github.com/aidar/teamhub/internal/service"
)

// MemberHandler обрабатывает эндпоинты участников команд
type MemberHandler struct {
	teamService *service.TeamService
}

// NewMemberHandler создает новый MemberHandler
func NewMemberHandler(teamService *service.TeamService) *MemberHandler {
	return &MemberHandler{
		teamService: teamService,
	}
}

// AddMemberRequest представляет тело запроса на добавление участника
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ChangeRoleRequest представляет тело запроса на смену роли
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// List обрабатывает GET /teams/{teamID}/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	teamID, err := PathID(r, "teamID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid team id")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	members, err := h.teamService.ListMembers(r.Context(), actorID, teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if members == nil {
		members = []domain.Membership{}
	}

	RespondWithJSON(w, r, http.StatusOK, members)
}

// Add обрабатывает POST /teams/{teamID}/members
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	teamID, err := PathID(r, "teamID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid team id")
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "email is required")
		return
	}

	// Роль по умолчанию member, как в исходной схеме
	if req.Role == "" {
		req.Role = string(domain.RoleMember)
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	member, err := h.teamService.AddMember(r.Context(), actorID, teamID, req.Email, role)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, member)
}

// ChangeRole обрабатывает PATCH /teams/{teamID}/members/{userID}
func (h *MemberHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	teamID, err := PathID(r, "teamID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid team id")
		return
	}
	userID, err := PathID(r, "userID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid user id")
		return
	}

	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	member, err := h.teamService.ChangeRole(r.Context(), actorID, teamID, userID, role)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, member)
}

// Remove обрабатывает DELETE /teams/{teamID}/members/{userID}
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	teamID, err := PathID(r, "teamID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid team id")
		return
	}
	userID, err := PathID(r, "userID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid user id")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	if err := h.teamService.RemoveMember(r.Context(), actorID, teamID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
