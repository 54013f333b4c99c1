package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aidar/teamhub/internal/domain"
	"github.com/aidar/teamhub/internal/middleware"
	"github.com/aidar/teamhub/internal/service"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeamRequest представляет тело запроса на создание команды
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// List обрабатывает GET /teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserIDFromContext(r.Context())

	teams, err := h.teamService.ListTeams(r.Context(), actorID)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if teams == nil {
		teams = []domain.Team{}
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}

// Create обрабатывает POST /teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if len(name) < domain.TeamNameMinLen || len(name) > domain.TeamNameMaxLen {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "team name must be 2-128 characters")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	team, err := h.teamService.CreateTeam(r.Context(), actorID, name)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, team)
}

// Get обрабатывает GET /teams/{teamID}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, err := PathID(r, "teamID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid team id")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	team, err := h.teamService.GetTeam(r.Context(), actorID, teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, team)
}
