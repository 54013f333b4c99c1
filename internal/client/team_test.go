package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/teamhub/internal/domain"
)

// resolvedController builds a controller behind a session already resolved
// as the given profile, authenticated with the token "tok"
func resolvedController(t *testing.T, auth *authority, profile domain.UserProfile) (*TeamController, *SessionManager, *MemoryCredentialStore) {
	t.Helper()

	auth.handle("/auth/me", meHandler("tok", profile))

	api, store := newFixture(t, auth)
	require.NoError(t, store.Save("tok"))

	session, err := NewSessionManager(api, store)
	require.NoError(t, err)
	require.NoError(t, session.Start(context.Background()))
	require.Equal(t, StatusResolved, session.Snapshot().Status)

	return NewTeamController(api, session), session, store
}

func serveTeam(auth *authority, team domain.Team, members []domain.Membership) {
	auth.handle(fmt.Sprintf("/teams/%d", team.ID), func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, team)
	})
	auth.handle(fmt.Sprintf("/teams/%d/members", team.ID), func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			respondJSON(w, http.StatusOK, members)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
}

func TestTeamController_RequiresResolvedSession(t *testing.T) {
	auth := newAuthority()
	api, store := newFixture(t, auth)

	session, err := NewSessionManager(api, store)
	require.NoError(t, err)
	controller := NewTeamController(api, session)

	_, err = controller.ListTeams(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = controller.LoadTeamDetail(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// No request ever left the process
	assert.Empty(t, auth.counts)
}

func TestTeamController_CreateTeamRejectsShortNameLocally(t *testing.T) {
	auth := newAuthority()
	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	for _, name := range []string{"", "   ", "x", " x "} {
		err := controller.CreateTeam(context.Background(), name)
		assert.ErrorIs(t, err, domain.ErrValidation, "name %q", name)
	}
	assert.Equal(t, 0, auth.count("POST /teams"))
}

func TestTeamController_CreateTeamTrimsName(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondJSON(w, http.StatusOK, []domain.Team{})
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Platform Team", req.Name)
		respondJSON(w, http.StatusCreated, domain.Team{ID: 1, Name: req.Name})
	})

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	require.NoError(t, controller.CreateTeam(context.Background(), "  Platform Team  "))
	assert.Equal(t, 1, auth.count("POST /teams"))
}

func TestTeamController_LoadTeamDetailIsAllOrNothing(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams/5", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, domain.Team{ID: 5, Name: "Core"})
	})
	auth.handle("/teams/5/members", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusInternalServerError, "database is down")
	})

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	detail, err := controller.LoadTeamDetail(context.Background(), 5)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrUnknown)
}

func TestTeamController_LoadTeamDetail(t *testing.T) {
	members := []domain.Membership{
		{UserID: 1, Email: "a@x.com", Role: domain.RoleAdmin, JoinedAt: time.Now()},
		{UserID: 2, Email: "b@x.com", Role: domain.RoleViewer, JoinedAt: time.Now()},
	}

	auth := newAuthority()
	serveTeam(auth, domain.Team{ID: 5, Name: "Core"}, members)

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	detail, err := controller.LoadTeamDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Core", detail.Team.Name)
	assert.Len(t, detail.Members, 2)
}

func TestTeamController_AddMemberValidatesLocally(t *testing.T) {
	auth := newAuthority()
	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	_, err := controller.AddMember(context.Background(), 5, "   ", domain.RoleMember)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = controller.AddMember(context.Background(), 5, "b@x.com", domain.Role("owner"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, 0, auth.count("POST /teams/5/members"))
}

func TestTeamController_AddMemberReloadsDetail(t *testing.T) {
	members := []domain.Membership{
		{UserID: 1, Email: "a@x.com", Role: domain.RoleAdmin},
		{UserID: 2, Email: "b@x.com", Role: domain.RoleMember},
	}

	auth := newAuthority()
	serveTeam(auth, domain.Team{ID: 5, Name: "Core"}, members)

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	detail, err := controller.AddMember(context.Background(), 5, "b@x.com", domain.RoleMember)
	require.NoError(t, err)

	// Detail comes from the follow-up fetch, not from the mutation response
	assert.Equal(t, 1, auth.count("POST /teams/5/members"))
	assert.Equal(t, 1, auth.count("GET /teams/5"))
	assert.Equal(t, 1, auth.count("GET /teams/5/members"))
	assert.Len(t, detail.Members, 2)
}

func TestTeamController_AddMemberConflictDoesNotRefetch(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams/5/members", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusConflict, "User is already a member")
	})

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	detail, err := controller.AddMember(context.Background(), 5, "b@x.com", domain.RoleMember)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "User is already a member")

	assert.Equal(t, 0, auth.count("GET /teams/5"))
}

func TestTeamController_ChangeRoleRejectsSelfLocally(t *testing.T) {
	auth := newAuthority()
	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	_, err := controller.ChangeRole(context.Background(), 5, 1, domain.RoleViewer)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, auth.count("PATCH /teams/5/members/1"))
}

func TestTeamController_ChangeRoleReloadsDetail(t *testing.T) {
	members := []domain.Membership{
		{UserID: 1, Email: "a@x.com", Role: domain.RoleAdmin},
		{UserID: 2, Email: "b@x.com", Role: domain.RoleViewer},
	}

	auth := newAuthority()
	serveTeam(auth, domain.Team{ID: 5, Name: "Core"}, members)
	auth.handle("/teams/5/members/2", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			respondJSON(w, http.StatusOK, members[1])
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	detail, err := controller.ChangeRole(context.Background(), 5, 2, domain.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, 1, auth.count("PATCH /teams/5/members/2"))
	assert.Equal(t, 1, auth.count("GET /teams/5/members"))
	assert.Len(t, detail.Members, 2)
}

func TestTeamController_RemoveMemberRequiresConfirmation(t *testing.T) {
	auth := newAuthority()
	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	// nil confirmation
	_, err := controller.RemoveMember(context.Background(), 5, 2, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// declined confirmation
	_, err = controller.RemoveMember(context.Background(), 5, 2, func() bool { return false })
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, 0, auth.count("DELETE /teams/5/members/2"))
}

func TestTeamController_RemoveMemberRejectsSelf(t *testing.T) {
	auth := newAuthority()
	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	confirmCalled := false
	_, err := controller.RemoveMember(context.Background(), 5, 1, func() bool {
		confirmCalled = true
		return true
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, confirmCalled)
}

func TestTeamController_RemoveMemberConfirmedReloadsDetail(t *testing.T) {
	members := []domain.Membership{
		{UserID: 1, Email: "a@x.com", Role: domain.RoleAdmin},
	}

	auth := newAuthority()
	serveTeam(auth, domain.Team{ID: 5, Name: "Core"}, members)
	auth.handle("/teams/5/members/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	controller, _, _ := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	detail, err := controller.RemoveMember(context.Background(), 5, 2, func() bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 1, auth.count("DELETE /teams/5/members/2"))
	assert.Len(t, detail.Members, 1)
}

func TestTeamController_UnauthorizedMutationForcesLogout(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams/5/members", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	})

	controller, session, store := resolvedController(t, auth, domain.UserProfile{ID: 1, Email: "a@x.com"})

	_, err := controller.AddMember(context.Background(), 5, "b@x.com", domain.RoleMember)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Session and credential are gone together
	snapshot := session.Snapshot()
	assert.Equal(t, StatusAnonymous, snapshot.Status)
	assert.Nil(t, snapshot.User)
	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestTeamController_ForbiddenDoesNotTouchSession(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams/5/members", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusForbidden, "Insufficient permissions")
	})

	controller, session, store := resolvedController(t, auth, domain.UserProfile{ID: 2, Email: "b@x.com"})

	_, err := controller.AddMember(context.Background(), 5, "c@x.com", domain.RoleMember)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	// Being denied is not the same as being signed out
	assert.Equal(t, StatusResolved, session.Snapshot().Status)
	token, _ := store.Load()
	assert.Equal(t, "tok", token)
}
