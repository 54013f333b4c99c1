package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/teamhub/internal/authz"
	"github.com/aidar/teamhub/internal/client"
	"github.com/aidar/teamhub/internal/domain"
)

// TestE2E_CompleteWorkflow тестирует полный workflow сервиса команд:
// регистрация, создание команды, управление участниками и принудительный
// разлогин при невалидном токене
func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Настраиваем тестовое окружение
	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	// Ждем пока приложение будет готово
	env.WaitForHealthCheck(t)

	ctx := context.Background()

	var (
		alice  *ClientStack
		bob    *ClientStack
		teamID int64
		bobID  int64
	)

	t.Run("Register and Sign In", func(t *testing.T) {
		alice = env.RegisterUser(t, "alice@example.com", "password123")

		user, ok := alice.Session.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotZero(t, user.ID)

		token, err := alice.Store.Load()
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Duplicate Registration Conflicts", func(t *testing.T) {
		stack := env.NewClientStack(t)
		err := stack.Session.Register(ctx, "alice@example.com", "password123")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, err.Error(), "Email already registered")
	})

	t.Run("Create Team and Become Admin", func(t *testing.T) {
		require.NoError(t, alice.Teams.CreateTeam(ctx, "Backend Team"))

		// Создание не возвращает запись, поэтому перечитываем список
		teams, err := alice.Teams.ListTeams(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, "Backend Team", teams[0].Name)
		teamID = teams[0].ID

		detail, err := alice.Teams.LoadTeamDetail(ctx, teamID)
		require.NoError(t, err)
		require.Len(t, detail.Members, 1)

		user, _ := alice.Session.CurrentUser()
		assert.True(t, authz.IsAdmin(detail.Members, user.ID), "creator should be team admin")
	})

	t.Run("Outsider Cannot View Team", func(t *testing.T) {
		bob = env.RegisterUser(t, "bob@example.com", "password123")
		bobUser, _ := bob.Session.CurrentUser()
		bobID = bobUser.ID

		_, err := bob.Teams.LoadTeamDetail(ctx, teamID)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		// Отказ в доступе не разлогинивает
		assert.Equal(t, client.StatusResolved, bob.Session.Snapshot().Status)
	})

	t.Run("Admin Adds Member", func(t *testing.T) {
		detail, err := alice.Teams.AddMember(ctx, teamID, "bob@example.com", domain.RoleMember)
		require.NoError(t, err)
		require.Len(t, detail.Members, 2)

		member, ok := domain.MemberOf(detail.Members, bobID)
		require.True(t, ok)
		assert.Equal(t, domain.RoleMember, member.Role)
		assert.Equal(t, "bob@example.com", member.Email)

		// Теперь Боб видит команду
		_, err = bob.Teams.LoadTeamDetail(ctx, teamID)
		require.NoError(t, err)
	})

	t.Run("Duplicate Add Conflicts", func(t *testing.T) {
		_, err := alice.Teams.AddMember(ctx, teamID, "bob@example.com", domain.RoleMember)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, err.Error(), "User is already a member")
	})

	t.Run("Unknown Email Is Not Found", func(t *testing.T) {
		_, err := alice.Teams.AddMember(ctx, teamID, "nobody@example.com", domain.RoleMember)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Non-Admin Cannot Mutate", func(t *testing.T) {
		_, err := bob.Teams.AddMember(ctx, teamID, "alice@example.com", domain.RoleViewer)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Contains(t, err.Error(), "Insufficient permissions")

		assert.Equal(t, client.StatusResolved, bob.Session.Snapshot().Status)
	})

	t.Run("Admin Changes Member Role", func(t *testing.T) {
		detail, err := alice.Teams.ChangeRole(ctx, teamID, bobID, domain.RoleViewer)
		require.NoError(t, err)

		member, ok := domain.MemberOf(detail.Members, bobID)
		require.True(t, ok)
		assert.Equal(t, domain.RoleViewer, member.Role)
	})

	t.Run("Server Rejects Own Role Change", func(t *testing.T) {
		// Клиент отклоняет такое локально, поэтому бьем в API напрямую
		aliceUser, _ := alice.Session.CurrentUser()
		token, err := alice.Store.Load()
		require.NoError(t, err)

		body, _ := json.Marshal(map[string]string{"role": string(domain.RoleViewer)})
		resp := env.MakeRequest(t, http.MethodPatch,
			fmt.Sprintf("/teams/%d/members/%d", teamID, aliceUser.ID),
			bytes.NewReader(body), token)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Remove Member With Confirmation", func(t *testing.T) {
		detail, err := alice.Teams.RemoveMember(ctx, teamID, bobID, func() bool { return true })
		require.NoError(t, err)
		require.Len(t, detail.Members, 1)

		_, ok := domain.MemberOf(detail.Members, bobID)
		assert.False(t, ok)

		// Боб снова посторонний
		_, err = bob.Teams.LoadTeamDetail(ctx, teamID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Invalid Login Stays Anonymous", func(t *testing.T) {
		stack := env.NewClientStack(t)
		err := stack.Session.Login(ctx, "alice@example.com", "wrong-password")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Contains(t, err.Error(), "Invalid credentials")

		token, _ := stack.Store.Load()
		assert.Empty(t, token)
		assert.Equal(t, client.StatusAnonymous, stack.Session.Snapshot().Status)
	})

	t.Run("Tampered Token Forces Logout", func(t *testing.T) {
		store := client.NewMemoryCredentialStore()
		require.NoError(t, store.Save("not-a-real-token"))

		api := client.New(env.BaseURL, store)
		session, err := client.NewSessionManager(api, store)
		require.NoError(t, err)
		assert.Equal(t, client.StatusInitializing, session.Snapshot().Status)

		err = session.Start(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		// Креденшл уничтожен вместе с сессией
		token, _ := store.Load()
		assert.Empty(t, token)
		assert.Equal(t, client.StatusAnonymous, session.Snapshot().Status)
	})
}

// TestE2E_ServerValidation тестирует серверную валидацию входных данных
func TestE2E_ServerValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)
	env.WaitForHealthCheck(t)

	ctx := context.Background()

	t.Run("Short Password Rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"email":    "short@example.com",
			"password": "short",
		})
		resp := env.MakeRequest(t, http.MethodPost, "/auth/register", bytes.NewReader(body), "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid Email Rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"email":    "not-an-email",
			"password": "password123",
		})
		resp := env.MakeRequest(t, http.MethodPost, "/auth/register", bytes.NewReader(body), "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Short Team Name Rejected", func(t *testing.T) {
		stack := env.RegisterUser(t, "carol@example.com", "password123")
		token, err := stack.Store.Load()
		require.NoError(t, err)

		body, _ := json.Marshal(map[string]string{"name": "x"})
		resp := env.MakeRequest(t, http.MethodPost, "/teams", bytes.NewReader(body), token)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		stack := env.RegisterUser(t, "dave@example.com", "password123")
		_ = env.RegisterUser(t, "erin@example.com", "password123")

		require.NoError(t, stack.Teams.CreateTeam(ctx, "Validation Team"))
		teams, err := stack.Teams.ListTeams(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 1)

		token, err := stack.Store.Load()
		require.NoError(t, err)

		body, _ := json.Marshal(map[string]string{
			"email": "erin@example.com",
			"role":  "owner",
		})
		resp := env.MakeRequest(t, http.MethodPost,
			fmt.Sprintf("/teams/%d/members", teams[0].ID),
			bytes.NewReader(body), token)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Protected Endpoints Require Token", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/teams", nil, "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, "UNAUTHORIZED", errResp.Code)
	})
}
