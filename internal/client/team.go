package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aidar/teamhub/internal/domain"
)

// TeamDetail is a team record together with its full membership list.
// The two are loaded as one unit; partial team state is never exposed.
type TeamDetail struct {
	Team    domain.Team
	Members []domain.Membership
}

// ConfirmFunc is the yes/no decision point required before a member removal
type ConfirmFunc func() bool

// TeamController executes team and membership operations on behalf of a
// resolved session. Mutations never apply their own response to local state:
// every successful mutation is followed by a fresh LoadTeamDetail, so the
// membership list used for authorization gating always comes straight from
// the server.
type TeamController struct {
	api     *Client
	session *SessionManager
}

// NewTeamController creates a controller bound to a session
func NewTeamController(api *Client, session *SessionManager) *TeamController {
	return &TeamController{
		api:     api,
		session: session,
	}
}

// ListTeams returns all teams the resolved user belongs to
func (c *TeamController) ListTeams(ctx context.Context) ([]domain.Team, error) {
	if _, err := c.requireResolved(); err != nil {
		return nil, err
	}

	teams, err := c.api.ListTeams(ctx)
	if err != nil {
		return nil, c.watchAuth(err)
	}
	return teams, nil
}

// CreateTeam submits a team creation request. The server assigns every field
// of the new record, so the caller must refresh the team list afterwards;
// the controller never synthesizes a team record itself.
func (c *TeamController) CreateTeam(ctx context.Context, name string) error {
	if _, err := c.requireResolved(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if len(name) < domain.TeamNameMinLen {
		return fmt.Errorf("%w: team name must be at least %d characters", domain.ErrValidation, domain.TeamNameMinLen)
	}

	if err := c.api.CreateTeam(ctx, name); err != nil {
		return c.watchAuth(err)
	}
	return nil
}

// LoadTeamDetail fetches the team record and its membership list
// concurrently. Both reads must succeed or the whole operation fails as one
// unit.
func (c *TeamController) LoadTeamDetail(ctx context.Context, teamID int64) (*TeamDetail, error) {
	if _, err := c.requireResolved(); err != nil {
		return nil, err
	}

	var (
		team    *domain.Team
		members []domain.Membership
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = c.api.GetTeam(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = c.api.ListMembers(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, c.watchAuth(err)
	}

	return &TeamDetail{Team: *team, Members: members}, nil
}

// AddMember adds a user to the team and reloads the team detail. On
// Conflict the state is not refetched speculatively; the caller sees true
// state on its next LoadTeamDetail.
func (c *TeamController) AddMember(ctx context.Context, teamID int64, email string, role domain.Role) (*TeamDetail, error) {
	if _, err := c.requireResolved(); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	if err := c.api.AddMember(ctx, teamID, email, role); err != nil {
		return nil, c.watchAuth(err)
	}

	// The server is the only source of the member's resolved identity
	// fields, so reload instead of appending a synthetic membership.
	return c.LoadTeamDetail(ctx, teamID)
}

// ChangeRole updates another member's role and reloads the team detail.
// Changing one's own role is rejected locally without a network call; the
// server enforces the same rule.
func (c *TeamController) ChangeRole(ctx context.Context, teamID, userID int64, role domain.Role) (*TeamDetail, error) {
	self, err := c.requireResolved()
	if err != nil {
		return nil, err
	}

	if userID == self.ID {
		return nil, fmt.Errorf("%w: cannot change your own role", domain.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	if err := c.api.ChangeRole(ctx, teamID, userID, role); err != nil {
		return nil, c.watchAuth(err)
	}

	return c.LoadTeamDetail(ctx, teamID)
}

// RemoveMember removes another member after an explicit confirmation and
// reloads the team detail. Without a confirming decision no request is
// issued.
func (c *TeamController) RemoveMember(ctx context.Context, teamID, userID int64, confirm ConfirmFunc) (*TeamDetail, error) {
	self, err := c.requireResolved()
	if err != nil {
		return nil, err
	}

	if userID == self.ID {
		return nil, fmt.Errorf("%w: cannot remove yourself from the team", domain.ErrValidation)
	}
	if confirm == nil || !confirm() {
		return nil, fmt.Errorf("%w: removal not confirmed", domain.ErrValidation)
	}

	if err := c.api.RemoveMember(ctx, teamID, userID); err != nil {
		return nil, c.watchAuth(err)
	}

	return c.LoadTeamDetail(ctx, teamID)
}

// requireResolved ensures the session is resolved and returns the current user
func (c *TeamController) requireResolved() (*domain.UserProfile, error) {
	snapshot := c.session.Snapshot()
	if snapshot.Status != StatusResolved {
		return nil, fmt.Errorf("%w: no resolved session", domain.ErrUnauthorized)
	}
	return snapshot.User, nil
}

// watchAuth routes Unauthorized outcomes into the session manager's forced
// logout; the failed operation is never retried
func (c *TeamController) watchAuth(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		c.session.ForceLogout()
	}
	return err
}
