package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aidar/teamhub/internal/domain"
)

// loginResponse is the /auth/login response body
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// credentialsRequest is the /auth/register and /auth/login request body
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. It does not yield a usable session on its own.
func (c *Client) Register(ctx context.Context, email, password string) error {
	req := credentialsRequest{Email: email, Password: password}
	return c.send(ctx, http.MethodPost, "/auth/register", req, false, nil)
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := credentialsRequest{Email: email, Password: password}

	var resp loginResponse
	if err := c.send(ctx, http.MethodPost, "/auth/login", req, false, &resp); err != nil {
		return "", err
	}

	return resp.AccessToken, nil
}

// Me resolves the identity behind the stored credential
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.send(ctx, http.MethodGet, "/auth/me", nil, true, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListTeams returns the teams the current user belongs to
func (c *Client) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := c.send(ctx, http.MethodGet, "/teams", nil, true, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeam submits a team creation request
func (c *Client) CreateTeam(ctx context.Context, name string) error {
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	return c.send(ctx, http.MethodPost, "/teams", req, true, nil)
}

// GetTeam fetches a single team record
func (c *Client) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	var team domain.Team
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/teams/%d", teamID), nil, true, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// ListMembers fetches the membership list of a team
func (c *Client) ListMembers(ctx context.Context, teamID int64) ([]domain.Membership, error) {
	var members []domain.Membership
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/members", teamID), nil, true, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember submits an add-member request
func (c *Client) AddMember(ctx context.Context, teamID int64, email string, role domain.Role) error {
	req := struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}{Email: email, Role: string(role)}
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/members", teamID), req, true, nil)
}

// ChangeRole submits a role change for a member
func (c *Client) ChangeRole(ctx context.Context, teamID, userID int64, role domain.Role) error {
	req := struct {
		Role string `json:"role"`
	}{Role: string(role)}
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/teams/%d/members/%d", teamID, userID), req, true, nil)
}

// RemoveMember submits a member removal
func (c *Client) RemoveMember(ctx context.Context, teamID, userID int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d/members/%d", teamID, userID), nil, true, nil)
}
