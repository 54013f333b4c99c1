package service

import (
	"context"
	"errors"

	"github.com/aidar/teamhub/internal/domain"
	"github.com/aidar/teamhub/internal/repository"
)

// TeamService handles business logic for teams and memberships
type TeamService struct {
	teamRepo   repository.TeamRepository
	userRepo   repository.UserRepository
	memberRepo repository.MembershipRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	memberRepo repository.MembershipRepository,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		memberRepo: memberRepo,
	}
}

// CreateTeam creates a team; the creator becomes its admin
func (s *TeamService) CreateTeam(ctx context.Context, actorID int64, name string) (*domain.Team, error) {
	return s.teamRepo.Create(ctx, name, actorID)
}

// ListTeams returns the teams the actor belongs to
func (s *TeamService) ListTeams(ctx context.Context, actorID int64) ([]domain.Team, error) {
	return s.teamRepo.ListForUser(ctx, actorID)
}

// GetTeam returns a team record; the actor must be one of its members
func (s *TeamService) GetTeam(ctx context.Context, actorID, teamID int64) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	return team, nil
}

// ListMembers returns the membership list; the actor must be one of its members
func (s *TeamService) ListMembers(ctx context.Context, actorID, teamID int64) ([]domain.Membership, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	return s.memberRepo.ListByTeam(ctx, teamID)
}

// AddMember adds a user (looked up by email) to the team; admin only
func (s *TeamService) AddMember(ctx context.Context, actorID, teamID int64, email string, role domain.Role) (*domain.Membership, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.Add(ctx, teamID, user.ID, role); err != nil {
		return nil, err
	}

	return s.memberRepo.Get(ctx, teamID, user.ID)
}

// ChangeRole updates a member's role; admin only, never for the actor itself
func (s *TeamService) ChangeRole(ctx context.Context, actorID, teamID, userID int64, role domain.Role) (*domain.Membership, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	if err := s.requireAdmin(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	if userID == actorID {
		return nil, domain.ErrSelfMutation
	}

	if err := s.memberRepo.UpdateRole(ctx, teamID, userID, role); err != nil {
		return nil, err
	}

	return s.memberRepo.Get(ctx, teamID, userID)
}

// RemoveMember removes a member from the team; admin only, never the actor itself
func (s *TeamService) RemoveMember(ctx context.Context, actorID, teamID, userID int64) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return err
	}

	if err := s.requireAdmin(ctx, actorID, teamID); err != nil {
		return err
	}

	if userID == actorID {
		return domain.ErrSelfMutation
	}

	return s.memberRepo.Delete(ctx, teamID, userID)
}

// requireMember returns the actor's membership or ErrNotMember
func (s *TeamService) requireMember(ctx context.Context, actorID, teamID int64) (*domain.Membership, error) {
	member, err := s.memberRepo.Get(ctx, teamID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return nil, domain.ErrNotMember
		}
		return nil, err
	}
	return member, nil
}

// requireAdmin ensures the actor is an admin of the team
func (s *TeamService) requireAdmin(ctx context.Context, actorID, teamID int64) error {
	member, err := s.requireMember(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	if member.Role != domain.RoleAdmin {
		return domain.ErrInsufficientRole
	}
	return nil
}
