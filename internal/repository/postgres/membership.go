package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/teamhub/internal/domain"
)

// MembershipRepository реализует repository.MembershipRepository для PostgreSQL
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository создает новый экземпляр MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Add добавляет участника в команду
func (r *MembershipRepository) Add(ctx context.Context, teamID, userID int64, role domain.Role) error {
	query := `INSERT INTO team_memberships (team_id, user_id, role) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, teamID, userID, role)
	if err != nil {
		// Check for unique constraint violation (user is already a member)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.ErrAlreadyMember
		}
		return err
	}

	return nil
}

// Get получает участие пользователя в команде
func (r *MembershipRepository) Get(ctx context.Context, teamID, userID int64) (*domain.Membership, error) {
	query := `
		SELECT m.user_id, u.email, m.role, m.joined_at
		FROM team_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1 AND m.user_id = $2
	`

	var member domain.Membership
	err := r.db.QueryRow(ctx, query, teamID, userID).Scan(
		&member.UserID,
		&member.Email,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}

	return &member, nil
}

// ListByTeam возвращает всех участников команды в порядке вступления
func (r *MembershipRepository) ListByTeam(ctx context.Context, teamID int64) ([]domain.Membership, error) {
	query := `
		SELECT m.user_id, u.email, m.role, m.joined_at
		FROM team_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.joined_at ASC, m.user_id ASC
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var member domain.Membership
		if err := rows.Scan(&member.UserID, &member.Email, &member.Role, &member.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// UpdateRole обновляет роль участника
func (r *MembershipRepository) UpdateRole(ctx context.Context, teamID, userID int64, role domain.Role) error {
	query := `UPDATE team_memberships SET role = $1 WHERE team_id = $2 AND user_id = $3`

	result, err := r.db.Exec(ctx, query, role, teamID, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
}

// Delete удаляет участника из команды
func (r *MembershipRepository) Delete(ctx context.Context, teamID, userID int64) error {
	query := `DELETE FROM team_memberships WHERE team_id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, teamID, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
}
