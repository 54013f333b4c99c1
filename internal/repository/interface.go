package repository

import (
	"context"

	"github.com/aidar/teamhub/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя (email уже нормализован)
	Create(ctx context.Context, email string, hashedPassword []byte) (*domain.User, error)

	// GetByEmail получает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// Create создает команду и участие создателя с ролью admin в одной транзакции
	Create(ctx context.Context, name string, creatorID int64) (*domain.Team, error)

	// GetByID получает команду по ID
	GetByID(ctx context.Context, teamID int64) (*domain.Team, error)

	// ListForUser возвращает команды, в которых состоит пользователь
	ListForUser(ctx context.Context, userID int64) ([]domain.Team, error)
}

// MembershipRepository определяет методы для работы с участиями в командах
type MembershipRepository interface {
	// Add добавляет участника в команду
	Add(ctx context.Context, teamID, userID int64, role domain.Role) error

	// Get получает участие пользователя в команде
	Get(ctx context.Context, teamID, userID int64) (*domain.Membership, error)

	// ListByTeam возвращает всех участников команды в порядке вступления
	ListByTeam(ctx context.Context, teamID int64) ([]domain.Membership, error)

	// UpdateRole обновляет роль участника
	UpdateRole(ctx context.Context, teamID, userID int64, role domain.Role) error

	// Delete удаляет участника из команды
	Delete(ctx context.Context, teamID, userID int64) error
}
