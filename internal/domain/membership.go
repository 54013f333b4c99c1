package domain

import "time"

// Membership представляет участие пользователя в команде.
// Уникально по паре (team, user); список участников команды это единственный
// источник истины о правах внутри этой команды.
type Membership struct {
	UserID   int64     `json:"user_id"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// MemberOf ищет участие пользователя в списке участников команды
func MemberOf(members []Membership, userID int64) (Membership, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Membership{}, false
}
