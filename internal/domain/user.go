package domain

import "time"

// User представляет учетную запись со стороны хранилища
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile возвращает публичное представление пользователя
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UserProfile представляет публичные данные пользователя (ответ /auth/me).
// Неизменяем после получения; перезапрашивается при смене креденшла.
type UserProfile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
