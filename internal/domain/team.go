package domain

import "time"

// Team представляет команду
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Ограничения на имя команды (дублируются на клиенте как UX-подсказка,
// авторитетна только серверная проверка)
const (
	TeamNameMinLen = 2
	TeamNameMaxLen = 128
)
