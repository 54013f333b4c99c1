package domain

// Role представляет уровень доступа участника внутри команды
type Role string

// Возможные роли участника команды
const (
	RoleAdmin  Role = "admin"  // Полное управление составом команды
	RoleMember Role = "member" // Чтение команды и списка участников
	RoleViewer Role = "viewer" // Чтение команды и списка участников
)

// Valid проверяет что роль входит в список известных
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// ParseRole преобразует строку в Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
