package domain

import "errors"

// Доменные ошибки сервиса
var (
	// ErrEmailTaken возвращается при регистрации на уже занятый email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrMembershipNotFound возвращается когда участник не состоит в команде
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrAlreadyMember возвращается при повторном добавлении участника
	ErrAlreadyMember = errors.New("user is already a member")

	// ErrNotMember возвращается когда вызывающий не состоит в команде
	ErrNotMember = errors.New("not a member of this team")

	// ErrInsufficientRole возвращается когда роли недостаточно для операции
	ErrInsufficientRole = errors.New("insufficient permissions")

	// ErrSelfMutation возвращается при попытке изменить собственное участие
	ErrSelfMutation = errors.New("cannot modify own membership")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRole возвращается при неизвестном названии роли
	ErrInvalidRole = errors.New("invalid role")
)

// Классификация ответов удаленного сервиса на стороне клиента.
// Клиент никогда не ветвится по тексту сообщения, только по этим ошибкам.
var (
	// ErrUnauthorized: креденшл отсутствует, истек или отвергнут
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: аутентифицирован, но прав недостаточно
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound: запрошенный ресурс больше не существует
	ErrNotFound = errors.New("not found")

	// ErrConflict: дубликат участника и похожие конфликты
	ErrConflict = errors.New("conflict")

	// ErrUnknown: неклассифицированная ошибка транспорта или сервера
	ErrUnknown = errors.New("unknown error")

	// ErrValidation: локальная валидация, запрос в сеть не уходит
	ErrValidation = errors.New("validation error")
)

// ErrorCode представляет коды ошибок в теле ответа API
type ErrorCode string

// Коды ошибок API
const (
	CodeEmailTaken    ErrorCode = "EMAIL_TAKEN"    // Email уже зарегистрирован
	CodeAlreadyMember ErrorCode = "ALREADY_MEMBER" // Пользователь уже участник
	CodeNotMember     ErrorCode = "NOT_MEMBER"     // Вызывающий не участник команды
	CodeForbidden     ErrorCode = "FORBIDDEN"      // Недостаточно прав
	CodeNotFound      ErrorCode = "NOT_FOUND"      // Ресурс не найден
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"   // Неудачная аутентификация
	CodeBadRequest    ErrorCode = "BAD_REQUEST"    // Невалидное тело запроса
	CodeInternal      ErrorCode = "INTERNAL_ERROR" // Внутренняя ошибка сервера
)
