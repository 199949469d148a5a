package domain

// Role — роль пользователя в системе.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User — аутентифицированный принципал. Аутентификация выполняется
// внешним слоем; сюда приходит уже проверенная личность.
type User struct {
	ID    string
	Roles []Role
}

// HasRole проверяет наличие роли у пользователя.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
