// Package access содержит политику ролей для разграничения доступа к заказам.
package access

import "github.com/bookcourt/bookstore/internal/domain"

// RoleSetPolicy — реализация RolePolicy поверх набора ролей принципала.
// Повышенной считается роль администратора.
type RoleSetPolicy struct {
	elevated domain.Role
}

// NewRolePolicy создаёт политику с ролью ADMIN в качестве повышенной.
func NewRolePolicy() *RoleSetPolicy {
	return &RoleSetPolicy{elevated: domain.RoleAdmin}
}

// HasElevatedRole сообщает, видит ли пользователь чужие заказы.
func (p *RoleSetPolicy) HasElevatedRole(user domain.User) bool {
	return user.HasRole(p.elevated)
}

var _ domain.RolePolicy = (*RoleSetPolicy)(nil)
