package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookcourt/bookstore/internal/domain"
)

const (
	headerUserID    = "X-User-Id"
	headerUserRoles = "X-User-Roles"

	contextKeyUser = "auth.user"
)

// identityMiddleware извлекает принципала из заголовков, проставленных
// внешним слоем аутентификации. Запрос без X-User-Id отклоняется.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(headerUserID))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
			return
		}

		user := domain.User{ID: userID, Roles: parseRoles(c.GetHeader(headerUserRoles))}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

func parseRoles(raw string) []domain.Role {
	parts := strings.Split(raw, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, part := range parts {
		role := domain.Role(strings.ToUpper(strings.TrimSpace(part)))
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

func currentUser(c *gin.Context) domain.User {
	value, ok := c.Get(contextKeyUser)
	if !ok {
		return domain.User{}
	}
	user, _ := value.(domain.User)
	return user
}

// requireElevated пропускает только носителей повышенной роли.
// Ответ совпадает с «не найдено», чтобы не раскрывать существование ресурса.
func requireElevated(policy domain.RolePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy == nil || !policy.HasElevatedRole(currentUser(c)) {
			c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: domain.ErrOrderNotFound.Error()})
			return
		}
		c.Next()
	}
}
