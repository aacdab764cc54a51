package middleware

import (
	"net/http"

	"renomapro/internal/domain/users"
	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates admin routes. The role is re-fetched from the store
// rather than trusted from the token: a role change after issuance would
// otherwise leave a stale elevated token valid for the full token lifetime.
func RequireAdmin(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		role, err := st.RoleByID(userID)
		if err != nil || role != users.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
