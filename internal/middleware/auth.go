package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"ideaspark/internal/store"
)

const CheckUserKey = "user"

// AuthRequired ensures a user is logged in. Runs after LoadUser.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session user and sets it on the context.
func LoadUser(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, _ := session.Get("user_id").(string)

		if userID != "" {
			if user, ok := st.GetUser(userID); ok {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}
