package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ideaspark/internal/middleware"
	"ideaspark/internal/models"
	"ideaspark/internal/store"
)

// storageWarning is attached to mutation responses whose in-memory effect
// applied but whose persistence failed; the change may not survive a reload.
const storageWarning = "change applied but could not be persisted; it may not survive a reload"

// CurrentUser returns the session user, or nil when not logged in.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		if u, ok := user.(*models.User); ok {
			return u
		}
	}
	return nil
}

// JSONError writes a single-message error body.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// withWarning adds the storage warning to a response body when the mutation
// persisted only in memory.
func withWarning(body gin.H, err error) gin.H {
	if errors.Is(err, store.ErrStorage) {
		body["warning"] = storageWarning
	}
	return body
}
