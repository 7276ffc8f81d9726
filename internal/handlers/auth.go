package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"ideaspark/internal/models"
	"ideaspark/internal/store"
	"ideaspark/internal/utils"
)

type AuthHandler struct {
	store *store.Store
}

func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login mints a demo identity from the submitted email, persists it and
// binds it to the session. There is no password; this mirrors the demo
// sign-in flow of the product.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	parts := strings.Split(req.Email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		JSONError(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Demo User"
	}

	user := models.User{
		ID:        utils.NewUserID(),
		Email:     req.Email,
		Name:      name,
		AvatarURL: fmt.Sprintf("https://placehold.co/100x100.png?text=%s", strings.ToUpper(string([]rune(name)[0]))),
	}

	err := h.store.SaveUser(user)

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if serr := session.Save(); serr != nil {
		JSONError(c, http.StatusInternalServerError, "could not establish session")
		return
	}

	c.JSON(http.StatusOK, withWarning(gin.H{"user": user}, err))
}

// Logout clears the session. The persisted identity record stays: saved-sets
// keyed by the user id remain resolvable if the same record logs back in.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		JSONError(c, http.StatusInternalServerError, "could not clear session")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me reports the current session user, or null when logged out.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
}
