package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark/internal/store"
)

type BookmarkHandler struct {
	store *store.Store
}

func NewBookmarkHandler(st *store.Store) *BookmarkHandler {
	return &BookmarkHandler{store: st}
}

// Toggle 切换收藏状态 - 收藏/取消收藏
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	user := CurrentUser(c)
	id := c.Param("id")

	if _, found, _ := h.store.Get(id); !found {
		JSONError(c, http.StatusNotFound, "idea not found")
		return
	}

	saved, err := h.store.ToggleSave(user.ID, id)
	c.JSON(http.StatusOK, withWarning(gin.H{"saved": saved}, err))
}

// SavedList returns the user's bookmarked ideas, dangling ids filtered.
func (h *BookmarkHandler) SavedList(c *gin.Context) {
	user := CurrentUser(c)

	ideas, err := h.store.SavedIdeas(user.ID)
	c.JSON(http.StatusOK, withWarning(gin.H{"ideas": ideas}, err))
}
