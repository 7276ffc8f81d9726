package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ideaspark/internal/store"
	"ideaspark/internal/utils"
)

type VoteHandler struct {
	store *store.Store
	cache *utils.Cache
}

func NewVoteHandler(st *store.Store, cache *utils.Cache) *VoteHandler {
	return &VoteHandler{store: st, cache: cache}
}

// Upvote adds one vote to an idea. There is no downvote and no per-user vote
// bookkeeping; an unknown id is silently ignored.
func (h *VoteHandler) Upvote(c *gin.Context) {
	id := c.Param("id")

	idea, found, err := h.store.Upvote(id)
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	h.cache.Purge()
	c.JSON(http.StatusOK, withWarning(gin.H{
		"found":   true,
		"upvotes": idea.Upvotes,
	}, err))
}
