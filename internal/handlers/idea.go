package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ideaspark/internal/models"
	"ideaspark/internal/store"
	"ideaspark/internal/utils"
)

var exportNamePattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

type IdeaHandler struct {
	store *store.Store
	cache *utils.Cache
}

func NewIdeaHandler(st *store.Store, cache *utils.Cache) *IdeaHandler {
	return &IdeaHandler{store: st, cache: cache}
}

// List serves the filtered, sorted, windowed feed. The response reports the
// unfiltered total next to the filtered one so the UI can tell "no ideas at
// all" from "no ideas match the current filter".
func (h *IdeaHandler) List(c *gin.Context) {
	filters := store.Filters{
		SearchTerm: c.Query("q"),
		Category:   c.DefaultQuery("category", store.CategoryAll),
		SortBy:     store.SortOrder(c.DefaultQuery("sort", string(store.SortRecent))),
	}

	visible := store.DefaultPageSize
	if v := c.Query("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			visible = n
		}
	}

	cacheKey := fmt.Sprintf("ideas:feed:%s:%s:%s:%d", filters.SearchTerm, filters.Category, filters.SortBy, visible)
	if cached := h.cache.Get(cacheKey); cached != nil {
		if body, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, body)
			return
		}
	}

	working, err := h.store.Load()
	filtered := store.Apply(working, filters)
	page := store.Window(filtered, visible)

	body := withWarning(gin.H{
		"ideas":    page,
		"total":    len(working),
		"filtered": len(filtered),
		"hasMore":  len(page) < len(filtered),
	}, err)

	// 写入缓存，有效期 1 分钟
	h.cache.Set(cacheKey, body, 1*time.Minute)
	c.JSON(http.StatusOK, body)
}

// Trending serves the fixed popular rail for the landing page.
func (h *IdeaHandler) Trending(c *gin.Context) {
	cacheKey := "ideas:trending"
	if cached := h.cache.Get(cacheKey); cached != nil {
		if body, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, body)
			return
		}
	}

	working, err := h.store.Load()
	body := withWarning(gin.H{"ideas": store.Trending(working)}, err)

	h.cache.Set(cacheKey, body, 1*time.Minute)
	c.JSON(http.StatusOK, body)
}

// Detail returns one idea plus the sanitized HTML rendering of its
// description. The saved flag is per-user and never cached.
func (h *IdeaHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	idea, found, err := h.store.Get(id)
	if !found {
		JSONError(c, http.StatusNotFound, "idea not found")
		return
	}

	isSaved := false
	if user := CurrentUser(c); user != nil {
		for _, sid := range h.store.SavedIDs(user.ID) {
			if sid == idea.ID {
				isSaved = true
				break
			}
		}
	}

	c.JSON(http.StatusOK, withWarning(gin.H{
		"idea":            idea,
		"descriptionHtml": utils.RenderMarkdown(idea.Description),
		"isSaved":         isSaved,
	}, err))
}

// Export streams a plain-text rendering of one idea as a download.
func (h *IdeaHandler) Export(c *gin.Context) {
	id := c.Param("id")

	idea, found, _ := h.store.Get(id)
	if !found {
		JSONError(c, http.StatusNotFound, "idea not found")
		return
	}

	var tags strings.Builder
	for _, tag := range idea.Tags {
		fmt.Fprintf(&tags, "- %s\n", tag)
	}

	content := fmt.Sprintf(`Idea Title: %s
Category: %s
Author: %s
Published: %s
Upvotes: %d

Description:
--------------------------------------------------
%s
--------------------------------------------------

Tags:
--------------------------------------------------
%s--------------------------------------------------
`, idea.Title, idea.Category, idea.UserName, idea.CreatedAt.Format("January 2, 2006"), idea.Upvotes, idea.Description, tags.String())

	safeTitle := strings.ToLower(exportNamePattern.ReplaceAllString(idea.Title, "_"))
	if len(safeTitle) > 30 {
		safeTitle = safeTitle[:30]
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="idea_%s.txt"`, safeTitle))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

type submitIdeaRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Category    models.IdeaCategory `json:"category"`
}

// Create validates and persists a new idea for the session user.
func (h *IdeaHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req submitIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := models.IdeaDraft{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		Category:      req.Category,
		UserID:        user.ID,
		UserName:      user.Name,
		UserAvatarURL: user.AvatarURL,
	}

	idea, err := h.store.Create(draft)
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Validation failed. Please check your input.",
			"errors":  verr.Fields,
		})
		return
	}
	if err != nil && !errors.Is(err, store.ErrStorage) {
		JSONError(c, http.StatusInternalServerError, "could not submit idea")
		return
	}

	h.cache.Purge()
	c.JSON(http.StatusCreated, withWarning(gin.H{
		"message": "Idea submitted successfully!",
		"idea":    idea,
	}, err))
}

// Delete removes an idea and its saved-set references. Unknown ids are a
// no-op, matching the store contract.
func (h *IdeaHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.store.Delete(id)
	if err != nil && !errors.Is(err, store.ErrStorage) {
		JSONError(c, http.StatusInternalServerError, "could not delete idea")
		return
	}

	h.cache.Purge()
	if errors.Is(err, store.ErrStorage) {
		c.JSON(http.StatusOK, gin.H{"warning": storageWarning})
		return
	}
	c.Status(http.StatusNoContent)
}
