package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ideaspark/internal/models"
	"ideaspark/internal/services"
	"ideaspark/internal/store"
	"ideaspark/internal/utils"
	"ideaspark/pkg/logger"
)

// AIHandler fronts the external AI collaborators. Failures here surface as
// one user-visible message and never touch the idea store.
type AIHandler struct {
	store *store.Store
	llm   *services.LLMService
	hero  *services.HeroImageService
}

func NewAIHandler(st *store.Store) *AIHandler {
	return &AIHandler{
		store: st,
		llm:   services.GetLLMService(),
		hero:  services.GetHeroImageService(),
	}
}

type suggestTagsRequest struct {
	Description string `json:"description"`
}

// SuggestTags returns tag suggestions for a draft description.
func (h *AIHandler) SuggestTags(c *gin.Context) {
	var req suggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		JSONError(c, http.StatusBadRequest, "a description is required")
		return
	}

	tags, err := h.llm.SuggestTags(c.Request.Context(), req.Description)
	if err != nil {
		logger.Log.WithError(err).Warn("tag suggestion failed")
		JSONError(c, http.StatusBadGateway, "Failed to suggest tags. Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

type chatRequest struct {
	Question string `json:"question"`
}

// Chat answers one question about an idea through the chatbot collaborator.
func (h *AIHandler) Chat(c *gin.Context) {
	id := c.Param("id")

	idea, found, _ := h.store.Get(id)
	if !found {
		JSONError(c, http.StatusNotFound, "idea not found")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		JSONError(c, http.StatusBadRequest, "a question is required")
		return
	}

	answer, err := h.llm.IdeaChat(c.Request.Context(), idea.Title, idea.Description, req.Question)
	if err != nil {
		logger.Log.WithError(err).Warn("idea chat failed")
		JSONError(c, http.StatusBadGateway, "The chatbot is unavailable right now. Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": models.ChatMessage{
		ID:        "msg-" + utils.RandString(7),
		Sender:    "bot",
		Text:      answer,
		Timestamp: time.Now(),
	}})
}

// HeroImage returns a generated banner image reference, falling back to the
// static default on any failure.
func (h *AIHandler) HeroImage(c *gin.Context) {
	imageURL, err := h.hero.Generate(c.Request.Context())
	if err != nil {
		logger.Log.WithError(err).Warn("hero image generation failed, serving default")
		c.JSON(http.StatusOK, gin.H{"imageUrl": services.DefaultHeroImage, "generated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL, "generated": true})
}
