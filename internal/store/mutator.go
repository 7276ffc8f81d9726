package store

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"ideaspark/internal/models"
	"ideaspark/internal/utils"
	"ideaspark/pkg/logger"
)

var validate = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()
	// Report field errors under their json names so the UI can key on them
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func draftFieldMessage(field, tag, param string) string {
	switch field {
	case "title":
		switch tag {
		case "min":
			return "Title must be at least 5 characters"
		case "max":
			return "Title must be at most 100 characters"
		}
		return "Title is required"
	case "description":
		switch tag {
		case "min":
			return "Description must be at least 20 characters"
		case "max":
			return "Description must be at most 5000 characters"
		}
		return "Description is required"
	case "tags":
		switch tag {
		case "min":
			return "At least one tag is required"
		case "max":
			return "Maximum of 10 tags"
		}
		return "Tags must be between 1 and 30 characters"
	case "userId", "userName":
		return "Author information is missing"
	}
	return fmt.Sprintf("%s failed on %s=%s", field, tag, param)
}

// validateDraft enforces the submission constraints and reports every
// violated field at once; nothing is persisted when it returns non-nil.
func validateDraft(draft models.IdeaDraft) *ValidationError {
	verr := &ValidationError{}

	if err := validate.Struct(draft); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				// tags[2] style namespaces collapse onto the tags field
				field := fe.Field()
				if strings.HasPrefix(fe.Namespace(), "IdeaDraft.tags") {
					field = "tags"
				}
				verr.add(field, draftFieldMessage(field, fe.Tag(), fe.Param()))
			}
		} else {
			verr.add("general", err.Error())
		}
	}

	if !draft.Category.Valid() {
		verr.add("category", "Please select a valid category.")
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

// 占位封面使用的配色，深浅搭配来自原型的调色板
var vibrantColors = []string{
	"E91E63", "4CAF50", "FFC107", "2196F3", "9C27B0", "FF5722", "00BCD4", "F44336",
	"3F51B5", "009688", "FF9800", "673AB7", "795548", "607D8B", "2ECC71", "3498DB",
	"E67E22", "9B59B6", "1ABC9C", "E74C3C", "F1C40F", "D35400",
}

var lightColors = map[string]bool{
	"F1C40F": true, "FFC107": true, "FFEB3B": true, "CDDC39": true,
}

var coverTextPattern = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// placeholderCover synthesizes a cover image URL from the idea title.
func placeholderCover(title string) string {
	color := vibrantColors[rand.Intn(len(vibrantColors))]
	textColor := "FFFFFF"
	if lightColors[color] {
		textColor = "333333"
	}

	text := title
	if len(text) > 15 {
		text = text[:15]
	}
	text = strings.TrimSpace(coverTextPattern.ReplaceAllString(text, ""))
	if text == "" {
		text = "Idea"
	}
	return fmt.Sprintf("https://placehold.co/600x400/%s/%s.png?text=%s", color, textColor, url.QueryEscape(text))
}

// Create validates a draft and prepends the new idea to the persisted set so
// it shows up on the next load without another merge. The created record is
// returned for optimistic insertion; a wrapped ErrStorage means the record
// exists in memory but may not survive a reload.
func (s *Store) Create(draft models.IdeaDraft) (models.Idea, error) {
	if verr := validateDraft(draft); verr != nil {
		return models.Idea{}, verr
	}

	idea := models.Idea{
		ID:            utils.NewIdeaID(),
		Title:         draft.Title,
		Description:   draft.Description,
		Tags:          draft.Tags,
		Category:      draft.Category,
		UserID:        draft.UserID,
		UserName:      draft.UserName,
		UserAvatarURL: draft.UserAvatarURL,
		CreatedAt:     time.Now(),
		Upvotes:       0,
		CoverImageURL: placeholderCover(draft.Title),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working, loadErr := s.loadLocked()
	working = append([]models.Idea{idea}, working...)
	if err := s.persistIdeasLocked(working); err != nil {
		return idea, err
	}
	return idea, loadErr
}

// Upvote increments the counter by one and persists the whole set. An
// unknown id is a no-op, reported through found, never an error.
func (s *Store) Upvote(id string) (idea models.Idea, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	working, _ := s.loadLocked()
	for i := range working {
		if working[i].ID == id {
			working[i].Upvotes++
			idea = working[i]
			found = true
			break
		}
	}
	if !found {
		return models.Idea{}, false, nil
	}
	return idea, true, s.persistIdeasLocked(working)
}

// Delete removes an idea and cascades the id out of every saved-set in the
// profile. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working, _ := s.loadLocked()
	kept := working[:0]
	removed := false
	for _, idea := range working {
		if idea.ID == id {
			removed = true
			continue
		}
		kept = append(kept, idea)
	}
	if !removed {
		return nil
	}
	if err := s.persistIdeasLocked(kept); err != nil {
		return err
	}
	return s.cascadeSavedLocked(id)
}

func (s *Store) cascadeSavedLocked(ideaID string) error {
	keys, err := s.kv.Keys("saved:")
	if err != nil {
		return err
	}
	var firstErr error
	for _, key := range keys {
		userID := strings.TrimPrefix(key, "saved:")
		ids := s.loadSavedLocked(userID)
		kept := ids[:0]
		changed := false
		for _, sid := range ids {
			if sid == ideaID {
				changed = true
				continue
			}
			kept = append(kept, sid)
		}
		if !changed {
			continue
		}
		if err := s.persistSavedLocked(userID, kept); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ToggleSave flips membership of an idea in one user's saved-set and
// persists only that set. Returns the resulting membership.
func (s *Store) ToggleSave(userID, ideaID string) (saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.loadSavedLocked(userID)
	kept := make([]string, 0, len(ids)+1)
	for _, sid := range ids {
		if sid == ideaID {
			saved = true
			continue
		}
		kept = append(kept, sid)
	}
	if saved {
		// was present, click means unsave
		saved = false
	} else {
		kept = append(kept, ideaID)
		saved = true
	}
	return saved, s.persistSavedLocked(userID, kept)
}

// SavedIdeas resolves a user's saved-set against the working set. Dangling
// ids (idea deleted after being saved elsewhere) are silently dropped.
func (s *Store) SavedIdeas(userID string) ([]models.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	working, loadErr := s.loadLocked()
	savedSet := make(map[string]bool)
	for _, id := range s.loadSavedLocked(userID) {
		savedSet[id] = true
	}

	out := make([]models.Idea, 0, len(savedSet))
	for _, idea := range working {
		if savedSet[idea.ID] {
			out = append(out, idea)
		}
	}
	return out, loadErr
}

// SavedIDs returns the raw saved-set for one user.
func (s *Store) SavedIDs(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSavedLocked(userID)
}

func (s *Store) loadSavedLocked(userID string) []string {
	raw, found, err := s.kv.Get(savedKey(userID))
	if err != nil || !found {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.Log.WithField("user", userID).Warn("discarding unparsable saved-set")
		return nil
	}
	return ids
}

func (s *Store) persistSavedLocked(userID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: encode saved-set: %v", ErrStorage, err)
	}
	return s.kv.Set(savedKey(userID), data)
}
