package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"ideaspark/internal/models"
	"ideaspark/pkg/logger"
)

const ideasKey = "ideas"

func savedKey(userID string) string { return "saved:" + userID }
func userKey(userID string) string  { return "user:" + userID }

// Store is the local idea store: it reconciles the seed catalog with the
// persisted profile, answers queries and applies mutations. The KV is
// injected so tests run against MemKV instead of a real profile directory.
//
// The mutex serializes in-process read-modify-write cycles only; a second
// process sharing the same profile still races last-write-wins.
type Store struct {
	mu   sync.Mutex
	kv   KV
	seed []models.Idea
}

func New(kv KV, seed []models.Idea) *Store {
	return &Store{kv: kv, seed: seed}
}

// Load 返回对账后的工作集（seed 顺序在前，用户创建的在后）。
// 本地数据损坏时静默回退到空集，只写日志，不向调用方抛错。
// 返回的 error 只可能是自愈写回失败（ErrStorage），数据本身仍然可用。
func (s *Store) Load() ([]models.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]models.Idea, error) {
	raw, found, err := s.kv.Get(ideasKey)
	if err != nil {
		logger.Log.WithError(err).Warn("idea store unreadable, falling back to seed catalog")
		found = false
	}

	var local []models.Idea
	if found {
		local, err = decodeIdeas(raw)
		if err != nil {
			logger.Log.WithError(err).Warn("discarding unparsable idea store")
			local = nil
		}
	}

	working, dirty := reconcile(s.seed, local)

	// Self-heal: refresh drifted presentation fields, and initialize an
	// absent or empty store so later loads skip the merge bookkeeping.
	if dirty || len(local) == 0 {
		if err := s.persistIdeasLocked(working); err != nil {
			return working, err
		}
	}
	return working, nil
}

// Get returns one idea from the working set by id.
func (s *Store) Get(id string) (models.Idea, bool, error) {
	working, err := s.Load()
	for _, idea := range working {
		if idea.ID == id {
			return idea, true, err
		}
	}
	return models.Idea{}, false, err
}

func (s *Store) persistIdeasLocked(ideas []models.Idea) error {
	data, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("%w: encode ideas: %v", ErrStorage, err)
	}
	return s.kv.Set(ideasKey, data)
}

func decodeIdeas(raw []byte) ([]models.Idea, error) {
	var ideas []models.Idea
	if err := json.Unmarshal(raw, &ideas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return ideas, nil
}

// reconcile merges the seed catalog with the persisted local set into one
// duplicate-free working set.
//
// For ids present in both, the local record wins for upvotes, author
// snapshot and createdAt; the seed record stays authoritative for the
// presentation fields (title, description, tags, category, cover, hint).
// Drift in cover/hint marks the set dirty so the caller rewrites the store.
// Local-only records are user-created ideas and pass through in stored order.
func reconcile(seed, local []models.Idea) (working []models.Idea, dirty bool) {
	localByID := make(map[string]models.Idea, len(local))
	for _, l := range local {
		if _, dup := localByID[l.ID]; !dup {
			localByID[l.ID] = l
		}
	}

	working = make([]models.Idea, 0, len(seed)+len(local))
	seen := make(map[string]bool, len(seed)+len(local))

	for _, sd := range seed {
		seen[sd.ID] = true
		l, ok := localByID[sd.ID]
		if !ok {
			working = append(working, sd)
			continue
		}
		merged := sd
		merged.Upvotes = l.Upvotes
		merged.UserID = l.UserID
		merged.UserName = l.UserName
		merged.UserAvatarURL = l.UserAvatarURL
		merged.CreatedAt = l.CreatedAt
		if l.CoverImageURL != sd.CoverImageURL || l.DataAiHint != sd.DataAiHint {
			dirty = true
		}
		working = append(working, merged)
	}

	for _, l := range local {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		working = append(working, l)
	}
	return working, dirty
}

// SaveUser persists an identity record for session lookup.
func (s *Store) SaveUser(u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: encode user: %v", ErrStorage, err)
	}
	return s.kv.Set(userKey(u.ID), data)
}

// GetUser resolves a persisted identity record. A corrupt record behaves
// like an absent one.
func (s *Store) GetUser(id string) (models.User, bool) {
	raw, found, err := s.kv.Get(userKey(id))
	if err != nil || !found {
		return models.User{}, false
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		logger.Log.WithField("user", id).Warn("discarding unparsable user record")
		return models.User{}, false
	}
	return u, true
}

// DeleteUser removes a persisted identity record.
func (s *Store) DeleteUser(id string) error {
	return s.kv.Delete(userKey(id))
}
