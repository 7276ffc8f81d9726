package store

import (
	"sort"
	"strings"

	"ideaspark/internal/models"
)

// DefaultPageSize is the feed window; "load more" grows the visible count by
// one page size at a time.
const DefaultPageSize = 9

// maxTrendingIdeas caps the trending rail regardless of the requested count.
const maxTrendingIdeas = 6

type SortOrder string

const (
	SortRecent  SortOrder = "recent"
	SortPopular SortOrder = "popular"
)

// CategoryAll 表示不过滤分类
const CategoryAll = "all"

// Filters is the feed filter state. Zero value means: no search, all
// categories, recent first.
type Filters struct {
	SearchTerm string
	Category   string
	SortBy     SortOrder
}

// Apply filters and sorts a working set without mutating it. Pure function;
// pagination is a separate Window call so callers can report the filtered
// total alongside the visible page.
func Apply(ideas []models.Idea, f Filters) []models.Idea {
	out := make([]models.Idea, 0, len(ideas))

	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	for _, idea := range ideas {
		if term != "" && !matchesTerm(idea, term) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && string(idea.Category) != f.Category {
			continue
		}
		out = append(out, idea)
	}

	sortIdeas(out, f.SortBy)
	return out
}

// matchesTerm 对标题、描述和每个标签做不区分大小写的子串匹配
func matchesTerm(idea models.Idea, term string) bool {
	if strings.Contains(strings.ToLower(idea.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(idea.Description), term) {
		return true
	}
	for _, tag := range idea.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortIdeas orders in place. Ties fall back to ascending id so the order is
// deterministic whatever the input order was.
func sortIdeas(ideas []models.Idea, by SortOrder) {
	switch by {
	case SortPopular:
		sort.SliceStable(ideas, func(i, j int) bool {
			if ideas[i].Upvotes != ideas[j].Upvotes {
				return ideas[i].Upvotes > ideas[j].Upvotes
			}
			return ideas[i].ID < ideas[j].ID
		})
	default: // SortRecent
		sort.SliceStable(ideas, func(i, j int) bool {
			if !ideas[i].CreatedAt.Equal(ideas[j].CreatedAt) {
				return ideas[i].CreatedAt.After(ideas[j].CreatedAt)
			}
			return ideas[i].ID < ideas[j].ID
		})
	}
}

// Window returns the first visible items of a filtered list. Never errors;
// a short list just comes back whole.
func Window(ideas []models.Idea, visible int) []models.Idea {
	if visible < 0 {
		visible = 0
	}
	if visible > len(ideas) {
		visible = len(ideas)
	}
	return ideas[:visible]
}

// Trending is the fixed "popular, no filters" variant used by the home rail.
func Trending(ideas []models.Idea) []models.Idea {
	top := Apply(ideas, Filters{SortBy: SortPopular})
	return Window(top, maxTrendingIdeas)
}
