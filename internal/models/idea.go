package models

import (
	"time"
)

// IdeaCategory is the fixed category enumeration an idea belongs to.
type IdeaCategory string

const (
	CategorySoftware       IdeaCategory = "Software"
	CategoryHardware       IdeaCategory = "Hardware"
	CategoryFoodBeverage   IdeaCategory = "Food & Beverage"
	CategoryNonprofit      IdeaCategory = "Nonprofit & Social Impact"
	CategoryCreativeArts   IdeaCategory = "Creative & Arts"
	CategoryEducation      IdeaCategory = "Education & Learning"
	CategoryHealthWellness IdeaCategory = "Health & Wellness"
	CategorySustainability IdeaCategory = "Sustainability & Environment"
	CategoryBusiness       IdeaCategory = "Business & Finance"
	CategoryOther          IdeaCategory = "Other"
)

// AllCategories 返回所有分类，顺序固定，用于下拉框和校验
func AllCategories() []IdeaCategory {
	return []IdeaCategory{
		CategorySoftware,
		CategoryHardware,
		CategoryFoodBeverage,
		CategoryNonprofit,
		CategoryCreativeArts,
		CategoryEducation,
		CategoryHealthWellness,
		CategorySustainability,
		CategoryBusiness,
		CategoryOther,
	}
}

// Valid reports whether c is one of the recognized categories.
func (c IdeaCategory) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Idea is the core domain record representing a submitted concept.
// CreatedAt marshals as an RFC 3339 string, which is also the on-disk form.
type Idea struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Tags          []string     `json:"tags"`
	Category      IdeaCategory `json:"category"`
	UserID        string       `json:"userId"`
	UserName      string       `json:"userName"`
	UserAvatarURL string       `json:"userAvatarUrl,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	Upvotes       int          `json:"upvotes"`
	CoverImageURL string       `json:"coverImageUrl,omitempty"`
	DataAiHint    string       `json:"dataAiHint,omitempty"`
}

// IdeaDraft is the user-submitted form for a new idea. Author fields come
// from the session, not the form.
type IdeaDraft struct {
	Title         string       `json:"title" validate:"required,min=5,max=100"`
	Description   string       `json:"description" validate:"required,min=20,max=5000"`
	Tags          []string     `json:"tags" validate:"required,min=1,max=10,dive,min=1,max=30"`
	Category      IdeaCategory `json:"category" validate:"required"`
	UserID        string       `json:"userId" validate:"required"`
	UserName      string       `json:"userName" validate:"required"`
	UserAvatarURL string       `json:"userAvatarUrl"`
}
