package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
)

type NewsCategory string

const (
	CategoryInjuryUpdate NewsCategory = "injury_update"
	CategoryTeamNews     NewsCategory = "team_news"
	CategoryAnalytics    NewsCategory = "analytics"
)

func (c NewsCategory) Valid() bool {
	switch c {
	case CategoryInjuryUpdate, CategoryTeamNews, CategoryAnalytics:
		return true
	}
	return false
}

type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

func (l ImpactLevel) Valid() bool {
	switch l {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	}
	return false
}

type News struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Excerpt     string             `json:"excerpt" bson:"excerpt"`
	Body        string             `json:"body,omitempty" bson:"body"`
	Category    NewsCategory       `json:"category" bson:"category"`
	Impact      ImpactLevel        `json:"impact" bson:"impact"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	PublishedAt time.Time          `json:"published_at" bson:"published_at"`
}

func (n *News) Validate() error {
	if n.Title == "" {
		return apperr.Validation("news requires a title")
	}
	if !n.Category.Valid() {
		return apperr.Validation("unknown news category %q", n.Category)
	}
	if !n.Impact.Valid() {
		return apperr.Validation("unknown impact level %q", n.Impact)
	}
	if n.PublishedAt.IsZero() {
		return apperr.Validation("news requires a publish date")
	}
	return nil
}
