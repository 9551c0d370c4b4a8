package service

import (
	"context"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

// DefaultNewsLimit bounds the latest-news listing when the caller passes
// no limit or a non-positive one.
const DefaultNewsLimit = 3

// NewsStore defines what the news service needs from the content store.
type NewsStore interface {
	InsertNews(ctx context.Context, news models.News) (*models.News, error)
	ListNews(ctx context.Context, category models.NewsCategory, limit int64) ([]models.News, error)
}

type NewsService struct {
	newsStore NewsStore
}

func NewNewsService(newsStore NewsStore) *NewsService {
	return &NewsService{newsStore: newsStore}
}

// LatestNews lists the newest items, publish date descending. Non-positive
// limits fall back to DefaultNewsLimit rather than erroring.
func (s *NewsService) LatestNews(ctx context.Context, limit int) ([]models.News, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	return s.newsStore.ListNews(ctx, "", int64(limit))
}

func (s *NewsService) AllNews(ctx context.Context) ([]models.News, error) {
	return s.newsStore.ListNews(ctx, "", 0)
}

func (s *NewsService) NewsByCategory(ctx context.Context, category string) ([]models.News, error) {
	cat := models.NewsCategory(category)
	if !cat.Valid() {
		return nil, apperr.Validation("unknown news category %q", category)
	}
	return s.newsStore.ListNews(ctx, cat, 0)
}

func (s *NewsService) PublishNews(ctx context.Context, news models.News) (*models.News, error) {
	return s.newsStore.InsertNews(ctx, news)
}
