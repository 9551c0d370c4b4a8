package service

import (
	"context"
	"errors"
	"testing"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

type fakeNewsStore struct {
	items        []models.News
	lastCategory models.NewsCategory
	lastLimit    int64
}

func (f *fakeNewsStore) InsertNews(ctx context.Context, news models.News) (*models.News, error) {
	if err := news.Validate(); err != nil {
		return nil, err
	}
	f.items = append(f.items, news)
	return &news, nil
}

func (f *fakeNewsStore) ListNews(ctx context.Context, category models.NewsCategory, limit int64) ([]models.News, error) {
	f.lastCategory = category
	f.lastLimit = limit

	items := f.items
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func TestNewsService_LatestNews_DefaultLimit(t *testing.T) {
	store := &fakeNewsStore{}
	svc := NewNewsService(store)

	for _, limit := range []int{0, -5} {
		if _, err := svc.LatestNews(context.Background(), limit); err != nil {
			t.Fatalf("limit %d errored: %v", limit, err)
		}
		if store.lastLimit != DefaultNewsLimit {
			t.Errorf("limit %d: store received %d, want default %d", limit, store.lastLimit, DefaultNewsLimit)
		}
	}
}

func TestNewsService_LatestNews_Bounded(t *testing.T) {
	store := &fakeNewsStore{items: make([]models.News, 10)}
	svc := NewNewsService(store)

	items, err := svc.LatestNews(context.Background(), 3)
	if err != nil {
		t.Fatalf("LatestNews failed: %v", err)
	}
	if len(items) > 3 {
		t.Errorf("got %d items, want at most 3", len(items))
	}
}

func TestNewsService_NewsByCategory(t *testing.T) {
	store := &fakeNewsStore{}
	svc := NewNewsService(store)

	if _, err := svc.NewsByCategory(context.Background(), "injury_update"); err != nil {
		t.Fatalf("valid category errored: %v", err)
	}
	if store.lastCategory != models.CategoryInjuryUpdate {
		t.Errorf("store received category %q", store.lastCategory)
	}

	_, err := svc.NewsByCategory(context.Background(), "gossip")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("open category string: expected Validation kind, got %v", err)
	}
}

func TestNewsService_NoNewsIsEmptyNotError(t *testing.T) {
	svc := NewNewsService(&fakeNewsStore{})

	items, err := svc.AllNews(context.Background())
	if err != nil {
		t.Fatalf("empty store errored: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}
