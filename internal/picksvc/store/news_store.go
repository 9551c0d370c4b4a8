package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtside/picks-services/internal/picksvc/models"
)

type NewsStore struct {
	col *mongo.Collection
}

func NewNewsStore(db *mongo.Database) *NewsStore {
	return &NewsStore{col: db.Collection("news")}
}

func (s *NewsStore) InsertNews(ctx context.Context, news models.News) (*models.News, error) {
	if err := news.Validate(); err != nil {
		return nil, err
	}

	res, err := s.col.InsertOne(ctx, news)
	if err != nil {
		return nil, fmt.Errorf("failed to insert news: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		news.ID = oid
	}

	return &news, nil
}

// ListNews returns items newest publish date first. A zero limit means
// unbounded, category filters when non-empty.
func (s *NewsStore) ListNews(ctx context.Context, category models.NewsCategory, limit int64) ([]models.News, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.News{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode news: %w", err)
	}

	return items, nil
}
