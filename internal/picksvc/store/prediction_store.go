package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PredictionStore struct {
	db *pgxpool.Pool
}

func NewPredictionStore(db *pgxpool.Pool) *PredictionStore {
	return &PredictionStore{db: db}
}

func (s *PredictionStore) CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error) {
	if err := pred.Validate(); err != nil {
		return nil, err
	}
	if pred.GeneratedAt.IsZero() {
		pred.GeneratedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO predictions (game_id, pick_type, picked_team, line, confidence, rationale, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		pred.GameID,
		pred.PickType,
		pred.PickedTeam,
		pred.Line,
		pred.Confidence,
		pred.Rationale,
		pred.GeneratedAt,
	).Scan(&pred.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, apperr.Conflict("game %d already has a prediction", pred.GameID)
			case pgForeignKeyViolation:
				return nil, apperr.Validation("prediction references missing game %d", pred.GameID)
			}
		}
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	return &pred, nil
}

// GetPredictionByGameID returns nil without error when the game has no
// prediction yet; absence of a pick is not a failure.
func (s *PredictionStore) GetPredictionByGameID(ctx context.Context, gameID int64) (*models.Prediction, error) {
	query := `
		SELECT id, game_id, pick_type, picked_team, line, confidence, rationale, generated_at
		FROM predictions
		WHERE game_id = $1
	`

	pred := &models.Prediction{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&pred.ID,
		&pred.GameID,
		&pred.PickType,
		&pred.PickedTeam,
		&pred.Line,
		&pred.Confidence,
		&pred.Rationale,
		&pred.GeneratedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction by game ID: %w", err)
	}

	return pred, nil
}

// ForEachSettledPick streams final games with their predictions starting
// within [from, to), invoking fn per row. Rows are never materialized in
// bulk so wide ranges stay flat in memory.
func (s *PredictionStore) ForEachSettledPick(ctx context.Context, from, to time.Time, fn func(models.SettledPick) error) error {
	query := `
		SELECT g.id, g.sport, g.starts_at, g.home_team, g.away_team, g.status,
		       g.home_score, g.away_score, g.created_at, g.updated_at,
		       p.id, p.game_id, p.pick_type, p.picked_team, p.line, p.confidence, p.rationale, p.generated_at
		FROM games g
		JOIN predictions p ON p.game_id = g.id
		WHERE g.status = $1 AND g.starts_at >= $2 AND g.starts_at < $3
		ORDER BY g.starts_at ASC, g.id ASC
	`

	rows, err := s.db.Query(ctx, query, models.GameFinal, from, to)
	if err != nil {
		return fmt.Errorf("failed to query settled picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sp models.SettledPick
		err := rows.Scan(
			&sp.Game.ID,
			&sp.Game.Sport,
			&sp.Game.StartsAt,
			&sp.Game.HomeTeam,
			&sp.Game.AwayTeam,
			&sp.Game.Status,
			&sp.Game.HomeScore,
			&sp.Game.AwayScore,
			&sp.Game.CreatedAt,
			&sp.Game.UpdatedAt,
			&sp.Prediction.ID,
			&sp.Prediction.GameID,
			&sp.Prediction.PickType,
			&sp.Prediction.PickedTeam,
			&sp.Prediction.Line,
			&sp.Prediction.Confidence,
			&sp.Prediction.Rationale,
			&sp.Prediction.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan settled pick: %w", err)
		}

		if err := fn(sp); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed reading settled picks: %w", err)
	}

	return nil
}
