package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	if game.Status == "" {
		game.Status = models.GameScheduled
	}
	if err := game.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO games (sport, starts_at, home_team, away_team, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		game.Sport,
		game.StartsAt,
		game.HomeTeam,
		game.AwayTeam,
		game.Status,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &game, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT id, sport, starts_at, home_team, away_team, status, home_score, away_score, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.Sport,
		&game.StartsAt,
		&game.HomeTeam,
		&game.AwayTeam,
		&game.Status,
		&game.HomeScore,
		&game.AwayScore,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("game %d", gameID)
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// ListPicks returns games starting within [from, to) joined with their
// prediction when one exists, ordered by start time then id so listings
// are deterministic.
func (s *GameStore) ListPicks(ctx context.Context, from, to time.Time) ([]models.GamePick, error) {
	query := `
		SELECT g.id, g.sport, g.starts_at, g.home_team, g.away_team, g.status,
		       g.home_score, g.away_score, g.created_at, g.updated_at,
		       p.id, p.pick_type, p.picked_team, p.line, p.confidence, p.rationale, p.generated_at
		FROM games g
		LEFT JOIN predictions p ON p.game_id = g.id
		WHERE g.starts_at >= $1 AND g.starts_at < $2
		ORDER BY g.starts_at ASC, g.id ASC
	`

	rows, err := s.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	defer rows.Close()

	picks := []models.GamePick{}
	for rows.Next() {
		var (
			pick        models.GamePick
			predID      *int64
			pickType    *string
			pickedTeam  *string
			line        *float64
			confidence  *float64
			rationale   *string
			generatedAt *time.Time
		)

		err := rows.Scan(
			&pick.Game.ID,
			&pick.Game.Sport,
			&pick.Game.StartsAt,
			&pick.Game.HomeTeam,
			&pick.Game.AwayTeam,
			&pick.Game.Status,
			&pick.Game.HomeScore,
			&pick.Game.AwayScore,
			&pick.Game.CreatedAt,
			&pick.Game.UpdatedAt,
			&predID,
			&pickType,
			&pickedTeam,
			&line,
			&confidence,
			&rationale,
			&generatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick row: %w", err)
		}

		if predID != nil {
			pick.Prediction = &models.Prediction{
				ID:          *predID,
				GameID:      pick.Game.ID,
				PickType:    models.PickType(*pickType),
				PickedTeam:  *pickedTeam,
				Confidence:  *confidence,
				GeneratedAt: *generatedAt,
			}
			if line != nil {
				pick.Prediction.Line = *line
			}
			if rationale != nil {
				pick.Prediction.Rationale = *rationale
			}
		}

		picks = append(picks, pick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading pick rows: %w", err)
	}

	return picks, nil
}

// UpdateGameStatus moves a game forward to next. Backward moves are
// rejected as Validation, a lost race as Conflict.
func (s *GameStore) UpdateGameStatus(ctx context.Context, gameID int64, next models.GameStatus) error {
	game, err := s.GetGameByID(ctx, gameID)
	if err != nil {
		return err
	}

	if game.Status == next {
		return nil
	}
	if !game.Status.CanTransitionTo(next) {
		return apperr.Validation("game %d cannot move from %s to %s", gameID, game.Status, next)
	}
	if next == models.GameFinal {
		return apperr.Validation("game %d must be settled with a score", gameID)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE games SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, next, gameID, game.Status)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("game %d status changed concurrently", gameID)
	}

	return nil
}

// SettleGame marks a game final with its score. The conditional update
// serializes concurrent settlement attempts: settling an already-final
// game with the same score is a no-op, a different score is a Conflict.
func (s *GameStore) SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, apperr.Validation("scores cannot be negative")
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE games
		SET status = $1, home_score = $2, away_score = $3, updated_at = now()
		WHERE id = $4 AND status <> $1
	`, models.GameFinal, homeScore, awayScore, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to settle game: %w", err)
	}

	game, err := s.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		// Already final before this attempt.
		return resolveSettled(game, homeScore, awayScore)
	}

	return game, nil
}

// resolveSettled decides a settlement attempt that lost the conditional
// update: repeating the stored final score is an idempotent no-op, any
// other score is a Conflict.
func resolveSettled(game *models.Game, homeScore, awayScore int) (*models.Game, error) {
	if game.HomeScore != nil && game.AwayScore != nil &&
		*game.HomeScore == homeScore && *game.AwayScore == awayScore {
		return game, nil
	}
	return nil, apperr.Conflict("game %d already settled with a different outcome", game.ID)
}
