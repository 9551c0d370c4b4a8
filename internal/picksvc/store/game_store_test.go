package store

import (
	"context"
	"errors"
	"testing"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

func finalGame(homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:        7,
		HomeTeam:  "Boston Celtics",
		AwayTeam:  "Miami Heat",
		Status:    models.GameFinal,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	}
}

// Settling a game that is already final with the same score must return
// the stored row unchanged, not an error.
func TestResolveSettled_SameScoreIsIdempotent(t *testing.T) {
	game := finalGame(110, 104)

	got, err := resolveSettled(game, 110, 104)
	if err != nil {
		t.Fatalf("repeat settlement errored: %v", err)
	}
	if got != game {
		t.Error("idempotent settlement did not return the stored game")
	}
	if *got.HomeScore != 110 || *got.AwayScore != 104 {
		t.Errorf("stored score changed to %d-%d", *got.HomeScore, *got.AwayScore)
	}
}

func TestResolveSettled_DifferentScoreConflicts(t *testing.T) {
	game := finalGame(110, 104)

	cases := []struct {
		name       string
		home, away int
	}{
		{"different home score", 120, 104},
		{"different away score", 110, 100},
		{"swapped scores", 104, 110},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveSettled(game, tc.home, tc.away)
			if !errors.Is(err, apperr.ErrConflict) {
				t.Errorf("expected Conflict kind, got %v", err)
			}
		})
	}
}

// A final row missing its score cannot match any attempt; the caller gets
// a Conflict rather than a silent overwrite.
func TestResolveSettled_MissingStoredScoreConflicts(t *testing.T) {
	game := finalGame(110, 104)
	game.HomeScore = nil
	game.AwayScore = nil

	_, err := resolveSettled(game, 110, 104)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected Conflict kind, got %v", err)
	}
}

func TestSettleGame_RejectsNegativeScores(t *testing.T) {
	s := NewGameStore(nil)

	for _, scores := range [][2]int{{-1, 100}, {100, -1}} {
		_, err := s.SettleGame(context.Background(), 7, scores[0], scores[1])
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("scores %v: expected Validation kind, got %v", scores, err)
		}
	}
}
