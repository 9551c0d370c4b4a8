package models

import (
	"time"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
)

type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameFinal      GameStatus = "final"
)

func (s GameStatus) Valid() bool {
	switch s {
	case GameScheduled, GameInProgress, GameFinal:
		return true
	}
	return false
}

// rank orders statuses so transitions only move forward.
func (s GameStatus) rank() int {
	switch s {
	case GameScheduled:
		return 0
	case GameInProgress:
		return 1
	case GameFinal:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next is a forward move.
func (s GameStatus) CanTransitionTo(next GameStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() > s.rank()
}

type Game struct {
	ID        int64      `json:"id"` // Primary key, store assigned
	Sport     string     `json:"sport"`
	StartsAt  time.Time  `json:"starts_at"` // Scheduled tip-off / kickoff
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	Status    GameStatus `json:"status"`
	HomeScore *int       `json:"home_score,omitempty"` // nil until settled
	AwayScore *int       `json:"away_score,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (g *Game) Validate() error {
	if g.HomeTeam == "" || g.AwayTeam == "" {
		return apperr.Validation("game requires home and away teams")
	}
	if g.HomeTeam == g.AwayTeam {
		return apperr.Validation("game cannot pair a team with itself")
	}
	if g.StartsAt.IsZero() {
		return apperr.Validation("game requires a scheduled start time")
	}
	if !g.Status.Valid() {
		return apperr.Validation("unknown game status %q", g.Status)
	}
	if g.Status == GameFinal && (g.HomeScore == nil || g.AwayScore == nil) {
		return apperr.Validation("final game requires a score")
	}
	return nil
}

// Winner returns the winning team of a final game. ok is false for
// non-final games and for ties.
func (g *Game) Winner() (string, bool) {
	if g.Status != GameFinal || g.HomeScore == nil || g.AwayScore == nil {
		return "", false
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeam, true
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeam, true
	}
	return "", false
}

// Margin is home score minus away score for a final game.
func (g *Game) Margin() (int, bool) {
	if g.Status != GameFinal || g.HomeScore == nil || g.AwayScore == nil {
		return 0, false
	}
	return *g.HomeScore - *g.AwayScore, true
}

// GamePick is a game joined with its prediction, the shape every picks
// listing returns. Prediction is nil when no pick has been published.
type GamePick struct {
	Game       Game        `json:"game"`
	Prediction *Prediction `json:"prediction,omitempty"`
}
