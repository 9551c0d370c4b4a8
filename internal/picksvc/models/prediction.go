package models

import (
	"time"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
)

type PickType string

const (
	PickWinner PickType = "winner"
	PickSpread PickType = "spread"
)

func (t PickType) Valid() bool {
	return t == PickWinner || t == PickSpread
}

// Confidence scale bounds. The value itself comes from the model pipeline
// and is treated as an opaque ranked score.
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 100.0
)

type Prediction struct {
	ID          int64     `json:"id"`      // Primary key, store assigned
	GameID      int64     `json:"game_id"` // Foreign key to Games, one pick per game
	PickType    PickType  `json:"pick_type"`
	PickedTeam  string    `json:"picked_team"`
	Line        float64   `json:"line,omitempty"`     // spread line, home perspective
	Confidence  float64   `json:"confidence"`         // 0..100, externally computed
	Rationale   string    `json:"rationale,omitempty"` // premium-only write-up
	GeneratedAt time.Time `json:"generated_at"`
}

func (p *Prediction) Validate() error {
	if p.GameID == 0 {
		return apperr.Validation("prediction requires a game id")
	}
	if !p.PickType.Valid() {
		return apperr.Validation("unknown pick type %q", p.PickType)
	}
	if p.PickedTeam == "" {
		return apperr.Validation("prediction requires a picked team")
	}
	if p.Confidence < ConfidenceMin || p.Confidence > ConfidenceMax {
		return apperr.Validation("confidence %.2f out of bounds [%v,%v]", p.Confidence, ConfidenceMin, ConfidenceMax)
	}
	return nil
}

// SettledPick is one row of the analytics join: a final game paired with
// its prediction. Produced by the store, consumed by the aggregator.
type SettledPick struct {
	Game       Game
	Prediction Prediction
}
