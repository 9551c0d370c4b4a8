package comm

import "time"

// NATS subjects carrying entity mutation events. The facade cache and the
// socket service both subscribe; picksvc publishes after a successful write.
const (
	SubjectGameSettled       = "picks.game.settled"
	SubjectPredictionCreated = "picks.prediction.created"
	SubjectNewsPublished     = "picks.news.published"
)

// GameSettled announces a game reaching final status with its score.
type GameSettled struct {
	GameID    int64     `json:"game_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	StartsAt  time.Time `json:"starts_at"`
	SettledAt time.Time `json:"settled_at"`
}

// PredictionCreated announces a new published pick.
type PredictionCreated struct {
	PredictionID int64     `json:"prediction_id"`
	GameID       int64     `json:"game_id"`
	StartsAt     time.Time `json:"starts_at"`
	Confidence   float64   `json:"confidence"`
}

// NewsPublished announces a new news item.
type NewsPublished struct {
	NewsID      string    `json:"news_id"`
	Category    string    `json:"category"`
	Impact      string    `json:"impact"`
	PublishedAt time.Time `json:"published_at"`
}

// ClientEvent is the envelope relayed to websocket clients.
type ClientEvent struct {
	Type string      `json:"type"` // "game-settled", "pick-published", "news-published"
	Data interface{} `json:"data"`
}
