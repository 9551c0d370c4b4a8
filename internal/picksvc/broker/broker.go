package broker

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/courtside/picks-services/internal/comm"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

// Broker publishes entity mutation events after successful writes. The
// socket service and any facade cache instance subscribe to them.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) PublishGameSettled(game *models.Game) {
	if game.HomeScore == nil || game.AwayScore == nil {
		return
	}

	b.publish(comm.SubjectGameSettled, comm.GameSettled{
		GameID:    game.ID,
		HomeTeam:  game.HomeTeam,
		AwayTeam:  game.AwayTeam,
		HomeScore: *game.HomeScore,
		AwayScore: *game.AwayScore,
		StartsAt:  game.StartsAt,
		SettledAt: time.Now().UTC(),
	})
}

func (b *Broker) PublishPredictionCreated(pred *models.Prediction, game *models.Game) {
	b.publish(comm.SubjectPredictionCreated, comm.PredictionCreated{
		PredictionID: pred.ID,
		GameID:       pred.GameID,
		StartsAt:     game.StartsAt,
		Confidence:   pred.Confidence,
	})
}

func (b *Broker) PublishNewsPublished(news *models.News) {
	b.publish(comm.SubjectNewsPublished, comm.NewsPublished{
		NewsID:      news.ID.Hex(),
		Category:    string(news.Category),
		Impact:      string(news.Impact),
		PublishedAt: news.PublishedAt,
	})
}

// publish is best effort: a dropped event degrades cache freshness and
// live updates, never the write that triggered it.
func (b *Broker) publish(subject string, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Error marshaling event for %s: %s", subject, err)
		return
	}

	if err := b.Conn.Publish(subject, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", subject, err)
	}
}
