package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/courtside/picks-services/internal/comm"
)

// Broker relays entity mutation events from NATS to websocket clients.
type Broker struct {
	Conn      *nats.Conn
	Broadcast func(*comm.ClientEvent)
}

func NewBroker(conn *nats.Conn, broadcast func(*comm.ClientEvent)) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: broadcast,
	}
}

// SubscribeAll wires the relay for every published subject.
func (b *Broker) SubscribeAll() ([]*nats.Subscription, error) {
	subjects := map[string]string{
		comm.SubjectGameSettled:       "game-settled",
		comm.SubjectPredictionCreated: "pick-published",
		comm.SubjectNewsPublished:     "news-published",
	}

	subs := make([]*nats.Subscription, 0, len(subjects))
	for subject, eventType := range subjects {
		eventType := eventType
		sub, err := b.Conn.Subscribe(subject, func(msg *nats.Msg) {
			b.relay(eventType, msg.Data)
		})
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

func (b *Broker) relay(eventType string, payload []byte) {
	var data interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		log.Errorf("Error decoding %s event: %s", eventType, err)
		return
	}

	b.Broadcast(&comm.ClientEvent{Type: eventType, Data: data})
}
