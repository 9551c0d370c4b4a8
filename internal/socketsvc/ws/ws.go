package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/courtside/picks-services/internal/comm"
)

// Ws tracks live browser connections so settlement and pick events can be
// fanned out as they happen.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	v, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return v.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

// Broadcast sends an event to every connected client. Dead connections
// are dropped from the map as they fail.
func (s *Ws) Broadcast(event *comm.ClientEvent) {
	s.connMap.Range(func(key, value interface{}) bool {
		conn := value.(*websocket.Conn)
		if err := conn.WriteJSON(event); err != nil {
			log.Errorf("Error writing to socket %v, dropping connection: %s", key, err)
			conn.Close()
			s.connMap.Delete(key)
		}
		return true
	})
}
