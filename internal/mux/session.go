package mux

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerbots-server/pkg/poker/holdem"
)

// wsMessage is the envelope sent to websocket clients
type wsMessage struct {
	Type  string             `json:"type"`
	Error string             `json:"error,omitempty"`
	State *holdem.TableState `json:"state,omitempty"`
}

type wsClient struct {
	viewerID int
	send     chan *wsMessage
}

// session owns one table. All access to the game goes through withGame so
// the HTTP handlers, the websocket read loops, and the bot tick loop never
// touch it concurrently.
type session struct {
	id   uuid.UUID
	name string
	log  logrus.FieldLogger

	mu      sync.Mutex
	game    *holdem.Game
	clients map[*wsClient]bool

	closeOnce sync.Once
	done      chan struct{}
}

// newSession starts the bot tick loop and returns the running session
func newSession(game *holdem.Game, name string, logger logrus.FieldLogger) *session {
	s := &session{
		id:      uuid.New(),
		name:    name,
		game:    game,
		clients: make(map[*wsClient]bool),
		done:    make(chan struct{}),
	}
	s.log = logger.WithField("table", s.id)

	go s.run()
	return s
}

// run drives scheduled bot actions until the session closes
func (s *session) run() {
	ticker := time.NewTicker(s.game.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			changed, err := s.game.Tick()
			if err != nil {
				s.log.WithError(err).Error("tick failed")
			}

			if changed {
				s.broadcastLocked()
			}
			s.mu.Unlock()
		}
	}
}

// withGame runs fn with exclusive access to the game, then pushes the new
// state to every websocket client
func (s *session) withGame(fn func(g *holdem.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.game)
	if err == nil {
		s.broadcastLocked()
	}

	return err
}

// snapshot returns the table state as seen by viewerID
func (s *session) snapshot(viewerID int) *holdem.TableState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot(viewerID)
}

// broadcastLocked sends each client its own view of the table.
// A client that cannot keep up has the update dropped; the next one will
// carry the full state anyway.
func (s *session) broadcastLocked() {
	for c := range s.clients {
		msg := &wsMessage{Type: "state", State: s.game.Snapshot(c.viewerID)}
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (s *session) addClient(c *wsClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = true
	c.send <- &wsMessage{Type: "state", State: s.game.Snapshot(c.viewerID)}
}

func (s *session) removeClient(c *wsClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[c] {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()
		for c := range s.clients {
			delete(s.clients, c)
			close(c.send)
		}
	})
}
