package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/poker/holdem"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getTableUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromContext(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := &wsClient{
			viewerID: humanSeat,
			send:     make(chan *wsMessage, 16),
		}

		s.addClient(client)
		defer func() {
			s.removeClient(client)
			_ = conn.Close()
		}()

		go s.webSocketWriteLoop(conn, client)
		s.webSocketReadLoop(conn, client)
	}
}

func (s *session) webSocketWriteLoop(conn *websocket.Conn, client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-client.send:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				s.log.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

// webSocketReadLoop executes the human's actions as they arrive
func (s *session) webSocketReadLoop(conn *websocket.Conn, client *wsClient) {
	for {
		var payload actionPayload
		if err := conn.ReadJSON(&payload); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Error("could not read message")
			}

			return
		}

		act, err := action.FromString(payload.Action)
		if err == nil {
			err = s.withGame(func(g *holdem.Game) error {
				return g.SubmitAction(client.viewerID, act, payload.Amount)
			})
		}

		if err != nil {
			select {
			case client.send <- &wsMessage{Type: "error", Error: err.Error()}:
			default:
			}
		}
	}
}
