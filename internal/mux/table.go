package mux

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerbots-server/internal/config"
	"pokerbots-server/internal/util"
	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/poker/bot"
	"pokerbots-server/pkg/poker/holdem"
	"pokerbots-server/pkg/sound"
)

// humanSeat is the seat index of the human player at every table
const humanSeat = 0

const maxBots = 8

type botPayload struct {
	Name        string `json:"name"`
	Personality string `json:"personality"`
}

type createTablePayload struct {
	Name          string       `json:"name"`
	TableName     string       `json:"tableName"`
	SmallBlind    int          `json:"smallBlind"`
	StartingChips int          `json:"startingChips"`
	Bots          []botPayload `json:"bots"`
}

type tableResponse struct {
	UUID  uuid.UUID          `json:"uuid"`
	Name  string             `json:"name"`
	State *holdem.TableState `json:"state"`
}

// defaultBots fills the table when the request doesn't name its own
var defaultBots = []botPayload{
	{Personality: string(bot.Aggressive)},
	{Personality: string(bot.Conservative)},
	{Personality: string(bot.Balanced)},
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTablePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		bots := payload.Bots
		if len(bots) == 0 {
			bots = defaultBots
		}

		if len(bots) > maxBots {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("at most %d bots per table", maxBots))
			return
		}

		seats := make([]holdem.Seat, 0, len(bots)+1)
		seats = append(seats, holdem.Seat{Name: payload.Name})
		for _, b := range bots {
			personality := bot.Balanced
			if b.Personality != "" {
				p, err := bot.PersonalityFromString(b.Personality)
				if err != nil {
					writeJSONError(w, http.StatusBadRequest, err)
					return
				}

				personality = p
			}

			seats = append(seats, holdem.Seat{
				Name:        b.Name,
				IsBot:       true,
				Personality: personality,
			})
		}

		cfg := config.Instance()
		opts := holdem.Options{
			SmallBlind:    cfg.SmallBlind,
			StartingChips: cfg.StartingChips,
			BotDelay:      cfg.BotDelay(),
		}

		if payload.SmallBlind > 0 {
			opts.SmallBlind = payload.SmallBlind
		}

		if payload.StartingChips > 0 {
			opts.StartingChips = payload.StartingChips
		}

		game, err := holdem.NewGame(logrus.StandardLogger(), seats, opts)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		game.SetSoundPlayer(sound.NewLogPlayer(logrus.StandardLogger()))

		tableName := payload.TableName
		if tableName == "" {
			tableName = util.GetRandomTableName()
		}

		s := newSession(game, tableName, logrus.StandardLogger())
		m.addSession(s)

		s.log.WithFields(logrus.Fields{
			"name": s.name,
			"bots": len(bots),
		}).Info("table created")

		writeJSON(w, http.StatusCreated, tableResponse{
			UUID:  s.id,
			Name:  s.name,
			State: s.snapshot(humanSeat),
		})
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromContext(r)
		writeJSON(w, http.StatusOK, tableResponse{
			UUID:  s.id,
			Name:  s.name,
			State: s.snapshot(humanSeat),
		})
	}
}

func (m *Mux) postTableUUIDDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromContext(r)

		if err := s.withGame(func(g *holdem.Game) error {
			return g.StartHand()
		}); err != nil {
			writeJSONError(w, statusForGameError(err), err)
			return
		}

		writeJSON(w, http.StatusOK, tableResponse{
			UUID:  s.id,
			Name:  s.name,
			State: s.snapshot(humanSeat),
		})
	}
}

type actionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postTableUUIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromContext(r)

		var payload actionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		act, err := action.FromString(payload.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if err := s.withGame(func(g *holdem.Game) error {
			return g.SubmitAction(humanSeat, act, payload.Amount)
		}); err != nil {
			writeJSONError(w, statusForGameError(err), err)
			return
		}

		writeJSON(w, http.StatusOK, tableResponse{
			UUID:  s.id,
			Name:  s.name,
			State: s.snapshot(humanSeat),
		})
	}
}

// statusForGameError maps turn and state violations to 409 Conflict and
// everything else to 400 Bad Request
func statusForGameError(err error) int {
	if errors.Is(err, holdem.ErrNotYourTurn) ||
		errors.Is(err, holdem.ErrNoBettingRound) ||
		errors.Is(err, holdem.ErrGameOver) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
