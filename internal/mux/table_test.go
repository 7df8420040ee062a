package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"pokerbots-server/internal/config"
)

// testTableResponse decodes just the fields the tests care about
type testTableResponse struct {
	UUID  uuid.UUID `json:"uuid"`
	Name  string    `json:"name"`
	State struct {
		State struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"state"`
		Pot     int `json:"pot"`
		Players []struct {
			Name  string `json:"name"`
			IsBot bool   `json:"isBot"`
		} `json:"players"`
		CurrentPlayerID *int `json:"currentPlayerId"`
		Actions         []struct {
			ID string `json:"id"`
		} `json:"actions"`
		GameOver bool `json:"gameOver"`
	} `json:"state"`
}

func TestMain(m *testing.M) {
	// keep the bots frozen so the tests drive every action
	_ = os.Setenv("PB_CONFIG_FILE", "testdata/does-not-exist.yaml")
	_ = os.Setenv("PB_BOT_DELAY_MS", "3600000")
	if err := config.Load(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestPostTable(t *testing.T) {
	a := assert.New(t)
	m := NewMux("")
	defer m.Close()
	ts := httptest.NewServer(m)
	defer ts.Close()

	var resp testTableResponse
	assertPost(t, ts, "/table", createTablePayload{
		Name: "Alice",
		Bots: []botPayload{
			{Name: "Shark", Personality: "aggressive"},
			{Personality: "conservative"},
		},
	}, &resp, http.StatusCreated)

	a.NotEqual(uuid.Nil, resp.UUID)
	a.NotEmpty(resp.Name)
	a.Equal("waiting", resp.State.State.Name)
	a.Len(resp.State.Players, 3)
	a.Equal("Alice", resp.State.Players[0].Name)
	a.False(resp.State.Players[0].IsBot)
	a.Equal("Shark", resp.State.Players[1].Name)
	a.True(resp.State.Players[1].IsBot)

	// an empty payload seats the default bots
	resp = testTableResponse{}
	assertPost(t, ts, "/table", createTablePayload{TableName: "Back Room"}, &resp, http.StatusCreated)
	a.Equal("Back Room", resp.Name)
	a.Len(resp.State.Players, 4)
	a.Equal("You", resp.State.Players[0].Name)

	var errResp errorResponse
	assertPost(t, ts, "/table", createTablePayload{
		Bots: []botPayload{{Personality: "wild"}},
	}, &errResp, http.StatusBadRequest)
	assert.Equal(t, "invalid personality: wild", errResp.Message)

	assertPost(t, ts, "/table", createTablePayload{
		Bots: make([]botPayload, maxBots+1),
	}, nil, http.StatusBadRequest)

	assertPost(t, ts, "/table", "{bad json", nil, http.StatusBadRequest)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/table", strings.NewReader("{}"))
	a.NoError(err)
	req.Header.Set("Content-Type", "text/plain")
	assertDo(t, req, nil, http.StatusUnsupportedMediaType)
}

func TestGetTable(t *testing.T) {
	a := assert.New(t)
	m := NewMux("")
	defer m.Close()
	ts := httptest.NewServer(m)
	defer ts.Close()

	assertGet(t, ts, "/table/"+uuid.New().String(), nil, http.StatusNotFound)

	var created testTableResponse
	assertPost(t, ts, "/table", createTablePayload{}, &created, http.StatusCreated)

	var got testTableResponse
	assertGet(t, ts, "/table/"+created.UUID.String(), &got, http.StatusOK)
	a.Equal(created.UUID, got.UUID)
	a.Equal("waiting", got.State.State.Name)
}

func TestTableDealAndAction(t *testing.T) {
	a := assert.New(t)
	m := NewMux("")
	defer m.Close()
	ts := httptest.NewServer(m)
	defer ts.Close()

	// with two bots the human is first to act preflop
	var created testTableResponse
	assertPost(t, ts, "/table", createTablePayload{
		Bots: []botPayload{{}, {}},
	}, &created, http.StatusCreated)

	base := "/table/" + created.UUID.String()

	var dealt testTableResponse
	assertPost(t, ts, base+"/deal", struct{}{}, &dealt, http.StatusOK)
	a.Equal("preflop", dealt.State.State.Name)
	a.Equal(15, dealt.State.Pot)
	a.NotNil(dealt.State.CurrentPlayerID)
	a.Equal(0, *dealt.State.CurrentPlayerID)
	a.Len(dealt.State.Actions, 3)
	a.Equal("call", dealt.State.Actions[0].ID)

	var errResp errorResponse
	assertPost(t, ts, base+"/deal", struct{}{}, &errResp, http.StatusBadRequest)
	a.Equal("a hand is already in progress", errResp.Message)

	assertPost(t, ts, base+"/action", actionPayload{Action: "jump"}, nil, http.StatusBadRequest)

	var acted testTableResponse
	assertPost(t, ts, base+"/action", actionPayload{Action: "call"}, &acted, http.StatusOK)
	a.Equal(25, acted.State.Pot)
	a.Equal(1, *acted.State.CurrentPlayerID)

	// no longer the human's turn
	assertPost(t, ts, base+"/action", actionPayload{Action: "call"}, nil, http.StatusConflict)
}

func TestTableWebSocket(t *testing.T) {
	a := assert.New(t)
	m := NewMux("")
	defer m.Close()
	ts := httptest.NewServer(m)
	defer ts.Close()

	var created testTableResponse
	assertPost(t, ts, "/table", createTablePayload{
		Bots: []botPayload{{}, {}},
	}, &created, http.StatusCreated)

	base := "/table/" + created.UUID.String()
	assertPost(t, ts, base+"/deal", struct{}{}, nil, http.StatusOK)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + base + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	a.NoError(err)
	defer conn.Close()
	defer resp.Body.Close()

	type wsTestMessage struct {
		Type  string          `json:"type"`
		Error string          `json:"error"`
		State json.RawMessage `json:"state"`
	}

	var msg wsTestMessage
	a.NoError(conn.ReadJSON(&msg))
	a.Equal("state", msg.Type)
	a.NotEmpty(msg.State)

	a.NoError(conn.WriteJSON(actionPayload{Action: "call"}))
	a.NoError(conn.ReadJSON(&msg))
	a.Equal("state", msg.Type)

	// acting out of turn comes back as an error frame
	a.NoError(conn.WriteJSON(actionPayload{Action: "check"}))
	a.NoError(conn.ReadJSON(&msg))
	a.Equal("error", msg.Type)
	a.Equal("it is not your turn", msg.Error)
}
