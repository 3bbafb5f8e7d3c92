package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fictionary/internal/app"
	"fictionary/internal/config"
	"fictionary/internal/domain"
	"fictionary/internal/store"
)

type testEnv struct {
	server *Server
	store  *store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New()
	registry := app.NewRegistry()
	broadcast := app.NewBroadcaster(st, registry, logger)

	cfg := &config.Config{Bind: "127.0.0.1", Port: 8080, Env: "development"}
	server := NewServer(cfg, st, registry, broadcast, http.NotFoundHandler(), logger)

	return &testEnv{server: server, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.server.server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("response not successful: %s", rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
	}
}

func TestCreateAndLookupGame(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/games", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var created CreateGameResponse
	decodeData(t, rec, &created)
	if created.Code == "" || created.ID == "" {
		t.Fatalf("incomplete creation response: %+v", created)
	}
	if !strings.HasSuffix(created.JoinLink, "/join/"+created.Code) {
		t.Errorf("join link = %s, want suffix /join/%s", created.JoinLink, created.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/games/code/"+strings.ToLower(created.Code), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup status = %d, want 200", rec.Code)
	}
	var game GameResponse
	decodeData(t, rec, &game)
	if game.ID != created.ID {
		t.Errorf("lookup id = %s, want %s", game.ID, created.ID)
	}
	if game.Phase != string(domain.PhaseWordEntry) || game.CurrentRound != 1 {
		t.Errorf("fresh game state wrong: %+v", game)
	}

	rec = e.do(t, http.MethodGet, "/api/games/code/NOPE99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing code status = %d, want 404", rec.Code)
	}
}

func TestCreateAndListPlayers(t *testing.T) {
	e := newTestEnv(t)
	game, _ := e.store.CreateGame()

	rec := e.do(t, http.MethodPost, "/api/games/"+game.ID+"/players",
		`{"name":"Ana","sessionId":"sess-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var ana domain.Player
	decodeData(t, rec, &ana)
	if !ana.IsAdmin {
		t.Error("first player should be admin")
	}

	rec = e.do(t, http.MethodPost, "/api/games/"+game.ID+"/players",
		`{"name":"Watcher","sessionId":"sess-2","role":"SPECTATOR"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, "/api/games/"+game.ID+"/players", "")
	var players []*domain.Player
	decodeData(t, rec, &players)
	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}
	if players[1].Role != domain.RoleSpectator {
		t.Errorf("second player role = %s, want SPECTATOR", players[1].Role)
	}

	rec = e.do(t, http.MethodPost, "/api/games/"+game.ID+"/players",
		`{"name":"","sessionId":"sess-3"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/games/missing/players", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing game status = %d, want 404", rec.Code)
	}
}

func TestGameStateScopedToRound(t *testing.T) {
	e := newTestEnv(t)
	game, _ := e.store.CreateGame()
	ana, _ := e.store.CreatePlayer(game.ID, "Ana", "sess-1", domain.RolePlayer)
	e.store.CreateDefinition(game.ID, ana.ID, 1, "round one def", false)
	e.store.CreateDefinition(game.ID, ana.ID, 2, "round two def", false)

	rec := e.do(t, http.MethodGet, "/api/games/"+game.ID+"/state", "")
	var state domain.GameState
	decodeData(t, rec, &state)
	if len(state.Definitions) != 1 || state.Definitions[0].Round != 1 {
		t.Errorf("default round state wrong: %+v", state.Definitions)
	}

	rec = e.do(t, http.MethodGet, "/api/games/"+game.ID+"/state?round=2", "")
	decodeData(t, rec, &state)
	if len(state.Definitions) != 1 || state.Definitions[0].Round != 2 {
		t.Errorf("round 2 state wrong: %+v", state.Definitions)
	}

	rec = e.do(t, http.MethodGet, "/api/games/"+game.ID+"/state?round=nope", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad round status = %d, want 400", rec.Code)
	}
}

func TestQRCodePNG(t *testing.T) {
	e := newTestEnv(t)
	game, _ := e.store.CreateGame()

	rec := e.do(t, http.MethodGet, "/api/games/"+game.ID+"/qr", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("content type = %s, want image/png", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty PNG body")
	}
}

func TestHealthAndStats(t *testing.T) {
	e := newTestEnv(t)
	e.store.CreateGame()

	rec := e.do(t, http.MethodGet, "/api/health", "")
	var health HealthResponse
	decodeData(t, rec, &health)
	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}

	rec = e.do(t, http.MethodGet, "/api/stats", "")
	var stats StatsResponse
	decodeData(t, rec, &stats)
	if stats.ActiveGames != 1 {
		t.Errorf("active games = %d, want 1", stats.ActiveGames)
	}
	if stats.Started == "" {
		t.Error("started field empty")
	}
}

func TestCORSPreflight(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodOptions, "/api/games", "")
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}
