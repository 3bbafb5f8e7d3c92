package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"fictionary/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateGameResponse is the response for game creation
type CreateGameResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	JoinLink string `json:"joinLink"`
}

// GameResponse is the response for game lookups
type GameResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Phase        string `json:"phase"`
	CurrentRound int    `json:"currentRound"`
	PlayerCount  int    `json:"playerCount"`
}

// CreatePlayerRequest is the body for player creation
type CreatePlayerRequest struct {
	Name      string `json:"name"`
	SessionID string `json:"sessionId"`
	Role      string `json:"role,omitempty"`
	Spectator bool   `json:"spectator,omitempty"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveGames   int    `json:"activeGames"`
	LiveSessions  int    `json:"liveSessions"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Started       string `json:"started"`
}

// handleCreateGame handles POST /api/games
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.store.CreateGame()
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.logger.Info("game created", "gameID", game.ID, "code", game.Code)
	s.sendSuccess(w, &CreateGameResponse{
		ID:       game.ID,
		Code:     game.Code,
		JoinLink: s.joinLink(r, game.Code),
	})
}

// handleGameByCode handles GET /api/games/code/{code}
func (s *Server) handleGameByCode(w http.ResponseWriter, r *http.Request) {
	game, err := s.store.GameByCode(chi.URLParam(r, "code"))
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.sendSuccess(w, &GameResponse{
		ID:           game.ID,
		Code:         game.Code,
		Phase:        string(game.Phase),
		CurrentRound: game.CurrentRound,
		PlayerCount:  len(s.store.PlayersByGame(game.ID)),
	})
}

// handleCreatePlayer handles POST /api/games/{gameID}/players. Creation runs
// under the game lock so it serializes with websocket commands for the same
// game.
func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, domain.ErrInvalidMessage)
		return
	}

	unlock := s.store.LockGame(gameID)
	defer unlock()

	player, err := s.store.CreatePlayer(gameID, req.Name, req.SessionID, domain.RoleFromWire(req.Role, req.Spectator))
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.broadcast.Broadcast(gameID)
	s.sendSuccess(w, player)
}

// handleListPlayers handles GET /api/games/{gameID}/players
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if _, err := s.store.GameByID(gameID); err != nil {
		s.sendError(w, err)
		return
	}

	s.sendSuccess(w, s.store.PlayersByGame(gameID))
}

// handleGameState handles GET /api/games/{gameID}/state?round=N, defaulting
// to the current round
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game, err := s.store.GameByID(gameID)
	if err != nil {
		s.sendError(w, err)
		return
	}

	round := game.CurrentRound
	if raw := r.URL.Query().Get("round"); raw != "" {
		round, err = strconv.Atoi(raw)
		if err != nil {
			s.sendError(w, domain.ErrInvalidMessage)
			return
		}
	}

	state, err := s.broadcast.Snapshot(gameID, round)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.sendSuccess(w, state)
}

// handleQR handles GET /api/games/{gameID}/qr, serving a QR code of the
// game's join link as PNG
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	game, err := s.store.GameByID(chi.URLParam(r, "gameID"))
	if err != nil {
		s.sendError(w, err)
		return
	}

	png, err := qrcode.Encode(s.joinLink(r, game.Code), qrcode.Medium, 256)
	if err != nil {
		s.sendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{Status: "ok"})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveGames:   s.store.GameCount(),
		LiveSessions:  s.registry.SessionCount(),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Started:       humanize.Time(s.startedAt),
	})
}

// joinLink builds the externally reachable join URL for a game code
func (s *Server) joinLink(r *http.Request, code string) string {
	scheme := s.config.Scheme()
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/join/" + code
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError maps a classified domain error onto an HTTP status and the
// standard error envelope
func (s *Server) sendError(w http.ResponseWriter, err error) {
	kind := domain.Kind(err)

	status := http.StatusInternalServerError
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindUnauthorized:
		status = http.StatusForbidden
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	}

	message := err.Error()
	if kind == domain.KindInternal {
		s.logger.Error("request failed", "error", err)
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(kind),
			Message: message,
		},
	})
}
