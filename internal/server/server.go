// Package server exposes the rules engine over websockets. It owns no game
// rules: it forwards actions into the engine, relays selection prompts, and
// broadcasts state views.
package server

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/godeaux/predation/internal/game"
	"github.com/godeaux/predation/internal/repository"
)

// Server upgrades websocket connections and routes them to game sessions.
type Server struct {
	logger  *zap.Logger
	engine  *game.Engine
	matches *repository.MatchRepository // nil disables persistence

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a websocket gateway over an engine.
func New(engine *game.Engine, matches *repository.MatchRepository, logger *zap.Logger) *Server {
	return &Server{
		logger:  logger,
		engine:  engine,
		matches: matches,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

// Handler returns the HTTP handler for the gateway.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	seatStr := r.URL.Query().Get("seat")
	name := r.URL.Query().Get("name")
	if gameID == "" || name == "" {
		http.Error(w, "game and name are required", http.StatusBadRequest)
		return
	}
	seat, err := strconv.Atoi(seatStr)
	if err != nil || seat < 0 || seat > 1 {
		http.Error(w, "seat must be 0 or 1", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := s.session(gameID)
	session.Join(seat, name, conn)
	s.logger.Info("player joined",
		zap.String("game", gameID),
		zap.Int("seat", seat),
		zap.String("name", name),
	)
	go session.readLoop(seat, conn)
}

func (s *Server) session(gameID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[gameID]; ok {
		return sess
	}
	sess := NewSession(gameID, s.engine, s.matches, s.logger.With(zap.String("game", gameID)))
	s.sessions[gameID] = sess
	return sess
}
