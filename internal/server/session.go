package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/godeaux/predation/internal/game"
	"github.com/godeaux/predation/internal/repository"
)

// ClientMessage is one action from a player.
type ClientMessage struct {
	Type       string   `json:"type"` // play, attack, select, option, endTurn
	HandIndex  int      `json:"handIndex,omitempty"`
	Slot       int      `json:"slot,omitempty"`
	PreyIDs    []string `json:"preyIds,omitempty"`
	CarrionIDs []string `json:"carrionIds,omitempty"`
	AttackerID string   `json:"attackerId,omitempty"`
	TargetID   string   `json:"targetId,omitempty"` // empty = attack the player
	Option     int      `json:"option,omitempty"`
}

// ServerMessage is one update to a player.
type ServerMessage struct {
	Type      string              `json:"type"` // state, prompt, error
	View      *game.GameView      `json:"view,omitempty"`
	Selection *game.SelectionView `json:"selection,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// Session serializes all engine access for one game behind a mutex,
// honoring the engine's exclusive-access contract.
type Session struct {
	id      string
	engine  *game.Engine
	matches *repository.MatchRepository
	logger  *zap.Logger

	mu      sync.Mutex
	state   *game.GameState
	conns   [2]*websocket.Conn
	names   [2]string
	pending *game.Selection

	// rollover marks an end-of-turn whose trigger still awaits a choice;
	// the next turn starts once that choice resolves.
	rollover bool
	started  bool
	saved    bool
}

// NewSession creates an empty session awaiting both players.
func NewSession(id string, engine *game.Engine, matches *repository.MatchRepository, logger *zap.Logger) *Session {
	return &Session{id: id, engine: engine, matches: matches, logger: logger}
}

// Join seats a player. The game begins once both seats are filled.
func (s *Session) Join(seat int, name string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[seat] = conn
	s.names[seat] = name
	if !s.started && s.conns[0] != nil && s.conns[1] != nil {
		s.state = game.NewGameState(s.names[0], s.names[1])
		if _, err := s.engine.StartTurn(s.state, 0); err != nil {
			s.logger.Error("start turn failed", zap.Error(err))
		}
		s.started = true
	}
	s.broadcastLocked()
}

func (s *Session) readLoop(seat int, conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("connection closed", zap.Int("seat", seat), zap.Error(err))
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(seat, "malformed message")
			continue
		}
		s.handle(seat, msg)
	}
}

func (s *Session) handle(seat int, msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.sendErrorLocked(seat, "waiting for opponent")
		return
	}

	var sel *game.Selection
	var err error

	switch msg.Type {
	case "play":
		sel, err = s.engine.PlayCard(s.state, seat, msg.HandIndex, game.PlayOptions{
			Slot:       msg.Slot,
			PreyIDs:    msg.PreyIDs,
			CarrionIDs: msg.CarrionIDs,
		})
	case "attack":
		if seat != s.state.ActivePlayer {
			s.sendErrorLocked(seat, "not your turn")
			return
		}
		attacker, attackerOwner, _, ok := s.state.FindCreature(msg.AttackerID)
		if !ok {
			s.sendErrorLocked(seat, "attacker not found")
			return
		}
		if attackerOwner != seat {
			s.sendErrorLocked(seat, "not your creature")
			return
		}
		if msg.TargetID == "" {
			sel, err = s.engine.ResolveAttack(s.state, attacker, nil)
		} else {
			t, _, _, found := s.state.FindCreature(msg.TargetID)
			if !found {
				s.sendErrorLocked(seat, "target not found")
				return
			}
			sel, err = s.engine.ResolveAttack(s.state, attacker, t)
		}
	case "select":
		if s.pending == nil {
			s.sendErrorLocked(seat, "nothing to select")
			return
		}
		if s.pending.Controller != seat {
			s.sendErrorLocked(seat, "not your choice")
			return
		}
		sel, err = s.engine.ResumeTarget(s.state, s.pending, msg.TargetID)
	case "option":
		if s.pending == nil {
			s.sendErrorLocked(seat, "nothing to choose")
			return
		}
		if s.pending.Controller != seat {
			s.sendErrorLocked(seat, "not your choice")
			return
		}
		sel, err = s.engine.ResumeOption(s.state, s.pending, msg.Option)
	case "endTurn":
		if seat != s.state.ActivePlayer {
			s.sendErrorLocked(seat, "not your turn")
			return
		}
		if s.pending != nil {
			s.sendErrorLocked(seat, "resolve the pending choice first")
			return
		}
		sel, err = s.engine.EndTurn(s.state)
		if err == nil && sel != nil {
			s.rollover = true
		}
	default:
		s.sendErrorLocked(seat, "unknown action")
		return
	}

	if err != nil {
		s.logger.Error("engine call failed", zap.String("action", msg.Type), zap.Error(err))
		s.sendErrorLocked(seat, "internal error")
		return
	}
	// Resumptions consume the pending choice; other actions only replace it
	// when they produce a new one.
	if msg.Type == "select" || msg.Type == "option" || sel != nil {
		s.pending = sel
	}
	// An ended turn rolls over once its last end-of-turn choice resolves.
	if s.pending == nil && (msg.Type == "endTurn" || s.rollover) {
		s.rollover = false
		next, err := s.engine.StartTurn(s.state, game.Opponent(s.state.ActivePlayer))
		if err != nil {
			s.logger.Error("engine call failed", zap.String("action", "startTurn"), zap.Error(err))
			s.sendErrorLocked(seat, "internal error")
			return
		}
		s.pending = next
	}
	s.broadcastLocked()
	s.checkGameOverLocked()
}

// broadcastLocked pushes fresh views to both seats and the pending prompt
// to its chooser.
func (s *Session) broadcastLocked() {
	if s.state == nil {
		return
	}
	s.state.DrainEvents()
	for seat := 0; seat < 2; seat++ {
		conn := s.conns[seat]
		if conn == nil {
			continue
		}
		view := s.state.ViewFor(seat)
		s.send(conn, ServerMessage{Type: "state", View: &view})
		if s.pending != nil && s.pending.Controller == seat {
			sv := game.ViewSelection(s.pending)
			s.send(conn, ServerMessage{Type: "prompt", Selection: &sv})
		}
	}
}

func (s *Session) checkGameOverLocked() {
	if s.saved || s.matches == nil || s.state == nil {
		return
	}
	var winner string
	switch {
	case s.state.Players[0].HP <= 0:
		winner = s.names[1]
	case s.state.Players[1].HP <= 0:
		winner = s.names[0]
	default:
		return
	}
	s.saved = true
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.matches.SaveMatch(ctx, repository.MatchRecord{
		PlayerA: s.names[0],
		PlayerB: s.names[1],
		Winner:  winner,
		Turns:   s.state.Turn,
	}, s.state.Log); err != nil {
		s.logger.Error("failed to save match", zap.Error(err))
	}
}

func (s *Session) send(conn *websocket.Conn, msg ServerMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("write failed", zap.Error(err))
	}
}

func (s *Session) sendError(seat int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErrorLocked(seat, text)
}

func (s *Session) sendErrorLocked(seat int, text string) {
	if conn := s.conns[seat]; conn != nil {
		s.send(conn, ServerMessage{Type: "error", Error: text})
	}
}
