package game

import (
	"go.uber.org/zap"

	"github.com/godeaux/predation/internal/game/card"
)

// Engine is the rules engine. It is single-threaded and synchronous within
// one logical game: every call assumes exclusive access to the GameState it
// is handed, and the only suspension point is a returned Selection awaiting
// a human or AI choice.
type Engine struct {
	logger   *zap.Logger
	registry *card.Registry
	bus      *Bus
}

// NewEngine creates an engine over a populated card registry.
func NewEngine(registry *card.Registry, logger *zap.Logger) *Engine {
	return &Engine{
		logger:   logger,
		registry: registry,
		bus:      NewBus(),
	}
}

// Bus returns the engine's event bus. Presentation and trap systems
// subscribe here.
func (e *Engine) Bus() *Bus {
	return e.bus
}

// Registry returns the card registry the engine resolves IDs against.
func (e *Engine) Registry() *card.Registry {
	return e.registry
}

// publish records a visual event on the state and fans it out on the bus.
func (e *Engine) publish(st *GameState, ev Event) {
	st.emit(ev)
	e.bus.Publish(ev)
}
