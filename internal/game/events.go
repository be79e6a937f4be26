package game

import (
	"sync"
	"time"
)

// EventKind indicates the category of a game event.
type EventKind string

const (
	EventCardPlayed  EventKind = "CARD_PLAYED"
	EventCardDrawn   EventKind = "CARD_DRAWN"
	EventAttack      EventKind = "ATTACK"
	EventDamage      EventKind = "DAMAGE"
	EventHeal        EventKind = "HEAL"
	EventDeath       EventKind = "DEATH"
	EventConsumed    EventKind = "CONSUMED"
	EventSummon      EventKind = "SUMMON"
	EventParalyzed   EventKind = "PARALYZED"
	EventBarrierPop  EventKind = "BARRIER_POP"
	EventTrapSprung  EventKind = "TRAP_SPRUNG"
	EventTurnStarted EventKind = "TURN_STARTED"
	EventTurnEnded   EventKind = "TURN_ENDED"
)

// Event is a visual-event record consumed by the presentation layer. The
// engine only ever produces these; it never touches presentation state.
type Event struct {
	Kind      EventKind
	Source    string // instance ID or player name
	Target    string
	Amount    int
	Player    int
	Text      string
	Timestamp time.Time
}

// NewEvent creates an event stamped with the current time.
func NewEvent(kind EventKind, source, target string, amount int) Event {
	return Event{
		Kind:      kind,
		Source:    source,
		Target:    target,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// Listener reacts to published events.
type Listener func(Event)

// Bus is a synchronous publish/subscribe fan-out for game events, used by
// the presentation side; the websocket gateway subscribes to forward
// visuals to clients. Game rules never hang off the bus.
type Bus struct {
	mu         sync.RWMutex
	listeners  map[int]Listener
	nextHandle int
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its handle.
func (b *Bus) Subscribe(l Listener) int {
	if l == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextHandle
	b.nextHandle++
	b.listeners[h] = l
	return h
}

// Unsubscribe removes the listener for a handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, handle)
}

// Publish delivers the event to all listeners synchronously.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, l := range b.listeners {
		l(ev)
	}
}
