package game

import (
	"github.com/godeaux/predation/internal/game/card"
)

const (
	// FieldSize is the number of creature slots per player.
	FieldSize = 5
	// MaxPlayerHP is the healing cap for player hit points. Damage has no
	// floor; negative HP is the lose condition detected by the caller.
	MaxPlayerHP = 10
	// CardsPerTurn is the per-turn play limit for non-free cards.
	CardsPerTurn = 1
)

// Phase names the coarse turn phases the engine is invoked during. The
// engine gates card plays by phase but trusts its caller for combat and
// consumption timing.
type Phase string

const (
	PhaseDraw   Phase = "draw"
	PhaseMain   Phase = "main"
	PhaseCombat Phase = "combat"
	PhaseEnd    Phase = "end"
)

// Player holds one side's zones and per-turn flags.
type Player struct {
	Name    string
	HP      int
	Hand    []*card.Instance
	Deck    []*card.Instance
	Field   [FieldSize]*card.Instance
	Carrion []*card.Instance
	Exile   []*card.Instance
	Traps   []*card.Instance

	// Field spell support: ownership may be bound to a creature and is
	// cleared when that creature leaves the field.
	FieldSpell        *card.Instance
	FieldSpellBoundTo string // creature instance ID, "" if unbound

	CardsPlayedThisTurn int
}

// GameState is the single mutable aggregate the engine operates on. The
// engine assumes exclusive, non-reentrant access during any one call.
type GameState struct {
	Players      [2]*Player
	Turn         int
	Phase        Phase
	ActivePlayer int

	// Log is the human-readable event narration sink.
	Log []string

	// RecentlyDrawn records cards moved from deck to hand during the
	// current resolution, for other systems to observe.
	RecentlyDrawn []*card.Instance

	// Events collects visual-event records for the presentation layer.
	// Drained by the caller between engine calls.
	Events []Event

	// PendingSelections parks choices produced while another choice is
	// already in flight. The engine always surfaces exactly one Selection
	// at a time; the rest wait here in arrival order.
	PendingSelections []*Selection
}

// NewGameState creates a fresh two-player state at turn 1.
func NewGameState(nameA, nameB string) *GameState {
	return &GameState{
		Players: [2]*Player{
			{Name: nameA, HP: MaxPlayerHP},
			{Name: nameB, HP: MaxPlayerHP},
		},
		Turn:  1,
		Phase: PhaseMain,
	}
}

// Opponent returns the index of the other player.
func Opponent(player int) int {
	return 1 - player
}

// FieldCreatures returns the non-empty field slots of a player.
func (s *GameState) FieldCreatures(player int) []*card.Instance {
	var out []*card.Instance
	for _, c := range s.Players[player].Field {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FieldSlice returns the raw field array of a player as a slice, including
// empty slots, for pack bonus calculations.
func (s *GameState) FieldSlice(player int) []*card.Instance {
	return s.Players[player].Field[:]
}

// FindCreature locates a creature instance on either field by ID.
func (s *GameState) FindCreature(id string) (inst *card.Instance, owner, slot int, ok bool) {
	for p := 0; p < 2; p++ {
		for i, c := range s.Players[p].Field {
			if c != nil && c.ID == id {
				return c, p, i, true
			}
		}
	}
	return nil, 0, 0, false
}

// CreatureOwner returns the field owner and slot of a live creature, or
// ok=false if the instance is not on either field.
func (s *GameState) CreatureOwner(inst *card.Instance) (owner, slot int, ok bool) {
	for p := 0; p < 2; p++ {
		for i, c := range s.Players[p].Field {
			if c == inst {
				return p, i, true
			}
		}
	}
	return 0, 0, false
}

// EmptySlot returns the first empty field slot index for a player, or -1.
func (s *GameState) EmptySlot(player int) int {
	for i, c := range s.Players[player].Field {
		if c == nil {
			return i
		}
	}
	return -1
}

// RemoveFromField clears the slot holding the given creature. The caller
// decides where the instance goes next.
func (s *GameState) RemoveFromField(inst *card.Instance) bool {
	owner, slot, ok := s.CreatureOwner(inst)
	if !ok {
		return false
	}
	s.Players[owner].Field[slot] = nil
	if s.Players[owner].FieldSpellBoundTo == inst.ID {
		s.Players[owner].FieldSpellBoundTo = ""
	}
	return true
}

// LogMessage appends a narration line.
func (s *GameState) LogMessage(text string) {
	s.Log = append(s.Log, text)
}

// emit records a visual event.
func (s *GameState) emit(ev Event) {
	s.Events = append(s.Events, ev)
}

// DrainEvents returns and clears the pending visual events.
func (s *GameState) DrainEvents() []Event {
	evs := s.Events
	s.Events = nil
	return evs
}

// queueSelection merges a newly produced selection into the one already in
// flight. The in-flight selection stays in flight; the new one is parked in
// arrival order. Either argument may be nil.
func (s *GameState) queueSelection(pending, sel *Selection) *Selection {
	if sel == nil {
		return pending
	}
	if pending == nil {
		return sel
	}
	s.PendingSelections = append(s.PendingSelections, sel)
	return pending
}

// nextPending pops the oldest parked selection, or nil when none wait.
func (s *GameState) nextPending() *Selection {
	if len(s.PendingSelections) == 0 {
		return nil
	}
	next := s.PendingSelections[0]
	s.PendingSelections = s.PendingSelections[1:]
	return next
}

// CreatureRef identifies a selectable creature without holding a live
// pointer, so pending selections can outlive the call that produced them.
type CreatureRef struct {
	ID    string
	Name  string
	Owner int
	Slot  int
}

// RefFor builds a CreatureRef for a creature currently on a field.
func (s *GameState) RefFor(inst *card.Instance) CreatureRef {
	owner, slot, _ := s.CreatureOwner(inst)
	return CreatureRef{ID: inst.ID, Name: inst.Def.Name, Owner: owner, Slot: slot}
}
