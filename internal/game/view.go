package game

import (
	"github.com/godeaux/predation/internal/game/card"
	"github.com/godeaux/predation/internal/game/keywords"
)

// GameView is the complete game state as seen by one player. Hidden
// information (the opponent's hand, deck contents, unsprung traps) is
// reduced to counts.
type GameView struct {
	Turn         int          `json:"turn"`
	Phase        Phase        `json:"phase"`
	ActivePlayer int          `json:"activePlayer"`
	You          PlayerView   `json:"you"`
	Opponent     PlayerView   `json:"opponent"`
	Log          []string     `json:"log"`
	Events       []Event      `json:"events,omitempty"`
}

// PlayerView is one side of the board.
type PlayerView struct {
	Name        string      `json:"name"`
	HP          int         `json:"hp"`
	Hand        []CardView  `json:"hand,omitempty"`
	HandCount   int         `json:"handCount"`
	DeckCount   int         `json:"deckCount"`
	Field       []*CardView `json:"field"`
	Carrion     []CardView  `json:"carrion"`
	TrapCount   int         `json:"trapCount"`
	FieldSpell  *CardView   `json:"fieldSpell,omitempty"`
}

// CardView is a card as shown to a player.
type CardView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Tribe           string   `json:"tribe,omitempty"`
	Attack          int      `json:"attack"`
	Health          int      `json:"health"`
	EffectiveAttack int      `json:"effectiveAttack"`
	Nutrition       int      `json:"nutrition,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	HasBarrier      bool     `json:"hasBarrier,omitempty"`
	Frozen          bool     `json:"frozen,omitempty"`
	Webbed          bool     `json:"webbed,omitempty"`
	Paralyzed       bool     `json:"paralyzed,omitempty"`
	DryDropped      bool     `json:"dryDropped,omitempty"`
	HasAttacked     bool     `json:"hasAttacked,omitempty"`
	Token           bool     `json:"token,omitempty"`
}

// SelectionView is a pending choice as presented to the choosing player.
type SelectionView struct {
	Op         string        `json:"op"`
	Source     string        `json:"source,omitempty"`
	Candidates []CreatureRef `json:"candidates,omitempty"`
	Options    []string      `json:"options,omitempty"`
}

// ViewFor builds the game view from one player's perspective.
func (s *GameState) ViewFor(player int) GameView {
	opp := Opponent(player)
	return GameView{
		Turn:         s.Turn,
		Phase:        s.Phase,
		ActivePlayer: s.ActivePlayer,
		You:          s.playerView(player, true),
		Opponent:     s.playerView(opp, false),
		Log:          s.Log,
	}
}

func (s *GameState) playerView(player int, own bool) PlayerView {
	p := s.Players[player]
	pv := PlayerView{
		Name:      p.Name,
		HP:        p.HP,
		HandCount: len(p.Hand),
		DeckCount: len(p.Deck),
		TrapCount: len(p.Traps),
	}
	if own {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, s.cardView(c, player))
		}
	}
	for _, c := range p.Field {
		if c == nil {
			pv.Field = append(pv.Field, nil)
			continue
		}
		cv := s.cardView(c, player)
		pv.Field = append(pv.Field, &cv)
	}
	for _, c := range p.Carrion {
		pv.Carrion = append(pv.Carrion, s.cardView(c, player))
	}
	if p.FieldSpell != nil {
		fs := s.cardView(p.FieldSpell, player)
		pv.FieldSpell = &fs
	}
	return pv
}

func (s *GameState) cardView(c *card.Instance, owner int) CardView {
	return CardView{
		ID:              c.ID,
		Name:            c.Def.Name,
		Category:        string(c.Def.Category),
		Tribe:           c.Def.Tribe,
		Attack:          c.CurrentAtk,
		Health:          c.CurrentHP,
		EffectiveAttack: keywords.EffectiveAttack(c, s.FieldSlice(owner)),
		Nutrition:       c.Def.Nutrition,
		Keywords:        c.Keywords,
		HasBarrier:      c.HasBarrier,
		Frozen:          c.Frozen,
		Webbed:          c.Webbed,
		Paralyzed:       c.ParalyzedUntil >= s.Turn && c.ParalyzedUntil > 0,
		DryDropped:      c.DryDropped,
		HasAttacked:     c.HasAttacked,
		Token:           c.IsToken,
	}
}

// ViewSelection converts a pending selection for transport.
func ViewSelection(sel *Selection) SelectionView {
	sv := SelectionView{
		Op:         sel.Op,
		Candidates: sel.Candidates,
		Options:    sel.Options,
	}
	if sel.Source != nil {
		sv.Source = sel.Source.Def.Name
	}
	return sv
}
