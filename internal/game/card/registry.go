package card

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SetFile is the YAML layout of a card set.
type SetFile struct {
	Set    string        `yaml:"set"`
	Cards  []*Definition `yaml:"cards"`
	Tokens []*Definition `yaml:"tokens"`
}

// Registry owns all card and token definitions. An unknown ID is a data
// integrity error, not a reachable game state, so lookups return errors the
// caller is expected to treat as fatal for the current action.
type Registry struct {
	logger *zap.Logger
	defs   map[string]*Definition
	tokens map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		logger: logger,
		defs:   make(map[string]*Definition),
		tokens: make(map[string]*Definition),
	}
}

// Register adds a definition. Token-flagged definitions are indexed in the
// token table instead of the playable card table.
func (r *Registry) Register(def *Definition) error {
	if def.ID == "" {
		return fmt.Errorf("card definition %q has no id", def.Name)
	}
	if def.Token {
		if _, ok := r.tokens[def.ID]; ok {
			return fmt.Errorf("duplicate token id %q", def.ID)
		}
		r.tokens[def.ID] = def
		return nil
	}
	if _, ok := r.defs[def.ID]; ok {
		return fmt.Errorf("duplicate card id %q", def.ID)
	}
	r.defs[def.ID] = def
	return nil
}

// LoadSet parses a YAML set and registers every definition in it.
func (r *Registry) LoadSet(data []byte) error {
	var set SetFile
	if err := yaml.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("parse card set: %w", err)
	}
	for _, def := range set.Cards {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	for _, def := range set.Tokens {
		def.Token = true
		if err := r.Register(def); err != nil {
			return err
		}
	}
	if r.logger != nil {
		r.logger.Info("card set loaded",
			zap.String("set", set.Set),
			zap.Int("cards", len(set.Cards)),
			zap.Int("tokens", len(set.Tokens)),
		)
	}
	return nil
}

// LoadSetFile reads and registers a set from disk.
func (r *Registry) LoadSetFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read card set %s: %w", path, err)
	}
	return r.LoadSet(data)
}

// Definition returns the playable card definition for an ID.
func (r *Registry) Definition(id string) (*Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("unknown card id %q", id)
	}
	return def, nil
}

// Token returns the token definition for an ID.
func (r *Registry) Token(id string) (*Definition, error) {
	def, ok := r.tokens[id]
	if !ok {
		return nil, fmt.Errorf("unknown token id %q", id)
	}
	return def, nil
}

// Count returns the number of registered playable cards.
func (r *Registry) Count() int {
	return len(r.defs)
}
