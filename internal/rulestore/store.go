// Package rulestore provides CRUD and ordered retrieval of transformation
// rules over an injected key-value backend. The persisted layout is a single
// JSON array of rules with ISO-8601 timestamps.
package rulestore

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/models"

	"github.com/google/uuid"
)

// DefaultKey is the backend key the rule set is stored under.
const DefaultKey = "rules"

// Store owns the rule set. All mutations go through it; the engine only
// reads. A corrupted persisted payload is treated as an empty rule set with
// a warning, never as a fatal error.
type Store struct {
	backend Backend
	key     string
	logger  logging.Logger

	// clock and newID are injectable for deterministic tests.
	clock func() time.Time
	newID func() string

	mu    sync.RWMutex
	rules []models.Rule
}

// New creates a Store over the given backend and loads the persisted rule set.
func New(backend Backend, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  logger,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	s.load()
	return s
}

// load reads the persisted rule set. Anything unreadable or unparsable
// resolves to an empty rule set so a bad payload can never take down the
// import pipeline.
func (s *Store) load() {
	payload, ok, err := s.backend.GetItem(s.key)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read rule set, starting empty")
		s.rules = nil
		return
	}
	if !ok || payload == "" {
		s.rules = nil
		return
	}

	var rules []models.Rule
	if err := json.Unmarshal([]byte(payload), &rules); err != nil {
		s.logger.WithError(err).WithField(logging.FieldReason, "corrupt payload").
			Warn("Failed to parse rule set, starting empty")
		s.rules = nil
		return
	}
	s.rules = rules
}

// List returns a copy of the rule set sorted by ascending priority.
// The sort is stable, so equal priorities keep insertion order.
func (s *Store) List() []models.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Rule, len(s.rules))
	copy(out, s.rules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Get returns the rule with the given id.
func (s *Store) Get(id string) (models.Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rules {
		if r.ID == id {
			return r, true
		}
	}
	return models.Rule{}, false
}

// Add stores a new rule, assigning its id and timestamps. Any id or
// timestamps on the input are ignored.
func (s *Store) Add(rule models.Rule) (models.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	rule.ID = s.newID()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	s.rules = append(s.rules, rule)
	if err := s.persist(); err != nil {
		s.rules = s.rules[:len(s.rules)-1]
		return models.Rule{}, err
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldRuleID, Value: rule.ID},
		logging.Field{Key: logging.FieldRuleName, Value: rule.Name},
	).Debug("Rule added")
	return rule, nil
}

// Update replaces the stored rule with the given id. The id and creation
// timestamp are immutable; the update timestamp is refreshed.
func (s *Store) Update(id string, rule models.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rules {
		if existing.ID != id {
			continue
		}
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
		rule.UpdatedAt = s.clock()

		s.rules[i] = rule
		if err := s.persist(); err != nil {
			s.rules[i] = existing
			return err
		}
		return nil
	}
	return fmt.Errorf("rule not found: %s", id)
}

// SetEnabled toggles a rule without touching the rest of its definition.
func (s *Store) SetEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rules {
		if existing.ID != id {
			continue
		}
		updated := existing
		updated.Enabled = enabled
		updated.UpdatedAt = s.clock()

		s.rules[i] = updated
		if err := s.persist(); err != nil {
			s.rules[i] = existing
			return err
		}
		return nil
	}
	return fmt.Errorf("rule not found: %s", id)
}

// Delete removes the rule with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rules {
		if existing.ID != id {
			continue
		}
		s.rules = append(s.rules[:i], s.rules[i+1:]...)
		if err := s.persist(); err != nil {
			s.rules = append(s.rules[:i], append([]models.Rule{existing}, s.rules[i:]...)...)
			return err
		}
		return nil
	}
	return fmt.Errorf("rule not found: %s", id)
}

// persist writes the whole rule set as one document. Callers hold the lock.
func (s *Store) persist() error {
	rules := s.rules
	if rules == nil {
		rules = []models.Rule{}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling rule set: %w", err)
	}
	if err := s.backend.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("error persisting rule set: %w", err)
	}
	return nil
}
