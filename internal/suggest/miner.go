// Package suggest mines draft rules from transaction history. It looks for
// recurring merchant patterns in descriptions and proposes one
// contains-condition / setCategory rule per pattern for a human to review.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/models"
)

const (
	// DefaultMinOccurrences is how often a merchant pattern must recur
	// before it is worth a suggestion.
	DefaultMinOccurrences = 3

	// DefaultMaxSuggestions caps one mining run's output.
	DefaultMaxSuggestions = 10

	// minKeyLength filters out keys too short to identify a merchant.
	minKeyLength = 4
)

// Miner scans historical transactions and emits draft rules.
type Miner struct {
	MinOccurrences int
	MaxSuggestions int

	logger logging.Logger
}

// NewMiner creates a Miner with the default thresholds.
func NewMiner(logger logging.Logger) *Miner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Miner{
		MinOccurrences: DefaultMinOccurrences,
		MaxSuggestions: DefaultMaxSuggestions,
		logger:         logger,
	}
}

type pattern struct {
	key       string
	count     int
	category  string
	firstSeen int
}

// Suggest proposes draft rules from the given transaction corpus. Patterns
// are ranked by descending frequency (ties keep first-occurrence order) and
// the result is capped at MaxSuggestions. Patterns that never carried a
// category are dropped: there is nothing to set.
func (m *Miner) Suggest(txs []models.Transaction) []models.Draft {
	patterns := make(map[string]*pattern)
	for _, tx := range txs {
		key := merchantKey(tx.Description)
		if key == "" {
			continue
		}
		p, ok := patterns[key]
		if !ok {
			p = &pattern{key: key, firstSeen: len(patterns)}
			patterns[key] = p
		}
		p.count++
		if tx.Category != "" {
			p.category = tx.Category
		}
	}

	candidates := make([]*pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.count >= m.MinOccurrences && p.category != "" {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].firstSeen < candidates[j].firstSeen
	})
	if len(candidates) > m.MaxSuggestions {
		candidates = candidates[:m.MaxSuggestions]
	}

	drafts := make([]models.Draft, 0, len(candidates))
	for _, p := range candidates {
		drafts = append(drafts, models.Draft{
			Name:        fmt.Sprintf("Auto-categorize %q", p.key),
			Description: fmt.Sprintf("Suggested from %d similar transactions", p.count),
			Conditions: []models.Condition{{
				Field:    models.FieldDescription,
				Operator: models.OperatorContains,
				Value:    p.key,
			}},
			Actions: []models.Action{{
				Type:  models.ActionSetCategory,
				Value: p.category,
			}},
		})
	}

	m.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(drafts)},
	).Debug("Mined rule suggestions")
	return drafts
}

// merchantKey derives the candidate merchant key from a description: the
// first two whitespace-delimited tokens, lower-cased. Keys shorter than four
// characters are too ambiguous to use.
func merchantKey(description string) string {
	tokens := strings.Fields(strings.ToLower(description))
	if len(tokens) == 0 {
		return ""
	}
	key := tokens[0]
	if len(tokens) > 1 {
		key = tokens[0] + " " + tokens[1]
	}
	if len(key) < minKeyLength {
		return ""
	}
	return key
}
