// Package engine implements the rule evaluation pipeline: enabled rules are
// sorted by priority and folded over each imported transaction, every
// matching rule's actions feeding the next rule's input, until a skip action
// drops the transaction or all rules have run.
package engine

import (
	"context"
	"sort"

	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/models"
)

// RuleSource supplies the rule list to evaluate. It is satisfied by the rule
// store; tests use a fixed slice.
type RuleSource interface {
	List() []models.Rule
}

// Engine applies the rule set to transactions during import. It holds no
// per-transaction state: applying rules to one transaction is a pure function
// of the sorted rule list and the transaction snapshot.
type Engine struct {
	rules  RuleSource
	logger logging.Logger
}

// New creates an Engine reading rules from the given source.
func New(rules RuleSource, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{rules: rules, logger: logger}
}

// Apply runs every enabled rule against the transaction in priority order.
// The second return value is false when a skip action dropped the
// transaction from the import.
func (e *Engine) Apply(tx models.Transaction) (models.Transaction, bool) {
	out := e.applyWithRules(e.snapshot(), tx)
	if out.Skipped {
		return models.Transaction{}, false
	}
	return out.Transaction, true
}

// ApplyBatch applies the rule set to a batch of transactions and returns the
// surviving, possibly transformed ones. The rule list is snapshotted once at
// batch start so concurrent rule edits cannot change outcomes mid-batch, and
// cancellation is honored between transactions.
func (e *Engine) ApplyBatch(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	rules := e.snapshot()
	kept := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return kept, err
		}
		out := e.applyWithRules(rules, tx)
		if out.Skipped {
			continue
		}
		kept = append(kept, out.Transaction)
	}
	return kept, nil
}

// TestRule evaluates only the condition side of a rule against a sample
// transaction. It is meant for interactive rule authoring and consults
// neither the store nor any other rule.
func (e *Engine) TestRule(rule models.Rule, sample models.Transaction) bool {
	return RuleMatches(rule, sample)
}

// snapshot returns the enabled rules sorted by ascending priority. The sort
// is stable, so equal priorities keep their stored order.
func (e *Engine) snapshot() []models.Rule {
	all := e.rules.List()
	enabled := make([]models.Rule, 0, len(all))
	for _, r := range all {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})
	return enabled
}

// applyWithRules folds the rule list over one transaction. Each matching
// rule's actions run in order, the output of each action feeding the next;
// a skip short-circuits the whole fold. Later rules see earlier rules'
// mutations, so conflicting field writes resolve last-writer-wins.
func (e *Engine) applyWithRules(rules []models.Rule, tx models.Transaction) Outcome {
	current := tx
	for _, rule := range rules {
		if !RuleMatches(rule, current) {
			continue
		}
		for _, action := range rule.Actions {
			out := ApplyAction(action, current)
			if out.Skipped {
				e.logger.WithFields(
					logging.Field{Key: logging.FieldRuleID, Value: rule.ID},
					logging.Field{Key: logging.FieldRuleName, Value: rule.Name},
					logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
				).Debug("Transaction dropped by skip action")
				return out
			}
			current = out.Transaction
		}
	}
	return Outcome{Transaction: current}
}
