package engine

import (
	"regexp"

	"fjacquet/tx-rules/internal/models"
)

// Outcome is the result of applying actions to a transaction. Either the
// transaction survived (possibly transformed) or a skip action dropped it
// from the import. The skip signal lives in the type, not on the snapshot.
type Outcome struct {
	Transaction models.Transaction
	Skipped     bool
}

// ApplyAction applies one action to a transaction snapshot and returns the
// outcome. It never fails: empty action values and invalid regex patterns
// degrade to a no-op, and unknown action types pass the snapshot through.
func ApplyAction(action models.Action, tx models.Transaction) Outcome {
	switch action.Type {
	case models.ActionSkip:
		return Outcome{Skipped: true}

	case models.ActionSetCategory:
		if action.Value == "" {
			return Outcome{Transaction: tx}
		}
		out := tx.Clone()
		out.Category = action.Value
		return Outcome{Transaction: out}

	case models.ActionSetAccount:
		if action.Value == "" {
			return Outcome{Transaction: tx}
		}
		out := tx.Clone()
		out.AccountID = action.Value
		return Outcome{Transaction: out}

	case models.ActionAddTag:
		if action.Value == "" || tx.Tags.Contains(action.Value) {
			return Outcome{Transaction: tx}
		}
		out := tx.Clone()
		out.Tags = append(out.Tags, action.Value)
		return Outcome{Transaction: out}

	case models.ActionModifyDescription:
		return Outcome{Transaction: modifyDescription(action, tx)}

	default:
		return Outcome{Transaction: tx}
	}
}

func modifyDescription(action models.Action, tx models.Transaction) models.Transaction {
	out := tx.Clone()
	switch action.Modification {
	case models.ModificationReplace:
		out.Description = action.Value
	case models.ModificationPrepend:
		out.Description = action.Value + out.Description
	case models.ModificationAppend:
		out.Description = out.Description + action.Value
	case models.ModificationRegex:
		re, err := regexp.Compile(action.Pattern)
		if err != nil {
			// Invalid pattern leaves the description unchanged.
			return tx
		}
		out.Description = re.ReplaceAllString(out.Description, action.Replacement)
	default:
		return tx
	}
	return out
}
