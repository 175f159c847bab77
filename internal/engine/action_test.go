package engine

import (
	"testing"

	"fjacquet/tx-rules/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyAction_SetCategory(t *testing.T) {
	out := ApplyAction(models.Action{Type: models.ActionSetCategory, Value: "Shopping"}, tx("x", -1))
	assert.False(t, out.Skipped)
	assert.Equal(t, "Shopping", out.Transaction.Category)

	// empty value is a no-op
	before := tx("x", -1)
	before.Category = "Groceries"
	out = ApplyAction(models.Action{Type: models.ActionSetCategory}, before)
	assert.Equal(t, "Groceries", out.Transaction.Category)
}

func TestApplyAction_SetAccount(t *testing.T) {
	out := ApplyAction(models.Action{Type: models.ActionSetAccount, Value: "acc-2"}, tx("x", -1))
	assert.Equal(t, "acc-2", out.Transaction.AccountID)
}

func TestApplyAction_AddTagIdempotent(t *testing.T) {
	action := models.Action{Type: models.ActionAddTag, Value: "online"}

	out := ApplyAction(action, tx("x", -1))
	out = ApplyAction(action, out.Transaction)

	assert.Equal(t, models.TagList{"online"}, out.Transaction.Tags)
}

func TestApplyAction_AddTagDoesNotAliasInput(t *testing.T) {
	before := tx("x", -1)
	before.Tags = models.TagList{"a"}

	out := ApplyAction(models.Action{Type: models.ActionAddTag, Value: "b"}, before)

	assert.Equal(t, models.TagList{"a"}, before.Tags)
	assert.Equal(t, models.TagList{"a", "b"}, out.Transaction.Tags)
}

func TestApplyAction_ModifyDescription(t *testing.T) {
	base := tx("coffee shop", 0)

	tests := []struct {
		name   string
		action models.Action
		want   string
	}{
		{
			name:   "replace",
			action: models.Action{Type: models.ActionModifyDescription, Modification: models.ModificationReplace, Value: "Coffee"},
			want:   "Coffee",
		},
		{
			name:   "prepend",
			action: models.Action{Type: models.ActionModifyDescription, Modification: models.ModificationPrepend, Value: "The "},
			want:   "The coffee shop",
		},
		{
			name:   "append",
			action: models.Action{Type: models.ActionModifyDescription, Modification: models.ModificationAppend, Value: " downtown"},
			want:   "coffee shop downtown",
		},
		{
			name:   "regex replaces every match",
			action: models.Action{Type: models.ActionModifyDescription, Modification: models.ModificationRegex, Pattern: "o", Replacement: "0"},
			want:   "c0ffee sh0p",
		},
		{
			name:   "regex with empty replacement strips matches",
			action: models.Action{Type: models.ActionModifyDescription, Modification: models.ModificationRegex, Pattern: "\\s+shop"},
			want:   "coffee",
		},
		{
			name:   "invalid pattern leaves description unchanged",
			action: models.Action{Type: models.ActionModifyDescription, Modification: models.ModificationRegex, Pattern: "[invalid"},
			want:   "coffee shop",
		},
		{
			name:   "unknown modification leaves description unchanged",
			action: models.Action{Type: models.ActionModifyDescription, Modification: "truncate", Value: "x"},
			want:   "coffee shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ApplyAction(tt.action, base)
			assert.False(t, out.Skipped)
			assert.Equal(t, tt.want, out.Transaction.Description)
		})
	}
}

func TestApplyAction_Skip(t *testing.T) {
	out := ApplyAction(models.Action{Type: models.ActionSkip}, tx("x", -1))
	assert.True(t, out.Skipped)
}

func TestApplyAction_UnknownTypeIsNoOp(t *testing.T) {
	before := tx("x", -1)
	out := ApplyAction(models.Action{Type: "explode"}, before)
	assert.False(t, out.Skipped)
	assert.Equal(t, before, out.Transaction)
}
