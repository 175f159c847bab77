package models

import "time"

// Field identifies the transaction attribute a condition inspects.
type Field string

const (
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldAccountID   Field = "accountId"
	FieldDate        Field = "date"
)

// FieldKind classifies a field by the value type its operators work on.
type FieldKind int

const (
	KindUnknown FieldKind = iota
	KindString
	KindNumber
	KindDate
)

// Kind returns the value kind of the field. Unknown fields get KindUnknown,
// which no operator accepts, so conditions on them never match.
func (f Field) Kind() FieldKind {
	switch f {
	case FieldDescription, FieldAccountID:
		return KindString
	case FieldAmount:
		return KindNumber
	case FieldDate:
		return KindDate
	default:
		return KindUnknown
	}
}

// Operator identifies a condition predicate.
type Operator string

const (
	OperatorContains    Operator = "contains"
	OperatorEquals      Operator = "equals"
	OperatorStartsWith  Operator = "startsWith"
	OperatorEndsWith    Operator = "endsWith"
	OperatorGreaterThan Operator = "greaterThan"
	OperatorLessThan    Operator = "lessThan"
	OperatorBetween     Operator = "between"
	OperatorRegex       Operator = "regex"
)

// SupportsKind reports whether the operator is meaningful for a field kind.
// String operators apply to string fields, numeric operators to the amount;
// everything else is an authoring mistake that evaluates to non-match.
func (o Operator) SupportsKind(k FieldKind) bool {
	switch o {
	case OperatorContains, OperatorStartsWith, OperatorEndsWith, OperatorRegex:
		return k == KindString
	case OperatorGreaterThan, OperatorLessThan, OperatorBetween:
		return k == KindNumber
	case OperatorEquals:
		return k == KindString || k == KindNumber
	default:
		return false
	}
}

// Condition is a single predicate over one transaction field.
// Value holds a string for text fields and a number for the amount; it is
// typed as any so both JSON strings and JSON numbers round-trip unchanged.
// Value2 is the upper bound and is only read by the between operator.
type Condition struct {
	Field         Field    `json:"field" yaml:"field"`
	Operator      Operator `json:"operator" yaml:"operator"`
	Value         any      `json:"value,omitempty" yaml:"value,omitempty"`
	Value2        any      `json:"value2,omitempty" yaml:"value2,omitempty"`
	CaseSensitive bool     `json:"caseSensitive,omitempty" yaml:"caseSensitive,omitempty"`
}

// ActionType identifies a transformation applied to a matched transaction.
type ActionType string

const (
	ActionSetCategory       ActionType = "setCategory"
	ActionAddTag            ActionType = "addTag"
	ActionModifyDescription ActionType = "modifyDescription"
	ActionSetAccount        ActionType = "setAccount"
	ActionSkip              ActionType = "skip"
)

// Modification selects how a modifyDescription action rewrites the description.
type Modification string

const (
	ModificationReplace Modification = "replace"
	ModificationPrepend Modification = "prepend"
	ModificationAppend  Modification = "append"
	ModificationRegex   Modification = "regex"
)

// Action is a single transformation (or the skip sentinel) carried by a rule.
// Value is used by setCategory/setAccount/addTag and by the non-regex
// description modifications; Pattern/Replacement only by the regex one.
type Action struct {
	Type         ActionType   `json:"type" yaml:"type"`
	Value        string       `json:"value,omitempty" yaml:"value,omitempty"`
	Modification Modification `json:"modification,omitempty" yaml:"modification,omitempty"`
	Pattern      string       `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Replacement  string       `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// Rule is a named, prioritized conditions-to-actions unit evaluated against
// one transaction. Lower priority values evaluate first; ties keep insertion
// order. ID and the timestamps are owned by the rule store.
type Rule struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool        `json:"enabled" yaml:"enabled"`
	Priority    int         `json:"priority" yaml:"priority"`
	Conditions  []Condition `json:"conditions" yaml:"conditions"`
	Actions     []Action    `json:"actions" yaml:"actions"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// Draft is a miner-proposed rule awaiting human review. It carries no ID and
// is never persisted directly; promotion happens through an explicit store Add.
type Draft struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Conditions  []Condition `json:"conditions" yaml:"conditions"`
	Actions     []Action    `json:"actions" yaml:"actions"`
}
