package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldRuleID        = "rule_id"
	FieldRuleName      = "rule_name"
	FieldPriority      = "priority"
	FieldTransactionID = "transaction_id"
	FieldField         = "field"
	FieldOperator      = "operator"
	FieldAction        = "action"
	FieldCategory      = "category"
	FieldReason        = "reason"
	FieldCount         = "count"
	FieldDropped       = "dropped"
	FieldModified      = "modified"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldRulesFile     = "rules_file"
	FieldError         = "error"
)
