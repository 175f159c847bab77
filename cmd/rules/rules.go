// Package rules implements the rule authoring commands: listing, adding,
// deleting, toggling, validating, and interactively testing rules.
package rules

import (
	"fmt"
	"os"

	"fjacquet/tx-rules/cmd/root"
	"fjacquet/tx-rules/internal/engine"
	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/models"
	"fjacquet/tx-rules/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the transformation rule set",
	Long: `Manage the persisted rule set: list rules, add new ones from a YAML or
JSON definition, delete or toggle them, and test a rule's conditions
against a sample transaction.`,
}

var (
	ruleFile string
	ruleID   string

	addEnabled  bool
	addPriority int

	sampleDescription string
	sampleAmount      string
	sampleAccount     string
	sampleDate        string
	sampleCategory    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rules sorted by priority",
	Run:   listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a rule from a YAML or JSON definition file",
	Run:   addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a rule by id",
	Run:   deleteFunc,
}

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable a rule by id",
	Run:   func(cmd *cobra.Command, args []string) { setEnabledFunc(true) },
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable a rule by id",
	Run:   func(cmd *cobra.Command, args []string) { setEnabledFunc(false) },
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rule definition file",
	Run:   validateFunc,
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test a rule's conditions against a sample transaction",
	Long: `Test evaluates only the condition side of a rule against a sample
transaction built from the flags. No actions run and no other rule is
consulted.`,
	Run: testFunc,
}

func init() {
	addCmd.Flags().StringVarP(&ruleFile, "file", "f", "", "Rule definition file (YAML or JSON)")
	addCmd.Flags().BoolVar(&addEnabled, "enabled", true, "Store the rule as enabled")
	addCmd.Flags().IntVar(&addPriority, "priority", 0, "Evaluation priority (lower runs first)")
	_ = addCmd.MarkFlagRequired("file")

	deleteCmd.Flags().StringVar(&ruleID, "id", "", "Rule id")
	_ = deleteCmd.MarkFlagRequired("id")
	enableCmd.Flags().StringVar(&ruleID, "id", "", "Rule id")
	_ = enableCmd.MarkFlagRequired("id")
	disableCmd.Flags().StringVar(&ruleID, "id", "", "Rule id")
	_ = disableCmd.MarkFlagRequired("id")

	validateCmd.Flags().StringVarP(&ruleFile, "file", "f", "", "Rule definition file (YAML or JSON)")
	_ = validateCmd.MarkFlagRequired("file")

	testCmd.Flags().StringVar(&ruleID, "id", "", "Id of a stored rule to test")
	testCmd.Flags().StringVarP(&ruleFile, "file", "f", "", "Rule definition file to test")
	testCmd.Flags().StringVarP(&sampleDescription, "description", "d", "", "Sample transaction description")
	testCmd.Flags().StringVarP(&sampleAmount, "amount", "a", "", "Sample transaction amount")
	testCmd.Flags().StringVar(&sampleAccount, "account", "", "Sample transaction account id")
	testCmd.Flags().StringVarP(&sampleDate, "date", "t", "", "Sample transaction date (YYYY-MM-DD)")
	testCmd.Flags().StringVar(&sampleCategory, "category", "", "Sample transaction category")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(testCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	store := root.OpenStore(cfg, logging.NewLogrusAdapterFromLogger(root.Log))

	rules := store.List()
	if len(rules) == 0 {
		fmt.Println("No rules defined.")
		return
	}

	fmt.Printf("%-36s  %-8s  %-8s  %-10s  %s\n", "ID", "PRIORITY", "ENABLED", "COND/ACT", "NAME")
	for _, r := range rules {
		fmt.Printf("%-36s  %-8d  %-8t  %4d/%-5d  %s\n",
			r.ID, r.Priority, r.Enabled, len(r.Conditions), len(r.Actions), r.Name)
	}
}

func addFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	store := root.OpenStore(cfg, logging.NewLogrusAdapterFromLogger(root.Log))

	rule, err := loadRuleFile(ruleFile)
	if err != nil {
		root.Log.Fatalf("Error loading rule file: %v", err)
	}
	rule.Enabled = addEnabled
	if cmd.Flags().Changed("priority") {
		rule.Priority = addPriority
	}

	// Validation is advisory: problems are reported, the save still happens.
	if result := validation.ValidateRule(rule); !result.IsValid {
		for _, msg := range result.Errors {
			root.Log.Warnf("Validation: %s", msg)
		}
	}

	saved, err := store.Add(rule)
	if err != nil {
		root.Log.Fatalf("Error saving rule: %v", err)
	}
	root.Log.Infof("Rule %q added with id %s", saved.Name, saved.ID)
}

func deleteFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	store := root.OpenStore(cfg, logging.NewLogrusAdapterFromLogger(root.Log))

	if err := store.Delete(ruleID); err != nil {
		root.Log.Fatalf("Error deleting rule: %v", err)
	}
	root.Log.Infof("Rule %s deleted", ruleID)
}

func setEnabledFunc(enabled bool) {
	cfg := root.LoadConfig()
	store := root.OpenStore(cfg, logging.NewLogrusAdapterFromLogger(root.Log))

	if err := store.SetEnabled(ruleID, enabled); err != nil {
		root.Log.Fatalf("Error updating rule: %v", err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	root.Log.Infof("Rule %s %s", ruleID, state)
}

func validateFunc(cmd *cobra.Command, args []string) {
	rule, err := loadRuleFile(ruleFile)
	if err != nil {
		root.Log.Fatalf("Error loading rule file: %v", err)
	}

	result := validation.ValidateRule(rule)
	if result.IsValid {
		fmt.Println("Rule definition is valid.")
		return
	}
	fmt.Println("Rule definition has problems:")
	for _, msg := range result.Errors {
		fmt.Printf("  - %s\n", msg)
	}
}

func testFunc(cmd *cobra.Command, args []string) {
	cfg := root.LoadConfig()
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	store := root.OpenStore(cfg, logger)

	var rule models.Rule
	switch {
	case ruleID != "":
		stored, ok := store.Get(ruleID)
		if !ok {
			root.Log.Fatalf("Rule not found: %s", ruleID)
		}
		rule = stored
	case ruleFile != "":
		loaded, err := loadRuleFile(ruleFile)
		if err != nil {
			root.Log.Fatalf("Error loading rule file: %v", err)
		}
		rule = loaded
	default:
		root.Log.Fatal("Either --id or --file is required")
	}

	sample := models.Transaction{
		Description: sampleDescription,
		AccountID:   sampleAccount,
		Date:        sampleDate,
		Category:    sampleCategory,
	}
	if sampleAmount != "" {
		amount, err := decimal.NewFromString(sampleAmount)
		if err != nil {
			root.Log.Fatalf("Invalid --amount: %v", err)
		}
		sample.Amount = amount
	}

	eng := engine.New(store, logger)
	if eng.TestRule(rule, sample) {
		fmt.Println("MATCH")
		return
	}
	fmt.Println("NO MATCH")
}

// loadRuleFile parses a rule definition from YAML or JSON (YAML being a
// superset, one parser covers both).
func loadRuleFile(path string) (models.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Rule{}, fmt.Errorf("error reading rule file: %w", err)
	}
	var rule models.Rule
	if err := yaml.Unmarshal(data, &rule); err != nil {
		return models.Rule{}, fmt.Errorf("error parsing rule file: %w", err)
	}
	return rule, nil
}
