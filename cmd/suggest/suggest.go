// Package suggest implements the rule mining command: it scans a transactions
// CSV for recurring merchant patterns and writes draft rules for human review.
package suggest

import (
	"fmt"
	"os"

	"fjacquet/tx-rules/cmd/root"
	"fjacquet/tx-rules/internal/common"
	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/suggest"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Mine draft rules from a transactions CSV file",
	Long: `Suggest scans historical transactions for recurring merchant patterns and
emits draft rules as YAML. Drafts are never stored directly: review them,
then promote the keepers with 'tx-rules rules add --file'.`,
	Run: suggestFunc,
}

func suggestFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	cfg := root.LoadConfig()

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("--input is required")
	}

	transactions, err := common.ReadTransactionsCSV(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading transactions: %v", err)
	}

	miner := suggest.NewMiner(logger)
	miner.MinOccurrences = cfg.Suggest.MinOccurrences
	miner.MaxSuggestions = cfg.Suggest.MaxSuggestions

	drafts := miner.Suggest(transactions)
	if len(drafts) == 0 {
		root.Log.Info("No recurring patterns found")
		return
	}

	data, err := yaml.Marshal(drafts)
	if err != nil {
		root.Log.Fatalf("Error marshaling drafts: %v", err)
	}

	if root.SharedFlags.Output == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(root.SharedFlags.Output, data, 0644); err != nil {
		root.Log.Fatalf("Error writing drafts: %v", err)
	}
	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(drafts)},
		logging.Field{Key: logging.FieldOutputFile, Value: root.SharedFlags.Output},
	).Info("Draft rules written")
}
