// Package apply implements the import pipeline command: transactions come in
// as CSV rows, every enabled rule runs against each row, and the surviving
// rows are written back out.
package apply

import (
	"fjacquet/tx-rules/cmd/root"
	"fjacquet/tx-rules/internal/common"
	"fjacquet/tx-rules/internal/engine"
	"fjacquet/tx-rules/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the apply command
var Cmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply transformation rules to a transactions CSV file",
	Long: `Apply reads normalized transactions from a CSV file, runs every enabled
rule against each one in priority order, and writes the transformed
transactions to the output file. Transactions hit by a skip action are
dropped from the output.`,
	Run: applyFunc,
}

func applyFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	cfg := root.LoadConfig()

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Both --input and --output are required")
	}

	store := root.OpenStore(cfg, logger)
	eng := engine.New(store, logger)

	transactions, err := common.ReadTransactionsCSV(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading transactions: %v", err)
	}

	kept, err := eng.ApplyBatch(cmd.Context(), transactions)
	if err != nil {
		root.Log.Fatalf("Rule application cancelled: %v", err)
	}

	if err := common.WriteTransactionsCSV(kept, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Error writing transactions: %v", err)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDropped, Value: len(transactions) - len(kept)},
		logging.Field{Key: logging.FieldOutputFile, Value: root.SharedFlags.Output},
	).Info("Rule application completed")
}
