// Package common provides shared CSV plumbing for the import pipeline.
// Transactions enter and leave the application as normalized CSV rows; the
// helpers here only move rows in and out, they do not interpret bank formats.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/tx-rules/internal/logging"
	"fjacquet/tx-rules/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the CSV field delimiter used for reading and writing.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		return r
	})
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})
}

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadTransactionsCSV reads normalized transactions from a CSV file.
func ReadTransactionsCSV(filePath string) ([]models.Transaction, error) {
	log.WithField(logging.FieldInputFile, filePath).Info("Reading transactions CSV")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var transactions []models.Transaction
	if err := gocsv.UnmarshalFile(file, &transactions); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(transactions)).Info("Successfully read transactions")
	return transactions, nil
}

// WriteTransactionsCSV writes transactions to a CSV file in the normalized
// layout. An empty slice still produces a file with a header row.
func WriteTransactionsCSV(transactions []models.Transaction, filePath string) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("Writing transactions CSV")

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&transactions, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}
