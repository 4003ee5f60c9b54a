package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// readLog decodes a JSON array of transactions. A missing file is an empty log.
func readLog(name string) ([]valuation.Transaction, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return []valuation.Transaction{}, nil
	}
	if err != nil {
		return nil, err
	}
	var log []valuation.Transaction
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to decode log %s: %w", name, err)
	}
	return log, nil
}

// writeLog replaces name with log, going through a temporary file in the
// same directory so a failed write never truncates the log.
func writeLog(name string, log []valuation.Transaction) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), ".dashctl-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// readQuotes decodes a JSON object of ticker to quote. An empty name means no quotes.
func readQuotes(name string) (valuation.Quotes, error) {
	if name == "" {
		return valuation.Quotes{}, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	raw := valuation.Quotes{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode quotes %s: %w", name, err)
	}
	quotes := make(valuation.Quotes, len(raw))
	for t, q := range raw {
		quotes[valuation.NormalizeTicker(t)] = q
	}
	return quotes, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
