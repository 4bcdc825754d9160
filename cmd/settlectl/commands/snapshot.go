package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/splitledger/internal/calculator"
)

// snapshotFile is the on-disk form of a group snapshot.
type snapshotFile struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Members  []string     `json:"members"`
	Expenses []expenseRow `json:"expenses"`
	Payments []paymentRow `json:"payments"`
}

type expenseRow struct {
	ID          string  `json:"id"`
	PayerID     string  `json:"payer_id"`
	Value       float64 `json:"value"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Timestamp   int64   `json:"timestamp"`
}

type paymentRow struct {
	ID        string  `json:"id"`
	PayerID   string  `json:"payer_id"`
	TargetID  string  `json:"target_id"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

func loadSnapshot(stdin io.Reader) (calculator.Group, error) {
	if groupFile == "" {
		return calculator.Group{}, errors.New("--file is required")
	}

	var r io.Reader = stdin
	if groupFile != "-" {
		f, err := os.Open(groupFile)
		if err != nil {
			return calculator.Group{}, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var file snapshotFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return calculator.Group{}, fmt.Errorf("decode snapshot: %w", err)
	}

	group := calculator.Group{ID: file.ID, Name: file.Name, Members: file.Members}
	for _, e := range file.Expenses {
		group.Expenses = append(group.Expenses, calculator.Expense{
			ID:          e.ID,
			PayerID:     e.PayerID,
			Value:       e.Value,
			Category:    e.Category,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		})
	}
	for _, p := range file.Payments {
		group.Payments = append(group.Payments, calculator.Payment{
			ID:        p.ID,
			PayerID:   p.PayerID,
			TargetID:  p.TargetID,
			Value:     p.Value,
			Timestamp: p.Timestamp,
		})
	}
	return group, nil
}
