// Package sequence issues the human readable document numbers printed on
// invoices, receipts and promissory notes, e.g. INV-2024-000001.
//
// Numbers are drawn from a per-series counter held by the store, so they
// stay unique across restarts and across processes sharing a database.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Series names a numbering series. It is also the number prefix.
type Series string

const (
	SeriesInvoice Series = "INV" // Invoices
	SeriesReceipt Series = "RCP" // Payment receipts
	SeriesExpense Series = "EXP" // Expense receipts
	SeriesNote    Series = "PRM" // Promissory notes
)

// GlobalScope is the counter scope used when numbering does not reset yearly.
const GlobalScope = 0

// Store keeps the counters. NextSequence must be atomic: concurrent callers
// never observe the same value. The first value of a fresh counter is 1.
type Store interface {
	NextSequence(ctx context.Context, series Series, scope int) (int64, error)
	// SeedSequence raises the counter to at least value. Lower values are ignored.
	SeedSequence(ctx context.Context, series Series, scope int, value int64) error
}

// Format renders a document number: PREFIX-YEAR-NNNNNN.
func Format(series Series, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", series, year, seq)
}

// Suffix returns the sequence part of a document number. Numbers that do
// not have three dash separated parts, or whose third part is not numeric,
// yield 0.
func Suffix(number string) int64 {
	parts := strings.Split(number, "-")
	if len(parts) < 3 {
		return 0
	}
	n, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Year returns the year part of a document number, or 0.
func Year(number string) int {
	parts := strings.Split(number, "-")
	if len(parts) < 3 {
		return 0
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return y
}

// MaxSuffix returns the highest suffix among numbers.
func MaxSuffix(numbers []string) int64 {
	var highest int64
	for _, n := range numbers {
		if s := Suffix(n); s > highest {
			highest = s
		}
	}
	return highest
}

// Sequencer formats numbers on top of a Store.
type Sequencer struct {
	store  Store
	yearly bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithYearlyReset restarts every series at 000001 each calendar year.
// By default the suffix keeps climbing across years and only the year part
// of the number changes.
func WithYearlyReset(enabled bool) Option {
	return func(s *Sequencer) { s.yearly = enabled }
}

// New creates a Sequencer.
func New(store Store, opts ...Option) *Sequencer {
	s := &Sequencer{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Yearly reports whether counters reset each year.
func (s *Sequencer) Yearly() bool { return s.yearly }

func (s *Sequencer) scope(year int) int {
	if s.yearly {
		return year
	}
	return GlobalScope
}

// Next draws the next number of series for a document dated at.
func (s *Sequencer) Next(ctx context.Context, series Series, at time.Time) (string, error) {
	year := at.Year()
	seq, err := s.store.NextSequence(ctx, series, s.scope(year))
	if err != nil {
		return "", fmt.Errorf("sequence: next %s: %w", series, err)
	}
	return Format(series, year, seq), nil
}

// Seed raises the counters of series so numbers issued afterwards never
// collide with existing ones. Used after importing or restoring documents.
func (s *Sequencer) Seed(ctx context.Context, series Series, numbers []string) error {
	if !s.yearly {
		if highest := MaxSuffix(numbers); highest > 0 {
			return s.seed(ctx, series, GlobalScope, highest)
		}
		return nil
	}

	byYear := make(map[int]int64)
	for _, n := range numbers {
		y := Year(n)
		if suf := Suffix(n); suf > byYear[y] {
			byYear[y] = suf
		}
	}
	for y, highest := range byYear {
		if err := s.seed(ctx, series, y, highest); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) seed(ctx context.Context, series Series, scope int, value int64) error {
	if err := s.store.SeedSequence(ctx, series, scope, value); err != nil {
		return fmt.Errorf("sequence: seed %s: %w", series, err)
	}
	return nil
}
