package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	daftar "github.com/xraph/daftar"
	"github.com/xraph/daftar/internal/config"
	"github.com/xraph/daftar/internal/logger"
	"github.com/xraph/daftar/store/memory"
)

var version = "0.1.0"

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "daftar",
	Short: "Ledger tools for invoices, receipts and promissory notes",
	Long: `daftar reads the ledger snapshot named by DAFTAR_STATE_FILE and reports
balances and revenue, exchanges clients and suppliers with xlsx workbooks,
and previews tax QR codes and installment schedules.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	log := logger.WithComponent("cmd")
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// ledger is an engine over the state file snapshot.
type ledger struct {
	*daftar.Daftar
	store *memory.Store
	path  string
}

func openLedger(ctx context.Context) (*ledger, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	st := memory.New()
	if err := st.LoadFile(appConfig.StateFile); err != nil {
		return nil, err
	}
	eng := daftar.New(st,
		daftar.WithLogger(logger.Slog()),
		daftar.WithSeller(appConfig.SellerName, appConfig.SellerVAT),
		daftar.WithDefaultVATRate(appConfig.VATRate),
		daftar.WithYearlyNumbering(appConfig.YearlyNumbering),
	)
	if err := eng.Start(ctx); err != nil {
		return nil, err
	}
	return &ledger{Daftar: eng, store: st, path: appConfig.StateFile}, nil
}

// save writes the snapshot back to the state file.
func (l *ledger) save() error { return l.store.SaveFile(l.path) }

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}
