package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xraph/daftar/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the ledger to an xlsx workbook",
	Example: `  daftar export --out ledger.xlsx`,
	RunE:    runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Register clients and suppliers from an xlsx workbook",
	Long: `Reads the clients and suppliers sheets of a workbook and adds every row
with a name to the state file. Rows whose ID is already present are skipped.`,
	Example: `  daftar import --in contacts.xlsx`,
	RunE:    runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().String("out", "daftar.xlsx", "Output workbook path")
	importCmd.Flags().String("in", "", "Workbook to import")
	_ = importCmd.MarkFlagRequired("in")
}

func runExport(cmd *cobra.Command, _ []string) error {
	log := logger.WithComponent("export")
	out, _ := cmd.Flags().GetString("out")

	ctx := cmd.Context()
	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Stop()

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := l.ExportWorkbook(ctx, f, time.Now()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info().Str("file", out).Msg("Workbook exported")
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	log := logger.WithComponent("import")
	in, _ := cmd.Flags().GetString("in")

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer f.Close()

	ctx := cmd.Context()
	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Stop()

	res, err := l.ImportWorkbook(ctx, f)
	if err != nil {
		return err
	}
	for _, rowErr := range res.Errors.Errors {
		log.Warn().Err(rowErr).Msg("Row rejected")
	}
	if err := l.save(); err != nil {
		return err
	}

	log.Info().
		Int("clients", res.Clients).
		Int("suppliers", res.Suppliers).
		Int("skipped", res.Skipped).
		Int("rejected", len(res.Errors.Errors)).
		Msg("Workbook imported")
	return nil
}
