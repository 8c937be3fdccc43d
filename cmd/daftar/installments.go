package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/types"
)

var installmentsCmd = &cobra.Command{
	Use:     "installments",
	Short:   "Preview a promissory note installment schedule",
	Example: `  daftar installments --total 1000 --count 3 --months 1 --start 2024-01-15`,
	RunE:    runInstallments,
}

func init() {
	rootCmd.AddCommand(installmentsCmd)

	installmentsCmd.Flags().String("total", "", "Amount to split, in SAR")
	installmentsCmd.Flags().Int("count", 1, "Number of installments")
	installmentsCmd.Flags().Int("months", 1, "Months between due dates")
	installmentsCmd.Flags().String("start", "", "First due date (YYYY-MM-DD, default: today)")
	_ = installmentsCmd.MarkFlagRequired("total")
}

func runInstallments(cmd *cobra.Command, _ []string) error {
	totalStr, _ := cmd.Flags().GetString("total")
	count, _ := cmd.Flags().GetInt("count")
	months, _ := cmd.Flags().GetInt("months")
	startStr, _ := cmd.Flags().GetString("start")

	total, err := types.ParseMoney(totalStr, types.DefaultCurrency)
	if err != nil {
		return fmt.Errorf("--total: %w", err)
	}
	if !total.IsPositive() {
		return errors.New("--total must be positive")
	}
	if count < 1 {
		return errors.New("--count must be at least 1")
	}
	if months < 1 && count > 1 {
		return errors.New("--months must be at least 1")
	}
	start, err := parseDate(startStr)
	if err != nil {
		return err
	}
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}

	inputs := promissory.Schedule(promissory.Plan{Total: total, Start: start, Count: count, Months: months})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDUE\tAMOUNT")
	for i, in := range inputs {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, in.DueDate.Format("2006-01-02"), in.Amount.FormatMajor())
	}
	return w.Flush()
}
