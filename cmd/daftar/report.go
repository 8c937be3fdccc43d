package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/internal/logger"
	"github.com/xraph/daftar/supplier"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print ledger reports",
}

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Print the balance of every client and supplier",
	RunE:  runBalances,
}

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Print client payments by month and method",
	Example: `  # Last twelve months
  daftar report revenue

  # A single quarter
  daftar report revenue --from 2024-01-01 --to 2024-03-31`,
	RunE: runRevenue,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(balancesCmd, revenueCmd)

	revenueCmd.Flags().String("from", "", "Start date (YYYY-MM-DD, default: eleven months before --to)")
	revenueCmd.Flags().String("to", "", "End date (YYYY-MM-DD, default: today)")
}

func runBalances(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Stop()

	clients, err := l.ListClients(ctx, client.ListOpts{})
	if err != nil {
		return err
	}
	clientBalances, err := l.ClientBalances(ctx)
	if err != nil {
		return err
	}
	suppliers, err := l.ListSuppliers(ctx, supplier.ListOpts{})
	if err != nil {
		return err
	}
	supplierBalances, err := l.SupplierBalances(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLIENT\tINVOICED\tPAID\tBALANCE")
	for _, c := range clients {
		b := clientBalances[c.ID]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, b.TotalInvoiced.FormatMajor(), b.TotalPaid.FormatMajor(), b.Balance.FormatMajor())
	}
	fmt.Fprintln(w, "\nSUPPLIER\tEXPENSES\tPAID\tBALANCE")
	for _, s := range suppliers {
		b := supplierBalances[s.ID]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, b.TotalExpenses.FormatMajor(), b.TotalPaid.FormatMajor(), b.Balance.FormatMajor())
	}

	log := logger.WithComponent("report")
	log.Debug().
		Int("clients", len(clients)).
		Int("suppliers", len(suppliers)).
		Msg("Balances printed")
	return w.Flush()
}

func runRevenue(cmd *cobra.Command, _ []string) error {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	from, err := parseDate(fromStr)
	if err != nil {
		return err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return err
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1).Add(-1)
	}

	ctx := cmd.Context()
	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Stop()

	rev, err := l.Revenue(ctx, from, to)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "MONTH\tTOTAL")
	for _, m := range rev.ByMethod {
		fmt.Fprintf(w, "\t%s", m.Label)
	}
	fmt.Fprintln(w)
	for _, month := range rev.Months {
		fmt.Fprintf(w, "%s\t%s", month.Label, month.Total.FormatMajor())
		for _, m := range month.ByMethod {
			fmt.Fprintf(w, "\t%s", m.Amount.FormatMajor())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "TOTAL\t%s", rev.Total.FormatMajor())
	for _, m := range rev.ByMethod {
		fmt.Fprintf(w, "\t%s", m.Amount.FormatMajor())
	}
	fmt.Fprintln(w)
	return w.Flush()
}
