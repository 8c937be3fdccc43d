// Package report derives balances and revenue figures from ledger
// documents. Every function is a pure O(n) scan over the collections it
// is given; nothing is cached or stored.
package report

import (
	"fmt"
	"slices"
	"time"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/types"
)

// Balance is what a counterparty owes (client) or is owed (supplier).
type Balance struct {
	TotalInvoiced types.Money `json:"total_invoiced"`
	TotalPaid     types.Money `json:"total_paid"`
	Balance       types.Money `json:"balance"`
}

// SupplierAccount is what the office owes a supplier.
type SupplierAccount struct {
	TotalExpenses types.Money `json:"total_expenses"`
	TotalPaid     types.Money `json:"total_paid"`
	Balance       types.Money `json:"balance"`
}

// MethodTotal is the amount moved through one payment method.
type MethodTotal struct {
	Method receipt.MethodType `json:"method"`
	Label  string             `json:"label"`
	Amount types.Money        `json:"amount"`
}

// Payments summarizes the money received from a client.
type Payments struct {
	Total    types.Money   `json:"total"`
	ByMethod []MethodTotal `json:"by_method"`
}

// Billable reports whether an invoice counts toward what a client owes.
// Drafts and cancelled invoices do not.
func Billable(inv *invoice.Invoice) bool {
	return inv.Status == invoice.StatusIssued || inv.Status == invoice.StatusPaid
}

// ClientBalance sums the client's billable invoices against its payment
// receipts.
func ClientBalance(clientID id.ClientID, invoices []*invoice.Invoice, receipts []*receipt.Receipt, currency string) Balance {
	b := Balance{
		TotalInvoiced: types.Zero(currency),
		TotalPaid:     types.Zero(currency),
	}
	for _, inv := range invoices {
		if inv.ClientID == clientID && Billable(inv) {
			b.TotalInvoiced = b.TotalInvoiced.Add(inv.Total)
		}
	}
	for _, r := range receipts {
		if r.Type == receipt.TypePayment && r.ClientID == clientID {
			b.TotalPaid = b.TotalPaid.Add(r.Amount)
		}
	}
	b.Balance = b.TotalInvoiced.Subtract(b.TotalPaid)
	return b
}

// SupplierBalance sums expense receipts for the supplier against
// payments made to it.
func SupplierBalance(supplierID id.SupplierID, receipts []*receipt.Receipt, currency string) SupplierAccount {
	b := SupplierAccount{
		TotalExpenses: types.Zero(currency),
		TotalPaid:     types.Zero(currency),
	}
	for _, r := range receipts {
		if r.SupplierID != supplierID {
			continue
		}
		switch r.Type {
		case receipt.TypeExpense:
			b.TotalExpenses = b.TotalExpenses.Add(r.Amount)
		case receipt.TypePayment:
			b.TotalPaid = b.TotalPaid.Add(r.Amount)
		}
	}
	b.Balance = b.TotalExpenses.Subtract(b.TotalPaid)
	return b
}

// MethodTotals groups receipts by payment method, in receipt.MethodTypes
// order. Receipts without a method count as cash.
func MethodTotals(receipts []*receipt.Receipt, currency string) []MethodTotal {
	sums := make(map[receipt.MethodType]types.Money, len(receipt.MethodTypes))
	for _, r := range receipts {
		m := receipt.MethodOrCash(r.Method).Type
		sum, ok := sums[m]
		if !ok {
			sum = types.Zero(currency)
		}
		sums[m] = sum.Add(r.Amount)
	}

	out := make([]MethodTotal, 0, len(receipt.MethodTypes))
	for _, m := range receipt.MethodTypes {
		amt, ok := sums[m]
		if !ok {
			amt = types.Zero(currency)
		}
		out = append(out, MethodTotal{Method: m, Label: m.Label(), Amount: amt})
	}
	return out
}

// Amount returns the total for method m, or zero.
func Amount(totals []MethodTotal, m receipt.MethodType) types.Money {
	for _, t := range totals {
		if t.Method == m {
			return t.Amount
		}
	}
	return types.Money{}
}

// ClientPayments totals the payment receipts of a client by method.
func ClientPayments(clientID id.ClientID, receipts []*receipt.Receipt, currency string) Payments {
	var mine []*receipt.Receipt
	for _, r := range receipts {
		if r.Type == receipt.TypePayment && r.ClientID == clientID {
			mine = append(mine, r)
		}
	}
	return Payments{Total: sum(mine, currency), ByMethod: MethodTotals(mine, currency)}
}

func sum(receipts []*receipt.Receipt, currency string) types.Money {
	total := types.Zero(currency)
	for _, r := range receipts {
		total = total.Add(r.Amount)
	}
	return total
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// MonthLabel returns the Arabic month name followed by the year.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", arabicMonths[t.Month()-1], t.Year())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthRevenue is one month bucket of a revenue report.
type MonthRevenue struct {
	Key      string        `json:"key"` // 2006-01
	Label    string        `json:"label"`
	Total    types.Money   `json:"total"`
	ByMethod []MethodTotal `json:"by_method"`
}

// RevenueReport is client revenue grouped by month and method.
type RevenueReport struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Total    types.Money    `json:"total"`
	ByMethod []MethodTotal  `json:"by_method"`
	Months   []MonthRevenue `json:"months"`
}

// Revenue reports client payment receipts dated within [start, end].
// A zero end means now and a zero start means the first day of the month
// eleven months before end, giving twelve monthly buckets. Buckets run
// oldest first from the month of start to the month of end.
func Revenue(receipts []*receipt.Receipt, start, end, now time.Time, currency string) RevenueReport {
	if end.IsZero() {
		end = now
	}
	if start.IsZero() {
		start = monthStart(end).AddDate(0, -11, 0)
	}

	var inWindow []*receipt.Receipt
	for _, r := range receipts {
		if r.IsClientPayment() && !r.Date.Before(start) && !r.Date.After(end) {
			inWindow = append(inWindow, r)
		}
	}

	rev := RevenueReport{
		Start:    start,
		End:      end,
		Total:    sum(inWindow, currency),
		ByMethod: MethodTotals(inWindow, currency),
	}

	byMonth := make(map[string][]*receipt.Receipt)
	for _, r := range inWindow {
		k := r.Date.In(start.Location()).Format("2006-01")
		byMonth[k] = append(byMonth[k], r)
	}
	for m := monthStart(start); !m.After(end); m = m.AddDate(0, 1, 0) {
		k := m.Format("2006-01")
		rev.Months = append(rev.Months, MonthRevenue{
			Key:      k,
			Label:    MonthLabel(m),
			Total:    sum(byMonth[k], currency),
			ByMethod: MethodTotals(byMonth[k], currency),
		})
	}
	return rev
}

// Range is a rolling window ending now.
type Range string

const (
	RangeMonth   Range = "month"
	RangeQuarter Range = "quarter"
	RangeYear    Range = "year"
)

// Start returns the beginning of the window ending at now.
func (r Range) Start(now time.Time) time.Time {
	switch r {
	case RangeQuarter:
		return now.AddDate(0, -3, 0)
	case RangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// MonthFigures is one month of the financial summary.
type MonthFigures struct {
	Key      string      `json:"key"`
	Label    string      `json:"label"`
	Invoiced types.Money `json:"invoiced"`
	Paid     types.Money `json:"paid"`
	VAT      types.Money `json:"vat"`
}

// ClientStat is one row of the per-client table.
type ClientStat struct {
	ClientID id.ClientID `json:"client_id"`
	Name     string      `json:"name"`
	Invoiced types.Money `json:"invoiced"`
	Paid     types.Money `json:"paid"`
	Balance  types.Money `json:"balance"`
}

// FinancialSummary is the financial overview of one window.
type FinancialSummary struct {
	Range          Range          `json:"range"`
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	TotalInvoiced  types.Money    `json:"total_invoiced"`
	TotalPaid      types.Money    `json:"total_paid"`
	TotalVAT       types.Money    `json:"total_vat"`
	Outstanding    types.Money    `json:"outstanding"`
	PaymentMethods []MethodTotal  `json:"payment_methods"`
	Monthly        []MonthFigures `json:"monthly"`
	Clients        []ClientStat   `json:"clients"`
}

// Summary builds the financial overview for window r ending at now.
// Billable invoices dated in the window and client payment receipts dated
// in the window are counted. The monthly series always covers the twelve
// months ending with the current one; months before the window show zero.
func Summary(clients []*client.Client, invoices []*invoice.Invoice, receipts []*receipt.Receipt, r Range, now time.Time, currency string) FinancialSummary {
	start := r.Start(now)
	inWindow := func(t time.Time) bool { return !t.Before(start) && !t.After(now) }

	var invs []*invoice.Invoice
	for _, inv := range invoices {
		if Billable(inv) && inWindow(inv.Date) {
			invs = append(invs, inv)
		}
	}
	var rcpts []*receipt.Receipt
	for _, rc := range receipts {
		if rc.IsClientPayment() && inWindow(rc.Date) {
			rcpts = append(rcpts, rc)
		}
	}

	s := FinancialSummary{
		Range:          r,
		Start:          start,
		End:            now,
		TotalInvoiced:  types.Zero(currency),
		TotalPaid:      sum(rcpts, currency),
		TotalVAT:       types.Zero(currency),
		PaymentMethods: MethodTotals(rcpts, currency),
	}
	for _, inv := range invs {
		s.TotalInvoiced = s.TotalInvoiced.Add(inv.Total)
		s.TotalVAT = s.TotalVAT.Add(inv.VATTotal)
	}
	s.Outstanding = s.TotalInvoiced.Subtract(s.TotalPaid)

	first := monthStart(now).AddDate(0, -11, 0)
	for i := 0; i < 12; i++ {
		m := first.AddDate(0, i, 0)
		k := m.Format("2006-01")
		f := MonthFigures{
			Key:      k,
			Label:    MonthLabel(m),
			Invoiced: types.Zero(currency),
			Paid:     types.Zero(currency),
			VAT:      types.Zero(currency),
		}
		for _, inv := range invs {
			if inv.Date.In(now.Location()).Format("2006-01") == k {
				f.Invoiced = f.Invoiced.Add(inv.Total)
				f.VAT = f.VAT.Add(inv.VATTotal)
			}
		}
		for _, rc := range rcpts {
			if rc.Date.In(now.Location()).Format("2006-01") == k {
				f.Paid = f.Paid.Add(rc.Amount)
			}
		}
		s.Monthly = append(s.Monthly, f)
	}

	for _, c := range clients {
		b := ClientBalance(c.ID, invs, rcpts, currency)
		s.Clients = append(s.Clients, ClientStat{
			ClientID: c.ID,
			Name:     c.Name,
			Invoiced: b.TotalInvoiced,
			Paid:     b.TotalPaid,
			Balance:  b.Balance,
		})
	}
	slices.SortStableFunc(s.Clients, func(a, b ClientStat) int {
		switch {
		case a.Invoiced.Amount > b.Invoiced.Amount:
			return -1
		case a.Invoiced.Amount < b.Invoiced.Amount:
			return 1
		default:
			return 0
		}
	})
	return s
}
