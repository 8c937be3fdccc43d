package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/types"
)

func TestItemCompute(t *testing.T) {
	tests := []struct {
		name      string
		qty       int64
		unit      int64
		rate      string
		wantNet   int64
		wantVAT   int64
		wantGross int64
	}{
		{"standard rate", 2, 50000, "15", 100000, 15000, 115000},
		{"zero rated", 3, 1000, "0", 3000, 0, 3000},
		{"rounding", 1, 333, "15", 333, 50, 383},
		{"fractional rate", 4, 2500, "5.5", 10000, 550, 10550},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := invoice.Item{Quantity: tt.qty, UnitPrice: types.SAR(tt.unit), VATRate: decimal.RequireFromString(tt.rate)}
			// Stale aggregates are overwritten.
			it.TotalWithVAT = types.SAR(1)
			it.Compute()

			if it.TotalWithoutVAT.Amount != tt.wantNet {
				t.Errorf("TotalWithoutVAT: got %d, want %d", it.TotalWithoutVAT.Amount, tt.wantNet)
			}
			if it.VATAmount.Amount != tt.wantVAT {
				t.Errorf("VATAmount: got %d, want %d", it.VATAmount.Amount, tt.wantVAT)
			}
			if it.TotalWithVAT.Amount != tt.wantGross {
				t.Errorf("TotalWithVAT: got %d, want %d", it.TotalWithVAT.Amount, tt.wantGross)
			}
		})
	}
}

func TestRecomputeTotals(t *testing.T) {
	inv := &invoice.Invoice{Items: []invoice.Item{
		{Quantity: 1, UnitPrice: types.SAR(10000), VATRate: invoice.DefaultVATRate},
		{Quantity: 2, UnitPrice: types.SAR(2550), VATRate: invoice.DefaultVATRate},
	}}
	inv.Recompute(types.DefaultCurrency)

	if !inv.Total.Equal(inv.Subtotal.Add(inv.VATTotal)) {
		t.Errorf("total %v != subtotal %v + vat %v", inv.Total, inv.Subtotal, inv.VATTotal)
	}
	var sum int64
	for _, it := range inv.Items {
		sum += it.TotalWithVAT.Amount
	}
	if inv.Total.Amount != sum {
		t.Errorf("total %d != sum of items %d", inv.Total.Amount, sum)
	}
	if inv.Subtotal.Amount != 15100 || inv.VATTotal.Amount != 2265 {
		t.Errorf("got subtotal %d vat %d", inv.Subtotal.Amount, inv.VATTotal.Amount)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to invoice.Status
		want     bool
	}{
		{invoice.StatusDraft, invoice.StatusIssued, true},
		{invoice.StatusDraft, invoice.StatusCancelled, true},
		{invoice.StatusDraft, invoice.StatusPaid, false},
		{invoice.StatusIssued, invoice.StatusPaid, true},
		{invoice.StatusIssued, invoice.StatusCancelled, true},
		{invoice.StatusIssued, invoice.StatusDraft, false},
		{invoice.StatusPaid, invoice.StatusCancelled, false},
		{invoice.StatusCancelled, invoice.StatusIssued, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := invoice.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition: got %v, want %v", got, tt.want)
			}
		})
	}

	if !invoice.StatusPaid.Terminal() || !invoice.StatusCancelled.Terminal() || invoice.StatusIssued.Terminal() {
		t.Error("unexpected terminal states")
	}
}
