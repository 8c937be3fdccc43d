package daftar_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/store/memory"
	"github.com/xraph/daftar/types"
)

// TestDocumentationExamples keeps the package documentation honest.
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStart", func(t *testing.T) {
		ctx := context.Background()
		d := daftar.New(memory.New(),
			daftar.WithLogger(slog.Default()),
			daftar.WithSeller("مكتب الهندسة", "300000000000003"),
		)
		if err := d.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer d.Stop()

		c := &client.Client{Name: "أحمد", Type: client.TypeIndividual}
		if err := d.RegisterClient(ctx, c); err != nil {
			t.Fatal(err)
		}

		inv, err := d.CreateInvoice(ctx, invoice.Input{
			ClientID: c.ID,
			DueDate:  time.Now().AddDate(0, 0, 30),
			Items: []invoice.ItemInput{
				{Description: "تصميم معماري", Quantity: 1, UnitPrice: types.SAR(500000)},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if inv.Total.Amount != 575000 {
			t.Errorf("Total = %d, want 575000", inv.Total.Amount)
		}
		if inv.QRCode == "" {
			t.Error("QR image missing with the default size")
		}

		if _, err := d.ActivateInvoice(ctx, inv.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{}); err != nil {
			t.Fatal(err)
		}

		b, err := d.ClientBalance(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !b.Balance.IsZero() {
			t.Errorf("Balance = %s, want zero", b.Balance)
		}
	})

	t.Run("Money", func(t *testing.T) {
		price := daftar.SAR(123456)
		if got := price.FormatMajor(); got != "1234.56" {
			t.Errorf("FormatMajor = %q", got)
		}
		total := daftar.Sum(price, daftar.SAR(44))
		if total.Amount != 123500 {
			t.Errorf("Sum = %d", total.Amount)
		}
		parsed, err := daftar.ParseMoney("10.5", "sar")
		if err != nil || parsed.Amount != 1050 {
			t.Errorf("ParseMoney = %v, %v", parsed, err)
		}
	})
}
