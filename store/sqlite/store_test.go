package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/store/sqlite"
	"github.com/xraph/daftar/types"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()
	drv := sqlitedriver.New()
	if err := drv.Open(ctx, filepath.Join(t.TempDir(), "daftar.db")); err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		t.Fatalf("grove.Open: %v", err)
	}
	return sqlite.New(db)
}

func TestEngineOnSQLite(t *testing.T) {
	ctx := context.Background()
	d := daftar.New(openStore(t), daftar.WithQRSize(0))
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = d.Stop() })

	c := &client.Client{Name: "عميل", Type: client.TypeIndividual}
	if err := d.RegisterClient(ctx, c); err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}

	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	inv, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  due,
		Items:    []invoice.ItemInput{{Description: "تصميم", Quantity: 2, UnitPrice: types.SAR(50000)}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := d.ActivateInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("ActivateInvoice: %v", err)
	}

	got, err := d.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != invoice.StatusIssued || got.Total.Amount != 115000 || !got.DueDate.Equal(due) {
		t.Errorf("stored invoice = %s/%d/%v", got.Status, got.Total.Amount, got.DueDate)
	}

	if _, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{}); err != nil {
		t.Fatalf("RecordInvoicePayment: %v", err)
	}
	if got, _ = d.GetInvoice(ctx, inv.ID); got.Status != invoice.StatusPaid {
		t.Errorf("status after full payment = %q, want paid", got.Status)
	}

	notes, err := d.CreateInstallments(ctx, promissory.Plan{
		ClientID: c.ID,
		Total:    types.SAR(100000),
		Start:    due,
		Count:    3,
		Months:   1,
	})
	if err != nil {
		t.Fatalf("CreateInstallments: %v", err)
	}
	if len(notes) != 3 || notes[2].Amount.Amount != 33334 {
		t.Fatalf("installments = %d, last = %v", len(notes), notes[len(notes)-1].Amount)
	}

	r, err := d.PayNote(ctx, notes[0].ID, receipt.PaymentInput{})
	if err != nil {
		t.Fatalf("PayNote: %v", err)
	}
	if r.Number != "RCP-"+r.Date.Format("2006")+"-000002" {
		t.Errorf("note receipt number = %q", r.Number)
	}
	paid, err := d.GetNote(ctx, notes[0].ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if paid.Status != promissory.StatusPaid || paid.ReceiptID != r.ID {
		t.Errorf("note = %s linked to %s, want paid and %s", paid.Status, paid.ReceiptID, r.ID)
	}

	b, err := d.ClientBalance(ctx, c.ID)
	if err != nil {
		t.Fatalf("ClientBalance: %v", err)
	}
	// The note payment is a client payment with no invoice behind it.
	if b.TotalInvoiced.Amount != 115000 || b.TotalPaid.Amount != 148333 {
		t.Errorf("balance = %d/%d, want 115000/148333", b.TotalInvoiced.Amount, b.TotalPaid.Amount)
	}

	if err := d.DeleteClient(ctx, c.ID); !errors.Is(err, daftar.ErrClientInUse) {
		t.Errorf("DeleteClient: err = %v, want ErrClientInUse", err)
	}
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	t.Cleanup(func() { _ = s.Close() })

	for i := 0; i < 2; i++ {
		if err := s.Migrate(ctx); err != nil {
			t.Fatalf("Migrate #%d: %v", i+1, err)
		}
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
