package memory_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/store/memory"
	"github.com/xraph/daftar/types"
)

func newClient(name string, at time.Time) *client.Client {
	return &client.Client{
		Entity: types.NewEntityAt(at),
		ID:     id.NewClientID(),
		Name:   name,
		Type:   client.TypeIndividual,
	}
}

func TestClientCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	c := newClient("أحمد", time.Now())
	if err := s.CreateClient(ctx, c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	c.Name = "changed after create"

	got, err := s.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.Name != "أحمد" {
		t.Errorf("store shares state with caller: name %q", got.Name)
	}
	got.Name = "changed after get"

	again, _ := s.GetClient(ctx, c.ID)
	if again.Name != "أحمد" {
		t.Errorf("store shares state with reader: name %q", again.Name)
	}

	if err := s.CreateClient(ctx, c); !errors.Is(err, daftar.ErrAlreadyExists) {
		t.Errorf("duplicate create: got %v, want ErrAlreadyExists", err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"client", func() error { _, err := s.GetClient(ctx, id.NewClientID()); return err }(), daftar.ErrClientNotFound},
		{"supplier", func() error { _, err := s.GetSupplier(ctx, id.NewSupplierID()); return err }(), daftar.ErrSupplierNotFound},
		{"project", func() error { _, err := s.GetProject(ctx, id.NewProjectID()); return err }(), daftar.ErrProjectNotFound},
		{"invoice", func() error { _, err := s.GetInvoice(ctx, id.NewInvoiceID()); return err }(), daftar.ErrInvoiceNotFound},
		{"invoice number", func() error { _, err := s.GetInvoiceByNumber(ctx, "INV-2024-000001"); return err }(), daftar.ErrInvoiceNotFound},
		{"receipt", func() error { _, err := s.GetReceipt(ctx, id.NewReceiptID()); return err }(), daftar.ErrReceiptNotFound},
		{"note", func() error { _, err := s.GetNote(ctx, id.NewNoteID()); return err }(), daftar.ErrNoteNotFound},
		{"update client", s.UpdateClient(ctx, newClient("x", time.Now())), daftar.ErrClientNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("got %v, want %v", tt.err, tt.want)
			}
			if !daftar.IsNotFound(tt.err) {
				t.Errorf("IsNotFound(%v) = false", tt.err)
			}
		})
	}
}

func TestListClientsOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	names := []string{"a", "b", "c", "d"}
	for i, n := range names {
		c := newClient(n, base.Add(time.Duration(i)*time.Hour))
		if i == 3 {
			c.Type = client.TypeFacility
		}
		if err := s.CreateClient(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := s.ListClients(ctx, client.ListOpts{})
	for i, c := range all {
		if c.Name != names[i] {
			t.Fatalf("order: got %s at %d, want %s", c.Name, i, names[i])
		}
	}

	pg, _ := s.ListClients(ctx, client.ListOpts{Limit: 2, Offset: 1})
	if len(pg) != 2 || pg[0].Name != "b" || pg[1].Name != "c" {
		t.Errorf("page: got %d clients", len(pg))
	}

	past, _ := s.ListClients(ctx, client.ListOpts{Offset: 10})
	if len(past) != 0 {
		t.Errorf("offset past end: got %d clients", len(past))
	}

	facilities, _ := s.ListClients(ctx, client.ListOpts{Type: client.TypeFacility})
	if len(facilities) != 1 || facilities[0].Name != "d" {
		t.Errorf("type filter: got %d clients", len(facilities))
	}
}

func TestInvoiceNumberUnique(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := &invoice.Invoice{ID: id.NewInvoiceID(), Number: "INV-2024-000001"}
	b := &invoice.Invoice{ID: id.NewInvoiceID(), Number: "INV-2024-000001"}
	if err := s.CreateInvoice(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateInvoice(ctx, b); !errors.Is(err, daftar.ErrAlreadyExists) {
		t.Errorf("duplicate number: got %v", err)
	}

	got, err := s.GetInvoiceByNumber(ctx, "INV-2024-000001")
	if err != nil || got.ID != a.ID {
		t.Errorf("GetInvoiceByNumber: got %v, %v", got, err)
	}
}

func TestListReceiptsDateRange(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	c := id.NewClientID()

	dates := []time.Time{
		time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		r := &receipt.Receipt{
			ID:       id.NewReceiptID(),
			Number:   sequence.Format(sequence.SeriesReceipt, 2024, int64(i+1)),
			Type:     receipt.TypePayment,
			ClientID: c,
			Amount:   types.SAR(100),
			Date:     d,
		}
		if err := s.CreateReceipt(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	feb, _ := s.ListReceipts(ctx, receipt.ListOpts{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if len(feb) != 2 {
		t.Errorf("february: got %d receipts, want 2", len(feb))
	}

	others, _ := s.ListReceipts(ctx, receipt.ListOpts{ClientID: id.NewClientID()})
	if len(others) != 0 {
		t.Errorf("client filter: got %d receipts", len(others))
	}
}

func TestNextSequenceConcurrent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	const n = 200
	seen := make(chan int64, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.NextSequence(ctx, sequence.SeriesInvoice, sequence.GlobalScope)
			if err != nil {
				t.Error(err)
				return
			}
			seen <- v
		}()
	}
	wg.Wait()
	close(seen)

	got := make(map[int64]bool, n)
	for v := range seen {
		if got[v] {
			t.Fatalf("value %d issued twice", v)
		}
		got[v] = true
	}
	for i := int64(1); i <= n; i++ {
		if !got[i] {
			t.Errorf("value %d never issued", i)
		}
	}
}

func TestSeedSequenceNeverLowers(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_ = s.SeedSequence(ctx, sequence.SeriesNote, sequence.GlobalScope, 7)
	_ = s.SeedSequence(ctx, sequence.SeriesNote, sequence.GlobalScope, 3)

	v, _ := s.NextSequence(ctx, sequence.SeriesNote, sequence.GlobalScope)
	if v != 8 {
		t.Errorf("got %d, want 8", v)
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	c := newClient("مؤسسة النور", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	_ = s.CreateClient(ctx, c)
	_ = s.CreateInvoice(ctx, &invoice.Invoice{
		ID:       id.NewInvoiceID(),
		Number:   "INV-2024-000009",
		ClientID: c.ID,
		Total:    types.SAR(11500),
		Status:   invoice.StatusIssued,
	})
	for range 3 {
		_, _ = s.NextSequence(ctx, sequence.SeriesReceipt, sequence.GlobalScope)
	}

	path := filepath.Join(t.TempDir(), "state.json")
	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	restored := memory.New()
	if err := restored.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	got, err := restored.GetClient(ctx, c.ID)
	if err != nil || got.Name != c.Name {
		t.Fatalf("client after restore: %v, %v", got, err)
	}
	inv, err := restored.GetInvoiceByNumber(ctx, "INV-2024-000009")
	if err != nil || inv.Total.Amount != 11500 || inv.Total.Currency != "sar" {
		t.Fatalf("invoice after restore: %+v, %v", inv, err)
	}

	tests := []struct {
		series sequence.Series
		scope  int
		want   int64
	}{
		{sequence.SeriesReceipt, sequence.GlobalScope, 4},
		{sequence.SeriesInvoice, sequence.GlobalScope, 10},
		{sequence.SeriesInvoice, 2024, 10},
		{sequence.SeriesNote, sequence.GlobalScope, 1},
	}
	for _, tt := range tests {
		v, _ := restored.NextSequence(ctx, tt.series, tt.scope)
		if v != tt.want {
			t.Errorf("%s/%d: got %d, want %d", tt.series, tt.scope, v, tt.want)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	s := memory.New()
	if err := s.LoadFile(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}
