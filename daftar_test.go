package daftar_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/report"
	"github.com/xraph/daftar/store/memory"
	"github.com/xraph/daftar/supplier"
	"github.com/xraph/daftar/types"
)

// tickingClock starts at start and advances one second per reading so that
// records created in a test keep their creation order.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

var testStart = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestDaftar(t *testing.T, opts ...daftar.Option) *daftar.Daftar {
	t.Helper()
	opts = append([]daftar.Option{
		daftar.WithClock(tickingClock(testStart)),
		daftar.WithSeller("مكتب الهندسة", "300000000000003"),
		daftar.WithQRSize(0),
	}, opts...)
	d := daftar.New(memory.New(), opts...)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = d.Stop() })
	return d
}

func registerClient(t *testing.T, d *daftar.Daftar, name string) *client.Client {
	t.Helper()
	c := &client.Client{Name: name, Type: client.TypeIndividual}
	if err := d.RegisterClient(context.Background(), c); err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}
	return c
}

func issuedInvoice(t *testing.T, d *daftar.Daftar, clientID id.ClientID, price types.Money, rate decimal.NullDecimal) *invoice.Invoice {
	t.Helper()
	ctx := context.Background()
	inv, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: clientID,
		DueDate:  testStart.AddDate(0, 1, 0),
		Items:    []invoice.ItemInput{{Description: "تصميم", Quantity: 1, UnitPrice: price, VATRate: rate}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv, err = d.ActivateInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("ActivateInvoice: %v", err)
	}
	return inv
}

func TestInvoiceLifecycle(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "أحمد")

	inv, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  testStart.AddDate(0, 0, 30),
		Items: []invoice.ItemInput{
			{Description: "إشراف", Quantity: 2, UnitPrice: types.SAR(50000)},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.Number != "INV-2024-000001" {
		t.Errorf("Number = %q, want INV-2024-000001", inv.Number)
	}
	if inv.Status != invoice.StatusDraft {
		t.Errorf("Status = %q, want draft", inv.Status)
	}
	if inv.Subtotal.Amount != 100000 || inv.VATTotal.Amount != 15000 || inv.Total.Amount != 115000 {
		t.Errorf("totals = %d/%d/%d, want 100000/15000/115000", inv.Subtotal.Amount, inv.VATTotal.Amount, inv.Total.Amount)
	}
	if inv.QRPayload == "" {
		t.Error("QRPayload is empty")
	}

	if _, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{}); !daftar.IsIllegalTransition(err) {
		t.Errorf("paying a draft: err = %v, want illegal transition", err)
	}

	if _, err := d.ActivateInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("ActivateInvoice: %v", err)
	}
	if _, err := d.UpdateDraftInvoice(ctx, inv.ID, invoice.Input{
		DueDate: testStart,
		Items:   []invoice.ItemInput{{Quantity: 1, UnitPrice: types.SAR(1)}},
	}); !errors.Is(err, daftar.ErrInvoiceLocked) {
		t.Errorf("editing an issued invoice: err = %v, want ErrInvoiceLocked", err)
	}

	partial, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{Amount: types.SAR(50000)})
	if err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if partial.Number != "RCP-2024-000001" || partial.Method.Type != receipt.MethodCash {
		t.Errorf("receipt = %s/%s, want RCP-2024-000001/cash", partial.Number, partial.Method.Type)
	}
	got, _ := d.GetInvoice(ctx, inv.ID)
	if got.Status != invoice.StatusIssued {
		t.Errorf("after partial payment status = %q, want issued", got.Status)
	}
	outstanding, err := d.Outstanding(ctx, inv.ID)
	if err != nil {
		t.Fatalf("Outstanding: %v", err)
	}
	if outstanding.Amount != 65000 {
		t.Errorf("Outstanding = %d, want 65000", outstanding.Amount)
	}

	rest, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{})
	if err != nil {
		t.Fatalf("final payment: %v", err)
	}
	if rest.Amount.Amount != 65000 {
		t.Errorf("final payment amount = %d, want 65000", rest.Amount.Amount)
	}
	got, _ = d.GetInvoice(ctx, inv.ID)
	if got.Status != invoice.StatusPaid || got.PaidAt == nil {
		t.Errorf("status = %q paid_at = %v, want paid", got.Status, got.PaidAt)
	}

	_, err = d.AddReceipt(ctx, receipt.Input{Type: receipt.TypePayment, InvoiceID: inv.ID, Amount: types.SAR(100)})
	var te *daftar.TransitionError
	if !errors.As(err, &te) || te.From != string(invoice.StatusPaid) {
		t.Errorf("paying a paid invoice: err = %v, want TransitionError from paid", err)
	}
}

func TestCancelInvoice(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "سارة")

	inv, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  testStart,
		Items:    []invoice.ItemInput{{Quantity: 1, UnitPrice: types.SAR(1000)}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	cancelled, err := d.CancelInvoice(ctx, inv.ID, "مكررة")
	if err != nil {
		t.Fatalf("CancelInvoice: %v", err)
	}
	if cancelled.CancelReason != "مكررة" || cancelled.CancelledAt == nil {
		t.Errorf("cancel not recorded: %+v", cancelled)
	}

	_, err = d.ActivateInvoice(ctx, inv.ID)
	var te *daftar.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("activating a cancelled invoice: err = %v, want TransitionError", err)
	}
	if te.From != "cancelled" || te.To != "issued" {
		t.Errorf("TransitionError = %s -> %s", te.From, te.To)
	}

	next, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  testStart,
		Items:    []invoice.ItemInput{{Quantity: 1, UnitPrice: types.SAR(1000)}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if next.Number != "INV-2024-000002" {
		t.Errorf("number after cancellation = %q, want INV-2024-000002", next.Number)
	}
}

func TestNumberingSeries(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "خالد")
	s := &supplier.Supplier{Name: "مؤسسة التوريد", Type: supplier.TypeCompany}
	if err := d.RegisterSupplier(ctx, s); err != nil {
		t.Fatalf("RegisterSupplier: %v", err)
	}

	inputs := []receipt.Input{
		{Type: receipt.TypePayment, ClientID: c.ID, Amount: types.SAR(100)},
		{Type: receipt.TypeExpense, SupplierID: s.ID, Amount: types.SAR(200)},
		{Type: receipt.TypePayment, ClientID: c.ID, Amount: types.SAR(300)},
		{Type: receipt.TypeExpense, Beneficiary: "كهرباء", Amount: types.SAR(400)},
	}
	want := []string{"RCP-2024-000001", "EXP-2024-000001", "RCP-2024-000002", "EXP-2024-000002"}
	for i, in := range inputs {
		r, err := d.AddReceipt(ctx, in)
		if err != nil {
			t.Fatalf("AddReceipt %d: %v", i, err)
		}
		if r.Number != want[i] {
			t.Errorf("receipt %d number = %q, want %q", i, r.Number, want[i])
		}
	}
}

func TestReceiptValidation(t *testing.T) {
	d := newTestDaftar(t)
	c := registerClient(t, d, "منى")

	tests := []struct {
		name string
		in   receipt.Input
	}{
		{"payment without party", receipt.Input{Type: receipt.TypePayment, Amount: types.SAR(100)}},
		{"expense with both", receipt.Input{Type: receipt.TypeExpense, SupplierID: id.NewSupplierID(), Beneficiary: "x", Amount: types.SAR(100)}},
		{"zero amount", receipt.Input{Type: receipt.TypePayment, ClientID: c.ID}},
		{"bank without details", receipt.Input{Type: receipt.TypePayment, ClientID: c.ID, Amount: types.SAR(100), Method: receipt.Method{Type: receipt.MethodBank}}},
		{"unknown type", receipt.Input{Type: "refund", ClientID: c.ID, Amount: types.SAR(100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.AddReceipt(context.Background(), tt.in); !daftar.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestInstallments(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "فهد")

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	notes, err := d.CreateInstallments(ctx, promissory.Plan{
		ClientID: c.ID,
		Total:    types.SAR(100000),
		Start:    start,
		Count:    3,
		Months:   1,
	})
	if err != nil {
		t.Fatalf("CreateInstallments: %v", err)
	}
	wantAmounts := []int64{33333, 33333, 33334}
	if len(notes) != len(wantAmounts) {
		t.Fatalf("notes = %d, want 3", len(notes))
	}
	for i, n := range notes {
		if n.Amount.Amount != wantAmounts[i] {
			t.Errorf("note %d amount = %d, want %d", i, n.Amount.Amount, wantAmounts[i])
		}
		if want := start.AddDate(0, i, 0); !n.DueDate.Equal(want) {
			t.Errorf("note %d due = %v, want %v", i, n.DueDate, want)
		}
		if n.Status != promissory.StatusActive {
			t.Errorf("note %d status = %q", i, n.Status)
		}
	}

	if _, err := d.PlanInstallments(promissory.Plan{ClientID: c.ID, Total: types.SAR(100), Count: 0}); !daftar.IsValidation(err) {
		t.Errorf("zero count: err = %v, want validation error", err)
	}
}

func TestNoteLifecycle(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "ريم")

	n, err := d.CreateNote(ctx, promissory.Input{ClientID: c.ID, Amount: types.SAR(250000), DueDate: testStart.AddDate(0, 2, 0)})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if n.Number != "PRM-2024-000001" {
		t.Errorf("Number = %q", n.Number)
	}

	overdue, err := d.OverdueNotes(ctx, testStart.AddDate(0, 3, 0))
	if err != nil || len(overdue) != 1 {
		t.Fatalf("OverdueNotes = %d, %v; want 1", len(overdue), err)
	}

	r, err := d.PayNote(ctx, n.ID, receipt.PaymentInput{Amount: types.SAR(1)})
	if err != nil {
		t.Fatalf("PayNote: %v", err)
	}
	if r.Amount.Amount != 250000 {
		t.Errorf("receipt amount = %d, want the full note amount", r.Amount.Amount)
	}
	if r.NoteID != n.ID {
		t.Error("receipt is not linked to the note")
	}

	paid, _ := d.GetNote(ctx, n.ID)
	if paid.Status != promissory.StatusPaid || paid.ReceiptID != r.ID || paid.PaymentDate == nil {
		t.Errorf("note after payment = %+v", paid)
	}

	if _, err := d.PayNote(ctx, n.ID, receipt.PaymentInput{}); !daftar.IsIllegalTransition(err) {
		t.Errorf("paying twice: err = %v, want illegal transition", err)
	}
	if _, err := d.CancelNote(ctx, n.ID); !daftar.IsIllegalTransition(err) {
		t.Errorf("cancelling a paid note: err = %v, want illegal transition", err)
	}
}

func TestClientBalance(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "نورة")

	noVAT := decimal.NewNullDecimal(decimal.Zero)
	inv := issuedInvoice(t, d, c.ID, types.SAR(500000), noVAT)
	if _, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{Amount: types.SAR(300000)}); err != nil {
		t.Fatalf("RecordInvoicePayment: %v", err)
	}

	// Drafts do not count against the client.
	if _, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  testStart,
		Items:    []invoice.ItemInput{{Quantity: 1, UnitPrice: types.SAR(999999)}},
	}); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	b, err := d.ClientBalance(ctx, c.ID)
	if err != nil {
		t.Fatalf("ClientBalance: %v", err)
	}
	if b.TotalInvoiced.Amount != 500000 || b.TotalPaid.Amount != 300000 || b.Balance.Amount != 200000 {
		t.Errorf("balance = %d/%d/%d, want 500000/300000/200000", b.TotalInvoiced.Amount, b.TotalPaid.Amount, b.Balance.Amount)
	}

	if _, err := d.ClientBalance(ctx, id.NewClientID()); !daftar.IsNotFound(err) {
		t.Errorf("unknown client: err = %v, want not found", err)
	}
}

func TestSupplierBalance(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	s := &supplier.Supplier{Name: "مورد", Type: supplier.TypeIndividual}
	if err := d.RegisterSupplier(ctx, s); err != nil {
		t.Fatalf("RegisterSupplier: %v", err)
	}
	if _, err := d.AddReceipt(ctx, receipt.Input{Type: receipt.TypeExpense, SupplierID: s.ID, Amount: types.SAR(80000)}); err != nil {
		t.Fatalf("expense: %v", err)
	}
	if _, err := d.AddReceipt(ctx, receipt.Input{Type: receipt.TypePayment, SupplierID: s.ID, Amount: types.SAR(30000)}); err != nil {
		t.Fatalf("settlement: %v", err)
	}

	b, err := d.SupplierBalance(ctx, s.ID)
	if err != nil {
		t.Fatalf("SupplierBalance: %v", err)
	}
	if b.TotalExpenses.Amount != 80000 || b.TotalPaid.Amount != 30000 || b.Balance.Amount != 50000 {
		t.Errorf("supplier balance = %d/%d/%d", b.TotalExpenses.Amount, b.TotalPaid.Amount, b.Balance.Amount)
	}

	if err := d.DeleteSupplier(ctx, s.ID); !errors.Is(err, daftar.ErrSupplierInUse) {
		t.Errorf("DeleteSupplier: err = %v, want ErrSupplierInUse", err)
	}
}

func TestNotFound(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()

	if _, err := d.GetClient(ctx, id.NewClientID()); !errors.Is(err, daftar.ErrClientNotFound) {
		t.Errorf("GetClient: err = %v", err)
	}
	if _, err := d.GetInvoice(ctx, id.NewInvoiceID()); !daftar.IsNotFound(err) {
		t.Errorf("GetInvoice: err = %v", err)
	}
	_, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: id.NewClientID(),
		DueDate:  testStart,
		Items:    []invoice.ItemInput{{Quantity: 1, UnitPrice: types.SAR(100)}},
	})
	if !errors.Is(err, daftar.ErrClientNotFound) {
		t.Errorf("CreateInvoice for unknown client: err = %v", err)
	}
	if _, err := d.PayNote(ctx, id.NewNoteID(), receipt.PaymentInput{}); !errors.Is(err, daftar.ErrNoteNotFound) {
		t.Errorf("PayNote: err = %v", err)
	}
}

func TestDeleteClient(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()

	busy := registerClient(t, d, "مشغول")
	if _, err := d.CreateNote(ctx, promissory.Input{ClientID: busy.ID, Amount: types.SAR(100), DueDate: testStart}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if err := d.DeleteClient(ctx, busy.ID); !errors.Is(err, daftar.ErrClientInUse) {
		t.Errorf("DeleteClient with a note: err = %v, want ErrClientInUse", err)
	}

	free := registerClient(t, d, "حر")
	p := &project.Project{Title: "فيلا", ClientID: free.ID}
	if err := d.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := d.AddTask(ctx, &project.Task{ProjectID: p.ID, Title: "مخطط"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := d.DeleteClient(ctx, free.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if _, err := d.GetProject(ctx, p.ID); !daftar.IsNotFound(err) {
		t.Errorf("project survived its client: err = %v", err)
	}
}

func TestTaskRules(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "عميل")

	p := &project.Project{Title: "مبنى", ClientID: c.ID}
	if err := d.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	design := &project.Task{ProjectID: p.ID, Title: "تصميم"}
	if err := d.AddTask(ctx, design); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	permit := &project.Task{ProjectID: p.ID, Title: "رخصة", DependsOn: []id.TaskID{design.ID}}
	if err := d.AddTask(ctx, permit); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if _, err := d.UpdateTaskStatus(ctx, permit.ID, project.TaskInProgress, project.RoleEmployee); !errors.Is(err, daftar.ErrTaskLocked) {
		t.Errorf("starting a blocked task: err = %v, want ErrTaskLocked", err)
	}

	for _, tid := range []id.TaskID{design.ID, permit.ID} {
		if _, err := d.UpdateTaskStatus(ctx, tid, project.TaskCompleted, project.RoleEmployee); err != nil {
			t.Fatalf("complete %s: %v", tid, err)
		}
	}
	got, _ := d.GetProject(ctx, p.ID)
	if got.Status != project.StatusCompleted {
		t.Errorf("project status = %q, want completed", got.Status)
	}

	if _, err := d.UpdateTaskStatus(ctx, design.ID, project.TaskInProgress, project.RoleEmployee); !errors.Is(err, daftar.ErrForbidden) {
		t.Errorf("employee reopening: err = %v, want ErrForbidden", err)
	}
	if _, err := d.UpdateTaskStatus(ctx, design.ID, project.TaskInProgress, project.RoleManager); err != nil {
		t.Fatalf("manager reopening: %v", err)
	}
	got, _ = d.GetProject(ctx, p.ID)
	if got.Status != project.StatusActive {
		t.Errorf("project status after reopen = %q, want active", got.Status)
	}
}

func TestRegisterClientValidation(t *testing.T) {
	d := newTestDaftar(t)
	tests := []struct {
		name string
		c    *client.Client
	}{
		{"no name", &client.Client{Type: client.TypeIndividual}},
		{"facility without info", &client.Client{Name: "x", Type: client.TypeFacility}},
		{"individual with facility info", &client.Client{Name: "x", Type: client.TypeIndividual, FacilityInfo: &client.FacilityInfo{}}},
		{"agent registration without agent", &client.Client{Name: "x", Type: client.TypeIndividual, RegistrationType: client.RegistrationAgent}},
		{"unknown type", &client.Client{Name: "x", Type: "group"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.RegisterClient(context.Background(), tt.c); !daftar.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	src := newTestDaftar(t)
	ctx := context.Background()
	c := &client.Client{
		Name: "شركة",
		Type: client.TypeFacility,
		FacilityInfo: &client.FacilityInfo{
			CommercialRegister: "1010",
			VATNumber:          "311111111111113",
		},
	}
	if err := src.RegisterClient(ctx, c); err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}
	issuedInvoice(t, src, c.ID, types.SAR(10000), decimal.NullDecimal{})

	var buf bytes.Buffer
	if err := src.ExportWorkbook(ctx, &buf, time.Time{}); err != nil {
		t.Fatalf("ExportWorkbook: %v", err)
	}
	data := buf.Bytes()

	dst := newTestDaftar(t)
	res, err := dst.ImportWorkbook(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ImportWorkbook: %v", err)
	}
	if res.Clients != 1 {
		t.Errorf("imported clients = %d, want 1", res.Clients)
	}
	got, err := dst.GetClient(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.VATNumber() != "311111111111113" {
		t.Errorf("VAT number = %q", got.VATNumber())
	}

	again, err := dst.ImportWorkbook(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("second ImportWorkbook: %v", err)
	}
	if again.Clients != 0 || again.Skipped != 1 {
		t.Errorf("second import = %+v, want the existing client skipped", again)
	}
}

func TestUpdateClient(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "قديم")

	updated, err := d.UpdateClient(ctx, c.ID, func(next *client.Client) {
		next.Name = "جديد"
		next.Phone = "0500000000"
		next.ID = id.NewClientID()
	})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if updated.ID != c.ID {
		t.Error("UpdateClient changed the ID")
	}
	if updated.Name != "جديد" || updated.Phone != "0500000000" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("UpdatedAt not refreshed")
	}

	if _, err := d.UpdateClient(ctx, c.ID, func(next *client.Client) { next.Name = " " }); !daftar.IsValidation(err) {
		t.Errorf("blank name: err = %v, want validation error", err)
	}
}

func TestProjectFromTemplate(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "مالك")

	tpl := &project.Template{
		Title: "فيلا سكنية",
		Tasks: []project.TaskTemplate{
			{Title: "رفع مساحي", EstimatedDays: 3},
			{Title: "مخطط معماري", DependsOn: []int{0}, EstimatedDays: 10},
		},
	}
	if err := d.CreateTemplate(ctx, tpl); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	p, tasks, err := d.CreateProjectFromTemplate(ctx, tpl.ID, c.ID, "")
	if err != nil {
		t.Fatalf("CreateProjectFromTemplate: %v", err)
	}
	if p.Title != "فيلا سكنية" {
		t.Errorf("project title = %q, want the template title", p.Title)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	if len(tasks[1].DependsOn) != 1 || tasks[1].DependsOn[0] != tasks[0].ID {
		t.Errorf("dependency not resolved: %v", tasks[1].DependsOn)
	}
	if tasks[0].DueDate == nil {
		t.Error("estimated days did not set a due date")
	}

	owner, _ := d.GetClient(ctx, c.ID)
	if len(owner.Projects) != 1 || owner.Projects[0] != p.ID {
		t.Errorf("client projects = %v", owner.Projects)
	}

	bad := &project.Template{Title: "x", Tasks: []project.TaskTemplate{{Title: "a", DependsOn: []int{0}}}}
	if err := d.CreateTemplate(ctx, bad); !daftar.IsValidation(err) {
		t.Errorf("self dependency: err = %v, want validation error", err)
	}
}

func TestRevenueAndSummary(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "دخل")
	s := &supplier.Supplier{Name: "مورد", Type: supplier.TypeCompany}
	if err := d.RegisterSupplier(ctx, s); err != nil {
		t.Fatalf("RegisterSupplier: %v", err)
	}

	inv := issuedInvoice(t, d, c.ID, types.SAR(100000), decimal.NullDecimal{})
	if _, err := d.RecordInvoicePayment(ctx, inv.ID, receipt.PaymentInput{
		Amount: types.SAR(40000),
		Method: receipt.Method{Type: receipt.MethodPOS, POSReference: "POS-1"},
	}); err != nil {
		t.Fatalf("RecordInvoicePayment: %v", err)
	}
	// Supplier settlements are not revenue.
	if _, err := d.AddReceipt(ctx, receipt.Input{Type: receipt.TypePayment, SupplierID: s.ID, Amount: types.SAR(9999)}); err != nil {
		t.Fatalf("settlement: %v", err)
	}

	rev, err := d.Revenue(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if rev.Total.Amount != 40000 {
		t.Errorf("revenue total = %d, want 40000", rev.Total.Amount)
	}
	if len(rev.Months) != 12 || rev.Months[11].Key != "2024-05" {
		t.Errorf("months = %d, last = %+v", len(rev.Months), rev.Months[len(rev.Months)-1])
	}
	if got := report.Amount(rev.ByMethod, receipt.MethodPOS); got.Amount != 40000 {
		t.Errorf("pos revenue = %d, want 40000", got.Amount)
	}

	sum, err := d.FinancialSummary(ctx, report.RangeYear)
	if err != nil {
		t.Fatalf("FinancialSummary: %v", err)
	}
	if sum.TotalInvoiced.Amount != 115000 || sum.TotalVAT.Amount != 15000 {
		t.Errorf("invoiced/vat = %d/%d, want 115000/15000", sum.TotalInvoiced.Amount, sum.TotalVAT.Amount)
	}
	if sum.TotalPaid.Amount != 40000 || sum.Outstanding.Amount != 75000 {
		t.Errorf("paid/outstanding = %d/%d, want 40000/75000", sum.TotalPaid.Amount, sum.Outstanding.Amount)
	}
	if len(sum.PaymentMethods) != len(receipt.MethodTypes) {
		t.Errorf("payment methods = %d, want %d", len(sum.PaymentMethods), len(receipt.MethodTypes))
	}
	if len(sum.Clients) != 1 || sum.Clients[0].Balance.Amount != 75000 {
		t.Errorf("client stats = %+v", sum.Clients)
	}
}

func TestZeroTotalInvoiceRejected(t *testing.T) {
	d := newTestDaftar(t)
	ctx := context.Background()
	c := registerClient(t, d, "مجاني")

	_, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  testStart,
		Items:    []invoice.ItemInput{{Description: "استشارة مجانية", Quantity: 1, UnitPrice: types.SAR(0)}},
	})
	if !daftar.IsValidation(err) {
		t.Fatalf("zero total: err = %v, want validation error", err)
	}

	inv, err := d.CreateInvoice(ctx, invoice.Input{
		ClientID: c.ID,
		DueDate:  testStart,
		Items: []invoice.ItemInput{
			{Description: "زيارة", Quantity: 1, UnitPrice: types.SAR(0)},
			{Description: "تقرير", Quantity: 1, UnitPrice: types.SAR(1000)},
		},
	})
	if err != nil {
		t.Fatalf("free line beside a priced one: %v", err)
	}
	if _, err := d.UpdateDraftInvoice(ctx, inv.ID, invoice.Input{
		DueDate: testStart,
		Items:   []invoice.ItemInput{{Quantity: 2, UnitPrice: types.SAR(0)}},
	}); !daftar.IsValidation(err) {
		t.Errorf("editing down to zero: err = %v, want validation error", err)
	}
}

var errStoreDown = errors.New("store down")

// flakyStore fails note updates or receipt inserts on demand.
type flakyStore struct {
	*memory.Store
	failUpdateNote    bool
	failCreateReceipt bool
}

func (s *flakyStore) UpdateNote(ctx context.Context, n *promissory.Note) error {
	if s.failUpdateNote {
		return errStoreDown
	}
	return s.Store.UpdateNote(ctx, n)
}

func (s *flakyStore) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	if s.failCreateReceipt {
		return errStoreDown
	}
	return s.Store.CreateReceipt(ctx, r)
}

func TestPayNoteStoreFailure(t *testing.T) {
	ctx := context.Background()
	st := &flakyStore{Store: memory.New()}
	d := daftar.New(st, daftar.WithClock(tickingClock(testStart)), daftar.WithQRSize(0))
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = d.Stop() })

	c := registerClient(t, d, "متعثر")
	n, err := d.CreateNote(ctx, promissory.Input{ClientID: c.ID, Amount: types.SAR(50000), DueDate: testStart})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	assertUnpaid := func(t *testing.T) {
		t.Helper()
		got, err := d.GetNote(ctx, n.ID)
		if err != nil {
			t.Fatalf("GetNote: %v", err)
		}
		if got.Status != promissory.StatusActive || !got.ReceiptID.IsNil() || got.PaymentDate != nil {
			t.Errorf("note after failed payment = %+v, want untouched active note", got)
		}
		rs, err := d.ListReceipts(ctx, receipt.ListOpts{ClientID: c.ID})
		if err != nil {
			t.Fatalf("ListReceipts: %v", err)
		}
		if len(rs) != 0 {
			t.Errorf("receipts after failed payment = %d, want 0", len(rs))
		}
	}

	t.Run("note update fails", func(t *testing.T) {
		st.failUpdateNote = true
		defer func() { st.failUpdateNote = false }()
		if _, err := d.PayNote(ctx, n.ID, receipt.PaymentInput{}); !errors.Is(err, errStoreDown) {
			t.Fatalf("PayNote: err = %v, want store error", err)
		}
		assertUnpaid(t)
	})

	t.Run("receipt insert fails", func(t *testing.T) {
		st.failCreateReceipt = true
		defer func() { st.failCreateReceipt = false }()
		if _, err := d.PayNote(ctx, n.ID, receipt.PaymentInput{}); !errors.Is(err, errStoreDown) {
			t.Fatalf("PayNote: err = %v, want store error", err)
		}
		assertUnpaid(t)
	})

	t.Run("retry pays once", func(t *testing.T) {
		r, err := d.PayNote(ctx, n.ID, receipt.PaymentInput{})
		if err != nil {
			t.Fatalf("PayNote: %v", err)
		}
		got, _ := d.GetNote(ctx, n.ID)
		if got.Status != promissory.StatusPaid || got.ReceiptID != r.ID {
			t.Errorf("note = %+v, want paid and linked to %s", got, r.ID)
		}
		rs, _ := d.ListReceipts(ctx, receipt.ListOpts{ClientID: c.ID})
		if len(rs) != 1 {
			t.Errorf("receipts = %d, want 1", len(rs))
		}
	})
}
