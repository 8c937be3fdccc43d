package audithook_test

import (
	"context"
	"errors"
	"testing"

	audithook "github.com/xraph/daftar/audit_hook"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/types"
)

type captured struct{ events []*audithook.AuditEvent }

func (c *captured) Record(_ context.Context, e *audithook.AuditEvent) error {
	c.events = append(c.events, e)
	return nil
}

func TestInvoiceCancelledEvent(t *testing.T) {
	rec := &captured{}
	ext := audithook.New(rec)
	inv := &invoice.Invoice{ID: id.NewInvoiceID(), Number: "INV-000007"}

	if err := ext.OnInvoiceCancelled(context.Background(), inv, "duplicate"); err != nil {
		t.Fatalf("OnInvoiceCancelled: %v", err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
	e := rec.events[0]
	if e.Action != audithook.ActionInvoiceCancelled || e.Severity != audithook.SeverityWarning {
		t.Errorf("event = %s/%s", e.Action, e.Severity)
	}
	if e.ResourceID != inv.ID.String() || e.Reason != "duplicate" {
		t.Errorf("resource_id = %q reason = %q", e.ResourceID, e.Reason)
	}
	if e.Metadata["number"] != "INV-000007" {
		t.Errorf("metadata = %v", e.Metadata)
	}
}

func TestReceiptMethodDefaultsToCash(t *testing.T) {
	rec := &captured{}
	ext := audithook.New(rec)

	r := &receipt.Receipt{ID: id.NewReceiptID(), Type: receipt.TypePayment, Amount: types.SAR(1000)}
	_ = ext.OnReceiptRecorded(context.Background(), r)

	if got := rec.events[0].Metadata["method"]; got != "cash" {
		t.Errorf("method = %v, want cash", got)
	}
}

func TestActionFilters(t *testing.T) {
	tests := []struct {
		name string
		opt  audithook.Option
		want int
	}{
		{"all", nil, 2},
		{"enabled only paid", audithook.WithEnabledActions(audithook.ActionInvoicePaid), 1},
		{"disabled issued", audithook.WithDisabledActions(audithook.ActionInvoiceIssued), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &captured{}
			var opts []audithook.Option
			if tt.opt != nil {
				opts = append(opts, tt.opt)
			}
			ext := audithook.New(rec, opts...)
			inv := &invoice.Invoice{ID: id.NewInvoiceID()}
			_ = ext.OnInvoiceIssued(context.Background(), inv)
			_ = ext.OnInvoicePaid(context.Background(), inv)
			if len(rec.events) != tt.want {
				t.Errorf("events = %d, want %d", len(rec.events), tt.want)
			}
		})
	}
}

func TestRecorderFailureSwallowed(t *testing.T) {
	ext := audithook.New(audithook.RecorderFunc(func(context.Context, *audithook.AuditEvent) error {
		return errors.New("backend down")
	}))
	if err := ext.OnInvoicePaid(context.Background(), &invoice.Invoice{}); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}
