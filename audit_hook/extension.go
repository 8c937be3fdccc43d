// Package audithook bridges Daftar lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit store. Callers inject a RecorderFunc adapter at
// wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/plugin"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin               = (*Extension)(nil)
	_ plugin.OnClientRegistered   = (*Extension)(nil)
	_ plugin.OnSupplierRegistered = (*Extension)(nil)
	_ plugin.OnInvoiceCreated     = (*Extension)(nil)
	_ plugin.OnInvoiceIssued      = (*Extension)(nil)
	_ plugin.OnInvoicePaid        = (*Extension)(nil)
	_ plugin.OnInvoiceCancelled   = (*Extension)(nil)
	_ plugin.OnReceiptRecorded    = (*Extension)(nil)
	_ plugin.OnNoteCreated        = (*Extension)(nil)
	_ plugin.OnNotePaid           = (*Extension)(nil)
	_ plugin.OnNoteCancelled      = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a single audited ledger action.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Daftar lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Registry hooks
// ──────────────────────────────────────────────────

// OnClientRegistered implements plugin.OnClientRegistered.
func (e *Extension) OnClientRegistered(ctx context.Context, c *client.Client) error {
	return e.record(ctx, ActionClientRegistered, SeverityInfo, ResourceClient, c.ID.String(), CategoryRegistry, "",
		"name", c.Name,
		"type", string(c.Type),
	)
}

// OnSupplierRegistered implements plugin.OnSupplierRegistered.
func (e *Extension) OnSupplierRegistered(ctx context.Context, s *supplier.Supplier) error {
	return e.record(ctx, ActionSupplierRegistered, SeverityInfo, ResourceSupplier, s.ID.String(), CategoryRegistry, "",
		"name", s.Name,
	)
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoiceCreated, SeverityInfo, ResourceInvoice, inv.ID.String(), CategoryBilling, "",
		"number", inv.Number,
		"client_id", inv.ClientID.String(),
		"total", inv.Total.Amount,
	)
}

// OnInvoiceIssued implements plugin.OnInvoiceIssued.
func (e *Extension) OnInvoiceIssued(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoiceIssued, SeverityInfo, ResourceInvoice, inv.ID.String(), CategoryBilling, "",
		"number", inv.Number,
		"total", inv.Total.Amount,
	)
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (e *Extension) OnInvoicePaid(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoicePaid, SeverityInfo, ResourceInvoice, inv.ID.String(), CategoryPayment, "",
		"number", inv.Number,
	)
}

// OnInvoiceCancelled implements plugin.OnInvoiceCancelled. Cancellation
// is audited as a warning.
func (e *Extension) OnInvoiceCancelled(ctx context.Context, inv *invoice.Invoice, reason string) error {
	return e.record(ctx, ActionInvoiceCancelled, SeverityWarning, ResourceInvoice, inv.ID.String(), CategoryBilling, reason,
		"number", inv.Number,
	)
}

// ──────────────────────────────────────────────────
// Receipt and note hooks
// ──────────────────────────────────────────────────

// OnReceiptRecorded implements plugin.OnReceiptRecorded.
func (e *Extension) OnReceiptRecorded(ctx context.Context, r *receipt.Receipt) error {
	return e.record(ctx, ActionReceiptRecorded, SeverityInfo, ResourceReceipt, r.ID.String(), CategoryPayment, "",
		"number", r.Number,
		"type", string(r.Type),
		"amount", r.Amount.Amount,
		"method", string(receipt.MethodOrCash(r.Method).Type),
	)
}

// OnNoteCreated implements plugin.OnNoteCreated.
func (e *Extension) OnNoteCreated(ctx context.Context, n *promissory.Note) error {
	return e.record(ctx, ActionNoteCreated, SeverityInfo, ResourceNote, n.ID.String(), CategoryCredit, "",
		"number", n.Number,
		"amount", n.Amount.Amount,
		"due_date", n.DueDate,
	)
}

// OnNotePaid implements plugin.OnNotePaid.
func (e *Extension) OnNotePaid(ctx context.Context, n *promissory.Note, r *receipt.Receipt) error {
	return e.record(ctx, ActionNotePaid, SeverityInfo, ResourceNote, n.ID.String(), CategoryCredit, "",
		"number", n.Number,
		"receipt_id", r.ID.String(),
	)
}

// OnNoteCancelled implements plugin.OnNoteCancelled.
func (e *Extension) OnNoteCancelled(ctx context.Context, n *promissory.Note) error {
	return e.record(ctx, ActionNoteCancelled, SeverityWarning, ResourceNote, n.ID.String(), CategoryCredit, "",
		"number", n.Number,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
// Recorder failures are logged and never returned.
func (e *Extension) record(
	ctx context.Context,
	action, severity string,
	resource, resourceID, category string,
	reason string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    OutcomeSuccess,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
