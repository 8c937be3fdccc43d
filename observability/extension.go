// Package observability provides a metrics plugin for Daftar that counts
// ledger lifecycle events through a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/plugin"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin               = (*MetricsExtension)(nil)
	_ plugin.OnInit               = (*MetricsExtension)(nil)
	_ plugin.OnClientRegistered   = (*MetricsExtension)(nil)
	_ plugin.OnSupplierRegistered = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceCreated     = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceIssued      = (*MetricsExtension)(nil)
	_ plugin.OnInvoicePaid        = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceCancelled   = (*MetricsExtension)(nil)
	_ plugin.OnReceiptRecorded    = (*MetricsExtension)(nil)
	_ plugin.OnNoteCreated        = (*MetricsExtension)(nil)
	_ plugin.OnNotePaid           = (*MetricsExtension)(nil)
	_ plugin.OnNoteCancelled      = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records ledger lifecycle metrics. Amounts are observed
// in major currency units.
type MetricsExtension struct {
	factory MetricFactory

	// Registry metrics
	ClientRegistered   Counter
	SupplierRegistered Counter

	// Invoice metrics
	InvoiceCreated   Counter
	InvoiceIssued    Counter
	InvoicePaid      Counter
	InvoiceCancelled Counter
	InvoiceTotal     Histogram

	// Receipt metrics
	PaymentReceipts Counter
	ExpenseReceipts Counter
	ReceiptAmount   Histogram

	// Promissory note metrics
	NoteCreated   Counter
	NotePaid      Counter
	NoteCancelled Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		ClientRegistered:   factory.Counter("daftar.client.registered"),
		SupplierRegistered: factory.Counter("daftar.supplier.registered"),

		InvoiceCreated:   factory.Counter("daftar.invoice.created"),
		InvoiceIssued:    factory.Counter("daftar.invoice.issued"),
		InvoicePaid:      factory.Counter("daftar.invoice.paid"),
		InvoiceCancelled: factory.Counter("daftar.invoice.cancelled"),
		InvoiceTotal:     factory.Histogram("daftar.invoice.total_amount"),

		PaymentReceipts: factory.Counter("daftar.receipt.payment"),
		ExpenseReceipts: factory.Counter("daftar.receipt.expense"),
		ReceiptAmount:   factory.Histogram("daftar.receipt.amount"),

		NoteCreated:   factory.Counter("daftar.note.created"),
		NotePaid:      factory.Counter("daftar.note.paid"),
		NoteCancelled: factory.Counter("daftar.note.cancelled"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ any) error {
	return nil
}

// ──────────────────────────────────────────────────
// Registry hooks
// ──────────────────────────────────────────────────

// OnClientRegistered implements plugin.OnClientRegistered.
func (m *MetricsExtension) OnClientRegistered(_ context.Context, _ *client.Client) error {
	m.ClientRegistered.Inc()
	return nil
}

// OnSupplierRegistered implements plugin.OnSupplierRegistered.
func (m *MetricsExtension) OnSupplierRegistered(_ context.Context, _ *supplier.Supplier) error {
	m.SupplierRegistered.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, _ *invoice.Invoice) error {
	m.InvoiceCreated.Inc()
	return nil
}

// OnInvoiceIssued implements plugin.OnInvoiceIssued.
func (m *MetricsExtension) OnInvoiceIssued(_ context.Context, inv *invoice.Invoice) error {
	m.InvoiceIssued.Inc()
	m.InvoiceTotal.Observe(inv.Total.Decimal().InexactFloat64())
	return nil
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (m *MetricsExtension) OnInvoicePaid(_ context.Context, _ *invoice.Invoice) error {
	m.InvoicePaid.Inc()
	return nil
}

// OnInvoiceCancelled implements plugin.OnInvoiceCancelled.
func (m *MetricsExtension) OnInvoiceCancelled(_ context.Context, _ *invoice.Invoice, _ string) error {
	m.InvoiceCancelled.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Receipt and note hooks
// ──────────────────────────────────────────────────

// OnReceiptRecorded implements plugin.OnReceiptRecorded.
func (m *MetricsExtension) OnReceiptRecorded(_ context.Context, r *receipt.Receipt) error {
	if r.Type == receipt.TypeExpense {
		m.ExpenseReceipts.Inc()
	} else {
		m.PaymentReceipts.Inc()
	}
	m.ReceiptAmount.Observe(r.Amount.Decimal().InexactFloat64())
	return nil
}

// OnNoteCreated implements plugin.OnNoteCreated.
func (m *MetricsExtension) OnNoteCreated(_ context.Context, _ *promissory.Note) error {
	m.NoteCreated.Inc()
	return nil
}

// OnNotePaid implements plugin.OnNotePaid.
func (m *MetricsExtension) OnNotePaid(_ context.Context, _ *promissory.Note, _ *receipt.Receipt) error {
	m.NotePaid.Inc()
	return nil
}

// OnNoteCancelled implements plugin.OnNoteCancelled.
func (m *MetricsExtension) OnNoteCancelled(_ context.Context, _ *promissory.Note) error {
	m.NoteCancelled.Inc()
	return nil
}
