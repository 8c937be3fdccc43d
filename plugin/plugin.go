// Package plugin lets extensions observe ledger activity. A plugin
// implements Plugin plus any of the hook interfaces below; the Registry
// discovers the hooks at registration time.
package plugin

import (
	"context"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts. d is the *daftar.Daftar.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, d any) error
}

// OnShutdown is called when the engine stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Registry hooks
// ──────────────────────────────────────────────────

type OnClientRegistered interface {
	Plugin
	OnClientRegistered(ctx context.Context, c *client.Client) error
}

type OnSupplierRegistered interface {
	Plugin
	OnSupplierRegistered(ctx context.Context, s *supplier.Supplier) error
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called after a draft invoice is numbered and stored.
type OnInvoiceCreated interface {
	Plugin
	OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error
}

// OnInvoiceIssued is called when a draft is activated.
type OnInvoiceIssued interface {
	Plugin
	OnInvoiceIssued(ctx context.Context, inv *invoice.Invoice) error
}

// OnInvoicePaid is called when linked receipts reach the invoice total.
type OnInvoicePaid interface {
	Plugin
	OnInvoicePaid(ctx context.Context, inv *invoice.Invoice) error
}

type OnInvoiceCancelled interface {
	Plugin
	OnInvoiceCancelled(ctx context.Context, inv *invoice.Invoice, reason string) error
}

// ──────────────────────────────────────────────────
// Receipt and promissory note hooks
// ──────────────────────────────────────────────────

// OnReceiptRecorded is called for every new payment or expense receipt,
// including those created while settling invoices and notes.
type OnReceiptRecorded interface {
	Plugin
	OnReceiptRecorded(ctx context.Context, r *receipt.Receipt) error
}

type OnNoteCreated interface {
	Plugin
	OnNoteCreated(ctx context.Context, n *promissory.Note) error
}

type OnNotePaid interface {
	Plugin
	OnNotePaid(ctx context.Context, n *promissory.Note, r *receipt.Receipt) error
}

type OnNoteCancelled interface {
	Plugin
	OnNoteCancelled(ctx context.Context, n *promissory.Note) error
}
