package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 5 * time.Second

// Registry manages registered plugins. Hook implementations are cached per
// interface at registration so emission never type-asserts.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	onInit               []OnInit
	onShutdown           []OnShutdown
	onClientRegistered   []OnClientRegistered
	onSupplierRegistered []OnSupplierRegistered
	onInvoiceCreated     []OnInvoiceCreated
	onInvoiceIssued      []OnInvoiceIssued
	onInvoicePaid        []OnInvoicePaid
	onInvoiceCancelled   []OnInvoiceCancelled
	onReceiptRecorded    []OnReceiptRecorded
	onNoteCreated        []OnNoteCreated
	onNotePaid           []OnNotePaid
	onNoteCancelled      []OnNoteCancelled
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-hook timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnClientRegistered); ok {
		r.onClientRegistered = append(r.onClientRegistered, v)
	}
	if v, ok := p.(OnSupplierRegistered); ok {
		r.onSupplierRegistered = append(r.onSupplierRegistered, v)
	}
	if v, ok := p.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := p.(OnInvoiceIssued); ok {
		r.onInvoiceIssued = append(r.onInvoiceIssued, v)
	}
	if v, ok := p.(OnInvoicePaid); ok {
		r.onInvoicePaid = append(r.onInvoicePaid, v)
	}
	if v, ok := p.(OnInvoiceCancelled); ok {
		r.onInvoiceCancelled = append(r.onInvoiceCancelled, v)
	}
	if v, ok := p.(OnReceiptRecorded); ok {
		r.onReceiptRecorded = append(r.onReceiptRecorded, v)
	}
	if v, ok := p.(OnNoteCreated); ok {
		r.onNoteCreated = append(r.onNoteCreated, v)
	}
	if v, ok := p.(OnNotePaid); ok {
		r.onNotePaid = append(r.onNotePaid, v)
	}
	if v, ok := p.(OnNoteCancelled); ok {
		r.onNoteCancelled = append(r.onNoteCancelled, v)
	}

	r.logger.Debug("plugin registered", "plugin", p.Name())
	return nil
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission
// ──────────────────────────────────────────────────

// emit calls fn for every hook in a snapshot of list. Failures are logged
// and never reach the caller.
func emit[T Plugin](ctx context.Context, r *Registry, hook string, list *[]T, fn func(T) error) {
	r.mu.RLock()
	hooks := make([]T, len(*list))
	copy(hooks, *list)
	r.mu.RUnlock()

	for _, p := range hooks {
		if err := r.callWithTimeout(ctx, p.Name(), func() error { return fn(p) }); err != nil {
			r.logger.Warn("plugin "+hook+" failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, d any) {
	emit(ctx, r, "OnInit", &r.onInit, func(p OnInit) error { return p.OnInit(ctx, d) })
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	emit(ctx, r, "OnShutdown", &r.onShutdown, func(p OnShutdown) error { return p.OnShutdown(ctx) })
}

func (r *Registry) EmitClientRegistered(ctx context.Context, c *client.Client) {
	emit(ctx, r, "OnClientRegistered", &r.onClientRegistered, func(p OnClientRegistered) error {
		return p.OnClientRegistered(ctx, c)
	})
}

func (r *Registry) EmitSupplierRegistered(ctx context.Context, s *supplier.Supplier) {
	emit(ctx, r, "OnSupplierRegistered", &r.onSupplierRegistered, func(p OnSupplierRegistered) error {
		return p.OnSupplierRegistered(ctx, s)
	})
}

func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv *invoice.Invoice) {
	emit(ctx, r, "OnInvoiceCreated", &r.onInvoiceCreated, func(p OnInvoiceCreated) error {
		return p.OnInvoiceCreated(ctx, inv)
	})
}

func (r *Registry) EmitInvoiceIssued(ctx context.Context, inv *invoice.Invoice) {
	emit(ctx, r, "OnInvoiceIssued", &r.onInvoiceIssued, func(p OnInvoiceIssued) error {
		return p.OnInvoiceIssued(ctx, inv)
	})
}

func (r *Registry) EmitInvoicePaid(ctx context.Context, inv *invoice.Invoice) {
	emit(ctx, r, "OnInvoicePaid", &r.onInvoicePaid, func(p OnInvoicePaid) error {
		return p.OnInvoicePaid(ctx, inv)
	})
}

func (r *Registry) EmitInvoiceCancelled(ctx context.Context, inv *invoice.Invoice, reason string) {
	emit(ctx, r, "OnInvoiceCancelled", &r.onInvoiceCancelled, func(p OnInvoiceCancelled) error {
		return p.OnInvoiceCancelled(ctx, inv, reason)
	})
}

func (r *Registry) EmitReceiptRecorded(ctx context.Context, rc *receipt.Receipt) {
	emit(ctx, r, "OnReceiptRecorded", &r.onReceiptRecorded, func(p OnReceiptRecorded) error {
		return p.OnReceiptRecorded(ctx, rc)
	})
}

func (r *Registry) EmitNoteCreated(ctx context.Context, n *promissory.Note) {
	emit(ctx, r, "OnNoteCreated", &r.onNoteCreated, func(p OnNoteCreated) error {
		return p.OnNoteCreated(ctx, n)
	})
}

func (r *Registry) EmitNotePaid(ctx context.Context, n *promissory.Note, rc *receipt.Receipt) {
	emit(ctx, r, "OnNotePaid", &r.onNotePaid, func(p OnNotePaid) error {
		return p.OnNotePaid(ctx, n, rc)
	})
}

func (r *Registry) EmitNoteCancelled(ctx context.Context, n *promissory.Note) {
	emit(ctx, r, "OnNoteCancelled", &r.onNoteCancelled, func(p OnNoteCancelled) error {
		return p.OnNoteCancelled(ctx, n)
	})
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.timeout):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
