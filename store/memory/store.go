// Package memory implements store.Store with mutex guarded maps. It backs
// tests and the CLI, which persists it between runs as a JSON snapshot.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/store"
	"github.com/xraph/daftar/supplier"
	"github.com/xraph/daftar/types"
)

var _ store.Store = (*Store)(nil)

type seqKey struct {
	series sequence.Series
	scope  int
}

// Store keeps every record in memory. Records are copied on the way in and
// on the way out, so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	clients   map[string]*client.Client
	suppliers map[string]*supplier.Supplier
	projects  map[string]*project.Project
	tasks     map[string]*project.Task
	templates map[string]*project.Template
	invoices  map[string]*invoice.Invoice
	receipts  map[string]*receipt.Receipt
	notes     map[string]*promissory.Note
	sequences map[seqKey]int64

	closed bool
}

// New returns an empty store.
func New() *Store {
	return &Store{
		clients:   make(map[string]*client.Client),
		suppliers: make(map[string]*supplier.Supplier),
		projects:  make(map[string]*project.Project),
		tasks:     make(map[string]*project.Task),
		templates: make(map[string]*project.Template),
		invoices:  make(map[string]*invoice.Invoice),
		receipts:  make(map[string]*receipt.Receipt),
		notes:     make(map[string]*promissory.Note),
		sequences: make(map[seqKey]int64),
	}
}

// byCreation orders records oldest first. IDs are K-sortable and break ties.
func byCreation[T any](items []T, entity func(T) (types.Entity, string)) {
	slices.SortStableFunc(items, func(a, b T) int {
		ea, ia := entity(a)
		eb, ib := entity(b)
		if c := ea.CreatedAt.Compare(eb.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(ia, ib)
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// inRange reports whether t lies in [start, end). Zero bounds are open.
func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && !t.Before(end) {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────

func (s *Store) CreateClient(_ context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[c.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	s.clients[c.ID.String()] = c.Clone()
	return nil
}

func (s *Store) GetClient(_ context.Context, clientID id.ClientID) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.clients[clientID.String()]; ok {
		return c.Clone(), nil
	}
	return nil, daftar.ErrClientNotFound
}

func (s *Store) ListClients(_ context.Context, opts client.ListOpts) ([]*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*client.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if opts.Type == "" || c.Type == opts.Type {
			result = append(result, c.Clone())
		}
	}
	byCreation(result, func(c *client.Client) (types.Entity, string) { return c.Entity, c.ID.String() })
	return page(result, opts.Limit, opts.Offset), nil
}

func (s *Store) UpdateClient(_ context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[c.ID.String()]; !exists {
		return daftar.ErrClientNotFound
	}
	s.clients[c.ID.String()] = c.Clone()
	return nil
}

func (s *Store) DeleteClient(_ context.Context, clientID id.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[clientID.String()]; !exists {
		return daftar.ErrClientNotFound
	}
	delete(s.clients, clientID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Suppliers
// ──────────────────────────────────────────────────

func (s *Store) CreateSupplier(_ context.Context, sup *supplier.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliers[sup.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	s.suppliers[sup.ID.String()] = sup.Clone()
	return nil
}

func (s *Store) GetSupplier(_ context.Context, supplierID id.SupplierID) (*supplier.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sup, ok := s.suppliers[supplierID.String()]; ok {
		return sup.Clone(), nil
	}
	return nil, daftar.ErrSupplierNotFound
}

func (s *Store) ListSuppliers(_ context.Context, opts supplier.ListOpts) ([]*supplier.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*supplier.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if opts.Type != "" && sup.Type != opts.Type {
			continue
		}
		if opts.Category != "" && !sup.InCategory(opts.Category) {
			continue
		}
		result = append(result, sup.Clone())
	}
	byCreation(result, func(sup *supplier.Supplier) (types.Entity, string) { return sup.Entity, sup.ID.String() })
	return page(result, opts.Limit, opts.Offset), nil
}

func (s *Store) UpdateSupplier(_ context.Context, sup *supplier.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliers[sup.ID.String()]; !exists {
		return daftar.ErrSupplierNotFound
	}
	s.suppliers[sup.ID.String()] = sup.Clone()
	return nil
}

func (s *Store) DeleteSupplier(_ context.Context, supplierID id.SupplierID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliers[supplierID.String()]; !exists {
		return daftar.ErrSupplierNotFound
	}
	delete(s.suppliers, supplierID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Projects, tasks and templates
// ──────────────────────────────────────────────────

func cloneProject(p *project.Project) *project.Project {
	out := *p
	return &out
}

func (s *Store) CreateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	s.projects[p.ID.String()] = cloneProject(p)
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID id.ProjectID) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.projects[projectID.String()]; ok {
		return cloneProject(p), nil
	}
	return nil, daftar.ErrProjectNotFound
}

func (s *Store) ListProjects(_ context.Context, opts project.ListOpts) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Project, 0)
	for _, p := range s.projects {
		if !opts.ClientID.IsNil() && p.ClientID != opts.ClientID {
			continue
		}
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		result = append(result, cloneProject(p))
	}
	byCreation(result, func(p *project.Project) (types.Entity, string) { return p.Entity, p.ID.String() })
	return page(result, opts.Limit, opts.Offset), nil
}

func (s *Store) UpdateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID.String()]; !exists {
		return daftar.ErrProjectNotFound
	}
	s.projects[p.ID.String()] = cloneProject(p)
	return nil
}

func (s *Store) DeleteProject(_ context.Context, projectID id.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[projectID.String()]; !exists {
		return daftar.ErrProjectNotFound
	}
	delete(s.projects, projectID.String())
	return nil
}

func (s *Store) CreateTask(_ context.Context, t *project.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	s.tasks[t.ID.String()] = t.Clone()
	return nil
}

func (s *Store) GetTask(_ context.Context, taskID id.TaskID) (*project.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tasks[taskID.String()]; ok {
		return t.Clone(), nil
	}
	return nil, daftar.ErrTaskNotFound
}

func (s *Store) ListTasks(_ context.Context, projectID id.ProjectID) ([]*project.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			result = append(result, t.Clone())
		}
	}
	byCreation(result, func(t *project.Task) (types.Entity, string) { return t.Entity, t.ID.String() })
	return result, nil
}

func (s *Store) UpdateTask(_ context.Context, t *project.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID.String()]; !exists {
		return daftar.ErrTaskNotFound
	}
	s.tasks[t.ID.String()] = t.Clone()
	return nil
}

func (s *Store) DeleteTask(_ context.Context, taskID id.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[taskID.String()]; !exists {
		return daftar.ErrTaskNotFound
	}
	delete(s.tasks, taskID.String())
	return nil
}

func (s *Store) CreateTemplate(_ context.Context, t *project.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[t.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	s.templates[t.ID.String()] = t.Clone()
	return nil
}

func (s *Store) GetTemplate(_ context.Context, templateID id.TemplateID) (*project.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.templates[templateID.String()]; ok {
		return t.Clone(), nil
	}
	return nil, daftar.ErrTemplateNotFound
}

func (s *Store) ListTemplates(_ context.Context) ([]*project.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Template, 0, len(s.templates))
	for _, t := range s.templates {
		result = append(result, t.Clone())
	}
	byCreation(result, func(t *project.Template) (types.Entity, string) { return t.Entity, t.ID.String() })
	return result, nil
}

func (s *Store) DeleteTemplate(_ context.Context, templateID id.TemplateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[templateID.String()]; !exists {
		return daftar.ErrTemplateNotFound
	}
	delete(s.templates, templateID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Invoices
// ──────────────────────────────────────────────────

func (s *Store) numberTaken(number string) bool {
	for _, inv := range s.invoices {
		if inv.Number == number {
			return true
		}
	}
	return false
}

func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; exists || s.numberTaken(inv.Number) {
		return daftar.ErrAlreadyExists
	}
	s.invoices[inv.ID.String()] = inv.Clone()
	return nil
}

func (s *Store) GetInvoice(_ context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[invID.String()]; ok {
		return inv.Clone(), nil
	}
	return nil, daftar.ErrInvoiceNotFound
}

func (s *Store) GetInvoiceByNumber(_ context.Context, number string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.Number == number {
			return inv.Clone(), nil
		}
	}
	return nil, daftar.ErrInvoiceNotFound
}

func (s *Store) ListInvoices(_ context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*invoice.Invoice, 0)
	for _, inv := range s.invoices {
		if !opts.ClientID.IsNil() && inv.ClientID != opts.ClientID {
			continue
		}
		if opts.Status != "" && inv.Status != opts.Status {
			continue
		}
		if !inRange(inv.Date, opts.Start, opts.End) {
			continue
		}
		result = append(result, inv.Clone())
	}
	byCreation(result, func(inv *invoice.Invoice) (types.Entity, string) { return inv.Entity, inv.ID.String() })
	return page(result, opts.Limit, opts.Offset), nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; !exists {
		return daftar.ErrInvoiceNotFound
	}
	s.invoices[inv.ID.String()] = inv.Clone()
	return nil
}

// ──────────────────────────────────────────────────
// Receipts
// ──────────────────────────────────────────────────

func cloneReceipt(r *receipt.Receipt) *receipt.Receipt {
	out := *r
	return &out
}

func (s *Store) CreateReceipt(_ context.Context, r *receipt.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receipts[r.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	for _, other := range s.receipts {
		if other.Number == r.Number {
			return daftar.ErrAlreadyExists
		}
	}
	s.receipts[r.ID.String()] = cloneReceipt(r)
	return nil
}

func (s *Store) GetReceipt(_ context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.receipts[receiptID.String()]; ok {
		return cloneReceipt(r), nil
	}
	return nil, daftar.ErrReceiptNotFound
}

func (s *Store) ListReceipts(_ context.Context, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*receipt.Receipt, 0)
	for _, r := range s.receipts {
		switch {
		case opts.Type != "" && r.Type != opts.Type,
			!opts.ClientID.IsNil() && r.ClientID != opts.ClientID,
			!opts.SupplierID.IsNil() && r.SupplierID != opts.SupplierID,
			!opts.InvoiceID.IsNil() && r.InvoiceID != opts.InvoiceID,
			!inRange(r.Date, opts.Start, opts.End):
			continue
		}
		result = append(result, cloneReceipt(r))
	}
	byCreation(result, func(r *receipt.Receipt) (types.Entity, string) { return r.Entity, r.ID.String() })
	return page(result, opts.Limit, opts.Offset), nil
}

// ──────────────────────────────────────────────────
// Promissory notes
// ──────────────────────────────────────────────────

func (s *Store) CreateNote(_ context.Context, n *promissory.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[n.ID.String()]; exists {
		return daftar.ErrAlreadyExists
	}
	for _, other := range s.notes {
		if other.Number == n.Number {
			return daftar.ErrAlreadyExists
		}
	}
	s.notes[n.ID.String()] = n.Clone()
	return nil
}

func (s *Store) GetNote(_ context.Context, noteID id.NoteID) (*promissory.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n, ok := s.notes[noteID.String()]; ok {
		return n.Clone(), nil
	}
	return nil, daftar.ErrNoteNotFound
}

func (s *Store) ListNotes(_ context.Context, opts promissory.ListOpts) ([]*promissory.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*promissory.Note, 0)
	for _, n := range s.notes {
		if !opts.ClientID.IsNil() && n.ClientID != opts.ClientID {
			continue
		}
		if opts.Status != "" && n.Status != opts.Status {
			continue
		}
		result = append(result, n.Clone())
	}
	byCreation(result, func(n *promissory.Note) (types.Entity, string) { return n.Entity, n.ID.String() })
	return page(result, opts.Limit, opts.Offset), nil
}

func (s *Store) UpdateNote(_ context.Context, n *promissory.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[n.ID.String()]; !exists {
		return daftar.ErrNoteNotFound
	}
	s.notes[n.ID.String()] = n.Clone()
	return nil
}

// ──────────────────────────────────────────────────
// Sequences
// ──────────────────────────────────────────────────

func (s *Store) NextSequence(_ context.Context, series sequence.Series, scope int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := seqKey{series, scope}
	s.sequences[k]++
	return s.sequences[k], nil
}

func (s *Store) SeedSequence(_ context.Context, series sequence.Series, scope int, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := seqKey{series, scope}
	if value > s.sequences[k] {
		s.sequences[k] = value
	}
	return nil
}

// ──────────────────────────────────────────────────
// Core
// ──────────────────────────────────────────────────

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return daftar.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
