// Package sqlmodel holds the grove row models shared by the postgres and
// sqlite stores.
//
// Each row keeps the columns the stores filter and sort on, plus the full
// record as JSON in the data column. Decoding reads only data; the other
// columns are indexes over it.
package sqlmodel

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
)

// Table names.
const (
	TableClients   = "daftar_clients"
	TableSuppliers = "daftar_suppliers"
	TableProjects  = "daftar_projects"
	TableTasks     = "daftar_tasks"
	TableTemplates = "daftar_templates"
	TableInvoices  = "daftar_invoices"
	TableReceipts  = "daftar_receipts"
	TableNotes     = "daftar_notes"
	TableSequences = "daftar_sequences"
)

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("sqlmodel: encode %T: %w", v, err)
	}
	return string(b), nil
}

func decode[T any](data string) (*T, error) {
	out := new(T)
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return nil, fmt.Errorf("sqlmodel: decode %T: %w", out, err)
	}
	return out, nil
}

// ==================== Clients ====================

type Client struct {
	grove.BaseModel `grove:"table:daftar_clients"`

	ID        string    `grove:"id,pk"`
	Name      string    `grove:"name"`
	Type      string    `grove:"type"`
	Data      string    `grove:"data"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func FromClient(c *client.Client) (*Client, error) {
	data, err := encode(c)
	if err != nil {
		return nil, err
	}
	return &Client{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		Data:      data,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (m *Client) Decode() (*client.Client, error) { return decode[client.Client](m.Data) }

// ==================== Suppliers ====================

type Supplier struct {
	grove.BaseModel `grove:"table:daftar_suppliers"`

	ID         string    `grove:"id,pk"`
	Name       string    `grove:"name"`
	Type       string    `grove:"type"`
	Categories string    `grove:"categories"`
	Data       string    `grove:"data"`
	CreatedAt  time.Time `grove:"created_at"`
	UpdatedAt  time.Time `grove:"updated_at"`
}

// CategoryPattern is the LIKE pattern matching a supplier row tagged with
// category.
func CategoryPattern(category string) string {
	return "%|" + category + "|%"
}

func FromSupplier(s *supplier.Supplier) (*Supplier, error) {
	data, err := encode(s)
	if err != nil {
		return nil, err
	}
	var categories string
	if len(s.Category) > 0 {
		categories = "|" + strings.Join(s.Category, "|") + "|"
	}
	return &Supplier{
		ID:         s.ID.String(),
		Name:       s.Name,
		Type:       string(s.Type),
		Categories: categories,
		Data:       data,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}, nil
}

func (m *Supplier) Decode() (*supplier.Supplier, error) { return decode[supplier.Supplier](m.Data) }

// ==================== Projects ====================

type Project struct {
	grove.BaseModel `grove:"table:daftar_projects"`

	ID        string    `grove:"id,pk"`
	ClientID  string    `grove:"client_id"`
	Status    string    `grove:"status"`
	Data      string    `grove:"data"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func FromProject(p *project.Project) (*Project, error) {
	data, err := encode(p)
	if err != nil {
		return nil, err
	}
	return &Project{
		ID:        p.ID.String(),
		ClientID:  p.ClientID.String(),
		Status:    string(p.Status),
		Data:      data,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (m *Project) Decode() (*project.Project, error) { return decode[project.Project](m.Data) }

type Task struct {
	grove.BaseModel `grove:"table:daftar_tasks"`

	ID        string    `grove:"id,pk"`
	ProjectID string    `grove:"project_id"`
	Status    string    `grove:"status"`
	Data      string    `grove:"data"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func FromTask(t *project.Task) (*Task, error) {
	data, err := encode(t)
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:        t.ID.String(),
		ProjectID: t.ProjectID.String(),
		Status:    string(t.Status),
		Data:      data,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

func (m *Task) Decode() (*project.Task, error) { return decode[project.Task](m.Data) }

type Template struct {
	grove.BaseModel `grove:"table:daftar_templates"`

	ID        string    `grove:"id,pk"`
	Title     string    `grove:"title"`
	Data      string    `grove:"data"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func FromTemplate(t *project.Template) (*Template, error) {
	data, err := encode(t)
	if err != nil {
		return nil, err
	}
	return &Template{
		ID:        t.ID.String(),
		Title:     t.Title,
		Data:      data,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

func (m *Template) Decode() (*project.Template, error) { return decode[project.Template](m.Data) }

// ==================== Invoices ====================

type Invoice struct {
	grove.BaseModel `grove:"table:daftar_invoices"`

	ID        string    `grove:"id,pk"`
	Number    string    `grove:"number"`
	ClientID  string    `grove:"client_id"`
	Status    string    `grove:"status"`
	Date      time.Time `grove:"date"`
	Total     int64     `grove:"total"`
	Data      string    `grove:"data"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func FromInvoice(inv *invoice.Invoice) (*Invoice, error) {
	data, err := encode(inv)
	if err != nil {
		return nil, err
	}
	return &Invoice{
		ID:        inv.ID.String(),
		Number:    inv.Number,
		ClientID:  inv.ClientID.String(),
		Status:    string(inv.Status),
		Date:      inv.Date.UTC(),
		Total:     inv.Total.Amount,
		Data:      data,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}, nil
}

func (m *Invoice) Decode() (*invoice.Invoice, error) { return decode[invoice.Invoice](m.Data) }

// ==================== Receipts ====================

type Receipt struct {
	grove.BaseModel `grove:"table:daftar_receipts"`

	ID         string    `grove:"id,pk"`
	Number     string    `grove:"number"`
	Type       string    `grove:"type"`
	ClientID   string    `grove:"client_id"`
	SupplierID string    `grove:"supplier_id"`
	InvoiceID  string    `grove:"invoice_id"`
	NoteID     string    `grove:"note_id"`
	Amount     int64     `grove:"amount"`
	Method     string    `grove:"method"`
	Date       time.Time `grove:"date"`
	Data       string    `grove:"data"`
	CreatedAt  time.Time `grove:"created_at"`
}

func FromReceipt(r *receipt.Receipt) (*Receipt, error) {
	data, err := encode(r)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		ID:         r.ID.String(),
		Number:     r.Number,
		Type:       string(r.Type),
		ClientID:   r.ClientID.String(),
		SupplierID: r.SupplierID.String(),
		InvoiceID:  r.InvoiceID.String(),
		NoteID:     r.NoteID.String(),
		Amount:     r.Amount.Amount,
		Method:     string(receipt.MethodOrCash(r.Method).Type),
		Date:       r.Date.UTC(),
		Data:       data,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (m *Receipt) Decode() (*receipt.Receipt, error) { return decode[receipt.Receipt](m.Data) }

// ==================== Promissory notes ====================

type Note struct {
	grove.BaseModel `grove:"table:daftar_notes"`

	ID        string    `grove:"id,pk"`
	Number    string    `grove:"number"`
	ClientID  string    `grove:"client_id"`
	Status    string    `grove:"status"`
	DueDate   time.Time `grove:"due_date"`
	Data      string    `grove:"data"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func FromNote(n *promissory.Note) (*Note, error) {
	data, err := encode(n)
	if err != nil {
		return nil, err
	}
	return &Note{
		ID:        n.ID.String(),
		Number:    n.Number,
		ClientID:  n.ClientID.String(),
		Status:    string(n.Status),
		DueDate:   n.DueDate.UTC(),
		Data:      data,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}, nil
}

func (m *Note) Decode() (*promissory.Note, error) { return decode[promissory.Note](m.Data) }

// ==================== Helpers ====================

// IsUniqueViolation reports whether err is a unique constraint failure as
// reported by PostgreSQL or SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || // postgres, SQLSTATE 23505
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
