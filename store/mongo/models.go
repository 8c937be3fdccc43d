package mongo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
)

// Documents carry the fields the store filters and sorts on. The full
// record travels as JSON in data, so money, decimal rates and TypeIDs keep
// their canonical encodings.

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("daftar/mongo: encode %T: %w", v, err)
	}
	return string(b), nil
}

func decode[T any](data string) (*T, error) {
	out := new(T)
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return nil, fmt.Errorf("daftar/mongo: decode %T: %w", out, err)
	}
	return out, nil
}

// ==================== Client models ====================

type clientModel struct {
	grove.BaseModel `grove:"table:daftar_clients"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	Name      string    `grove:"name"       bson:"name"`
	Type      string    `grove:"type"       bson:"type"`
	Data      string    `grove:"data"       bson:"data"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toClientModel(c *client.Client) (*clientModel, error) {
	data, err := encode(c)
	if err != nil {
		return nil, err
	}
	return &clientModel{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		Data:      data,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func fromClientModel(m *clientModel) (*client.Client, error) { return decode[client.Client](m.Data) }

// ==================== Supplier models ====================

type supplierModel struct {
	grove.BaseModel `grove:"table:daftar_suppliers"`

	ID         string    `grove:"id,pk"      bson:"_id"`
	Name       string    `grove:"name"       bson:"name"`
	Type       string    `grove:"type"       bson:"type"`
	Categories []string  `grove:"categories" bson:"categories"`
	Data       string    `grove:"data"       bson:"data"`
	CreatedAt  time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `grove:"updated_at" bson:"updated_at"`
}

func toSupplierModel(s *supplier.Supplier) (*supplierModel, error) {
	data, err := encode(s)
	if err != nil {
		return nil, err
	}
	return &supplierModel{
		ID:         s.ID.String(),
		Name:       s.Name,
		Type:       string(s.Type),
		Categories: s.Category,
		Data:       data,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}, nil
}

func fromSupplierModel(m *supplierModel) (*supplier.Supplier, error) {
	return decode[supplier.Supplier](m.Data)
}

// ==================== Project models ====================

type projectModel struct {
	grove.BaseModel `grove:"table:daftar_projects"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	ClientID  string    `grove:"client_id"  bson:"client_id"`
	Status    string    `grove:"status"     bson:"status"`
	Data      string    `grove:"data"       bson:"data"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toProjectModel(p *project.Project) (*projectModel, error) {
	data, err := encode(p)
	if err != nil {
		return nil, err
	}
	return &projectModel{
		ID:        p.ID.String(),
		ClientID:  p.ClientID.String(),
		Status:    string(p.Status),
		Data:      data,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func fromProjectModel(m *projectModel) (*project.Project, error) {
	return decode[project.Project](m.Data)
}

type taskModel struct {
	grove.BaseModel `grove:"table:daftar_tasks"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	ProjectID string    `grove:"project_id" bson:"project_id"`
	Status    string    `grove:"status"     bson:"status"`
	Data      string    `grove:"data"       bson:"data"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toTaskModel(t *project.Task) (*taskModel, error) {
	data, err := encode(t)
	if err != nil {
		return nil, err
	}
	return &taskModel{
		ID:        t.ID.String(),
		ProjectID: t.ProjectID.String(),
		Status:    string(t.Status),
		Data:      data,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

func fromTaskModel(m *taskModel) (*project.Task, error) { return decode[project.Task](m.Data) }

type templateModel struct {
	grove.BaseModel `grove:"table:daftar_templates"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	Title     string    `grove:"title"      bson:"title"`
	Data      string    `grove:"data"       bson:"data"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toTemplateModel(t *project.Template) (*templateModel, error) {
	data, err := encode(t)
	if err != nil {
		return nil, err
	}
	return &templateModel{
		ID:        t.ID.String(),
		Title:     t.Title,
		Data:      data,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

func fromTemplateModel(m *templateModel) (*project.Template, error) {
	return decode[project.Template](m.Data)
}

// ==================== Invoice models ====================

type invoiceModel struct {
	grove.BaseModel `grove:"table:daftar_invoices"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	Number    string    `grove:"number"     bson:"number"`
	ClientID  string    `grove:"client_id"  bson:"client_id"`
	Status    string    `grove:"status"     bson:"status"`
	Date      time.Time `grove:"date"       bson:"date"`
	Total     int64     `grove:"total"      bson:"total"`
	VATTotal  int64     `grove:"vat_total"  bson:"vat_total"`
	Data      string    `grove:"data"       bson:"data"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toInvoiceModel(inv *invoice.Invoice) (*invoiceModel, error) {
	data, err := encode(inv)
	if err != nil {
		return nil, err
	}
	return &invoiceModel{
		ID:        inv.ID.String(),
		Number:    inv.Number,
		ClientID:  inv.ClientID.String(),
		Status:    string(inv.Status),
		Date:      inv.Date.UTC(),
		Total:     inv.Total.Amount,
		VATTotal:  inv.VATTotal.Amount,
		Data:      data,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}, nil
}

func fromInvoiceModel(m *invoiceModel) (*invoice.Invoice, error) {
	return decode[invoice.Invoice](m.Data)
}

// ==================== Receipt models ====================

type receiptModel struct {
	grove.BaseModel `grove:"table:daftar_receipts"`

	ID         string    `grove:"id,pk"       bson:"_id"`
	Number     string    `grove:"number"      bson:"number"`
	Type       string    `grove:"type"        bson:"type"`
	ClientID   string    `grove:"client_id"   bson:"client_id"`
	SupplierID string    `grove:"supplier_id" bson:"supplier_id"`
	InvoiceID  string    `grove:"invoice_id"  bson:"invoice_id"`
	NoteID     string    `grove:"note_id"     bson:"note_id"`
	Amount     int64     `grove:"amount"      bson:"amount"`
	Method     string    `grove:"method"      bson:"method"`
	Date       time.Time `grove:"date"        bson:"date"`
	Data       string    `grove:"data"        bson:"data"`
	CreatedAt  time.Time `grove:"created_at"  bson:"created_at"`
}

func toReceiptModel(r *receipt.Receipt) (*receiptModel, error) {
	data, err := encode(r)
	if err != nil {
		return nil, err
	}
	return &receiptModel{
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

func fromReceiptModel(m *receiptModel) (*receipt.Receipt, error) {
	return decode[receipt.Receipt](m.Data)
}

// ==================== Promissory note models ====================

type noteModel struct {
	grove.BaseModel `grove:"table:daftar_notes"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	Number    string    `grove:"number"     bson:"number"`
	ClientID  string    `grove:"client_id"  bson:"client_id"`
	Status    string    `grove:"status"     bson:"status"`
	Amount    int64     `grove:"amount"     bson:"amount"`
	DueDate   time.Time `grove:"due_date"   bson:"due_date"`
	Data      string    `grove:"data"       bson:"data"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toNoteModel(n *promissory.Note) (*noteModel, error) {
	data, err := encode(n)
	if err != nil {
		return nil, err
	}
	return &noteModel{
		ID:        n.ID.String(),
		Number:    n.Number,
		ClientID:  n.ClientID.String(),
		Status:    string(n.Status),
		Amount:    n.Amount.Amount,
		DueDate:   n.DueDate.UTC(),
		Data:      data,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}, nil
}

func fromNoteModel(m *noteModel) (*promissory.Note, error) { return decode[promissory.Note](m.Data) }

// ==================== Sequence models ====================

// sequenceModel is one counter document, keyed "SERIES/scope".
type sequenceModel struct {
	ID     string `bson:"_id"`
	Series string `bson:"series"`
	Scope  int    `bson:"scope"`
	Value  int64  `bson:"value"`
}
