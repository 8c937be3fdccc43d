// Package invoice models tax invoices and their line items.
package invoice

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/types"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusIssued    Status = "issued"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// transitions lists the legal status moves. Paid and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusDraft:  {StatusIssued, StatusCancelled},
	StatusIssued: {StatusPaid, StatusCancelled},
}

// CanTransition reports whether an invoice may move from one status to another.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

// DefaultVATRate is the standard Saudi VAT rate in percent.
var DefaultVATRate = decimal.NewFromInt(15)

type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban,omitempty"`
}

type Invoice struct {
	types.Entity
	ID           id.InvoiceID `json:"id"`
	Number       string       `json:"number"`
	ClientID     id.ClientID  `json:"client_id"`
	Date         time.Time    `json:"date"`
	DueDate      time.Time    `json:"due_date"`
	Items        []Item       `json:"items"`
	Subtotal     types.Money  `json:"subtotal"`
	VATTotal     types.Money  `json:"vat_total"`
	Total        types.Money  `json:"total"`
	Status       Status       `json:"status"`
	VATNumber    string       `json:"vat_number,omitempty"`
	QRPayload    string       `json:"qr_payload"`
	QRCode       string       `json:"qr_code,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	BankAccount  *BankAccount `json:"bank_account,omitempty"`
	IssuedAt     *time.Time   `json:"issued_at,omitempty"`
	PaidAt       *time.Time   `json:"paid_at,omitempty"`
	CancelledAt  *time.Time   `json:"cancelled_at,omitempty"`
	CancelReason string       `json:"cancel_reason,omitempty"`
}

// Item is an invoice line. The three computed amounts are always derived
// by Compute and never taken from input.
type Item struct {
	ID              id.LineItemID   `json:"id"`
	ProjectID       id.ProjectID    `json:"project_id"`
	Description     string          `json:"description"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       types.Money     `json:"unit_price"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	TotalWithoutVAT types.Money     `json:"total_without_vat"`
	VATAmount       types.Money     `json:"vat_amount"`
	TotalWithVAT    types.Money     `json:"total_with_vat"`
}

// Compute fills the derived amounts: quantity times unit price, VAT at
// VATRate percent rounded to the minor unit, and their sum.
func (it *Item) Compute() {
	it.TotalWithoutVAT = it.UnitPrice.Multiply(it.Quantity)
	it.VATAmount = it.TotalWithoutVAT.MulRate(it.VATRate)
	it.TotalWithVAT = it.TotalWithoutVAT.Add(it.VATAmount)
}

// Totals sums computed items into subtotal, VAT total and grand total.
func Totals(items []Item, currency string) (subtotal, vatTotal, total types.Money) {
	subtotal = types.Zero(currency)
	vatTotal = types.Zero(currency)
	total = types.Zero(currency)
	for _, it := range items {
		subtotal = subtotal.Add(it.TotalWithoutVAT)
		vatTotal = vatTotal.Add(it.VATAmount)
		total = total.Add(it.TotalWithVAT)
	}
	return subtotal, vatTotal, total
}

// Recompute recomputes every item and the invoice totals.
func (inv *Invoice) Recompute(currency string) {
	for i := range inv.Items {
		inv.Items[i].Compute()
	}
	inv.Subtotal, inv.VATTotal, inv.Total = Totals(inv.Items, currency)
}

// Clone returns a deep copy of inv.
func (inv *Invoice) Clone() *Invoice {
	out := *inv
	out.Items = slices.Clone(inv.Items)
	if inv.BankAccount != nil {
		b := *inv.BankAccount
		out.BankAccount = &b
	}
	out.IssuedAt = cloneTime(inv.IssuedAt)
	out.PaidAt = cloneTime(inv.PaidAt)
	out.CancelledAt = cloneTime(inv.CancelledAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// ItemInput is a caller supplied invoice line. An invalid VATRate means
// the ledger default rate.
type ItemInput struct {
	ProjectID   id.ProjectID
	Description string
	Quantity    int64
	UnitPrice   types.Money
	VATRate     decimal.NullDecimal
}

// Input is the caller supplied part of a new invoice. A zero Date means
// today; an empty VATNumber defaults to the client's facility VAT number.
type Input struct {
	ClientID    id.ClientID
	Date        time.Time
	DueDate     time.Time
	Items       []ItemInput
	Notes       string
	BankAccount *BankAccount
	VATNumber   string
}
