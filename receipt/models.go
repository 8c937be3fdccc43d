// Package receipt models money received (payment receipts) and money paid
// out (expense receipts).
package receipt

import (
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/types"
)

type Type string

const (
	TypePayment Type = "payment"
	TypeExpense Type = "expense"
)

// MethodType is the tag of the payment method union.
type MethodType string

const (
	MethodCash  MethodType = "cash"
	MethodBank  MethodType = "bank"
	MethodCheck MethodType = "check"
	MethodPOS   MethodType = "pos"
)

// MethodTypes lists every method in display order.
var MethodTypes = []MethodType{MethodCash, MethodBank, MethodCheck, MethodPOS}

var methodLabels = map[MethodType]string{
	MethodCash:  "نقدي",
	MethodBank:  "تحويل بنكي",
	MethodCheck: "شيكات",
	MethodPOS:   "شبكة",
}

// Label returns the Arabic display name of the method.
func (t MethodType) Label() string {
	if l, ok := methodLabels[t]; ok {
		return l
	}
	return string(t)
}

// Method describes how money moved. Which detail fields are required
// depends on Type; see MissingField.
type Method struct {
	Type          MethodType `json:"type"`
	BankName      string     `json:"bank_name,omitempty"`
	AccountNumber string     `json:"account_number,omitempty"`
	CheckNumber   string     `json:"check_number,omitempty"`
	POSReference  string     `json:"pos_reference,omitempty"`
}

// Cash is the cash payment method.
func Cash() Method { return Method{Type: MethodCash} }

// MissingField returns the name of the first required detail field that is
// empty for the method type, "type" for an unknown type, or "" when the
// method is complete.
func (m Method) MissingField() string {
	switch m.Type {
	case MethodCash:
		return ""
	case MethodBank:
		if m.BankName == "" {
			return "bank_name"
		}
		if m.AccountNumber == "" {
			return "account_number"
		}
		return ""
	case MethodCheck:
		if m.CheckNumber == "" {
			return "check_number"
		}
		return ""
	case MethodPOS:
		if m.POSReference == "" {
			return "pos_reference"
		}
		return ""
	default:
		return "type"
	}
}

// MethodOrCash returns m, or the cash method when m has no type.
func MethodOrCash(m Method) Method {
	if m.Type == "" {
		return Cash()
	}
	return m
}

// Receipt is an immutable money movement. Payment receipts carry a client
// (or a supplier for settlements) and optionally the invoice or promissory
// note they settle. Expense receipts carry a supplier or a free text
// beneficiary, never both.
type Receipt struct {
	types.Entity
	ID          id.ReceiptID  `json:"id"`
	Number      string        `json:"number"`
	Type        Type          `json:"type"`
	ClientID    id.ClientID   `json:"client_id"`
	SupplierID  id.SupplierID `json:"supplier_id"`
	Beneficiary string        `json:"beneficiary,omitempty"`
	Amount      types.Money   `json:"amount"`
	Date        time.Time     `json:"date"`
	Notes       string        `json:"notes,omitempty"`
	Category    string        `json:"category,omitempty"`
	Method      Method        `json:"payment_method"`
	InvoiceID   id.InvoiceID  `json:"invoice_id"`
	NoteID      id.NoteID     `json:"note_id"`
}

// IsClientPayment reports whether r is money received from a client.
func (r *Receipt) IsClientPayment() bool {
	return r.Type == TypePayment && !r.ClientID.IsNil()
}

// Input is the caller supplied part of a new receipt. Number, ID and
// timestamps are assigned by the ledger.
type Input struct {
	Type        Type
	ClientID    id.ClientID
	SupplierID  id.SupplierID
	Beneficiary string
	Amount      types.Money
	Date        time.Time
	Notes       string
	Category    string
	Method      Method
	InvoiceID   id.InvoiceID
}

// PaymentInput settles a document. A zero Amount means the full
// outstanding amount; an empty Method means cash; a zero Date means now.
type PaymentInput struct {
	Amount types.Money
	Date   time.Time
	Method Method
	Notes  string
}
