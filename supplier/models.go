// Package supplier models the vendors the office pays.
//
// A supplier's balance is never stored. It is derived from expense and
// payment receipts; see package report.
package supplier

import (
	"slices"
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/types"
)

type Type string

const (
	TypeIndividual Type = "individual"
	TypeCompany    Type = "company"
)

// Valid reports whether t is a known supplier type.
func (t Type) Valid() bool { return t == TypeIndividual || t == TypeCompany }

type BankInfo struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban,omitempty"`
}

type ContactPerson struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Position string `json:"position,omitempty"`
}

// PaymentTerms are net-days terms agreed with the supplier.
type PaymentTerms struct {
	Enabled   bool `json:"enabled"`
	DaysCount int  `json:"days_count"`
}

type Supplier struct {
	types.Entity
	ID                 id.SupplierID  `json:"id"`
	Name               string         `json:"name"`
	Email              string         `json:"email,omitempty"`
	Phone              string         `json:"phone,omitempty"`
	Address            string         `json:"address,omitempty"`
	Type               Type           `json:"type"`
	CommercialRegister string         `json:"commercial_register,omitempty"`
	VATNumber          string         `json:"vat_number,omitempty"`
	BankInfo           *BankInfo      `json:"bank_info,omitempty"`
	ContactPerson      *ContactPerson `json:"contact_person,omitempty"`
	Category           []string       `json:"category,omitempty"`
	PaymentTerms       *PaymentTerms  `json:"payment_terms,omitempty"`
	Notes              string         `json:"notes,omitempty"`
}

// DueDate applies the supplier's payment terms to a bill dated from.
// Without enabled terms the bill is due immediately.
func (s *Supplier) DueDate(from time.Time) time.Time {
	if s.PaymentTerms == nil || !s.PaymentTerms.Enabled {
		return from
	}
	return from.AddDate(0, 0, s.PaymentTerms.DaysCount)
}

// InCategory reports whether the supplier is tagged with category.
func (s *Supplier) InCategory(category string) bool {
	return slices.Contains(s.Category, category)
}

// Clone returns a deep copy of s.
func (s *Supplier) Clone() *Supplier {
	out := *s
	out.Category = slices.Clone(s.Category)
	if s.BankInfo != nil {
		b := *s.BankInfo
		out.BankInfo = &b
	}
	if s.ContactPerson != nil {
		c := *s.ContactPerson
		out.ContactPerson = &c
	}
	if s.PaymentTerms != nil {
		p := *s.PaymentTerms
		out.PaymentTerms = &p
	}
	return &out
}
