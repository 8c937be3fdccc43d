// Package id defines TypeID-based identity types for every daftar record.
//
// Every record uses a single ID struct with a prefix naming the record kind.
// IDs are K-sortable (UUIDv7-based), globally unique and URL-safe in the
// format "prefix_suffix". Document numbers such as INV-2024-000001 are a
// separate, human facing sequence; see package sequence.
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the record kind encoded in a TypeID.
type Prefix string

// Prefix constants for all daftar record kinds.
const (
	PrefixClient   Prefix = "cli"  // Client
	PrefixSupplier Prefix = "sup"  // Supplier
	PrefixProject  Prefix = "proj" // Project
	PrefixTask     Prefix = "task" // Project task
	PrefixTemplate Prefix = "tpl"  // Project template
	PrefixInvoice  Prefix = "inv"  // Invoice
	PrefixLineItem Prefix = "li"   // Invoice line item
	PrefixReceipt  Prefix = "rcpt" // Payment or expense receipt
	PrefixNote     Prefix = "prm"  // Promissory note
)

// ID is the identifier type shared by all daftar records.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "inv_01h2xcejqtf2nbrexx3vqjhp41").
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and checks its prefix.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// ParseOptional parses s, returning Nil for the empty string. Used for
// optional references read from files and query parameters.
func ParseOptional(s string, expected Prefix) (ID, error) {
	if s == "" {
		return Nil, nil
	}
	return ParseWithPrefix(s, expected)
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Type aliases
// ──────────────────────────────────────────────────

// ClientID identifies a client (prefix: "cli").
type ClientID = ID

// SupplierID identifies a supplier (prefix: "sup").
type SupplierID = ID

// ProjectID identifies a project (prefix: "proj").
type ProjectID = ID

// TaskID identifies a project task (prefix: "task").
type TaskID = ID

// TemplateID identifies a project template (prefix: "tpl").
type TemplateID = ID

// InvoiceID identifies an invoice (prefix: "inv").
type InvoiceID = ID

// LineItemID identifies an invoice line item (prefix: "li").
type LineItemID = ID

// ReceiptID identifies a receipt (prefix: "rcpt").
type ReceiptID = ID

// NoteID identifies a promissory note (prefix: "prm").
type NoteID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

func NewClientID() ID   { return New(PrefixClient) }
func NewSupplierID() ID { return New(PrefixSupplier) }
func NewProjectID() ID  { return New(PrefixProject) }
func NewTaskID() ID     { return New(PrefixTask) }
func NewTemplateID() ID { return New(PrefixTemplate) }
func NewInvoiceID() ID  { return New(PrefixInvoice) }
func NewLineItemID() ID { return New(PrefixLineItem) }
func NewReceiptID() ID  { return New(PrefixReceipt) }
func NewNoteID() ID     { return New(PrefixNote) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseClientID parses a string and validates the "cli" prefix.
func ParseClientID(s string) (ID, error) { return ParseWithPrefix(s, PrefixClient) }

// ParseSupplierID parses a string and validates the "sup" prefix.
func ParseSupplierID(s string) (ID, error) { return ParseWithPrefix(s, PrefixSupplier) }

// ParseProjectID parses a string and validates the "proj" prefix.
func ParseProjectID(s string) (ID, error) { return ParseWithPrefix(s, PrefixProject) }

// ParseTaskID parses a string and validates the "task" prefix.
func ParseTaskID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTask) }

// ParseTemplateID parses a string and validates the "tpl" prefix.
func ParseTemplateID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTemplate) }

// ParseInvoiceID parses a string and validates the "inv" prefix.
func ParseInvoiceID(s string) (ID, error) { return ParseWithPrefix(s, PrefixInvoice) }

// ParseReceiptID parses a string and validates the "rcpt" prefix.
func ParseReceiptID(s string) (ID, error) { return ParseWithPrefix(s, PrefixReceipt) }

// ParseNoteID parses a string and validates the "prm" prefix.
func ParseNoteID(s string) (ID, error) { return ParseWithPrefix(s, PrefixNote) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
