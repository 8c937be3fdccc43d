package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/daftar/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"ClientID", id.NewClientID, "cli_"},
		{"SupplierID", id.NewSupplierID, "sup_"},
		{"ProjectID", id.NewProjectID, "proj_"},
		{"TaskID", id.NewTaskID, "task_"},
		{"TemplateID", id.NewTemplateID, "tpl_"},
		{"InvoiceID", id.NewInvoiceID, "inv_"},
		{"LineItemID", id.NewLineItemID, "li_"},
		{"ReceiptID", id.NewReceiptID, "rcpt_"},
		{"NoteID", id.NewNoteID, "prm_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := id.NewReceiptID().String()
		if seen[s] {
			t.Fatalf("duplicate id %q after %d generations", s, i)
		}
		seen[s] = true
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"ClientID", id.NewClientID, id.ParseClientID},
		{"SupplierID", id.NewSupplierID, id.ParseSupplierID},
		{"ProjectID", id.NewProjectID, id.ParseProjectID},
		{"TaskID", id.NewTaskID, id.ParseTaskID},
		{"TemplateID", id.NewTemplateID, id.ParseTemplateID},
		{"InvoiceID", id.NewInvoiceID, id.ParseInvoiceID},
		{"ReceiptID", id.NewReceiptID, id.ParseReceiptID},
		{"NoteID", id.NewNoteID, id.ParseNoteID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed != original {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseClientID rejects sup_", id.NewSupplierID().String(), id.ParseClientID},
		{"ParseInvoiceID rejects li_", id.NewLineItemID().String(), id.ParseInvoiceID},
		{"ParseReceiptID rejects prm_", id.NewNoteID().String(), id.ParseReceiptID},
		{"ParseNoteID rejects rcpt_", id.NewReceiptID().String(), id.ParseNoteID},
		{"ParseTaskID rejects proj_", id.NewProjectID().String(), id.ParseTaskID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.parseFn(tt.input); err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseOptional(t *testing.T) {
	got, err := id.ParseOptional("", id.PrefixClient)
	if err != nil {
		t.Fatalf("ParseOptional(\"\") failed: %v", err)
	}
	if !got.IsNil() {
		t.Error("expected nil ID for empty input")
	}

	c := id.NewClientID()
	got, err = id.ParseOptional(c.String(), id.PrefixClient)
	if err != nil {
		t.Fatalf("ParseOptional failed: %v", err)
	}
	if got != c {
		t.Errorf("mismatch: %q != %q", got, c)
	}

	if _, err := id.ParseOptional(c.String(), id.PrefixSupplier); err == nil {
		t.Error("expected error for wrong prefix")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewInvoiceID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}

	var nilID id.ID
	data, err = nilID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(nil) failed: %v", err)
	}
	var restored2 id.ID
	if err := restored2.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !restored2.IsNil() {
		t.Error("expected nil after round-trip of nil ID")
	}
}

func TestValueScan(t *testing.T) {
	original := id.NewNoteID()
	v, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if scanned != original {
		t.Errorf("mismatch: %q != %q", scanned, original)
	}

	v, err = id.Nil.Value()
	if err != nil || v != nil {
		t.Errorf("Nil.Value() = %v, %v; want nil, nil", v, err)
	}

	if err := scanned.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
