package supplier_test

import (
	"testing"
	"time"

	"github.com/xraph/daftar/supplier"
)

func TestDueDate(t *testing.T) {
	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		terms *supplier.PaymentTerms
		want  time.Time
	}{
		{"no terms", nil, from},
		{"disabled", &supplier.PaymentTerms{Enabled: false, DaysCount: 30}, from},
		{"net 30", &supplier.PaymentTerms{Enabled: true, DaysCount: 30}, from.AddDate(0, 0, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &supplier.Supplier{PaymentTerms: tt.terms}
			if got := s.DueDate(from); !got.Equal(tt.want) {
				t.Errorf("DueDate: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := &supplier.Supplier{
		Category: []string{"cement"},
		BankInfo: &supplier.BankInfo{BankName: "Rajhi"},
	}
	cp := s.Clone()
	cp.Category[0] = "steel"
	cp.BankInfo.BankName = "NCB"

	if !s.InCategory("cement") || s.BankInfo.BankName != "Rajhi" {
		t.Error("clone shares nested state")
	}
}
