package extension

import "testing"

func TestMergeConfigurations(t *testing.T) {
	tests := []struct {
		name        string
		yaml, prog  Config
		wantSeller  string
		wantRate    float64
		wantMigrate bool
		wantYearly  bool
	}{
		{
			name:     "defaults fill zero rate",
			wantRate: 15,
		},
		{
			name:       "yaml wins over programmatic",
			yaml:       Config{SellerName: "مكتب", DefaultVATRate: 5},
			prog:       Config{SellerName: "other", DefaultVATRate: 10},
			wantSeller: "مكتب",
			wantRate:   5,
		},
		{
			name:        "programmatic fills gaps and flags",
			prog:        Config{SellerName: "مكتب", DisableMigrate: true, YearlyNumbering: true},
			wantSeller:  "مكتب",
			wantRate:    15,
			wantMigrate: true,
			wantYearly:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeConfigurations(tt.yaml, tt.prog)
			if got.SellerName != tt.wantSeller {
				t.Errorf("SellerName = %q, want %q", got.SellerName, tt.wantSeller)
			}
			if got.DefaultVATRate != tt.wantRate {
				t.Errorf("DefaultVATRate = %v, want %v", got.DefaultVATRate, tt.wantRate)
			}
			if got.DisableMigrate != tt.wantMigrate {
				t.Errorf("DisableMigrate = %v, want %v", got.DisableMigrate, tt.wantMigrate)
			}
			if got.YearlyNumbering != tt.wantYearly {
				t.Errorf("YearlyNumbering = %v, want %v", got.YearlyNumbering, tt.wantYearly)
			}
		})
	}
}

func TestBuildDaftarOpts(t *testing.T) {
	e := New(WithSeller("مكتب", "300000000000003"), WithYearlyNumbering())
	e.config = mergeWithDefaults(e.config)
	if n := len(e.buildDaftarOpts()); n != 3 {
		t.Errorf("options = %d, want 3", n)
	}
}
