package extension

// Config holds the Daftar extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.daftar" or "daftar" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// SellerName is printed in invoice QR codes.
	SellerName string `json:"seller_name" mapstructure:"seller_name" yaml:"seller_name"`

	// SellerVATNumber is the seller's 15 digit VAT registration number.
	SellerVATNumber string `json:"seller_vat_number" mapstructure:"seller_vat_number" yaml:"seller_vat_number"`

	// DefaultVATRate is the percentage applied to items that carry no rate
	// of their own (default: 15).
	DefaultVATRate float64 `json:"default_vat_rate" mapstructure:"default_vat_rate" yaml:"default_vat_rate"`

	// YearlyNumbering restarts document numbers every calendar year.
	YearlyNumbering bool `json:"yearly_numbering" mapstructure:"yearly_numbering" yaml:"yearly_numbering"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultVATRate: 15,
	}
}
