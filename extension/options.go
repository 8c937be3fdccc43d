package extension

import (
	daftar "github.com/xraph/daftar"
	"github.com/xraph/daftar/plugin"
	"github.com/xraph/daftar/store"
)

// Option configures the Daftar Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithDaftarOption passes a daftar.Option through to the underlying engine.
func WithDaftarOption(opt daftar.Option) Option {
	return func(e *Extension) {
		e.daftarOpts = append(e.daftarOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.daftarOpts = append(e.daftarOpts, daftar.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithSeller sets the seller printed in invoice QR codes.
func WithSeller(name, vatNumber string) Option {
	return func(e *Extension) {
		e.config.SellerName = name
		e.config.SellerVATNumber = vatNumber
	}
}

// WithDefaultVATRate sets the default VAT percentage.
func WithDefaultVATRate(percent float64) Option {
	return func(e *Extension) { e.config.DefaultVATRate = percent }
}

// WithYearlyNumbering restarts document numbers every year.
func WithYearlyNumbering() Option {
	return func(e *Extension) { e.config.YearlyNumbering = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
