package daftar

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/plugin"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/store"
	"github.com/xraph/daftar/types"
	"github.com/xraph/daftar/zatca"
)

// Defaults used when the seller is not configured.
const (
	DefaultSellerName = "اسم الشركة"
	DefaultVATNumber  = "000000000000000"
)

// Daftar is the ledger engine. Every mutation of invoices, receipts,
// promissory notes and the registries goes through its methods, which
// serialize on a single mutex so status checks and the follow-up writes
// they guard never interleave.
type Daftar struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	seq     *sequence.Sequencer

	mu sync.Mutex

	// Configuration
	now        func() time.Time
	sellerName string
	sellerVAT  string
	vatRate    decimal.Decimal
	currency   string
	yearly     bool
	qrSize     int
}

// New creates a new Daftar instance.
func New(s store.Store, opts ...Option) *Daftar {
	d := &Daftar{
		store:      s,
		plugins:    plugin.NewRegistry(),
		logger:     slog.Default(),
		now:        time.Now,
		sellerName: DefaultSellerName,
		vatRate:    invoice.DefaultVATRate,
		currency:   types.DefaultCurrency,
		qrSize:     zatca.DefaultSize,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seq = sequence.New(s, sequence.WithYearlyReset(d.yearly))
	return d
}

// Option configures a Daftar instance.
type Option func(*Daftar)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Daftar) {
		d.logger = logger
		d.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(d *Daftar) {
		_ = d.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithSeller sets the seller name and VAT registration number printed in
// invoice QR codes.
func WithSeller(name, vatNumber string) Option {
	return func(d *Daftar) {
		if name != "" {
			d.sellerName = name
		}
		d.sellerVAT = vatNumber
	}
}

// WithDefaultVATRate sets the rate, in percent, applied to invoice items
// that do not carry their own.
func WithDefaultVATRate(percent decimal.Decimal) Option {
	return func(d *Daftar) {
		d.vatRate = percent
	}
}

// WithYearlyNumbering restarts document numbers at 000001 every year.
func WithYearlyNumbering(enabled bool) Option {
	return func(d *Daftar) {
		d.yearly = enabled
	}
}

// WithQRSize sets the edge of rendered QR images in pixels. A size of zero
// or less stores only the Base64 TLV payload and skips image rendering.
func WithQRSize(px int) Option {
	return func(d *Daftar) {
		d.qrSize = px
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Daftar) {
		if now != nil {
			d.now = now
		}
	}
}

// Store returns the underlying store.
func (d *Daftar) Store() store.Store { return d.store }

// Plugins returns the plugin registry.
func (d *Daftar) Plugins() *plugin.Registry { return d.plugins }

// Sequencer returns the document number sequencer.
func (d *Daftar) Sequencer() *sequence.Sequencer { return d.seq }

// Start migrates the store and initializes plugins.
func (d *Daftar) Start(ctx context.Context) error {
	if err := d.store.Migrate(ctx); err != nil {
		return err
	}

	d.plugins.EmitInit(ctx, d)

	d.logger.Info("daftar started",
		"seller", d.sellerName,
		"vat_rate", d.vatRate.String(),
		"yearly_numbering", d.yearly,
		"plugins", d.plugins.Count(),
	)

	return nil
}

// Stop shuts down plugins and closes the store.
func (d *Daftar) Stop() error {
	ctx := context.Background()
	d.plugins.EmitShutdown(ctx)

	d.logger.Info("daftar stopped")
	return d.store.Close()
}

func (d *Daftar) money(amount types.Money) types.Money {
	if amount.Currency == "" {
		amount.Currency = d.currency
	}
	return amount
}

func (d *Daftar) timeOr(t time.Time) time.Time {
	if t.IsZero() {
		return d.now().UTC()
	}
	return t
}
