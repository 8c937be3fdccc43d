// Package extension provides the Forge extension adapter for Daftar.
//
// It implements the forge.Extension interface to integrate the ledger
// into a Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.daftar" or "daftar" keys.
package extension

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	daftar "github.com/xraph/daftar"
	"github.com/xraph/daftar/store"
	"github.com/xraph/daftar/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "daftar"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Invoicing, receipts and promissory notes ledger"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Daftar as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *daftar.Daftar
	store      store.Store
	daftarOpts []daftar.Option
}

// New creates a new Daftar Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Daftar instance.
// This is nil until Register is called.
func (e *Extension) Engine() *daftar.Daftar { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.store == nil {
		e.store = memory.New()
	}

	e.engine = daftar.New(e.store, e.buildDaftarOpts()...)

	return vessel.Provide(fapp.Container(), func() (*daftar.Daftar, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("daftar: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("daftar: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildDaftarOpts constructs daftar.Option values from the resolved
// config. Pass-through options come last and win.
func (e *Extension) buildDaftarOpts() []daftar.Option {
	opts := make([]daftar.Option, 0, len(e.daftarOpts)+3)

	if e.config.SellerName != "" || e.config.SellerVATNumber != "" {
		opts = append(opts, daftar.WithSeller(e.config.SellerName, e.config.SellerVATNumber))
	}
	if e.config.DefaultVATRate > 0 {
		opts = append(opts, daftar.WithDefaultVATRate(decimal.NewFromFloat(e.config.DefaultVATRate)))
	}
	if e.config.YearlyNumbering {
		opts = append(opts, daftar.WithYearlyNumbering(true))
	}

	return append(opts, e.daftarOpts...)
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("daftar: configuration is required but not found in config files; " +
				"ensure 'extensions.daftar' or 'daftar' key exists in your config")
		}
		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("daftar: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("seller_name", e.config.SellerName),
		forge.F("default_vat_rate", e.config.DefaultVATRate),
		forge.F("yearly_numbering", e.config.YearlyNumbering),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()

	for _, key := range []string{"extensions.daftar", "daftar"} {
		if !cm.IsSet(key) {
			continue
		}
		var cfg Config
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("daftar: loaded config from file", forge.F("key", key))
			return cfg, true
		}
		e.Logger().Warn("daftar: failed to bind config",
			forge.F("key", key),
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.DefaultVATRate == 0 {
		cfg.DefaultVATRate = defaults.DefaultVATRate
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML takes precedence; programmatic values fill gaps and bool flags
// override when true.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if programmaticConfig.YearlyNumbering {
		yamlConfig.YearlyNumbering = true
	}

	if yamlConfig.SellerName == "" {
		yamlConfig.SellerName = programmaticConfig.SellerName
	}
	if yamlConfig.SellerVATNumber == "" {
		yamlConfig.SellerVATNumber = programmaticConfig.SellerVATNumber
	}
	if yamlConfig.DefaultVATRate == 0 {
		yamlConfig.DefaultVATRate = programmaticConfig.DefaultVATRate
	}

	return mergeWithDefaults(yamlConfig)
}
