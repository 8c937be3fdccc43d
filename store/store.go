// Package store defines the persistence contract of the ledger. Backends
// live in the subpackages memory, postgres, sqlite and mongo.
package store

import (
	"context"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/supplier"
)

// Store is the unified storage interface for all daftar records. Entity
// store method names are prefixed with the entity so the interfaces embed
// without conflicts.
//
// Get methods return the entity specific not-found sentinel of package
// daftar (ErrClientNotFound, ErrInvoiceNotFound, ...). Create returns
// daftar.ErrAlreadyExists for a duplicate ID or document number.
type Store interface {
	client.Store
	supplier.Store
	project.Store
	invoice.Store
	receipt.Store
	promissory.Store
	sequence.Store

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
