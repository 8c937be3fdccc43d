package supplier

import (
	"context"

	"github.com/xraph/daftar/id"
)

type Store interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, supplierID id.SupplierID) (*Supplier, error)
	ListSuppliers(ctx context.Context, opts ListOpts) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
	DeleteSupplier(ctx context.Context, supplierID id.SupplierID) error
}

type ListOpts struct {
	Type     Type
	Category string
	Limit    int
	Offset   int
}
