package daftar

import (
	"context"
	"strings"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/supplier"
	"github.com/xraph/daftar/types"
)

// ──────────────────────────────────────────────────
// Supplier registry
// ──────────────────────────────────────────────────

func validateSupplier(s *supplier.Supplier) error {
	var errs MultiError
	if strings.TrimSpace(s.Name) == "" {
		errs.Add(invalid("name", "is required"))
	}
	if !s.Type.Valid() {
		errs.Add(invalid("type", "must be individual or company, got %q", s.Type))
	}
	if s.PaymentTerms != nil && s.PaymentTerms.DaysCount < 0 {
		errs.Add(invalid("payment_terms", "days must not be negative"))
	}
	return errs.ErrorOrNil()
}

// RegisterSupplier validates and stores a new supplier.
func (d *Daftar) RegisterSupplier(ctx context.Context, s *supplier.Supplier) error {
	if s.ID.IsNil() {
		s.ID = id.NewSupplierID()
	}
	if err := validateSupplier(s); err != nil {
		return err
	}
	s.Entity = types.NewEntityAt(d.now())

	d.mu.Lock()
	err := d.store.CreateSupplier(ctx, s)
	d.mu.Unlock()
	if err != nil {
		return err
	}

	d.logger.Debug("supplier registered", "supplier_id", s.ID.String())
	d.plugins.EmitSupplierRegistered(ctx, s)
	return nil
}

// GetSupplier retrieves a supplier by ID.
func (d *Daftar) GetSupplier(ctx context.Context, supplierID id.SupplierID) (*supplier.Supplier, error) {
	return d.store.GetSupplier(ctx, supplierID)
}

// ListSuppliers lists suppliers.
func (d *Daftar) ListSuppliers(ctx context.Context, opts supplier.ListOpts) ([]*supplier.Supplier, error) {
	return d.store.ListSuppliers(ctx, opts)
}

// UpdateSupplier applies fn to a copy of the stored supplier and saves it.
func (d *Daftar) UpdateSupplier(ctx context.Context, supplierID id.SupplierID, fn func(*supplier.Supplier)) (*supplier.Supplier, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, err := d.store.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	fn(next)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.TouchAt(d.now())

	if err := validateSupplier(next); err != nil {
		return nil, err
	}
	if err := d.store.UpdateSupplier(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// DeleteSupplier removes a supplier that no receipt references.
func (d *Daftar) DeleteSupplier(ctx context.Context, supplierID id.SupplierID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.store.GetSupplier(ctx, supplierID); err != nil {
		return err
	}
	rcpts, err := d.store.ListReceipts(ctx, receipt.ListOpts{SupplierID: supplierID, Limit: 1})
	if err != nil {
		return err
	}
	if len(rcpts) > 0 {
		return ErrSupplierInUse
	}
	return d.store.DeleteSupplier(ctx, supplierID)
}
