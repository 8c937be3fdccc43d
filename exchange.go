package daftar

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/xraph/daftar/exchange"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/report"
	"github.com/xraph/daftar/supplier"
)

// ──────────────────────────────────────────────────
// Spreadsheet exchange
// ──────────────────────────────────────────────────

// ImportResult counts what ImportWorkbook stored.
type ImportResult struct {
	Clients   int
	Suppliers int
	// Skipped counts nameless rows and rows whose ID is already stored.
	Skipped int
	// Errors holds one entry per row that failed validation.
	Errors MultiError
}

// ExportWorkbook writes every client, supplier, invoice, receipt and
// promissory note to w as xlsx, followed by the yearly summary as of now.
func (d *Daftar) ExportWorkbook(ctx context.Context, w io.Writer, now time.Time) error {
	clients, invoices, receipts, err := d.loadAll(ctx)
	if err != nil {
		return err
	}
	suppliers, err := d.store.ListSuppliers(ctx, supplier.ListOpts{})
	if err != nil {
		return err
	}
	notes, err := d.store.ListNotes(ctx, promissory.ListOpts{})
	if err != nil {
		return err
	}

	summary := report.Summary(clients, invoices, receipts, report.RangeYear, d.timeOr(now), d.currency)
	err = exchange.Export(w, exchange.Workbook{
		Clients:   clients,
		Suppliers: suppliers,
		Invoices:  invoices,
		Receipts:  receipts,
		Notes:     notes,
		Summary:   &summary,
	})
	if err != nil {
		return err
	}

	d.logger.Info("workbook exported",
		"clients", len(clients),
		"invoices", len(invoices),
		"receipts", len(receipts),
	)
	return nil
}

// ImportWorkbook registers the clients and suppliers found in an xlsx
// workbook. Rows that fail validation are reported in the result and do
// not stop the import.
func (d *Daftar) ImportWorkbook(ctx context.Context, r io.Reader) (*ImportResult, error) {
	wb, err := exchange.Import(r)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{Skipped: wb.Skipped}
	for _, c := range wb.Clients {
		err := d.RegisterClient(ctx, c)
		switch {
		case err == nil:
			res.Clients++
		case errors.Is(err, ErrAlreadyExists):
			res.Skipped++
		case IsValidation(err):
			res.Errors.Add(err)
		default:
			return res, err
		}
	}
	for _, s := range wb.Suppliers {
		err := d.RegisterSupplier(ctx, s)
		switch {
		case err == nil:
			res.Suppliers++
		case errors.Is(err, ErrAlreadyExists):
			res.Skipped++
		case IsValidation(err):
			res.Errors.Add(err)
		default:
			return res, err
		}
	}

	d.logger.Info("workbook imported",
		"clients", res.Clients,
		"suppliers", res.Suppliers,
		"skipped", res.Skipped,
	)
	return res, nil
}
