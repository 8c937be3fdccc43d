package daftar

import (
	"context"
	"time"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/report"
	"github.com/xraph/daftar/supplier"
)

// ──────────────────────────────────────────────────
// Reports
// ──────────────────────────────────────────────────

// ClientBalance returns what a client has been invoiced, what it paid and
// the difference. Balances are derived on every call.
func (d *Daftar) ClientBalance(ctx context.Context, clientID id.ClientID) (report.Balance, error) {
	if _, err := d.store.GetClient(ctx, clientID); err != nil {
		return report.Balance{}, err
	}
	invoices, err := d.store.ListInvoices(ctx, invoice.ListOpts{ClientID: clientID})
	if err != nil {
		return report.Balance{}, err
	}
	receipts, err := d.store.ListReceipts(ctx, receipt.ListOpts{ClientID: clientID})
	if err != nil {
		return report.Balance{}, err
	}
	return report.ClientBalance(clientID, invoices, receipts, d.currency), nil
}

// SupplierBalance returns the expenses recorded against a supplier, the
// settlements paid to it and what remains owed.
func (d *Daftar) SupplierBalance(ctx context.Context, supplierID id.SupplierID) (report.SupplierAccount, error) {
	if _, err := d.store.GetSupplier(ctx, supplierID); err != nil {
		return report.SupplierAccount{}, err
	}
	receipts, err := d.store.ListReceipts(ctx, receipt.ListOpts{SupplierID: supplierID})
	if err != nil {
		return report.SupplierAccount{}, err
	}
	return report.SupplierBalance(supplierID, receipts, d.currency), nil
}

// ClientPayments totals the payments received from a client by method.
func (d *Daftar) ClientPayments(ctx context.Context, clientID id.ClientID) (report.Payments, error) {
	if _, err := d.store.GetClient(ctx, clientID); err != nil {
		return report.Payments{}, err
	}
	receipts, err := d.store.ListReceipts(ctx, receipt.ListOpts{Type: receipt.TypePayment, ClientID: clientID})
	if err != nil {
		return report.Payments{}, err
	}
	return report.ClientPayments(clientID, receipts, d.currency), nil
}

// Revenue reports client payments between start and end inclusive. Zero
// bounds select the twelve months ending now.
func (d *Daftar) Revenue(ctx context.Context, start, end time.Time) (report.RevenueReport, error) {
	receipts, err := d.store.ListReceipts(ctx, receipt.ListOpts{Type: receipt.TypePayment})
	if err != nil {
		return report.RevenueReport{}, err
	}
	return report.Revenue(receipts, start, end, d.now(), d.currency), nil
}

// FinancialSummary builds the overview for the window r ending now.
func (d *Daftar) FinancialSummary(ctx context.Context, r report.Range) (report.FinancialSummary, error) {
	clients, invoices, receipts, err := d.loadAll(ctx)
	if err != nil {
		return report.FinancialSummary{}, err
	}
	return report.Summary(clients, invoices, receipts, r, d.now(), d.currency), nil
}

// SupplierBalances returns the balance of every supplier keyed by ID.
func (d *Daftar) SupplierBalances(ctx context.Context) (map[id.SupplierID]report.SupplierAccount, error) {
	suppliers, err := d.store.ListSuppliers(ctx, supplier.ListOpts{})
	if err != nil {
		return nil, err
	}
	receipts, err := d.store.ListReceipts(ctx, receipt.ListOpts{})
	if err != nil {
		return nil, err
	}
	out := make(map[id.SupplierID]report.SupplierAccount, len(suppliers))
	for _, s := range suppliers {
		out[s.ID] = report.SupplierBalance(s.ID, receipts, d.currency)
	}
	return out, nil
}

// ClientBalances returns the balance of every client keyed by ID.
func (d *Daftar) ClientBalances(ctx context.Context) (map[id.ClientID]report.Balance, error) {
	clients, invoices, receipts, err := d.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[id.ClientID]report.Balance, len(clients))
	for _, c := range clients {
		out[c.ID] = report.ClientBalance(c.ID, invoices, receipts, d.currency)
	}
	return out, nil
}

func (d *Daftar) loadAll(ctx context.Context) ([]*client.Client, []*invoice.Invoice, []*receipt.Receipt, error) {
	clients, err := d.store.ListClients(ctx, client.ListOpts{})
	if err != nil {
		return nil, nil, nil, err
	}
	invoices, err := d.store.ListInvoices(ctx, invoice.ListOpts{})
	if err != nil {
		return nil, nil, nil, err
	}
	receipts, err := d.store.ListReceipts(ctx, receipt.ListOpts{})
	if err != nil {
		return nil, nil, nil, err
	}
	return clients, invoices, receipts, nil
}
