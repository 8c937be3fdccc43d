package daftar

import (
	"context"
	"fmt"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/types"
	"github.com/xraph/daftar/zatca"
)

// ──────────────────────────────────────────────────
// Invoices
// ──────────────────────────────────────────────────

func (d *Daftar) buildItems(in []invoice.ItemInput) ([]invoice.Item, error) {
	if len(in) == 0 {
		return nil, invalid("items", "at least one item is required")
	}

	var errs MultiError
	items := make([]invoice.Item, 0, len(in))
	for i, it := range in {
		field := fmt.Sprintf("items[%d]", i)
		rate := d.vatRate
		if it.VATRate.Valid {
			rate = it.VATRate.Decimal
		}
		price := d.money(it.UnitPrice)

		switch {
		case it.Quantity <= 0:
			errs.Add(invalid(field+".quantity", "must be positive"))
		case price.IsNegative():
			errs.Add(invalid(field+".unit_price", "must not be negative"))
		case price.Currency != d.currency:
			errs.Add(invalid(field+".unit_price", "currency %q, ledger uses %q", price.Currency, d.currency))
		case rate.IsNegative():
			errs.Add(invalid(field+".vat_rate", "must not be negative"))
		}

		item := invoice.Item{
			ID:          id.NewLineItemID(),
			ProjectID:   it.ProjectID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			VATRate:     rate,
		}
		item.Compute()
		items = append(items, item)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	// An invoice that totals zero could never be settled by a receipt.
	if _, _, total := invoice.Totals(items, d.currency); !total.IsPositive() {
		return nil, invalid("items", "invoice total must be positive")
	}
	return items, nil
}

// stampQR regenerates the TLV payload and, when enabled, the QR image.
// The seller VAT number falls back to the invoice VAT number and then to
// DefaultVATNumber when the seller is not configured.
func (d *Daftar) stampQR(inv *invoice.Invoice) error {
	vat := d.sellerVAT
	if vat == "" {
		vat = inv.VATNumber
	}
	if vat == "" {
		vat = DefaultVATNumber
	}

	payload, err := zatca.Encode(zatca.Payload{
		SellerName:   d.sellerName,
		VATNumber:    vat,
		Timestamp:    d.now(),
		InvoiceTotal: inv.Total,
		VATAmount:    inv.VATTotal,
	})
	if err != nil {
		return fmt.Errorf("daftar: invoice qr: %w", err)
	}
	inv.QRPayload = payload
	inv.QRCode = ""

	if d.qrSize > 0 {
		uri, err := zatca.DataURI(payload, d.qrSize)
		if err != nil {
			return err
		}
		inv.QRCode = uri
	}
	return nil
}

// CreateInvoice validates in, computes the totals, numbers the invoice and
// stores it as a draft.
func (d *Daftar) CreateInvoice(ctx context.Context, in invoice.Input) (*invoice.Invoice, error) {
	if in.ClientID.IsNil() {
		return nil, invalid("client_id", "is required")
	}
	if in.DueDate.IsZero() {
		return nil, invalid("due_date", "is required")
	}
	items, err := d.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	c, err := d.store.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	inv := &invoice.Invoice{
		Entity:      types.NewEntityAt(d.now()),
		ID:          id.NewInvoiceID(),
		ClientID:    c.ID,
		Date:        d.timeOr(in.Date),
		DueDate:     in.DueDate,
		Items:       items,
		Status:      invoice.StatusDraft,
		VATNumber:   in.VATNumber,
		Notes:       in.Notes,
		BankAccount: in.BankAccount,
	}
	if inv.VATNumber == "" {
		inv.VATNumber = c.VATNumber()
	}
	inv.Subtotal, inv.VATTotal, inv.Total = invoice.Totals(items, d.currency)

	if err := d.stampQR(inv); err != nil {
		return nil, err
	}

	number, err := d.seq.Next(ctx, sequence.SeriesInvoice, d.now())
	if err != nil {
		return nil, err
	}
	inv.Number = number

	if err := d.store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	d.logger.Debug("invoice created",
		"invoice_id", inv.ID.String(),
		"number", inv.Number,
		"total", inv.Total.String(),
	)
	d.plugins.EmitInvoiceCreated(ctx, inv)
	return inv, nil
}

// UpdateDraftInvoice replaces the editable fields of a draft invoice with
// in and recomputes its totals and QR payload. The client and number are
// kept. Invoices past draft return ErrInvoiceLocked.
func (d *Daftar) UpdateDraftInvoice(ctx context.Context, invoiceID id.InvoiceID, in invoice.Input) (*invoice.Invoice, error) {
	if in.DueDate.IsZero() {
		return nil, invalid("due_date", "is required")
	}
	items, err := d.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	inv, err := d.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != invoice.StatusDraft {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvoiceLocked, inv.Number, inv.Status)
	}

	inv.Items = items
	inv.DueDate = in.DueDate
	if !in.Date.IsZero() {
		inv.Date = in.Date
	}
	inv.Notes = in.Notes
	inv.BankAccount = in.BankAccount
	if in.VATNumber != "" {
		inv.VATNumber = in.VATNumber
	}
	inv.Subtotal, inv.VATTotal, inv.Total = invoice.Totals(items, d.currency)
	if err := d.stampQR(inv); err != nil {
		return nil, err
	}
	inv.TouchAt(d.now())

	if err := d.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (d *Daftar) transitionInvoice(inv *invoice.Invoice, to invoice.Status) error {
	if !invoice.CanTransition(inv.Status, to) {
		return &TransitionError{Entity: "invoice", ID: inv.Number, From: string(inv.Status), To: string(to)}
	}
	now := d.now().UTC()
	inv.Status = to
	inv.TouchAt(now)
	switch to {
	case invoice.StatusIssued:
		inv.IssuedAt = &now
	case invoice.StatusPaid:
		inv.PaidAt = &now
	case invoice.StatusCancelled:
		inv.CancelledAt = &now
	}
	return nil
}

// ActivateInvoice issues a draft invoice. Its items are frozen from then on.
func (d *Daftar) ActivateInvoice(ctx context.Context, invoiceID id.InvoiceID) (*invoice.Invoice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	inv, err := d.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := d.transitionInvoice(inv, invoice.StatusIssued); err != nil {
		return nil, err
	}
	if err := d.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	d.logger.Info("invoice issued", "number", inv.Number, "total", inv.Total.String())
	d.plugins.EmitInvoiceIssued(ctx, inv)
	return inv, nil
}

// CancelInvoice cancels a draft or issued invoice. The number stays taken.
func (d *Daftar) CancelInvoice(ctx context.Context, invoiceID id.InvoiceID, reason string) (*invoice.Invoice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	inv, err := d.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := d.transitionInvoice(inv, invoice.StatusCancelled); err != nil {
		return nil, err
	}
	inv.CancelReason = reason
	if err := d.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	d.logger.Info("invoice cancelled", "number", inv.Number, "reason", reason)
	d.plugins.EmitInvoiceCancelled(ctx, inv, reason)
	return inv, nil
}

// RecordInvoicePayment records a payment receipt against an issued
// invoice. A zero amount pays the full outstanding balance. The invoice
// becomes paid once its linked receipts reach the total.
func (d *Daftar) RecordInvoicePayment(ctx context.Context, invoiceID id.InvoiceID, in receipt.PaymentInput) (*receipt.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	inv, err := d.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != invoice.StatusIssued {
		return nil, &TransitionError{Entity: "invoice", ID: inv.Number, From: string(inv.Status), To: string(invoice.StatusPaid)}
	}

	amount := d.money(in.Amount)
	if amount.IsZero() {
		paid, err := d.invoicePaid(ctx, inv)
		if err != nil {
			return nil, err
		}
		amount = inv.Total.Subtract(paid)
	}

	notes := in.Notes
	if notes == "" {
		notes = "سداد الفاتورة رقم " + inv.Number
	}

	return d.addReceipt(ctx, receipt.Input{
		Type:      receipt.TypePayment,
		ClientID:  inv.ClientID,
		Amount:    amount,
		Date:      in.Date,
		Notes:     notes,
		Method:    receipt.MethodOrCash(in.Method),
		InvoiceID: inv.ID,
	}, id.Nil, id.Nil)
}

// GetInvoice retrieves an invoice by ID.
func (d *Daftar) GetInvoice(ctx context.Context, invoiceID id.InvoiceID) (*invoice.Invoice, error) {
	return d.store.GetInvoice(ctx, invoiceID)
}

// GetInvoiceByNumber retrieves an invoice by its document number.
func (d *Daftar) GetInvoiceByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return d.store.GetInvoiceByNumber(ctx, number)
}

// ListInvoices lists invoices.
func (d *Daftar) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	return d.store.ListInvoices(ctx, opts)
}

// InvoicePaid returns the sum of receipts linked to an invoice.
func (d *Daftar) InvoicePaid(ctx context.Context, invoiceID id.InvoiceID) (types.Money, error) {
	inv, err := d.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return types.Money{}, err
	}
	return d.invoicePaid(ctx, inv)
}

// Outstanding returns the invoice total minus receipts linked to it, never
// below zero.
func (d *Daftar) Outstanding(ctx context.Context, invoiceID id.InvoiceID) (types.Money, error) {
	inv, err := d.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return types.Money{}, err
	}
	paid, err := d.invoicePaid(ctx, inv)
	if err != nil {
		return types.Money{}, err
	}
	out := inv.Total.Subtract(paid)
	if out.IsNegative() {
		return types.Zero(out.Currency), nil
	}
	return out, nil
}

func (d *Daftar) invoicePaid(ctx context.Context, inv *invoice.Invoice) (types.Money, error) {
	linked, err := d.store.ListReceipts(ctx, receipt.ListOpts{InvoiceID: inv.ID})
	if err != nil {
		return types.Money{}, err
	}
	paid := types.Zero(inv.Total.Currency)
	for _, r := range linked {
		paid = paid.Add(r.Amount)
	}
	return paid, nil
}
