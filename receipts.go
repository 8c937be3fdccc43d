package daftar

import (
	"context"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/types"
)

// ──────────────────────────────────────────────────
// Receipts
// ──────────────────────────────────────────────────

func validateReceipt(in receipt.Input, currency string) error {
	var errs MultiError

	switch in.Type {
	case receipt.TypePayment:
		hasClient, hasSupplier := !in.ClientID.IsNil(), !in.SupplierID.IsNil()
		switch {
		case !hasClient && !hasSupplier:
			errs.Add(invalid("client_id", "is required for payment receipts"))
		case hasClient && hasSupplier:
			errs.Add(invalid("supplier_id", "a payment is from a client or to a supplier, not both"))
		}
		if hasSupplier && !in.InvoiceID.IsNil() {
			errs.Add(invalid("invoice_id", "supplier settlements cannot settle client invoices"))
		}
		if in.Beneficiary != "" {
			errs.Add(invalid("beneficiary", "only expense receipts have a beneficiary"))
		}
	case receipt.TypeExpense:
		hasSupplier, hasBeneficiary := !in.SupplierID.IsNil(), in.Beneficiary != ""
		if hasSupplier == hasBeneficiary {
			errs.Add(invalid("supplier_id", "expense receipts need exactly one of supplier or beneficiary"))
		}
		if !in.ClientID.IsNil() {
			errs.Add(invalid("client_id", "not allowed on expense receipts"))
		}
		if !in.InvoiceID.IsNil() {
			errs.Add(invalid("invoice_id", "only payment receipts settle invoices"))
		}
	case "":
		errs.Add(invalid("type", "is required"))
	default:
		errs.Add(invalid("type", "must be payment or expense, got %q", in.Type))
	}

	if !in.Amount.IsPositive() {
		errs.Add(invalid("amount", "must be positive"))
	} else if in.Amount.Currency != currency {
		errs.Add(invalid("amount", "currency %q, ledger uses %q", in.Amount.Currency, currency))
	}

	if field := in.Method.MissingField(); field != "" {
		errs.Add(invalid("payment_method."+field, "is required for %s payments", in.Method.Type))
	}

	return errs.ErrorOrNil()
}

// AddReceipt records a payment or expense receipt. A payment linked to an
// invoice requires the invoice to be issued; the invoice client is used
// when the input has none. When the linked receipts reach the invoice
// total the invoice becomes paid.
func (d *Daftar) AddReceipt(ctx context.Context, in receipt.Input) (*receipt.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addReceipt(ctx, in, id.Nil, id.Nil)
}

// addReceipt does the work of AddReceipt. A nil receiptID is replaced by a
// fresh one. The caller holds d.mu.
func (d *Daftar) addReceipt(ctx context.Context, in receipt.Input, noteID id.NoteID, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	in.Amount = d.money(in.Amount)
	in.Method = receipt.MethodOrCash(in.Method)

	var inv *invoice.Invoice
	if !in.InvoiceID.IsNil() {
		var err error
		if inv, err = d.store.GetInvoice(ctx, in.InvoiceID); err != nil {
			return nil, err
		}
		if in.ClientID.IsNil() && in.SupplierID.IsNil() {
			in.ClientID = inv.ClientID
		}
	}

	if err := validateReceipt(in, d.currency); err != nil {
		return nil, err
	}

	if inv != nil {
		if inv.ClientID != in.ClientID {
			return nil, invalid("client_id", "invoice %s belongs to another client", inv.Number)
		}
		if inv.Status != invoice.StatusIssued {
			return nil, &TransitionError{Entity: "invoice", ID: inv.Number, From: string(inv.Status), To: string(invoice.StatusPaid)}
		}
	}
	if !in.ClientID.IsNil() {
		if _, err := d.store.GetClient(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}
	if !in.SupplierID.IsNil() {
		if _, err := d.store.GetSupplier(ctx, in.SupplierID); err != nil {
			return nil, err
		}
	}

	series := sequence.SeriesReceipt
	if in.Type == receipt.TypeExpense {
		series = sequence.SeriesExpense
	}
	number, err := d.seq.Next(ctx, series, d.now())
	if err != nil {
		return nil, err
	}

	if receiptID.IsNil() {
		receiptID = id.NewReceiptID()
	}
	r := &receipt.Receipt{
		Entity:      types.NewEntityAt(d.now()),
		ID:          receiptID,
		Number:      number,
		Type:        in.Type,
		ClientID:    in.ClientID,
		SupplierID:  in.SupplierID,
		Beneficiary: in.Beneficiary,
		Amount:      in.Amount,
		Date:        d.timeOr(in.Date),
		Notes:       in.Notes,
		Category:    in.Category,
		Method:      in.Method,
		InvoiceID:   in.InvoiceID,
		NoteID:      noteID,
	}
	if err := d.store.CreateReceipt(ctx, r); err != nil {
		return nil, err
	}

	d.logger.Debug("receipt recorded",
		"number", r.Number,
		"type", r.Type,
		"amount", r.Amount.String(),
		"method", r.Method.Type,
	)
	d.plugins.EmitReceiptRecorded(ctx, r)

	if inv != nil {
		if err := d.settleInvoice(ctx, inv); err != nil {
			return r, err
		}
	}
	return r, nil
}

// settleInvoice flips an issued invoice to paid once its linked receipts
// reach the total.
func (d *Daftar) settleInvoice(ctx context.Context, inv *invoice.Invoice) error {
	paid, err := d.invoicePaid(ctx, inv)
	if err != nil {
		return err
	}
	if !paid.AtLeast(inv.Total) {
		return nil
	}
	if err := d.transitionInvoice(inv, invoice.StatusPaid); err != nil {
		return err
	}
	if err := d.store.UpdateInvoice(ctx, inv); err != nil {
		return err
	}

	d.logger.Info("invoice paid", "number", inv.Number, "paid", paid.String())
	d.plugins.EmitInvoicePaid(ctx, inv)
	return nil
}

// GetReceipt retrieves a receipt by ID.
func (d *Daftar) GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	return d.store.GetReceipt(ctx, receiptID)
}

// ListReceipts lists receipts.
func (d *Daftar) ListReceipts(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	return d.store.ListReceipts(ctx, opts)
}
