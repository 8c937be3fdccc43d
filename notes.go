package daftar

import (
	"context"
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/types"
)

// ──────────────────────────────────────────────────
// Promissory notes
// ──────────────────────────────────────────────────

func (d *Daftar) validateNote(in promissory.Input) error {
	var errs MultiError
	if in.ClientID.IsNil() {
		errs.Add(invalid("client_id", "is required"))
	}
	if !in.Amount.IsPositive() {
		errs.Add(invalid("amount", "must be positive"))
	} else if in.Amount.Currency != d.currency {
		errs.Add(invalid("amount", "currency %q, ledger uses %q", in.Amount.Currency, d.currency))
	}
	if in.DueDate.IsZero() {
		errs.Add(invalid("due_date", "is required"))
	}
	return errs.ErrorOrNil()
}

// CreateNote stores a new active promissory note.
func (d *Daftar) CreateNote(ctx context.Context, in promissory.Input) (*promissory.Note, error) {
	in.Amount = d.money(in.Amount)
	if err := d.validateNote(in); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.store.GetClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	return d.createNote(ctx, in)
}

func (d *Daftar) createNote(ctx context.Context, in promissory.Input) (*promissory.Note, error) {
	number, err := d.seq.Next(ctx, sequence.SeriesNote, d.now())
	if err != nil {
		return nil, err
	}

	n := &promissory.Note{
		Entity:   types.NewEntityAt(d.now()),
		ID:       id.NewNoteID(),
		Number:   number,
		ClientID: in.ClientID,
		Amount:   in.Amount,
		Date:     d.timeOr(in.Date),
		DueDate:  in.DueDate,
		Status:   promissory.StatusActive,
		Notes:    in.Notes,
	}
	if err := d.store.CreateNote(ctx, n); err != nil {
		return nil, err
	}

	d.logger.Debug("promissory note created", "number", n.Number, "amount", n.Amount.String())
	d.plugins.EmitNoteCreated(ctx, n)
	return n, nil
}

// PlanInstallments validates p and returns the note inputs it expands to
// without storing anything.
func (d *Daftar) PlanInstallments(p promissory.Plan) ([]promissory.Input, error) {
	p.Total = d.money(p.Total)
	if p.Start.IsZero() {
		p.Start = d.now().UTC()
	}

	var errs MultiError
	if p.ClientID.IsNil() {
		errs.Add(invalid("client_id", "is required"))
	}
	if p.Count < 1 {
		errs.Add(invalid("count", "must be at least 1"))
	}
	if p.Months < 0 || (p.Months == 0 && p.Count > 1) {
		errs.Add(invalid("months", "must be at least 1 between installments"))
	}
	if !p.Total.IsPositive() {
		errs.Add(invalid("total", "must be positive"))
	} else if p.Total.Currency != d.currency {
		errs.Add(invalid("total", "currency %q, ledger uses %q", p.Total.Currency, d.currency))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	inputs := promissory.Schedule(p)
	for i, in := range inputs {
		if !in.Amount.IsPositive() {
			return nil, invalid("count", "installment %d would be %s", i+1, in.Amount.String())
		}
	}
	return inputs, nil
}

// CreateInstallments splits p.Total into p.Count notes due p.Months apart.
// The notes add up to the total exactly.
func (d *Daftar) CreateInstallments(ctx context.Context, p promissory.Plan) ([]*promissory.Note, error) {
	inputs, err := d.PlanInstallments(p)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.store.GetClient(ctx, p.ClientID); err != nil {
		return nil, err
	}

	notes := make([]*promissory.Note, 0, len(inputs))
	for _, in := range inputs {
		n, err := d.createNote(ctx, in)
		if err != nil {
			return notes, err
		}
		notes = append(notes, n)
	}

	d.logger.Info("installments created", "client_id", p.ClientID.String(), "count", len(notes), "total", p.Total.String())
	return notes, nil
}

// PayNote settles an active note in full with a linked payment receipt.
// in.Amount is ignored; an empty method means cash. The note is marked
// paid before the receipt is stored and set back to active if the receipt
// cannot be recorded, so a failed call leaves no receipt behind.
func (d *Daftar) PayNote(ctx context.Context, noteID id.NoteID, in receipt.PaymentInput) (*receipt.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.store.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !promissory.CanTransition(n.Status, promissory.StatusPaid) {
		return nil, &TransitionError{Entity: "promissory note", ID: n.Number, From: string(n.Status), To: string(promissory.StatusPaid)}
	}

	notes := in.Notes
	if notes == "" {
		notes = "سداد سند لأمر رقم " + n.Number
	}
	rin := receipt.Input{
		Type:     receipt.TypePayment,
		ClientID: n.ClientID,
		Amount:   n.Amount,
		Date:     d.timeOr(in.Date),
		Notes:    notes,
		Method:   receipt.MethodOrCash(in.Method),
	}
	if err := validateReceipt(rin, d.currency); err != nil {
		return nil, err
	}

	active := n.Clone()
	paidAt := rin.Date
	n.Status = promissory.StatusPaid
	n.PaymentDate = &paidAt
	n.ReceiptID = id.NewReceiptID()
	n.TouchAt(d.now())
	if err := d.store.UpdateNote(ctx, n); err != nil {
		return nil, err
	}

	r, err := d.addReceipt(ctx, rin, n.ID, n.ReceiptID)
	if err != nil {
		if rerr := d.store.UpdateNote(ctx, active); rerr != nil {
			d.logger.Error("promissory note left paid without receipt",
				"number", n.Number,
				"receipt_id", n.ReceiptID.String(),
				"error", rerr,
			)
		}
		return nil, err
	}

	d.logger.Info("promissory note paid", "number", n.Number, "receipt", r.Number)
	d.plugins.EmitNotePaid(ctx, n, r)
	return r, nil
}

// CancelNote cancels an active note. No receipt is created.
func (d *Daftar) CancelNote(ctx context.Context, noteID id.NoteID) (*promissory.Note, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.store.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !promissory.CanTransition(n.Status, promissory.StatusCancelled) {
		return nil, &TransitionError{Entity: "promissory note", ID: n.Number, From: string(n.Status), To: string(promissory.StatusCancelled)}
	}

	n.Status = promissory.StatusCancelled
	n.TouchAt(d.now())
	if err := d.store.UpdateNote(ctx, n); err != nil {
		return nil, err
	}

	d.logger.Info("promissory note cancelled", "number", n.Number)
	d.plugins.EmitNoteCancelled(ctx, n)
	return n, nil
}

// GetNote retrieves a promissory note by ID.
func (d *Daftar) GetNote(ctx context.Context, noteID id.NoteID) (*promissory.Note, error) {
	return d.store.GetNote(ctx, noteID)
}

// ListNotes lists promissory notes.
func (d *Daftar) ListNotes(ctx context.Context, opts promissory.ListOpts) ([]*promissory.Note, error) {
	return d.store.ListNotes(ctx, opts)
}

// OverdueNotes lists active notes whose due date is before asOf.
func (d *Daftar) OverdueNotes(ctx context.Context, asOf time.Time) ([]*promissory.Note, error) {
	active, err := d.store.ListNotes(ctx, promissory.ListOpts{Status: promissory.StatusActive})
	if err != nil {
		return nil, err
	}
	var out []*promissory.Note
	for _, n := range active {
		if n.Overdue(asOf) {
			out = append(out, n)
		}
	}
	return out, nil
}
