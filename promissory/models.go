// Package promissory models promissory notes (سند لأمر) and installment
// schedules that split one debt into several notes.
package promissory

import (
	"fmt"
	"strings"
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/types"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// CanTransition reports whether a note may move between statuses. Only
// active notes change; paid and cancelled are final.
func CanTransition(from, to Status) bool {
	return from == StatusActive && (to == StatusPaid || to == StatusCancelled)
}

type Note struct {
	types.Entity
	ID          id.NoteID    `json:"id"`
	Number      string       `json:"number"`
	ClientID    id.ClientID  `json:"client_id"`
	Amount      types.Money  `json:"amount"`
	Date        time.Time    `json:"date"`
	DueDate     time.Time    `json:"due_date"`
	Status      Status       `json:"status"`
	Notes       string       `json:"notes,omitempty"`
	PaymentDate *time.Time   `json:"payment_date,omitempty"`
	ReceiptID   id.ReceiptID `json:"receipt_id"`
}

// Overdue reports whether the note is still active after its due date.
func (n *Note) Overdue(asOf time.Time) bool {
	return n.Status == StatusActive && asOf.After(n.DueDate)
}

// Clone returns a deep copy of n.
func (n *Note) Clone() *Note {
	out := *n
	if n.PaymentDate != nil {
		d := *n.PaymentDate
		out.PaymentDate = &d
	}
	return &out
}

// Input is the caller supplied part of a new note.
type Input struct {
	ClientID id.ClientID
	Amount   types.Money
	Date     time.Time
	DueDate  time.Time
	Notes    string
}

// Plan describes an installment schedule.
type Plan struct {
	ClientID id.ClientID
	Total    types.Money
	Start    time.Time
	Count    int
	// Months between consecutive due dates.
	Months int
	Notes  string
}

// Schedule expands p into Count note inputs. Each installment is Total/Count
// rounded to the minor unit and the last one absorbs the remainder, so the
// amounts always add up to Total. Installment i is due Start plus i*Months
// months. Schedule does not validate p.
func Schedule(p Plan) []Input {
	amounts := p.Total.Split(p.Count)
	out := make([]Input, len(amounts))
	for i, amt := range amounts {
		out[i] = Input{
			ClientID: p.ClientID,
			Amount:   amt,
			Date:     p.Start,
			DueDate:  p.Start.AddDate(0, i*p.Months, 0),
			Notes:    installmentNote(i+1, p.Count, p.Notes),
		}
	}
	return out
}

func installmentNote(i, n int, notes string) string {
	return strings.TrimSpace(fmt.Sprintf("قسط %d من %d - %s", i, n, notes))
}
