package invoice

import (
	"context"
	"time"

	"github.com/xraph/daftar/id"
)

type Store interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, invID id.InvoiceID) (*Invoice, error)
	GetInvoiceByNumber(ctx context.Context, number string) (*Invoice, error)
	ListInvoices(ctx context.Context, opts ListOpts) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
}

// ListOpts filters invoices. Start and End bound the invoice date, End
// exclusive; zero values leave the bound open.
type ListOpts struct {
	ClientID id.ClientID
	Status   Status
	Start    time.Time
	End      time.Time
	Limit    int
	Offset   int
}
