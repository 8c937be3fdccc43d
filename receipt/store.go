package receipt

import (
	"context"
	"time"

	"github.com/xraph/daftar/id"
)

// Store persists receipts. Receipts are never updated or deleted.
type Store interface {
	CreateReceipt(ctx context.Context, r *Receipt) error
	GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*Receipt, error)
	ListReceipts(ctx context.Context, opts ListOpts) ([]*Receipt, error)
}

// ListOpts filters receipts. Start and End bound the receipt date, End
// exclusive.
type ListOpts struct {
	Type       Type
	ClientID   id.ClientID
	SupplierID id.SupplierID
	InvoiceID  id.InvoiceID
	Start      time.Time
	End        time.Time
	Limit      int
	Offset     int
}
