package audithook

// Action constants for audit events.
const (
	// Registry actions
	ActionClientRegistered   = "client.registered"
	ActionSupplierRegistered = "supplier.registered"

	// Invoice actions
	ActionInvoiceCreated   = "invoice.created"
	ActionInvoiceIssued    = "invoice.issued"
	ActionInvoicePaid      = "invoice.paid"
	ActionInvoiceCancelled = "invoice.cancelled"

	// Receipt actions
	ActionReceiptRecorded = "receipt.recorded"

	// Promissory note actions
	ActionNoteCreated   = "note.created"
	ActionNotePaid      = "note.paid"
	ActionNoteCancelled = "note.cancelled"
)

// Resource constants for audit events.
const (
	ResourceClient   = "client"
	ResourceSupplier = "supplier"
	ResourceInvoice  = "invoice"
	ResourceReceipt  = "receipt"
	ResourceNote     = "promissory_note"
)

// Category constants for audit events.
const (
	CategoryRegistry = "registry"
	CategoryBilling  = "billing"
	CategoryPayment  = "payment"
	CategoryCredit   = "credit"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
)
