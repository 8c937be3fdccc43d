package daftar

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("daftar: not found")
	ErrAlreadyExists = errors.New("daftar: already exists")
	ErrInvalidInput  = errors.New("daftar: invalid input")
	ErrForbidden     = errors.New("daftar: forbidden")

	// Lifecycle errors
	ErrIllegalTransition = errors.New("daftar: illegal state transition")
	ErrInvoiceLocked     = errors.New("daftar: invoice is no longer a draft")
	ErrTaskLocked        = errors.New("daftar: task has incomplete dependencies")

	// Referential errors
	ErrClientNotFound   = errors.New("daftar: client not found")
	ErrSupplierNotFound = errors.New("daftar: supplier not found")
	ErrProjectNotFound  = errors.New("daftar: project not found")
	ErrTaskNotFound     = errors.New("daftar: task not found")
	ErrTemplateNotFound = errors.New("daftar: template not found")
	ErrInvoiceNotFound  = errors.New("daftar: invoice not found")
	ErrReceiptNotFound  = errors.New("daftar: receipt not found")
	ErrNoteNotFound     = errors.New("daftar: promissory note not found")
	ErrClientInUse      = errors.New("daftar: client is referenced by ledger documents")
	ErrSupplierInUse    = errors.New("daftar: supplier is referenced by receipts")

	// Store errors
	ErrStoreNotReady   = errors.New("daftar: store not ready")
	ErrStoreClosed     = errors.New("daftar: store is closed")
	ErrMigrationFailed = errors.New("daftar: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("daftar: validation failed for %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an operation attempted on a record whose status
// does not allow it.
type TransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("daftar: %s %s cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "daftar: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("daftar: %d errors occurred", len(e.Errors))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e MultiError) Unwrap() []error { return e.Errors }

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// ErrorOrNil returns nil when nothing was collected, e otherwise.
func (e MultiError) ErrorOrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrInvoiceNotFound) ||
		errors.Is(err, ErrReceiptNotFound) ||
		errors.Is(err, ErrNoteNotFound)
}

// IsValidation returns true if the error is an input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIllegalTransition returns true if the error is a status machine violation.
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady)
}
