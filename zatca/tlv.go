// Package zatca builds the seller/VAT summary that Saudi simplified tax
// invoices carry as a QR code: five TLV fields, Base64 wrapped.
package zatca

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/daftar/types"
)

// Tags of the five summary fields, in encoding order.
const (
	TagSellerName   byte = 1
	TagVATNumber    byte = 2
	TagTimestamp    byte = 3
	TagInvoiceTotal byte = 4
	TagVATAmount    byte = 5
)

// MaxFieldLen is the largest value a single length byte can describe.
const MaxFieldLen = 255

var (
	ErrFieldTooLong = errors.New("zatca: field exceeds 255 bytes")
	ErrMissingField = errors.New("zatca: required field is empty")
	ErrMalformed    = errors.New("zatca: malformed payload")
)

// Payload is the invoice summary to encode.
type Payload struct {
	SellerName   string
	VATNumber    string
	Timestamp    time.Time
	InvoiceTotal types.Money
	VATAmount    types.Money
}

// Field is one decoded TLV entry.
type Field struct {
	Tag   byte
	Value string
}

// Encode serializes p as [tag][len][utf8 value] for tags 1 through 5 and
// returns the Base64 (standard alphabet) form. The timestamp is written as
// RFC 3339 in UTC, amounts as the shortest decimal major-unit string.
func Encode(p Payload) (string, error) {
	if p.SellerName == "" {
		return "", fmt.Errorf("%w: seller name", ErrMissingField)
	}
	if p.VATNumber == "" {
		return "", fmt.Errorf("%w: vat number", ErrMissingField)
	}

	fields := []Field{
		{TagSellerName, p.SellerName},
		{TagVATNumber, p.VATNumber},
		{TagTimestamp, p.Timestamp.UTC().Format(time.RFC3339)},
		{TagInvoiceTotal, p.InvoiceTotal.MajorString()},
		{TagVATAmount, p.VATAmount.MajorString()},
	}

	raw, err := Marshal(fields)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Marshal writes fields as raw TLV bytes.
func Marshal(fields []Field) ([]byte, error) {
	size := 0
	for _, f := range fields {
		size += 2 + len(f.Value)
	}
	out := make([]byte, 0, size)
	for _, f := range fields {
		if len(f.Value) > MaxFieldLen {
			return nil, fmt.Errorf("%w: tag %d is %d bytes", ErrFieldTooLong, f.Tag, len(f.Value))
		}
		out = append(out, f.Tag, byte(len(f.Value)))
		out = append(out, f.Value...)
	}
	return out, nil
}

// Unmarshal parses raw TLV bytes.
func Unmarshal(raw []byte) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(raw); {
		if i+2 > len(raw) {
			return nil, fmt.Errorf("%w: truncated header at byte %d", ErrMalformed, i)
		}
		tag, n := raw[i], int(raw[i+1])
		i += 2
		if i+n > len(raw) {
			return nil, fmt.Errorf("%w: tag %d wants %d bytes, %d left", ErrMalformed, tag, n, len(raw)-i)
		}
		fields = append(fields, Field{Tag: tag, Value: string(raw[i : i+n])})
		i += n
	}
	return fields, nil
}

// Decode reverses Encode, returning the fields in payload order.
func Decode(payload string) ([]Field, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Unmarshal(raw)
}
