package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal returns the amount in major units (115.5 for SAR(11550)).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -int32(currencyDecimals(m.Currency)))
}

// MajorString returns the shortest decimal form of the major amount:
// "115" for SAR(11500), "115.5" for SAR(11550).
func (m Money) MajorString() string {
	return m.Decimal().String()
}

// MulRate applies a percentage rate and rounds half away from zero to the
// minor unit. SAR(10000).MulRate(15) is SAR(1500).
func (m Money) MulRate(percent decimal.Decimal) Money {
	v := decimal.NewFromInt(m.Amount).Mul(percent).Shift(-2).Round(0)
	return Money{Amount: v.IntPart(), Currency: m.Currency}
}

// Split divides m into n parts of round(m/n) each, the last part taking
// whatever remains so the parts always add back up to m.
func (m Money) Split(n int) []Money {
	if n <= 0 {
		return nil
	}
	each := decimal.NewFromInt(m.Amount).Div(decimal.NewFromInt(int64(n))).Round(0).IntPart()
	parts := make([]Money, n)
	var used int64
	for i := 0; i < n-1; i++ {
		parts[i] = Money{Amount: each, Currency: m.Currency}
		used += each
	}
	parts[n-1] = Money{Amount: m.Amount - used, Currency: m.Currency}
	return parts
}

// FromDecimal converts a major-unit decimal into Money, rounding half away
// from zero to the minor unit.
func FromDecimal(d decimal.Decimal, currency string) Money {
	currency = strings.ToLower(currency)
	minor := d.Shift(int32(currencyDecimals(currency))).Round(0)
	return Money{Amount: minor.IntPart(), Currency: currency}
}

// ParseMoney parses a major-unit string such as "115.50".
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return FromDecimal(d, currency), nil
}
