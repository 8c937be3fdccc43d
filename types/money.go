// Package types provides the value types shared by every daftar package.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultCurrency is the currency of every amount the ledger records.
const DefaultCurrency = "sar"

// Money is an amount in the smallest currency unit. Sums and differences
// stay in int64; rates go through the decimal bridge in decimal.go and
// are rounded back to the minor unit.
//
//	SAR(11500)  SAR 115.00
//	USD(4900)   $49.00
type Money struct {
	Amount   int64  `json:"amount"`   // halalas, cents
	Currency string `json:"currency"` // lowercase ISO 4217
}

// SAR creates a Money value in Saudi Riyals (halalas).
func SAR(halalas int64) Money { return Money{Amount: halalas, Currency: "sar"} }

// USD creates a Money value in US Dollars (cents).
func USD(cents int64) Money { return Money{Amount: cents, Currency: "usd"} }

// EUR creates a Money value in Euros (cents).
func EUR(cents int64) Money { return Money{Amount: cents, Currency: "eur"} }

// Zero returns a zero amount in currency.
func Zero(currency string) Money { return Money{Currency: strings.ToLower(currency)} }

// Add returns m + other. Mixing currencies panics.
func (m Money) Add(other Money) Money {
	m.mustMatch(other)
	m.Amount += other.Amount
	return m
}

// Subtract returns m - other. Mixing currencies panics.
func (m Money) Subtract(other Money) Money {
	m.mustMatch(other)
	m.Amount -= other.Amount
	return m
}

// Multiply scales m by a whole quantity, as for a line item.
func (m Money) Multiply(qty int64) Money {
	m.Amount *= qty
	return m
}

func (m Money) IsZero() bool     { return m.Amount == 0 }
func (m Money) IsPositive() bool { return m.Amount > 0 }
func (m Money) IsNegative() bool { return m.Amount < 0 }

// Equal compares amount and currency.
func (m Money) Equal(other Money) bool {
	return m == other
}

// AtLeast reports m >= other. Mixing currencies panics.
func (m Money) AtLeast(other Money) bool {
	m.mustMatch(other)
	return m.Amount >= other.Amount
}

// FormatMajor renders the amount in major units with the currency's
// fixed number of decimals and no symbol: "49.00" for SAR(4900).
func (m Money) FormatMajor() string {
	return m.Decimal().StringFixed(int32(currencyDecimals(m.Currency)))
}

// String renders the amount with its currency symbol, e.g. "SAR 49.00".
func (m Money) String() string {
	return currencySymbol(m.Currency) + m.FormatMajor()
}

// MarshalJSON adds a display field next to the amount and currency.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Display  string `json:"display"`
	}{
		Amount:   m.Amount,
		Currency: m.Currency,
		Display:  m.String(),
	})
}

func (m Money) mustMatch(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: currency mismatch: %s != %s", m.Currency, other.Currency))
	}
}

var symbols = map[string]string{
	"sar": "SAR ",
	"usd": "$",
	"eur": "€",
}

func currencySymbol(currency string) string {
	if sym, ok := symbols[strings.ToLower(currency)]; ok {
		return sym
	}
	return strings.ToUpper(currency) + " "
}

// currencyDecimals is 2 for every currency the office deals in except
// the yen and won.
func currencyDecimals(currency string) int {
	switch strings.ToLower(currency) {
	case "jpy", "krw":
		return 0
	}
	return 2
}

// Sum adds values of one currency. An empty Sum is zero in DefaultCurrency.
func Sum(values ...Money) Money {
	if len(values) == 0 {
		return Zero(DefaultCurrency)
	}
	total := values[0]
	for _, v := range values[1:] {
		total = total.Add(v)
	}
	return total
}
