package dto

import "github.com/shopspring/decimal"

// Money is a monetary amount in a response body. It keeps the full decimal
// value internally but always serializes as a fixed two-decimal string
// ("50.00", never "50"), the format receipts and client displays expect.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
