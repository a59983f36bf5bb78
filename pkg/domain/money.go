package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"

	dErrors "enrollhub/pkg/domain-errors"
)

// Amount is an exact decimal monetary value at two-decimal-place currency
// granularity. It round-trips the persistence boundary (numeric(10,2)) and
// the HTTP boundary (JSON string) without floating-point drift.
type Amount struct {
	dec decimal.Decimal
}

// ParseAmount accepts a decimal string such as "1500.00". Values with more
// than two fractional digits are rejected rather than silently rounded.
func ParseAmount(raw string) (Amount, error) {
	if raw == "" {
		return Amount{}, dErrors.New(dErrors.CodeInvalidInput, "amount is required")
	}
	dec, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be a decimal number")
	}
	if dec.Exponent() < -2 {
		return Amount{}, dErrors.New(dErrors.CodeInvalidInput, "amount supports at most two decimal places")
	}
	return Amount{dec: dec}, nil
}

// MustAmount is a test fixture helper; it panics on invalid input.
func MustAmount(raw string) Amount {
	a, err := ParseAmount(raw)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) IsPositive() bool { return a.dec.IsPositive() }
func (a Amount) IsNegative() bool { return a.dec.IsNegative() }
func (a Amount) IsZero() bool     { return a.dec.IsZero() }

func (a Amount) Equal(other Amount) bool { return a.dec.Equal(other.dec) }

// String always renders two decimal places, the currency granularity used
// across the system.
func (a Amount) String() string { return a.dec.StringFixed(2) }

// MarshalJSON emits the amount as a JSON string so no consumer is tempted
// to read it through a binary float.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both "1500.00" and bare 1500.00; the bare form is
// parsed from its source text, not from a float64.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "null" {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must not be null")
	}
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer; amounts travel to postgres as text bound
// to a numeric column.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner for numeric columns read back as text or raw
// bytes.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Amount{}
		return nil
	case string:
		dec, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("scan amount: %w", err)
		}
		*a = Amount{dec: dec}
		return nil
	case []byte:
		dec, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("scan amount: %w", err)
		}
		*a = Amount{dec: dec}
		return nil
	default:
		return fmt.Errorf("scan amount: unsupported source type %T", src)
	}
}
