package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Amount is an arbitrary-precision decimal monetary value backed by big.Rat.
// Amounts cross service boundaries as canonical decimal strings so totals
// survive publish/consume cycles without floating-point drift.
type Amount struct {
	rat *big.Rat
}

var ErrInvalidAmount = errors.New("invalid decimal amount")

// Zero returns a zero-valued amount.
func Zero() Amount {
	return Amount{rat: new(big.Rat)}
}

// Parse builds an amount from a decimal string such as "1250.50".
func Parse(value string) (Amount, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Amount{}, ErrInvalidAmount
	}
	rat, ok := new(big.Rat).SetString(trimmed)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return Amount{rat: rat}, nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(value string) Amount {
	amount, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return amount
}

// FromInt64 builds an amount from whole currency units.
func FromInt64(value int64) Amount {
	return Amount{rat: new(big.Rat).SetInt64(value)}
}

func (a Amount) value() *big.Rat {
	if a.rat == nil {
		return new(big.Rat)
	}
	return a.rat
}

// Add returns a + other without mutating either operand.
func (a Amount) Add(other Amount) Amount {
	return Amount{rat: new(big.Rat).Add(a.value(), other.value())}
}

// Cmp returns -1, 0 or 1 comparing a against other.
func (a Amount) Cmp(other Amount) int {
	return a.value().Cmp(other.value())
}

func (a Amount) IsZero() bool {
	return a.value().Sign() == 0
}

func (a Amount) IsNegative() bool {
	return a.value().Sign() < 0
}

// String renders the exact decimal form with at least two fraction digits.
// The backing rational always has a terminating decimal expansion because
// amounts only enter the system through decimal strings.
func (a Amount) String() string {
	return a.value().FloatString(a.decimalDigits())
}

// decimalDigits computes how many fraction digits the exact expansion needs.
// A rational p/q terminates iff q = 2^x * 5^y; the answer is max(x, y).
func (a Amount) decimalDigits() int {
	denom := new(big.Int).Set(a.value().Denom())
	two := big.NewInt(2)
	five := big.NewInt(5)
	twos, fives := 0, 0
	for new(big.Int).Mod(denom, two).Sign() == 0 {
		denom.Div(denom, two)
		twos++
	}
	for new(big.Int).Mod(denom, five).Sign() == 0 {
		denom.Div(denom, five)
		fives++
	}
	digits := twos
	if fives > digits {
		digits = fives
	}
	if digits < 2 {
		digits = 2
	}
	return digits
}

// MarshalJSON writes the canonical decimal string form.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both quoted decimal strings and bare JSON numbers;
// producers written before envelope enrichment emitted bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = Zero()
		return nil
	}
	var text string
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	} else {
		text = raw
	}
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
