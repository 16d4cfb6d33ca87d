/*
Package generic provides the domain-agnostic primitives the booking engine is
built on.

PURPOSE:
  Nothing in this package knows about campgrounds. It holds the calendar,
  money and error vocabulary shared by the engine, the stores and the API.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A currency amount backed by decimal.Decimal
  - Rate:  A multiplier such as a tax or deposit percentage

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere, never float64 math
  2. Output rounding: amounts keep full precision until Round() at the edge
  3. Immutability: every operation returns a new value

USAGE:
  lodging := generic.NewMoneyFromInt(45).MulInt(2)
  fee := lodging.MulRate(generic.MustParseRate("0.06"))
  fmt.Println(fee.Round())  // 5.40

SEE ALSO:
  - time.go: TimePoint calendar days
  - interval.go: Half-open day intervals
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Currency amount with full internal precision
// =============================================================================

// Money is a currency amount. The zero value is $0.
type Money struct {
	Value decimal.Decimal
}

// MoneyPlaces is the number of decimals amounts are rounded to on output.
const MoneyPlaces = 2

func NewMoney(value float64) Money                { return Money{Value: decimal.NewFromFloat(value)} }
func NewMoneyFromInt(value int64) Money           { return Money{Value: decimal.NewFromInt(value)} }
func NewMoneyFromDecimal(d decimal.Decimal) Money { return Money{Value: d} }

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(b Money) Money        { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money        { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) MulRate(r Rate) Money     { return Money{Value: m.Value.Mul(r.Value)} }
func (m Money) MulInt(n int) Money       { return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) IsNegative() bool         { return m.Value.IsNegative() }
func (m Money) IsZero() bool             { return m.Value.IsZero() }
func (m Money) GreaterThan(b Money) bool { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool    { return m.Value.LessThan(b.Value) }
func (m Money) Equal(b Money) bool       { return m.Value.Equal(b.Value) }

// Max returns the larger of m and b.
func (m Money) Max(b Money) Money {
	if m.LessThan(b) {
		return b
	}
	return m
}

// NonNegative clamps negative amounts to zero.
func (m Money) NonNegative() Money { return m.Max(ZeroMoney()) }

// Round returns the amount rounded to MoneyPlaces decimals.
func (m Money) Round() Money { return Money{Value: m.Value.Round(MoneyPlaces)} }

// Float64 rounds and converts for JSON output.
func (m Money) Float64() float64 { return m.Value.Round(MoneyPlaces).InexactFloat64() }

func (m Money) String() string { return m.Value.StringFixed(MoneyPlaces) }

// SumMoney adds up a list of amounts.
func SumMoney(amounts ...Money) Money {
	total := ZeroMoney()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// =============================================================================
// RATE - Multiplier applied to money (0.06 = 6%)
// =============================================================================

type Rate struct {
	Value decimal.Decimal
}

func NewRate(value float64) Rate { return Rate{Value: decimal.NewFromFloat(value)} }

// ParseRate parses a decimal string such as "0.085".
func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, err
	}
	return Rate{Value: d}, nil
}

// MustParseRate is ParseRate for constants. It panics on malformed input.
func MustParseRate(s string) Rate {
	r, err := ParseRate(s)
	if err != nil {
		panic("generic: bad rate " + s + ": " + err.Error())
	}
	return r
}

func (r Rate) IsNegative() bool { return r.Value.IsNegative() }
func (r Rate) Float64() float64 { return r.Value.InexactFloat64() }
func (r Rate) String() string   { return r.Value.String() }

// =============================================================================
// PERCENT - Ratio expressed 0-100
// =============================================================================

// Percent returns part/whole × 100 rounded to places decimals. A zero whole
// yields zero.
func Percent(part, whole int, places int32) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(places)
}
