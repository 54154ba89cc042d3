/*
Package coin implements fixed point currency amounts.

A Coin holds a whole and a fractional part of a single currency, where one
whole unit is FracUnit fractional units. Both parts always carry the same
sign. Coins is a set of coins of distinct currencies kept sorted by ticker.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/swapweave/errors"
)

const (
	// FracUnit is the number of fractional units in one whole unit.
	FracUnit int64 = 1000000000

	// MaxInt is the largest absolute whole value a coin can hold.
	MaxInt int64 = 999999999999999
)

// IsCC returns true if the ticker is a valid currency code.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of a single currency.
type Coin struct {
	Whole      int64  `json:"whole"`
	Fractional int64  `json:"fractional"`
	Ticker     string `json:"ticker"`
}

// NewCoin returns a coin. No normalization is done.
func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Whole: whole, Fractional: fractional, Ticker: ticker}
}

// NewCoinp is NewCoin returning a pointer.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// IsEmpty returns true for a nil or a zero value coin.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// Validate checks the ticker, the range of both parts and that their signs
// agree. Negative values are valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	if abs(c.Whole) > MaxInt {
		return errors.Wrapf(errors.ErrOverflow, "whole %d", c.Whole)
	}
	if abs(c.Fractional) >= FracUnit {
		return errors.Wrapf(errors.ErrOverflow, "fractional %d", c.Fractional)
	}
	if (c.Whole > 0 && c.Fractional < 0) || (c.Whole < 0 && c.Fractional > 0) {
		return errors.Wrap(errors.ErrInvalidState, "mismatched sign")
	}
	return nil
}

// Add returns the sum of both coins. A zero coin without a ticker is
// neutral, any other mix of currencies fails with ErrCurrency.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case o.Ticker == "" && o.IsZero():
		return c, nil
	case c.Ticker == "" && c.IsZero():
		return o, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	}
	return normalize(c.Whole+o.Whole, c.Fractional+o.Fractional, c.Ticker)
}

// Subtract returns c minus o.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the coin with the opposite sign.
func (c Coin) Negative() Coin {
	return Coin{Whole: -c.Whole, Fractional: -c.Fractional, Ticker: c.Ticker}
}

// normalize carries the fractional overflow into the whole part and aligns
// the signs of both parts.
func normalize(whole, frac int64, ticker string) (Coin, error) {
	whole += frac / FracUnit
	frac %= FracUnit
	switch {
	case whole > 0 && frac < 0:
		whole--
		frac += FracUnit
	case whole < 0 && frac > 0:
		whole++
		frac -= FracUnit
	}
	if abs(whole) > MaxInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d %s", whole, ticker)
	}
	return Coin{Whole: whole, Fractional: frac, Ticker: ticker}, nil
}

// IsZero returns true if the amount is zero, regardless of the ticker.
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true if the amount is above zero.
func (c Coin) IsPositive() bool {
	return c.Whole > 0 || (c.Whole == 0 && c.Fractional > 0)
}

// SameType returns true if both coins are of the same currency.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// IsGTE returns true if both coins are of the same currency and c holds at
// least as much as o. Both coins must be normalized.
func (c Coin) IsGTE(o Coin) bool {
	if !c.SameType(o) {
		return false
	}
	if c.Whole != o.Whole {
		return c.Whole > o.Whole
	}
	return c.Fractional >= o.Fractional
}

// Equals returns true if both coins are identical.
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// Clone returns a copy of the coin, nil for nil.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// String returns the human readable format, for example "1.5 IOV".
func (c Coin) String() string {
	if n, err := normalize(c.Whole, c.Fractional, c.Ticker); err == nil {
		c = n
	}
	var b strings.Builder
	if c.Whole < 0 || c.Fractional < 0 {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(abs(c.Whole), 10))
	if c.Fractional != 0 {
		frac := fmt.Sprintf("%09d", abs(c.Fractional))
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(frac, "0"))
	}
	if c.Ticker != "" {
		b.WriteByte(' ')
		b.WriteString(c.Ticker)
	}
	return b.String()
}

var humanFormat = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d{1,9}))?\s*([A-Z]{3,4})$`)

// ParseHumanFormat parses "<whole>[.<fractional>] <ticker>". At most nine
// fractional digits are accepted, so parsing is exact.
func ParseHumanFormat(s string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "invalid coin %q", s)
	}
	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "whole %q", m[2])
	}
	var frac int64
	if m[3] != "" {
		// right pad to nine digits, so "5" reads as half a unit
		frac, err = strconv.ParseInt(m[3]+strings.Repeat("0", 9-len(m[3])), 10, 64)
		if err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "fractional %q", m[3])
		}
	}
	c := Coin{Whole: whole, Fractional: frac, Ticker: m[4]}
	if m[1] == "-" {
		c = c.Negative()
	}
	return c, nil
}

// UnmarshalJSON accepts both the human readable string format and the
// structured object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	*c = Coin(p)
	return nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
