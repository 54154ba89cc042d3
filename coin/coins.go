package coin

import (
	"sort"

	"github.com/iov-one/swapweave/errors"
)

// Coins is a set of coins sorted by ticker, with at most one non zero coin
// per currency. Operations never modify the receiver.
type Coins []*Coin

// find returns the position of the ticker and whether it is present.
func (cs Coins) find(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set increased by c. A currency that sums up to zero
// is dropped from the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, ok := cs.find(c.Ticker)
	if !ok {
		res := make(Coins, 0, len(cs)+1)
		res = append(res, cs[:i]...)
		res = append(res, c.Clone())
		return append(res, cs[i:]...), nil
	}
	sum, err := cs[i].Add(c)
	if err != nil {
		return nil, err
	}
	res := make(Coins, 0, len(cs))
	res = append(res, cs[:i]...)
	if !sum.IsZero() {
		res = append(res, &sum)
	}
	return append(res, cs[i+1:]...), nil
}

// Combine returns a new set holding the coins of both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs
	for _, c := range o {
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains returns true if the set holds at least the amount of c.
func (cs Coins) Contains(c Coin) bool {
	i, ok := cs.find(c.Ticker)
	return ok && cs[i].IsGTE(c)
}

// IsNonNegative returns true if no coin in the set is below zero. An empty
// set is non negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires every coin to be valid and non zero, with tickers in
// strictly ascending order.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrInvalidState, "zero %s", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrapf(errors.ErrInvalidState, "%s not sorted", c.Ticker)
		}
	}
	return nil
}
