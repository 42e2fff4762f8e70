package pricing

import "strconv"

// Money is an amount in West African CFA francs. XOF has no subdivision,
// so every amount is a whole number of francs.
type Money int64

func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10) + " XOF"
}

func nonNegative(m Money) Money {
	if m < 0 {
		return 0
	}
	return m
}
