// Copyright (c) 2019-2020 The lume developers

package common

import (
	"math/big"
)

var (
	Big0 = big.NewInt(0)

	// Big1 is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	Big1 = big.NewInt(1)

	Big2 = big.NewInt(2)

	// OneLsh256 is 1 shifted left 256 bits.  It is defined here to avoid
	// the overhead of creating it multiple times.
	OneLsh256 = new(big.Int).Lsh(Big1, 256)

	// MaxBig256 is 2^256-1, the largest unsigned 256-bit magnitude.
	MaxBig256 = new(big.Int).Sub(OneLsh256, Big1)
)

// BigPow returns a ** b as a big integer.
func BigPow(a, b int) *big.Int {
	r := big.NewInt(int64(a))
	return r.Exp(r, big.NewInt(int64(b)), nil)
}
