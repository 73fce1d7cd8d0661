// Copyright (c) 2019-2020 The lume developers
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/lumeproject/lume/common/hash"
	"github.com/lumeproject/lume/core/types/pow"
	"github.com/lumeproject/lume/params"
)

// CheckProofOfWork returns whether blockHash satisfies the claimed compact
// target.  It fails closed: a target that decodes negative or zero, that
// overflows the encoding, or that exceeds the network proof-of-work limit
// rejects the block no matter what the hash is.
func CheckProofOfWork(blockHash hash.Hash, bits uint32, par *params.Params) bool {
	target := pow.CompactToBig(bits)

	// Check range: the sign bit, a zero mantissa and an overflowing
	// exponent all land outside (0, PowLimit].
	if target.Sign() <= 0 || target.Cmp(par.PowLimit) > 0 {
		return false
	}

	// Check the proof matches the claimed amount.
	if pow.HashToBig(&blockHash).Cmp(target) > 0 {
		return false
	}

	return true
}
