package blockchain

import (
	"testing"

	"github.com/lumeproject/lume/common/hash"
	"github.com/lumeproject/lume/params"
	"github.com/stretchr/testify/assert"
)

func TestCheckProofOfWork(t *testing.T) {
	par := &params.MainNetParams

	// The zero hash satisfies any positive target.
	assert.True(t, CheckProofOfWork(hash.Hash{}, par.PowLimitBits, par))

	// A hash above the target is rejected.  Byte 31 is the most
	// significant, so this hash is near 2^256.
	var high hash.Hash
	high[31] = 0xff
	assert.False(t, CheckProofOfWork(high, par.PowLimitBits, par))

	// Negative target: the compact sign bit fails the range check even
	// for the zero hash.
	assert.False(t, CheckProofOfWork(hash.Hash{}, 0x1d80ffff, par))

	// A zero mantissa decodes to zero; nothing can satisfy it.
	assert.False(t, CheckProofOfWork(hash.Hash{}, 0x1d000000, par))

	// A target above the network limit is rejected outright.
	assert.False(t, CheckProofOfWork(hash.Hash{}, 0xff00ffff, par))
}

func TestCheckProofOfWorkBoundary(t *testing.T) {
	par := &params.MainNetParams

	// A hash exactly equal to the target passes; one unit above fails.
	// PowLimitBits on mainnet is 0x1d00ffff = 0xffff * 2^208, which is
	// bytes 26 and 27 of the little-endian hash.
	var h hash.Hash
	h[26] = 0xff
	h[27] = 0xff
	assert.True(t, CheckProofOfWork(h, par.PowLimitBits, par))

	h[0] = 0x01
	assert.False(t, CheckProofOfWork(h, par.PowLimitBits, par))
}
