package pow

import (
	"math/big"
	"testing"

	"github.com/lumeproject/lume/common/hash"
	"github.com/stretchr/testify/assert"
)

func TestCompactToBig(t *testing.T) {
	// 0x1d00ffff is the classic limit encoding: 0xffff * 256^(29-3).
	want := new(big.Int).Lsh(big.NewInt(0xffff), 208)
	assert.Equal(t, 0, want.Cmp(CompactToBig(0x1d00ffff)))

	// Exponent below 3 shifts the mantissa down instead.
	assert.Equal(t, int64(0xff), CompactToBig(0x0200ff00).Int64())

	// The sign bit makes the decoded value negative.
	assert.True(t, CompactToBig(0x04800001).Sign() < 0)

	// A zero mantissa decodes to zero.
	assert.Equal(t, 0, CompactToBig(0x1d000000).Sign())
}

func TestBigToCompact(t *testing.T) {
	assert.Equal(t, uint32(0), BigToCompact(big.NewInt(0)))

	// 45000 * 2^200: the top mantissa byte 0xaf carries the sign bit, so
	// the encoder renormalizes to exponent 28.
	n := new(big.Int).Lsh(big.NewInt(45000), 200)
	assert.Equal(t, uint32(0x1c00afc8), BigToCompact(n))

	// 90000 * 2^200 needs no renormalization.
	n = new(big.Int).Lsh(big.NewInt(90000), 200)
	assert.Equal(t, uint32(0x1c015f90), BigToCompact(n))
}

func TestCompactRoundTrip(t *testing.T) {
	for _, bits := range []uint32{0x1d00ffff, 0x1c00afc8, 0x1c015f90, 0x207fffff, 0x1e00ffff} {
		assert.Equal(t, bits, BigToCompact(CompactToBig(bits)))
	}
}

func TestHashToBig(t *testing.T) {
	// Hashes are little-endian; byte 0 is the least significant.
	var h hash.Hash
	h[0] = 1
	assert.Equal(t, int64(1), HashToBig(&h).Int64())

	h = hash.Hash{}
	h[31] = 1
	want := new(big.Int).Lsh(big.NewInt(1), 248)
	assert.Equal(t, 0, want.Cmp(HashToBig(&h)))
}

func TestCalcWork(t *testing.T) {
	// Invalid bits carry no work.
	assert.Equal(t, 0, CalcWork(0).Sign())
	assert.Equal(t, 0, CalcWork(0x04800001).Sign())

	// A smaller target represents more work.
	easy := CalcWork(0x1d00ffff)
	hard := CalcWork(0x1c00afc8)
	assert.True(t, hard.Cmp(easy) > 0)
}

func TestProofTypeString(t *testing.T) {
	assert.Equal(t, "pow", ProofOfWork.String())
	assert.Equal(t, "pos", ProofOfStake.String())
	assert.Equal(t, "unknown", ProofType(0xff).String())
}
