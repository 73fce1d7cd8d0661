package params

import (
	"testing"

	"github.com/lumeproject/lume/core/types/pow"
	"github.com/stretchr/testify/assert"
)

// Era boundaries on mainnet: UpgradeV2Height=466600, ReduceBlocktimeHeight=845000.

func TestTargetSpacing(t *testing.T) {
	p := &MainNetParams
	assert.Equal(t, int64(128), p.TargetSpacing(0))
	assert.Equal(t, int64(128), p.TargetSpacing(p.UpgradeV2Height))
	assert.Equal(t, int64(128), p.TargetSpacing(p.ReduceBlocktimeHeight-1))
	assert.Equal(t, int64(32), p.TargetSpacing(p.ReduceBlocktimeHeight))
	assert.Equal(t, int64(32), p.TargetSpacing(p.ReduceBlocktimeHeight+1))
}

func TestTargetTimespanRegimes(t *testing.T) {
	p := &MainNetParams
	assert.Equal(t, int64(128*15), p.TargetTimespan(0))
	assert.Equal(t, int64(128*15), p.TargetTimespan(p.UpgradeV2Height-1))
	assert.Equal(t, int64(128*32), p.TargetTimespan(p.UpgradeV2Height))
	assert.Equal(t, int64(128*32), p.TargetTimespan(p.ReduceBlocktimeHeight-1))
	assert.Equal(t, int64(32*32), p.TargetTimespan(p.ReduceBlocktimeHeight))
}

func TestDifficultyAdjustmentInterval(t *testing.T) {
	p := &MainNetParams
	assert.Equal(t, int64(15), p.DifficultyAdjustmentInterval(0))
	assert.Equal(t, int64(32), p.DifficultyAdjustmentInterval(p.UpgradeV2Height))
	assert.Equal(t, int64(32), p.DifficultyAdjustmentInterval(p.ReduceBlocktimeHeight))
}

func TestReduceBlocktimeAccessors(t *testing.T) {
	p := &MainNetParams
	rbt := p.ReduceBlocktimeHeight

	assert.Equal(t, int64(500), p.CoinbaseMaturityAt(rbt-1))
	assert.Equal(t, int64(2000), p.CoinbaseMaturityAt(rbt))

	assert.Equal(t, int64(500), p.CheckpointSpanAt(rbt-1))
	assert.Equal(t, int64(2000), p.CheckpointSpanAt(rbt))
	assert.Equal(t, int64(2000), p.MaxCheckpointSpan())

	assert.Equal(t, uint32(0xf), p.StakeTimestampMaskAt(rbt-1))
	assert.Equal(t, uint32(0x3), p.StakeTimestampMaskAt(rbt))

	assert.Equal(t, int64(985500), p.SubsidyHalvingIntervalAt(rbt-1))
	assert.Equal(t, int64(3942000), p.SubsidyHalvingIntervalAt(rbt))

	assert.Equal(t, int64(1), p.BlocktimeDownscaleFactorAt(rbt-1))
	assert.Equal(t, int64(4), p.BlocktimeDownscaleFactorAt(rbt))

	assert.Equal(t, int64(1), p.TimestampDownscaleFactor(rbt-1))
	assert.Equal(t, int64(4), p.TimestampDownscaleFactor(rbt))
}

func TestSubsidyHalvingWeight(t *testing.T) {
	p := &MainNetParams
	rbt := p.ReduceBlocktimeHeight

	// Before the downscale the weight is the height itself.
	assert.Equal(t, int64(100), p.SubsidyHalvingWeight(100))
	assert.Equal(t, rbt-1, p.SubsidyHalvingWeight(rbt-1))

	// From the downscale, pre-boundary blocks count four-fold.
	want := rbt - (rbt - 1) + (rbt-1)*4
	assert.Equal(t, want, p.SubsidyHalvingWeight(rbt))
}

func TestProofLimit(t *testing.T) {
	p := &MainNetParams

	// The work limit is era independent.
	assert.Equal(t, 0, p.PowLimit.Cmp(p.ProofLimit(0, pow.ProofOfWork)))
	assert.Equal(t, 0, p.PowLimit.Cmp(p.ProofLimit(p.ReduceBlocktimeHeight, pow.ProofOfWork)))

	// The stake limit switches at each boundary.
	assert.Equal(t, 0, p.PoSLimit.Cmp(p.ProofLimit(p.UpgradeV2Height-1, pow.ProofOfStake)))
	assert.Equal(t, 0, p.UpgradeV2PoSLimit.Cmp(p.ProofLimit(p.UpgradeV2Height, pow.ProofOfStake)))
	assert.Equal(t, 0, p.RBTPoSLimit.Cmp(p.ProofLimit(p.ReduceBlocktimeHeight, pow.ProofOfStake)))
}

func TestCoincidentBoundaries(t *testing.T) {
	// Privnet activates every era at genesis; the latest bundle wins.
	p := &PrivNetParams
	assert.Equal(t, int64(16), p.TargetSpacing(0))
	assert.Equal(t, int64(16*32), p.TargetTimespan(0))
	assert.Equal(t, int64(1), p.BlocktimeDownscaleFactorAt(0))
}
