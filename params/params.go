// Copyright (c) 2019-2020 The lume developers
// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"math/big"
	"sync"

	"github.com/lumeproject/lume/common/hash"
	"github.com/lumeproject/lume/core/types/pow"
)

// Checkpoint identifies a known good point in the block chain.  Using
// checkpoints allows a few optimizations for old blocks during initial
// download and also prevents forks from old blocks.
type Checkpoint struct {
	Height int64
	Hash   *hash.Hash
}

// ConsensusDeployment defines details related to a specific consensus rule
// change that is voted in.
type ConsensusDeployment struct {
	// BitNumber defines the specific bit number within the block version
	// this particular soft-fork deployment refers to.
	BitNumber uint8

	// StartTime is the median block time after which voting on the
	// deployment starts.
	StartTime uint64

	// ExpireTime is the median block time after which the attempted
	// deployment expires.
	ExpireTime uint64
}

// Constants that define the deployment offset in the deployments field of the
// parameters for each deployment.  This is useful to be able to get the
// details of a specific deployment by name.
const (
	// DeploymentTestDummy defines the rule change deployment ID for testing
	// purposes.
	DeploymentTestDummy = iota

	// DefinedDeployments is the number of currently defined deployments.
	DefinedDeployments
)

// Params defines a lume network by its parameters.  These parameters may be
// used by lume applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
//
// All era-dependent constants are read through the accessor methods below;
// callers must not branch on the raw threshold fields directly.  Every
// accessor is a pure function of height and the static configuration, and
// must only be called with a non-negative height.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// GenesisHash is the starting block hash.
	GenesisHash *hash.Hash

	// BIP34Height is the height at which the block-height-in-coinbase
	// rule activates.
	BIP34Height int64

	// BIP65Height is the height at which CHECKLOCKTIMEVERIFY activates.
	BIP65Height int64

	// BIP66Height is the height at which strict DER signatures activate.
	BIP66Height int64

	// CSVHeight is the height at which relative lock-times activate.
	CSVHeight int64

	// SegwitHeight is the height at which segregated witness activates.
	SegwitHeight int64

	// PoSHeight is the height at which proof-of-stake block production
	// activates; below it the chain is pure proof-of-work.
	PoSHeight int64

	// UpgradeV2Height is the height of the second consensus upgrade: the
	// retarget timespan switches to PowTargetTimespanV2, the stake proof
	// limit switches to UpgradeV2PoSLimit and the legacy retarget switches
	// from the ratio EMA to the exponential approximation.
	UpgradeV2Height int64

	// ReduceBlocktimeHeight is the height at which the shortened block
	// time regime activates: spacing, timespan, maturity, checkpoint
	// span, stake timestamp mask, halving interval and the stake proof
	// limit all switch to their RBT values.
	ReduceBlocktimeHeight int64

	// RuleChangeActivationThreshold is the number of blocks in a
	// MinerConfirmationWindow that must signal a rule change for it to
	// lock in.
	RuleChangeActivationThreshold uint32

	// MinerConfirmationWindow is the soft-fork signaling window length.
	MinerConfirmationWindow uint32

	// Deployments define the specific consensus rule changes to be voted
	// on.
	Deployments [DefinedDeployments]ConsensusDeployment

	// PowLimit defines the highest allowed proof of work value for a
	// block as a uint256.  It applies at every height; the stake limits
	// below are era-gated.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// PoSLimit, UpgradeV2PoSLimit and RBTPoSLimit are the successive
	// proof-of-stake limits, keyed by the UpgradeV2Height and
	// ReduceBlocktimeHeight boundaries.
	PoSLimit          *big.Int
	UpgradeV2PoSLimit *big.Int
	RBTPoSLimit       *big.Int

	// PowAllowMinDifficultyBlocks allows the test-network minimum
	// difficulty exception.
	PowAllowMinDifficultyBlocks bool

	// PowNoRetargeting and PoSNoRetargeting freeze the difficulty of the
	// respective proof type; used on regression-test networks.
	PowNoRetargeting bool
	PoSNoRetargeting bool

	// PowTargetSpacing is the desired interval between blocks, unit
	// second(s).  RBTPowTargetSpacing applies from ReduceBlocktimeHeight.
	PowTargetSpacing    int64
	RBTPowTargetSpacing int64

	// PowTargetTimespan is the retarget timespan, unit second(s), with
	// the V2 value applying from UpgradeV2Height and the RBT value from
	// ReduceBlocktimeHeight.
	PowTargetTimespan    int64
	PowTargetTimespanV2  int64
	RBTPowTargetTimespan int64

	// LwmaAveragingWindow is the block count N of the linearly-weighted
	// moving average difficulty filter.
	LwmaAveragingWindow int64

	// SeedStartingHeight and SeedInterval schedule the rotation of the
	// seed that parameterizes the memory-hard proof-of-work hash.
	SeedStartingHeight int64
	SeedInterval       int64

	// CheckpointSpan is the depth a sync checkpoint trails the tip.
	CheckpointSpan    int64
	RBTCheckpointSpan int64

	// StakeTimestampMask is the granularity mask applied to stake block
	// timestamps.
	StakeTimestampMask    uint32
	RBTStakeTimestampMask uint32

	// CoinbaseMaturity is the number of blocks before a coinbase output
	// can be spent.
	CoinbaseMaturity    int64
	RBTCoinbaseMaturity int64

	// SubsidyHalvingInterval is the number of blocks between subsidy
	// halvings; the V2 value applies from ReduceBlocktimeHeight.
	SubsidyHalvingInterval   int64
	SubsidyHalvingIntervalV2 int64

	// BlocktimeDownscaleFactor is the ratio between the original and the
	// reduced block spacing, effective from ReduceBlocktimeHeight.
	BlocktimeDownscaleFactor int64

	// Checkpoints ordered from oldest to newest.
	Checkpoints []Checkpoint

	erasOnce sync.Once
	eras     []era
}

// era carries the parameter bundle that takes effect at a consensus era
// boundary.  The accessors resolve the bundle for a height with a single
// ordered lookup instead of re-deriving the thresholds at every call site.
type era struct {
	activationHeight         int64
	targetSpacing            int64
	targetTimespan           int64
	checkpointSpan           int64
	coinbaseMaturity         int64
	stakeTimestampMask       uint32
	subsidyHalvingInterval   int64
	blocktimeDownscaleFactor int64
	posLimit                 *big.Int
}

// buildEras materializes the ordered era table from the raw threshold
// fields.  Boundaries must be configured in ascending order:
// 0 <= UpgradeV2Height <= ReduceBlocktimeHeight.
func (p *Params) buildEras() {
	p.eras = []era{
		{
			activationHeight:         0,
			targetSpacing:            p.PowTargetSpacing,
			targetTimespan:           p.PowTargetTimespan,
			checkpointSpan:           p.CheckpointSpan,
			coinbaseMaturity:         p.CoinbaseMaturity,
			stakeTimestampMask:       p.StakeTimestampMask,
			subsidyHalvingInterval:   p.SubsidyHalvingInterval,
			blocktimeDownscaleFactor: 1,
			posLimit:                 p.PoSLimit,
		},
		{
			activationHeight:         p.UpgradeV2Height,
			targetSpacing:            p.PowTargetSpacing,
			targetTimespan:           p.PowTargetTimespanV2,
			checkpointSpan:           p.CheckpointSpan,
			coinbaseMaturity:         p.CoinbaseMaturity,
			stakeTimestampMask:       p.StakeTimestampMask,
			subsidyHalvingInterval:   p.SubsidyHalvingInterval,
			blocktimeDownscaleFactor: 1,
			posLimit:                 p.UpgradeV2PoSLimit,
		},
		{
			activationHeight:         p.ReduceBlocktimeHeight,
			targetSpacing:            p.RBTPowTargetSpacing,
			targetTimespan:           p.RBTPowTargetTimespan,
			checkpointSpan:           p.RBTCheckpointSpan,
			coinbaseMaturity:         p.RBTCoinbaseMaturity,
			stakeTimestampMask:       p.RBTStakeTimestampMask,
			subsidyHalvingInterval:   p.SubsidyHalvingIntervalV2,
			blocktimeDownscaleFactor: p.BlocktimeDownscaleFactor,
			posLimit:                 p.RBTPoSLimit,
		},
	}
}

// eraAt returns the parameter bundle in force at the given height.  The
// table is scanned in activation order and the last boundary at or below
// the height wins, so coincident boundaries behave like the later era.
func (p *Params) eraAt(height int64) *era {
	p.erasOnce.Do(p.buildEras)
	active := &p.eras[0]
	for i := range p.eras {
		if height >= p.eras[i].activationHeight {
			active = &p.eras[i]
		}
	}
	return active
}

// TargetSpacing returns the desired block interval in force at height,
// unit second(s).
func (p *Params) TargetSpacing(height int64) int64 {
	return p.eraAt(height).targetSpacing
}

// TargetTimespan returns the retarget timespan in force at height, unit
// second(s).
func (p *Params) TargetTimespan(height int64) int64 {
	return p.eraAt(height).targetTimespan
}

// DifficultyAdjustmentInterval returns the number of target spacings per
// retarget timespan at height.
func (p *Params) DifficultyAdjustmentInterval(height int64) int64 {
	return p.TargetTimespan(height) / p.TargetSpacing(height)
}

// CoinbaseMaturityAt returns the coinbase maturity in force at height.
func (p *Params) CoinbaseMaturityAt(height int64) int64 {
	return p.eraAt(height).coinbaseMaturity
}

// CheckpointSpanAt returns the sync-checkpoint span in force at height.
func (p *Params) CheckpointSpanAt(height int64) int64 {
	return p.eraAt(height).checkpointSpan
}

// MaxCheckpointSpan returns the larger of the checkpoint span constants,
// for callers that must bound look-back regardless of era.
func (p *Params) MaxCheckpointSpan() int64 {
	if p.CheckpointSpan <= p.RBTCheckpointSpan {
		return p.RBTCheckpointSpan
	}
	return p.CheckpointSpan
}

// StakeTimestampMaskAt returns the stake timestamp granularity mask in
// force at height.
func (p *Params) StakeTimestampMaskAt(height int64) uint32 {
	return p.eraAt(height).stakeTimestampMask
}

// SubsidyHalvingIntervalAt returns the halving interval in force at height.
func (p *Params) SubsidyHalvingIntervalAt(height int64) int64 {
	return p.eraAt(height).subsidyHalvingInterval
}

// BlocktimeDownscaleFactorAt returns the block spacing downscale factor in
// force at height.
func (p *Params) BlocktimeDownscaleFactorAt(height int64) int64 {
	return p.eraAt(height).blocktimeDownscaleFactor
}

// TimestampDownscaleFactor returns the ratio between the original and the
// reduced stake timestamp granularity in force at height.
func (p *Params) TimestampDownscaleFactor(height int64) int64 {
	if height < p.ReduceBlocktimeHeight {
		return 1
	}
	return int64(p.StakeTimestampMask+1) / int64(p.RBTStakeTimestampMask+1)
}

// SubsidyHalvingWeight returns the height expressed in pre-downscale block
// units, so subsidy halvings keep their wall-clock schedule across the
// block time reduction.
func (p *Params) SubsidyHalvingWeight(height int64) int64 {
	downscale := p.BlocktimeDownscaleFactorAt(height)
	beforeDownscale := int64(0)
	if downscale != 1 {
		beforeDownscale = p.ReduceBlocktimeHeight - 1
	}
	return height - beforeDownscale + beforeDownscale*downscale
}

// ProofLimit returns the highest allowed (easiest) target in force at
// height for the given proof type.
func (p *Params) ProofLimit(height int64, proofType pow.ProofType) *big.Int {
	if proofType == pow.ProofOfStake {
		return p.eraAt(height).posLimit
	}
	return p.PowLimit
}
