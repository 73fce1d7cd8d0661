// Copyright (c) 2019-2020 The lume developers
// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"math/big"

	"github.com/lumeproject/lume/common"
	"github.com/lumeproject/lume/common/hash"
)

// privNetPowLimit is the highest proof of work value a block can
// have for the private test network. It is the value 2^255 - 1.
var privNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 255), common.Big1)

var privNetGenesisHash = hash.MustHexToDecodedHash(
	"665ed5b402ac0b44efc37d8926332994363e8f7d1ab6b1d941aa8c546024a2c1")

// target time per block unit second(s)
const privTargetTimePerBlock = 16

// PrivNetParams defines the network parameters for the private test network.
// This network is similar to the normal test network except it is intended
// for private use within a group of individuals doing simulation testing;
// retargeting is disabled so blocks can be produced on demand.
var PrivNetParams = Params{
	Name:        "privnet",
	DefaultPort: "28329",

	// Chain parameters
	GenesisHash: &privNetGenesisHash,

	BIP34Height:           0,
	BIP65Height:           0,
	BIP66Height:           0,
	CSVHeight:             0,
	SegwitHeight:          0,
	PoSHeight:             0,
	UpgradeV2Height:       0,
	ReduceBlocktimeHeight: 0,

	RuleChangeActivationThreshold: 108, // 75% of MinerConfirmationWindow
	MinerConfirmationWindow:       144,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:  28,
			StartTime:  0,
			ExpireTime: ^uint64(0),
		},
	},

	PowLimit:          privNetPowLimit,
	PowLimitBits:      0x207fffff,
	PoSLimit:          privNetPowLimit,
	UpgradeV2PoSLimit: privNetPowLimit,
	RBTPoSLimit:       privNetPowLimit,

	PowAllowMinDifficultyBlocks: true,
	PowNoRetargeting:            true,
	PoSNoRetargeting:            true,

	PowTargetSpacing:    privTargetTimePerBlock,
	RBTPowTargetSpacing: privTargetTimePerBlock,

	PowTargetTimespan:    privTargetTimePerBlock * 15,
	PowTargetTimespanV2:  privTargetTimePerBlock * 32,
	RBTPowTargetTimespan: privTargetTimePerBlock * 32,

	LwmaAveragingWindow: 5,

	SeedStartingHeight: 0,
	SeedInterval:       64,

	CheckpointSpan:    16,
	RBTCheckpointSpan: 16,

	StakeTimestampMask:    0xf,
	RBTStakeTimestampMask: 0xf,

	CoinbaseMaturity:    16,
	RBTCoinbaseMaturity: 16,

	SubsidyHalvingInterval:   128,
	SubsidyHalvingIntervalV2: 128,

	BlocktimeDownscaleFactor: 1,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{},
}
