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

// mainPowLimit is the highest proof of work value a block can
// have for the main network. It is the value 2^224 - 1.
var mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 224), common.Big1)

// mainPoSLimit is the highest proof of stake target at launch, 2^224 - 1.
var mainPoSLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 224), common.Big1)

// mainUpgradeV2PoSLimit applies from the second upgrade, 2^232 - 1.
var mainUpgradeV2PoSLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 232), common.Big1)

// mainRBTPoSLimit applies from the reduced block time regime, 2^236 - 1.
var mainRBTPoSLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 236), common.Big1)

var mainNetGenesisHash = hash.MustHexToDecodedHash(
	"0000e803ee215c0684ca0d2f9220594d3f828617972aad66feae7f9d561ba74b")

// target time per block unit second(s)
const mainTargetTimePerBlock = 128

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:        "mainnet",
	DefaultPort: "8329",

	// Chain parameters
	GenesisHash: &mainNetGenesisHash,

	BIP34Height:           0,
	BIP65Height:           0,
	BIP66Height:           0,
	CSVHeight:             0,
	SegwitHeight:          0,
	PoSHeight:             5001,
	UpgradeV2Height:       466600,
	ReduceBlocktimeHeight: 845000,

	RuleChangeActivationThreshold: 1916, // 95% of MinerConfirmationWindow
	MinerConfirmationWindow:       2016,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:  28,
			StartTime:  1199145601, // January 1, 2008 UTC
			ExpireTime: 1230767999, // December 31, 2008 UTC
		},
	},

	PowLimit:          mainPowLimit,
	PowLimitBits:      0x1d00ffff,
	PoSLimit:          mainPoSLimit,
	UpgradeV2PoSLimit: mainUpgradeV2PoSLimit,
	RBTPoSLimit:       mainRBTPoSLimit,

	PowAllowMinDifficultyBlocks: false,
	PowNoRetargeting:            false,
	PoSNoRetargeting:            false,

	PowTargetSpacing:    mainTargetTimePerBlock,
	RBTPowTargetSpacing: mainTargetTimePerBlock / 4,

	PowTargetTimespan:    mainTargetTimePerBlock * 15,
	PowTargetTimespanV2:  mainTargetTimePerBlock * 32,
	RBTPowTargetTimespan: mainTargetTimePerBlock / 4 * 32,

	LwmaAveragingWindow: 90,

	SeedStartingHeight: 600000,
	SeedInterval:       2048,

	CheckpointSpan:    500,
	RBTCheckpointSpan: 2000,

	StakeTimestampMask:    0xf, // 16 second granularity
	RBTStakeTimestampMask: 0x3, // 4 second granularity

	CoinbaseMaturity:    500,
	RBTCoinbaseMaturity: 2000,

	SubsidyHalvingInterval:   985500,
	SubsidyHalvingIntervalV2: 3942000,

	BlocktimeDownscaleFactor: 4,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{},
}
