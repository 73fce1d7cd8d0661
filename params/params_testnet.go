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

// testNetPowLimit is the highest proof of work value a block can
// have for the test network. It is the value 2^240 - 1.
var testNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 240), common.Big1)

var testNetPoSLimit = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 240), common.Big1)

var testNetGenesisHash = hash.MustHexToDecodedHash(
	"0000d3d43bb8e932bfd02f9d4ec4e6a347416c1a5ca5d0e5771c35d4b3bfa56c")

// target time per block unit second(s)
const testTargetTimePerBlock = 128

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name:        "testnet",
	DefaultPort: "18329",

	// Chain parameters
	GenesisHash: &testNetGenesisHash,

	BIP34Height:           0,
	BIP65Height:           0,
	BIP66Height:           0,
	CSVHeight:             0,
	SegwitHeight:          0,
	PoSHeight:             5001,
	UpgradeV2Height:       446320,
	ReduceBlocktimeHeight: 806600,

	RuleChangeActivationThreshold: 1512, // 75% of MinerConfirmationWindow
	MinerConfirmationWindow:       2016,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {
			BitNumber:  28,
			StartTime:  1199145601, // January 1, 2008 UTC
			ExpireTime: 1230767999, // December 31, 2008 UTC
		},
	},

	PowLimit:          testNetPowLimit,
	PowLimitBits:      0x1e00ffff,
	PoSLimit:          testNetPoSLimit,
	UpgradeV2PoSLimit: testNetPoSLimit,
	RBTPoSLimit:       testNetPoSLimit,

	PowAllowMinDifficultyBlocks: true,
	PowNoRetargeting:            false,
	PoSNoRetargeting:            false,

	PowTargetSpacing:    testTargetTimePerBlock,
	RBTPowTargetSpacing: testTargetTimePerBlock / 4,

	PowTargetTimespan:    testTargetTimePerBlock * 15,
	PowTargetTimespanV2:  testTargetTimePerBlock * 32,
	RBTPowTargetTimespan: testTargetTimePerBlock / 4 * 32,

	LwmaAveragingWindow: 90,

	SeedStartingHeight: 520000,
	SeedInterval:       2048,

	CheckpointSpan:    500,
	RBTCheckpointSpan: 2000,

	StakeTimestampMask:    0xf,
	RBTStakeTimestampMask: 0x3,

	CoinbaseMaturity:    500,
	RBTCoinbaseMaturity: 2000,

	SubsidyHalvingInterval:   985500,
	SubsidyHalvingIntervalV2: 3942000,

	BlocktimeDownscaleFactor: 4,

	// Checkpoints ordered from oldest to newest.
	Checkpoints: []Checkpoint{},
}
