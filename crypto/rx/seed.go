// Copyright (c) 2019-2020 The lume developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rx

import (
	"sync"

	"github.com/lumeproject/lume/common/hash"
	"github.com/lumeproject/lume/params"
)

// ChainView is the minimal chain access the seed schedule needs.  BlockHash
// indexes from SeedStartingHeight: index 0 is the block at that height.
type ChainView interface {
	// GenesisHash returns the genesis block hash.
	GenesisHash() hash.Hash

	// BlockHash returns the hash of the indexed block on the active chain.
	BlockHash(index int64) hash.Hash
}

// currentKeyBlock memoizes the last resolved seed process-wide; repeated
// calls at the same epoch position never touch the chain.
var currentKeyBlock = struct {
	sync.Mutex
	anchor int64
	seed   hash.Hash
	valid  bool
}{}

// SeedHash returns the seed in force for a block at the given height.
//
// Seeds rotate on epochs of SeedInterval blocks anchored at
// SeedStartingHeight.  Within an epoch the schedule switches over at
// SwitchKey = SeedStartingHeight mod SeedInterval: past that offset the
// seed anchors to the block opening the current epoch, at or before it to
// the block opening the previous epoch.  The switchover arithmetic is
// consensus; it is kept exactly as deployed even where a different
// schedule might look more natural.
//
// The caller must hold the lock protecting the chain against concurrent
// reorganization for the duration of the call.
func SeedHash(height int64, chain ChainView, par *params.Params) hash.Hash {
	interval := par.SeedInterval
	switchKey := par.SeedStartingHeight % interval

	remainder := height % interval
	currentEpochStart := height - remainder
	previousEpochStart := currentEpochStart - interval

	anchor := previousEpochStart
	if remainder > switchKey {
		anchor = currentEpochStart
	}

	currentKeyBlock.Lock()
	defer currentKeyBlock.Unlock()

	if currentKeyBlock.valid && currentKeyBlock.anchor == anchor {
		return currentKeyBlock.seed
	}

	// Anchors before the schedule start (the first epochs) key off the
	// genesis block.
	var seed hash.Hash
	if anchor < par.SeedStartingHeight {
		seed = chain.GenesisHash()
	} else {
		seed = chain.BlockHash(anchor - par.SeedStartingHeight)
	}

	currentKeyBlock.anchor = anchor
	currentKeyBlock.seed = seed
	currentKeyBlock.valid = true
	return seed
}

// resetSeedCache clears the process-wide seed memo.  Test hook.
func resetSeedCache() {
	currentKeyBlock.Lock()
	defer currentKeyBlock.Unlock()
	currentKeyBlock.anchor = 0
	currentKeyBlock.seed = hash.Hash{}
	currentKeyBlock.valid = false
}
