// Copyright (c) 2019-2020 The lume developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
)

// BlockNode is the read-only view of a block's metadata that the difficulty
// algorithms traverse.  It is implemented by the chain index; the consensus
// core never owns or mutates nodes.
//
// Heights are non-negative and strictly increasing along ancestry, and
// following Parent from any node terminates at a genesis node whose Parent
// is nil.  Timestamps may locally decrease; the difficulty filter corrects
// for that.  Ancestor must resolve by height without an O(depth) pointer
// walk so the averaging window stays cheap on deep chains.
//
// Callers must hold whatever lock protects the chain index against
// concurrent reorganization for the duration of any traversal.
type BlockNode interface {
	// Height returns the block height.
	Height() int64

	// Timestamp returns the block time in unix seconds.
	Timestamp() int64

	// Bits returns the compact encoded difficulty target of the block.
	Bits() uint32

	// IsProofOfStake reports whether the block carries a stake proof
	// rather than a work proof.
	IsProofOfStake() bool

	// Parent returns the parent node, or nil for the genesis node.
	Parent() BlockNode

	// Ancestor returns the ancestor at the given height, or nil if the
	// height is not on this node's ancestry.
	Ancestor(height int64) BlockNode
}

// mustAncestor resolves an ancestor the caller has already proven to exist.
// A miss is a violated precondition (the averaging window was entered
// without sufficient depth), not a recoverable condition.
func mustAncestor(node BlockNode, height int64) BlockNode {
	ancestor := node.Ancestor(height)
	if ancestor == nil {
		panic(fmt.Sprintf("no ancestor at height %d from height %d",
			height, node.Height()))
	}
	return ancestor
}
