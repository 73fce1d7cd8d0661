// Copyright (c) 2019-2020 The lume developers
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"

	"github.com/lumeproject/lume/core/types/pow"
	"github.com/lumeproject/lume/params"
)

// lastProofTypeNode returns the most recent node of the given proof type at
// or before the passed node.  The walk stops at the genesis node even when
// it is of the other proof type, mirroring the bootstrap checks which key
// off a nil parent.
func lastProofTypeNode(node BlockNode, proofType pow.ProofType) BlockNode {
	for node != nil && node.Parent() != nil &&
		node.IsProofOfStake() != (proofType == pow.ProofOfStake) {
		node = node.Parent()
	}
	return node
}

// countProofOfStake counts the proof-of-stake nodes above heightScan.
func countProofOfStake(node BlockNode, heightScan int64) int64 {
	found := int64(0)
	for node != nil && node.Parent() != nil && node.Height() > heightScan {
		if node.IsProofOfStake() {
			found++
		}
		node = node.Parent()
	}
	return found
}

// lwmaProofTypeContext indexes the most recent same-proof-type ancestors by
// recency: key 1 is the newest matching block's height, key 2 the next, and
// so on.  Blocks of the other proof type are walked through but not
// counted, which is what lets the hybrid chain run one weighted average per
// proof type.
func lwmaProofTypeContext(node BlockNode, scope int64, proofType pow.ProofType) map[int64]int64 {
	context := make(map[int64]int64)
	idx := int64(0)
	wantStake := proofType == pow.ProofOfStake
	for node != nil && node.Parent() != nil && idx <= scope {
		if node.IsProofOfStake() == wantStake {
			idx++
			context[idx] = node.Height()
		}
		node = node.Parent()
	}
	return context
}

// mulExp returns a * exp(p/q) where |p/q| is small.  big.Int has no
// fractional exponentiation, so the factor is expanded as a truncated
// power series whose terms are computed with integer division.
func mulExp(a *big.Int, p, q int64) *big.Int {
	isNegative := p < 0
	absP := p
	if isNegative {
		absP = -p
	}
	result := new(big.Int).Set(a)
	term := new(big.Int).Set(a)
	pBig := big.NewInt(absP)
	qBig := big.NewInt(q)
	for n := int64(1); term.Sign() > 0; n++ {
		term.Mul(term, pBig)
		term.Div(term, qBig)
		term.Div(term, big.NewInt(n))
		if isNegative && n%2 == 1 {
			result.Sub(result, term)
		} else {
			result.Add(result, term)
		}
	}
	return result
}

// emaRetargetStep nudges the previous target toward the target spacing by
// the ratio of the actual spacing, the per-block retarget step shared by
// the stake bootstrap and the legacy pre-upgrade algorithm.
func emaRetargetStep(prevTarget *big.Int, interval, targetSpacing, actualSpacing int64) *big.Int {
	newTarget := new(big.Int).Set(prevTarget)
	newTarget.Mul(newTarget, big.NewInt((interval-1)*targetSpacing+actualSpacing+actualSpacing))
	newTarget.Div(newTarget, big.NewInt((interval+1)*targetSpacing))
	return newTarget
}

// lwmaCalcNextRequiredDifficulty computes the next target with a linearly
// weighted moving average over the N most recent solve-times of the same
// proof type.  LWMA rises slowly and drops fast when needed, which is the
// response/stability trade this chain wants.
//
// Until the stake side has accumulated a full window of history it falls
// back to a clamped single-step EMA, and a chain shorter than the window
// simply gives the proof limit away.
func lwmaCalcNextRequiredDifficulty(lastNode BlockNode, par *params.Params, proofType pow.ProofType) uint32 {
	height := lastNode.Height()
	targetSpacing := par.TargetSpacing(height + 1)
	n := par.LwmaAveragingWindow

	// k scales the weighted solve-time sum back to a proper average.
	k := n * (n + 1) * targetSpacing / 2

	proofLimit := par.ProofLimit(height+1, proofType)

	// New chains just give away the first N blocks before averaging.
	if height < n+1 {
		return pow.BigToCompact(proofLimit)
	}

	// The chain is hybrid, so index the last N+1 blocks of the same proof
	// type as the context for this calculation.
	context := lwmaProofTypeContext(lastNode, n+1, proofType)

	// Stake activation: run the weighted average only once a full window
	// of stake blocks exists; until then retarget every block with a
	// clamped EMA step.
	if proofType == pow.ProofOfStake && int64(len(context)) < n+1 {
		if countProofOfStake(lastNode, 0) <= n+1 {
			prev := lastProofTypeNode(lastNode, proofType)
			if prev.Parent() == nil {
				// first stake block
				return pow.BigToCompact(proofLimit)
			}
			prevPrev := lastProofTypeNode(prev.Parent(), proofType)
			if prevPrev.Parent() == nil {
				// second stake block
				return pow.BigToCompact(proofLimit)
			}

			actualSpacing := prev.Timestamp() - prevPrev.Timestamp()
			if actualSpacing < 0 {
				actualSpacing = 1
			}
			if actualSpacing > targetSpacing*10 {
				actualSpacing = targetSpacing * 10
			}

			// Retarget every block, moving exponentially toward the
			// target spacing.
			newTarget := emaRetargetStep(pow.CompactToBig(lastNode.Bits()),
				1, targetSpacing, actualSpacing)

			if newTarget.Sign() <= 0 || newTarget.Cmp(proofLimit) > 0 {
				newTarget.Set(proofLimit)
			}
			newBits := pow.BigToCompact(newTarget)
			log.Debug("Difficulty retarget", "height", height+1, "proof", proofType,
				"old bits", fmt.Sprintf("%08x", lastNode.Bits()),
				"new bits", fmt.Sprintf("%08x", newBits))
			return newBits
		}
	}

	// A full window of matching blocks is a precondition here; the stake
	// side was bootstrapped above, so a sparse context means the caller
	// asked for a proof type the chain does not carry enough of.
	if int64(len(context)) < n+1 {
		panic(fmt.Sprintf("difficulty window needs %d %v blocks above height %d, found %d",
			n+1, proofType, height, len(context)))
	}

	// The oldest context entry only anchors the first solve-time.
	previousTimestamp := mustAncestor(lastNode, context[n+1]).Timestamp()

	avgTarget := new(big.Int)
	sumWeightedSolvetimes := int64(0)
	j := int64(0)

	// Loop through the N most recent blocks of the same proof type, oldest
	// first so the most recent solve-time carries weight N.
	for i := n; i > 0; i-- {
		block := mustAncestor(lastNode, context[i])

		// Prevent negative solve-times by pushing a non-advancing
		// timestamp one second past the running previous one.  Do not
		// clamp the solve-time to zero instead; that collapses the
		// target on new chains.
		thisTimestamp := previousTimestamp + 1
		if block.Timestamp() > previousTimestamp {
			thisTimestamp = block.Timestamp()
		}

		// A 6*T limit prevents large difficulty drops from long
		// solve-times.
		solvetime := thisTimestamp - previousTimestamp
		if solvetime > 6*targetSpacing {
			solvetime = 6 * targetSpacing
		}

		previousTimestamp = thisTimestamp

		// Give linearly higher weight to more recent solve-times.
		j++
		sumWeightedSolvetimes += solvetime * j

		// Dividing by N*k here keeps the accumulating average pre-scaled
		// and prevents the final multiplication from overflowing.
		target := pow.CompactToBig(block.Bits())
		target.Div(target, big.NewInt(n))
		target.Div(target, big.NewInt(k))
		avgTarget.Add(avgTarget, target)
	}

	nextTarget := avgTarget.Mul(avgTarget, big.NewInt(sumWeightedSolvetimes))
	if nextTarget.Cmp(proofLimit) > 0 {
		nextTarget.Set(proofLimit)
	}

	nextBits := pow.BigToCompact(nextTarget)
	log.Debug("Difficulty retarget", "height", height+1, "proof", proofType,
		"old bits", fmt.Sprintf("%08x", lastNode.Bits()),
		"new bits", fmt.Sprintf("%08x", nextBits))
	return nextBits
}

// CalcNextRequiredDifficulty calculates the required difficulty, in compact
// form, for the block after lastNode for the given proof type.  newBlockTime
// is the candidate block's timestamp in unix seconds.
//
// Missing history is never an error: the genesis, first and second blocks of
// a proof type receive the era proof limit.
func CalcNextRequiredDifficulty(lastNode BlockNode, newBlockTime int64, par *params.Params, proofType pow.ProofType) uint32 {
	height := int64(0)
	if lastNode != nil {
		height = lastNode.Height() + 1
	}
	targetLimit := pow.BigToCompact(par.ProofLimit(height, proofType))

	// Frozen difficulty for regression-style networks: reuse the most
	// recent same-proof-type bits regardless of history depth.
	if proofType == pow.ProofOfStake && par.PoSNoRetargeting ||
		proofType == pow.ProofOfWork && par.PowNoRetargeting {
		if lastNode == nil {
			return targetLimit
		}
		return lastProofTypeNode(lastNode, proofType).Bits()
	}

	// genesis block
	if lastNode == nil {
		return targetLimit
	}

	// first block of the proof type
	prev := lastProofTypeNode(lastNode, proofType)
	if prev.Parent() == nil {
		return targetLimit
	}

	// second block of the proof type
	prevPrev := lastProofTypeNode(prev.Parent(), proofType)
	if prevPrev.Parent() == nil {
		return targetLimit
	}

	if par.PowAllowMinDifficultyBlocks {
		// Special difficulty rule for the test network: once more than
		// twice the target spacing has elapsed, a minimum-difficulty
		// block may be mined.
		if newBlockTime > lastNode.Timestamp()+par.TargetSpacing(height)*2 {
			return targetLimit
		}
		// Otherwise return the difficulty of the last block that is not
		// itself a minimum-difficulty exception on a retarget boundary.
		node := lastNode
		for node.Parent() != nil &&
			node.Height()%par.DifficultyAdjustmentInterval(node.Height()) != 0 &&
			node.Bits() == targetLimit {
			node = node.Parent()
		}
		return node.Bits()
	}

	return lwmaCalcNextRequiredDifficulty(prev, par, proofType)
}

// CalcNextRequiredDifficultyLegacy is the per-block retarget used where the
// weighted average does not apply.  Before UpgradeV2Height it is the pure
// ratio EMA; from that height the adjustment follows target*exp(p/q) with
// the deviation scaled by the stake timestamp granularity.
//
// firstBlockTime is the timestamp anchoring the actual spacing measurement.
func CalcNextRequiredDifficultyLegacy(lastNode BlockNode, firstBlockTime int64, par *params.Params, proofType pow.ProofType) uint32 {
	if proofType == pow.ProofOfStake {
		if par.PoSNoRetargeting {
			return lastNode.Bits()
		}
	} else {
		if par.PowNoRetargeting {
			return lastNode.Bits()
		}
	}

	height := lastNode.Height() + 1
	targetSpacing := par.TargetSpacing(height)
	actualSpacing := lastNode.Timestamp() - firstBlockTime
	targetLimit := par.ProofLimit(height, proofType)
	interval := par.DifficultyAdjustmentInterval(height)

	newTarget := pow.CompactToBig(lastNode.Bits())
	if height < par.UpgradeV2Height {
		if actualSpacing < 0 {
			actualSpacing = targetSpacing
		}
		if actualSpacing > targetSpacing*10 {
			actualSpacing = targetSpacing * 10
		}
		newTarget = emaRetargetStep(newTarget, interval, targetSpacing, actualSpacing)
	} else {
		if actualSpacing < 0 {
			actualSpacing = targetSpacing
		}
		if actualSpacing > targetSpacing*20 {
			actualSpacing = targetSpacing * 20
		}
		granularity := int64(par.StakeTimestampMaskAt(height)) + 1
		newTarget = mulExp(newTarget,
			2*(actualSpacing-targetSpacing)/granularity,
			(interval+1)*targetSpacing/granularity)
	}

	if newTarget.Sign() <= 0 || newTarget.Cmp(targetLimit) > 0 {
		newTarget.Set(targetLimit)
	}
	newBits := pow.BigToCompact(newTarget)
	log.Debug("Difficulty retarget", "height", height, "proof", proofType,
		"old bits", fmt.Sprintf("%08x", lastNode.Bits()),
		"new bits", fmt.Sprintf("%08x", newBits))
	return newBits
}
