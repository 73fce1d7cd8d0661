// Copyright (c) 2019-2020 The lume developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

// ProofType identifies how a block proves its right to extend the chain.
// The chain is hybrid: blocks alternate freely between proof-of-work and
// proof-of-stake, and difficulty is tracked per proof type.
type ProofType byte

const (
	ProofOfWork ProofType = iota
	ProofOfStake
)

var proofTypeNames = map[ProofType]string{
	ProofOfWork:  "pow",
	ProofOfStake: "pos",
}

// String returns the human-readable name of the proof type.
func (pt ProofType) String() string {
	name, ok := proofTypeNames[pt]
	if !ok {
		return "unknown"
	}
	return name
}
