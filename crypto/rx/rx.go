// Copyright (c) 2019-2020 The lume developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rx owns the seed-rotated, memory-hard hashing state used by the
// proof-of-work.  The cache derived from a seed is expensive to build, so a
// Context keeps it alive for the process lifetime and rebuilds it only when
// the seed epoch rotates.
package rx

import (
	"bytes"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/lumeproject/lume/common/hash"
)

const (
	// cacheSize is the byte size of the seed-derived cache.
	cacheSize = 2 * 1024 * 1024

	// cachePasses and cacheMemory are the argon2 fill parameters; the
	// memory cost is in KiB.
	cachePasses = 3
	cacheMemory = 64 * 1024

	// MemoInputSize is the fixed input size the memoizing variant keys
	// its slot on: the serialized block header length.
	MemoInputSize = 144
)

var cacheSalt = []byte("lume/rx/cache/v1")

// CacheBuilder fills a cache from a seed.  The default builder runs the
// argon2 filler; tests substitute cheap counting fakes.
type CacheBuilder func(seed hash.Hash) []byte

// buildCache is the production cache filler.  The seed is keyed in through
// its hex form, matching the seed serialization used on the wire.
func buildCache(seed hash.Hash) []byte {
	return argon2.IDKey([]byte(seed.String()), cacheSalt, cachePasses, cacheMemory, 1, cacheSize)
}

// vm executes the hash program against a cache.  The key schedule binds it
// to the cache it was created from; a vm is never reused across rotations.
type vm struct {
	key [64]byte
}

func newVM(cache []byte) *vm {
	v := &vm{}
	v.key = sha3.Sum512(cache)
	return v
}

func (v *vm) calculateHash(data []byte) hash.Hash {
	h, err := blake2b.New256(v.key[:32])
	if err != nil {
		panic(err)
	}
	h.Write(data)
	var out hash.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Config parameterizes a Context at construction time.
type Config struct {
	// Memoize keeps a single input/output slot so that re-hashing an
	// unchanged header is free.
	Memoize bool

	// NewCache overrides the cache builder.  Nil selects the argon2
	// filler.
	NewCache CacheBuilder
}

// Context owns the seed-dependent hashing state.  All operations on one
// Context serialize on its lock: the cache and vm are neither safe nor
// cheap to duplicate per caller, so contention here is intentional.
//
// The zero seed is a valid seed; the context lazily builds its state on
// the first ComputeHash call whatever the seed is.
type Context struct {
	mtx sync.Mutex

	init bool
	seed hash.Hash

	cache []byte
	vm    *vm

	newCache CacheBuilder

	memoize   bool
	hasMemo   bool
	lastInput [MemoInputSize]byte
	lastHash  hash.Hash
}

// New returns a Context with the given policy.
func New(cfg Config) *Context {
	builder := cfg.NewCache
	if builder == nil {
		builder = buildCache
	}
	return &Context{
		newCache: builder,
		memoize:  cfg.Memoize,
	}
}

// rotate discards the current cache and vm and rebuilds both from the
// loaded seed.  The memo slot is keyed to the old seed's output and is
// invalidated with it.
//
// Callers must hold c.mtx.
func (c *Context) rotate() {
	c.cache = c.newCache(c.seed)
	c.vm = newVM(c.cache)
	c.hasMemo = false
	log.Debug("Hash cache rotated", "seed", c.seed.String())
}

// ComputeHash hashes data[0:length] under the given seed, rotating the
// cache and vm first if the seed differs from the loaded one.  The call
// blocks until any concurrent hash or rotation on this context completes
// and always runs to completion; there is no cancellation.
func (c *Context) ComputeHash(data []byte, length int, seed hash.Hash) hash.Hash {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !c.init {
		c.seed = seed
		c.rotate()
		c.init = true
	} else if c.seed != seed {
		c.seed = seed
		c.rotate()
	}

	if c.memoize && length == MemoInputSize {
		if c.hasMemo && bytes.Equal(data[:MemoInputSize], c.lastInput[:]) {
			return c.lastHash
		}
		result := c.vm.calculateHash(data[:length])
		copy(c.lastInput[:], data[:MemoInputSize])
		c.lastHash = result
		c.hasMemo = true
		return result
	}

	return c.vm.calculateHash(data[:length])
}

// Close releases the cache and vm.  Only meant for process shutdown; a
// closed context rebuilds itself on the next ComputeHash.
func (c *Context) Close() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.cache = nil
	c.vm = nil
	c.hasMemo = false
	c.init = false
}
