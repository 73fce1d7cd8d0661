package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const mainNetGenesisStr = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

func TestHashString(t *testing.T) {
	h := MustHexToDecodedHash(mainNetGenesisStr)

	// String reverses back to the display order.
	assert.Equal(t, mainNetGenesisStr, h.String())

	// The underlying array is little-endian: byte 0 holds the last
	// display byte.
	assert.Equal(t, byte(0x3b), h[0])
	assert.Equal(t, byte(0x4a), h[31])
}

func TestNewHash(t *testing.T) {
	buf := make([]byte, HashSize)
	buf[0] = 0x01
	h, err := NewHash(buf)
	assert.Nil(t, err)
	assert.Equal(t, buf, h.Bytes())

	// Wrong length is an error.
	_, err = NewHash(buf[:HashSize-1])
	assert.NotNil(t, err)

	// CloneBytes copies; mutating the clone leaves the hash alone.
	clone := h.CloneBytes()
	clone[0] = 0xff
	assert.Equal(t, byte(0x01), h[0])
}

func TestNewHashFromStr(t *testing.T) {
	h, err := NewHashFromStr(mainNetGenesisStr)
	assert.Nil(t, err)
	assert.Equal(t, mainNetGenesisStr, h.String())

	// Short strings zero-pad at the end of the hash.
	h, err = NewHashFromStr("1")
	assert.Nil(t, err)
	assert.Equal(t, byte(0x01), h[0])
	assert.Equal(t, ZeroHash[1:], h[1:])

	// Too-long strings are rejected.
	long := make([]byte, MaxHashStringSize+2)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewHashFromStr(string(long))
	assert.Equal(t, ErrHashStrSize, err)
}

func TestIsEqual(t *testing.T) {
	a := MustHexToDecodedHash(mainNetGenesisStr)
	b := MustHexToDecodedHash(mainNetGenesisStr)
	assert.True(t, a.IsEqual(&b))
	assert.False(t, a.IsEqual(&ZeroHash))

	var nilHash *Hash
	assert.False(t, nilHash.IsEqual(&a))
	assert.True(t, nilHash.IsEqual(nil))
}

func TestHashB(t *testing.T) {
	// blake2b-256 of "abc".
	want, _ := hex.DecodeString("bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319")
	assert.Equal(t, want, HashB([]byte("abc")))

	// HashH is the array form of HashB.
	h := HashH([]byte("abc"))
	assert.Equal(t, want, h[:])
}

func TestDoubleHashB(t *testing.T) {
	data := []byte("abc")
	assert.Equal(t, HashB(HashB(data)), DoubleHashB(data))

	h := DoubleHashH(data)
	assert.Equal(t, DoubleHashB(data), h[:])
}
