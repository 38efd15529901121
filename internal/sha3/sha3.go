// Package sha3 provides the Keccak-f[1600] permutation and the plain
// Keccak-1600 sponge used by CryptoNight.
//
// This is not SHA-3: the sponge uses the original Keccak padding (0x01, with
// 0x80 on the last rate byte) and emits the full 200-byte state rather than a
// truncated digest.
package sha3

import (
	"encoding/binary"
	"math/bits"
)

// rate is 1088 bits, leaving a 512-bit capacity.
const rate = 136

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a,
	0x8000000080008000, 0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009, 0x000000000000008a,
	0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089,
	0x8000000000008003, 0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a, 0x8000000080008081,
	0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var piLane = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

var rotOffsets = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// Keccak1600State resets st and absorbs data into it. After the final
// permutation st holds the full 200-byte sponge state as 25 little-endian
// lanes.
func Keccak1600State(st *[25]uint64, data []byte) {
	for i := range st {
		st[i] = 0
	}

	for len(data) >= rate {
		absorb(st, data[:rate])
		data = data[rate:]
	}

	// Original Keccak padding. The 0x01 and 0x80 share a byte when the
	// message fills the block up to its last byte.
	var last [rate]byte
	copy(last[:], data)
	last[len(data)] = 0x01
	last[rate-1] |= 0x80
	absorb(st, last[:])
}

// Keccak1600Permute applies Keccak-f[1600] to st in place.
func Keccak1600Permute(st *[25]uint64) {
	keccakf(st)
}

func absorb(st *[25]uint64, block []byte) {
	for i := 0; i < rate/8; i++ {
		st[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
	keccakf(st)
}

func keccakf(st *[25]uint64) {
	var bc [5]uint64
	for round := 0; round < 24; round++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				st[j+i] ^= t
			}
		}

		// rho and pi
		t := st[1]
		for i := 0; i < 24; i++ {
			j := piLane[i]
			st[j], t = bits.RotateLeft64(t, rotOffsets[i]), st[j]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			var row [5]uint64
			copy(row[:], st[j:j+5])
			for i := 0; i < 5; i++ {
				st[j+i] = row[i] ^ (^row[(i+1)%5] & row[(i+2)%5])
			}
		}

		// iota
		st[0] ^= roundConstants[round]
	}
}
