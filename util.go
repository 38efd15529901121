package cryptonight

import (
	"encoding/binary"
	"math/bits"
)

// byteMul stores the full 128-bit product of a and b, high half first.
func byteMul(product *[2]uint64, a, b uint64) {
	product[0], product[1] = bits.Mul64(a, b)
}

// stateBytes serializes the sponge state to its canonical little-endian
// byte form.
func stateBytes(st *[25]uint64) []byte {
	buf := make([]byte, 200)
	for i, v := range st {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}

	return buf
}
