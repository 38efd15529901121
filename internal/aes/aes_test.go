package aes

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// gmul is an independent GF(2^8) multiply used to cross-check the xtime
// shortcuts in MixColumns.
func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// refSingleRound is a byte-level reimplementation of the round, written
// directly from the textbook operations rather than the fused form the
// package uses.
func refSingleRound(in, key [16]byte) [16]byte {
	var t, out [16]byte

	for i, v := range in {
		t[i] = sbox[v]
	}

	// ShiftRows on the column-major state: row r rotates left by r.
	var s [16]byte
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*c] = t[r+4*((c+r)%4)]
		}
	}

	mds := [4][4]byte{
		{2, 3, 1, 1},
		{1, 2, 3, 1},
		{1, 1, 2, 3},
		{3, 1, 1, 2},
	}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var v byte
			for k := 0; k < 4; k++ {
				v ^= gmul(mds[r][k], s[4*c+k])
			}
			out[4*c+r] = v ^ key[4*c+r]
		}
	}
	return out
}

// refExpandKey runs the byte-oriented Rijndael schedule for the first 160
// bytes of an AES-256 expansion.
func refExpandKey(key [32]byte) [160]byte {
	rcon := []byte{0x01, 0x02, 0x04, 0x08}
	var out [160]byte
	copy(out[:], key[:])

	for n := 32; n < 160; n += 4 {
		var temp [4]byte
		copy(temp[:], out[n-4:n])

		switch n % 32 {
		case 0:
			t0 := temp[0]
			temp[0] = sbox[temp[1]] ^ rcon[n/32-1]
			temp[1] = sbox[temp[2]]
			temp[2] = sbox[temp[3]]
			temp[3] = sbox[t0]
		case 16:
			for i := range temp {
				temp[i] = sbox[temp[i]]
			}
		}

		for i := 0; i < 4; i++ {
			out[n+i] = out[n-32+i] ^ temp[i]
		}
	}
	return out
}

func blockToWords(b [16]byte) [2]uint64 {
	return [2]uint64{
		binary.LittleEndian.Uint64(b[0:]),
		binary.LittleEndian.Uint64(b[8:]),
	}
}

func TestSboxSpotValues(t *testing.T) {
	require.Equal(t, byte(0x63), sbox[0x00])
	require.Equal(t, byte(0x7c), sbox[0x01])
	require.Equal(t, byte(0xca), sbox[0x10])
	require.Equal(t, byte(0x16), sbox[0xff])

	seen := make(map[byte]bool)
	for _, v := range sbox {
		seen[v] = true
	}
	require.Len(t, seen, 256)
}

func TestXtime(t *testing.T) {
	for i := 0; i < 256; i++ {
		require.Equal(t, gmul(byte(i), 2), xtime(byte(i)), "xtime(%#x)", i)
	}
}

func TestCnSingleRoundAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		var in, key [16]byte
		rng.Read(in[:])
		rng.Read(key[:])

		src := blockToWords(in)
		kw := blockToWords(key)
		rkey := []uint32{
			uint32(kw[0]), uint32(kw[0] >> 32),
			uint32(kw[1]), uint32(kw[1] >> 32),
		}

		var dst [2]uint64
		CnSingleRound(dst[:], src[:], rkey)
		require.Equal(t, blockToWords(refSingleRound(in, key)), dst)
	}
}

func TestCnExpandKeyAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		var keyBytes [32]byte
		rng.Read(keyBytes[:])

		key := []uint64{
			binary.LittleEndian.Uint64(keyBytes[0:]),
			binary.LittleEndian.Uint64(keyBytes[8:]),
			binary.LittleEndian.Uint64(keyBytes[16:]),
			binary.LittleEndian.Uint64(keyBytes[24:]),
		}
		rkeys := new([40]uint32)
		CnExpandKey(key, rkeys)

		want := refExpandKey(keyBytes)
		for w := 0; w < 40; w++ {
			require.Equal(t, binary.LittleEndian.Uint32(want[w*4:]), rkeys[w], "word %d", w)
		}
	}
}

func TestCnRoundsComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	var keyBytes [32]byte
	rng.Read(keyBytes[:])
	key := []uint64{
		binary.LittleEndian.Uint64(keyBytes[0:]),
		binary.LittleEndian.Uint64(keyBytes[8:]),
		binary.LittleEndian.Uint64(keyBytes[16:]),
		binary.LittleEndian.Uint64(keyBytes[24:]),
	}
	rkeys := new([40]uint32)
	CnExpandKey(key, rkeys)

	block := [2]uint64{rng.Uint64(), rng.Uint64()}

	var got [2]uint64
	CnRounds(got[:], block[:], rkeys)

	want := block
	for r := 0; r < 40; r += 4 {
		CnSingleRound(want[:], want[:], rkeys[r:r+4])
	}
	require.Equal(t, want, got)
}
