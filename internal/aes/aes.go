// Package aes implements the modified AES primitives CryptoNight builds its
// scratchpad on: a single round keyed directly by the caller (no key
// schedule) and a ten-round pseudo encryption with externally supplied round
// keys. These are not a standard AES cipher
// and are of no use outside the slow hash.
//
// Blocks are handled as pairs of little-endian uint64 lanes, round keys as
// little-endian uint32 words, matching the layout of the caller's state and
// scratchpad.
package aes

import "encoding/binary"

var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

// Rcon values for the four RotWord positions a 10-round schedule reaches.
var rcon = [4]uint32{0x01, 0x02, 0x04, 0x08}

// xtime multiplies by 2 in GF(2^8) modulo x^8+x^4+x^3+x+1.
func xtime(x byte) byte {
	return x<<1 ^ (x>>7)*0x1b
}

func subWord(w uint32) uint32 {
	return uint32(sbox[w&0xff]) |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>24])<<24
}

// CnExpandKey expands a 256-bit key, given as 4 little-endian uint64 lanes,
// into the first 10 round keys of the Rijndael schedule. Standard AES-256
// would run the schedule out to 15 round keys; the pseudo round never reads
// past the tenth.
func CnExpandKey(key []uint64, rkeys *[40]uint32) {
	for i := 0; i < 4; i++ {
		rkeys[2*i] = uint32(key[i])
		rkeys[2*i+1] = uint32(key[i] >> 32)
	}
	for i := 8; i < 40; i++ {
		t := rkeys[i-1]
		switch i % 8 {
		case 0:
			// RotWord + SubWord + Rcon
			t = subWord(t>>8|t<<24) ^ rcon[i/8-1]
		case 4:
			// the AES-256 specific extra SubWord
			t = subWord(t)
		}
		rkeys[i] = rkeys[i-8] ^ t
	}
}

// CnSingleRound performs one AES round (SubBytes, ShiftRows, MixColumns,
// AddRoundKey) on the 16-byte block held in src[0:2], writing to dst[0:2].
// The round key is supplied by the caller rather than derived from any
// schedule.
func CnSingleRound(dst, src []uint64, rkey []uint32) {
	var in, s [16]byte
	binary.LittleEndian.PutUint64(in[0:], src[0])
	binary.LittleEndian.PutUint64(in[8:], src[1])

	// SubBytes and ShiftRows in one pass. The state is column-major
	// (index = row + 4*col); rows 0-3 rotate left by 0-3 positions.
	s[0], s[1], s[2], s[3] = sbox[in[0]], sbox[in[5]], sbox[in[10]], sbox[in[15]]
	s[4], s[5], s[6], s[7] = sbox[in[4]], sbox[in[9]], sbox[in[14]], sbox[in[3]]
	s[8], s[9], s[10], s[11] = sbox[in[8]], sbox[in[13]], sbox[in[2]], sbox[in[7]]
	s[12], s[13], s[14], s[15] = sbox[in[12]], sbox[in[1]], sbox[in[6]], sbox[in[11]]

	// MixColumns: each column times the circulant matrix (2 3 1 1).
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		x0, x1, x2, x3 := xtime(a0), xtime(a1), xtime(a2), xtime(a3)
		s[c] = x0 ^ x1 ^ a1 ^ a2 ^ a3
		s[c+1] = a0 ^ x1 ^ x2 ^ a2 ^ a3
		s[c+2] = a0 ^ a1 ^ x2 ^ x3 ^ a3
		s[c+3] = x0 ^ a0 ^ a1 ^ a2 ^ x3
	}

	dst[0] = binary.LittleEndian.Uint64(s[0:]) ^ (uint64(rkey[0]) | uint64(rkey[1])<<32)
	dst[1] = binary.LittleEndian.Uint64(s[8:]) ^ (uint64(rkey[2]) | uint64(rkey[3])<<32)
}

// CnRounds applies CnSingleRound ten times, feeding successive round keys
// from rkeys. This is the "pseudo round" the scratchpad initialization and
// reduction run over every block.
func CnRounds(dst, src []uint64, rkeys *[40]uint32) {
	CnSingleRound(dst, src, rkeys[0:4])
	for r := 4; r < 40; r += 4 {
		CnSingleRound(dst, dst, rkeys[r:r+4])
	}
}
