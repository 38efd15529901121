// Package cryptonight implements the original CryptoNight (cn/0) hash
// function, the memory-hard proof of work of the CryptoNote family.
//
// ref: https://cryptonote.org/cns/cns008.txt
package cryptonight

import (
	"errors"
	"hash"
	"sync"

	"ekyu.moe/cryptonight/groestl"
	"ekyu.moe/cryptonight/jh"
	"github.com/aead/skein"
	"github.com/dchest/blake256"

	"github.com/pilipandr770/cryptonight/internal/aes"
	"github.com/pilipandr770/cryptonight/internal/sha3"
)

// ErrUnsupportedVariant is returned by SlowHash for any variant other than 0,
// or when prehashed input is requested.
var ErrUnsupportedVariant = errors.New("cryptonight: only variant 0 is supported")

// ErrBlobTooLong is returned by TryHash when the mining blob exceeds the
// 256-byte template buffer.
var ErrBlobTooLong = errors.New("cryptonight: mining blob longer than 256 bytes")

// Cache holds the working memory for one hash computation: the 200-byte
// sponge state and the 2 MiB scratchpad, as little-endian uint64 lanes. It
// exists so that the scratchpad can be reused across calls instead of being
// reallocated; the zero value is ready to use.
//
// cache.Sum is not concurrent safe. A Cache allows at most one Sum running;
// for concurrent hashing create one Cache per worker, or manage them with a
// sync.Pool the way the package-level Sum does.
type Cache struct {
	finalState [25]uint64                  // state of keccak1600
	scratchpad [2 * 1024 * 1024 / 8]uint64 // 2 MiB scratchpad for memhard loop
}

var cachePool = sync.Pool{
	New: func() interface{} { return new(Cache) },
}

// Sum calculates a cn/0 digest of data. The return value is exactly 32 bytes
// long.
func (cache *Cache) Sum(data []byte) []byte {
	// as per CNS008 sec.3 Scratchpad Initialization
	sha3.Keccak1600State(&cache.finalState, data)

	key := cache.finalState[:4]
	rkeys := new([40]uint32) // 10 rounds, instead of 14 as in standard AES-256
	aes.CnExpandKey(key, rkeys)
	blocks := make([]uint64, 16)
	copy(blocks, cache.finalState[8:24])

	for i := 0; i < 2*1024*1024/8; i += 16 {
		for j := 0; j < 16; j += 2 {
			aes.CnRounds(blocks[j:], blocks[j:], rkeys)
		}
		copy(cache.scratchpad[i:], blocks)
	}

	// as per CNS008 sec.4 Memory-Hard Loop
	a, b, c := new([2]uint64), new([2]uint64), new([2]uint64)
	product := new([2]uint64) // product in byteMul step
	rk := new([4]uint32)      // a reinterpreted as an AES round key
	addr := uint64(0)         // scratchpad word index

	a[0] = cache.finalState[0] ^ cache.finalState[4]
	a[1] = cache.finalState[1] ^ cache.finalState[5]
	b[0] = cache.finalState[2] ^ cache.finalState[6]
	b[1] = cache.finalState[3] ^ cache.finalState[7]

	for i := 0; i < 524288; i++ {
		addr = (a[0] & 0x1ffff0) >> 3
		rk[0], rk[1] = uint32(a[0]), uint32(a[0]>>32)
		rk[2], rk[3] = uint32(a[1]), uint32(a[1]>>32)
		aes.CnSingleRound(c[:], cache.scratchpad[addr:], rk[:])

		cache.scratchpad[addr] = b[0] ^ c[0]
		cache.scratchpad[addr+1] = b[1] ^ c[1]
		b[0], b[1] = c[0], c[1]

		addr = (b[0] & 0x1ffff0) >> 3
		c[0] = cache.scratchpad[addr]
		c[1] = cache.scratchpad[addr+1]

		byteMul(product, b[0], c[0])
		// byteAdd
		a[0] += product[0]
		a[1] += product[1]

		cache.scratchpad[addr] = a[0]
		cache.scratchpad[addr+1] = a[1]
		a[0] ^= c[0]
		a[1] ^= c[1]
	}

	// as per CNS008 sec.5 Result Calculation
	key = cache.finalState[4:8]
	aes.CnExpandKey(key, rkeys)
	blocks = cache.finalState[8:24]

	for i := 0; i < 2*1024*1024/8; i += 16 {
		for j := 0; j < 16; j += 2 {
			cache.scratchpad[i+j] ^= blocks[j]
			cache.scratchpad[i+j+1] ^= blocks[j+1]
			aes.CnRounds(cache.scratchpad[i+j:], cache.scratchpad[i+j:], rkeys)
		}
		blocks = cache.scratchpad[i : i+16]
	}

	copy(cache.finalState[8:24], blocks)
	sha3.Keccak1600Permute(&cache.finalState)

	return cache.finalHash()
}

// finalHash feeds the permuted state to the terminal hash selected by its
// two lowest bits.
func (cache *Cache) finalHash() []byte {
	var h hash.Hash
	switch cache.finalState[0] & 0x03 {
	case 0x00:
		h = blake256.New()
	case 0x01:
		h = groestl.New256()
	case 0x02:
		h = jh.New256()
	default:
		h = skein.New256(nil)
	}
	h.Write(stateBytes(&cache.finalState))

	return h.Sum(nil)
}

// Sum calculates a cn/0 digest of data. The return value is exactly 32 bytes
// long.
//
// The 2 MiB of working memory is drawn from an internal pool, so repeated
// calls do not churn the allocator. For full control over memory placement
// (one scratchpad per mining worker, say) use a Cache directly.
func Sum(data []byte) []byte {
	cache := cachePool.Get().(*Cache)
	sum := cache.Sum(data)
	cachePool.Put(cache)

	return sum
}
