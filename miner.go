package cryptonight

import "encoding/binary"

const (
	// maxBlobSize is the size of the block template buffer.
	maxBlobSize = 256

	// nonceOffset is where CryptoNote block templates carry the nonce.
	nonceOffset = 39
)

// TryHash hashes a block template blob with nonce written little-endian at
// byte offset 39 and reports whether the digest meets target: the unsigned
// little-endian word at digest[24:32] must be strictly less than target.
//
// Blobs shorter than 43 bytes cannot carry a nonce and are hashed as-is.
// Blobs longer than 256 bytes are rejected with ErrBlobTooLong and no
// hashing is performed. The digest is returned whether or not it meets
// target.
func (cache *Cache) TryHash(blob []byte, nonce uint32, target uint64) ([]byte, bool, error) {
	if len(blob) > maxBlobSize {
		return nil, false, ErrBlobTooLong
	}

	var input [maxBlobSize]byte
	copy(input[:], blob)
	if len(blob) >= nonceOffset+4 {
		binary.LittleEndian.PutUint32(input[nonceOffset:], nonce)
	}

	sum := cache.Sum(input[:len(blob)])

	return sum, binary.LittleEndian.Uint64(sum[24:32]) < target, nil
}

// TryHash is the pooled convenience form of Cache.TryHash.
func TryHash(blob []byte, nonce uint32, target uint64) ([]byte, bool, error) {
	cache := cachePool.Get().(*Cache)
	sum, ok, err := cache.TryHash(blob, nonce, target)
	cachePool.Put(cache)

	return sum, ok, err
}
