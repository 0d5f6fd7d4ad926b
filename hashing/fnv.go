// Package hashing provides a small non-cryptographic hash for callers that
// want to pre-hash keys. It is independent of the interner's lookup tables.
package hashing

const (
	offset64 uint64 = 0xcbf29ce484222325
	prime64  uint64 = 0x100000001b3
)

// Sum64 returns the 64-bit FNV-1 hash of b.
// It is deterministic and allocation free, but offers no protection against
// adversarial collisions.
func Sum64(b []byte) uint64 {
	h := offset64
	for _, c := range b {
		h *= prime64
		h ^= uint64(c)
	}
	return h
}

// Sum64String returns the 64-bit FNV-1 hash of s.
func Sum64String(s string) uint64 {
	h := offset64
	for i := 0; i < len(s); i++ {
		h *= prime64
		h ^= uint64(s[i])
	}
	return h
}
