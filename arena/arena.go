// Package arena provides append-only text storage for the interner.
//
// An Arena copies text into a single active buffer. When the active buffer
// cannot hold the next piece of text, a larger buffer replaces it and the old
// one is retired: kept alive and never written to again. Strings handed out
// by CopyIn therefore point at memory that never moves and is never reused
// for as long as the Arena exists.
package arena

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"
)

// ErrArenaFull is returned when a growth would exceed the configured byte limit.
var ErrArenaFull = errors.New("arena: storage limit reached")

// Stats describes the storage held by an Arena.
type Stats struct {
	Used     int // bytes copied in across all buffers
	Reserved int // capacity of the active buffer plus all retired buffers
	Retired  int // number of retired buffers
	Growths  int // number of times the active buffer was replaced
}

// Option configures an Arena.
type Option func(*Arena)

// WithMaxBytes bounds the total reserved capacity. A value <= 0 disables the limit.
func WithMaxBytes(n int) Option {
	return func(a *Arena) {
		a.maxBytes = n
	}
}

// Arena is a growable append-only byte store. It is not safe for concurrent use.
type Arena struct {
	active   []byte
	retired  [][]byte
	maxBytes int

	used     int
	reserved int
	growths  int
}

// New creates an Arena whose first buffer holds the next power of two >= capacity bytes.
// With a byte limit the first buffer is shrunk to the largest power of two
// that fits within it.
func New(capacity int, opts ...Option) *Arena {
	a := &Arena{}
	for _, opt := range opts {
		opt(a)
	}

	size := nextPowerOfTwo(max(capacity, 0))
	if a.maxBytes > 0 {
		size = min(size, prevPowerOfTwo(a.maxBytes))
	}
	a.active = make([]byte, 0, size)
	a.reserved = size

	return a
}

// CopyIn copies text into the arena and returns a string backed by the copy.
// The returned string stays valid and unchanged for the lifetime of the Arena.
// On error the arena is left exactly as it was.
func (a *Arena) CopyIn(text []byte) (string, error) {
	if len(text) == 0 {
		return "", nil
	}

	if cap(a.active)-len(a.active) < len(text) {
		if err := a.grow(len(text)); err != nil {
			return "", err
		}
	}

	start := len(a.active)
	a.active = append(a.active, text...)
	a.used += len(text)

	return unsafe.String(&a.active[start], len(text)), nil
}

// CopyInString is CopyIn for string input.
func (a *Arena) CopyInString(text string) (string, error) {
	return a.CopyIn(unsafe.Slice(unsafe.StringData(text), len(text)))
}

// grow retires the active buffer and replaces it with one large enough for n more bytes.
func (a *Arena) grow(n int) error {
	size := nextPowerOfTwo(max(cap(a.active), n) + 1)
	if size <= 0 {
		return fmt.Errorf("%w: cannot allocate buffer for %d bytes", ErrArenaFull, n)
	}
	if a.maxBytes > 0 && a.reserved+size > a.maxBytes {
		return fmt.Errorf("%w: %d of %d bytes reserved, need %d more", ErrArenaFull, a.reserved, a.maxBytes, size)
	}

	a.retired = append(a.retired, a.active)
	a.active = make([]byte, 0, size)
	a.reserved += size
	a.growths++

	return nil
}

// Len returns the number of bytes in the active buffer.
func (a *Arena) Len() int {
	return len(a.active)
}

// Cap returns the capacity of the active buffer.
func (a *Arena) Cap() int {
	return cap(a.active)
}

// Stats returns a snapshot of the arena's storage usage.
func (a *Arena) Stats() Stats {
	return Stats{
		Used:     a.used,
		Reserved: a.reserved,
		Retired:  len(a.retired),
		Growths:  a.growths,
	}
}

// prevPowerOfTwo returns the largest power of two <= n, for n >= 1.
func prevPowerOfTwo(n int) int {
	return 1 << (bits.Len(uint(n)) - 1)
}

// nextPowerOfTwo returns the smallest power of two >= n, with 0 mapping to 1.
// It returns 0 when the result does not fit in an int.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	shift := bits.Len(uint(n - 1))
	if shift >= bits.UintSize-1 {
		return 0
	}
	return 1 << shift
}
