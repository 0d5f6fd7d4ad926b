// Package interner deduplicates strings and assigns each distinct value a
// dense identifier.
//
// The first distinct string gets identifier 0, the next 1, and so on. Text is
// copied once into an arena.Arena; both lookup tables hold views into that
// storage, so repeated lookups of a known string never allocate.
//
// Example usage:
//
//	in := interner.New[uint32](interner.WithCapacity(4096))
//	id, err := in.Intern("Assets:Bank:Checking")
//	if err != nil {
//		return err
//	}
//	name, err := in.Resolve(id)
package interner

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/robinvdvleuten/symtab/arena"
)

// Stats describes the contents of an Interner.
type Stats struct {
	Strings int
	Arena   arena.Stats
}

// Interner maps strings to dense identifiers of type I and back.
// It is not safe for concurrent use; see Sync.
type Interner[I constraints.Integer] struct {
	forward map[string]I
	reverse []string
	arena   *arena.Arena
	limit   int
}

// New creates an empty Interner.
func New[I constraints.Integer](opts ...Option) *Interner[I] {
	cfg := newConfig(opts)

	limit := idLimit[I]()
	if cfg.MaxIDs > 0 {
		limit = min(limit, cfg.MaxIDs)
	}

	return &Interner[I]{
		forward: make(map[string]I, cfg.Capacity),
		reverse: make([]string, 0, cfg.Capacity),
		arena:   arena.New(cfg.Capacity, arena.WithMaxBytes(cfg.MaxBytes)),
		limit:   limit,
	}
}

// Intern returns the identifier for text, assigning the next one if text has
// not been seen before. A failed call leaves the Interner unchanged.
func (in *Interner[I]) Intern(text string) (I, error) {
	if id, ok := in.forward[text]; ok {
		return id, nil
	}
	if in.full() {
		return 0, &CapacityError{Limit: in.limit, Text: text}
	}

	stored, err := in.arena.CopyInString(text)
	if err != nil {
		return 0, fmt.Errorf("interner: cannot store %d bytes: %w", len(text), err)
	}
	return in.insert(stored), nil
}

// InternBytes is Intern for byte input. Lookups of known text do not allocate.
func (in *Interner[I]) InternBytes(text []byte) (I, error) {
	if id, ok := in.forward[string(text)]; ok {
		return id, nil
	}
	if in.full() {
		return 0, &CapacityError{Limit: in.limit, Text: string(text)}
	}

	stored, err := in.arena.CopyIn(text)
	if err != nil {
		return 0, fmt.Errorf("interner: cannot store %d bytes: %w", len(text), err)
	}
	return in.insert(stored), nil
}

// MustIntern is like Intern but panics on error.
// It is meant for building tables of known strings at init time.
func (in *Interner[I]) MustIntern(text string) I {
	id, err := in.Intern(text)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup returns the identifier for text without interning it.
func (in *Interner[I]) Lookup(text string) (I, bool) {
	id, ok := in.forward[text]
	return id, ok
}

// Resolve returns the text that produced id.
func (in *Interner[I]) Resolve(id I) (string, error) {
	if id < 0 || uint64(id) >= uint64(len(in.reverse)) {
		return "", &InvalidIDError{ID: id, Len: len(in.reverse)}
	}
	return in.reverse[int(id)], nil
}

// Len returns the number of distinct strings.
func (in *Interner[I]) Len() int {
	return len(in.reverse)
}

// All iterates over every interned string in identifier order.
func (in *Interner[I]) All() iter.Seq2[I, string] {
	return func(yield func(I, string) bool) {
		for i, text := range in.reverse {
			if !yield(I(i), text) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the Interner's size.
func (in *Interner[I]) Stats() Stats {
	return Stats{
		Strings: len(in.reverse),
		Arena:   in.arena.Stats(),
	}
}

func (in *Interner[I]) full() bool {
	return len(in.reverse) >= in.limit
}

func (in *Interner[I]) insert(stored string) I {
	id := I(len(in.reverse))
	in.forward[stored] = id
	in.reverse = append(in.reverse, stored)
	return id
}

// idLimit returns how many non-negative values I can hold, capped at math.MaxInt.
func idLimit[I constraints.Integer]() int {
	var zero I
	size := int(unsafe.Sizeof(zero)) * 8
	if ^zero < 0 {
		size--
	}
	if size >= bits.UintSize-1 {
		return math.MaxInt
	}
	return 1 << size
}
