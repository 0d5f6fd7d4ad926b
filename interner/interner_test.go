package interner

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/symtab/arena"
)

func TestIntern(t *testing.T) {
	t.Run("returns existing id for repeated text", func(t *testing.T) {
		in := New[uint32](WithCapacity(4))
		for _, text := range []string{"dummy_one", "dummy_two", "dummy_three", "test_case"} {
			_, err := in.Intern(text)
			assert.NoError(t, err)
		}

		id, err := in.Intern("test_case")
		assert.NoError(t, err)
		assert.Equal(t, uint32(3), id)
	})

	t.Run("assigns ids in insertion order", func(t *testing.T) {
		in := New[int]()
		words := []string{"hello", "and", "good", "morning"}
		for i, word := range words {
			id, err := in.Intern(word)
			assert.NoError(t, err)
			assert.Equal(t, i, id)
		}

		id, err := in.Intern("good")
		assert.NoError(t, err)
		assert.Equal(t, 2, id)
		assert.Equal(t, 4, in.Len())
	})

	t.Run("empty text is a distinct value", func(t *testing.T) {
		in := New[uint16]()
		a, err := in.Intern("a")
		assert.NoError(t, err)
		empty, err := in.Intern("")
		assert.NoError(t, err)
		again, err := in.InternBytes(nil)
		assert.NoError(t, err)

		assert.Equal(t, uint16(0), a)
		assert.Equal(t, uint16(1), empty)
		assert.Equal(t, empty, again)

		text, err := in.Resolve(empty)
		assert.NoError(t, err)
		assert.Equal(t, "", text)
	})

	t.Run("matches by content, not by reference", func(t *testing.T) {
		in := New[uint32]()
		a := strings.Repeat("ab", 3)
		b := string([]byte("ababab"))

		idA, err := in.Intern(a)
		assert.NoError(t, err)
		idB, err := in.Intern(b)
		assert.NoError(t, err)
		idC, err := in.InternBytes([]byte("ababab"))
		assert.NoError(t, err)

		assert.Equal(t, idA, idB)
		assert.Equal(t, idA, idC)
		assert.Equal(t, 1, in.Len())
	})

	t.Run("copies input bytes", func(t *testing.T) {
		in := New[uint32]()
		buf := []byte("Assets:Cash")
		id, err := in.InternBytes(buf)
		assert.NoError(t, err)

		copy(buf, "XXXXXXXXXXX")
		text, err := in.Resolve(id)
		assert.NoError(t, err)
		assert.Equal(t, "Assets:Cash", text)

		_, ok := in.Lookup("XXXXXXXXXXX")
		assert.False(t, ok)
	})
}

func TestProperties(t *testing.T) {
	inputs := []string{
		"USD", "EUR", "USD", "Assets:Bank", "", "EUR", "Expenses:Food",
		"", "Assets:Bank", "café", "cafe", "USD", "Income:Salary",
	}

	in := New[uint32](WithCapacity(2))
	first := map[string]uint32{}
	var order []uint32

	for _, text := range inputs {
		id, err := in.Intern(text)
		assert.NoError(t, err)

		if prev, ok := first[text]; ok {
			assert.Equal(t, prev, id, "repeated %q", text)
			continue
		}
		first[text] = id
		order = append(order, id)
	}

	t.Run("determinism", func(t *testing.T) {
		for a, idA := range first {
			for b, idB := range first {
				assert.Equal(t, a == b, idA == idB, "%q vs %q", a, b)
			}
		}
	})

	t.Run("density", func(t *testing.T) {
		for i, id := range order {
			assert.Equal(t, uint32(i), id)
		}
		assert.Equal(t, len(first), in.Len())
	})

	t.Run("round trip", func(t *testing.T) {
		for text, id := range first {
			got, err := in.Resolve(id)
			assert.NoError(t, err)
			assert.Equal(t, text, got)
		}
	})

	t.Run("tables agree", func(t *testing.T) {
		n := 0
		for id, text := range in.All() {
			got, ok := in.Lookup(text)
			assert.True(t, ok)
			assert.Equal(t, id, got)
			n++
		}
		assert.Equal(t, in.Len(), n)
		assert.Equal(t, len(in.forward), len(in.reverse))
	})
}

func TestIdempotentInternDoesNotGrow(t *testing.T) {
	in := New[uint32](WithCapacity(1))
	for i := range 100 {
		_, err := in.Intern(fmt.Sprintf("key-%d", i))
		assert.NoError(t, err)
	}

	before := in.Stats()
	for range 10 {
		for i := range 100 {
			id, err := in.Intern(fmt.Sprintf("key-%d", i))
			assert.NoError(t, err)
			assert.Equal(t, uint32(i), id)
		}
	}
	assert.Equal(t, before, in.Stats())
}

func TestInternHitDoesNotAllocate(t *testing.T) {
	in := New[uint32]()
	_, err := in.Intern("Liabilities:CreditCard")
	assert.NoError(t, err)
	key := []byte("Liabilities:CreditCard")

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = in.Intern("Liabilities:CreditCard")
		_, _ = in.InternBytes(key)
	})
	assert.Equal(t, 0.0, allocs)
}

func TestReferenceStability(t *testing.T) {
	in := New[uint32](WithCapacity(1))
	id, err := in.Intern("first")
	assert.NoError(t, err)
	early, err := in.Resolve(id)
	assert.NoError(t, err)
	addr := unsafe.StringData(early)

	for i := range 2000 {
		_, err := in.Intern(fmt.Sprintf("filler-%04d", i))
		assert.NoError(t, err)
	}

	assert.True(t, in.Stats().Arena.Growths > 5)
	assert.Equal(t, "first", early)

	again, err := in.Resolve(id)
	assert.NoError(t, err)
	assert.Equal(t, addr, unsafe.StringData(again))
}

func TestResolve(t *testing.T) {
	in := New[int32]()
	_, err := in.Intern("only")
	assert.NoError(t, err)

	tests := []struct {
		name string
		id   int32
	}{
		{"past end", 1},
		{"far past end", math.MaxInt32},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := in.Resolve(tt.id)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidID))

			var invalid *InvalidIDError
			assert.True(t, errors.As(err, &invalid))
			assert.Equal(t, 1, invalid.Len)
			assert.Contains(t, err.Error(), fmt.Sprint(tt.id))
		})
	}

	t.Run("unsigned past end", func(t *testing.T) {
		in := New[uint64]()
		_, err := in.Resolve(math.MaxUint64)
		assert.True(t, errors.Is(err, ErrInvalidID))
	})
}

func TestIDSpaceExhausted(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		in := New[uint8]()
		for i := range 256 {
			id, err := in.Intern(fmt.Sprint(i))
			assert.NoError(t, err)
			assert.Equal(t, uint8(i), id)
		}

		before := in.Stats()
		_, err := in.Intern("one too many")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrIDSpaceExhausted))
		assert.Equal(t, before, in.Stats())
		assert.Equal(t, 256, len(in.forward))

		// known text still resolves after exhaustion
		id, err := in.Intern("255")
		assert.NoError(t, err)
		assert.Equal(t, uint8(255), id)
	})

	t.Run("int8", func(t *testing.T) {
		in := New[int8]()
		for i := range 128 {
			_, err := in.Intern(fmt.Sprint(i))
			assert.NoError(t, err)
		}
		_, err := in.InternBytes([]byte("overflow"))
		var capErr *CapacityError
		assert.True(t, errors.As(err, &capErr))
		assert.Equal(t, 128, capErr.Limit)
		assert.Equal(t, "overflow", capErr.Text)
	})

	t.Run("max ids option", func(t *testing.T) {
		in := New[uint32](WithMaxIDs(2))
		_, err := in.Intern("a")
		assert.NoError(t, err)
		_, err = in.Intern("b")
		assert.NoError(t, err)
		_, err = in.Intern("c")
		assert.True(t, errors.Is(err, ErrIDSpaceExhausted))
		assert.Equal(t, 2, in.Len())
	})
}

func TestArenaLimit(t *testing.T) {
	in := New[uint32](WithCapacity(8), WithMaxBytes(8))
	_, err := in.Intern("12345678")
	assert.NoError(t, err)

	before := in.Stats()
	_, err = in.Intern("9")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, arena.ErrArenaFull))
	assert.Equal(t, before, in.Stats())

	_, ok := in.Lookup("9")
	assert.False(t, ok)
	assert.Equal(t, len(in.forward), len(in.reverse))
}

func TestArenaLimitBoundsInitialCapacity(t *testing.T) {
	in := New[uint32](WithCapacity(1024), WithMaxBytes(8))
	assert.True(t, in.Stats().Arena.Reserved <= 8)

	_, err := in.Intern(strings.Repeat("x", 36))
	assert.True(t, errors.Is(err, arena.ErrArenaFull))
	assert.Equal(t, 0, in.Len())
	assert.True(t, in.Stats().Arena.Reserved <= 8)
}

func TestMustIntern(t *testing.T) {
	in := New[uint8](WithMaxIDs(1))
	assert.Equal(t, uint8(0), in.MustIntern("x"))
	assert.Equal(t, uint8(0), in.MustIntern("x"))
	assert.Panics(t, func() {
		in.MustIntern("y")
	})
}

func TestAllStopsEarly(t *testing.T) {
	in := New[uint32]()
	for _, s := range []string{"a", "b", "c"} {
		in.MustIntern(s)
	}

	var seen []string
	for _, text := range in.All() {
		seen = append(seen, text)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestIDLimit(t *testing.T) {
	assert.Equal(t, 256, idLimit[uint8]())
	assert.Equal(t, 128, idLimit[int8]())
	assert.Equal(t, 65536, idLimit[uint16]())
	assert.Equal(t, math.MaxInt, idLimit[uint64]())
	assert.Equal(t, math.MaxInt, idLimit[int]())
}
