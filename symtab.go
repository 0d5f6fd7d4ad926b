// Package symtab is an arena-backed string interner.
//
// Strings are copied once into append-only storage and each distinct value
// gets a dense identifier starting at 0. The interner package holds the
// generic implementation; this package fixes the identifier type for the
// common case.
//
// Example usage:
//
//	tab := symtab.New(1024)
//	usd, _ := tab.Intern("USD")
//	eur, _ := tab.Intern("EUR")
//	name, _ := tab.Resolve(usd) // "USD"
package symtab

import "github.com/robinvdvleuten/symtab/interner"

// ID identifies an interned string.
type ID = uint32

// Table interns strings to IDs.
type Table = interner.Interner[ID]

// New creates a Table whose storage is preallocated to the next power of two >= capacity.
func New(capacity int) *Table {
	return interner.New[ID](interner.WithCapacity(capacity))
}
