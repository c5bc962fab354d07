// Package symtab implements the chained hash table shared by the lexeme
// registry and the declared-variable table.
package symtab

import (
	"slices"

	"github.com/you-not-fish/numc/internal/syntax"
)

// Buckets is the fixed number of hash buckets.
const Buckets = 100

// Entry is one occupied slot of a Table.
type Entry struct {
	Text  string      // lexeme text, unique within a table
	Kind  syntax.Kind // kind of the token that created the entry
	Index int         // insertion index, assigned at first insertion
	Type  string      // declared type, "" when none
}

// Table is a hash table with a fixed number of buckets and chaining.
// Each bucket keeps its entries in insertion order; a lookup scans the
// chain from the head, so the first entry with a given text wins.
//
// Indices are handed out monotonically and never reused, which gives a
// total order over entries independent of the bucket layout.
//
// A Table is not safe for concurrent use.
type Table struct {
	buckets [Buckets][]*Entry
	next    int // next insertion index
	n       int // number of entries
}

// New creates an empty table whose indices start at 0.
func New() *Table {
	return &Table{}
}

// Hash returns the bucket of text: h = (h*31 + b) mod Buckets over its bytes.
func Hash(text string) int {
	h := 0
	for i := 0; i < len(text); i++ {
		h = (h*31 + int(text[i])) % Buckets
	}
	return h
}

// lookup returns the entry for text, or nil.
func (t *Table) lookup(text string) *Entry {
	for _, e := range t.buckets[Hash(text)] {
		if e.Text == text {
			return e
		}
	}
	return nil
}

// add appends a new entry for tok to the tail of its bucket.
func (t *Table) add(tok syntax.Token, typ string) *Entry {
	e := &Entry{
		Text:  tok.Text(),
		Kind:  tok.Kind(),
		Index: t.next,
		Type:  typ,
	}
	b := Hash(e.Text)
	t.buckets[b] = append(t.buckets[b], e)
	t.next++
	t.n++
	return e
}

// Insert records tok's text and returns its insertion index. If the text
// is already present the existing index is returned and nothing changes.
func (t *Table) Insert(tok syntax.Token) int {
	if e := t.lookup(tok.Text()); e != nil {
		return e.Index
	}
	return t.add(tok, "").Index
}

// InsertWithType is like Insert but also sets the entry's type,
// overwriting any previous one. The index of an existing entry is kept.
func (t *Table) InsertWithType(tok syntax.Token, typ string) int {
	if e := t.lookup(tok.Text()); e != nil {
		e.Type = typ
		return e.Index
	}
	return t.add(tok, typ).Index
}

// Contains reports whether text has an entry.
func (t *Table) Contains(text string) bool {
	return t.lookup(text) != nil
}

// Type returns the type recorded for text. ok is false when text has no
// entry; an entry without a type yields "", true.
func (t *Table) Type(text string) (typ string, ok bool) {
	e := t.lookup(text)
	if e == nil {
		return "", false
	}
	return e.Type, true
}

// Clear drops every entry. The index counter is not rewound, so indices
// stay unique over the table's lifetime.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.n = 0
}

// Entries returns copies of all entries in ascending insertion-index order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, t.n)
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			entries = append(entries, *e)
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return a.Index - b.Index
	})
	return entries
}
