package semantics

import (
	"fmt"
	"io"
	"pminus/ast"
	"pminus/internals"
	"strings"
)

const (
	// Size is the number of hash buckets, a prime.
	Size = 211
	// Shift is the multiplier, as a left shift, of the hash function.
	Shift = 4
)

type SymbolEntry struct {
	Name     string
	Location int         // memory slot, fixed at first insertion
	Type     ast.ExpType // type of the first occurrence
	Lines    []int       // every referencing line, in insertion order

	next *SymbolEntry
}

// SymbolTable is the flat global scope of one compilation: a chained hash
// table whose collisions are resolved by prepending to the bucket list.
type SymbolTable struct {
	buckets [Size]*SymbolEntry
	nextLoc int
	count   int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

func hash(key string) int {
	temp := 0
	for i := 0; i < len(key); i++ {
		temp = ((temp << Shift) + int(key[i])) % Size
	}
	return temp
}

func (st *SymbolTable) find(name string) *SymbolEntry {
	for entry := st.buckets[hash(name)]; entry != nil; entry = entry.next {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// Insert records an occurrence of name at line. The first insertion takes the
// next memory slot and typ; later ones only append the line.
func (st *SymbolTable) Insert(name string, line int, typ ast.ExpType) {
	if entry := st.find(name); entry != nil {
		entry.Lines = append(entry.Lines, line)
		return
	}

	h := hash(name)
	st.buckets[h] = &SymbolEntry{
		Name:     name,
		Location: st.nextLoc,
		Type:     typ,
		Lines:    []int{line},
		next:     st.buckets[h],
	}
	st.nextLoc++
	st.count++
}

// Lookup returns the memory slot of name, or -1 if it was never inserted.
func (st *SymbolTable) Lookup(name string) int {
	if entry := st.find(name); entry != nil {
		return entry.Location
	}
	return -1
}

func (st *SymbolTable) Entry(name string) (*SymbolEntry, bool) {
	entry := st.find(name)
	return entry, entry != nil
}

// Entries lists the table in bucket order, newest first inside a bucket.
func (st *SymbolTable) Entries() []*SymbolEntry {
	entries := make([]*SymbolEntry, 0, st.count)
	for _, bucket := range st.buckets {
		for entry := bucket; entry != nil; entry = entry.next {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (st *SymbolTable) Len() int {
	return st.count
}

// Reset empties the table and restarts memory slots at 0.
func (st *SymbolTable) Reset() {
	st.buckets = [Size]*SymbolEntry{}
	st.nextLoc = 0
	st.count = 0
}

func typeLabel(typ ast.ExpType) string {
	switch typ {
	case ast.Real:
		return "real"
	case ast.Integer:
		return "inteiro"
	default:
		return ""
	}
}

// Fprint writes the symbol table listing to w.
func (st *SymbolTable) Fprint(w io.Writer) {
	st.FprintStyled(w, internals.NewStyles(w))
}

func (st *SymbolTable) FprintStyled(w io.Writer, styles internals.Styles) {
	header := fmt.Sprintf("%-14s %-8s  %-7s %s", "Variable Name", "Location", "Type", "Line Numbers")
	rule := fmt.Sprintf("%-14s %-8s  %-7s %s", "-------------", "--------", "----", "------------")
	fmt.Fprintln(w, styles.Header.Render(header))
	fmt.Fprintln(w, styles.Header.Render(rule))

	for _, entry := range st.Entries() {
		var row strings.Builder
		fmt.Fprintf(&row, "%-14s %-8d  %-7s", entry.Name, entry.Location, typeLabel(entry.Type))
		for _, line := range entry.Lines {
			fmt.Fprintf(&row, " %4d", line)
		}
		fmt.Fprintln(w, row.String())
	}
}
