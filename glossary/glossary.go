package glossary

import (
	"fmt"
	"strings"
)

// Entry is one term with its definition.
type Entry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Glossary maps terms to definitions and remembers the order terms were
// first added. The zero value is ready to use.
type Glossary struct {
	order []string
	defs  map[string]string
}

// New returns a glossary holding entries, in order.
func New(entries ...Entry) *Glossary {
	g := &Glossary{}
	for _, e := range entries {
		g.Add(e.Term, e.Definition)
	}
	return g
}

// Add sets term's definition. A term already present keeps its position
// and takes the new definition.
func (g *Glossary) Add(term, definition string) {
	if g.defs == nil {
		g.defs = make(map[string]string)
	}
	if _, ok := g.defs[term]; !ok {
		g.order = append(g.order, term)
	}
	g.defs[term] = definition
}

// Merge adds every entry of other, in other's order.
func (g *Glossary) Merge(other *Glossary) {
	if other == nil {
		return
	}
	for _, term := range other.order {
		g.Add(term, other.defs[term])
	}
}

// Lookup returns term's definition.
func (g *Glossary) Lookup(term string) (string, bool) {
	def, ok := g.defs[term]
	return def, ok
}

// Len returns the number of distinct terms.
func (g *Glossary) Len() int {
	return len(g.order)
}

// Entries returns all entries in first-insertion order.
func (g *Glossary) Entries() []Entry {
	entries := make([]Entry, len(g.order))
	for i, term := range g.order {
		entries[i] = Entry{Term: term, Definition: g.defs[term]}
	}
	return entries
}

// String renders one "term: definition" line per entry.
func (g *Glossary) String() string {
	var b strings.Builder
	for i, term := range g.order {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", term, g.defs[term])
	}
	return b.String()
}
