// Package grammar implements a small context-free grammar representation
// and the shortest-derivation-first sentence generator built over it.
package grammar

import "fmt"

// SymbolID identifies a terminal or nonterminal symbol. Terminal and
// nonterminal ids share one numbering space; IsTerminal distinguishes them.
type SymbolID int

// ProductionID indexes a production within a Grammar.
type ProductionID int

// Production is one rewrite rule: LHS -> RHS (a sequence of symbols).
type Production struct {
	LHS SymbolID
	RHS []SymbolID
}

// Grammar is a context-free grammar with terminal and nonterminal symbol
// tables and an ordered list of productions.
type Grammar struct {
	terminalText      map[SymbolID]string
	nonterminalName   map[SymbolID]string
	nonterminalByName map[string]SymbolID
	productions       []Production
	nextID            SymbolID
}

// New returns an empty grammar, ready to be populated via AddTerminal,
// AddNonterminal, and AddProduction.
func New() *Grammar {
	return &Grammar{
		terminalText:      make(map[SymbolID]string),
		nonterminalName:   make(map[SymbolID]string),
		nonterminalByName: make(map[string]SymbolID),
	}
}

// AddTerminal registers a terminal symbol with the given surface text and
// returns its id.
func (g *Grammar) AddTerminal(text string) SymbolID {
	id := g.nextID
	g.nextID++
	g.terminalText[id] = text
	return id
}

// AddNonterminal registers a nonterminal symbol with the given name and
// returns its id.
func (g *Grammar) AddNonterminal(name string) SymbolID {
	id := g.nextID
	g.nextID++
	g.nonterminalName[id] = name
	g.nonterminalByName[name] = id
	return id
}

// AddProduction appends a production lhs -> rhs.
func (g *Grammar) AddProduction(lhs SymbolID, rhs ...SymbolID) ProductionID {
	id := ProductionID(len(g.productions))
	g.productions = append(g.productions, Production{LHS: lhs, RHS: append([]SymbolID(nil), rhs...)})
	return id
}

// Len returns the number of productions.
func (g *Grammar) Len() int {
	return len(g.productions)
}

// Get returns the production at id.
func (g *Grammar) Get(id ProductionID) (Production, bool) {
	if int(id) < 0 || int(id) >= len(g.productions) {
		return Production{}, false
	}
	return g.productions[id], true
}

// Productions returns every production, indexed by ProductionID.
func (g *Grammar) Productions() []Production {
	return g.productions
}

// IsTerminal reports whether id names a terminal symbol.
func (g *Grammar) IsTerminal(id SymbolID) bool {
	_, ok := g.terminalText[id]
	return ok
}

// GetTerminal returns the surface text of a terminal symbol.
func (g *Grammar) GetTerminal(id SymbolID) (string, bool) {
	text, ok := g.terminalText[id]
	return text, ok
}

// TerminalIDs returns every terminal symbol id.
func (g *Grammar) TerminalIDs() []SymbolID {
	ids := make([]SymbolID, 0, len(g.terminalText))
	for id := SymbolID(0); id < g.nextID; id++ {
		if _, ok := g.terminalText[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// NonterminalIDs returns every nonterminal symbol id, in registration order.
func (g *Grammar) NonterminalIDs() []SymbolID {
	ids := make([]SymbolID, 0, len(g.nonterminalName))
	for id := SymbolID(0); id < g.nextID; id++ {
		if _, ok := g.nonterminalName[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// IDOfNonterminal looks up a nonterminal's id by name.
func (g *Grammar) IDOfNonterminal(name string) (SymbolID, bool) {
	id, ok := g.nonterminalByName[name]
	return id, ok
}

// RHSNonterminals returns the subsequence of rhs that names nonterminals.
func (g *Grammar) RHSNonterminals(rhs []SymbolID) []SymbolID {
	var out []SymbolID
	for _, id := range rhs {
		if !g.IsTerminal(id) {
			out = append(out, id)
		}
	}
	return out
}

func (g *Grammar) String() string {
	return fmt.Sprintf("Grammar{%d terminals, %d nonterminals, %d productions}",
		len(g.terminalText), len(g.nonterminalName), len(g.productions))
}
