package grammar

import (
	"fmt"
	"log/slog"
	"strings"
)

// Sentence is a stack of symbol ids built up during expansion and read
// back out, reversed, to render the emitted terminal string.
type Sentence struct {
	symbols []SymbolID
}

func (s *Sentence) clear() {
	s.symbols = s.symbols[:0]
}

func (s *Sentence) push(id SymbolID) {
	s.symbols = append(s.symbols, id)
}

func (s *Sentence) pop() (SymbolID, bool) {
	if len(s.symbols) == 0 {
		return 0, false
	}
	id := s.symbols[len(s.symbols)-1]
	s.symbols = s.symbols[:len(s.symbols)-1]
	return id, true
}

func (s *Sentence) asString(g *Grammar) string {
	reversed := make([]SymbolID, len(s.symbols))
	for i, id := range s.symbols {
		reversed[len(s.symbols)-1-i] = id
	}

	var b strings.Builder
	for _, id := range reversed {
		text, ok := g.GetTerminal(id)
		if !ok {
			panic(fmt.Sprintf("grammar: symbol %d is not a terminal", id))
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String()
}

// productionUsed is the per-nonterminal emission state tag.
type productionUsed struct {
	tag productionUsedTag
	id  ProductionID // meaningful only when tag == productionUsedID
}

type productionUsedTag int

const (
	productionReady productionUsedTag = iota
	productionUnsure
	productionFinished
	productionUsedID
)

func readyState() productionUsed    { return productionUsed{tag: productionReady} }
func unsureState() productionUsed   { return productionUsed{tag: productionUnsure} }
func finishedState() productionUsed { return productionUsed{tag: productionFinished} }
func idState(id ProductionID) productionUsed {
	return productionUsed{tag: productionUsedID, id: id}
}

func (p productionUsed) equalTag(tag productionUsedTag) bool { return p.tag == tag }

// Generator enumerates the language of a grammar from a chosen axiom,
// shortest derivation first. Construct one with NewGenerator, call
// SetAxiom, then pull sentences one at a time with Next, or drain them all
// with All.
type Generator struct {
	grammar *Grammar
	log     *slog.Logger

	// axiom-independent derivation data
	symbolMin map[SymbolID]*int
	prodMin   []*int
	bestProd  map[SymbolID]*ProductionID

	// axiom-specific derivation data
	axiomID     SymbolID
	hasAxiom    bool
	minThrough  map[SymbolID]*int
	bestParent  map[SymbolID]*ProductionID

	// emission state
	whichProd   map[SymbolID]productionUsed
	onStack     map[SymbolID]int
	prodMarked  []bool
	inSentence  Sentence
	outSentence Sentence
	numEmitted  uint64
	started     bool
	done        bool
}

// NewGenerator precomputes the grammar's axiom-independent derivation data
// (the shortest-derivation length and best production for every symbol).
func NewGenerator(g *Grammar, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}

	gen := &Generator{
		grammar:   g,
		log:       log,
		symbolMin: make(map[SymbolID]*int),
		prodMin:   make([]*int, g.Len()),
		bestProd:  make(map[SymbolID]*ProductionID),
	}

	one := 1
	for _, t := range g.TerminalIDs() {
		v := one
		gen.symbolMin[t] = &v
	}
	for _, nt := range g.NonterminalIDs() {
		gen.symbolMin[nt] = nil
		gen.bestProd[nt] = nil
	}

	for {
		noChange := true

	outer:
		for prodID, prod := range g.Productions() {
			sum := 1
			for _, element := range prod.RHS {
				bound := gen.symbolMin[element]
				if bound == nil {
					continue outer
				}
				sum += *bound
			}

			if gen.prodMin[prodID] == nil || sum < *gen.prodMin[prodID] {
				v := sum
				gen.prodMin[prodID] = &v

				if cur := gen.symbolMin[prod.LHS]; cur == nil || sum < *cur {
					sv := sum
					gen.symbolMin[prod.LHS] = &sv
					pid := ProductionID(prodID)
					gen.bestProd[prod.LHS] = &pid
					noChange = false
				}
			}
		}

		if noChange {
			break
		}
	}

	return gen
}

// SetAxiom precomputes the axiom-specific derivation data (the shortest
// derivation length through the axiom, and the best-parent production for
// every nonterminal), and primes the generator to start emission from it.
func (gen *Generator) SetAxiom(axiom string) error {
	axiomID, ok := gen.grammar.IDOfNonterminal(axiom)
	if !ok {
		return fmt.Errorf("grammar: no such nonterminal: <%s>", axiom)
	}
	gen.axiomID = axiomID
	gen.hasAxiom = true

	gen.minThrough = make(map[SymbolID]*int)
	gen.bestParent = make(map[SymbolID]*ProductionID)

	for _, nt := range gen.grammar.NonterminalIDs() {
		gen.minThrough[nt] = nil
		gen.bestParent[nt] = nil
	}
	gen.minThrough[axiomID] = gen.symbolMin[axiomID]

	for {
		noChange := true

		for prodID, prod := range gen.grammar.Productions() {
			rlen := gen.prodMin[prodID]
			if rlen == nil {
				continue
			}
			dlen := gen.minThrough[prod.LHS]
			if dlen == nil {
				continue
			}
			slen := gen.symbolMin[prod.LHS]
			if slen == nil {
				continue
			}
			sum := *dlen + *rlen - *slen

			for _, element := range gen.grammar.RHSNonterminals(prod.RHS) {
				if cur := gen.minThrough[element]; cur == nil || sum < *cur {
					sv := sum
					gen.minThrough[element] = &sv
					pid := ProductionID(prodID)
					gen.bestParent[element] = &pid
					noChange = false
				}
			}
		}

		if noChange {
			break
		}
	}

	gen.startEmission()
	return nil
}

func (gen *Generator) startEmission() {
	gen.whichProd = make(map[SymbolID]productionUsed)
	gen.onStack = make(map[SymbolID]int)

	for _, id := range gen.grammar.NonterminalIDs() {
		gen.whichProd[id] = readyState()
		gen.onStack[id] = 0
	}

	gen.prodMarked = make([]bool, gen.grammar.Len())
	gen.inSentence.clear()
	gen.outSentence.clear()
	gen.numEmitted = 0
	gen.started = true
	gen.done = false
}

func (gen *Generator) useBestProduction(ntID SymbolID) ProductionID {
	best := gen.bestProd[ntID]
	gen.prodMarked[*best] = true

	if !gen.whichProd[ntID].equalTag(productionFinished) {
		gen.whichProd[ntID] = readyState()
	}

	return *best
}

func (gen *Generator) chooseProductions() {
	for prodID, prod := range gen.grammar.Productions() {
		if gen.prodMarked[prodID] {
			continue
		}
		state := gen.whichProd[prod.LHS]
		if state.equalTag(productionReady) || state.equalTag(productionUnsure) {
			gen.whichProd[prod.LHS] = idState(ProductionID(prodID))
			gen.prodMarked[prodID] = true
		}
	}
}

// updateSentence pushes prod's RHS onto the input stack and pops it back
// off, moving terminals straight into the output and returning the first
// nonterminal it uncovers, or false when the sentence has no pending
// nonterminal left.
func (gen *Generator) updateSentence(prodID ProductionID) (SymbolID, bool) {
	prod, ok := gen.grammar.Get(prodID)
	if !ok {
		panic("grammar: unknown production id")
	}

	for _, id := range prod.RHS {
		gen.inSentence.push(id)
		if !gen.grammar.IsTerminal(id) {
			gen.onStack[id]++
		}
	}

	for {
		id, ok := gen.inSentence.pop()
		if !ok {
			return 0, false
		}
		if gen.grammar.IsTerminal(id) {
			gen.outSentence.push(id)
		} else {
			return id, true
		}
	}
}

// Next produces the next sentence in shortest-derivation-first order, or
// ("", false) once the language has been exhausted.
func (gen *Generator) Next() (string, bool) {
	if !gen.hasAxiom {
		panic("grammar: SetAxiom must be called before Next")
	}
	if gen.done {
		return "", false
	}

	gen.outSentence.clear()
	gen.onStack[gen.axiomID] = 1
	ntID := gen.axiomID
	var prodID ProductionID

	for {
		state := gen.whichProd[ntID]

		switch {
		case state.equalTag(productionFinished):
			if ntID == gen.axiomID {
				gen.done = true
				return "", false
			}
			prodID = gen.useBestProduction(ntID)

		case state.equalTag(productionUsedID):
			prodID = state.id
			gen.whichProd[ntID] = readyState()

		default:
			gen.chooseProductions()

			for _, otherNtID := range gen.grammar.NonterminalIDs() {
				if otherNtID == gen.axiomID {
					continue
				}
				if !gen.whichProd[otherNtID].equalTag(productionUsedID) {
					continue
				}

				bestLHS := otherNtID
				for {
					bestParent := gen.bestParent[bestLHS]
					if bestParent == nil {
						break
					}
					prod, _ := gen.grammar.Get(*bestParent)
					bestLHS = prod.LHS

					if gen.onStack[bestLHS] == 0 {
						break
					} else if gen.onStack[otherNtID] == 0 {
						gen.whichProd[bestLHS] = idState(*bestParent)
						gen.prodMarked[*bestParent] = true
					} else {
						gen.whichProd[bestLHS] = unsureState()
					}
				}
			}

			for _, id := range gen.grammar.NonterminalIDs() {
				if gen.whichProd[id].equalTag(productionReady) {
					gen.whichProd[id] = finishedState()
				}
			}

			// onStack counts the nonterminal being expanded until its
			// production is chosen, so an axiom with nothing else pending
			// has a count of exactly 1 here.
			if ntID == gen.axiomID && gen.whichProd[ntID].equalTag(productionFinished) && gen.onStack[gen.axiomID] == 1 {
				gen.done = true
				return "", false
			} else if st := gen.whichProd[ntID]; st.equalTag(productionUsedID) {
				prodID = st.id
				gen.whichProd[ntID] = readyState()
			} else {
				prodID = gen.useBestProduction(ntID)
			}
		}

		gen.onStack[ntID]--

		if next, ok := gen.updateSentence(prodID); ok {
			ntID = next
		} else {
			break
		}
	}

	gen.numEmitted++
	result := gen.outSentence.asString(gen.grammar)
	gen.log.Debug("generated sentence", "n", gen.numEmitted, "sentence", result)

	return result, true
}

// All drains the generator, returning every sentence it produces. The
// caller is responsible for bounding grammars with very large languages;
// this is meant for the small demonstration grammars the engine ships.
func (gen *Generator) All() []string {
	var out []string
	for {
		s, ok := gen.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
