// Package rule defines the two rule atoms of a cause-effect expression:
// the thin arrow rule, the canonical form the compiler understands, and
// the fat arrow rule, the syntactic chain form FIT reduces to it.
package rule

import (
	"fmt"
	"log/slog"

	"github.com/cerexlang/cerex/core/backend"
	"github.com/cerexlang/cerex/core/ces"
	"github.com/cerexlang/cerex/core/poly"
)

// ThinArrowRule is the atomic rule: a list of nodes together with the
// cause and effect polynomials attached to every one of them. Either
// Cause or Effect may be empty, but not both once FIT has produced it.
type ThinArrowRule struct {
	nodes  poly.NodeList
	cause  poly.Polynomial
	effect poly.Polynomial
}

// NewThinArrowRule returns the zero rule: no nodes, no cause, no effect.
func NewThinArrowRule() ThinArrowRule {
	return ThinArrowRule{}
}

// WithNodes sets the rule's node list from a polynomial, which must be
// empty or a single monomial of distinct nodes; it is not flattened first.
func (t ThinArrowRule) WithNodes(nodes poly.Polynomial) (ThinArrowRule, error) {
	nl, err := poly.ToNodeList(nodes)
	if err != nil {
		return ThinArrowRule{}, err
	}
	t.nodes = nl
	return t, nil
}

// WithCause sets the rule's cause polynomial.
func (t ThinArrowRule) WithCause(cause poly.Polynomial) ThinArrowRule {
	t.cause = cause
	return t
}

// WithEffect sets the rule's effect polynomial.
func (t ThinArrowRule) WithEffect(effect poly.Polynomial) ThinArrowRule {
	t.effect = effect
	return t
}

// Nodes returns the rule's node names, grounded on the original's
// get_nodes accessor.
func (t ThinArrowRule) Nodes() []ces.Name {
	return t.nodes.Nodes()
}

// NodeList exposes the rule's underlying node list.
func (t ThinArrowRule) NodeList() poly.NodeList {
	return t.nodes
}

// Cause exposes the rule's cause polynomial.
func (t ThinArrowRule) Cause() poly.Polynomial {
	return t.cause
}

// Effect exposes the rule's effect polynomial.
func (t ThinArrowRule) Effect() poly.Polynomial {
	return t.effect
}

// Equal reports structural equality between two thin arrow rules.
func (t ThinArrowRule) Equal(other ThinArrowRule) bool {
	return t.nodes.Equal(other.nodes) && t.cause.Equal(other.cause) && t.effect.Equal(other.effect)
}

func compileAsMonomials(p poly.Polynomial, ctx backend.Context) []backend.Monomial {
	monomials := p.Monomials()
	out := make([]backend.Monomial, len(monomials))
	for i, m := range monomials {
		row := make(backend.Monomial, len(m))
		for j, n := range m {
			row[j] = ctx.ShareNodeName(n)
		}
		out[i] = row
	}
	return out
}

// Compile lowers the rule into a PartialContent against ctx: every node in
// the rule's node list is interned, and the compiled cause/effect
// monomials are attached to it.
func (t ThinArrowRule) Compile(ctx backend.Context, log *slog.Logger) backend.PartialContent {
	if log == nil {
		log = slog.Default()
	}

	content := ctx.NewContent()

	cause := compileAsMonomials(t.cause, ctx)
	effect := compileAsMonomials(t.effect, ctx)

	for _, name := range t.nodes.Nodes() {
		id := ctx.ShareNodeName(name)

		if len(cause) > 0 {
			content.AddToCauses(id, cause)
		}
		if len(effect) > 0 {
			content.AddToEffects(id, effect)
		}
	}

	log.Debug("tar compile", "nodes", t.nodes.Nodes(), "cause", cause, "effect", effect)

	return content
}

// BinOp is the binary connective used when chaining polynomials into a
// fat arrow rule, or rexes into a sum/product.
type BinOp int

const (
	// Add is the sum operator ("+"), the only operator legal between Rex
	// addends.
	Add BinOp = iota
	// FatTx is the forward fat arrow "=>": lhs causes rhs.
	FatTx
	// FatRx is the backward fat arrow "<=": rhs causes lhs.
	FatRx
	// FatDx is the bidirectional fat arrow "<=>": both directions hold.
	FatDx
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case FatTx:
		return "=>"
	case FatRx:
		return "<="
	case FatDx:
		return "<=>"
	default:
		return "?"
	}
}

// FatArrow is one two-polynomial part of a fat arrow rule.
type FatArrow struct {
	Cause  poly.Polynomial
	Effect poly.Polynomial
}

func (f FatArrow) equal(other FatArrow) bool {
	return f.Cause.Equal(other.Cause) && f.Effect.Equal(other.Effect)
}

// FatArrowRule is a chain of fat arrow parts, built left-to-right from a
// head polynomial and a non-empty tail of (operator, polynomial) pairs.
type FatArrowRule struct {
	parts []FatArrow
}

// FatArrowTailElem is one (operator, polynomial) step of the chain.
type FatArrowTailElem struct {
	Op   BinOp
	Poly poly.Polynomial
}

// NewFatArrowRule builds a FatArrowRule from a head polynomial and a
// non-empty tail, applying the construction rule of §3: prev starts as
// head; FatTx emits {cause: prev, effect: poly}; FatRx emits
// {cause: poly, effect: prev}; FatDx emits both directions; after each
// step prev becomes poly. Any operator other than FatTx/FatRx/FatDx is a
// caller bug and panics, matching the construction-time contract that
// only fat-arrow operators reach this function.
func NewFatArrowRule(head poly.Polynomial, tail []FatArrowTailElem) FatArrowRule {
	if len(tail) == 0 {
		panic("rule: single-polynomial fat arrow rule")
	}

	var far FatArrowRule
	prev := head

	for _, step := range tail {
		switch step.Op {
		case FatTx:
			far.parts = append(far.parts, FatArrow{Cause: prev, Effect: step.Poly.Clone()})
		case FatRx:
			far.parts = append(far.parts, FatArrow{Cause: step.Poly.Clone(), Effect: prev})
		case FatDx:
			far.parts = append(far.parts,
				FatArrow{Cause: prev.Clone(), Effect: step.Poly.Clone()},
				FatArrow{Cause: step.Poly.Clone(), Effect: prev},
			)
		default:
			panic(fmt.Sprintf("rule: operator not allowed in a fat arrow rule: %q", step.Op))
		}
		prev = step.Poly
	}

	return far
}

// Parts exposes the rule's fat arrow parts.
func (f FatArrowRule) Parts() []FatArrow {
	return f.parts
}

// Equal reports structural equality between two fat arrow rules.
func (f FatArrowRule) Equal(other FatArrowRule) bool {
	if len(f.parts) != len(other.parts) {
		return false
	}
	for i := range f.parts {
		if !f.parts[i].equal(other.parts[i]) {
			return false
		}
	}
	return true
}
