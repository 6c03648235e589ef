// Package poly implements the polynomial algebra at the root of the rule
// engine: a formal sum of monomials, where each monomial is a set of node
// names, together with the node-list view used by thin arrow rules.
package poly

import (
	"github.com/cerexlang/cerex/core/ces"
	"github.com/cerexlang/cerex/internal/cerr"
)

// Monomial is an ordered, distinct set of node names.
type Monomial []ces.Name

func (m Monomial) clone() Monomial {
	out := make(Monomial, len(m))
	copy(out, m)
	return out
}

func (m Monomial) equal(other Monomial) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

func (m Monomial) contains(n ces.Name) bool {
	for _, existing := range m {
		if existing == n {
			return true
		}
	}
	return false
}

// Polynomial is a sum of monomials over node names.
type Polynomial struct {
	monomials []Monomial
}

// Empty returns the zero polynomial (no monomials).
func Empty() Polynomial {
	return Polynomial{}
}

// FromName builds the single-term, single-node polynomial for name.
func FromName(name ces.Name) Polynomial {
	return Polynomial{monomials: []Monomial{{name}}}
}

// FromMonomials builds a polynomial directly from a list of monomials,
// given as slices of node names.
func FromMonomials(monomials [][]ces.Name) Polynomial {
	p := Polynomial{monomials: make([]Monomial, len(monomials))}
	for i, m := range monomials {
		p.monomials[i] = Monomial(m).clone()
	}
	return p
}

// IsEmpty reports whether the polynomial has no monomials.
func (p Polynomial) IsEmpty() bool {
	return len(p.monomials) == 0
}

// Monomials exposes the polynomial's terms for compilation against a
// context; callers must not mutate the returned slices.
func (p Polynomial) Monomials() []Monomial {
	return p.monomials
}

// Clone returns a deep copy.
func (p Polynomial) Clone() Polynomial {
	out := Polynomial{monomials: make([]Monomial, len(p.monomials))}
	for i, m := range p.monomials {
		out.monomials[i] = m.clone()
	}
	return out
}

// Equal reports structural equality: same monomials in the same order.
func (p Polynomial) Equal(other Polynomial) bool {
	if len(p.monomials) != len(other.monomials) {
		return false
	}
	for i := range p.monomials {
		if !p.monomials[i].equal(other.monomials[i]) {
			return false
		}
	}
	return true
}

// AddAssign merges other's monomials into p (sum union): the resulting
// polynomial denotes p + other.
func (p *Polynomial) AddAssign(other Polynomial) {
	p.monomials = append(p.monomials, other.Clone().monomials...)
}

// MulAssign distributes p across other (Cartesian product of monomials),
// deduplicating node names within each resulting monomial.
func (p *Polynomial) MulAssign(other Polynomial) {
	if p.IsEmpty() || other.IsEmpty() {
		p.monomials = nil
		return
	}
	result := make([]Monomial, 0, len(p.monomials)*len(other.monomials))
	for _, left := range p.monomials {
		for _, right := range other.monomials {
			merged := left.clone()
			for _, n := range right {
				if !merged.contains(n) {
					merged = append(merged, n)
				}
			}
			result = append(result, merged)
		}
	}
	p.monomials = result
}

// FlattenedClone returns a polynomial whose single monomial is the union,
// in first-seen order, of every node name mentioned anywhere in p.
func (p Polynomial) FlattenedClone() Polynomial {
	var flat Monomial
	for _, m := range p.monomials {
		for _, n := range m {
			if !flat.contains(n) {
				flat = append(flat, n)
			}
		}
	}
	if flat == nil {
		return Empty()
	}
	return Polynomial{monomials: []Monomial{flat}}
}

// NodeList is an ordered sequence of distinct node names.
type NodeList struct {
	nodes []ces.Name
}

// NewNodeList builds a NodeList from names, in the given order. The caller
// is responsible for ensuring names are distinct; ToNodeList enforces this
// when derived from a polynomial.
func NewNodeList(names ...ces.Name) NodeList {
	nl := NodeList{nodes: make([]ces.Name, len(names))}
	copy(nl.nodes, names)
	return nl
}

// Nodes returns the underlying node slice; callers must not mutate it.
func (nl NodeList) Nodes() []ces.Name {
	return nl.nodes
}

// IsEmpty reports whether the node list has no nodes.
func (nl NodeList) IsEmpty() bool {
	return len(nl.nodes) == 0
}

// Equal reports structural equality: same nodes in the same order.
func (nl NodeList) Equal(other NodeList) bool {
	if len(nl.nodes) != len(other.nodes) {
		return false
	}
	for i := range nl.nodes {
		if nl.nodes[i] != other.nodes[i] {
			return false
		}
	}
	return true
}

// AddAssign appends other's nodes not already present, preserving order.
func (nl *NodeList) AddAssign(other NodeList) {
	for _, n := range other.nodes {
		found := false
		for _, existing := range nl.nodes {
			if existing == n {
				found = true
				break
			}
		}
		if !found {
			nl.nodes = append(nl.nodes, n)
		}
	}
}

// FromNodeList builds the single-monomial polynomial containing exactly
// nl's nodes, the inverse of ToNodeList.
func FromNodeList(nl NodeList) Polynomial {
	if nl.IsEmpty() {
		return Empty()
	}
	return Polynomial{monomials: []Monomial{Monomial(nl.nodes).clone()}}
}

// ToNodeList converts a flattened, single-monomial polynomial of distinct
// nodes into a NodeList. The empty polynomial yields an empty NodeList.
// It fails with cerr.NotANodeList when p has more than one monomial, or
// its monomial repeats a node.
func ToNodeList(p Polynomial) (NodeList, error) {
	if p.IsEmpty() {
		return NodeList{}, nil
	}
	if len(p.monomials) != 1 {
		return NodeList{}, cerr.NewNotANodeList("polynomial has more than one monomial")
	}
	m := p.monomials[0]
	seen := make(map[ces.Name]struct{}, len(m))
	for _, n := range m {
		if _, dup := seen[n]; dup {
			return NodeList{}, cerr.NewNotANodeList("polynomial monomial repeats node " + string(n))
		}
		seen[n] = struct{}{}
	}
	return NewNodeList(m...), nil
}
