// Package rex implements the Rex AST: a flat, index-addressed tree of
// algebraic combinators (Sum, Product, Thin, Fat, Instance), its
// construction rules, and its normalization into a Fat-free form.
package rex

import (
	"github.com/cerexlang/cerex/core/ces"
	"github.com/cerexlang/cerex/core/fit"
	"github.com/cerexlang/cerex/core/rule"
)

// Kind identifies which combinator a Node holds.
type Kind string

const (
	KindThin     Kind = "thin"
	KindFat      Kind = "fat"
	KindInstance Kind = "instance"
	KindProduct  Kind = "product"
	KindSum      Kind = "sum"
)

// Tree lists a Sum or Product node's children by absolute index into the
// enclosing Rex's Kinds slab.
type Tree struct {
	IDs []int
}

func (t Tree) clone() Tree {
	ids := make([]int, len(t.IDs))
	copy(ids, t.IDs)
	return Tree{IDs: ids}
}

// Node is one entry of the flat Rex slab: a tagged union over the five
// combinator kinds, only one of whose payload fields is meaningful for a
// given Kind.
type Node struct {
	Kind     Kind
	Thin     rule.ThinArrowRule
	Fat      rule.FatArrowRule
	Instance ces.Instance
	Tree     Tree
}

func thinNode(t rule.ThinArrowRule) Node { return Node{Kind: KindThin, Thin: t} }
func fatNode(f rule.FatArrowRule) Node   { return Node{Kind: KindFat, Fat: f} }
func instanceNode(i ces.Instance) Node   { return Node{Kind: KindInstance, Instance: i} }
func productNode(tree Tree) Node         { return Node{Kind: KindProduct, Tree: tree} }
func sumNode(tree Tree) Node             { return Node{Kind: KindSum, Tree: tree} }

func (n Node) clone() Node {
	out := n
	out.Tree = n.Tree.clone()
	return out
}

// Rex is the flat slab of nodes; Kinds[0] is the root.
type Rex struct {
	Kinds []Node
}

// FromThinArrowRule builds a single-node Rex wrapping rule.
func FromThinArrowRule(t rule.ThinArrowRule) Rex {
	return Rex{Kinds: []Node{thinNode(t)}}
}

// FromFatArrowRule builds a single-node Rex wrapping rule.
func FromFatArrowRule(f rule.FatArrowRule) Rex {
	return Rex{Kinds: []Node{fatNode(f)}}
}

// FromInstance builds a single-node Rex wrapping an instance reference.
func FromInstance(i ces.Instance) Rex {
	return Rex{Kinds: []Node{instanceNode(i)}}
}

// Suffix is one (operator, rex) element of a with_more tail. A nil Op
// denotes juxtaposition (product); the only legal non-nil Op is rule.Add.
type Suffix struct {
	Op  *rule.BinOp
	Rex Rex
}

// appendWithOffset appends src onto dst, shifting every child index inside
// src's Sum/Product nodes by offset so the combined slab stays a valid
// contiguous tree, and returns the slab length after the append.
func appendWithOffset(dst *[]Node, src []Node, offset int) int {
	for _, n := range src {
		shifted := n.clone()
		if shifted.Kind == KindProduct || shifted.Kind == KindSum {
			for i := range shifted.Tree.IDs {
				shifted.Tree.IDs[i] += offset
			}
		}
		*dst = append(*dst, shifted)
	}
	return offset + len(src)
}

// WithMore builds the combined Rex of self followed by the suffix list.
// An empty suffix returns self unchanged. When every suffix element is
// juxtaposed (no Add operator appears), the result is a single Product of
// self and each suffix rex. Otherwise the result is a Sum whose addends
// are maximal juxtaposed runs: runs of two or more factors become Product
// subnodes, and singleton runs are inlined directly as the addend
// (single-factor products are pruned).
func (r Rex) WithMore(suffix []Suffix) Rex {
	if len(suffix) == 0 {
		return r
	}

	plusless := true
	for _, s := range suffix {
		if s.Op != nil {
			plusless = false
			break
		}
	}

	if plusless {
		kinds := []Node{productNode(Tree{})}

		ids := []int{1}
		offset := appendWithOffset(&kinds, r.Kinds, 1)

		for _, s := range suffix {
			ids = append(ids, offset)
			offset = appendWithOffset(&kinds, s.Rex.Kinds, offset)
		}

		kinds[0] = productNode(Tree{IDs: ids})
		return Rex{Kinds: kinds}
	}

	followedByProduct := make([]bool, len(suffix))
	for i, s := range suffix {
		followedByProduct[i] = s.Op == nil
	}
	nextFollow := 0
	takeFollow := func() bool {
		if nextFollow >= len(followedByProduct) {
			return false
		}
		v := followedByProduct[nextFollow]
		nextFollow++
		return v
	}

	kinds := []Node{sumNode(Tree{})}

	var sumIDs, productIDs []int
	anchor := 1
	offset := 1

	if takeFollow() {
		kinds = append(kinds, productNode(Tree{}))
		offset++
		productIDs = append(productIDs, offset)
	}

	offset = appendWithOffset(&kinds, r.Kinds, offset)

	for _, s := range suffix {
		isFollowedByProduct := takeFollow()

		if s.Op != nil {
			if *s.Op != rule.Add {
				panic("rex: operator not allowed between Rex addends: " + s.Op.String())
			}

			if len(productIDs) > 0 {
				if kinds[anchor].Kind != KindProduct {
					panic("rex: with_more anchor is not a product")
				}
				kinds[anchor].Tree.IDs = append(kinds[anchor].Tree.IDs, productIDs...)
				productIDs = nil
			}

			sumIDs = append(sumIDs, anchor)
			anchor = offset

			if isFollowedByProduct {
				kinds = append(kinds, productNode(Tree{}))
				offset++
				productIDs = append(productIDs, offset)
			}

			offset = appendWithOffset(&kinds, s.Rex.Kinds, offset)
		} else {
			productIDs = append(productIDs, offset)
			offset = appendWithOffset(&kinds, s.Rex.Kinds, offset)
		}
	}

	if len(productIDs) > 0 {
		kinds[anchor] = productNode(Tree{IDs: productIDs})
	}
	sumIDs = append(sumIDs, anchor)
	kinds[0] = sumNode(Tree{IDs: sumIDs})

	return Rex{Kinds: kinds}
}

// FitClone returns a new Rex in which every Fat node has been replaced by
// a Sum of the thin arrow rules FIT derives from it. The receiver is left
// untouched.
//
// The rewrite is two passes. The first walk copies every non-Fat node
// as-is and, for each Fat node, reserves a Sum placeholder (zero-valued
// ids) followed by its FIT-transformed thin arrow rules; it also builds
// old-index -> new-index map for every original node. The second walk
// resolves every Sum/Product's child ids: a non-zero first id means the
// node's children pre-existed and are translated through the map; a zero
// first id means the children are freshly generated placeholders, filled
// in with the sequential indices that immediately follow.
func (r Rex) FitClone() Rex {
	var newKinds []Node
	idMap := make([]int, 0, len(r.Kinds))

	for _, old := range r.Kinds {
		idMap = append(idMap, len(newKinds))

		if old.Kind == KindFat {
			tars := fit.Transform(old.Fat)
			ids := make([]int, len(tars))

			newKinds = append(newKinds, sumNode(Tree{IDs: ids}))
			for _, t := range tars {
				newKinds = append(newKinds, thinNode(t))
			}
		} else {
			newKinds = append(newKinds, old.clone())
		}
	}

	for ndx := 0; ndx < len(newKinds); ndx++ {
		n := &newKinds[ndx]
		if n.Kind != KindProduct && n.Kind != KindSum {
			continue
		}
		if len(n.Tree.IDs) == 0 {
			panic("rex: fit_clone produced an empty Sum/Product tree")
		}

		if n.Tree.IDs[0] > 0 {
			for i, id := range n.Tree.IDs {
				if id <= 0 {
					panic("rex: fit_clone expected a translated id")
				}
				n.Tree.IDs[i] = idMap[id]
			}
		} else {
			cursor := ndx
			for i := range n.Tree.IDs {
				if n.Tree.IDs[i] != 0 {
					panic("rex: fit_clone expected a placeholder id")
				}
				cursor++
				n.Tree.IDs[i] = cursor
			}
		}
	}

	return Rex{Kinds: newKinds}
}

// Equal reports structural equality between two Rex values.
func (r Rex) Equal(other Rex) bool {
	if len(r.Kinds) != len(other.Kinds) {
		return false
	}
	for i := range r.Kinds {
		if !nodeEqual(r.Kinds[i], other.Kinds[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindThin:
		return a.Thin.Equal(b.Thin)
	case KindFat:
		return a.Fat.Equal(b.Fat)
	case KindInstance:
		return instanceEqual(a.Instance, b.Instance)
	case KindProduct, KindSum:
		return treeEqual(a.Tree, b.Tree)
	default:
		return false
	}
}

func instanceEqual(a, b ces.Instance) bool {
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}

func treeEqual(a, b Tree) bool {
	if len(a.IDs) != len(b.IDs) {
		return false
	}
	for i := range a.IDs {
		if a.IDs[i] != b.IDs[i] {
			return false
		}
	}
	return true
}
