package poly_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerexlang/cerex/core/ces"
	"github.com/cerexlang/cerex/core/poly"
)

func names(ss ...string) []ces.Name {
	out := make([]ces.Name, len(ss))
	for i, s := range ss {
		out[i] = ces.Name(s)
	}
	return out
}

func TestPolynomialAddAssignUnionsMonomials(t *testing.T) {
	a := poly.FromName("a")
	c := poly.FromName("c")

	a.AddAssign(c)

	want := poly.FromMonomials([][]ces.Name{names("a"), names("c")})
	assert.True(t, a.Equal(want))
}

func TestPolynomialMulAssignDistributesAndDedups(t *testing.T) {
	left := poly.FromMonomials([][]ces.Name{names("a"), names("b")})
	right := poly.FromMonomials([][]ces.Name{names("a"), names("c")})

	left.MulAssign(right)

	want := poly.FromMonomials([][]ces.Name{
		names("a"), // a*a dedups to {a}
		names("a", "c"),
		names("b", "a"),
		names("b", "c"),
	})
	assert.True(t, left.Equal(want))
}

func TestFlattenedCloneUnionsNodesInFirstSeenOrder(t *testing.T) {
	p := poly.FromMonomials([][]ces.Name{names("b", "a"), names("c", "a")})

	flat := p.FlattenedClone()

	require.Len(t, flat.Monomials(), 1)
	assert.Equal(t, names("b", "a", "c"), []ces.Name(flat.Monomials()[0]))
}

func TestToNodeListRejectsMultiMonomialPolynomial(t *testing.T) {
	p := poly.FromMonomials([][]ces.Name{names("a"), names("b")})

	_, err := poly.ToNodeList(p)
	require.Error(t, err)
}

func TestToNodeListRejectsRepeatedNode(t *testing.T) {
	p := poly.FromMonomials([][]ces.Name{names("a", "a")})

	_, err := poly.ToNodeList(p)
	require.Error(t, err)
}

func TestToNodeListAcceptsSingleDistinctMonomial(t *testing.T) {
	p := poly.FromMonomials([][]ces.Name{names("a", "b")})

	nl, err := poly.ToNodeList(p)
	require.NoError(t, err)
	assert.Equal(t, names("a", "b"), nl.Nodes())
}

func TestNodeListAddAssignDedupsPreservingOrder(t *testing.T) {
	left := poly.NewNodeList(names("a", "b")...)
	right := poly.NewNodeList(names("b", "c")...)

	left.AddAssign(right)

	assert.Equal(t, names("a", "b", "c"), left.Nodes())
}
