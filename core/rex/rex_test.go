package rex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerexlang/cerex/core/ces"
	"github.com/cerexlang/cerex/core/poly"
	"github.com/cerexlang/cerex/core/rex"
	"github.com/cerexlang/cerex/core/rule"
)

func add(op rule.BinOp) *rule.BinOp { return &op }

// TestFitCloneChain covers S1: "a => b" after fit_clone becomes
// [ Sum{1,2}, Thin{[a],∅,b}, Thin{[b],a,∅} ].
func TestFitCloneChain(t *testing.T) {
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatTx, Poly: poly.FromName("b")},
	})

	got := rex.FromFatArrowRule(far).FitClone()

	require.Len(t, got.Kinds, 3)
	assert.Equal(t, rex.KindSum, got.Kinds[0].Kind)
	assert.Equal(t, []int{1, 2}, got.Kinds[0].Tree.IDs)
	assert.Equal(t, rex.KindThin, got.Kinds[1].Kind)
	assert.Equal(t, rex.KindThin, got.Kinds[2].Kind)
}

// TestFitCloneRemovesFatNodes is invariant 2 of the design this package
// implements: fit_clone(r) contains no Fat kind.
func TestFitCloneRemovesFatNodes(t *testing.T) {
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatRx, Poly: poly.FromName("b")},
		{Op: rule.FatTx, Poly: poly.FromName("c")},
	})

	got := rex.FromFatArrowRule(far).FitClone()

	for _, n := range got.Kinds {
		assert.NotEqual(t, rex.KindFat, n.Kind)
	}
}

// TestFitCloneIsIdempotent is invariant 3: fit_clone(fit_clone(r)) ==
// fit_clone(r), since a normalized Rex contains no Fat nodes to rewrite.
func TestFitCloneIsIdempotent(t *testing.T) {
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatTx, Poly: poly.FromName("b")},
		{Op: rule.FatTx, Poly: poly.FromName("c")},
	})

	once := rex.FromFatArrowRule(far).FitClone()
	twice := once.FitClone()

	assert.True(t, once.Equal(twice))
}

// TestStructuralInvariantForwardOnlyEdges is invariant 1: every child
// index in any Tree is strictly greater than its owning node's index and
// strictly less than len(Kinds).
func TestStructuralInvariantForwardOnlyEdges(t *testing.T) {
	base := rex.FromInstance(ces.NewInstance("d"))
	more := rex.FromInstance(ces.NewInstance("e").WithArgs("f"))

	combined := base.WithMore([]rex.Suffix{{Rex: more}})

	for pos, n := range combined.Kinds {
		if n.Kind != rex.KindProduct && n.Kind != rex.KindSum {
			continue
		}
		for _, id := range n.Tree.IDs {
			assert.Greater(t, id, pos)
			assert.Less(t, id, len(combined.Kinds))
		}
	}
}

// TestWithMorePluslessBuildsProduct exercises the "d() + e!(f) g!(h, i)"
// subexpression from S4: a Sum of an Instance and a Product of instances.
func TestWithMorePluslessBuildsProduct(t *testing.T) {
	d := rex.FromInstance(ces.NewInstance("d"))
	e := rex.FromInstance(ces.NewInstance("e").WithArgs("f"))
	g := rex.FromInstance(ces.NewInstance("g").WithArgs("h", "i"))

	eg := e.WithMore([]rex.Suffix{{Rex: g}})
	sum := d.WithMore([]rex.Suffix{{Op: add(rule.Add), Rex: eg}})

	require.Equal(t, rex.KindSum, sum.Kinds[0].Kind)
	assert.Equal(t, []int{1, 2}, sum.Kinds[0].Tree.IDs)
	assert.Equal(t, rex.KindInstance, sum.Kinds[1].Kind)
	assert.Equal(t, rex.KindProduct, sum.Kinds[2].Kind)
	assert.Equal(t, []int{3, 4}, sum.Kinds[2].Tree.IDs)
}

// TestWithMoreBuildsFullS4Shape assembles the whole of S4,
// "{ a => b <= c } { d() + e!(f) g!(h, i) } + { { j -> k -> l } { j -> k }
// { l <- k } }", the way the surface grammar would, one WithMore call per
// nesting level: a Product of a Fat node and the d/e/g Sum, summed with a
// three-factor Product of Thin nodes.
func TestWithMoreBuildsFullS4Shape(t *testing.T) {
	fat := rex.FromFatArrowRule(rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatTx, Poly: poly.FromName("b")},
		{Op: rule.FatRx, Poly: poly.FromName("c")},
	}))

	d := rex.FromInstance(ces.NewInstance("d"))
	e := rex.FromInstance(ces.NewInstance("e").WithArgs("f"))
	g := rex.FromInstance(ces.NewInstance("g").WithArgs("h", "i"))
	eg := e.WithMore([]rex.Suffix{{Rex: g}})
	deg := d.WithMore([]rex.Suffix{{Op: add(rule.Add), Rex: eg}})

	addendA := fat.WithMore([]rex.Suffix{{Rex: deg}})

	thinKJL, err := rule.NewThinArrowRule().WithNodes(poly.FromName("k"))
	require.NoError(t, err)
	thinKJL = thinKJL.WithCause(poly.FromName("j")).WithEffect(poly.FromName("l"))

	thinJK, err := rule.NewThinArrowRule().WithNodes(poly.FromName("j"))
	require.NoError(t, err)
	thinJK = thinJK.WithEffect(poly.FromName("k"))

	thinLK, err := rule.NewThinArrowRule().WithNodes(poly.FromName("l"))
	require.NoError(t, err)
	thinLK = thinLK.WithCause(poly.FromName("k"))

	addendB := rex.FromThinArrowRule(thinKJL).WithMore([]rex.Suffix{
		{Rex: rex.FromThinArrowRule(thinJK)},
		{Rex: rex.FromThinArrowRule(thinLK)},
	})

	got := addendA.WithMore([]rex.Suffix{{Op: add(rule.Add), Rex: addendB}})

	require.Len(t, got.Kinds, 12)

	assert.Equal(t, rex.KindSum, got.Kinds[0].Kind)
	assert.Equal(t, []int{1, 8}, got.Kinds[0].Tree.IDs)

	assert.Equal(t, rex.KindProduct, got.Kinds[1].Kind)
	assert.Equal(t, []int{2, 3}, got.Kinds[1].Tree.IDs)
	assert.Equal(t, rex.KindFat, got.Kinds[2].Kind)

	assert.Equal(t, rex.KindSum, got.Kinds[3].Kind)
	assert.Equal(t, []int{4, 5}, got.Kinds[3].Tree.IDs)
	assert.Equal(t, rex.KindInstance, got.Kinds[4].Kind)
	assert.Equal(t, ces.Name("d"), got.Kinds[4].Instance.Name)

	assert.Equal(t, rex.KindProduct, got.Kinds[5].Kind)
	assert.Equal(t, []int{6, 7}, got.Kinds[5].Tree.IDs)
	assert.Equal(t, ces.Name("e"), got.Kinds[6].Instance.Name)
	assert.Equal(t, ces.Name("g"), got.Kinds[7].Instance.Name)

	assert.Equal(t, rex.KindProduct, got.Kinds[8].Kind)
	assert.Equal(t, []int{9, 10, 11}, got.Kinds[8].Tree.IDs)

	require.Equal(t, rex.KindThin, got.Kinds[9].Kind)
	assert.Equal(t, []ces.Name{"k"}, got.Kinds[9].Thin.Nodes())
	assert.True(t, got.Kinds[9].Thin.Cause().Equal(poly.FromName("j")))
	assert.True(t, got.Kinds[9].Thin.Effect().Equal(poly.FromName("l")))

	require.Equal(t, rex.KindThin, got.Kinds[10].Kind)
	assert.Equal(t, []ces.Name{"j"}, got.Kinds[10].Thin.Nodes())
	assert.True(t, got.Kinds[10].Thin.Cause().IsEmpty())
	assert.True(t, got.Kinds[10].Thin.Effect().Equal(poly.FromName("k")))

	require.Equal(t, rex.KindThin, got.Kinds[11].Kind)
	assert.Equal(t, []ces.Name{"l"}, got.Kinds[11].Thin.Nodes())
	assert.True(t, got.Kinds[11].Thin.Cause().Equal(poly.FromName("k")))
	assert.True(t, got.Kinds[11].Thin.Effect().IsEmpty())

	for _, n := range got.FitClone().Kinds {
		assert.NotEqual(t, rex.KindFat, n.Kind)
	}
}
