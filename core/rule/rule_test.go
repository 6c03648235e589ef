package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerexlang/cerex/core/ces"
	"github.com/cerexlang/cerex/core/poly"
	"github.com/cerexlang/cerex/core/rule"
)

func TestNewFatArrowRuleTx(t *testing.T) {
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatTx, Poly: poly.FromName("b")},
	})

	require.Len(t, far.Parts(), 1)
	assert.True(t, far.Parts()[0].Cause.Equal(poly.FromName("a")))
	assert.True(t, far.Parts()[0].Effect.Equal(poly.FromName("b")))
}

func TestNewFatArrowRuleRx(t *testing.T) {
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatRx, Poly: poly.FromName("b")},
	})

	require.Len(t, far.Parts(), 1)
	assert.True(t, far.Parts()[0].Cause.Equal(poly.FromName("b")))
	assert.True(t, far.Parts()[0].Effect.Equal(poly.FromName("a")))
}

func TestNewFatArrowRuleDxEmitsBothDirections(t *testing.T) {
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatDx, Poly: poly.FromName("b")},
	})

	require.Len(t, far.Parts(), 2)
	assert.True(t, far.Parts()[0].Cause.Equal(poly.FromName("a")))
	assert.True(t, far.Parts()[0].Effect.Equal(poly.FromName("b")))
	assert.True(t, far.Parts()[1].Cause.Equal(poly.FromName("b")))
	assert.True(t, far.Parts()[1].Effect.Equal(poly.FromName("a")))
}

func TestNewFatArrowRuleSequenceChainsPrev(t *testing.T) {
	// "a => b => c"
	far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
		{Op: rule.FatTx, Poly: poly.FromName("b")},
		{Op: rule.FatTx, Poly: poly.FromName("c")},
	})

	require.Len(t, far.Parts(), 2)
	assert.True(t, far.Parts()[0].Cause.Equal(poly.FromName("a")))
	assert.True(t, far.Parts()[0].Effect.Equal(poly.FromName("b")))
	assert.True(t, far.Parts()[1].Cause.Equal(poly.FromName("b")))
	assert.True(t, far.Parts()[1].Effect.Equal(poly.FromName("c")))
}

func TestThinArrowRuleWithNodesRejectsMultiMonomialPolynomial(t *testing.T) {
	notANodeList := poly.FromName("a")
	notANodeList.AddAssign(poly.FromName("b"))

	_, err := rule.NewThinArrowRule().WithNodes(notANodeList)
	require.Error(t, err)
}

func TestThinArrowRuleNodesAccessor(t *testing.T) {
	tar, err := rule.NewThinArrowRule().WithNodes(poly.FromMonomials([][]ces.Name{{"a", "b"}}))
	require.NoError(t, err)

	assert.Equal(t, []ces.Name{"a", "b"}, tar.Nodes())
}
