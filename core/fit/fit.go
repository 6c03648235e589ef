// Package fit implements the FIT ("fat-into-thin") transformation: the
// canonicalization of a fat arrow rule into an equivalent sum of thin
// arrow rules, by simplification to a fixed point.
package fit

import (
	"github.com/cerexlang/cerex/core/poly"
	"github.com/cerexlang/cerex/core/rule"
)

// Transform converts a fat arrow rule into the sum of thin arrow rules
// that is semantically equivalent to it, via the four-phase algorithm:
//
//   - Phase 1 splits each two-polynomial part into an effect-only ("tx")
//     rule and a cause-only ("rx") rule.
//   - Phase 2 merges same-list tx rules (and same-list rx rules) by
//     summing their non-empty polynomial.
//   - Phase 3 merges same-polynomial tx rules (and same-polynomial rx
//     rules) by summing their node lists.
//   - Phases 2 and 3 repeat until neither produces a merge.
//   - Phase 4 pairs each rx rule with a tx rule sharing its node list,
//     folding the rx rule's cause into it; unpaired rx rules become new
//     tx rules.
//
// Iteration order within each list is insertion order throughout, making
// the result deterministic for a given input.
func Transform(far rule.FatArrowRule) []rule.ThinArrowRule {
	txTars, rxTars := splitParts(far)

	for {
		var mergedByNodes, mergedByPoly bool

		txTars, rxTars, mergedByNodes = mergeByNodes(txTars, rxTars)
		txTars, rxTars, mergedByPoly = mergeByPolynomial(txTars, rxTars)

		if !mergedByNodes && !mergedByPoly {
			break
		}
	}

	return pairUp(txTars, rxTars)
}

// splitParts is FIT Phase 1.
func splitParts(far rule.FatArrowRule) (tx, rx []rule.ThinArrowRule) {
	for _, part := range far.Parts() {
		sources := part.Cause.FlattenedClone()
		sinks := part.Effect.FlattenedClone()

		txTar, err := rule.NewThinArrowRule().WithNodes(sources)
		if err != nil {
			panic("fit: flattened cause is not a node list: " + err.Error())
		}
		tx = append(tx, txTar.WithEffect(part.Effect.Clone()))

		rxTar, err := rule.NewThinArrowRule().WithNodes(sinks)
		if err != nil {
			panic("fit: flattened effect is not a node list: " + err.Error())
		}
		rx = append(rx, rxTar.WithCause(part.Cause.Clone()))
	}
	return tx, rx
}

// mergeByNodes is FIT Phase 2: within each list, TARs sharing a node list
// are folded together by summing their non-empty polynomial.
func mergeByNodes(tx, rx []rule.ThinArrowRule) (newTx, newRx []rule.ThinArrowRule, merged bool) {
	newTx, mergedTx := mergeTxByNodes(tx)
	newRx, mergedRx := mergeRxByNodes(rx)
	return newTx, newRx, mergedTx || mergedRx
}

func mergeTxByNodes(tx []rule.ThinArrowRule) ([]rule.ThinArrowRule, bool) {
	var out []rule.ThinArrowRule
	merged := false

outer:
	for _, t := range tx {
		for i, existing := range out {
			if existing.NodeList().Equal(t.NodeList()) {
				effect := existing.Effect()
				effect.AddAssign(t.Effect())
				out[i] = existing.WithEffect(effect)
				merged = true
				continue outer
			}
		}
		out = append(out, t)
	}
	return out, merged
}

func mergeRxByNodes(rx []rule.ThinArrowRule) ([]rule.ThinArrowRule, bool) {
	var out []rule.ThinArrowRule
	merged := false

outer:
	for _, t := range rx {
		for i, existing := range out {
			if existing.NodeList().Equal(t.NodeList()) {
				cause := existing.Cause()
				cause.AddAssign(t.Cause())
				out[i] = existing.WithCause(cause)
				merged = true
				continue outer
			}
		}
		out = append(out, t)
	}
	return out, merged
}

// mergeByPolynomial is FIT Phase 3: within each list, TARs sharing their
// relevant polynomial are folded together by summing their node lists.
func mergeByPolynomial(tx, rx []rule.ThinArrowRule) (newTx, newRx []rule.ThinArrowRule, merged bool) {
	newTx, mergedTx := mergeTxByEffect(tx)
	newRx, mergedRx := mergeRxByCause(rx)
	return newTx, newRx, mergedTx || mergedRx
}

func mergeTxByEffect(tx []rule.ThinArrowRule) ([]rule.ThinArrowRule, bool) {
	var out []rule.ThinArrowRule
	merged := false

outer:
	for _, t := range tx {
		for i, existing := range out {
			if existing.Effect().Equal(t.Effect()) {
				nodes := existing.NodeList()
				nodes.AddAssign(t.NodeList())
				rebuilt, err := existing.WithNodes(poly.FromNodeList(nodes))
				if err != nil {
					panic("fit: merged node list rejected as not a node list: " + err.Error())
				}
				out[i] = rebuilt
				merged = true
				continue outer
			}
		}
		out = append(out, t)
	}
	return out, merged
}

func mergeRxByCause(rx []rule.ThinArrowRule) ([]rule.ThinArrowRule, bool) {
	var out []rule.ThinArrowRule
	merged := false

outer:
	for _, t := range rx {
		for i, existing := range out {
			if existing.Cause().Equal(t.Cause()) {
				nodes := existing.NodeList()
				nodes.AddAssign(t.NodeList())
				rebuilt, err := existing.WithNodes(poly.FromNodeList(nodes))
				if err != nil {
					panic("fit: merged node list rejected as not a node list: " + err.Error())
				}
				out[i] = rebuilt
				merged = true
				continue outer
			}
		}
		out = append(out, t)
	}
	return out, merged
}

// pairUp is FIT Phase 4: each rx rule is combined into the first tx rule
// sharing its node list, or appended as a new tx rule otherwise.
func pairUp(tx, rx []rule.ThinArrowRule) []rule.ThinArrowRule {
	out := append([]rule.ThinArrowRule(nil), tx...)

outer:
	for _, r := range rx {
		for i, t := range out {
			if r.NodeList().Equal(t.NodeList()) {
				out[i] = t.WithCause(r.Cause())
				continue outer
			}
		}
		out = append(out, r)
	}
	return out
}
