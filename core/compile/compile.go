// Package compile lowers a normalized Rex into a content object via a
// post-order fold, honoring Sum (additive) and Product (multiplicative)
// combinators over an externally supplied backend.Context.
package compile

import (
	"log/slog"

	"github.com/cerexlang/cerex/core/backend"
	"github.com/cerexlang/cerex/core/rex"
	"github.com/cerexlang/cerex/internal/cerr"
)

// CheckDependencies returns the first Instance name in r that ctx does not
// yet have content for, or ("", false) if every dependency is satisfied.
// Callers may use this to recover: install the missing content and retry,
// rather than treating the failure as fatal.
func CheckDependencies(r rex.Rex, ctx backend.Context) (string, bool) {
	for _, n := range r.Kinds {
		if n.Kind == rex.KindInstance && !ctx.HasContent(n.Instance.Name) {
			return string(n.Instance.Name), true
		}
	}
	return "", false
}

// Compile normalizes r via FitClone and lowers it into a PartialContent
// against ctx. The compiler fails fast: on any error, no partial content
// is returned, and an empty Rex (after normalization) compiles to an
// empty, not erroneous, content.
func Compile(r rex.Rex, ctx backend.Context, log *slog.Logger) (backend.PartialContent, error) {
	if log == nil {
		log = slog.Default()
	}

	normalized := r.FitClone()

	if len(normalized.Kinds) == 0 {
		return ctx.NewContent(), nil
	}

	mergedContent := make([]backend.PartialContent, len(normalized.Kinds))
	parentPos := make([]int, len(normalized.Kinds))

	for pos, n := range normalized.Kinds {
		if n.Kind != rex.KindProduct && n.Kind != rex.KindSum {
			continue
		}

		mergedContent[pos] = ctx.NewContent()
		log.Debug("rex compile node", "pos", pos, "kind", n.Kind)

		for _, id := range n.Tree.IDs {
			if id > pos {
				parentPos[id] = pos
			} else {
				return nil, cerr.NewInvalidAST("child index does not exceed its parent's position")
			}
		}
	}

	for pos := len(normalized.Kinds) - 1; pos >= 0; pos-- {
		n := normalized.Kinds[pos]

		var content backend.PartialContent
		switch n.Kind {
		case rex.KindThin:
			content = n.Thin.Compile(ctx, log)
		case rex.KindFat:
			return nil, cerr.NewFatLeak()
		case rex.KindInstance:
			got, ok := ctx.GetContent(n.Instance.Name)
			if !ok {
				return nil, cerr.NewUnexpectedDependency(string(n.Instance.Name))
			}
			content = got
		case rex.KindProduct, rex.KindSum:
			if mergedContent[pos] == nil {
				return nil, cerr.NewInvalidAST("missing merged content slot")
			}
			content = mergedContent[pos]
		}

		if pos == 0 {
			return content, nil
		}

		parent := parentPos[pos]
		parentContent := mergedContent[parent]
		if parentContent == nil {
			return nil, cerr.NewInvalidAST("missing parent content slot")
		}

		switch normalized.Kinds[parent].Kind {
		case rex.KindProduct:
			parentContent.Mul(content)
		case rex.KindSum:
			parentContent.Add(content)
		default:
			return nil, cerr.NewInvalidAST("parent node is neither Sum nor Product")
		}
	}

	panic("compile: post-order fold did not reach the root")
}
