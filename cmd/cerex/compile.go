package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cerexlang/cerex/core/backend"
	"github.com/cerexlang/cerex/core/compile"
	"github.com/cerexlang/cerex/core/poly"
	"github.com/cerexlang/cerex/core/rex"
	"github.com/cerexlang/cerex/core/rule"
	"github.com/cerexlang/cerex/internal/memcontext"
)

// builtinExample returns one of the end-to-end scenarios used to pin down
// FIT and the compiler, built programmatically since the surface parser
// is outside this engine's scope.
func builtinExample(name string) (rex.Rex, error) {
	switch name {
	case "chain":
		// "a => b"
		far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
			{Op: rule.FatTx, Poly: poly.FromName("b")},
		})
		return rex.FromFatArrowRule(far), nil
	case "sequence":
		// "a => b => c"
		far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
			{Op: rule.FatTx, Poly: poly.FromName("b")},
			{Op: rule.FatTx, Poly: poly.FromName("c")},
		})
		return rex.FromFatArrowRule(far), nil
	case "fork":
		// "a <= b => c"
		far := rule.NewFatArrowRule(poly.FromName("a"), []rule.FatArrowTailElem{
			{Op: rule.FatRx, Poly: poly.FromName("b")},
			{Op: rule.FatTx, Poly: poly.FromName("c")},
		})
		return rex.FromFatArrowRule(far), nil
	default:
		return rex.Rex{}, fmt.Errorf("unknown example %q (want one of: chain, sequence, fork)", name)
	}
}

func newCompileCmd() *cobra.Command {
	var example string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Normalize and compile a built-in Rex example",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := builtinExample(example)
			if err != nil {
				return err
			}

			ctx := memcontext.New()
			content, err := compile.Compile(r, ctx, slog.Default())
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}

			mem := content.(*memcontext.Content)
			printContent(cmd, mem)
			return nil
		},
	}

	cmd.Flags().StringVar(&example, "example", "chain", "built-in example to compile: chain, sequence, fork")

	return cmd
}

func printContent(cmd *cobra.Command, content *memcontext.Content) {
	seen := make(map[uint64]struct{})
	var ids []uint64
	for id := range content.Causes() {
		if _, ok := seen[uint64(id)]; !ok {
			seen[uint64(id)] = struct{}{}
			ids = append(ids, uint64(id))
		}
	}
	for id := range content.Effects() {
		if _, ok := seen[uint64(id)]; !ok {
			seen[uint64(id)] = struct{}{}
			ids = append(ids, uint64(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		nodeID := backend.NodeID(id)
		fmt.Fprintf(cmd.OutOrStdout(), "node %d: cause=%v effect=%v\n",
			id, content.Causes()[nodeID], content.Effects()[nodeID])
	}
}
