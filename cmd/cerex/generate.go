package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cerexlang/cerex/core/grammar"
)

func newGenerateCmd() *cobra.Command {
	var axiom string
	var limit int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enumerate sentences of the built-in Rex grammar, shortest-first",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grammar.OfRex()
			gen := grammar.NewGenerator(g, slog.Default())

			if err := gen.SetAxiom(axiom); err != nil {
				return err
			}

			count := 0
			for {
				if limit > 0 && count >= limit {
					break
				}
				sentence, ok := gen.Next()
				if !ok {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), sentence)
				count++
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&axiom, "axiom", "Rex", "grammar nonterminal to enumerate from")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of sentences to print (0 = unbounded)")

	return cmd
}
