// Command cerex is a small demonstration and exploration driver for the
// rule-expression engine: it generates example sentences from the
// built-in grammar, and compiles a few canned Rex examples against an
// in-memory context. The concrete surface-grammar parser is outside this
// engine's scope, so cerex builds its Rex values programmatically rather
// than accepting CES source text.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "cerex",
		Short:         "Rule expression engine demonstration CLI",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug-level logging")

	rootCmd.AddCommand(newGenerateCmd(), newCompileCmd())

	ctx, cancel := newCancellableContext()
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cerex: %v\n", err)
		os.Exit(1)
	}
}

func newCancellableContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}
