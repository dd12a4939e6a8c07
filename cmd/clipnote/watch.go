// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clipnote/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch IN_DIR OUT_DIR",
	Short: "Convert clippings as they appear in a directory",
	Long: `Watch converts the clippings already in IN_DIR, then keeps running and
converts each .md file that is created or rewritten there. Events for the
same file are coalesced until it has been quiet for --settle. Stop with
Ctrl-C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	inDir, outDir := args[0], args[1]
	if err := ensureDistinct(inDir, outDir); err != nil {
		return err
	}

	cfg, err := vaultConfig()
	if err != nil {
		return err
	}

	runner, closeLedger, err := newRunner(cmd, cfg, outDir, ledgerPath(cmd, cfg, outDir))
	if err != nil {
		return err
	}
	defer closeLedger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if noInitial, _ := cmd.Flags().GetBool("no-initial"); !noInitial {
		if _, err := runner.ConvertDir(ctx, inDir); err != nil {
			return err
		}
	}

	w := watch.New(inDir, func(ctx context.Context, path string) {
		runner.ConvertClipping(ctx, path)
	}, runner.Logger)
	if settle, _ := cmd.Flags().GetDuration("settle"); settle > 0 {
		w.SetSettle(settle)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (Ctrl-C to stop)\n", inDir)
	return w.Run(ctx)
}

func init() {
	watchCmd.Flags().Duration("settle", watch.DefaultSettle, "quiet period before a changed clipping is converted")
	watchCmd.Flags().Bool("no-initial", false, "skip converting the clippings already present")
	addLedgerFlags(watchCmd)

	rootCmd.AddCommand(watchCmd)
}
