// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch IN_DIR OUT_DIR",
	Short: "Convert every clipping in a directory",
	Long: `Batch converts each .md file directly inside IN_DIR and writes a note
with the same name into OUT_DIR. A failing clipping is reported and the
run continues. Clippings whose modification time matches the ledger are
skipped; use --no-ledger to convert everything.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
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

	result, err := runner.ConvertDir(ctx, inDir)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d clipping(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	addLedgerFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
