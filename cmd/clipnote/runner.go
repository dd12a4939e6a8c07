// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clipnote/internal/convert"
	"github.com/pdiddy/clipnote/internal/ledger"
	"github.com/pdiddy/clipnote/pkg/types"
)

// ensureDistinct rejects an output directory that is the input directory,
// where notes would overwrite the clippings they came from.
func ensureDistinct(inDir, outDir string) error {
	in, err := filepath.Abs(inDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", inDir, err)
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", outDir, err)
	}
	if in == out {
		return fmt.Errorf("output directory %s must differ from input directory %s", outDir, inDir)
	}
	return nil
}

// ledgerPath resolves the ledger for a directory run: --no-ledger disables
// it, --ledger overrides it, then the configured path, then OUT_DIR/.clipnote.db.
func ledgerPath(cmd *cobra.Command, cfg types.VaultConfig, outDir string) string {
	if off, _ := cmd.Flags().GetBool("no-ledger"); off {
		return ""
	}
	if p, _ := cmd.Flags().GetString("ledger"); p != "" {
		return p
	}
	if cfg.Ledger != "" {
		return cfg.Ledger
	}
	return filepath.Join(outDir, ledger.DefaultFile)
}

// newRunner builds a Runner writing into outDir. The returned close function
// releases the ledger, if one was opened.
func newRunner(cmd *cobra.Command, cfg types.VaultConfig, outDir, dbPath string) (*convert.Runner, func(), error) {
	r := &convert.Runner{
		Converter: convert.NewPipeline(convert.Options{Config: cfg}),
		OutDir:    outDir,
		Out:       cmd.OutOrStdout(),
		Logger:    logger(),
	}
	if dbPath == "" {
		return r, func() {}, nil
	}

	l, err := ledger.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	r.Ledger = l
	r.Logger.Debug("using ledger", "path", l.Path())
	return r, func() { l.Close() }, nil
}

// recordConversion stores a single conversion in the ledger at dbPath.
func recordConversion(ctx context.Context, dbPath, inPath string, res types.ConversionResult) error {
	info, err := os.Stat(inPath)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", inPath, err)
	}
	l, err := ledger.Open(dbPath)
	if err != nil {
		return err
	}
	defer l.Close()
	return l.Record(ctx, res, info.ModTime())
}

func addLedgerFlags(cmd *cobra.Command) {
	cmd.Flags().String("ledger", "", "ledger database (default: OUT_DIR/"+ledger.DefaultFile+")")
	cmd.Flags().Bool("no-ledger", false, "convert every clipping without consulting or updating the ledger")
}
