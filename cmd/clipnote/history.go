// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clipnote/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history [OUT_DIR]",
	Short: "List the conversions recorded in a ledger",
	Long: `History reads the conversion ledger and lists the recorded clippings,
newest first. The ledger is --ledger, the configured ledger, or
OUT_DIR/.clipnote.db. Use --images to export the image manifests of every
recorded note as YAML for a downloader.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := vaultConfig()
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("ledger")
	if dbPath == "" {
		dbPath = cfg.Ledger
	}
	if dbPath == "" && len(args) == 1 {
		dbPath = filepath.Join(args[0], ledger.DefaultFile)
	}
	if dbPath == "" {
		return fmt.Errorf("ledger required: provide OUT_DIR or --ledger")
	}

	l, err := ledger.Open(dbPath)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if images, _ := cmd.Flags().GetBool("images"); images {
		return l.ExportImagesYAML(ctx, out)
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return l.ExportJSON(ctx, out)
	}

	entries, err := l.List(ctx)
	if err != nil {
		return err
	}
	formatHistory(out, entries)
	return nil
}

func formatHistory(w io.Writer, entries []ledger.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-30s  %-40s  %s\n", "Converted", "Clipping", "Title", "Images")
	fmt.Fprintln(w, strings.Repeat("-", 98))

	for _, e := range entries {
		fmt.Fprintf(w, "%-16s  %-30s  %-40s  %d\n",
			e.ConvertedAt.Local().Format("2006-01-02 15:04"),
			truncate(filepath.Base(e.Input), 30),
			truncate(e.Title, 40),
			e.ImageCount)
	}

	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	historyCmd.Flags().String("ledger", "", "ledger database to read")
	historyCmd.Flags().Bool("json", false, "output the history as JSON")
	historyCmd.Flags().Bool("images", false, "export recorded image manifests as YAML")

	rootCmd.AddCommand(historyCmd)
}
