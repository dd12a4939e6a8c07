// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clipnote/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Convert one clipping into a vault note",
	Long: `Convert reads one OpenEvidence clipping, runs the conversion pipeline and
writes the note to OUTPUT. The images referenced by the note are listed so
they can be downloaded separately; --manifest also writes them to a YAML or
JSON file. Nothing is written if the conversion fails.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	cfg, err := vaultConfig()
	if err != nil {
		return err
	}

	p := convert.NewPipeline(convert.Options{Config: cfg})
	res, err := convert.ConvertFile(p, inPath, outPath)
	if err != nil {
		return err
	}

	ledgerPath, _ := cmd.Flags().GetString("ledger")
	if ledgerPath == "" {
		ledgerPath = cfg.Ledger
	}
	if ledgerPath != "" {
		if err := recordConversion(cmd.Context(), ledgerPath, inPath, res); err != nil {
			logger().Warn("recording conversion failed", "ledger", ledgerPath, "error", err)
		}
	}

	if manifestPath, _ := cmd.Flags().GetString("manifest"); manifestPath != "" {
		if err := convert.WriteManifest(manifestPath, res, cfg.ManifestFormat); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	convert.WriteSummary(out, res)
	return nil
}

func init() {
	convertCmd.Flags().String("manifest", "", "write the image manifest to this file (.yaml, .yml or .json)")
	convertCmd.Flags().Bool("json", false, "print the conversion result as JSON")
	convertCmd.Flags().String("ledger", "", "record the conversion in this ledger database")

	rootCmd.AddCommand(convertCmd)
}
