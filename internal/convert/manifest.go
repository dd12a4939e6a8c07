// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clipnote/pkg/types"
)

// Manifest formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ManifestFormat picks the manifest encoding from the file extension,
// falling back to def.
func ManifestFormat(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if strings.EqualFold(def, FormatJSON) {
		return FormatJSON
	}
	return FormatYAML
}

// EncodeManifest renders a conversion result in the given format.
func EncodeManifest(res types.ConversionResult, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling manifest: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("marshaling manifest: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
}

// WriteManifest writes the image manifest of res to path. The format comes
// from the extension of path, or def when the extension is not recognized.
func WriteManifest(path string, res types.ConversionResult, def string) error {
	data, err := EncodeManifest(res, ManifestFormat(path, def))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// WriteSummary prints the human-readable result of a single conversion,
// including the images an out-of-band downloader has to fetch.
func WriteSummary(w io.Writer, res types.ConversionResult) {
	fmt.Fprintf(w, "converted: %s\n", res.Input)
	fmt.Fprintf(w, "output:    %s\n", res.Output)
	if res.ImageCount == 0 {
		return
	}
	fmt.Fprintf(w, "\nImages to download (%d):\n", res.ImageCount)
	for _, img := range res.Images {
		fmt.Fprintf(w, "  - %s\n", img.SourceURL)
		fmt.Fprintf(w, "    -> %s\n", img.LocalFilename)
	}
}
