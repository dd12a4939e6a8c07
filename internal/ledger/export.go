// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ImageExport groups the images of one conversion for an out-of-band
// downloader.
type ImageExport struct {
	Note   string        `json:"note" yaml:"note"`
	Title  string        `json:"title" yaml:"title"`
	Images []ImageRecord `json:"images" yaml:"images"`
}

// ImageRecord is one recorded manifest entry.
type ImageRecord struct {
	SourceURL     string `json:"source_url" yaml:"source_url"`
	LocalFilename string `json:"local_filename" yaml:"local_filename"`
	Caption       string `json:"caption" yaml:"caption"`
}

// Images returns the recorded images grouped by conversion, newest
// conversion first. Conversions without images are omitted.
func (l *Ledger) Images(ctx context.Context) ([]ImageExport, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT c.id, c.output_path, COALESCE(c.title, ''), i.source_url, i.local_filename, COALESCE(i.caption, '')
		 FROM images i JOIN conversions c ON c.id = i.conversion_id
		 ORDER BY c.converted_at DESC, c.input_path, i.seq`)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	var exports []ImageExport
	lastID := ""
	for rows.Next() {
		var id, note, title string
		var img ImageRecord
		if err := rows.Scan(&id, &note, &title, &img.SourceURL, &img.LocalFilename, &img.Caption); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		if id != lastID {
			exports = append(exports, ImageExport{Note: note, Title: title})
			lastID = id
		}
		last := &exports[len(exports)-1]
		last.Images = append(last.Images, img)
	}
	return exports, rows.Err()
}

// ExportImagesYAML writes every recorded image manifest to w as YAML.
func (l *Ledger) ExportImagesYAML(ctx context.Context, w io.Writer) error {
	exports, err := l.Images(ctx)
	if err != nil {
		return err
	}
	if exports == nil {
		exports = []ImageExport{}
	}
	data, err := yaml.Marshal(exports)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the conversion history to w as indented JSON.
func (l *Ledger) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := l.List(ctx)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
