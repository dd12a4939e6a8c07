// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the clipnote conversion
// pipeline: the document info derived from a clipping, the image manifest,
// parsed reference entries, and the result handed back to callers.
package types

// DocumentInfo is the metadata record derived once from the original clipping.
// It feeds figure filename derivation and header generation.
type DocumentInfo struct {
	// Title is the first depth-1 heading (or the input filename stem) with any
	// trailing parenthetical suffix removed.
	Title string `json:"title" yaml:"title"`

	// Date is the clipping's modification date in YYYY-MM-DD form.
	Date string `json:"date" yaml:"date"`

	// SourceURL is the OpenEvidence conversation URL, if one was found.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// Topics lists up to five depth-3/4 headings in document order.
	Topics []string `json:"topics" yaml:"topics"`

	// Area is the vault classification (e.g. "medicine").
	Area string `json:"area" yaml:"area"`
}

// ImageEntry records one figure relocated by the figure extractor. The
// pipeline never fetches the image; entries are handed to an out-of-band
// downloader.
type ImageEntry struct {
	// SourceURL is the external image location.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// LocalFilename is "{title}-{date}-{n}.png", n starting at 1.
	LocalFilename string `json:"local_filename" yaml:"local_filename"`

	// Caption is the "Figure N." / "Table N." caption line.
	Caption string `json:"caption" yaml:"caption"`
}
