// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of converting one clipping.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionResult is returned to the CLI after a conversion. It is the sole
// hand-off point for downloading images.
type ConversionResult struct {
	// Input is the path of the clipping that was read.
	Input string `json:"input" yaml:"input"`

	// Output is the path of the note that was written.
	Output string `json:"output" yaml:"output"`

	// Title is the resolved document title.
	Title string `json:"title" yaml:"title"`

	// Images lists the relocated figures in document order.
	Images []ImageEntry `json:"images" yaml:"images"`

	// ImageCount is len(Images).
	ImageCount int `json:"image_count" yaml:"image_count"`
}
