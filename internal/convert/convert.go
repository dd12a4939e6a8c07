// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns OpenEvidence web-clipper exports into vault notes.
// The Pipeline runs the text stages in a fixed order; ConvertFile and the
// Runner handle the file boundary, progress reporting and the optional
// conversion ledger.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/clipnote/internal/logging"
	"github.com/pdiddy/clipnote/pkg/types"
)

// ErrInputNotFound is wrapped when the clipping to convert does not exist.
var ErrInputNotFound = errors.New("input not found")

// clippingExt is the extension of clipper exports and of generated notes.
const clippingExt = ".md"

// Converter transforms clipping text into a note. Pipeline is the
// production implementation.
type Converter interface {
	// Convert converts text; stem is the input filename without extension.
	Convert(text, stem string) (Doc, error)
}

// Recorder remembers which clippings were converted. *ledger.Ledger
// implements it.
type Recorder interface {
	// NeedsConversion reports whether input changed since it was recorded.
	NeedsConversion(ctx context.Context, input string, modTime time.Time) (bool, error)
	// Record stores a successful conversion.
	Record(ctx context.Context, res types.ConversionResult, modTime time.Time) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Results lists the successful conversions in input order.
	Results []types.ConversionResult
}

// Total returns the total number of clippings processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any clipping failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile reads inPath, converts it and writes the note to outPath,
// creating the output directory when needed. Nothing is written unless the
// whole conversion succeeds.
func ConvertFile(c Converter, inPath, outPath string) (types.ConversionResult, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ConversionResult{}, fmt.Errorf("%w: %s", ErrInputNotFound, inPath)
		}
		return types.ConversionResult{}, fmt.Errorf("reading input %s: %w", inPath, err)
	}

	doc, err := c.Convert(string(data), stem(inPath))
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("converting %s: %w", inPath, err)
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return types.ConversionResult{}, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPath, []byte(doc.Text()), 0o644); err != nil {
		return types.ConversionResult{}, fmt.Errorf("writing output %s: %w", outPath, err)
	}

	images := doc.Images
	if images == nil {
		images = []types.ImageEntry{}
	}
	return types.ConversionResult{
		Input:      inPath,
		Output:     outPath,
		Title:      doc.Info.Title,
		Images:     images,
		ImageCount: len(images),
	}, nil
}

// Runner converts clippings into OutDir, one note per clipping with the
// same base name, and prints one status line per clipping to Out.
type Runner struct {
	Converter Converter
	OutDir    string

	// Ledger, when set, skips unchanged clippings and records conversions.
	Ledger Recorder

	// Out receives progress lines. Nil discards them.
	Out io.Writer

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}

// OutputPath returns the note path for a clipping.
func (r *Runner) OutputPath(inPath string) string {
	return filepath.Join(r.OutDir, stem(inPath)+clippingExt)
}

// ConvertClipping converts one clipping and returns its status. With a
// ledger, a clipping whose modification time matches the recorded one is
// skipped.
func (r *Runner) ConvertClipping(ctx context.Context, inPath string) (types.ConversionResult, types.ConversionStatus) {
	w := r.out()
	base := filepath.Base(inPath)

	info, err := os.Stat(inPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionResult{}, types.ConversionFailed
	}
	modTime := info.ModTime()

	if r.Ledger != nil {
		needed, err := r.Ledger.NeedsConversion(ctx, inPath, modTime)
		if err != nil {
			r.logger().Warn("ledger lookup failed", "input", inPath, "error", err)
		} else if !needed {
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", base)
			return types.ConversionResult{}, types.ConversionSkipped
		}
	}

	res, err := ConvertFile(r.Converter, inPath, r.OutputPath(inPath))
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionResult{}, types.ConversionFailed
	}

	if r.Ledger != nil {
		if err := r.Ledger.Record(ctx, res, modTime); err != nil {
			r.logger().Warn("recording conversion failed", "input", inPath, "error", err)
		}
	}

	if res.ImageCount > 0 {
		fmt.Fprintf(w, "converted: %s (%d images)\n", base, res.ImageCount)
	} else {
		fmt.Fprintf(w, "converted: %s\n", base)
	}
	r.logger().Debug("converted clipping", "input", inPath, "output", res.Output, "title", res.Title)
	return res, types.ConversionDone
}

// ConvertBatch converts every input, printing per-file status and a
// summary line. It stops early when ctx is cancelled.
func (r *Runner) ConvertBatch(ctx context.Context, inputs []string) (BatchResult, error) {
	var result BatchResult
	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		res, status := r.ConvertClipping(ctx, in)
		switch status {
		case types.ConversionDone:
			result.Converted++
			result.Results = append(result.Results, res)
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(r.out(), "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ConvertDir converts every clipping directly inside inDir.
func (r *Runner) ConvertDir(ctx context.Context, inDir string) (BatchResult, error) {
	inputs, err := ListClippings(inDir)
	if err != nil {
		return BatchResult{}, err
	}
	return r.ConvertBatch(ctx, inputs)
}

// ListClippings returns the sorted paths of the .md files directly inside
// dir. Hidden files are ignored.
func ListClippings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, dir)
		}
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsClipping(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// IsClipping reports whether name looks like a clipper export.
func IsClipping(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), clippingExt)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
