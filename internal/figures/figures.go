// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package figures relocates OpenEvidence figure blocks into inline image
// fragments and records an image manifest for out-of-band download.
//
// A figure block is an image hosted on storage.googleapis.com, a caption
// line starting "Figure N." or "Table N.", a titled source link followed by
// journal/date text, and an optional license line. Blocks missing any
// required part are left untouched.
package figures

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/clipnote/internal/urlclean"
	"github.com/pdiddy/clipnote/pkg/types"
)

var (
	figureBlockRe = regexp.MustCompile(
		`!\[\]\((https://storage\.googleapis\.com/[^)]+)\)\s*\n` +
			`\s*\n?` +
			`((?:Figure|Table)\s+\d+\.?\s*[^\n]+)\s*\n` +
			`\s*\n?` +
			`\[([^\]]+)\]\(([^)]+)\)\s*([^\n]+)\s*\n` +
			`(?:[^\n]*(?:license|License)[^\n]*\n)?`,
	)

	unsafeFilenameRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// Extract replaces every figure block in text with an inline fragment and
// returns the manifest in document order. title and date name the local
// image files.
func Extract(text, title, date string) (string, []types.ImageEntry) {
	var manifest []types.ImageEntry
	safeTitle := SafeTitle(title)

	out := figureBlockRe.ReplaceAllStringFunc(text, func(block string) string {
		m := figureBlockRe.FindStringSubmatch(block)
		entry := types.ImageEntry{
			SourceURL:     m[1],
			LocalFilename: Filename(safeTitle, date, len(manifest)+1),
			Caption:       strings.TrimSpace(m[2]),
		}
		manifest = append(manifest, entry)

		articleTitle := strings.TrimRight(strings.TrimSpace(m[3]), ".")
		sourceURL := urlclean.Clean(strings.TrimSpace(m[4]))
		journalDate := strings.TrimSpace(m[5])
		return Fragment(entry, articleTitle, journalDate, sourceURL)
	})

	return out, manifest
}

// SafeTitle removes characters that are not letters, digits, underscores,
// whitespace or hyphens, and collapses whitespace runs to one space.
func SafeTitle(title string) string {
	s := strings.TrimSpace(unsafeFilenameRe.ReplaceAllString(title, ""))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// Filename composes "{safeTitle}-{date}-{seq}.png".
func Filename(safeTitle, date string, seq int) string {
	return fmt.Sprintf("%s-%s-%d.png", safeTitle, date, seq)
}

// Fragment renders the inline image span that replaces a figure block.
func Fragment(entry types.ImageEntry, articleTitle, journalDate, sourceURL string) string {
	var b strings.Builder
	b.WriteString(`<span class="rightimg">`)
	b.WriteString(`<a href="#" tabindex="0">`)
	fmt.Fprintf(&b, `<img src="%s" >`, entry.LocalFilename)
	b.WriteString(`</a>`)
	fmt.Fprintf(&b, "%s Ref: %s. %s %s", entry.Caption, articleTitle, journalDate, sourceURL)
	b.WriteString(`</span>`)
	return b.String()
}
