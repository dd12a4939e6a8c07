// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter derives the document info of a clipping and renders
// the vault header that replaces the clipper's own metadata block.
package frontmatter

import (
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clipnote/internal/preamble"
	"github.com/pdiddy/clipnote/pkg/types"
)

// defaultTitle is used when neither a heading nor a filename is available.
const defaultTitle = "Document"

var (
	titleRe        = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)
	parenSuffixRe  = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	modifiedRe     = regexp.MustCompile(`modified:\s*(\d{4}-\d{2}-\d{2})`)
	dateRe         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	sourceURLRe    = regexp.MustCompile(`https://www\.openevidence\.com/ask/[a-f0-9-]+`)
	topicHeadingRe = regexp.MustCompile(`(?m)^#{3,4}[ \t]+(.+)$`)
)

// genericHeadings never become topics.
var genericHeadings = map[string]bool{
	"references":   true,
	"sources":      true,
	"bibliography": true,
}

// clipperHeader is the part of the web clipper's metadata block we read.
type clipperHeader struct {
	Modified string `yaml:"modified"`
}

// Extract builds the document info from the original clipping text. stem is
// the input filename without extension and today is the fallback date.
func Extract(text, stem, today string, cfg types.VaultConfig) types.DocumentInfo {
	cfg = cfg.WithDefaults()
	return types.DocumentInfo{
		Title:     Title(text, stem),
		Date:      Date(text, today),
		SourceURL: sourceURLRe.FindString(text),
		Topics:    Topics(text, cfg.MaxTopics),
		Area:      cfg.Area,
	}
}

// Title returns the first depth-1 heading, or stem, with any trailing
// parenthetical such as "(OpenEvidence)" removed.
func Title(text, stem string) string {
	title := stem
	if m := titleRe.FindStringSubmatch(text); m != nil {
		title = strings.TrimSpace(m[1])
	}
	title = parenSuffixRe.ReplaceAllString(title, "")
	if title == "" {
		return defaultTitle
	}
	return title
}

// Date returns the YYYY-MM-DD modification date from the clipper metadata
// block, falling back to a "modified:" field anywhere in text, then today.
func Date(text, today string) string {
	if d := headerDate(text); d != "" {
		return d
	}
	if m := modifiedRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return today
}

func headerDate(text string) string {
	lines := strings.Split(text, "\n")
	start, end := preamble.MetadataBounds(lines)
	if end < 0 {
		return ""
	}
	var h clipperHeader
	block := strings.Join(lines[start+1:end], "\n")
	if err := yaml.Unmarshal([]byte(block), &h); err != nil {
		return ""
	}
	return dateRe.FindString(strings.TrimSpace(h.Modified))
}

// Topics returns up to limit depth-3/4 headings taken from the first limit
// such headings, skipping generic section names.
func Topics(text string, limit int) []string {
	headings := topicHeadingRe.FindAllStringSubmatch(text, limit)
	topics := make([]string, 0, len(headings))
	for _, m := range headings {
		topic := strings.TrimSpace(m[1])
		if genericHeadings[strings.ToLower(topic)] {
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}
