// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clipnote/pkg/types"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Generate renders the vault header for info, dated today. The result
// starts and ends with a "---" line and has no trailing newline.
func Generate(info types.DocumentInfo, today string, cfg types.VaultConfig) string {
	cfg = cfg.WithDefaults()

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "created: %s\n", today)
	fmt.Fprintf(&b, "modified: %s\n", today)
	fmt.Fprintf(&b, "document-type: %s\n", scalar(cfg.DocumentType))
	fmt.Fprintf(&b, "status: %s\n", scalar(cfg.Status))

	if info.Area != "" {
		fmt.Fprintf(&b, "area: %s\n", scalar(info.Area))
	}

	if len(info.Topics) > 0 {
		b.WriteString("topics:\n")
		for _, t := range capped(info.Topics, cfg.MaxTopics) {
			fmt.Fprintf(&b, "  - %s\n", scalar(t))
		}
	}

	b.WriteString("tags:\n")
	for _, t := range capped(Tags(info, cfg.TopicTags), cfg.MaxTags) {
		fmt.Fprintf(&b, "  - %s\n", scalar(t))
	}

	if info.SourceURL != "" {
		fmt.Fprintf(&b, "source: %s\n", info.SourceURL)
	}

	summary := cfg.SummaryPrefix + " " + info.Title
	fmt.Fprintf(&b, "summary: %s\n", quoted(summary))
	b.WriteString("---")
	return b.String()
}

// Tags returns the area tag followed by up to topicTags "area/slug" tags
// built from the leading topics. Duplicate tags are dropped.
func Tags(info types.DocumentInfo, topicTags int) []string {
	var tags []string
	if info.Area != "" {
		tags = append(tags, info.Area)
	}
	area := info.Area
	if area == "" {
		area = types.DefaultVaultConfig().Area
	}
	for _, topic := range capped(info.Topics, topicTags) {
		slug := Slug(topic)
		if slug == "" {
			continue
		}
		tag := area + "/" + slug
		if slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Slug lower-cases s, drops characters other than letters, digits,
// underscores, whitespace and hyphens, and joins words with hyphens.
func Slug(s string) string {
	s = nonWordRe.ReplaceAllString(strings.ToLower(s), "")
	return whitespaceRe.ReplaceAllString(s, "-")
}

// scalar renders s as a YAML flow scalar, quoting only when a plain scalar
// would change its meaning.
func scalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return quoted(s)
	}
	return strings.TrimSuffix(string(out), "\n")
}

// quoted renders s as a double-quoted YAML scalar.
func quoted(s string) string {
	node := &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: s}
	out, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(string(out), "\n")
}

func capped(s []string, n int) []string {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}
