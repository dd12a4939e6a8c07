// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preamble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "finished marker with metadata block",
			in: strings.Join([]string{
				"---",
				"title: Heart failure",
				"modified: 2025-03-04",
				"---",
				"# Heart failure (OpenEvidence)",
				"Ask a follow-up",
				"Finished researching",
				"",
				"### Heart failure",
				"Beta blockers reduce mortality.",
			}, "\n"),
			want: strings.Join([]string{
				"---",
				"title: Heart failure",
				"modified: 2025-03-04",
				"---",
				"Beta blockers reduce mortality.",
			}, "\n"),
		},
		{
			name: "falls back to first depth-4 heading",
			in: strings.Join([]string{
				"Sign in",
				"Share",
				"#### Overview",
				"Text.",
			}, "\n"),
			want: "#### Overview\nText.",
		},
		{
			name: "falls back to escaped citation line",
			in: strings.Join([]string{
				"Sign in",
				"Statins lower LDL.NEJM\\[3\\]",
				"More.",
			}, "\n"),
			want: "Statins lower LDL.NEJM\\[3\\]\nMore.",
		},
		{
			name: "no markers leaves text unchanged",
			in:   "Plain paragraph.\n\nAnother one.",
			want: "Plain paragraph.\n\nAnother one.",
		},
		{
			name: "marker without following content falls through",
			in:   "intro\n#### Heading\nFinished researching\n\n",
			want: "#### Heading\nFinished researching\n\n",
		},
		{
			name: "depth-4 heading is not a redundant title",
			in:   "Finished researching\n#### Keep me\nbody",
			want: "#### Keep me\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}

func TestStripIdempotentOnStrippedContent(t *testing.T) {
	in := "---\nmodified: 2025-01-01\n---\n## Section\nText with [^1] marker.\n"
	once := Strip(in)
	assert.Equal(t, in, once)
	assert.Equal(t, once, Strip(once))
}

func TestMetadataBounds(t *testing.T) {
	start, end := MetadataBounds([]string{"---", "a: 1", "---", "body", "---"})
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	start, end = MetadataBounds([]string{"---", "a: 1"})
	assert.Equal(t, -1, start)
	assert.Equal(t, -1, end)
}

func TestContentStartFallsBackToFrom(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, 1, ContentStart(lines, 1))
}
