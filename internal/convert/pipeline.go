// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/clipnote/internal/citations"
	"github.com/pdiddy/clipnote/internal/cleanup"
	"github.com/pdiddy/clipnote/internal/figures"
	"github.com/pdiddy/clipnote/internal/frontmatter"
	"github.com/pdiddy/clipnote/internal/preamble"
	"github.com/pdiddy/clipnote/internal/references"
	"github.com/pdiddy/clipnote/pkg/types"
)

// dateLayout formats header and filename dates.
const dateLayout = "2006-01-02"

// leadingHeaderRe matches a metadata block at the very start of the body.
var leadingHeaderRe = regexp.MustCompile(`\A---\s*\n(?:.*?\n)*?---\s*\n`)

// Options configure a Pipeline.
type Options struct {
	// Config shapes the generated header. Zero fields take defaults.
	Config types.VaultConfig

	// Now supplies "today". Nil means time.Now.
	Now func() time.Time
}

func (o Options) today() string {
	if o.Now == nil {
		return time.Now().Format(dateLayout)
	}
	return o.Now().Format(dateLayout)
}

// Doc holds the state of one clipping as it passes through the pipeline.
type Doc struct {
	Info   types.DocumentInfo
	Header string             // generated vault header
	Body   string             // converted body without header or title
	Images []types.ImageEntry // figures relocated in stage 3
}

// Text assembles the note: header, depth-1 title, body. The title line is
// not repeated when the body already opens with it.
func (d Doc) Text() string {
	titleLine := "# " + d.Info.Title
	body := strings.TrimLeft(d.Body, " \t\r\n")
	if body == titleLine || strings.HasPrefix(body, titleLine+"\n") {
		return d.Header + "\n" + body
	}
	return d.Header + "\n" + titleLine + "\n" + body
}

// Pipeline converts OpenEvidence clipping text into a vault note.
type Pipeline struct {
	opts Options
}

// NewPipeline returns a Pipeline using opts.
func NewPipeline(opts Options) *Pipeline {
	opts.Config = opts.Config.WithDefaults()
	return &Pipeline{opts: opts}
}

// Convert runs every stage on text. stem is the input filename without
// extension, used when the clipping has no title heading. It never fails;
// unrecognized input passes through unchanged.
func (p *Pipeline) Convert(text, stem string) (Doc, error) {
	today := p.opts.today()
	doc := Doc{
		Info: frontmatter.Extract(text, stem, today, p.opts.Config),
		Body: text,
	}

	// Stage 1: Remove the UI preamble.
	doc.Body = preamble.Strip(doc.Body)

	// Stage 2: Rewrite inline citations as footnote markers.
	doc.Body = citations.Normalize(doc.Body)

	// Stage 3: Relocate figure blocks and build the image manifest.
	doc.Body, doc.Images = figures.Extract(doc.Body, doc.Info.Title, doc.Info.Date)

	// Stage 4: Restructure the reference list into footnote definitions.
	doc.Body = references.Restructure(doc.Body)

	// Stage 5: Final cleanup.
	doc.Body = cleanup.Apply(doc.Body)

	// Replace the clipper's metadata block with a generated header.
	doc.Body = leadingHeaderRe.ReplaceAllString(doc.Body, "")
	doc.Header = frontmatter.Generate(doc.Info, today, p.opts.Config)

	return doc, nil
}
