// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LinkKind identifies how a reference URL is labelled in its footnote.
type LinkKind string

const (
	LinkGeneric LinkKind = "link"
	LinkPubMed  LinkKind = "pmid"
	LinkPMC     LinkKind = "pmc"
)

// ReferenceEntry is one verbose reference-list item parsed into components.
type ReferenceEntry struct {
	// Number is the footnote ordinal. Only successfully parsed entries
	// consume a number.
	Number int `json:"number" yaml:"number"`

	// Authors is optional; the footnote omits the clause when empty.
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Title is the display text of the entry's first link.
	Title string `json:"title" yaml:"title"`

	// Journal is the text before the year on the journal line.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the first 19xx/20xx year on the journal line, if any.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// URL is the link target with tracking parameters removed.
	URL string `json:"url" yaml:"url"`

	// LinkKind selects the footnote link label.
	LinkKind LinkKind `json:"link_kind" yaml:"link_kind"`

	// Identifier is the recognized identifier (PMID or PMCID) for non-generic links.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
}
