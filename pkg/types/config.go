// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VaultConfig holds the settings that shape the generated note header and the
// CLI's side outputs. Loaded from clipnote.yaml and CLIPNOTE_* variables.
type VaultConfig struct {
	// Area is the fixed domain classification written as "area:" and as the
	// root tag (default "medicine").
	Area string `json:"area" yaml:"area" mapstructure:"area"`

	// DocumentType is written as "document-type:" (default "article").
	DocumentType string `json:"document_type" yaml:"document_type" mapstructure:"document_type"`

	// Status is written as "status:" (default "draft").
	Status string `json:"status" yaml:"status" mapstructure:"status"`

	// SummaryPrefix precedes the title in the generated summary line.
	SummaryPrefix string `json:"summary_prefix" yaml:"summary_prefix" mapstructure:"summary_prefix"`

	// MaxTopics caps the topics list (default 5).
	MaxTopics int `json:"max_topics" yaml:"max_topics" mapstructure:"max_topics"`

	// MaxTags caps the tags list (default 10).
	MaxTags int `json:"max_tags" yaml:"max_tags" mapstructure:"max_tags"`

	// TopicTags is how many topics become "area/topic" tags (default 3).
	TopicTags int `json:"topic_tags" yaml:"topic_tags" mapstructure:"topic_tags"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// Ledger is the SQLite ledger path. Empty disables the ledger for single
	// conversions; batch and watch default to OUT_DIR/.clipnote.db.
	Ledger string `json:"ledger,omitempty" yaml:"ledger,omitempty" mapstructure:"ledger"`

	// ManifestFormat is "yaml" or "json" for --manifest files without a
	// recognized extension.
	ManifestFormat string `json:"manifest_format" yaml:"manifest_format" mapstructure:"manifest_format"`
}

// DefaultVaultConfig returns the settings used when no configuration is given.
func DefaultVaultConfig() VaultConfig {
	return VaultConfig{
		Area:           "medicine",
		DocumentType:   "article",
		Status:         "draft",
		SummaryPrefix:  "OpenEvidence article on",
		MaxTopics:      5,
		MaxTags:        10,
		TopicTags:      3,
		LogLevel:       "info",
		ManifestFormat: "yaml",
	}
}

// WithDefaults returns a copy of c with zero-valued fields replaced by
// their defaults.
func (c VaultConfig) WithDefaults() VaultConfig {
	d := DefaultVaultConfig()
	if c.Area == "" {
		c.Area = d.Area
	}
	if c.DocumentType == "" {
		c.DocumentType = d.DocumentType
	}
	if c.Status == "" {
		c.Status = d.Status
	}
	if c.SummaryPrefix == "" {
		c.SummaryPrefix = d.SummaryPrefix
	}
	if c.MaxTopics <= 0 {
		c.MaxTopics = d.MaxTopics
	}
	if c.MaxTags <= 0 {
		c.MaxTags = d.MaxTags
	}
	if c.TopicTags <= 0 {
		c.TopicTags = d.TopicTags
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.ManifestFormat == "" {
		c.ManifestFormat = d.ManifestFormat
	}
	return c
}
