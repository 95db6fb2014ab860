// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the state of document-to-Markdown conversion.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Document records one converted source document. It links the extracted
// companies in the catalog back to where they came from.
type Document struct {
	// ID is a slug derived from the source filename or URI.
	ID string `json:"id" yaml:"id"`

	// SourceURI is the URI or path the document was converted from.
	SourceURI string `json:"source_uri" yaml:"source_uri"`

	// MarkdownPath is the local path of the converted Markdown, if persisted.
	MarkdownPath string `json:"markdown_path,omitempty" yaml:"markdown_path,omitempty"`

	// Backend identifies which conversion backend produced the Markdown.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// ConvertedAt is when the conversion ran.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
