package types

import "time"

// HTTPConfig holds shared HTTP settings used when fetching remote URIs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "companydir/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConversionBackend identifies the document-to-Markdown conversion tool.
type ConversionBackend string

const (
	// BackendMarkitdown pipes documents through the markitdown container image.
	BackendMarkitdown ConversionBackend = "markitdown"

	// BackendHTML converts HTML documents locally, without a container runtime.
	BackendHTML ConversionBackend = "html"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the conversion tool: markitdown or html.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// DocumentsDir is the base directory for documents (contains raw/, markdown/).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`
}

// ExtractionConfig holds settings for the directory extraction stage.
type ExtractionConfig struct {
	// DocumentsDir is the base directory for documents (contains markdown/).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// OutputDir is the directory for extracted company JSON files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ToolConfig holds settings for the stdio tool server and the client that
// spawns it.
type ToolConfig struct {
	// Command is the executable the client launches as the tool server.
	// Empty means the current binary re-invoked with "tool-server".
	Command string `json:"command,omitempty" yaml:"command,omitempty"`

	// Args are extra arguments passed to the server command.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// WebConfig holds settings for the web interface.
type WebConfig struct {
	// Addr is the listen address (default "localhost:8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps uploaded document size (default 16 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// CatalogConfig holds settings for the SQLite company catalog.
type CatalogConfig struct {
	// DataDir is the directory holding the catalog database.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
