// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pdiddy/companydir/internal/httputil"
	"github.com/pdiddy/companydir/pkg/types"
)

// Fetch resolves a URI to a local file path a Converter can read. Supported
// schemes match the interactive client surface: http, https, file and data.
// The returned cleanup func removes any temporary file and is never nil.
func Fetch(ctx context.Context, client *http.Client, uri string, cfg types.HTTPConfig) (string, func(), error) {
	noop := func() {}

	switch {
	case strings.HasPrefix(uri, "file://"):
		p := strings.TrimPrefix(uri, "file://")
		if _, err := os.Stat(p); err != nil {
			return "", noop, fmt.Errorf("local file %s: %w", p, err)
		}
		return p, noop, nil

	case strings.HasPrefix(uri, "data:"):
		return fetchData(uri)

	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return fetchHTTP(ctx, client, uri, cfg)
	}

	return "", noop, fmt.Errorf("unsupported URI scheme in %q: expected http:, https:, file: or data:", uri)
}

// fetchHTTP downloads the URI to a temporary file, retrying on rate limits.
func fetchHTTP(ctx context.Context, client *http.Client, uri string, cfg types.HTTPConfig) (string, func(), error) {
	noop := func() {}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", noop, fmt.Errorf("building request for %s: %w", uri, err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", noop, fmt.Errorf("fetching %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", noop, fmt.Errorf("fetching %s: unexpected status %s", uri, resp.Status)
	}

	ext := extensionFor(uri, resp.Header.Get("Content-Type"))
	tmp, err := os.CreateTemp("", "companydir-*"+ext)
	if err != nil {
		return "", noop, fmt.Errorf("creating temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", noop, fmt.Errorf("saving %s: %w", uri, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("saving %s: %w", uri, err)
	}

	return tmp.Name(), cleanup, nil
}

// fetchData decodes a data: URI into a temporary file.
func fetchData(uri string) (string, func(), error) {
	noop := func() {}

	rest := strings.TrimPrefix(uri, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", noop, fmt.Errorf("malformed data URI: missing comma separator")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		meta = strings.TrimSuffix(meta, ";base64")
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", noop, fmt.Errorf("decoding base64 data URI: %w", err)
		}
		data = decoded
	} else {
		decoded, err := url.QueryUnescape(payload)
		if err != nil {
			return "", noop, fmt.Errorf("decoding data URI: %w", err)
		}
		data = []byte(decoded)
	}

	ext := ".txt"
	if exts, err := mime.ExtensionsByType(meta); err == nil && len(exts) > 0 {
		ext = exts[0]
	}

	tmp, err := os.CreateTemp("", "companydir-*"+ext)
	if err != nil {
		return "", noop, fmt.Errorf("creating temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", noop, fmt.Errorf("writing data URI payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("writing data URI payload: %w", err)
	}

	return tmp.Name(), cleanup, nil
}

// extensionFor picks a file extension for a downloaded document, preferring
// the URL path and falling back to the response Content-Type.
func extensionFor(uri, contentType string) string {
	if u, err := url.Parse(uri); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			if mt == "text/html" {
				return ".html"
			}
			if exts, err := mime.ExtensionsByType(mt); err == nil && len(exts) > 0 {
				return exts[0]
			}
		}
	}
	return ".bin"
}
