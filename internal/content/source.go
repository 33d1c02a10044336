package content

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format is the encoding of a raw content document.
type Format string

// Supported document formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultHTTPTimeout bounds a single HTTPSource read.
const DefaultHTTPTimeout = 10 * time.Second

// MaxDocumentSize caps the body an HTTPSource accepts.
const MaxDocumentSize = 10 << 20

// Source reads a raw content document.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	Read(ctx context.Context) ([]byte, Format, error)
}

// FileSource reads the document from the local filesystem. The format is
// chosen by extension; anything other than .yaml/.yml is read as JSON.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.Path }

// Read reads the whole file.
func (s *FileSource) Read(_ context.Context) ([]byte, Format, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", err
	}
	return data, formatFromExt(s.Path), nil
}

func formatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// HTTPSource fetches the document from an HTTP endpoint, typically the
// site's own /api/content route on another instance or a CMS export.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	// MaxBytes overrides MaxDocumentSize.
	MaxBytes int64
}

// Name returns the source URL.
func (s *HTTPSource) Name() string { return s.URL }

// Read issues a GET and returns the body. The format comes from the
// Content-Type header, falling back to the URL path extension.
func (s *HTTPSource) Read(ctx context.Context) ([]byte, Format, error) {
	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, "", fmt.Errorf("invalid content URL %q", s.URL)
	}

	client := s.Client
	if client == nil {
		timeout := s.Timeout
		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, "", fmt.Errorf("content document exceeds %d bytes", limit)
	}

	format := formatFromExt(parsed.Path)
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		switch {
		case strings.Contains(mediaType, "yaml"):
			format = FormatYAML
		case strings.Contains(mediaType, "json"):
			format = FormatJSON
		}
	}
	return body, format, nil
}
