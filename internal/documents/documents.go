// Package documents serves downloadable files such as the CV, from the local
// filesystem or an S3-compatible bucket.
package documents

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when the document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a downloadable file.
type Document struct {
	Name        string
	ContentType string
	Body        []byte
}

// Source fetches one document.
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
}

// FileSource reads a document from disk on every fetch.
type FileSource struct {
	Path string
}

// Fetch reads the file at Path.
func (s FileSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to read document %s: %w", s.Path, err)
	}
	name := filepath.Base(s.Path)
	return &Document{Name: name, ContentType: contentTypeFor(name), Body: body}, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
