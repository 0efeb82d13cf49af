// Package spool stores rendered complaint documents on the local filesystem
// and hands out the public download URL the messaging provider fetches media
// from.
package spool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive implements ports.DocumentArchive on a local directory.
type Archive struct {
	dir     string
	baseURL string
}

// NewArchive creates an archive rooted at dir. baseURL is the externally
// reachable address of this service; stored documents are served beneath its
// /download/ path.
func NewArchive(dir, baseURL string) *Archive {
	return &Archive{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Dir returns the spool directory, for the HTTP layer to serve from.
func (a *Archive) Dir() string {
	return a.dir
}

// Store writes the document and returns its download URL.
func (a *Archive) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create spool directory: %w", err)
	}

	// Names are generated internally, but never trust a path separator.
	name = filepath.Base(name)

	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	return a.baseURL + "/download/" + name, nil
}
