// Package blob provides a filesystem-backed BlobStore that serves uploads
// from a public base URL. It stands in for the hosted object storage the
// original deployment would use.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// FSStore writes uploads under a root directory and maps each stored path
// onto baseURL.
type FSStore struct {
	root    string
	baseURL string
}

// New constructs an FSStore rooted at dir. baseURL is prepended to stored
// paths when building public URLs.
func New(dir, baseURL string) (*FSStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("blob: root directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root: %w", err)
	}
	return &FSStore{
		root:    filepath.Clean(dir),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the contents under the given slash-separated path and
// returns the public URL. Existing blobs are never overwritten; upload
// names are collision-resistant by construction, so a clash is an error.
func (s *FSStore) Upload(ctx context.Context, blobPath string, contents io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanPath(blobPath)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("blob: create directory: %w", err)
	}

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("blob: create %s: %w", clean, err)
	}
	if _, err := io.Copy(file, contents); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("blob: write %s: %w", clean, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("blob: close %s: %w", clean, err)
	}

	return s.baseURL + "/" + clean, nil
}

func cleanPath(blobPath string) (string, error) {
	clean := path.Clean(strings.TrimSpace(blobPath))
	if clean == "" || clean == "." || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("blob: invalid path %q", blobPath)
	}
	return clean, nil
}

var _ storage.BlobStore = (*FSStore)(nil)
