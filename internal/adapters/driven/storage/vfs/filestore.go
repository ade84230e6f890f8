// Package vfs provides a FileStore over github.com/viant/afs, so that
// descriptors can live on local disk (plain paths, file://) or in memory
// (mem://localhost/...).
package vfs

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	afsurl "github.com/viant/afs/url"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.FileStore = (*FileStore)(nil)

// fileMode is used for every file written by the store.
const fileMode = 0o644

// FileStore reads and writes files through an afs.Service.
type FileStore struct {
	fs afs.Service
}

// NewFileStore creates a FileStore. A nil service uses afs.New().
func NewFileStore(fs afs.Service) *FileStore {
	if fs == nil {
		fs = afs.New()
	}
	return &FileStore{fs: fs}
}

// Read returns the content at locator.
// Returns domain.ErrNotFound if nothing exists there.
func (s *FileStore) Read(ctx context.Context, locator string) ([]byte, error) {
	url := normalize(locator)
	ok, err := s.fs.Exists(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", locator, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", locator, domain.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", locator, err)
	}
	return data, nil
}

// Write creates or truncates the file at locator.
func (s *FileStore) Write(ctx context.Context, locator string, data []byte) error {
	if err := s.fs.Upload(ctx, normalize(locator), fileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", locator, err)
	}
	return nil
}

// Exists reports whether a file exists at locator.
func (s *FileStore) Exists(ctx context.Context, locator string) (bool, error) {
	ok, err := s.fs.Exists(ctx, normalize(locator))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", locator, err)
	}
	return ok, nil
}

// normalize turns plain filesystem paths into file:// URLs and leaves
// anything with a scheme as is.
func normalize(locator string) string {
	if afsurl.Scheme(locator, "") != "" {
		return locator
	}
	return afsurl.Normalize(locator, "file")
}
