package xmldoc

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.DocumentStore = (*Store)(nil)

// Store loads and saves descriptors through a FileStore.
type Store struct {
	files  driven.FileStore
	indent int
}

// Option configures a Store.
type Option func(*Store)

// WithIndent sets the indentation width used for documents whose own
// indentation cannot be detected.
func WithIndent(width int) Option {
	return func(s *Store) {
		if width > 0 {
			s.indent = width
		}
	}
}

// NewStore creates a document store backed by files.
func NewStore(files driven.FileStore, opts ...Option) *Store {
	s := &Store{files: files, indent: DefaultIndent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and parses the document at locator.
func (s *Store) Load(ctx context.Context, locator string) (driven.Document, error) {
	data, err := s.files.Read(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrParse, locator, err)
	}
	doc, err := Parse(data, s.indent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", locator, err)
	}
	return doc, nil
}

// Save serializes doc and overwrites locator.
func (s *Store) Save(ctx context.Context, doc driven.Document, locator string) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("%s: %w", locator, err)
	}
	if err := s.files.Write(ctx, locator, data); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWrite, locator, err)
	}
	return nil
}
