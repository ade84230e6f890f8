// Package jwt stores the token configuration shared by generated services as
// a flat JSON object.
package jwt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.JWTConfigStore = (*Store)(nil)

// Store reads and writes JWT configs through a FileStore.
type Store struct {
	files driven.FileStore
}

// NewStore creates a JWT config store.
func NewStore(files driven.FileStore) *Store {
	return &Store{files: files}
}

// Load reads the configuration at locator.
func (s *Store) Load(ctx context.Context, locator string) (*domain.JWTConfig, error) {
	data, err := s.files.Read(ctx, locator)
	if err != nil {
		return nil, err
	}
	var cfg domain.JWTConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrParse, locator, err)
	}
	return &cfg, nil
}

// Save writes cfg to locator. An existing object is merge-patched so keys
// cfg does not know about survive.
func (s *Store) Save(ctx context.Context, locator string, cfg *domain.JWTConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil jwt config", domain.ErrInvalidInput)
	}

	out := *cfg
	if out.Roles == nil {
		out.Roles = []string{}
	}
	doc, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode jwt config: %w", err)
	}

	existing, err := s.files.Read(ctx, locator)
	switch {
	case err == nil:
		doc, err = jsonpatch.MergePatch(existing, doc)
		if err != nil {
			return fmt.Errorf("%w: merge %s: %w", domain.ErrParse, locator, err)
		}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return fmt.Errorf("format jwt config: %w", err)
	}
	pretty.WriteByte('\n')

	if err := s.files.Write(ctx, locator, pretty.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWrite, err)
	}
	return nil
}
