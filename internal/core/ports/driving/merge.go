package driving

import (
	"context"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

// MergeService merges declarative entries into descriptor documents.
// Every call is one complete load-mutate-save cycle on one document.
type MergeService interface {
	// Apply merges every batch of req into the document at req.Locator.
	// Entries already present are reported as domain.EntryExists and left
	// untouched. On any error the document is not written.
	Apply(ctx context.Context, req domain.MergeRequest) (*domain.MergeReport, error)

	// UpsertProperties merges Maven properties into /project/properties.
	UpsertProperties(ctx context.Context, locator string, props []domain.Property, opts domain.RunOptions) (*domain.MergeReport, error)

	// UpsertDependencies merges dependencies into /project/dependencies.
	UpsertDependencies(ctx context.Context, locator string, deps []domain.Dependency, opts domain.RunOptions) (*domain.MergeReport, error)

	// UpsertPlugins merges plugins into /project/build/plugins.
	UpsertPlugins(ctx context.Context, locator string, plugins []domain.Plugin, opts domain.RunOptions) (*domain.MergeReport, error)

	// Lookup returns the text of every node matching path, in document order.
	Lookup(ctx context.Context, locator, path string) ([]string, error)
}
