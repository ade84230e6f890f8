package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
	"github.com/custodia-labs/mplemon/internal/core/ports/driving"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService is the upsert engine: it loads a descriptor, inserts every
// entry whose identity is absent from its section, and saves the result.
type MergeService struct {
	store    driven.DocumentStore
	importer driven.FragmentImporter
	differ   driven.Differ
	log      driven.Logger
}

// NewMergeService creates a new merge service.
func NewMergeService(
	store driven.DocumentStore,
	importer driven.FragmentImporter,
	differ driven.Differ,
	log driven.Logger,
) *MergeService {
	if log == nil {
		log = nopLogger{}
	}
	return &MergeService{
		store:    store,
		importer: importer,
		differ:   differ,
		log:      log,
	}
}

// Apply runs one load-mutate-save cycle over every batch in req.
func (s *MergeService) Apply(ctx context.Context, req domain.MergeRequest) (*domain.MergeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.store.Load(ctx, req.Locator)
	if err != nil {
		return nil, err
	}

	report := &domain.MergeReport{Locator: req.Locator}
	for _, batch := range req.Batches {
		section, err := s.mergeBatch(doc, batch)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Locator, batch.Section, err)
		}
		if section.Created {
			report.Changed = true
		}
		if len(section.Added()) > 0 {
			report.Changed = true
		}
		report.Sections = append(report.Sections, section)
	}

	if !report.Changed {
		s.log.Debug("%s: nothing to add", req.Locator)
		return report, nil
	}

	if req.DryRun {
		after, err := doc.Bytes()
		if err != nil {
			return nil, err
		}
		if s.differ != nil {
			report.Diff = s.differ.Diff(req.Locator, doc.Source(), after)
		}
		s.log.Info("%s: dry run, %d entries not written", req.Locator, report.AddedCount())
		return report, nil
	}

	if err := s.store.Save(ctx, doc, req.Locator); err != nil {
		return nil, err
	}
	report.Saved = true
	s.log.Info("%s: added %d entries", req.Locator, report.AddedCount())
	return report, nil
}

// UpsertProperties merges Maven properties into /project/properties.
func (s *MergeService) UpsertProperties(ctx context.Context, locator string, props []domain.Property, opts domain.RunOptions) (*domain.MergeReport, error) {
	return s.Apply(ctx, domain.MergeRequest{
		Locator:    locator,
		Batches:    []domain.Batch{domain.PropertyBatch(props...)},
		RunOptions: opts,
	})
}

// UpsertDependencies merges dependencies into /project/dependencies.
func (s *MergeService) UpsertDependencies(ctx context.Context, locator string, deps []domain.Dependency, opts domain.RunOptions) (*domain.MergeReport, error) {
	return s.Apply(ctx, domain.MergeRequest{
		Locator:    locator,
		Batches:    []domain.Batch{domain.DependencyBatch(deps...)},
		RunOptions: opts,
	})
}

// UpsertPlugins merges plugins into /project/build/plugins.
func (s *MergeService) UpsertPlugins(ctx context.Context, locator string, plugins []domain.Plugin, opts domain.RunOptions) (*domain.MergeReport, error) {
	return s.Apply(ctx, domain.MergeRequest{
		Locator:    locator,
		Batches:    []domain.Batch{domain.PluginBatch(plugins...)},
		RunOptions: opts,
	})
}

// Lookup returns the text of every node matching path.
func (s *MergeService) Lookup(ctx context.Context, locator, path string) ([]string, error) {
	doc, err := s.store.Load(ctx, locator)
	if err != nil {
		return nil, err
	}
	nodes, err := doc.Find(path)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(nodes))
	for _, n := range nodes {
		values = append(values, n.Text())
	}
	return values, nil
}

func (s *MergeService) mergeBatch(doc driven.Document, batch domain.Batch) (domain.SectionReport, error) {
	sec := batch.Section
	report := domain.SectionReport{Section: sec.String()}

	if err := sec.Validate(); err != nil {
		return report, err
	}

	root := doc.Root()
	if root.Tag() != sec.Root() {
		return report, fmt.Errorf("%w: root element is <%s>, expected <%s>", domain.ErrNotFound, root.Tag(), sec.Root())
	}

	parent, created, err := ensurePath(root, sec.Path[1:])
	if err != nil {
		return report, err
	}
	report.Created = created

	for _, entry := range batch.Entries {
		if err := validateEntry(sec, entry); err != nil {
			return report, err
		}
		key := entry.Identity()

		found, err := exists(doc, sec, key)
		if err != nil {
			return report, err
		}
		if found {
			s.log.Warn("%s: %s already present, skipping", sec.Name, key)
			report.Entries = append(report.Entries, domain.EntryResult{Key: key, Status: domain.EntryExists})
			continue
		}

		if err := s.insert(parent, entry.Element()); err != nil {
			return report, fmt.Errorf("%s: %w", key, err)
		}
		s.log.Debug("%s: added %s", sec.Name, key)
		report.Entries = append(report.Entries, domain.EntryResult{Key: key, Status: domain.EntryAdded})
	}

	return report, nil
}

// insert appends el under parent: fields in order, empty ones skipped, then
// the raw fragment.
func (s *MergeService) insert(parent driven.Node, el domain.Element) error {
	child := parent.AppendChild(el.Tag)
	if el.Text != "" {
		child.SetText(el.Text)
	}
	for _, f := range el.Fields {
		if f.Value == "" {
			continue
		}
		child.AppendChild(f.Name).SetText(f.Value)
	}
	if strings.TrimSpace(el.Fragment) == "" {
		return nil
	}
	if s.importer == nil {
		return fmt.Errorf("%w: no fragment importer configured", domain.ErrInvalidInput)
	}
	return s.importer.ImportInto(child, el.Fragment)
}

// ensurePath walks steps below root, creating missing elements.
func ensurePath(root driven.Node, steps []string) (driven.Node, bool, error) {
	node := root
	created := false
	for _, step := range steps {
		children, err := node.Find(step)
		if err != nil {
			return nil, false, err
		}
		if len(children) > 0 {
			node = children[0]
			continue
		}
		node = node.AppendChild(step)
		created = true
	}
	return node, created, nil
}

// exists reports whether an entry with identity key is present in sec.
func exists(doc driven.Document, sec domain.Section, key string) (bool, error) {
	base := sec.String()

	if sec.EntryTag == "" {
		nodes, err := doc.Find(base + "/" + key)
		return len(nodes) > 0, err
	}

	candidates := base + "/" + sec.EntryTag + "/" + sec.Discriminator
	if sec.Singleton {
		nodes, err := doc.Find(candidates)
		return len(nodes) > 0, err
	}

	if lit, ok := Literal(key); ok {
		nodes, err := doc.Find(candidates + "[text()=" + lit + "]")
		if err != nil {
			return false, err
		}
		if len(nodes) > 0 {
			return true, nil
		}
	}

	// Values padded with whitespace or that cannot be quoted are compared here.
	nodes, err := doc.Find(candidates)
	if err != nil {
		return false, err
	}
	for _, n := range nodes {
		if n.Text() == key {
			return true, nil
		}
	}
	return false, nil
}

func validateEntry(sec domain.Section, entry domain.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil entry", domain.ErrInvalidInput)
	}
	key := entry.Identity()
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %s entry has an empty identity", domain.ErrInvalidInput, sec.Name)
	}
	if key != strings.TrimSpace(key) {
		return fmt.Errorf("%w: identity %q has surrounding whitespace", domain.ErrInvalidInput, key)
	}

	el := entry.Element()
	if !domain.IsName(el.Tag) {
		return fmt.Errorf("%w: %q is not a valid element name", domain.ErrInvalidInput, el.Tag)
	}
	if sec.EntryTag != "" && el.Tag != sec.EntryTag {
		return fmt.Errorf("%w: %s entry has tag %q, expected %q", domain.ErrInvalidInput, sec.Name, el.Tag, sec.EntryTag)
	}
	for _, f := range el.Fields {
		if !domain.IsName(f.Name) {
			return fmt.Errorf("%w: %q is not a valid element name", domain.ErrInvalidInput, f.Name)
		}
	}
	return nil
}

// Literal quotes value for use in a path predicate, picking whichever quote
// character the value does not contain. Returns false when the value cannot
// be written as a literal.
func Literal(value string) (string, bool) {
	if strings.ContainsAny(value, "[]/") {
		return "", false
	}
	switch {
	case !strings.Contains(value, "'"):
		return "'" + value + "'", true
	case !strings.Contains(value, `"`):
		return `"` + value + `"`, true
	default:
		return "", false
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
