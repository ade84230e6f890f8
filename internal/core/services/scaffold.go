package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
	"github.com/custodia-labs/mplemon/internal/core/ports/driving"
)

// Ensure ScaffoldService implements the interface.
var _ driving.ScaffoldService = (*ScaffoldService)(nil)

// ScaffoldService generates project artifacts and merges the matching
// entries into the project's descriptors.
type ScaffoldService struct {
	merge     driving.MergeService
	files     driven.FileStore
	templates driven.TemplateStore
	keys      driven.KeyGenerator
	jwtConfig driven.JWTConfigStore
	log       driven.Logger
}

// NewScaffoldService creates a new scaffold service.
func NewScaffoldService(
	merge driving.MergeService,
	files driven.FileStore,
	templates driven.TemplateStore,
	keys driven.KeyGenerator,
	jwtConfig driven.JWTConfigStore,
	log driven.Logger,
) *ScaffoldService {
	if log == nil {
		log = nopLogger{}
	}
	return &ScaffoldService{
		merge:     merge,
		files:     files,
		templates: templates,
		keys:      keys,
		jwtConfig: jwtConfig,
		log:       log,
	}
}

// mergeRequired runs a merge whose failure aborts the scaffold.
func (s *ScaffoldService) mergeRequired(ctx context.Context, report *domain.ScaffoldReport, req domain.MergeRequest) error {
	doc, err := s.merge.Apply(ctx, req)
	if err != nil {
		return err
	}
	report.AddDocument(doc)
	return nil
}

// mergeOptional runs a merge on a descriptor the project may not have.
// A missing file or unexpected root element becomes a warning.
func (s *ScaffoldService) mergeOptional(ctx context.Context, report *domain.ScaffoldReport, req domain.MergeRequest) error {
	doc, err := s.merge.Apply(ctx, req)
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("skipped %s: %v", req.Locator, err)
		s.log.Warn("%s", msg)
		report.Warnings = append(report.Warnings, msg)
		return nil
	}
	if err != nil {
		return err
	}
	report.AddDocument(doc)
	return nil
}

// writeFile writes data to locator, or only records it in dry-run mode.
func (s *ScaffoldService) writeFile(ctx context.Context, report *domain.ScaffoldReport, locator string, data []byte) error {
	report.Files = append(report.Files, locator)
	if report.DryRun {
		s.log.Info("would write %s", locator)
		return nil
	}
	if err := s.files.Write(ctx, locator, data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWrite, err)
	}
	s.log.Debug("wrote %s", locator)
	return nil
}

// touchFile creates an empty file at locator unless one exists.
func (s *ScaffoldService) touchFile(ctx context.Context, report *domain.ScaffoldReport, locator string) error {
	ok, err := s.files.Exists(ctx, locator)
	if err != nil {
		return err
	}
	if ok {
		s.log.Debug("%s exists, leaving it alone", locator)
		return nil
	}
	return s.writeFile(ctx, report, locator, nil)
}

// resolve makes a relative path relative to the project base directory.
func resolve(project domain.Project, p string) string {
	if strings.Contains(p, "://") || filepath.IsAbs(p) {
		return p
	}
	return project.Locate(filepath.ToSlash(p))
}

// validJavaPackage reports whether pkg is a dotted list of Java identifiers.
func validJavaPackage(pkg string) bool {
	if pkg == "" {
		return false
	}
	for _, part := range strings.Split(pkg, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			case i > 0 && r >= '0' && r <= '9':
			default:
				return false
			}
		}
	}
	return true
}
