package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// JWTProvider scaffolds a token issuing service into project.
//
// The pom is merged first so a directory without a project fails before
// anything is written. web.xml and payara-web.xml are optional.
func (s *ScaffoldService) JWTProvider(ctx context.Context, project domain.Project, opts domain.JWTProviderOptions) (*domain.ScaffoldReport, error) {
	if err := validateProviderOptions(opts); err != nil {
		return nil, err
	}
	report := &domain.ScaffoldReport{DryRun: opts.DryRun}

	s.log.Debug("jwtprovider: merging dependencies into %s", project.POM())
	err := s.mergeRequired(ctx, report, domain.MergeRequest{
		Locator:    project.POM(),
		Batches:    []domain.Batch{domain.DependencyBatch(domain.JWTDependencies()...)},
		RunOptions: opts.RunOptions,
	})
	if err != nil {
		return nil, err
	}

	if err := s.renderSources(ctx, report, project, opts); err != nil {
		return nil, err
	}

	if err := s.writeJWTConfig(ctx, report, project, opts); err != nil {
		return nil, err
	}

	roles := make([]domain.Entry, 0, len(opts.Roles))
	mappings := make([]domain.Entry, 0, len(opts.Roles))
	for _, role := range opts.Roles {
		roles = append(roles, domain.SecurityRole{Name: role})
		mappings = append(mappings, domain.RoleMapping{Role: role, Group: role})
	}

	err = s.mergeOptional(ctx, report, domain.MergeRequest{
		Locator: project.Locate(domain.WebXMLFile),
		Batches: []domain.Batch{
			{Section: domain.SectionLoginConfig, Entries: []domain.Entry{domain.LoginConfig{Realm: opts.Realm}}},
			{Section: domain.SectionSecurityRoles, Entries: roles},
		},
		RunOptions: opts.RunOptions,
	})
	if err != nil {
		return nil, err
	}

	err = s.mergeOptional(ctx, report, domain.MergeRequest{
		Locator:    project.Locate(domain.PayaraWebXMLFile),
		Batches:    []domain.Batch{{Section: domain.SectionRoleMappings, Entries: mappings}},
		RunOptions: opts.RunOptions,
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func validateProviderOptions(opts domain.JWTProviderOptions) error {
	if !validJavaPackage(opts.JavaPackage()) {
		return fmt.Errorf("%w: invalid java package %q", domain.ErrInvalidInput, opts.Package)
	}
	if strings.TrimSpace(opts.Realm) == "" {
		return fmt.Errorf("%w: realm is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(opts.Issuer) == "" {
		return fmt.Errorf("%w: issuer is required", domain.ErrInvalidInput)
	}
	if opts.TokenValid <= 0 {
		return fmt.Errorf("%w: token validity must be positive, got %d", domain.ErrInvalidInput, opts.TokenValid)
	}
	if len(opts.Roles) == 0 {
		return fmt.Errorf("%w: at least one role is required", domain.ErrInvalidInput)
	}
	for _, r := range opts.Roles {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("%w: empty role name", domain.ErrInvalidInput)
		}
	}
	return nil
}

// renderSources writes the provider classes into the target package.
func (s *ScaffoldService) renderSources(ctx context.Context, report *domain.ScaffoldReport, project domain.Project, opts domain.JWTProviderOptions) error {
	pkg := opts.JavaPackage()
	for _, name := range driven.ProviderTemplates() {
		tmpl, err := s.templates.Load(name)
		if err != nil {
			return fmt.Errorf("load template %s: %w", name, err)
		}
		source := strings.ReplaceAll(tmpl, driven.TemplatePackagePlaceholder, pkg)
		locator := project.Locate(domain.JavaSourceDir, opts.PackageDir(), name+".java")
		if err := s.writeFile(ctx, report, locator, []byte(source)); err != nil {
			return err
		}
	}
	return nil
}

// writeJWTConfig generates a key pair and stores the config in the project
// resources and next to the project for secured services to pick up.
func (s *ScaffoldService) writeJWTConfig(ctx context.Context, report *domain.ScaffoldReport, project domain.Project, opts domain.JWTProviderOptions) error {
	pair, err := s.keys.Generate()
	if err != nil {
		return err
	}
	cfg := &domain.JWTConfig{
		Issuer:     opts.Issuer,
		TokenValid: opts.TokenValid,
		HeaderKey:  opts.HeaderKey,
		PublicKey:  pair.Public,
		PrivateKey: pair.Private,
		Roles:      opts.Roles,
	}

	for _, locator := range []string{
		project.Locate(domain.ResourcesDir, domain.JWTConfigFile),
		project.Locate("..", domain.JWTConfigFile),
	} {
		report.Files = append(report.Files, locator)
		if opts.DryRun {
			s.log.Info("would write %s", locator)
			continue
		}
		if err := s.jwtConfig.Save(ctx, locator, cfg); err != nil {
			return err
		}
		s.log.Debug("wrote %s", locator)
	}
	return nil
}
