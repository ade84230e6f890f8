package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

// MicroProfile JWT verification keys.
const (
	mpPublicKey = "mp.jwt.verify.publickey"
	mpIssuer    = "mp.jwt.verify.issuer"
)

// JWTSecured writes the MicroProfile JWT verification settings taken from a
// JWT config produced by JWTProvider.
func (s *ScaffoldService) JWTSecured(ctx context.Context, project domain.Project, opts domain.JWTSecuredOptions) (*domain.ScaffoldReport, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = "../" + domain.JWTConfigFile
	}
	cfgPath = resolve(project, cfgPath)

	cfg, err := s.jwtConfig.Load(ctx, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load jwt config: %w", err)
	}
	if cfg.PublicKey == "" || cfg.Issuer == "" {
		return nil, fmt.Errorf("%w: %s has no public key or issuer", domain.ErrInvalidInput, cfgPath)
	}

	report := &domain.ScaffoldReport{DryRun: opts.DryRun}
	locator := project.Locate(domain.MicroProfileConfig)

	existing, err := s.files.Read(ctx, locator)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	content := setProperties(string(existing), []domain.Property{
		{Name: mpPublicKey, Value: cfg.PublicKey},
		{Name: mpIssuer, Value: cfg.Issuer},
	})
	if content == string(existing) {
		s.log.Debug("%s is up to date", locator)
		return report, nil
	}

	if err := s.writeFile(ctx, report, locator, []byte(content)); err != nil {
		return nil, err
	}
	return report, nil
}

// setProperties sets keys in a .properties source, replacing existing
// assignments in place and appending new ones. Other lines are kept.
func setProperties(src string, props []domain.Property) string {
	var lines []string
	if src != "" {
		lines = strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	}

	for _, p := range props {
		line := p.Name + "=" + p.Value
		found := false
		for i, l := range lines {
			if propertyKey(l) == p.Name {
				lines[i] = line
				found = true
			}
		}
		if !found {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// propertyKey returns the key of an assignment line, or "" for comments and
// blank lines.
func propertyKey(line string) string {
	line = strings.TrimLeft(line, " \t")
	if line == "" || line[0] == '#' || line[0] == '!' {
		return ""
	}
	if i := strings.IndexAny(line, "=: \t"); i >= 0 {
		return line[:i]
	}
	return line
}
