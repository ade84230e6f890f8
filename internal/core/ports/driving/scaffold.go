package driving

import (
	"context"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

// ScaffoldService generates project artifacts and wires them into the
// project's descriptors.
type ScaffoldService interface {
	// JWTProvider generates the token provider sources, a fresh key pair and
	// JWT config, the provider dependencies and the security roles.
	JWTProvider(ctx context.Context, project domain.Project, opts domain.JWTProviderOptions) (*domain.ScaffoldReport, error)

	// JWTSecured writes the MicroProfile JWT verification properties from an
	// existing JWT config.
	JWTSecured(ctx context.Context, project domain.Project, opts domain.JWTSecuredOptions) (*domain.ScaffoldReport, error)

	// PayaraMicro adds the Payara Micro plugin, optional JDBC wiring and the
	// boot command scripts.
	PayaraMicro(ctx context.Context, project domain.Project, opts domain.PayaraOptions) (*domain.ScaffoldReport, error)
}
