package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mplemon/internal/adapters/driving/watch"
	"github.com/custodia-labs/mplemon/internal/core/domain"
)

var jwtProviderCmd = &cobra.Command{
	Use:   "jwtprovider",
	Short: "Scaffold a JWT token provider",
	Long: `Generates a token provider service in the project: the Java sources, a
fresh RSA key pair stored in jwt-config.json, the required dependencies,
and the security roles in web.xml and payara-web.xml when those exist.

Flags left unset take their value from settings.`,
	Args: cobra.NoArgs,
	RunE: runJWTProvider,
}

var jwtSecuredCmd = &cobra.Command{
	Use:   "jwtsecured",
	Short: "Configure a service to verify JWT tokens",
	Long: `Writes mp.jwt.verify.publickey and mp.jwt.verify.issuer into
microprofile-config.properties from the jwt-config.json written by
jwtprovider. With --watch the properties are rewritten every time the JWT
config changes, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runJWTSecured,
}

// Flags for jwtprovider.
var (
	jwtRealm      string
	jwtIssuer     string
	jwtHeaderKey  string
	jwtPackage    string
	jwtTokenValid int
	jwtRoles      []string
)

// Flags for jwtsecured.
var (
	jwtConfigPath string
	jwtWatch      bool
)

func init() {
	jwtProviderCmd.Flags().StringVar(&jwtRealm, "realm", "", "Security realm name")
	jwtProviderCmd.Flags().StringVar(&jwtIssuer, "issuer", "", "Token issuer")
	jwtProviderCmd.Flags().StringVar(&jwtHeaderKey, "header-key", "", "Token header key id")
	jwtProviderCmd.Flags().StringVar(&jwtPackage, "package", "", "Java package for the generated sources")
	jwtProviderCmd.Flags().IntVar(&jwtTokenValid, "token-valid", 0, "Token validity in seconds")
	jwtProviderCmd.Flags().StringSliceVar(&jwtRoles, "roles", nil, "Roles (comma-separated)")
	rootCmd.AddCommand(jwtProviderCmd)

	jwtSecuredCmd.Flags().StringVar(&jwtConfigPath, "jwt-config", "", "JWT config written by jwtprovider (default ../jwt-config.json)")
	jwtSecuredCmd.Flags().BoolVar(&jwtWatch, "watch", false, "Re-apply whenever the JWT config changes")
	rootCmd.AddCommand(jwtSecuredCmd)
}

func runJWTProvider(cmd *cobra.Command, _ []string) error {
	if scaffoldService == nil {
		return errors.New("scaffold service not configured")
	}
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	opts := domain.JWTProviderOptions{
		Realm:      firstNonEmpty(jwtRealm, settings.JWT.Realm),
		Issuer:     firstNonEmpty(jwtIssuer, settings.JWT.Issuer),
		HeaderKey:  firstNonEmpty(jwtHeaderKey, settings.JWT.HeaderKey),
		Package:    firstNonEmpty(jwtPackage, settings.JWT.Package),
		TokenValid: jwtTokenValid,
		Roles:      jwtRoles,
		RunOptions: runOptions(),
	}
	if opts.TokenValid <= 0 {
		opts.TokenValid = settings.JWT.TokenValid
	}
	if len(opts.Roles) == 0 {
		opts.Roles = settings.JWT.Roles
	}

	report, err := scaffoldService.JWTProvider(cmd.Context(), currentProject(), opts)
	if err != nil {
		return fmt.Errorf("jwtprovider failed: %w", err)
	}
	printScaffoldReport(cmd, report)
	return nil
}

func runJWTSecured(cmd *cobra.Command, _ []string) error {
	if scaffoldService == nil {
		return errors.New("scaffold service not configured")
	}
	opts := domain.JWTSecuredOptions{ConfigPath: jwtConfigPath, RunOptions: runOptions()}

	apply := func(ctx context.Context) error {
		report, err := scaffoldService.JWTSecured(ctx, currentProject(), opts)
		if err != nil {
			return err
		}
		printScaffoldReport(cmd, report)
		return nil
	}

	if err := apply(cmd.Context()); err != nil {
		return fmt.Errorf("jwtsecured failed: %w", err)
	}
	if !jwtWatch {
		return nil
	}

	cfg := jwtConfigPath
	if cfg == "" {
		cfg = "../" + domain.JWTConfigFile
	}
	path, err := localPath(locate(cfg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	cmd.Printf("Watching %s, press Ctrl+C to stop.\n", path)
	return newWatcher(path).Run(ctx, apply)
}

func newWatcher(path string) *watch.Watcher {
	return watch.New(path, watch.WithLogger(runLog))
}

// localPath turns a locator into a filesystem path for the watcher.
func localPath(locator string) (string, error) {
	if !strings.Contains(locator, "://") {
		return locator, nil
	}
	u, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, locator, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: cannot watch %s, only local files are supported", domain.ErrInvalidInput, locator)
	}
	return u.Path, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
