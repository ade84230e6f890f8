package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

var addPayaraMicroCmd = &cobra.Command{
	Use:   "add-payara-micro",
	Short: "Add the Payara Micro plugin",
	Long: `Adds the payara-micro-maven-plugin to pom.xml together with its boot
command files. With --jdbc-driver the driver dependency is added, copied to
target/lib at build time, and a postdeploy script creates the connection
pool, the JDBC resource and, when web.xml declares a realm, a JDBC realm.

Available JDBC drivers:
  mysql       - MySQL (Connector/J)
  postgresql  - PostgreSQL`,
	Args: cobra.NoArgs,
	RunE: runAddPayaraMicro,
}

// Flags for add-payara-micro.
var (
	payaraVersion       string
	payaraContextRoot   string
	payaraPluginVersion string

	payaraJDBCDriver   string
	payaraJDBCURL      string
	payaraJDBCUsername string
	payaraJDBCPassword string

	payaraRealmGroupName      string
	payaraRealmGroupTable     string
	payaraRealmPasswordColumn string
	payaraRealmUserNameColumn string
	payaraRealmUserTable      string
)

func init() {
	f := addPayaraMicroCmd.Flags()
	f.StringVar(&payaraVersion, "payara-version", "", "Payara Micro version")
	f.StringVar(&payaraContextRoot, "context-root", "", "Application context root")
	f.StringVar(&payaraPluginVersion, "plugin-version", "", "payara-micro-maven-plugin version")
	f.StringVar(&payaraJDBCDriver, "jdbc-driver", "", "JDBC driver (mysql, postgresql)")
	f.StringVar(&payaraJDBCURL, "jdbc-url", "", "JDBC connection URL")
	f.StringVar(&payaraJDBCUsername, "jdbc-username", "", "JDBC user")
	f.StringVar(&payaraJDBCPassword, "jdbc-password", "", "JDBC password (prompted when omitted on a terminal)")
	f.StringVar(&payaraRealmGroupName, "realm-group-name", "", "Realm group name column")
	f.StringVar(&payaraRealmGroupTable, "realm-group-table", "", "Realm group table")
	f.StringVar(&payaraRealmPasswordColumn, "realm-password-column", "", "Realm password column")
	f.StringVar(&payaraRealmUserNameColumn, "realm-user-name-column", "", "Realm user name column")
	f.StringVar(&payaraRealmUserTable, "realm-user-table", "", "Realm user table")
	rootCmd.AddCommand(addPayaraMicroCmd)
}

func runAddPayaraMicro(cmd *cobra.Command, _ []string) error {
	if scaffoldService == nil {
		return errors.New("scaffold service not configured")
	}
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	d := settings.Payara

	opts := domain.PayaraOptions{
		Version:             firstNonEmpty(payaraVersion, d.Version),
		ContextRoot:         firstNonEmpty(payaraContextRoot, d.ContextRoot),
		PluginVersion:       firstNonEmpty(payaraPluginVersion, d.PluginVersion),
		JDBCDriver:          domain.JDBCDriver(strings.ToLower(strings.TrimSpace(payaraJDBCDriver))),
		JDBCURL:             payaraJDBCURL,
		JDBCUsername:        payaraJDBCUsername,
		JDBCPassword:        payaraJDBCPassword,
		RealmGroupName:      firstNonEmpty(payaraRealmGroupName, d.RealmGroupName),
		RealmGroupTable:     firstNonEmpty(payaraRealmGroupTable, d.RealmGroupTable),
		RealmPasswordColumn: firstNonEmpty(payaraRealmPasswordColumn, d.RealmPasswordColumn),
		RealmUserNameColumn: firstNonEmpty(payaraRealmUserNameColumn, d.RealmUserNameColumn),
		RealmUserTable:      firstNonEmpty(payaraRealmUserTable, d.RealmUserTable),
		RunOptions:          runOptions(),
	}
	if opts.JDBCDriver.Enabled() && opts.JDBCPassword == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		cmd.Printf("JDBC password for %s: ", opts.JDBCUsername)
		opts.JDBCPassword = readPassword()
		cmd.Println()
	}

	report, err := scaffoldService.PayaraMicro(cmd.Context(), currentProject(), opts)
	if err != nil {
		return fmt.Errorf("add-payara-micro failed: %w", err)
	}
	printScaffoldReport(cmd, report)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
