package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

// Payara Micro plugin coordinates.
const (
	payaraPluginGroup      = "fish.payara.maven.plugins"
	payaraPluginArtifact   = "payara-micro-maven-plugin"
	payaraVersionProperty  = "version.payara.micro"
	jdbcCopyPluginGroup    = "org.apache.maven.plugins"
	jdbcCopyPluginArtifact = "maven-dependency-plugin"
	jdbcCopyPluginVersion  = "3.1.2"
)

// Asadmin command templates for the postdeploy script.
const (
	createJDBCConnectionPool = "create-jdbc-connection-pool --maxpoolsize=4 --poolresize=1 --steadypoolsize=1" +
		" --ping=true --pooling=true --restype=javax.sql.ConnectionPoolDataSource" +
		" --datasourceclassname=%s --property Password=%s:User=%s:Url=%s %s"
	createJDBCResource = "create-jdbc-resource --connectionpoolid %s jdbc/%s"
	createAuthRealm    = "create-auth-realm --classname com.sun.enterprise.security.auth.realm.jdbc.JDBCRealm" +
		" --property jaas-context=jdbcRealm:datasource-jndi=jdbc/%s:user-table=%s:user-name-column=%s" +
		":password-column=%s:group-table=%s:group-name-column=%s:encoding=Hex %s"
)

// PayaraMicro adds the Payara Micro plugin to the pom, plus the JDBC driver
// and its copy execution when a driver is selected, and writes the boot
// command scripts next to the pom.
func (s *ScaffoldService) PayaraMicro(ctx context.Context, project domain.Project, opts domain.PayaraOptions) (*domain.ScaffoldReport, error) {
	if err := validatePayaraOptions(opts); err != nil {
		return nil, err
	}
	report := &domain.ScaffoldReport{DryRun: opts.DryRun}

	var projectName string
	if opts.JDBCDriver.Enabled() {
		name, err := s.projectName(ctx, project)
		if err != nil {
			return nil, err
		}
		projectName = name
	}

	batches := []domain.Batch{
		domain.PropertyBatch(domain.Property{Name: payaraVersionProperty, Value: opts.Version}),
		domain.PluginBatch(domain.Plugin{
			GroupID:       payaraPluginGroup,
			ArtifactID:    payaraPluginArtifact,
			Version:       opts.PluginVersion,
			Configuration: payaraConfiguration(opts.ContextRoot),
		}),
	}
	if opts.JDBCDriver.Enabled() {
		driver := opts.JDBCDriver.Artifact()
		batches = append(batches,
			domain.DependencyBatch(driver),
			domain.PluginBatch(domain.Plugin{
				GroupID:       jdbcCopyPluginGroup,
				ArtifactID:    jdbcCopyPluginArtifact,
				Version:       jdbcCopyPluginVersion,
				Configuration: jdbcCopyExecutions(driver),
			}),
		)
	}

	err := s.mergeRequired(ctx, report, domain.MergeRequest{
		Locator:    project.POM(),
		Batches:    batches,
		RunOptions: opts.RunOptions,
	})
	if err != nil {
		return nil, err
	}

	for _, script := range []string{domain.PrebootCommandFile, domain.PostbootCommandFile} {
		if err := s.touchFile(ctx, report, project.Locate(script)); err != nil {
			return nil, err
		}
	}

	if !opts.JDBCDriver.Enabled() {
		return report, nil
	}

	commands, err := s.postdeployCommands(ctx, report, project, projectName, opts)
	if err != nil {
		return nil, err
	}
	script := strings.Join(commands, "\n") + "\n"
	if err := s.writeFile(ctx, report, project.Locate(domain.PostdeployCommandFile), []byte(script)); err != nil {
		return nil, err
	}

	return report, nil
}

func validatePayaraOptions(opts domain.PayaraOptions) error {
	if !opts.JDBCDriver.IsValid() {
		return fmt.Errorf("%w: jdbc driver %q, expected one of %v", domain.ErrUnsupportedType, opts.JDBCDriver, domain.AllJDBCDrivers())
	}
	if strings.TrimSpace(opts.Version) == "" || strings.TrimSpace(opts.PluginVersion) == "" {
		return fmt.Errorf("%w: payara and plugin versions are required", domain.ErrInvalidInput)
	}
	if !opts.JDBCDriver.Enabled() {
		return nil
	}
	if opts.JDBCURL == "" || opts.JDBCUsername == "" {
		return fmt.Errorf("%w: jdbc url and username are required with a jdbc driver", domain.ErrInvalidInput)
	}
	return nil
}

// projectName reads the Maven project name, falling back to the artifact id.
func (s *ScaffoldService) projectName(ctx context.Context, project domain.Project) (string, error) {
	for _, path := range []string{"/project/name", "/project/artifactId"} {
		values, err := s.merge.Lookup(ctx, project.POM(), path)
		if err != nil {
			return "", err
		}
		if len(values) > 0 && values[0] != "" {
			return values[0], nil
		}
	}
	return "", fmt.Errorf("%w: %s has neither name nor artifactId", domain.ErrInvalidInput, project.POM())
}

// postdeployCommands builds the connection pool, resource and, when web.xml
// declares a realm, the JDBC realm commands.
func (s *ScaffoldService) postdeployCommands(ctx context.Context, report *domain.ScaffoldReport, project domain.Project, name string, opts domain.PayaraOptions) ([]string, error) {
	pool := name + "Pool"
	commands := []string{
		fmt.Sprintf(createJDBCConnectionPool,
			opts.JDBCDriver.DataSourceClass(), opts.JDBCPassword, opts.JDBCUsername, escapeAsadmin(opts.JDBCURL), pool),
		fmt.Sprintf(createJDBCResource, pool, name),
	}

	realm, err := s.webRealm(ctx, project)
	if err != nil {
		return nil, err
	}
	if realm == "" {
		msg := fmt.Sprintf("no realm declared in %s, auth realm not created", domain.WebXMLFile)
		s.log.Warn("%s", msg)
		report.Warnings = append(report.Warnings, msg)
		return commands, nil
	}

	commands = append(commands, fmt.Sprintf(createAuthRealm,
		name, opts.RealmUserTable, opts.RealmUserNameColumn, opts.RealmPasswordColumn,
		opts.RealmGroupTable, opts.RealmGroupName, realm))
	return commands, nil
}

// webRealm returns the login realm of web.xml, or "" if there is none.
func (s *ScaffoldService) webRealm(ctx context.Context, project domain.Project) (string, error) {
	locator := project.Locate(domain.WebXMLFile)
	ok, err := s.files.Exists(ctx, locator)
	if err != nil || !ok {
		return "", err
	}
	values, err := s.merge.Lookup(ctx, locator, "/web-app/login-config/realm-name")
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

// escapeAsadmin escapes the property separators of an asadmin --property value.
func escapeAsadmin(s string) string {
	return strings.NewReplacer(":", `\:`, "=", `\=`).Replace(s)
}

func payaraConfiguration(contextRoot string) string {
	var sb strings.Builder
	sb.WriteString("<configuration>")
	sb.WriteString("<payaraVersion>${" + payaraVersionProperty + "}</payaraVersion>")
	sb.WriteString("<deployWar>true</deployWar>")
	sb.WriteString("<commandLineOptions>")
	sb.WriteString("<option><key>--autoBindHttp</key></option>")
	sb.WriteString("<option><key>--addLibs</key><value>target/lib</value></option>")
	for _, script := range []string{"prebootcommandfile", "postbootcommandfile", "postdeploycommandfile"} {
		sb.WriteString("<option><key>--" + script + "</key><value>" + script + "</value></option>")
	}
	sb.WriteString("</commandLineOptions>")
	sb.WriteString("<contextRoot>" + xmlEscape(contextRoot) + "</contextRoot>")
	sb.WriteString("</configuration>")
	return sb.String()
}

func jdbcCopyExecutions(driver domain.Dependency) string {
	return "<executions><execution>" +
		"<id>copy-jdbc</id>" +
		"<goals><goal>copy</goal></goals>" +
		"<configuration>" +
		"<outputDirectory>target/lib</outputDirectory>" +
		"<stripVersion>true</stripVersion>" +
		"<artifactItems><artifactItem>" +
		"<groupId>" + driver.GroupID + "</groupId>" +
		"<artifactId>" + driver.ArtifactID + "</artifactId>" +
		"<version>" + driver.Version + "</version>" +
		"<type>jar</type>" +
		"</artifactItem></artifactItems>" +
		"</configuration>" +
		"</execution></executions>"
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
