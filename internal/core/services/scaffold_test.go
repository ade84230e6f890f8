package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mplemon/internal/adapters/driven/config/jwt"
	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

const baseDir = "mem://localhost/work/app"

const (
	pomLocator        = baseDir + "/pom.xml"
	webXMLLocator     = baseDir + "/src/main/webapp/WEB-INF/web.xml"
	payaraWebLocator  = baseDir + "/src/main/webapp/WEB-INF/payara-web.xml"
	resourcesJWT      = baseDir + "/src/main/resources/jwt-config.json"
	sharedJWT         = "mem://localhost/work/jwt-config.json"
	mpConfigLocator   = baseDir + "/src/main/resources/META-INF/microprofile-config.properties"
	postdeployLocator = baseDir + "/postdeploycommandfile"
)

const scaffoldPOM = `<project>
    <modelVersion>4.0.0</modelVersion>
    <artifactId>demo-app</artifactId>
    <name>shop</name>
    <dependencies>
    </dependencies>
</project>
`

const webXML = `<web-app>
    <display-name>shop</display-name>
</web-app>
`

const webXMLWithRealm = `<web-app>
    <login-config>
        <realm-name>corp</realm-name>
    </login-config>
</web-app>
`

const payaraWebXML = `<payara-web-app>
</payara-web-app>
`

type fixedKeys struct {
	pair domain.KeyPair
	err  error
}

func (k fixedKeys) Generate() (domain.KeyPair, error) {
	return k.pair, k.err
}

type mapTemplates map[string]string

func (m mapTemplates) Load(name string) (string, error) {
	t, ok := m[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}

func (m mapTemplates) Reload() {}

type scaffoldFixture struct {
	*mergeFixture
	jwt *jwt.Store
	svc *ScaffoldService
}

func newScaffoldFixture() *scaffoldFixture {
	m := newMergeFixture()
	store := jwt.NewStore(m.files)
	templates := mapTemplates{
		driven.TemplateCypherService:         "package PACKAGE;\nclass CypherService {}\n",
		driven.TemplateTokenProviderResource: "package PACKAGE;\nclass TokenProviderResource {}\n",
	}
	svc := NewScaffoldService(m.svc, m.files, templates,
		fixedKeys{pair: domain.KeyPair{Public: "PUB", Private: "PRIV"}}, store, m.log)
	return &scaffoldFixture{mergeFixture: m, jwt: store, svc: svc}
}

func providerOptions() domain.JWTProviderOptions {
	return domain.JWTProviderOptions{
		Realm:      "corp",
		Issuer:     "https://issuer.example",
		HeaderKey:  "hk",
		Package:    "com.example.auth",
		TokenValid: 600,
		Roles:      []string{"ADMIN", "USER"},
	}
}

func testProject() domain.Project {
	return domain.Project{BaseDir: baseDir}
}

func TestScaffoldService_JWTProvider(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	f.files.Put(webXMLLocator, webXML)
	f.files.Put(payaraWebLocator, payaraWebXML)

	report, err := f.svc.JWTProvider(ctx, testProject(), providerOptions())
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Documents, 3)
	assert.Equal(t, len(domain.JWTDependencies()), report.Documents[0].AddedCount())

	source := f.files.Content(baseDir + "/src/main/java/com/example/auth/CypherService.java")
	assert.Equal(t, "package com.example.auth;\nclass CypherService {}\n", source)
	assert.Contains(t, report.Files, baseDir+"/src/main/java/com/example/auth/TokenProviderResource.java")

	for _, locator := range []string{resourcesJWT, sharedJWT} {
		cfg, err := f.jwt.Load(ctx, locator)
		require.NoError(t, err, locator)
		assert.Equal(t, "PUB", cfg.PublicKey)
		assert.Equal(t, "PRIV", cfg.PrivateKey)
		assert.Equal(t, 600, cfg.TokenValid)
		assert.Equal(t, []string{"ADMIN", "USER"}, cfg.Roles)
	}

	web := mustSnapshot(f.files, webXMLLocator)
	assert.Equal(t, tree{Tag: "web-app", Children: []tree{
		{Tag: "display-name", Text: "shop"},
		{Tag: "login-config", Children: []tree{{Tag: "realm-name", Text: "corp"}}},
		{Tag: "security-role", Children: []tree{{Tag: "role-name", Text: "ADMIN"}}},
		{Tag: "security-role", Children: []tree{{Tag: "role-name", Text: "USER"}}},
	}}, web)

	payara := mustSnapshot(f.files, payaraWebLocator)
	require.Len(t, payara.Children, 2)
	assert.Equal(t, tree{Tag: "security-role-mapping", Children: []tree{
		{Tag: "role-name", Text: "USER"},
		{Tag: "group-name", Text: "USER"},
	}}, payara.Children[1])
}

func TestScaffoldService_JWTProvider_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	f.files.Put(webXMLLocator, webXML)

	_, err := f.svc.JWTProvider(ctx, testProject(), providerOptions())
	require.NoError(t, err)
	pom := f.files.Content(pomLocator)
	web := f.files.Content(webXMLLocator)

	report, err := f.svc.JWTProvider(ctx, testProject(), providerOptions())
	require.NoError(t, err)

	assert.Equal(t, pom, f.files.Content(pomLocator))
	assert.Equal(t, web, f.files.Content(webXMLLocator))
	assert.Equal(t, 1, f.files.Writes(pomLocator))
	for _, doc := range report.Documents {
		assert.False(t, doc.Changed, doc.Locator)
		assert.Zero(t, doc.AddedCount(), doc.Locator)
	}
}

func TestScaffoldService_JWTProvider_MissingOptionalDescriptors(t *testing.T) {
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)

	report, err := f.svc.JWTProvider(context.Background(), testProject(), providerOptions())
	require.NoError(t, err)

	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0], "web.xml")
	assert.Contains(t, report.Warnings[1], "payara-web.xml")
	assert.Len(t, f.log.warnings(), 2)
	assert.Len(t, report.Documents, 1)
}

func TestScaffoldService_JWTProvider_ExistingRealmKept(t *testing.T) {
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	f.files.Put(webXMLLocator, webXMLWithRealm)

	opts := providerOptions()
	opts.Realm = "other"
	report, err := f.svc.JWTProvider(context.Background(), testProject(), opts)
	require.NoError(t, err)

	web := report.Documents[1]
	assert.Equal(t, []string{"other"}, web.Sections[0].Existing())
	realms, err := f.svc.merge.Lookup(context.Background(), webXMLLocator, "/web-app/login-config/realm-name")
	require.NoError(t, err)
	assert.Equal(t, []string{"corp"}, realms)
}

func TestScaffoldService_JWTProvider_MissingPOMWritesNothing(t *testing.T) {
	f := newScaffoldFixture()

	_, err := f.svc.JWTProvider(context.Background(), testProject(), providerOptions())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.files.Locators())
}

func TestScaffoldService_JWTProvider_DryRun(t *testing.T) {
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	f.files.Put(webXMLLocator, webXML)

	opts := providerOptions()
	opts.DryRun = true
	report, err := f.svc.JWTProvider(context.Background(), testProject(), opts)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, scaffoldPOM, f.files.Content(pomLocator))
	assert.Equal(t, webXML, f.files.Content(webXMLLocator))
	assert.Len(t, f.files.Locators(), 2)
	assert.Contains(t, report.Files, sharedJWT)
	assert.Contains(t, report.Documents[0].Diff, "+")
}

func TestScaffoldService_JWTProvider_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *domain.JWTProviderOptions)
	}{
		{"bad package", func(o *domain.JWTProviderOptions) { o.Package = "com..x" }},
		{"numeric package", func(o *domain.JWTProviderOptions) { o.Package = "com.1x" }},
		{"no realm", func(o *domain.JWTProviderOptions) { o.Realm = " " }},
		{"no issuer", func(o *domain.JWTProviderOptions) { o.Issuer = "" }},
		{"zero validity", func(o *domain.JWTProviderOptions) { o.TokenValid = 0 }},
		{"no roles", func(o *domain.JWTProviderOptions) { o.Roles = nil }},
		{"blank role", func(o *domain.JWTProviderOptions) { o.Roles = []string{"ADMIN", ""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScaffoldFixture()
			f.files.Put(pomLocator, scaffoldPOM)
			opts := providerOptions()
			tt.mutate(&opts)

			_, err := f.svc.JWTProvider(context.Background(), testProject(), opts)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, f.files.Writes(pomLocator))
		})
	}
}

func TestScaffoldService_JWTProvider_DashedPackage(t *testing.T) {
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	opts := providerOptions()
	opts.Package = "com.example.my-auth"

	_, err := f.svc.JWTProvider(context.Background(), testProject(), opts)
	require.NoError(t, err)

	source := f.files.Content(baseDir + "/src/main/java/com/example/my/auth/CypherService.java")
	assert.True(t, strings.HasPrefix(source, "package com.example.my.auth;"))
}

func TestScaffoldService_JWTProvider_KeyFailure(t *testing.T) {
	m := newMergeFixture()
	m.files.Put(pomLocator, scaffoldPOM)
	boom := errors.New("entropy exhausted")
	svc := NewScaffoldService(m.svc, m.files, mapTemplates{
		driven.TemplateCypherService:         "x",
		driven.TemplateTokenProviderResource: "y",
	}, fixedKeys{err: boom}, jwt.NewStore(m.files), nil)

	_, err := svc.JWTProvider(context.Background(), testProject(), providerOptions())

	assert.ErrorIs(t, err, boom)
}

func TestScaffoldService_JWTProvider_MissingTemplate(t *testing.T) {
	m := newMergeFixture()
	m.files.Put(pomLocator, scaffoldPOM)
	svc := NewScaffoldService(m.svc, m.files, mapTemplates{}, fixedKeys{}, jwt.NewStore(m.files), nil)

	_, err := svc.JWTProvider(context.Background(), testProject(), providerOptions())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScaffoldService_JWTSecured(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	require.NoError(t, f.jwt.Save(ctx, sharedJWT, &domain.JWTConfig{Issuer: "https://issuer.example", PublicKey: "PUB"}))
	f.files.Put(mpConfigLocator, "# app\nmp.jwt.verify.issuer=old\ngreeting=hi\n")

	report, err := f.svc.JWTSecured(ctx, testProject(), domain.JWTSecuredOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{mpConfigLocator}, report.Files)
	assert.Equal(t,
		"# app\nmp.jwt.verify.issuer=https://issuer.example\ngreeting=hi\nmp.jwt.verify.publickey=PUB\n",
		f.files.Content(mpConfigLocator))

	report, err = f.svc.JWTSecured(ctx, testProject(), domain.JWTSecuredOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Equal(t, 1, f.files.Writes(mpConfigLocator))
}

func TestScaffoldService_JWTSecured_NewFileAndExplicitPath(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	cfgPath := "mem://localhost/elsewhere/jwt.json"
	require.NoError(t, f.jwt.Save(ctx, cfgPath, &domain.JWTConfig{Issuer: "iss", PublicKey: "KEY"}))

	_, err := f.svc.JWTSecured(ctx, testProject(), domain.JWTSecuredOptions{ConfigPath: cfgPath})
	require.NoError(t, err)

	assert.Equal(t, "mp.jwt.verify.publickey=KEY\nmp.jwt.verify.issuer=iss\n", f.files.Content(mpConfigLocator))
}

func TestScaffoldService_JWTSecured_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing config", func(t *testing.T) {
		f := newScaffoldFixture()
		_, err := f.svc.JWTSecured(ctx, testProject(), domain.JWTSecuredOptions{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("config without key", func(t *testing.T) {
		f := newScaffoldFixture()
		require.NoError(t, f.jwt.Save(ctx, sharedJWT, &domain.JWTConfig{Issuer: "iss"}))
		_, err := f.svc.JWTSecured(ctx, testProject(), domain.JWTSecuredOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("dry run", func(t *testing.T) {
		f := newScaffoldFixture()
		require.NoError(t, f.jwt.Save(ctx, sharedJWT, &domain.JWTConfig{Issuer: "iss", PublicKey: "KEY"}))
		report, err := f.svc.JWTSecured(ctx, testProject(), domain.JWTSecuredOptions{RunOptions: domain.RunOptions{DryRun: true}})
		require.NoError(t, err)
		assert.Equal(t, []string{mpConfigLocator}, report.Files)
		assert.Equal(t, 0, f.files.Writes(mpConfigLocator))
	})
}

func TestSetProperties(t *testing.T) {
	props := []domain.Property{{Name: "a", Value: "1"}}

	assert.Equal(t, "a=1\n", setProperties("", props))
	assert.Equal(t, "!a=0\nb = 2\na=1\n", setProperties("!a=0\nb = 2", props))
	assert.Equal(t, "a=1\n", setProperties("a : 0\n", props))
}

func TestPropertyKey(t *testing.T) {
	tests := map[string]string{
		"key=value": "key",
		"  key: v":  "key",
		"key value": "key",
		"# comment": "",
		"! comment": "",
		"":          "",
		"bare":      "bare",
		"\tk.x=a=b": "k.x",
	}
	for line, want := range tests {
		assert.Equal(t, want, propertyKey(line), line)
	}
}

func payaraOptions() domain.PayaraOptions {
	d := domain.DefaultAppSettings().Payara
	return domain.PayaraOptions{
		Version:             d.Version,
		ContextRoot:         d.ContextRoot,
		PluginVersion:       d.PluginVersion,
		RealmGroupName:      d.RealmGroupName,
		RealmGroupTable:     d.RealmGroupTable,
		RealmPasswordColumn: d.RealmPasswordColumn,
		RealmUserNameColumn: d.RealmUserNameColumn,
		RealmUserTable:      d.RealmUserTable,
	}
}

func TestScaffoldService_PayaraMicro(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)

	report, err := f.svc.PayaraMicro(ctx, testProject(), payaraOptions())
	require.NoError(t, err)

	require.Len(t, report.Documents, 1)
	assert.Equal(t, 2, report.Documents[0].AddedCount())
	assert.Equal(t, []string{baseDir + "/prebootcommandfile", baseDir + "/postbootcommandfile"}, report.Files)
	exists, err := f.files.Exists(ctx, postdeployLocator)
	require.NoError(t, err)
	assert.False(t, exists)

	versions, err := f.svc.merge.Lookup(ctx, pomLocator, "/project/properties/version.payara.micro")
	require.NoError(t, err)
	assert.Equal(t, []string{"5.2020.7"}, versions)

	roots, err := f.svc.merge.Lookup(ctx, pomLocator,
		"/project/build/plugins/plugin[artifactId='payara-micro-maven-plugin']/configuration/contextRoot")
	require.NoError(t, err)
	assert.Equal(t, []string{"/"}, roots)

	options, err := f.svc.merge.Lookup(ctx, pomLocator,
		"/project/build/plugins/plugin/configuration/commandLineOptions/option/key")
	require.NoError(t, err)
	assert.Contains(t, options, "--postdeploycommandfile")
}

func TestScaffoldService_PayaraMicro_ExistingScriptsKept(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	f.files.Put(baseDir+"/prebootcommandfile", "set-log-level\n")

	_, err := f.svc.PayaraMicro(ctx, testProject(), payaraOptions())
	require.NoError(t, err)

	assert.Equal(t, "set-log-level\n", f.files.Content(baseDir+"/prebootcommandfile"))
	assert.Equal(t, "", f.files.Content(baseDir+"/postbootcommandfile"))
}

func TestScaffoldService_PayaraMicro_JDBC(t *testing.T) {
	ctx := context.Background()
	f := newScaffoldFixture()
	f.files.Put(pomLocator, scaffoldPOM)
	f.files.Put(webXMLLocator, webXMLWithRealm)

	opts := payaraOptions()
	opts.JDBCDriver = domain.JDBCDriverMySQL
	opts.JDBCURL = "jdbc:mysql://db:3306/shop?useSSL=false"
	opts.JDBCUsername = "app"
	opts.JDBCPassword = "secret"

	report, err := f.svc.PayaraMicro(ctx, testProject(), opts)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 4, report.Documents[0].AddedCount())

	artifacts, err := f.svc.merge.Lookup(ctx, pomLocator, "/project/dependencies/dependency/artifactId")
	require.NoError(t, err)
	assert.Equal(t, []string{"mysql-connector-java"}, artifacts)

	ids, err := f.svc.merge.Lookup(ctx, pomLocator,
		"/project/build/plugins/plugin[artifactId='maven-dependency-plugin']/executions/execution/id")
	require.NoError(t, err)
	assert.Equal(t, []string{"copy-jdbc"}, ids)

	lines := strings.Split(strings.TrimSpace(f.files.Content(postdeployLocator)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "--datasourceclassname=com.mysql.cj.jdbc.MysqlConnectionPoolDataSource")
	assert.Contains(t, lines[0], `Url=jdbc\:mysql\://db\:3306/shop?useSSL\=false shopPool`)
	assert.Equal(t, "create-jdbc-resource --connectionpoolid shopPool jdbc/shop", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "create-auth-realm "))
	assert.Contains(t, lines[2], "datasource-jndi=jdbc/shop:user-table=User:user-name-column=userName")
	assert.True(t, strings.HasSuffix(lines[2], " corp"))
}

func TestScaffoldService_PayaraMicro_JDBCWithoutRealm(t *testing.T) {
	f := newScaffoldFixture()
	f.files.Put(pomLocator, strings.Replace(scaffoldPOM, "    <name>shop</name>\n", "", 1))

	opts := payaraOptions()
	opts.JDBCDriver = domain.JDBCDriverPostgreSQL
	opts.JDBCURL = "jdbc:postgresql://db/shop"
	opts.JDBCUsername = "app"

	report, err := f.svc.PayaraMicro(context.Background(), testProject(), opts)
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	script := f.files.Content(postdeployLocator)
	assert.Contains(t, script, "jdbc/demo-app")
	assert.Contains(t, script, "org.postgresql.jdbc3.Jdbc3ConnectionPool")
	assert.NotContains(t, script, "create-auth-realm")
}

func TestScaffoldService_PayaraMicro_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *domain.PayaraOptions)
		wantErr error
	}{
		{"unknown driver", func(o *domain.PayaraOptions) { o.JDBCDriver = "oracle" }, domain.ErrUnsupportedType},
		{"no version", func(o *domain.PayaraOptions) { o.Version = "" }, domain.ErrInvalidInput},
		{"jdbc without url", func(o *domain.PayaraOptions) {
			o.JDBCDriver = domain.JDBCDriverMySQL
			o.JDBCUsername = "app"
		}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScaffoldFixture()
			f.files.Put(pomLocator, scaffoldPOM)
			opts := payaraOptions()
			tt.mutate(&opts)

			_, err := f.svc.PayaraMicro(context.Background(), testProject(), opts)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.files.Writes(pomLocator))
		})
	}
}

func TestEscapeAsadmin(t *testing.T) {
	assert.Equal(t, `jdbc\:h2\:mem\:x;a\=b`, escapeAsadmin("jdbc:h2:mem:x;a=b"))
}

func TestValidJavaPackage(t *testing.T) {
	assert.True(t, validJavaPackage("com.example"))
	assert.True(t, validJavaPackage("_x.$y.z9"))
	assert.False(t, validJavaPackage(""))
	assert.False(t, validJavaPackage("com."))
	assert.False(t, validJavaPackage("9com"))
	assert.False(t, validJavaPackage("com.ex-ample"))
}

func TestResolve(t *testing.T) {
	p := testProject()
	assert.Equal(t, sharedJWT, resolve(p, "../jwt-config.json"))
	assert.Equal(t, "mem://localhost/x.json", resolve(p, "mem://localhost/x.json"))
}
