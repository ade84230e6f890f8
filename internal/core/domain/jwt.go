package domain

import "strings"

// JWTConfig is the token configuration shared by the provider and the
// secured services. It is stored as a flat JSON object.
type JWTConfig struct {
	Issuer     string   `json:"issuer"`
	TokenValid int      `json:"token-valid"`
	HeaderKey  string   `json:"header-key"`
	PublicKey  string   `json:"public-key"`
	PrivateKey string   `json:"private-key"`
	Roles      []string `json:"roles"`
}

// KeyPair holds base64-encoded key material.
type KeyPair struct {
	// Public is the X.509 SubjectPublicKeyInfo DER, base64 encoded.
	Public string

	// Private is the PKCS#8 DER, base64 encoded.
	Private string
}

// JWTProviderOptions configures the jwtprovider scaffold.
type JWTProviderOptions struct {
	Realm      string
	Issuer     string
	HeaderKey  string
	Package    string
	TokenValid int
	Roles      []string
	RunOptions
}

// JavaPackage returns the package name with dashes turned into dots.
func (o JWTProviderOptions) JavaPackage() string {
	return strings.ReplaceAll(o.Package, "-", ".")
}

// PackageDir returns the package as a slash-separated directory path.
func (o JWTProviderOptions) PackageDir() string {
	return strings.ReplaceAll(o.JavaPackage(), ".", "/")
}

// JWTSecuredOptions configures the jwtsecured scaffold.
type JWTSecuredOptions struct {
	// ConfigPath locates the JWT config written by the provider.
	ConfigPath string
	RunOptions
}

// PayaraOptions configures the add-payara-micro scaffold.
type PayaraOptions struct {
	Version       string
	ContextRoot   string
	PluginVersion string

	JDBCDriver   JDBCDriver
	JDBCURL      string
	JDBCUsername string
	JDBCPassword string

	RealmGroupName      string
	RealmGroupTable     string
	RealmPasswordColumn string
	RealmUserNameColumn string
	RealmUserTable      string
	RunOptions
}

// JWTDependencies are the libraries the generated token provider needs.
func JWTDependencies() []Dependency {
	return []Dependency{
		{GroupID: "org.bouncycastle", ArtifactID: "bcprov-jdk15on", Version: "1.66"},
		{GroupID: "io.jsonwebtoken", ArtifactID: "jjwt", Version: "0.9.1"},
		{GroupID: "com.fasterxml.jackson.core", ArtifactID: "jackson-annotations", Version: "2.11.2", Scope: "provided"},
		{GroupID: "com.fasterxml.jackson.core", ArtifactID: "jackson-core", Version: "2.11.2", Scope: "provided"},
		{GroupID: "com.fasterxml.jackson.core", ArtifactID: "jackson-databind", Version: "2.11.2", Scope: "provided"},
		{GroupID: "jakarta.platform", ArtifactID: "jakarta.jakartaee-web-api", Version: "8.0.0", Scope: "provided"},
	}
}
