package domain

const unknownDescription = "Unknown"

// JDBCDriver identifies a supported database driver for Payara Micro.
type JDBCDriver string

// Available JDBC drivers.
const (
	// JDBCDriverNone disables JDBC wiring.
	JDBCDriverNone JDBCDriver = ""

	// JDBCDriverMySQL is MySQL Connector/J.
	JDBCDriverMySQL JDBCDriver = "mysql"

	// JDBCDriverPostgreSQL is the PostgreSQL JDBC driver.
	JDBCDriverPostgreSQL JDBCDriver = "postgresql"
)

// IsValid returns true if the driver is recognised.
func (d JDBCDriver) IsValid() bool {
	switch d {
	case JDBCDriverNone, JDBCDriverMySQL, JDBCDriverPostgreSQL:
		return true
	default:
		return false
	}
}

// Enabled returns true when a driver was selected.
func (d JDBCDriver) Enabled() bool {
	return d != JDBCDriverNone
}

// String returns the string representation.
func (d JDBCDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d JDBCDriver) Description() string {
	switch d {
	case JDBCDriverNone:
		return "None"
	case JDBCDriverMySQL:
		return "MySQL (Connector/J)"
	case JDBCDriverPostgreSQL:
		return "PostgreSQL"
	default:
		return unknownDescription
	}
}

// Artifact returns the Maven coordinates of the driver.
func (d JDBCDriver) Artifact() Dependency {
	switch d {
	case JDBCDriverMySQL:
		return Dependency{GroupID: "mysql", ArtifactID: "mysql-connector-java", Version: "8.0.22"}
	case JDBCDriverPostgreSQL:
		return Dependency{GroupID: "org.postgresql", ArtifactID: "postgresql", Version: "42.2.18"}
	default:
		return Dependency{}
	}
}

// DataSourceClass returns the pooled data source class registered with Payara.
func (d JDBCDriver) DataSourceClass() string {
	switch d {
	case JDBCDriverMySQL:
		return "com.mysql.cj.jdbc.MysqlConnectionPoolDataSource"
	case JDBCDriverPostgreSQL:
		return "org.postgresql.jdbc3.Jdbc3ConnectionPool"
	default:
		return ""
	}
}

// AllJDBCDrivers returns the selectable drivers.
func AllJDBCDrivers() []JDBCDriver {
	return []JDBCDriver{JDBCDriverMySQL, JDBCDriverPostgreSQL}
}

// JWTSettings holds defaults for the jwtprovider command.
type JWTSettings struct {
	Realm      string
	Issuer     string
	HeaderKey  string
	Package    string
	TokenValid int
	Roles      []string
}

// PayaraSettings holds defaults for the add-payara-micro command.
type PayaraSettings struct {
	Version       string
	ContextRoot   string
	PluginVersion string

	RealmGroupName      string
	RealmGroupTable     string
	RealmPasswordColumn string
	RealmUserNameColumn string
	RealmUserTable      string
}

// FormatSettings controls how descriptors are written back.
type FormatSettings struct {
	// Indent is the fallback indentation width when a document's own width
	// cannot be detected.
	Indent int
}

// AppSettings holds all application settings.
type AppSettings struct {
	JWT    JWTSettings
	Payara PayaraSettings
	Format FormatSettings
}

// DefaultAppSettings returns the built-in defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		JWT: JWTSettings{
			Realm:      "realm-example",
			Issuer:     "http://apuntesdejava.com",
			HeaderKey:  "header-key-example",
			Package:    "com.apuntesdejava.endpoint.secure",
			TokenValid: 100000,
			Roles:      []string{"ADMIN", "USER"},
		},
		Payara: PayaraSettings{
			Version:             "5.2020.7",
			ContextRoot:         "/",
			PluginVersion:       "1.0.7",
			RealmGroupName:      "roleid",
			RealmGroupTable:     "RoleUser",
			RealmPasswordColumn: "password",
			RealmUserNameColumn: "userName",
			RealmUserTable:      "User",
		},
		Format: FormatSettings{
			Indent: 4,
		},
	}
}
