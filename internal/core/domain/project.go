package domain

import (
	"path"
	"path/filepath"
	"strings"
)

// Well-known locations relative to a project base directory.
const (
	POMFile               = "pom.xml"
	WebXMLFile            = "src/main/webapp/WEB-INF/web.xml"
	PayaraWebXMLFile      = "src/main/webapp/WEB-INF/payara-web.xml"
	JavaSourceDir         = "src/main/java"
	ResourcesDir          = "src/main/resources"
	JWTConfigFile         = "jwt-config.json"
	MicroProfileConfig    = "src/main/resources/META-INF/microprofile-config.properties"
	PrebootCommandFile    = "prebootcommandfile"
	PostbootCommandFile   = "postbootcommandfile"
	PostdeployCommandFile = "postdeploycommandfile"
)

// Project locates files of one project. BaseDir is a filesystem path or a
// storage URL such as mem://localhost/app.
type Project struct {
	BaseDir string
}

// Locate joins elements onto the base directory. Elements use forward
// slashes; ".." is resolved.
func (p Project) Locate(elem ...string) string {
	return JoinLocator(p.BaseDir, elem...)
}

// POM returns the project descriptor locator.
func (p Project) POM() string {
	return p.Locate(POMFile)
}

// JoinLocator joins elements onto a path or URL.
func JoinLocator(base string, elem ...string) string {
	if scheme, rest, ok := strings.Cut(base, "://"); ok {
		parts := append([]string{rest}, elem...)
		return scheme + "://" + path.Join(parts...)
	}
	parts := []string{base}
	for _, e := range elem {
		parts = append(parts, filepath.FromSlash(e))
	}
	return filepath.Join(parts...)
}

// RunOptions are shared by every mutating operation.
type RunOptions struct {
	// DryRun computes changes without writing anything.
	DryRun bool
}

// MergeRequest describes one load-mutate-save cycle.
type MergeRequest struct {
	Locator string
	Batches []Batch
	RunOptions
}
