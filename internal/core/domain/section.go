package domain

import (
	"fmt"
	"strings"
)

// Section describes a container element holding a homogeneous list of entries.
type Section struct {
	// Name is a short label used in logs and reports.
	Name string

	// Path lists the element names from the document root down to the
	// section element. The first element is the expected root tag.
	Path []string

	// EntryTag is the element name of each entry. Empty means every entry
	// chooses its own tag, and the tag is the identity (properties).
	EntryTag string

	// Discriminator is the child element whose text identifies an entry.
	// Ignored when EntryTag is empty.
	Discriminator string

	// Singleton sections hold at most one entry: any existing discriminator
	// counts as present, whatever its value.
	Singleton bool
}

// Predefined sections for Maven and Jakarta EE descriptors.
var (
	SectionProperties = Section{
		Name: "properties",
		Path: []string{"project", "properties"},
	}

	SectionDependencies = Section{
		Name:          "dependencies",
		Path:          []string{"project", "dependencies"},
		EntryTag:      "dependency",
		Discriminator: "artifactId",
	}

	SectionPlugins = Section{
		Name:          "plugins",
		Path:          []string{"project", "build", "plugins"},
		EntryTag:      "plugin",
		Discriminator: "artifactId",
	}

	SectionSecurityRoles = Section{
		Name:          "security roles",
		Path:          []string{"web-app"},
		EntryTag:      "security-role",
		Discriminator: "role-name",
	}

	SectionRoleMappings = Section{
		Name:          "security role mappings",
		Path:          []string{"payara-web-app"},
		EntryTag:      "security-role-mapping",
		Discriminator: "role-name",
	}

	SectionLoginConfig = Section{
		Name:          "login config",
		Path:          []string{"web-app"},
		EntryTag:      "login-config",
		Discriminator: "realm-name",
		Singleton:     true,
	}
)

// Root returns the expected root element name.
func (s Section) Root() string {
	if len(s.Path) == 0 {
		return ""
	}
	return s.Path[0]
}

// String returns the absolute path of the section element.
func (s Section) String() string {
	return "/" + strings.Join(s.Path, "/")
}

// Validate checks the section is usable by the merge engine.
func (s Section) Validate() error {
	if len(s.Path) == 0 {
		return fmt.Errorf("%w: section %q has no path", ErrInvalidInput, s.Name)
	}
	for _, step := range s.Path {
		if !IsName(step) {
			return fmt.Errorf("%w: section %q has invalid path step %q", ErrInvalidInput, s.Name, step)
		}
	}
	if s.EntryTag == "" {
		if s.Singleton {
			return fmt.Errorf("%w: singleton section %q needs an entry tag", ErrInvalidInput, s.Name)
		}
		return nil
	}
	if !IsName(s.EntryTag) || !IsName(s.Discriminator) {
		return fmt.Errorf("%w: section %q has invalid entry tag or discriminator", ErrInvalidInput, s.Name)
	}
	return nil
}

// IsName reports whether s can be used as an unprefixed element name.
// It is narrower than the XML Name production: no colons, and nothing that
// could be read as path or predicate syntax.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || r == '.' || (r >= '0' && r <= '9')):
		case r > 0x7f && r != 0xa0:
		default:
			return false
		}
	}
	return true
}
