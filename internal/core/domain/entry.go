package domain

// Entry is one declarative record to merge into a section.
type Entry interface {
	// Identity returns the discriminator value used for duplicate detection.
	Identity() string

	// Element returns the subtree to insert when the entry is absent.
	Element() Element
}

// Element is the shape of a new entry element.
type Element struct {
	// Tag is the element name.
	Tag string

	// Text is the element's own text content, if any.
	Text string

	// Fields are child elements in fixed schema order.
	// Fields with an empty value are omitted.
	Fields []Field

	// Fragment is raw markup deep-imported under the element after Fields.
	Fragment string
}

// Field is a leaf child element.
type Field struct {
	Name  string
	Value string
}

// Property is a Maven <properties> entry. The property name is both the
// element tag and the identity.
type Property struct {
	Name  string
	Value string
}

// Identity returns the property name.
func (p Property) Identity() string { return p.Name }

// Element returns <name>value</name>.
func (p Property) Element() Element {
	return Element{Tag: p.Name, Text: p.Value}
}

// Dependency is a Maven <dependency> entry identified by artifactId.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string
}

// Identity returns the artifact id.
func (d Dependency) Identity() string { return d.ArtifactID }

// Element returns the dependency subtree.
func (d Dependency) Element() Element {
	return Element{
		Tag: "dependency",
		Fields: []Field{
			{Name: "groupId", Value: d.GroupID},
			{Name: "artifactId", Value: d.ArtifactID},
			{Name: "version", Value: d.Version},
			{Name: "scope", Value: d.Scope},
		},
	}
}

// Plugin is a Maven <plugin> entry identified by artifactId.
// Configuration holds raw markup (typically <configuration> or <executions>)
// imported as children of the plugin element.
type Plugin struct {
	GroupID       string
	ArtifactID    string
	Version       string
	Configuration string
}

// Identity returns the artifact id.
func (p Plugin) Identity() string { return p.ArtifactID }

// Element returns the plugin subtree.
func (p Plugin) Element() Element {
	return Element{
		Tag: "plugin",
		Fields: []Field{
			{Name: "groupId", Value: p.GroupID},
			{Name: "artifactId", Value: p.ArtifactID},
			{Name: "version", Value: p.Version},
		},
		Fragment: p.Configuration,
	}
}

// SecurityRole is a web.xml <security-role> entry.
type SecurityRole struct {
	Name string
}

// Identity returns the role name.
func (r SecurityRole) Identity() string { return r.Name }

// Element returns the security-role subtree.
func (r SecurityRole) Element() Element {
	return Element{
		Tag:    "security-role",
		Fields: []Field{{Name: "role-name", Value: r.Name}},
	}
}

// RoleMapping is a payara-web.xml <security-role-mapping> entry.
type RoleMapping struct {
	Role  string
	Group string
}

// Identity returns the role name.
func (m RoleMapping) Identity() string { return m.Role }

// Element returns the security-role-mapping subtree.
func (m RoleMapping) Element() Element {
	return Element{
		Tag: "security-role-mapping",
		Fields: []Field{
			{Name: "role-name", Value: m.Role},
			{Name: "group-name", Value: m.Group},
		},
	}
}

// LoginConfig is the web.xml <login-config> realm declaration.
type LoginConfig struct {
	Realm string
}

// Identity returns the realm name.
func (c LoginConfig) Identity() string { return c.Realm }

// Element returns the login-config subtree.
func (c LoginConfig) Element() Element {
	return Element{
		Tag:    "login-config",
		Fields: []Field{{Name: "realm-name", Value: c.Realm}},
	}
}

// Batch pairs a section with the entries to merge into it.
type Batch struct {
	Section Section
	Entries []Entry
}

// PropertyBatch wraps properties as a batch.
func PropertyBatch(props ...Property) Batch {
	b := Batch{Section: SectionProperties}
	for _, p := range props {
		b.Entries = append(b.Entries, p)
	}
	return b
}

// DependencyBatch wraps dependencies as a batch.
func DependencyBatch(deps ...Dependency) Batch {
	b := Batch{Section: SectionDependencies}
	for _, d := range deps {
		b.Entries = append(b.Entries, d)
	}
	return b
}

// PluginBatch wraps plugins as a batch.
func PluginBatch(plugins ...Plugin) Batch {
	b := Batch{Section: SectionPlugins}
	for _, p := range plugins {
		b.Entries = append(b.Entries, p)
	}
	return b
}
