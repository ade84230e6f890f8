package driven

// TemplateStore provides access to source file templates.
// Implementations may load templates from files, embed them in the binary,
// or both.
type TemplateStore interface {
	// Load returns the template content for the given name.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads on next access.
	Reload()
}

// Well-known template names used by the scaffolding services.
// Templates use the PACKAGE placeholder for the target Java package.
const (
	// TemplateCypherService loads keys and signs tokens.
	TemplateCypherService = "CypherService"

	// TemplateTokenProviderResource is the REST endpoint issuing tokens.
	TemplateTokenProviderResource = "TokenProviderResource"
)

// TemplatePackagePlaceholder is replaced by the Java package name.
const TemplatePackagePlaceholder = "PACKAGE"

// ProviderTemplates lists the templates rendered by the JWT provider scaffold.
func ProviderTemplates() []string {
	return []string{TemplateCypherService, TemplateTokenProviderResource}
}
