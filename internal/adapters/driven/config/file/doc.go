// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.mplemon.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage
//   - TemplateStore: user-editable Java source templates with embedded defaults
package file
