// Package domain defines the core business entities for mplemon.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A named container in a descriptor (properties, dependencies, ...)
//   - Entry: One declarative record merged into a section
//   - MergeReport: What a merge cycle added, skipped and saved
//   - JWTConfig: The generated token configuration
//   - Settings: Defaults for the scaffolding commands
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
