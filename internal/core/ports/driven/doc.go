// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Loads and saves descriptor trees (Document, Node)
//   - FragmentImporter: Deep-copies raw markup into a Node
//   - FileStore: Whole-file reads and writes for generated artifacts
//   - KeyGenerator: Signing key material for the JWT provider
//   - JWTConfigStore: JSON persistence of the JWT configuration
//   - TemplateStore: Java source templates
//   - Differ: Unified diffs for dry runs
//   - ConfigStore: Application configuration
//   - Logger: Progress and diagnostics
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
