// Package xmldoc implements the descriptor document ports on top of an
// ordered XML DOM (github.com/beevik/etree).
//
// Adapters:
//   - Store: driven.DocumentStore, reading and writing through a driven.FileStore
//   - Document: driven.Document, one parsed descriptor
//   - Importer: driven.FragmentImporter, deep-copies raw markup into a Document
//
// Path expressions are compiled by etree. Absolute paths start at the
// document, so "/project/dependencies" selects the dependencies element of
// a pom regardless of its default namespace.
package xmldoc
