package driven

import "context"

// DocumentStore loads descriptors into mutable trees and writes them back.
// Backed by an XML DOM; locators are resolved through a FileStore.
type DocumentStore interface {
	// Load reads and parses the document at locator.
	// Fails with domain.ErrParse if the source is missing, unreadable,
	// empty or not well-formed.
	Load(ctx context.Context, locator string) (Document, error)

	// Save serializes doc with stable indentation and overwrites locator.
	// No backup is taken. Fails with domain.ErrWrite on I/O failure.
	Save(ctx context.Context, doc Document, locator string) error
}

// Document is an in-memory, mutable, ordered element tree with exactly one
// root element. A Document is owned by a single load-mutate-save cycle and
// is not safe for concurrent use.
type Document interface {
	// Root returns the single top-level element.
	Root() Node

	// Find evaluates a path expression against the document.
	// Absolute paths start at the document ("/project/properties").
	// An empty result is not an error; a malformed expression fails with
	// domain.ErrQuery.
	Find(path string) ([]Node, error)

	// Source returns the bytes the document was parsed from.
	Source() []byte

	// Bytes serializes the current tree the way Save would.
	Bytes() ([]byte, error)
}

// Node is an element of a Document.
//
// Path expressions understand child steps separated by "/", "*", ".",
// and equality predicates on a child's text ("[artifactId='lib']") or the
// node's own text ("[text()='lib']"). Literal values are single- or
// double-quoted and cannot contain their own quote character.
type Node interface {
	// Tag returns the element name without namespace prefix.
	Tag() string

	// Text returns the element's leading text content.
	Text() string

	// SetText replaces the element's leading text content.
	SetText(text string)

	// Children returns the child elements in document order.
	Children() []Node

	// Find evaluates a path expression relative to this node.
	Find(path string) ([]Node, error)

	// AppendChild creates a new child element after all existing children.
	AppendChild(tag string) Node
}

// FragmentImporter deep-copies raw markup into a document.
type FragmentImporter interface {
	// ImportInto parses markup and appends a clone of its root element
	// (and all descendants) under target. Whitespace-only text is dropped
	// and remaining text is trimmed. Fails with domain.ErrFragmentParse if
	// markup is not well-formed, in which case target is left untouched.
	ImportInto(target Node, markup string) error
}
