package xmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// DefaultIndent is the indentation width used when the source gives no hint.
const DefaultIndent = 4

// Verify interface compliance.
var (
	_ driven.Document = (*Document)(nil)
	_ driven.Node     = (*node)(nil)
)

var encodingAttr = regexp.MustCompile(`encoding\s*=\s*("[^"]*"|'[^']*')`)

// Document is a parsed descriptor.
type Document struct {
	tree   *etree.Document
	source []byte
	indent indentation
}

// Parse builds a Document from source. The indentation of the source is
// kept on serialization; fallbackIndent is used when it cannot be detected.
func Parse(source []byte, fallbackIndent int) (*Document, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrParse)
	}

	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := tree.ReadFromBytes(source); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	if _, err := singleRoot(tree); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	// Output is always UTF-8, so the declaration has to say so.
	if decl := declaration(tree); decl != nil {
		decl.Inst = encodingAttr.ReplaceAllString(decl.Inst, `encoding="UTF-8"`)
	}

	ind, ok := detectIndent(source)
	if !ok {
		if fallbackIndent <= 0 {
			fallbackIndent = DefaultIndent
		}
		ind = indentation{width: fallbackIndent}
	}

	return &Document{
		tree:   tree,
		source: append([]byte(nil), source...),
		indent: ind,
	}, nil
}

// ParseString is Parse for string input.
func ParseString(source string, fallbackIndent int) (*Document, error) {
	return Parse([]byte(source), fallbackIndent)
}

// singleRoot returns the only top-level element of tree. Anything else at
// the top level must be whitespace, comments, directives or processing
// instructions.
func singleRoot(tree *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	roots := 0
	for _, tok := range tree.Child {
		switch t := tok.(type) {
		case *etree.Element:
			root = t
			roots++
		case *etree.CharData:
			if text := strings.TrimSpace(strings.TrimPrefix(t.Data, "\ufeff")); text != "" {
				return nil, fmt.Errorf("text %q outside the root element", text)
			}
		}
	}
	switch {
	case roots == 0:
		return nil, errors.New("no root element")
	case roots > 1:
		return nil, fmt.Errorf("%d root elements", roots)
	}
	return root, nil
}

func declaration(tree *etree.Document) *etree.ProcInst {
	for _, tok := range tree.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return pi
		}
	}
	return nil
}

// Root returns the single top-level element.
func (d *Document) Root() driven.Node {
	return &node{el: d.tree.Root()}
}

// Find evaluates path against the document.
func (d *Document) Find(path string) ([]driven.Node, error) {
	return find(&d.tree.Element, path)
}

// Source returns the bytes the document was parsed from.
func (d *Document) Source() []byte {
	return d.source
}

// Bytes re-indents the tree and serializes it. Whitespace-only text between
// elements is regenerated; text content is left alone.
func (d *Document) Bytes() ([]byte, error) {
	if d.indent.tabs {
		d.tree.IndentTabs()
	} else {
		d.tree.Indent(d.indent.width)
	}
	out, err := d.tree.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWrite, err)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

// String returns the serialized document, or an empty string on failure.
func (d *Document) String() string {
	b, err := d.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// node wraps an etree element.
type node struct {
	el *etree.Element
}

func (n *node) Tag() string {
	return n.el.Tag
}

func (n *node) Text() string {
	return strings.TrimSpace(n.el.Text())
}

func (n *node) SetText(text string) {
	n.el.SetText(text)
}

func (n *node) Children() []driven.Node {
	children := n.el.ChildElements()
	nodes := make([]driven.Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, &node{el: c})
	}
	return nodes
}

func (n *node) Find(path string) ([]driven.Node, error) {
	return find(n.el, path)
}

func (n *node) AppendChild(tag string) driven.Node {
	return &node{el: n.el.CreateElement(tag)}
}
