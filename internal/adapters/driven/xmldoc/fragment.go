package xmldoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.FragmentImporter = (*Importer)(nil)

// Importer copies raw markup fragments into documents parsed by this package.
type Importer struct{}

// NewImporter creates a fragment importer.
func NewImporter() *Importer {
	return &Importer{}
}

// ImportInto parses markup and appends a clone of its root under target.
// Attributes, child elements and trimmed text are copied; comments and
// processing instructions are not.
func (i *Importer) ImportInto(target driven.Node, markup string) error {
	n, ok := target.(*node)
	if !ok {
		return fmt.Errorf("%w: target is not an xmldoc node", domain.ErrInvalidInput)
	}

	frag := etree.NewDocument()
	if err := frag.ReadFromString(markup); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFragmentParse, err)
	}
	root, err := singleRoot(frag)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFragmentParse, err)
	}

	n.el.AddChild(cloneElement(root))
	return nil
}

func cloneElement(src *etree.Element) *etree.Element {
	dst := etree.NewElement(src.Tag)
	dst.Space = src.Space
	for _, a := range src.Attr {
		dst.CreateAttr(a.FullKey(), a.Value)
	}
	for _, tok := range src.Child {
		switch t := tok.(type) {
		case *etree.Element:
			dst.AddChild(cloneElement(t))
		case *etree.CharData:
			if text := strings.TrimSpace(t.Data); text != "" {
				dst.CreateText(text)
			}
		}
	}
	return dst
}
