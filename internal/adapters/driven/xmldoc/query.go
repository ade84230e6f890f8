package xmldoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Compile checks a path expression without evaluating it.
func Compile(path string) error {
	_, err := compile(path)
	return err
}

func compile(path string) (etree.Path, error) {
	if strings.TrimSpace(path) == "" {
		return etree.Path{}, fmt.Errorf("%w: empty path", domain.ErrQuery)
	}
	p, err := etree.CompilePath(path)
	if err != nil {
		return etree.Path{}, fmt.Errorf("%w: %q: %w", domain.ErrQuery, path, err)
	}
	return p, nil
}

func find(from *etree.Element, path string) ([]driven.Node, error) {
	p, err := compile(path)
	if err != nil {
		return nil, err
	}
	found := from.FindElementsPath(p)
	nodes := make([]driven.Node, 0, len(found))
	for _, el := range found {
		nodes = append(nodes, &node{el: el})
	}
	return nodes, nil
}
