package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

type foreignNode struct{ driven.Node }

func TestImporter_CopiesTree(t *testing.T) {
	doc, err := ParseString("<plugin/>", 0)
	require.NoError(t, err)

	err = NewImporter().ImportInto(doc.Root(), `<a><b>x</b><c/></a>`)
	require.NoError(t, err)

	children := doc.Root().Children()
	require.Len(t, children, 1)
	a := children[0]
	assert.Equal(t, "a", a.Tag())

	grand := a.Children()
	require.Len(t, grand, 2)
	assert.Equal(t, "b", grand[0].Tag())
	assert.Equal(t, "x", grand[0].Text())
	assert.Equal(t, "c", grand[1].Tag())
	assert.Empty(t, grand[1].Children())
}

func TestImporter_DiscardsWhitespace(t *testing.T) {
	doc, err := ParseString("<plugin/>", 0)
	require.NoError(t, err)

	markup := "<configuration>\n    <x>   v   </x>\n\n    <!-- note -->\n    <y/>\n</configuration>"
	require.NoError(t, NewImporter().ImportInto(doc.Root(), markup))

	assert.Equal(t, `<plugin>
    <configuration>
        <x>v</x>
        <y/>
    </configuration>
</plugin>
`, doc.String())
}

func TestImporter_KeepsAttributes(t *testing.T) {
	doc, err := ParseString("<plugin/>", 0)
	require.NoError(t, err)

	require.NoError(t, NewImporter().ImportInto(doc.Root(), `<execution id="copy" phase="package"/>`))
	assert.Contains(t, doc.String(), `<execution id="copy" phase="package"/>`)
}

func TestImporter_MalformedLeavesTargetUntouched(t *testing.T) {
	doc, err := ParseString("<plugin><artifactId>p</artifactId></plugin>", 0)
	require.NoError(t, err)
	before := doc.String()

	for _, markup := range []string{`<a b=c/>`, "not markup", "", "<a/><b/>", "<a/>junk", "<a/>trailing<b/>"} {
		err := NewImporter().ImportInto(doc.Root(), markup)
		assert.ErrorIs(t, err, domain.ErrFragmentParse, markup)
	}
	assert.Equal(t, before, doc.String())
}

func TestImporter_ForeignNode(t *testing.T) {
	err := NewImporter().ImportInto(foreignNode{}, "<a/>")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImporter_AllowsSurroundingComments(t *testing.T) {
	doc, err := ParseString("<plugin/>", 0)
	require.NoError(t, err)

	require.NoError(t, NewImporter().ImportInto(doc.Root(), "<!-- lead -->\n<a>1</a>\n"))
	children := doc.Root().Children()
	require.Len(t, children, 1)
	assert.Equal(t, "1", children[0].Text())
}
