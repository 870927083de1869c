package converter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wixtools/wixconv/xmldoc"
)

func TestMigrateRootNamespace(t *testing.T) {
	c := newTestConverter(t)
	doc, result := convertString(t, c, `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://schemas.microsoft.com/wix/2006/wi">
    <Fragment>
        <Property Id="A" Value="B" />
    </Fragment>
</Wix>`)

	assert.Contains(t, testNames(result), "XmlnsValueWrong")

	root := doc.Root()
	assert.Equal(t, WxsNamespace, root.Name.Space)

	// Every element in the subtree is re-scoped; none retains the
	// deprecated namespace.
	xmldoc.Walk(doc, func(n xmldoc.Node, _ int) bool {
		if e, ok := n.(*xmldoc.Element); ok {
			assert.Equal(t, WxsNamespace, e.Name.Space, "element %s", e.Name.Local)
		}
		return true
	})

	value, ok := root.AttrValue("xmlns")
	require.True(t, ok)
	assert.Equal(t, WxsNamespace, value)
}

func TestMigrateEveryDeprecatedNamespace(t *testing.T) {
	for deprecated, current := range deprecatedNamespaces {
		t.Run(deprecated, func(t *testing.T) {
			c := newTestConverter(t)
			doc, result := convertString(t, c, fmt.Sprintf(
				`<?xml version="1.0" encoding="utf-8"?>
<Root xmlns="%s"><Child /></Root>`, deprecated))

			assert.Contains(t, testNames(result), "XmlnsValueWrong")
			xmldoc.Walk(doc, func(n xmldoc.Node, _ int) bool {
				if e, ok := n.(*xmldoc.Element); ok {
					assert.Equal(t, current, e.Name.Space)
					assert.NotEqual(t, deprecated, e.Name.Space)
				}
				return true
			})
		})
	}
}

func TestMigratePrefixedExtensionNamespace(t *testing.T) {
	c := newTestConverter(t)
	doc, result := convertString(t, c, `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://schemas.microsoft.com/wix/2006/wi" xmlns:util="http://schemas.microsoft.com/wix/UtilExtension">
    <Fragment>
        <util:Group Id="Admins" Name="Administrators" />
    </Fragment>
</Wix>`)

	assert.Contains(t, testNames(result), "XmlnsValueWrong")

	root := doc.Root()
	require.Len(t, root.Attrs, 2)
	assert.Equal(t, WxsNamespace, root.Attrs[0].Value)
	assert.Equal(t, "util", root.Attrs[1].DeclaredPrefix(), "prefix is preserved")
	assert.Equal(t, UtilNamespace, root.Attrs[1].Value)

	group := doc.Root().Children[1].(*xmldoc.Element).Children[1].(*xmldoc.Element)
	assert.Equal(t, xmldoc.Name{Space: UtilNamespace, Local: "Group"}, group.Name)

	// Serialization keeps the declared prefix.
	assert.Contains(t, string(doc.Bytes()), "<util:Group ")
}

func TestMigratePreservesAttributeOrder(t *testing.T) {
	c := newTestConverter(t)
	doc, _ := convertString(t, c, `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://schemas.microsoft.com/wix/2006/wi"><Fragment Z="1" A="2" M="3" /></Wix>`)

	frag := doc.Root().Children[0].(*xmldoc.Element)
	require.Len(t, frag.Attrs, 3)
	assert.Equal(t, "Z", frag.Attrs[0].Name.Local)
	assert.Equal(t, "A", frag.Attrs[1].Name.Local)
	assert.Equal(t, "M", frag.Attrs[2].Name.Local)
}

func TestMigrateIgnoredLeavesTreeAlone(t *testing.T) {
	const deprecated = "http://schemas.microsoft.com/wix/2006/wi"
	c := newTestConverter(t, WithIgnoreErrors("XmlnsValueWrong"), WithIgnoreErrors("DeclarationMissing"))
	doc, result := convertString(t, c, fmt.Sprintf(`<Wix xmlns="%s" />`, deprecated))

	assert.Empty(t, result.Issues)
	assert.Equal(t, deprecated, doc.Root().Name.Space)
	value, _ := doc.Root().AttrValue("xmlns")
	assert.Equal(t, deprecated, value)
}

func TestCurrentNamespaceNotReported(t *testing.T) {
	c := newTestConverter(t)
	_, result := convertString(t, c, `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs" />`)

	assert.Empty(t, result.Issues)
}
