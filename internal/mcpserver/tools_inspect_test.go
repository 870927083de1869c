package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInspect(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://schemas.microsoft.com/wix/2006/wi" xmlns:util="http://schemas.microsoft.com/wix/UtilExtension">
    <Fragment>
        <util:Group Id="Admins" Name="Administrators" />
    </Fragment>
</Wix>`

	result, output, err := handleInspect(context.Background(), nil, inspectInput{
		Source: sourceInput{Content: doc},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "Wix", output.RootElement)
	assert.Equal(t, "http://schemas.microsoft.com/wix/2006/wi", output.RootNamespace)
	require.NotNil(t, output.Declaration)
	assert.Equal(t, "utf-8", output.Declaration.Encoding)
	assert.Equal(t, 3, output.ElementCount)
	assert.Len(t, output.Namespaces, 2)

	require.Len(t, output.DeprecatedNamespaces, 2)
	byNS := map[string]deprecatedNamespace{}
	for _, d := range output.DeprecatedNamespaces {
		byNS[d.Namespace] = d
	}
	assert.Equal(t, "http://wixtoolset.org/schemas/v4/wxs",
		byNS["http://schemas.microsoft.com/wix/2006/wi"].ReplacedBy)
	assert.Equal(t, "http://wixtoolset.org/schemas/v4/wxs/util",
		byNS["http://schemas.microsoft.com/wix/UtilExtension"].ReplacedBy)
	assert.Equal(t, "Wix", byNS["http://schemas.microsoft.com/wix/2006/wi"].DeclaredFor)
	assert.Equal(t, 2, byNS["http://schemas.microsoft.com/wix/2006/wi"].DeclaredAt)
}

func TestHandleInspectCleanDocument(t *testing.T) {
	result, output, err := handleInspect(context.Background(), nil, inspectInput{
		Source: sourceInput{Content: `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs" />`},
	})
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Empty(t, output.DeprecatedNamespaces)
	assert.Equal(t, []string{"http://wixtoolset.org/schemas/v4/wxs"}, output.Namespaces)
	assert.Equal(t, 1, output.ElementCount)
}

func TestHandleInspectBadInput(t *testing.T) {
	result, _, err := handleInspect(context.Background(), nil, inspectInput{
		Source: sourceInput{Content: "<Wix><Unclosed></Wix>"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
