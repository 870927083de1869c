package mcpserver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wixtools/wixconv"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name  string
		input error
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "no path", input: errors.New("target version is required"), want: "target version is required"},
		{name: "home path", input: fmt.Errorf("open /home/alice/secret/Product.wxs: no such file"), want: "open <path>: no such file"},
		{name: "tmp path", input: fmt.Errorf("parsing /tmp/build/a.wxs: bad xml"), want: "parsing <path>: bad xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.input))
		})
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("boom"))
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "boom", result.Content[0].(*mcp.TextContent).Text)
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[int](3)
	assert.NotNil(t, s)
	assert.Equal(t, 0, len(s))
	assert.Equal(t, 3, cap(s))
}

func TestRegisterAllTools(t *testing.T) {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "wixconv", Version: wixconv.Version()},
		nil,
	)
	assert.NotPanics(t, func() { registerAllTools(server) })
}
