package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMCPHelp(t *testing.T) {
	fs := SetupMCPFlags()
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.Usage()

	assert.Contains(t, buf.String(), "wixconv mcp")
	assert.Contains(t, buf.String(), "WIXCONV_INDENTATION")
}

func TestHandleMCPUnknownFlag(t *testing.T) {
	fs := SetupMCPFlags()
	fs.SetOutput(&bytes.Buffer{})
	require.Error(t, fs.Parse([]string{"-nope"}))
}
