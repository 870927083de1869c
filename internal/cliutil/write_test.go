package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "converted %d file(s) with %s", 3, "warnings")
	assert.Equal(t, "converted 3 file(s) with warnings", buf.String())
}

func TestWritefNoArgs(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "plain message")
	assert.Equal(t, "plain message", buf.String())
}

// errorWriter always fails, to exercise the stderr fallback.
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritefWriteError(t *testing.T) {
	assert.NotPanics(t, func() {
		Writef(errorWriter{}, "this will fail")
	})
}
