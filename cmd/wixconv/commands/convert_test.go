package commands

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deprecatedDoc = `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://schemas.microsoft.com/wix/2006/wi">
    <Fragment />
</Wix>`

const cleanDoc = `<?xml version="1.0" encoding="utf-8"?>
<Wix xmlns="http://wixtoolset.org/schemas/v4/wxs">
    <Fragment />
</Wix>`

// stubExit replaces osExit for the duration of a test and records the code.
func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	orig := osExit
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = orig })
	return &code
}

// captureStdout redirects stdout while fn runs and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Product.wxs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetupConvertFlagsDefaults(t *testing.T) {
	fs, flags := SetupConvertFlags()
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, 4, flags.Indent)
	assert.Equal(t, FormatText, flags.Format)
	assert.False(t, flags.Write)
	assert.False(t, flags.Quiet)
	assert.Empty(t, flags.ErrorsAsWarnings)
}

func TestConvertFlagsRepeatable(t *testing.T) {
	fs, flags := SetupConvertFlags()
	require.NoError(t, fs.Parse([]string{
		"-ignore", "XmlnsValueWrong",
		"-ignore", "DeclarationMissing",
		"-error-as-warning", "AssignAnonymousFileId",
		"a.wxs",
	}))

	assert.Equal(t, stringList{"XmlnsValueWrong", "DeclarationMissing"}, flags.IgnoreErrors)
	assert.Equal(t, stringList{"AssignAnonymousFileId"}, flags.ErrorsAsWarnings)
	assert.Equal(t, []string{"a.wxs"}, fs.Args())
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
}

func TestHandleConvertNoArgs(t *testing.T) {
	err := HandleConvert([]string{"-q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one file path")
}

func TestHandleConvertBadFormat(t *testing.T) {
	err := HandleConvert([]string{"-format", "xml", "a.wxs"})
	require.Error(t, err)
}

func TestHandleConvertOutputNeedsSingleInput(t *testing.T) {
	err := HandleConvert([]string{"-o", "out.wxs", "a.wxs", "b.wxs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one input")
}

func TestHandleConvertStdinIncompatibleWithWrite(t *testing.T) {
	err := HandleConvert([]string{"-w", "-q", "-"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}

func TestHandleConvertWriteInPlace(t *testing.T) {
	code := stubExit(t)
	path := writeTemp(t, deprecatedDoc)

	err := HandleConvert([]string{"-q", "-w", path})
	require.NoError(t, err)
	assert.Equal(t, 1, *code, "error-severity violations exit nonzero")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wixtoolset.org/schemas/v4/wxs")
}

func TestHandleConvertCleanFile(t *testing.T) {
	code := stubExit(t)
	path := writeTemp(t, cleanDoc)

	out := captureStdout(t, func() {
		require.NoError(t, HandleConvert([]string{"-q", "-w", path}))
	})
	assert.Equal(t, -1, *code, "clean conversions exit zero")
	assert.Empty(t, out)
}

func TestHandleConvertDryRunPrintsDocument(t *testing.T) {
	path := writeTemp(t, cleanDoc)

	out := captureStdout(t, func() {
		require.NoError(t, HandleConvert([]string{"-q", path}))
	})
	assert.Equal(t, cleanDoc, out)
}

func TestHandleConvertOutputFile(t *testing.T) {
	code := stubExit(t)
	path := writeTemp(t, deprecatedDoc)
	out := filepath.Join(t.TempDir(), "converted.wxs")

	err := HandleConvert([]string{"-q", "-o", out, path})
	require.NoError(t, err)
	assert.Equal(t, 1, *code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wixtoolset.org/schemas/v4/wxs")

	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, deprecatedDoc, string(original), "source is untouched without -w")
}

func TestHandleConvertJSONReport(t *testing.T) {
	code := stubExit(t)
	path := writeTemp(t, deprecatedDoc)

	out := captureStdout(t, func() {
		require.NoError(t, HandleConvert([]string{"-format", "json", "-o", filepath.Join(t.TempDir(), "x.wxs"), path}))
	})
	assert.Equal(t, 1, *code)

	var report convertReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 1)
	assert.Equal(t, path, report.Files[0].Path)
	assert.True(t, report.Files[0].Fixed)
	require.NotEmpty(t, report.Files[0].Issues)
	assert.Equal(t, "XmlnsValueWrong", report.Files[0].Issues[0].Test)
	assert.Greater(t, report.ErrorCount, 0)
}

func TestHandleConvertIgnoreSuppresses(t *testing.T) {
	code := stubExit(t)
	path := writeTemp(t, deprecatedDoc)

	out := captureStdout(t, func() {
		require.NoError(t, HandleConvert([]string{"-q", "-ignore", "XmlnsValueWrong", path}))
	})
	assert.Equal(t, -1, *code)
	assert.Contains(t, out, "schemas.microsoft.com", "ignored violations leave the document alone")
}

func TestHandleConvertErrorAsWarningExitsZero(t *testing.T) {
	code := stubExit(t)
	path := writeTemp(t, deprecatedDoc)

	_ = captureStdout(t, func() {
		require.NoError(t, HandleConvert([]string{"-q", "-error-as-warning", "XmlnsValueWrong", path}))
	})
	assert.Equal(t, -1, *code, "warnings alone do not fail the command")
}

func TestHandleConvertMissingFile(t *testing.T) {
	err := HandleConvert([]string{"-q", filepath.Join(t.TempDir(), "missing.wxs")})
	require.Error(t, err)
}

func TestFormatSourcePath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSourcePath(StdinFilePath))
	assert.Equal(t, "a.wxs", FormatSourcePath("a.wxs"))
}
