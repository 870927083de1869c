package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestTypeString(t *testing.T) {
	assert.Equal(t, "ConverterTestTypeUnknown", ConverterTestTypeUnknown.String())
	assert.Equal(t, "XmlnsMissing", XmlnsMissing.String())
	assert.Equal(t, "AssignPermissionExInheritable", AssignPermissionExInheritable.String())
	assert.Equal(t, "ConverterTestTypeUnknown", TestType(99).String(), "out of range falls back to the sentinel")
}

func TestTestTypeCode(t *testing.T) {
	assert.Equal(t, 1000, ConverterTestTypeUnknown.Code())
	assert.Equal(t, 1009, XmlnsMissing.Code())
}

func TestTestTypeNamesCoverAllVariants(t *testing.T) {
	require.Len(t, testTypeNames, int(AssignPermissionExInheritable)+1)
}

func TestParseTestType(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   TestType
		wantOK bool
	}{
		{name: "exact", input: "XmlnsMissing", want: XmlnsMissing, wantOK: true},
		{name: "case insensitive", input: "xmlnsmissing", want: XmlnsMissing, wantOK: true},
		{name: "mixed case", input: "assignANONYMOUSFileId", want: AssignAnonymousFileId, wantOK: true},
		{name: "unknown", input: "NotARealTestType", want: ConverterTestTypeUnknown, wantOK: false},
		{name: "sentinel does not resolve", input: "ConverterTestTypeUnknown", want: ConverterTestTypeUnknown, wantOK: false},
		{name: "empty", input: "", want: ConverterTestTypeUnknown, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTestType(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
