package converter

import "strings"

// TestType names a category of detectable violation. Every test type can be
// independently downgraded to a warning or ignored through configuration.
type TestType int

const (
	// ConverterTestTypeUnknown is the sentinel reported when a configured
	// test-type name does not resolve to any known test type.
	ConverterTestTypeUnknown TestType = iota

	// XmlUnreadable indicates the document could not be parsed as XML.
	// This is terminal for the document being converted.
	XmlUnreadable

	// UnableToSaveFile indicates the converted document could not be
	// written back to its source. Non-fatal; the in-memory result stands.
	UnableToSaveFile

	// DeclarationMissing indicates the document has no XML declaration.
	DeclarationMissing

	// DeclarationEncodingWrong indicates the declared encoding is not utf-8.
	DeclarationEncodingWrong

	// WhitespacePrecedingCDataWrong indicates whitespace appears
	// immediately before a CDATA node.
	WhitespacePrecedingCDataWrong

	// WhitespacePrecedingNodeWrong indicates the whitespace before an
	// element does not match the canonical indentation for its depth.
	WhitespacePrecedingNodeWrong

	// WhitespaceFollowingCDataWrong indicates trailing whitespace after a
	// CDATA node (or in an otherwise empty element) before the close tag.
	WhitespaceFollowingCDataWrong

	// WhitespaceFollowingNodeWrong indicates the whitespace before a close
	// tag does not match the canonical indentation for the parent's depth.
	WhitespaceFollowingNodeWrong

	// XmlnsMissing indicates a Wix or Include element with no namespace.
	XmlnsMissing

	// XmlnsValueWrong indicates a namespace declaration naming a
	// deprecated schema namespace.
	XmlnsValueWrong

	// ColumnCategoryCamelCase indicates a Column/@Category value that is
	// not lower-camel-cased on its first character.
	ColumnCategoryCamelCase

	// ColumnModularizeCamelCase indicates a Column/@Modularize value that
	// is not lower-camel-cased on its first character.
	ColumnModularizeCamelCase

	// BootstrapperApplicationDataDeprecated indicates a CustomTable with
	// the deprecated BootstrapperApplicationData attribute.
	BootstrapperApplicationDataDeprecated

	// AssignDirectoryNameFromShortName indicates a Directory with a
	// ShortName but no Name.
	AssignDirectoryNameFromShortName

	// AssignAnonymousFileId indicates a File without an Id attribute.
	AssignAnonymousFileId

	// SuppressSignatureValidationDeprecated indicates a package or payload
	// element with the deprecated SuppressSignatureValidation attribute.
	SuppressSignatureValidationDeprecated

	// WixCABinaryIdRenamed indicates a CustomAction referencing a custom
	// action dll by its deprecated binary id.
	WixCABinaryIdRenamed

	// QuietExecCustomActionsRenamed indicates a CustomAction referencing
	// the renamed quiet-exec custom actions.
	QuietExecCustomActionsRenamed

	// QtExecCmdTimeoutAmbiguous indicates a Property with the
	// QtExecCmdTimeout id. The replacement depends on which quiet-exec
	// custom action the timeout was intended for, so no fix is applied.
	QtExecCmdTimeoutAmbiguous

	// AssignPermissionExInheritable indicates a util:PermissionEx element
	// without an Inheritable attribute outside a CreateFolder parent.
	AssignPermissionExInheritable
)

// testTypeNames is ordered to match the TestType constants.
var testTypeNames = []string{
	"ConverterTestTypeUnknown",
	"XmlUnreadable",
	"UnableToSaveFile",
	"DeclarationMissing",
	"DeclarationEncodingWrong",
	"WhitespacePrecedingCDataWrong",
	"WhitespacePrecedingNodeWrong",
	"WhitespaceFollowingCDataWrong",
	"WhitespaceFollowingNodeWrong",
	"XmlnsMissing",
	"XmlnsValueWrong",
	"ColumnCategoryCamelCase",
	"ColumnModularizeCamelCase",
	"BootstrapperApplicationDataDeprecated",
	"AssignDirectoryNameFromShortName",
	"AssignAnonymousFileId",
	"SuppressSignatureValidationDeprecated",
	"WixCABinaryIdRenamed",
	"QuietExecCustomActionsRenamed",
	"QtExecCmdTimeoutAmbiguous",
	"AssignPermissionExInheritable",
}

// String returns the test type's name.
func (t TestType) String() string {
	if t < 0 || int(t) >= len(testTypeNames) {
		return "ConverterTestTypeUnknown"
	}
	return testTypeNames[t]
}

// Code returns the numeric diagnostic code for the test type.
func (t TestType) Code() int {
	return 1000 + int(t)
}

// ParseTestType resolves a configured name to a TestType,
// case-insensitively. The sentinel name itself does not resolve; it exists
// only to classify unresolvable names.
func ParseTestType(name string) (TestType, bool) {
	for i, n := range testTypeNames {
		if i == int(ConverterTestTypeUnknown) {
			continue
		}
		if strings.EqualFold(n, name) {
			return TestType(i), true
		}
	}
	return ConverterTestTypeUnknown, false
}
