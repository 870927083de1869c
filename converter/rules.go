package converter

import (
	"strings"

	"github.com/wixtools/wixconv/internal/naming"
	"github.com/wixtools/wixconv/xmldoc"
)

// ruleFunc mutates an element per its migration rule. Every mutation is
// gated by the report-then-fix protocol; a handler that gets false back
// from onError leaves the tree alone.
type ruleFunc func(c *Converter, e, parent *xmldoc.Element)

// elementRules dispatches on the qualified name of an element, after
// namespace migration and before recursion into children. Built once at
// package init and never mutated.
var elementRules = map[xmldoc.Name]ruleFunc{
	{Space: WxsNamespace, Local: "Column"}:       convertColumnElement,
	{Space: WxsNamespace, Local: "CustomTable"}:  convertCustomTableElement,
	{Space: WxsNamespace, Local: "Directory"}:    convertDirectoryElement,
	{Space: WxsNamespace, Local: "File"}:         convertFileElement,
	{Space: WxsNamespace, Local: "ExePackage"}:   convertSuppressSignatureValidation,
	{Space: WxsNamespace, Local: "MsiPackage"}:   convertSuppressSignatureValidation,
	{Space: WxsNamespace, Local: "MspPackage"}:   convertSuppressSignatureValidation,
	{Space: WxsNamespace, Local: "MsuPackage"}:   convertSuppressSignatureValidation,
	{Space: WxsNamespace, Local: "Payload"}:      convertSuppressSignatureValidation,
	{Space: WxsNamespace, Local: "CustomAction"}: convertCustomActionElement,
	{Space: WxsNamespace, Local: "Property"}:     convertPropertyElement,

	{Space: UtilNamespace, Local: "PermissionEx"}: convertPermissionExElement,

	{Local: "Wix"}:     convertMissingNamespaceElement,
	{Local: "Include"}: convertMissingNamespaceElement,
}

// deprecatedCABinaryIds maps legacy custom action dll binary ids to the
// current platform-specific ids.
var deprecatedCABinaryIds = map[string]string{
	"WixCA":      "Wix4UtilCA_X86",
	"UtilCA":     "Wix4UtilCA_X86",
	"WixCA_x64":  "Wix4UtilCA_X64",
	"UtilCA_x64": "Wix4UtilCA_X64",
}

func convertColumnElement(c *Converter, e, _ *xmldoc.Element) {
	if category, ok := e.AttrValue("Category"); ok && !naming.IsLowerFirst(category) {
		if c.onError(ColumnCategoryCamelCase, e, "The Category attribute's value '%s' must begin with a lowercase letter.", category) {
			e.SetAttr("Category", naming.LowerFirst(category))
		}
	}

	// WixCop compared the Category value here, a copy/paste slip; the
	// check belongs to the Modularize value.
	if modularize, ok := e.AttrValue("Modularize"); ok && !naming.IsLowerFirst(modularize) {
		if c.onError(ColumnModularizeCamelCase, e, "The Modularize attribute's value '%s' must begin with a lowercase letter.", modularize) {
			e.SetAttr("Modularize", naming.LowerFirst(modularize))
		}
	}
}

func convertCustomTableElement(c *Converter, e, _ *xmldoc.Element) {
	if _, ok := e.AttrValue("BootstrapperApplicationData"); !ok {
		return
	}
	if c.onError(BootstrapperApplicationDataDeprecated, e, "The CustomTable element's BootstrapperApplicationData attribute has been renamed. Use the Unreal attribute instead.") {
		renameAttr(e, "BootstrapperApplicationData", "Unreal")
	}
}

func convertDirectoryElement(c *Converter, e, _ *xmldoc.Element) {
	if e.HasAttr("Name") {
		return
	}
	shortName, ok := e.AttrValue("ShortName")
	if !ok {
		return
	}
	if c.onError(AssignDirectoryNameFromShortName, e, "The Directory element's ShortName value '%s' can be assigned to the Name attribute instead.", shortName) {
		e.SetAttr("Name", shortName)
		e.RemoveAttr("ShortName")
	}
}

func convertFileElement(c *Converter, e, _ *xmldoc.Element) {
	if e.HasAttr("Id") {
		return
	}
	source, ok := e.AttrValue("Name")
	if !ok {
		source, ok = e.AttrValue("Source")
	}
	if !ok {
		return
	}
	if c.onError(AssignAnonymousFileId, e, "The file id is being updated to '%s' to ensure it remains the same as the default", SanitizeIdentifier(fileName(source))) {
		e.InsertAttrFirst("Id", SanitizeIdentifier(fileName(source)))
	}
}

// fileName returns the portion of path after the last separator,
// accepting both slash styles.
func fileName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func convertSuppressSignatureValidation(c *Converter, e, _ *xmldoc.Element) {
	suppress, ok := e.AttrValue("SuppressSignatureValidation")
	if !ok {
		return
	}
	if c.onError(SuppressSignatureValidationDeprecated, e, "The chain package element contains deprecated '%s' attribute. Use the 'EnableSignatureValidation' attribute instead.", "SuppressSignatureValidation") {
		if suppress == "no" {
			e.SetAttr("EnableSignatureValidation", "yes")
		}
		e.RemoveAttr("SuppressSignatureValidation")
	}
}

func convertCustomActionElement(c *Converter, e, _ *xmldoc.Element) {
	if binaryKey, ok := e.AttrValue("BinaryKey"); ok {
		if renamed, ok := deprecatedCABinaryIds[binaryKey]; ok {
			if c.onError(WixCABinaryIdRenamed, e, "The custom action dll '%s' has been renamed '%s'.", binaryKey, renamed) {
				e.SetAttr("BinaryKey", renamed)
			}
		}
	}

	if dllEntry, ok := e.AttrValue("DllEntry"); ok {
		if dllEntry == "CAQuietExec" || dllEntry == "CAQuietExec64" {
			if c.onError(QuietExecCustomActionsRenamed, e, "The CAQuietExec custom actions have been renamed WixQuietExec.") {
				e.SetAttr("DllEntry", strings.ReplaceAll(dllEntry, "CAQuietExec", "WixQuietExec"))
			}
		}
	}

	if property, ok := e.AttrValue("Property"); ok {
		if property == "QtExecCmdLine" || property == "QtExec64CmdLine" {
			if c.onError(QuietExecCustomActionsRenamed, e, "The QtExec custom action properties have been renamed WixQuietExec.") {
				e.SetAttr("Property", strings.ReplaceAll(property, "QtExec", "WixQuietExec"))
			}
		}
	}
}

func convertPropertyElement(c *Converter, e, _ *xmldoc.Element) {
	if id, _ := e.AttrValue("Id"); id == "QtExecCmdTimeout" {
		// No safe automatic fix: the replacement property depends on which
		// quiet-exec custom action the timeout was intended for.
		c.onError(QtExecCmdTimeoutAmbiguous, e, "The QtExecCmdTimeout property is used for both CAQuietExec and CAQuietExec64 custom actions. Use WixQuietExecCmdTimeout or WixQuietExec64CmdTimeout instead.")
	}
}

func convertPermissionExElement(c *Converter, e, parent *xmldoc.Element) {
	if e.HasAttr("Inheritable") {
		return
	}
	if parent != nil && parent.Name.Local == "CreateFolder" {
		return
	}
	if c.onError(AssignPermissionExInheritable, e, "The PermissionEx Inheritable attribute is being set to 'no' to ensure it remains the same as the default") {
		e.SetAttr("Inheritable", "no")
	}
}

func convertMissingNamespaceElement(c *Converter, e, _ *xmldoc.Element) {
	if c.onError(XmlnsMissing, e, "The xmlns attribute is missing. It must be present with a value of '%s'.", WxsNamespace) {
		assignMissingNamespace(e)
		e.SetAttr("xmlns", WxsNamespace)
	}
}

// assignMissingNamespace scopes the element and every namespace-less
// descendant to the current authoring namespace.
func assignMissingNamespace(e *xmldoc.Element) {
	if e.Name.Space == "" {
		e.Name.Space = WxsNamespace
	}
	for _, child := range e.Children {
		if el, ok := child.(*xmldoc.Element); ok {
			assignMissingNamespace(el)
		}
	}
}

// renameAttr renames an unqualified attribute in place, preserving its
// position and value.
func renameAttr(e *xmldoc.Element, from, to string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Space == "" && e.Attrs[i].Name.Local == from {
			e.Attrs[i].Name.Local = to
			return
		}
	}
}
