package converter

import (
	"github.com/wixtools/wixconv/xmldoc"
)

// Current schema namespaces.
const (
	// WxsNamespace is the current authoring schema namespace.
	WxsNamespace = "http://wixtoolset.org/schemas/v4/wxs"

	// WxlNamespace is the current localization schema namespace.
	WxlNamespace = "http://wixtoolset.org/schemas/v4/wxl"

	// UtilNamespace is the current util extension schema namespace.
	UtilNamespace = "http://wixtoolset.org/schemas/v4/wxs/util"
)

// deprecatedNamespaces maps each legacy schema namespace to its current
// replacement. Read-only after init.
var deprecatedNamespaces = map[string]string{
	"http://schemas.microsoft.com/wix/2006/wi":           WxsNamespace,
	"http://schemas.microsoft.com/wix/2006/localization": WxlNamespace,
	"http://schemas.microsoft.com/wix/2006/libraries":    "http://wixtoolset.org/schemas/v4/wixlib",
	"http://schemas.microsoft.com/wix/2006/objects":      "http://wixtoolset.org/schemas/v4/wixobj",
	"http://schemas.microsoft.com/wix/2006/outputs":      "http://wixtoolset.org/schemas/v4/wixout",
	"http://schemas.microsoft.com/wix/2006/pdbs":         "http://wixtoolset.org/schemas/v4/wixpdb",
	"http://schemas.microsoft.com/wix/2006/tables":       "http://wixtoolset.org/schemas/v4/wi/tables",
	"http://schemas.microsoft.com/wix/2006/WixUnit":      "http://wixtoolset.org/schemas/v4/wixunit",
	"http://schemas.microsoft.com/wix/2003/04/actions":   "http://wixtoolset.org/schemas/v4/wi/actions",
	"http://schemas.microsoft.com/wix/2009/Lux":          "http://wixtoolset.org/schemas/v4/lux",
	"http://wixtoolset.org/schemas/thmutil/2010":         "http://wixtoolset.org/schemas/v4/thmutil",

	"http://schemas.microsoft.com/wix/BalExtension":        "http://wixtoolset.org/schemas/v4/wxs/bal",
	"http://schemas.microsoft.com/wix/ComPlusExtension":    "http://wixtoolset.org/schemas/v4/wxs/complus",
	"http://schemas.microsoft.com/wix/DependencyExtension": "http://wixtoolset.org/schemas/v4/wxs/dependency",
	"http://schemas.microsoft.com/wix/DifxAppExtension":    "http://wixtoolset.org/schemas/v4/wxs/difxapp",
	"http://schemas.microsoft.com/wix/FirewallExtension":   "http://wixtoolset.org/schemas/v4/wxs/firewall",
	"http://schemas.microsoft.com/wix/GamingExtension":     "http://wixtoolset.org/schemas/v4/wxs/gaming",
	"http://schemas.microsoft.com/wix/IIsExtension":        "http://wixtoolset.org/schemas/v4/wxs/iis",
	"http://schemas.microsoft.com/wix/MsmqExtension":       "http://wixtoolset.org/schemas/v4/wxs/msmq",
	"http://schemas.microsoft.com/wix/NetFxExtension":      "http://wixtoolset.org/schemas/v4/wxs/netfx",
	"http://schemas.microsoft.com/wix/PSExtension":         "http://wixtoolset.org/schemas/v4/wxs/powershell",
	"http://schemas.microsoft.com/wix/SqlExtension":        "http://wixtoolset.org/schemas/v4/wxs/sql",
	"http://schemas.microsoft.com/wix/TagExtension":        "http://wixtoolset.org/schemas/v4/wxs/tag",
	"http://schemas.microsoft.com/wix/UtilExtension":       UtilNamespace,
	"http://schemas.microsoft.com/wix/VSExtension":         "http://wixtoolset.org/schemas/v4/wxs/vs",
}

// CurrentNamespace reports whether uri is a deprecated schema namespace
// and, if so, returns its current replacement.
func CurrentNamespace(uri string) (string, bool) {
	to, ok := deprecatedNamespaces[uri]
	return to, ok
}

// migrateNamespaces checks the element's namespace declarations against the
// deprecated table and, when the fix is granted, rewrites the element and
// every descendant still scoped to a deprecated namespace. The rewrite is
// atomic per subtree: it completes before any element rule sees the subtree.
func (c *Converter) migrateNamespaces(e *xmldoc.Element) {
	var deprecated []string
	for _, a := range e.Attrs {
		if !a.IsNamespaceDecl() {
			continue
		}
		if _, ok := deprecatedNamespaces[a.Value]; ok {
			deprecated = append(deprecated, a.Value)
		}
	}
	if len(deprecated) == 0 {
		return
	}

	if !c.onError(XmlnsValueWrong, e, "The namespace '%s' is out of date. It must be '%s'.", deprecated[0], deprecatedNamespaces[deprecated[0]]) {
		return
	}
	rewriteDeprecatedNamespaces(e)
}

// rewriteDeprecatedNamespaces renames the element, its namespace
// declarations, and its attributes out of deprecated namespaces, then
// recurses. The attribute list is rebuilt in encounter order.
func rewriteDeprecatedNamespaces(e *xmldoc.Element) {
	if to, ok := deprecatedNamespaces[e.Name.Space]; ok {
		e.Name.Space = to
	}

	rebuilt := make([]xmldoc.Attr, 0, len(e.Attrs))
	for _, a := range e.Attrs {
		if a.IsNamespaceDecl() {
			if to, ok := deprecatedNamespaces[a.Value]; ok {
				a.Value = to
			}
		} else if to, ok := deprecatedNamespaces[a.Name.Space]; ok {
			a.Name.Space = to
		}
		rebuilt = append(rebuilt, a)
	}
	e.Attrs = rebuilt

	for _, child := range e.Children {
		if el, ok := child.(*xmldoc.Element); ok {
			rewriteDeprecatedNamespaces(el)
		}
	}
}
