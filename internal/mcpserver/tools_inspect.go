package mcpserver

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wixtools/wixconv/converter"
	"github.com/wixtools/wixconv/xmldoc"
)

type inspectInput struct {
	Source sourceInput `json:"source" jsonschema:"The WiX document to inspect"`
}

type deprecatedNamespace struct {
	Namespace   string `json:"namespace"`
	ReplacedBy  string `json:"replaced_by"`
	DeclaredAt  int    `json:"declared_at,omitempty"`
	DeclaredFor string `json:"declared_for,omitempty"`
}

type declarationInfo struct {
	Version    string `json:"version,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Standalone string `json:"standalone,omitempty"`
}

type inspectOutput struct {
	RootElement          string                `json:"root_element"`
	RootNamespace        string                `json:"root_namespace,omitempty"`
	Declaration          *declarationInfo      `json:"declaration,omitempty"`
	ElementCount         int                   `json:"element_count"`
	Namespaces           []string              `json:"namespaces,omitempty"`
	DeprecatedNamespaces []deprecatedNamespace `json:"deprecated_namespaces,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	doc, err := input.Source.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	root := doc.Root()
	output := inspectOutput{
		RootElement:   root.Name.Local,
		RootNamespace: root.Name.Space,
	}
	if doc.Declaration != nil {
		output.Declaration = &declarationInfo{
			Version:    doc.Declaration.Version,
			Encoding:   doc.Declaration.Encoding,
			Standalone: doc.Declaration.Standalone,
		}
	}

	seen := map[string]bool{}
	xmldoc.Walk(doc, func(n xmldoc.Node, _ int) bool {
		e, ok := n.(*xmldoc.Element)
		if !ok {
			return true
		}
		output.ElementCount++
		for _, a := range e.Attrs {
			if !a.IsNamespaceDecl() || seen[a.Value] {
				continue
			}
			seen[a.Value] = true
			output.Namespaces = append(output.Namespaces, a.Value)
			if to, deprecated := converter.CurrentNamespace(a.Value); deprecated {
				output.DeprecatedNamespaces = append(output.DeprecatedNamespaces, deprecatedNamespace{
					Namespace:   a.Value,
					ReplacedBy:  to,
					DeclaredAt:  e.Line(),
					DeclaredFor: e.Name.Local,
				})
			}
		}
		return true
	})
	sort.Strings(output.Namespaces)

	return nil, output, nil
}
