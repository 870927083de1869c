package mcpserver

import (
	"fmt"

	"github.com/wixtools/wixconv/xmldoc"
)

// sourceInput represents the two ways a WiX document can be provided to a
// tool. Exactly one of File or Content must be set.
type sourceInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a WiX source file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline WiX document content"`
}

// resolve parses the document from whichever input was provided. Documents
// are never cached: conversion mutates the parsed tree in place, so every
// call needs a fresh parse.
func (s sourceInput) resolve() (*xmldoc.Document, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided (got both)")
	case s.File != "":
		return xmldoc.ParseFile(s.File)
	case s.Content != "":
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set WIXCONV_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		return xmldoc.ParseString(s.Content)
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided (got neither)")
	}
}
