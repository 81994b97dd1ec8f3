// internal/template/template.go

// Package template loads and saves CloudFormation template documents.
// A document is the generic decoded form, map[string]interface{}, so
// the normalization passes can rewrite it in place without a schema.
package template

import (
	"path/filepath"
	"strings"
)

// Format is the surface encoding of a template document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormatFromName picks the format from a file name or URI.
// Anything that is not .json is treated as YAML, which matches how
// CloudFormation itself resolves ambiguous templates.
func DetectFormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// DetectFormat sniffs the document bytes: a document whose first
// non-space byte is '{' is JSON, everything else is YAML.
func DetectFormat(data []byte) Format {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return FormatJSON
		default:
			return FormatYAML
		}
	}
	return FormatYAML
}

// Resources returns the Resources mapping of doc, or nil when absent
// or not a mapping.
func Resources(doc map[string]interface{}) map[string]interface{} {
	res, _ := doc["Resources"].(map[string]interface{})
	return res
}

// Parameters returns the Parameters mapping of doc, or nil when absent
// or not a mapping.
func Parameters(doc map[string]interface{}) map[string]interface{} {
	params, _ := doc["Parameters"].(map[string]interface{})
	return params
}
