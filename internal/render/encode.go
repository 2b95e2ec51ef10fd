// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// Document is the serialized form of one search: the normalized query, the
// status line, and the records in upstream order.
type Document struct {
	Query   string         `json:"query" yaml:"query"`
	Status  string         `json:"status" yaml:"status"`
	Results []types.Result `json:"results" yaml:"results"`
}

// NewDocument builds a Document for query and results.
func NewDocument(query string, results []types.Result) Document {
	if results == nil {
		results = []types.Result{}
	}
	return Document{Query: query, Status: StatusLine(len(results)), Results: results}
}

// WriteJSON writes d as indented JSON.
func WriteJSON(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteYAML writes d as YAML.
func WriteYAML(w io.Writer, d Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
