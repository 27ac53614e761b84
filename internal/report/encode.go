package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"sortbench/internal/benchmark"
)

// Document is the serialized form of a run: the raw report plus its summary.
type Document struct {
	Report  *benchmark.Report `json:"report" yaml:"report"`
	Summary benchmark.Summary `json:"summary" yaml:"summary"`
}

// NewDocument aggregates r for export.
func NewDocument(r *benchmark.Report) Document {
	return Document{Report: r, Summary: benchmark.Summarize(r)}
}

// Encode writes doc in the named machine readable format.
func Encode(w io.Writer, doc Document, format string) error {
	switch format {
	case "json":
		return EncodeJSON(w, doc)
	case "yaml", "yml":
		return EncodeYAML(w, doc)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// EncodeJSON writes the document as indented JSON.
func EncodeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

// EncodeYAML writes the document as YAML.
func EncodeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}
