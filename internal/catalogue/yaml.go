// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadFile reads a YAML catalogue definition from path and builds it.
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalogue from YAML bytes. JSON is accepted as a subset.
func Parse(data []byte) (*Catalogue, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %v", ErrInvalidPattern, err)
	}
	return Build(def)
}

// WriteYAML dumps the catalogue definition as YAML.
func (c *Catalogue) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Definition()); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON dumps the catalogue definition as indented JSON.
func (c *Catalogue) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.Definition()); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// ByName returns the built-in catalogue for name ("personalization" or
// "tracking").
func ByName(name string) (*Catalogue, error) {
	switch name {
	case "personalization":
		return Personalization(), nil
	case "tracking":
		return Tracking(), nil
	default:
		return nil, fmt.Errorf("unknown catalogue %q (want personalization or tracking)", name)
	}
}
