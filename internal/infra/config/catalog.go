package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the prompt wording that is data rather than logic.
//
//	instruction: |
//	  Generate 3 practical and varied journal prompts. ...
//	fallback:
//	  - What emotion dominated your day today, and what might have triggered it?
//	  - Describe a moment recently when you felt truly proud of yourself.
//	  - List three small things that brought you joy this week.
type Catalog struct {
	Instruction string   `yaml:"instruction"`
	Fallback    []string `yaml:"fallback"`
}

// LoadCatalog reads a YAML catalog. An empty path yields an empty Catalog,
// meaning the built-in wording is used. Unknown keys are rejected.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return Catalog{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("config: read catalog %q: %w", path, err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes catalog YAML.
func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("config: parse catalog: %w", err)
	}
	return c, nil
}
