// Package schemas embeds the JSON Schema documents that define structured LLM outputs.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// AlignmentAnalysis is the schema file name for alignment analysis responses.
const AlignmentAnalysis = "alignment_analysis.schema.json"

// Load returns the raw bytes of an embedded schema document.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return data, nil
}

// MustLoad returns an embedded schema document, panicking if it does not exist.
func MustLoad(name string) []byte {
	data, err := Load(name)
	if err != nil {
		panic(err)
	}
	return data
}
