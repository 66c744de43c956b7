// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Command gen-schema generates the JSON Schema files for the YAML authoring
// formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitchpolt/pitchpolt/internal/source"
)

func main() {
	if err := os.MkdirAll("schemas", 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, kind := range source.Kinds {
		schema, err := source.GenerateSchema(kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s schema: %v\n", kind, err)
			os.Exit(1)
		}

		outPath := filepath.Join("schemas", string(kind)+".schema.json")
		if err := os.WriteFile(outPath, schema, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outPath)
	}
}
