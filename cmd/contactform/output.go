package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/internal/config"
)

// writeOutput encodes value as JSON or YAML, or calls text for plain output.
func writeOutput(w io.Writer, format string, value any, text func(io.Writer) error) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputText, "":
		return text(w)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
