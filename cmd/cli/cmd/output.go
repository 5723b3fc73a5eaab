package cmd

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mat-analysis/pkg/writer"
)

// Output formats for structured results.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func writeStructured(out io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return writer.NewPrettyJSONWriter[interface{}]().Write(v, out)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (valid: text, json, yaml)", format)
	}
}
