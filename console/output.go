package console

import (
	"fmt"
	"io"

	"github.com/fwojciec/mvreport"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the -o flag.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormat reports whether f is a known output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// WriteJSON writes the full document as received, indented.
func WriteJSON(w io.Writer, doc mvreport.Document) error {
	_, err := fmt.Fprintln(w, doc.Full)
	return err
}

// WriteYAML writes the received document as block-style YAML in received key order.
func WriteYAML(w io.Writer, r *mvreport.Result) error {
	raw := []byte("{}")
	if r != nil && len(r.Raw()) > 0 {
		raw = r.Raw()
	}

	// JSON is valid YAML flow syntax, so the node tree keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("converting result to yaml: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// blockStyle clears flow and quoting styles. The encoder re-quotes any
// scalar whose plain form would change its type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
