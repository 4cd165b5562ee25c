package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	fluentdb "github.com/biyonik/go-fluent-db"
)

// OutputFormat represents the desired output format.
type OutputFormat string

const (
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"
)

func parseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatYAML, FormatJSON:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unsupported format %q, must be one of: yaml, json", s)
}

// writeRows prints rows keeping the column order of the result set in YAML.
func writeRows(w io.Writer, format OutputFormat, rows []fluentdb.Row) error {
	if format == FormatJSON {
		out := make([]any, len(rows))
		for i, r := range rows {
			out[i] = rowValue(r)
		}
		return writeJSON(w, out)
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range rows {
		n, err := rowNode(r)
		if err != nil {
			return err
		}
		seq.Content = append(seq.Content, n)
	}
	return writeYAML(w, seq)
}

// writeValue prints any single value.
func writeValue(w io.Writer, format OutputFormat, v any) error {
	if format == FormatJSON {
		return writeJSON(w, v)
	}
	return writeYAML(w, v)
}

func rowValue(r fluentdb.Row) any {
	if m := r.Map(); m != nil {
		return m
	}
	return r.Values()
}

func rowNode(r fluentdb.Row) (*yaml.Node, error) {
	cols := r.Columns()
	if cols == nil {
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range r.Values() {
			vn, err := valueNode(v)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, vn)
		}
		return n, nil
	}

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range cols {
		v, _ := r.Get(c)
		vn, err := valueNode(v)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c}, vn)
	}
	return n, nil
}

func valueNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRow(w io.Writer, format OutputFormat, r fluentdb.Row) error {
	if format == FormatJSON {
		return writeJSON(w, rowValue(r))
	}
	n, err := rowNode(r)
	if err != nil {
		return err
	}
	return writeYAML(w, n)
}
