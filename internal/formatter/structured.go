package formatter

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// writeJSON writes an array of objects whose keys follow the column order.
func writeJSON(w io.Writer, v View) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range v.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, c := range v.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(c.ID)
			if err != nil {
				return err
			}
			val, err := json.Marshal(r.Field(c.ID))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

// writeYAML writes a sequence of mappings in column order.
func writeYAML(w io.Writer, v View) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range v.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range v.Columns {
			var val yaml.Node
			if err := val.Encode(r.Field(c.ID)); err != nil {
				return err
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: c.ID},
				&val,
			)
		}
		seq.Content = append(seq.Content, m)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}

// writeTOML writes the rows as an array of tables named rows.
func writeTOML(w io.Writer, v View) error {
	doc := struct {
		Rows []map[string]any `toml:"rows"`
	}{Rows: make([]map[string]any, 0, len(v.Rows))}
	for _, r := range v.Rows {
		m := make(map[string]any, len(v.Columns))
		for _, c := range v.Columns {
			m[c.ID] = r.Field(c.ID)
		}
		doc.Rows = append(doc.Rows, m)
	}
	return toml.NewEncoder(w).Encode(doc)
}
