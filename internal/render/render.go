package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NoResults is printed for a table without rows.
const NoResults = "No results"

// Output formats accepted by Encode.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// Render converts a result to the text shown on a terminal.
//
// Tables are laid out with ToTable and Format. Objects become a single line of
// JSON with a space after every comma and colon; values JSON cannot represent
// natively use their default string form, so times print as
// time.Time.String() rather than TimeLayout. Scalars print as themselves and
// nil, including a nil pointer, prints as None.
func Render(res Result) string {
	switch res.Kind {
	case KindTable:
		if len(res.Rows) == 0 {
			return NoResults
		}
		return Format(ToTable(res.Rows, res.Columns...))

	case KindObject:
		data, err := marshalJSON(res.Object, "")
		if err != nil {
			return fmt.Sprint(plain(res.Object))
		}
		return string(spaced(data))

	default:
		v := deref(res.Value)
		if v == nil {
			return "None"
		}
		return fmt.Sprint(v)
	}
}

// spaced adds a space after each separator of compact JSON, leaving string
// contents alone.
func spaced(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/4)
	inString, escaped := false, false

	for _, b := range data {
		out = append(out, b)
		switch {
		case escaped:
			escaped = false
		case inString && b == '\\':
			escaped = true
		case b == '"':
			inString = !inString
		case !inString && (b == ',' || b == ':'):
			out = append(out, ' ')
		}
	}

	return out
}

// deref follows pointers to the value they point at. A nil pointer gives nil.
func deref(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	return rv.Interface()
}

// Encode writes res to w in the given format followed by a newline.
func Encode(w io.Writer, res Result, format string) error {
	var out string

	switch strings.ToLower(format) {
	case "", FormatTable:
		out = Render(res)

	case FormatJSON:
		data, err := marshalJSON(structured(res), "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		out = string(data)

	case FormatYAML:
		node, err := toNode(structured(res))
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		data, err := yaml.Marshal(node)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		out = strings.TrimSuffix(string(data), "\n")

	default:
		return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}

	_, err := fmt.Fprintln(w, out)
	return err
}

// structured returns the value behind a result for the json and yaml
// encoders. Table rows are narrowed to the result's columns.
func structured(res Result) any {
	switch res.Kind {
	case KindTable:
		rows := make([]*Row, 0, len(res.Rows))
		for _, r := range res.Rows {
			if len(res.Columns) == 0 {
				rows = append(rows, r)
				continue
			}
			narrowed := &Row{}
			for _, c := range res.Columns {
				v, _ := r.Get(c)
				narrowed.Set(c, v)
			}
			rows = append(rows, narrowed)
		}
		return rows
	case KindObject:
		return res.Object
	default:
		return res.Value
	}
}

// MarshalJSON writes the row as a JSON object with keys in insertion order.
func (r *Row) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(k, "")
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalJSON(plain(r.values[k]), "")
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func marshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(plain(v)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// plain reduces v to values JSON encodes natively. Anything else falls back
// to its default string form.
func plain(v any) any {
	if v == nil {
		return nil
	}

	switch t := v.(type) {
	case *Row:
		return t
	case []*Row:
		return t
	case time.Time:
		return t.String()
	case json.Marshaler:
		return t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return plain(rv.Elem().Interface())

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plain(rv.Index(i).Interface())
		}
		return out

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Sprint(v)
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = plain(iter.Value().Interface())
		}
		return out

	default:
		return fmt.Sprint(v)
	}
}

// toNode builds a yaml node, keeping row keys in insertion order.
func toNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Row:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if t == nil {
			return node, nil
		}
		for _, k := range t.keys {
			val, _ := t.Get(k)
			child, err := toNode(yamlValue(val))
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		return node, nil

	case []*Row:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, r := range t {
			child, err := toNode(r)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	default:
		node := &yaml.Node{}
		if err := node.Encode(yamlValue(v)); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// yamlValue follows pointers so yaml sees the underlying value; times stay
// native since yaml has a timestamp type.
func yamlValue(v any) any {
	if v == nil {
		return nil
	}
	if _, ok := v.(*Row); ok {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return yamlValue(rv.Elem().Interface())
	}
	return v
}
