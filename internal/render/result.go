// Package render turns command results into text: aligned tables for lists of
// rows, JSON for single objects and plain text for scalars.
package render

// Row is a mapping from column name to value that remembers the order in
// which keys were first set.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow creates a row from alternating key/value pairs.
// Non-string keys are ignored.
func NewRow(kv ...any) *Row {
	r := &Row{values: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			r.Set(k, kv[i+1])
		}
	}
	return r
}

// Set stores a value. Overwriting an existing key keeps its position.
func (r *Row) Set(key string, value any) *Row {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value for key and whether the key is defined.
func (r *Row) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Kind identifies which variant a Result holds.
type Kind int

const (
	KindScalar Kind = iota
	KindTable
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindObject:
		return "object"
	default:
		return "scalar"
	}
}

// Result is what every command returns: a list of rows, a single object or a
// scalar value. The zero Result is the scalar None.
type Result struct {
	Kind Kind

	// Rows and Columns are set for KindTable. An empty Columns means the
	// columns are inferred from the rows.
	Rows    []*Row
	Columns []string

	// Object is set for KindObject.
	Object *Row

	// Value is set for KindScalar; nil renders as None.
	Value any
}

// NewTable returns a table result. Explicit columns fix the order and
// membership of the rendered columns.
func NewTable(rows []*Row, columns ...string) Result {
	return Result{Kind: KindTable, Rows: rows, Columns: columns}
}

// NewObject returns a single-mapping result.
func NewObject(obj *Row) Result {
	return Result{Kind: KindObject, Object: obj}
}

// NewScalar returns a scalar result.
func NewScalar(v any) Result {
	return Result{Kind: KindScalar, Value: v}
}

// None is the empty scalar result.
func None() Result {
	return Result{}
}
