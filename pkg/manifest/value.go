package manifest

import "sort"

// Value is an untyped view over one node of a parsed TOML tree.
// The zero Value represents an absent node; every accessor on it returns
// its negative result, so lookups can be chained without nil checks:
//
//	name, ok := m.Root().Get("package", "metadata", "pack", "root").Str()
type Value struct {
	raw any
}

// wrap adapts a raw decoded TOML node into a Value.
func wrap(raw any) Value { return Value{raw: raw} }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.raw == nil }

// Get descends through nested tables following path.
// Any missing or non-table step yields the zero Value.
func (v Value) Get(path ...string) Value {
	cur := v
	for _, key := range path {
		table, ok := cur.raw.(map[string]any)
		if !ok {
			return Value{}
		}
		next, ok := table[key]
		if !ok {
			return Value{}
		}
		cur = Value{raw: next}
	}
	return cur
}

// Str returns the value as a string, if it is one.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Slice returns the value's elements, if it is an array.
func (v Value) Slice() ([]Value, bool) {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Value{raw: e}
	}
	return out, true
}

// StringSlice returns the array's string elements in order, silently
// dropping anything that isn't a string. Returns nil if the value is not
// an array.
func (v Value) StringSlice() []string {
	arr, ok := v.Slice()
	if !ok {
		return nil
	}
	var out []string
	for _, e := range arr {
		if s, ok := e.Str(); ok {
			out = append(out, s)
		}
	}
	return out
}

// IsTable reports whether the value is a table.
func (v Value) IsTable() bool {
	_, ok := v.raw.(map[string]any)
	return ok
}

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool {
	_, ok := v.raw.([]any)
	return ok
}

// Keys returns the table's keys in lexicographic order, or nil if the
// value is not a table. Sorted iteration keeps generated output
// byte-identical across runs regardless of map ordering.
func (v Value) Keys() []string {
	table, ok := v.raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
