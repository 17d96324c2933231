package manifest

import (
	"reflect"
	"testing"
)

func parseValue(t *testing.T, src string) Value {
	t.Helper()
	m, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m.Root()
}

func TestValueGet(t *testing.T) {
	v := parseValue(t, `
[package.metadata.pack]
root = ["clap"]
`)

	if v.Get("package", "metadata", "pack").IsZero() {
		t.Error("existing path should not be zero")
	}
	if !v.Get("package", "metadata", "missing").IsZero() {
		t.Error("missing path should be zero")
	}
	// Descending through a non-table is a clean miss
	if !v.Get("package", "metadata", "pack", "root", "deeper").IsZero() {
		t.Error("path through an array should be zero")
	}
	// Chaining from the zero Value stays zero
	if !(Value{}).Get("anything").IsZero() {
		t.Error("Get on zero Value should stay zero")
	}
}

func TestValueStr(t *testing.T) {
	v := parseValue(t, `name = "serde"`)

	s, ok := v.Get("name").Str()
	if !ok || s != "serde" {
		t.Errorf("Str = %q, %v", s, ok)
	}
	if _, ok := v.Get("missing").Str(); ok {
		t.Error("Str on missing value should report false")
	}
}

func TestValueSlice(t *testing.T) {
	v := parseValue(t, `items = ["a", "b", 3]`)

	arr, ok := v.Get("items").Slice()
	if !ok || len(arr) != 3 {
		t.Fatalf("Slice = %v, %v", arr, ok)
	}
	if _, ok := arr[0].Str(); !ok {
		t.Error("first element should be a string")
	}
	if _, ok := arr[2].Str(); ok {
		t.Error("third element is not a string")
	}
	if _, ok := v.Get("missing").Slice(); ok {
		t.Error("Slice on missing value should report false")
	}
}

func TestValueStringSlice(t *testing.T) {
	v := parseValue(t, `mixed = ["spawn", 42, "select"]`)

	// Non-string elements are dropped, not errors
	if got := v.Get("mixed").StringSlice(); !reflect.DeepEqual(got, []string{"spawn", "select"}) {
		t.Errorf("StringSlice = %v", got)
	}
	if got := v.Get("missing").StringSlice(); got != nil {
		t.Errorf("StringSlice on missing = %v, want nil", got)
	}
}

func TestValueKeysSorted(t *testing.T) {
	v := parseValue(t, `
[deps]
tokio = "1"
anyhow = "1"
serde = "1"
`)

	want := []string{"anyhow", "serde", "tokio"}
	if got := v.Get("deps").Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	if got := v.Get("missing").Keys(); got != nil {
		t.Errorf("Keys on missing = %v, want nil", got)
	}
}

func TestValueKindPredicates(t *testing.T) {
	v := parseValue(t, `
s = "str"
a = [1]
[t]
k = "v"
`)

	if !v.Get("t").IsTable() || v.Get("a").IsTable() || v.Get("s").IsTable() {
		t.Error("IsTable misclassified")
	}
	if !v.Get("a").IsArray() || v.Get("t").IsArray() {
		t.Error("IsArray misclassified")
	}
}
