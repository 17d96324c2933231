package facade

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathResolver(t *testing.T) {
	dir := t.TempDir()

	packPath := filepath.Join(dir, "error-pack.toml")
	if err := os.WriteFile(packPath, []byte(errorPackTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	plainPath := filepath.Join(dir, "serde.toml")
	if err := os.WriteFile(plainPath, []byte("[package]\nname = \"serde\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	brokenPath := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(brokenPath, []byte("[package\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewPathResolver(map[string]string{
		"error-pack": packPath,
		"serde":      plainPath,
		"broken":     brokenPath,
		"missing":    filepath.Join(dir, "does-not-exist.toml"),
	})

	m, ok := r.Resolve("error-pack")
	if !ok {
		t.Fatal("error-pack should resolve as a pack")
	}
	if m.PackageName() != "error-pack" {
		t.Errorf("PackageName = %q", m.PackageName())
	}

	// Everything degenerate resolves as "not a pack", never an error.
	for _, name := range []string{"serde", "broken", "missing", "unmapped"} {
		if _, ok := r.Resolve(name); ok {
			t.Errorf("Resolve(%q) should report not-a-pack", name)
		}
	}
}

func TestPathResolverRereadsEachCall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(errorPackTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewPathResolver(map[string]string{"error-pack": path})
	if _, ok := r.Resolve("error-pack"); !ok {
		t.Fatal("first resolve should succeed")
	}

	// No caching: removing the file turns the crate into a non-pack.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Resolve("error-pack"); ok {
		t.Error("resolve after removal should report not-a-pack")
	}
}

func TestMapResolver(t *testing.T) {
	r := NewMapResolver()
	if err := r.Add("error-pack", errorPackTOML); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add("plain", "[package]\nname = \"plain\"\n"); err != nil {
		t.Fatalf("Add plain: %v", err)
	}

	if _, ok := r.Resolve("error-pack"); !ok {
		t.Error("registered pack should resolve")
	}
	if _, ok := r.Resolve("plain"); ok {
		t.Error("manifest without pack metadata should not resolve")
	}
	if _, ok := r.Resolve("unknown"); ok {
		t.Error("unknown crate should not resolve")
	}

	if err := r.Add("bad", "[package\n"); err == nil {
		t.Error("Add should reject invalid TOML")
	}
}
