package manifest

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/packforge/packforge/pkg/errors"
)

// MetadataKey is the table under [package.metadata] that marks a crate as a
// pack and carries its export configuration.
const MetadataKey = "pack"

// Manifest is a parsed Cargo.toml descriptor.
// It is constructed once per operation and never mutated afterwards.
type Manifest struct {
	root Value
}

// Parse decodes a Cargo.toml descriptor from raw TOML.
func Parse(data []byte) (*Manifest, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidManifest, err, "parse Cargo.toml")
	}
	return &Manifest{root: wrap(tree)}, nil
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Parse(data)
}

// Root returns the untyped view of the whole descriptor tree.
func (m *Manifest) Root() Value { return m.root }

// PackageName returns the crate's name, or "" if not declared.
func (m *Manifest) PackageName() string {
	name, _ := m.root.Get("package", "name").Str()
	return name
}

// Description returns the crate's description, or "" if not declared.
func (m *Manifest) Description() string {
	desc, _ := m.root.Get("package", "description").Str()
	return desc
}

// Dependencies returns the sorted, duplicate-free names from the
// [dependencies] table. A missing table yields an empty set.
func (m *Manifest) Dependencies() []string {
	deps := m.root.Get("dependencies").Keys()
	sort.Strings(deps)
	return deps
}

// Template describes one scaffold template declared by a pack under
// [package.metadata.pack.templates].
type Template struct {
	Path        string // path inside the pack's crate, relative to its root
	Description string // optional one-line description
}

// Meta is the typed projection of [package.metadata.pack]: the subset of
// the descriptor the facade generator and the scaffold tooling understand.
// It is derived fresh on each call and has no lifecycle of its own.
type Meta struct {
	present bool

	// Root is the top-level export spec: an array of crate names, or a
	// table of crate name -> "*" | [items...]. Zero when unconfigured.
	Root Value

	// Modules maps module name -> export spec, each becoming a named
	// sub-scope in the facade. Zero when unconfigured.
	Modules Value

	// Exclude lists crate names suppressed from every export.
	Exclude []string

	// Templates holds the pack's scaffold templates by name.
	Templates map[string]Template
}

// IsPack reports whether the descriptor carries pack metadata at all.
func (m Meta) IsPack() bool { return m.present }

// Pack projects the descriptor's [package.metadata.pack] table.
func (m *Manifest) Pack() Meta {
	section := m.root.Get("package", "metadata", MetadataKey)
	if section.IsZero() {
		return Meta{}
	}

	meta := Meta{
		present: true,
		Root:    section.Get("root"),
		Modules: section.Get("modules"),
		Exclude: section.Get("exclude").StringSlice(),
	}

	templates := section.Get("templates")
	for _, name := range templates.Keys() {
		t := templates.Get(name)
		path, ok := t.Get("path").Str()
		if !ok {
			continue
		}
		desc, _ := t.Get("description").Str()
		if meta.Templates == nil {
			meta.Templates = make(map[string]Template)
		}
		meta.Templates[name] = Template{Path: path, Description: desc}
	}

	return meta
}
