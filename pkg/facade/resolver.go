package facade

import "github.com/packforge/packforge/pkg/manifest"

// Resolver answers whether a dependency is itself a pack, and if so
// supplies its descriptor. A false return is the common case (ordinary
// crates), not an error.
//
// The generator is written against this interface only, so it can run
// against the real filesystem in builds and against fixed descriptors in
// tests.
type Resolver interface {
	Resolve(crateName string) (*manifest.Manifest, bool)
}

// PathResolver resolves pack descriptors from a precomputed mapping of
// crate name to manifest file location, as produced by cargo-metadata
// discovery. Every lookup re-reads and re-parses the file; there is no
// caching. A read or parse failure, or a descriptor without pack
// metadata, resolves as "not a pack" - generation must not fail because a
// dependency's own manifest is unreadable.
type PathResolver struct {
	paths map[string]string
}

// NewPathResolver creates a resolver over the given crate-to-path mapping.
func NewPathResolver(paths map[string]string) *PathResolver {
	return &PathResolver{paths: paths}
}

// Resolve implements Resolver.
func (r *PathResolver) Resolve(crateName string) (*manifest.Manifest, bool) {
	path, ok := r.paths[crateName]
	if !ok {
		return nil, false
	}
	m, err := manifest.Load(path)
	if err != nil || !m.Pack().IsPack() {
		return nil, false
	}
	return m, true
}

// MapResolver resolves pack descriptors from a fixed in-memory set,
// keeping generation deterministic and filesystem-free in tests.
type MapResolver struct {
	manifests map[string]*manifest.Manifest
}

// NewMapResolver creates an empty in-memory resolver.
func NewMapResolver() *MapResolver {
	return &MapResolver{manifests: make(map[string]*manifest.Manifest)}
}

// Add parses tomlSource and registers it under crateName.
func (r *MapResolver) Add(crateName, tomlSource string) error {
	m, err := manifest.Parse([]byte(tomlSource))
	if err != nil {
		return err
	}
	r.manifests[crateName] = m
	return nil
}

// Resolve implements Resolver.
func (r *MapResolver) Resolve(crateName string) (*manifest.Manifest, bool) {
	m, ok := r.manifests[crateName]
	if !ok || !m.Pack().IsPack() {
		return nil, false
	}
	return m, true
}

var (
	_ Resolver = (*PathResolver)(nil)
	_ Resolver = (*MapResolver)(nil)
)
