package facade

import (
	"fmt"
	"strings"

	"github.com/packforge/packforge/pkg/manifest"
)

// Banner is the fixed first line of every generated facade.
const Banner = "// Auto-generated by packforge. Do not edit."

// FrameworkCrate is the pack framework's own crate name. It is excluded
// from every facade regardless of configuration, so a pack can never
// re-export the machinery that built it.
const FrameworkCrate = "packforge"

// Wildcard is the marker that requests a glob re-export of a crate's
// entire public surface.
const Wildcard = "*"

// Generate produces the facade source for the given descriptor.
//
// The layout follows [package.metadata.pack]: the root export spec emits
// into the top-level scope, each modules entry into its own pub-mod
// sub-scope, and when neither is configured every non-excluded dependency
// is re-exported at the top level. Configuring either root or modules
// suppresses that zero-configuration default entirely.
//
// Generate never returns an error; see the package documentation for the
// degradation rules.
func Generate(m *manifest.Manifest, r Resolver) string {
	g := &generator{resolver: r}
	g.buf.WriteString(Banner)
	g.buf.WriteString("\n\n")

	meta := m.Pack()
	exclude := excludeSet(meta.Exclude)
	hasRoot := !meta.Root.IsZero()
	hasModules := !meta.Modules.IsZero()

	if hasRoot {
		g.writeSpec(meta.Root, exclude, "")
	}
	if hasModules {
		g.writeModules(meta.Modules, exclude)
	}
	if !hasRoot && !hasModules {
		for _, dep := range m.Dependencies() {
			if !exclude[dep] {
				g.writeCrateExport(dep, "")
			}
		}
	}

	return g.buf.String()
}

type generator struct {
	resolver Resolver
	buf      strings.Builder
}

// excludeSet builds the suppression set: the configured names plus the
// framework crate itself.
func excludeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names)+1)
	for _, name := range names {
		set[name] = true
	}
	set[FrameworkCrate] = true
	return set
}

// writeSpec emits one export spec. List form keeps the author's order;
// map form iterates keys lexicographically. Entries of any other shape
// are skipped silently.
func (g *generator) writeSpec(spec manifest.Value, exclude map[string]bool, indent string) {
	if entries, ok := spec.Slice(); ok {
		for _, e := range entries {
			name, ok := e.Str()
			if !ok || exclude[name] {
				continue
			}
			g.writeCrateExport(name, indent)
		}
		return
	}

	for _, name := range spec.Keys() {
		if exclude[name] {
			continue
		}
		g.writeMapEntry(name, spec.Get(name), indent)
	}
}

// writeMapEntry emits one map-form entry: the wildcard marker, or an
// explicit item list in the order the author wrote it.
func (g *generator) writeMapEntry(name string, entry manifest.Value, indent string) {
	ident := CrateIdent(name)

	if s, ok := entry.Str(); ok && s == Wildcard {
		fmt.Fprintf(&g.buf, "%spub use %s::*;\n", indent, ident)
		return
	}
	if entry.IsArray() {
		items := entry.StringSlice()
		if len(items) > 0 {
			fmt.Fprintf(&g.buf, "%spub use %s::{%s};\n", indent, ident, strings.Join(items, ", "))
		}
		return
	}
	// Malformed entry: emit nothing rather than failing the build.
}

// writeModules emits one pub-mod sub-scope per configured module, in
// lexicographic module-name order.
func (g *generator) writeModules(modules manifest.Value, exclude map[string]bool) {
	for _, name := range modules.Keys() {
		fmt.Fprintf(&g.buf, "\npub mod %s {\n", ModuleIdent(name))
		g.writeSpec(modules.Get(name), exclude, "    ")
		g.buf.WriteString("}\n")
	}
}

// writeCrateExport emits the export for a single dependency. Ordinary
// crates get a plain re-export; a dependency that is itself a pack is
// flattened exactly one level: its own non-excluded dependencies are
// re-exported qualified through the pack's identifier. Deeper packs stay
// qualified rather than being transitively collapsed.
func (g *generator) writeCrateExport(name string, indent string) {
	inner, ok := g.resolver.Resolve(name)
	if !ok {
		fmt.Fprintf(&g.buf, "%spub use %s;\n", indent, CrateIdent(name))
		return
	}

	packIdent := CrateIdent(name)
	innerExclude := excludeSet(inner.Pack().Exclude)

	for _, dep := range inner.Dependencies() {
		if innerExclude[dep] {
			continue
		}
		fmt.Fprintf(&g.buf, "%spub use %s::%s;\n", indent, packIdent, CrateIdent(dep))
	}
}
