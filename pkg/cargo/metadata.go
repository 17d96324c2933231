// Package cargo wraps the cargo toolchain invocations packforge depends on:
// the metadata query that discovers which dependencies are packs, cargo-add
// for installing a pack, and cargo-generate for project scaffolding.
//
// Cargo owns everything packforge deliberately does not do itself:
// dependency version resolution, lockfile management, and compilation of
// generated facades.
package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"

	pkgerrors "github.com/packforge/packforge/pkg/errors"
	"github.com/packforge/packforge/pkg/manifest"
)

// Package is one entry of the resolved dependency graph reported by
// cargo metadata.
type Package struct {
	Name         string          `json:"name"`
	ManifestPath string          `json:"manifest_path"`
	Metadata     map[string]any  `json:"metadata"`
	Dependencies json.RawMessage `json:"dependencies"` // unused, kept raw
}

type metadataOutput struct {
	Packages []Package `json:"packages"`
}

// Metadata runs `cargo metadata` in dir and returns the resolved package
// list. A failure here is fatal to the calling build step: without the
// dependency graph there is no way to know which dependencies are packs.
func Metadata(ctx context.Context, dir string) ([]Package, error) {
	cmd := exec.CommandContext(ctx, "cargo", "metadata", "--format-version=1")
	cmd.Dir = dir

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeCargoFailed, err,
			"cargo metadata: %s", firstLine(errBuf.String()))
	}

	var meta metadataOutput
	if err := json.Unmarshal(out.Bytes(), &meta); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeCargoFailed, err, "decode cargo metadata output")
	}
	return meta.Packages, nil
}

// DiscoverPacks maps each of the manifest's direct dependencies that
// carries the pack metadata marker to its manifest path. The result feeds
// the facade generator's filesystem resolver.
func DiscoverPacks(m *manifest.Manifest, packages []Package) map[string]string {
	direct := make(map[string]bool)
	for _, dep := range m.Dependencies() {
		direct[dep] = true
	}

	packs := make(map[string]string)
	for _, pkg := range packages {
		if !direct[pkg.Name] {
			continue
		}
		if _, ok := pkg.Metadata[manifest.MetadataKey]; ok {
			packs[pkg.Name] = pkg.ManifestPath
		}
	}
	return packs
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
