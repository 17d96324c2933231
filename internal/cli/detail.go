package cli

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/packforge/packforge/pkg/facade"
	"github.com/packforge/packforge/pkg/manifest"
	"github.com/packforge/packforge/pkg/registry/crates"
)

// packDetail aggregates everything the detail views show about a
// published pack: registry metadata, owners, and the manifest read from
// the downloaded crate.
type packDetail struct {
	Name        string
	Version     string
	Description string
	Owners      []crates.Owner
	Crates      []string // plain crate dependencies
	Extends     []string // pack dependencies, short names
	Templates   map[string]manifest.Template
}

// fetchPackDetail looks a pack up on crates.io and downloads its crate
// to read the full manifest. Owner lookup failures are non-fatal; the
// detail view just omits the authors section.
func fetchPackDetail(ctx context.Context, client *crates.Client, name string, refresh bool) (*packDetail, error) {
	crateName := crates.FullName(name)

	info, err := client.Lookup(ctx, crateName, refresh)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := client.Download(ctx, crateName, info.Version)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	m, err := manifest.Load(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return nil, err
	}

	owners, _ := client.Owners(ctx, crateName, refresh)

	detail := &packDetail{
		Name:        crateName,
		Version:     info.Version,
		Description: m.Description(),
		Owners:      owners,
		Templates:   m.Pack().Templates,
	}
	if detail.Description == "" {
		detail.Description = info.Description
	}
	detail.Crates, detail.Extends = splitDeps(m.Dependencies())

	return detail, nil
}

// splitDeps partitions a pack's dependencies into plain crates and
// other packs (reported by short name). The framework crate itself is
// omitted from both lists.
func splitDeps(deps []string) (plain, extends []string) {
	for _, dep := range deps {
		switch {
		case crates.IsPackName(dep):
			extends = append(extends, crates.ShortName(dep))
		case dep != facade.FrameworkCrate:
			plain = append(plain, dep)
		}
	}
	return plain, extends
}

// templateNames returns template names sorted for stable display.
func templateNames(templates map[string]manifest.Template) []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
