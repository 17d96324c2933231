package facade

import (
	"testing"

	"github.com/packforge/packforge/pkg/manifest"
)

// check generates a facade from manifestTOML and compares it against the
// expected source, line by line for readable failures.
func check(t *testing.T, manifestTOML string, r Resolver, want string) {
	t.Helper()
	m, err := manifest.Parse([]byte(manifestTOML))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	got := Generate(m, r)
	if got != want {
		t.Errorf("generated facade mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestZeroConfigExportsAllDeps(t *testing.T) {
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
tokio = "1"
serde = "1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use serde;
pub use tokio;
`)
}

func TestSelfExclusion(t *testing.T) {
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
packforge = "0.1"
tokio = "1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use tokio;
`)
}

func TestExplicitRootListSuppressesDefault(t *testing.T) {
	// Only the listed crates are exported, in the author's order.
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]
root = ["tokio", "serde"]

[dependencies]
tokio = "1"
serde = "1"
anyhow = "1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use tokio;
pub use serde;
`)
}

func TestRootMapWildcard(t *testing.T) {
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack.root]
tokio = "*"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use tokio::*;
`)
}

func TestRootMapSelectiveItems(t *testing.T) {
	// Map keys sort lexicographically; item lists keep config order.
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack.root]
tokio = ["spawn", "select"]
serde = ["Serialize", "Deserialize"]
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use serde::{Serialize, Deserialize};
pub use tokio::{spawn, select};
`)
}

func TestRootMapMalformedEntrySkipped(t *testing.T) {
	// A table-shaped entry and an empty item list both emit nothing.
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack.root]
tokio = "*"
serde = []

[package.metadata.pack.root.broken]
nested = "wrong shape"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use tokio::*;
`)
}

func TestModules(t *testing.T) {
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack.modules]
http = ["reqwest", "tower"]
async = ["tokio"]

[dependencies]
reqwest = "0.11"
tower = "0.4"
tokio = "1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.


pub mod r#async {
    pub use tokio;
}

pub mod http {
    pub use reqwest;
    pub use tower;
}
`)
}

func TestModulesMapForm(t *testing.T) {
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack.modules.prelude]
tokio = "*"
serde = ["Serialize"]
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.


pub mod prelude {
    pub use serde::{Serialize};
    pub use tokio::*;
}
`)
}

func TestRootAndModulesCombined(t *testing.T) {
	// Explicit config on both: no implicit fallback for anyhow.
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]
root = ["clap"]

[package.metadata.pack.modules]
logging = ["tracing"]

[dependencies]
clap = "4"
tracing = "0.1"
anyhow = "1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use clap;

pub mod logging {
    pub use tracing;
}
`)
}

const errorPackTOML = `
[package]
name = "error-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
anyhow = "1"
thiserror = "2"
`

func TestPackFlattening(t *testing.T) {
	r := NewMapResolver()
	if err := r.Add("error-pack", errorPackTOML); err != nil {
		t.Fatal(err)
	}

	check(t, `
[package]
name = "cli-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
error-pack = "0.1"
clap = "4"
`, r, `// Auto-generated by packforge. Do not edit.

pub use clap;
pub use error_pack::anyhow;
pub use error_pack::thiserror;
`)
}

func TestSiblingPacksFlattened(t *testing.T) {
	r := NewMapResolver()
	if err := r.Add("error-pack", errorPackTOML); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("logging-pack", `
[package]
name = "logging-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
tracing = "0.1"
`); err != nil {
		t.Fatal(err)
	}

	check(t, `
[package]
name = "cli-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
error-pack = "0.1"
logging-pack = "0.1"
clap = "4"
`, r, `// Auto-generated by packforge. Do not edit.

pub use clap;
pub use error_pack::anyhow;
pub use error_pack::thiserror;
pub use logging_pack::tracing;
`)
}

func TestFlatteningIsOneLevelDeep(t *testing.T) {
	// mega-pack depends on error-pack (itself a pack). Flattening mega-pack
	// re-exports error-pack qualified through mega_pack without collapsing
	// error-pack's own contents.
	r := NewMapResolver()
	if err := r.Add("error-pack", errorPackTOML); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("mega-pack", `
[package]
name = "mega-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
error-pack = "0.1"
rayon = "1"
`); err != nil {
		t.Fatal(err)
	}

	check(t, `
[package]
name = "app-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
mega-pack = "0.1"
`, r, `// Auto-generated by packforge. Do not edit.

pub use mega_pack::error_pack;
pub use mega_pack::rayon;
`)
}

func TestInnerPackSelfExclusion(t *testing.T) {
	// The inner pack's exclude set applies during flattening, and the
	// framework crate is excluded there even without configuration.
	r := NewMapResolver()
	if err := r.Add("tool-pack", `
[package]
name = "tool-pack"
version = "0.1.0"

[package.metadata.pack]
exclude = ["private-helper"]

[dependencies]
packforge = "0.1"
private-helper = "0.1"
rayon = "1"
`); err != nil {
		t.Fatal(err)
	}

	check(t, `
[package]
name = "app-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
tool-pack = "0.1"
`, r, `// Auto-generated by packforge. Do not edit.

pub use tool_pack::rayon;
`)
}

func TestHyphenatedCrateNames(t *testing.T) {
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]

[dependencies]
tracing-subscriber = "0.3"
serde-json = "1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use serde_json;
pub use tracing_subscriber;
`)
}

func TestExcludePrecedence(t *testing.T) {
	// Explicit mention in root does not override exclusion.
	check(t, `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]
root = ["tokio", "internal-crate"]
exclude = ["internal-crate"]

[dependencies]
tokio = "1"
internal-crate = "0.1"
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

pub use tokio;
`)
}

func TestDeterminism(t *testing.T) {
	src := `
[package]
name = "my-pack"
version = "0.1.0"

[package.metadata.pack]
root = ["clap"]

[package.metadata.pack.modules]
http = ["reqwest"]
async = { tokio = "*" }

[dependencies]
clap = "4"
reqwest = "0.11"
tokio = "1"
`
	m, err := manifest.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}

	first := Generate(m, NewMapResolver())
	for i := 0; i < 10; i++ {
		m2, _ := manifest.Parse([]byte(src))
		if got := Generate(m2, NewMapResolver()); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestNoDependencies(t *testing.T) {
	check(t, `
[package]
name = "empty-pack"
version = "0.1.0"

[package.metadata.pack]
`, NewMapResolver(), `// Auto-generated by packforge. Do not edit.

`)
}
