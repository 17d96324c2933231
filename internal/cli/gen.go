package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/packforge/packforge/pkg/cargo"
	"github.com/packforge/packforge/pkg/facade"
	"github.com/packforge/packforge/pkg/manifest"
	"github.com/packforge/packforge/pkg/observability"
)

// genCommand creates the gen command, the build-step entry point. It
// reads the pack's Cargo.toml, discovers which dependencies are packs
// via cargo metadata, and emits the facade source. Only those two
// inputs are fatal; malformed pack configuration degrades inside the
// generator so a pack build never breaks on bad metadata.
func (c *CLI) genCommand() *cobra.Command {
	var (
		manifestPath string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the facade source for a pack",
		Long: `Generate the facade source for the pack in the current directory.

Reads Cargo.toml and the [package.metadata.pack] configuration, resolves
which dependencies are themselves packs, and writes the re-export facade.
Intended to be called from the pack's build script:

  packforge gen --out "$OUT_DIR/facade.rs"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}

			packages, err := cargo.Metadata(ctx, filepath.Dir(manifestPath))
			if err != nil {
				return fmt.Errorf("resolve dependency graph: %w", err)
			}

			packs := cargo.DiscoverPacks(m, packages)
			logger.Debugf("Discovered %d pack dependencies", len(packs))

			observability.Generation().OnGenerateStart(ctx, m.PackageName(), len(m.Dependencies()))
			start := time.Now()
			source := facade.Generate(m, facade.NewPathResolver(packs))
			observability.Generation().OnGenerateComplete(ctx, m.PackageName(), len(source), time.Since(start), nil)

			if outPath == "" {
				fmt.Print(source)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
				return fmt.Errorf("write facade: %w", err)
			}

			prog.done(fmt.Sprintf("Generated %s", outPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest-path", "Cargo.toml", "path to the pack's Cargo.toml")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")

	return cmd
}
