package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packforge/packforge/pkg/cargo"
	pkgerrors "github.com/packforge/packforge/pkg/errors"
	"github.com/packforge/packforge/pkg/manifest"
	"github.com/packforge/packforge/pkg/registry/crates"
)

// newCommand creates the new command: scaffold a project from one of a
// pack's templates.
func (c *CLI) newCommand() *cobra.Command {
	var (
		name      string
		template  string
		localPath string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "new <pack>",
		Short: "Create a new project from a pack template",
		Long: `Create a new project from a template shipped with a pack.

The pack is downloaded from crates.io (or read from --path) and its
[package.metadata.pack.templates] table decides which templates are
available. With a single template, or one named "default", no
--template flag is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if localPath != "" {
				return c.scaffoldFromDir(cmd.Context(), localPath, filepath.Base(localPath), template, name)
			}

			if err := pkgerrors.ValidateCrateName(args[0]); err != nil {
				return err
			}
			crateName := crates.FullName(args[0])

			client, closeCache := c.cratesClient(noCache)
			defer closeCache()

			info, err := fetchWithSpinner(cmd.Context(), "Looking up "+crateName+"...", func(ctx context.Context) (*crates.CrateInfo, error) {
				return client.Lookup(ctx, crateName, false)
			})
			if err != nil {
				return fmt.Errorf("look up pack: %w", err)
			}

			s := newSpinner(cmd.Context(), "Downloading "+crateName+"...")
			s.Start()
			dir, cleanup, err := client.Download(cmd.Context(), crateName, info.Version)
			s.Stop()
			if err != nil {
				return fmt.Errorf("download pack: %w", err)
			}
			defer cleanup()

			return c.scaffoldFromDir(cmd.Context(), dir, crateName, template, name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name for the new project")
	cmd.Flags().StringVarP(&template, "template", "t", "", "template to use")
	cmd.Flags().StringVar(&localPath, "path", "", "use a local pack directory instead of downloading")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}

// scaffoldFromDir reads the pack manifest in dir, resolves a template,
// and runs cargo generate.
func (c *CLI) scaffoldFromDir(ctx context.Context, dir, packName, requested, projectName string) error {
	m, err := manifest.Load(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return fmt.Errorf("read pack manifest: %w", err)
	}

	templates := m.Pack().Templates
	if len(templates) == 0 {
		return fmt.Errorf("pack %s defines no templates in [package.metadata.pack.templates]", packName)
	}

	templatePath, err := resolveTemplate(templates, requested)
	if err != nil {
		return err
	}

	if err := cargo.Scaffold(ctx, dir, templatePath, projectName); err != nil {
		return err
	}

	printSuccess("Project created from %s", packName)
	return nil
}

// resolveTemplate picks a template path from the pack's templates table.
// An explicit request must match. Without one, a single template or one
// named "default" wins; otherwise the caller must choose.
func resolveTemplate(templates map[string]manifest.Template, requested string) (string, error) {
	if requested != "" {
		tpl, ok := templates[requested]
		if !ok {
			return "", fmt.Errorf("template %q not found. Available templates: %s",
				requested, strings.Join(templateNames(templates), ", "))
		}
		return tpl.Path, nil
	}

	if len(templates) == 1 {
		for _, tpl := range templates {
			return tpl.Path, nil
		}
	}
	if tpl, ok := templates["default"]; ok {
		return tpl.Path, nil
	}

	var lines []string
	for _, name := range templateNames(templates) {
		if desc := templates[name].Description; desc != "" {
			lines = append(lines, fmt.Sprintf("  %s - %s", name, desc))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return "", fmt.Errorf("multiple templates available, pick one with --template <name>:\n%s",
		strings.Join(lines, "\n"))
}
