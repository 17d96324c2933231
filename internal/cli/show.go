package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packforge/packforge/pkg/registry/crates"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "show <pack>",
		Short: "Show detailed information about a pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeCache := c.cratesClient(noCache)
			defer closeCache()

			detail, err := fetchWithSpinner(cmd.Context(), "Fetching pack details...", func(ctx context.Context) (*packDetail, error) {
				return fetchPackDetail(ctx, client, args[0], refresh)
			})
			if err != nil {
				return fmt.Errorf("show pack: %w", err)
			}

			printPackDetail(detail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}

func printPackDetail(d *packDetail) {
	short := crates.ShortName(d.Name)

	printNewline()
	fmt.Println(stylePack.Render(d.Name) + " " + StyleDim.Render(d.Version))
	if d.Description != "" {
		fmt.Println(d.Description)
	}

	if len(d.Owners) > 0 {
		printNewline()
		printSection("Authors")
		for _, owner := range d.Owners {
			if owner.Name != "" {
				printDetail("%s (%s)", owner.Name, owner.Login)
			} else {
				printDetail("%s", owner.Login)
			}
		}
	}

	if len(d.Crates) > 0 {
		printNewline()
		printSection("Crates")
		for _, dep := range d.Crates {
			printDetail("%s", dep)
		}
	}

	if len(d.Extends) > 0 {
		printNewline()
		printSection("Extends")
		for _, dep := range d.Extends {
			printDetail("%s", dep)
		}
	}

	if len(d.Templates) > 0 {
		printNewline()
		printSection("Templates")
		nameWidth := 0
		for _, name := range templateNames(d.Templates) {
			if len(name) > nameWidth {
				nameWidth = len(name)
			}
		}
		for _, name := range templateNames(d.Templates) {
			tpl := d.Templates[name]
			padded := fmt.Sprintf("%-*s", nameWidth, name)
			if tpl.Description != "" {
				fmt.Println("  " + StyleHighlight.Render(padded) + "  " + tpl.Description)
			} else {
				fmt.Println("  " + StyleHighlight.Render(padded))
			}
		}
	}

	printNewline()
	printSection("Install")
	printNextStep("add to an existing project", fmt.Sprintf("packforge add %s", short))
	printNextStep("start a new project", fmt.Sprintf("packforge new %s", short))
	printNewline()
}
