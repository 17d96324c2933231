package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packforge/packforge/pkg/registry/crates"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search for packs on crates.io",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			client, closeCache := c.cratesClient(noCache)
			defer closeCache()

			results, err := fetchWithSpinner(cmd.Context(), "Searching crates.io...", func(ctx context.Context) ([]crates.SearchResult, error) {
				return client.Search(ctx, query, refresh)
			})
			if err != nil {
				return fmt.Errorf("search packs: %w", err)
			}

			if len(results) == 0 {
				if query != "" {
					printInfo("No packs found matching %q", query)
				} else {
					printInfo("No packs found")
				}
				return nil
			}

			printPackList(results)
			printNewline()
			printDetail("Found %d pack(s)", len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}

// printPackList prints search results in aligned columns: short name,
// version, first description line.
func printPackList(results []crates.SearchResult) {
	nameWidth, versionWidth := 0, 0
	for _, r := range results {
		if n := len(crates.ShortName(r.Name)); n > nameWidth {
			nameWidth = n
		}
		if n := len(r.MaxVersion); n > versionWidth {
			versionWidth = n
		}
	}

	printNewline()
	for _, r := range results {
		// Pad before styling; ANSI codes break width formatting.
		name := fmt.Sprintf("%-*s", nameWidth, crates.ShortName(r.Name))
		version := fmt.Sprintf("%-*s", versionWidth, r.MaxVersion)
		desc := firstDescLine(r.Description)

		fmt.Println("  " + stylePack.Render(name) + "  " + StyleDim.Render(version) + "  " + desc)
	}
}

func firstDescLine(desc string) string {
	line, _, _ := strings.Cut(desc, "\n")
	return strings.TrimSpace(line)
}

// fetchWithSpinner runs fetch while animating a spinner, unless the
// fetch finishes first.
func fetchWithSpinner[T any](ctx context.Context, message string, fetch func(context.Context) (T, error)) (T, error) {
	s := newSpinner(ctx, message)
	s.Start()
	defer s.Stop()
	return fetch(ctx)
}
