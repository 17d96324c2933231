package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packforge/packforge/pkg/cargo"
	pkgerrors "github.com/packforge/packforge/pkg/errors"
	"github.com/packforge/packforge/pkg/registry/crates"
)

// addCommand creates the add command. It verifies the pack exists on
// crates.io, then shells out to cargo add with a rename so the pack is
// imported under its short name.
func (c *CLI) addCommand() *cobra.Command {
	var (
		features []string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "add <pack>",
		Short: "Add a pack as a dependency of the current project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pkgerrors.ValidateCrateName(args[0]); err != nil {
				return err
			}
			crateName := crates.FullName(args[0])
			short := crates.ShortName(crateName)

			client, closeCache := c.cratesClient(noCache)
			defer closeCache()

			info, err := fetchWithSpinner(cmd.Context(), "Looking up "+crateName+"...", func(ctx context.Context) (*crates.CrateInfo, error) {
				return client.Lookup(ctx, crateName, false)
			})
			if err != nil {
				return fmt.Errorf("verify pack: %w", err)
			}

			if err := cargo.Add(cmd.Context(), crateName, short, features); err != nil {
				return err
			}

			printSuccess("Added %s %s as %s", crateName, info.Version, StyleHighlight.Render(short))
			printNextStep("browse the pack", fmt.Sprintf("packforge show %s", short))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&features, "features", "F", nil, "features to enable")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}
