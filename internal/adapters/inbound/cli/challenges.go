package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellcon/aquacheck/internal/adapters/outbound/tui"
)

func newChallengesCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		withStatus bool
	)

	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List the lab challenges",
		Long:  "Print the challenge catalog with hints. With --status every challenge is verified against the workspace.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			cat, err := a.catalog.Catalog(cmd.Context(), withStatus)
			if err != nil {
				return fmt.Errorf("listing challenges: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cat)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCatalog(cat))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the catalog as JSON")
	cmd.Flags().BoolVar(&withStatus, "status", false, "Verify each challenge and report its status")
	return cmd
}
