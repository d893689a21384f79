package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellcon/aquacheck/internal/adapters/outbound/tui"
	"github.com/shellcon/aquacheck/internal/domain"
)

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		check      bool
	)

	cmd := &cobra.Command{
		Use:   "verify <category|id>",
		Short: "Verify one challenge against the current workspace",
		Long:  "Run the verification for a challenge, addressed by number (1-5) or category name, and print the verdict.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(context.Background()) }()

			v, err := a.verify.Verify(cmd.Context(), category)
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(v); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderVerdict(category, v, a.revision()))
			}

			if check && !v.Valid {
				return fmt.Errorf("challenge #%d (%s) is not solved", category.ChallengeID(), category)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the verdict as JSON")
	cmd.Flags().BoolVar(&check, "check", false, "Exit non-zero when the verdict is invalid")
	return cmd
}
