package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellcon/aquacheck/internal/adapters/outbound/tui"
	"github.com/shellcon/aquacheck/internal/domain"
)

func newLectureCmd(opts *globalOptions) *cobra.Command {
	var (
		withSolution bool
		style        string
	)

	cmd := &cobra.Command{
		Use:   "lecture <category|id>",
		Short: "Read the lecture for a challenge",
		Long:  "Render a challenge's lecture markdown in the terminal. With --solution the reference fix and its explanation follow.",
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

			ch, err := a.catalog.Challenge(cmd.Context(), category.ChallengeID())
			if err != nil {
				return fmt.Errorf("loading challenge: %w", err)
			}
			out, err := tui.RenderLecture(ch, withSolution, style)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSolution, "solution", false, "Append the reference solution")
	cmd.Flags().StringVar(&style, "style", "", "Markdown style (dark, light, notty, ascii or a JSON style file); auto-detected when empty")
	return cmd
}
