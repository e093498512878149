package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/tui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI.",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
}

// runTUI opens the terminal UI on a daemon connection.
func runTUI(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, s *client.Session, _ []string) error {
		err := tui.Run(tui.Options{
			Context:      ctx,
			Client:       s.Client(),
			PollInterval: s.Settings().PollInterval,
		})
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return err
	})(cmd, args)
}
