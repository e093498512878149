package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
)

func newSoundsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sounds",
		Short: "Manage alarm sounds.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.ListSounds(ctx)
		}),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List the default tone and uploaded sounds.",
			Args:    cobra.NoArgs,
			RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
				return s.ListSounds(ctx)
			}),
		},
		&cobra.Command{
			Use:   "upload <file>",
			Short: "Upload an audio file and select it.",
			Args:  cobra.ExactArgs(1),
			RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
				return s.UploadSound(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:     "remove <id>",
			Aliases: []string{"rm"},
			Short:   "Delete an uploaded sound.",
			Args:    cobra.ExactArgs(1),
			RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
				return s.RemoveSound(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "select <id>",
			Short: "Select the sound for new alarms.",
			Args:  cobra.ExactArgs(1),
			RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
				return s.SelectSound(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "play <id>",
			Short: "Preview a sound.",
			Args:  cobra.ExactArgs(1),
			RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
				return s.PlaySound(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "test",
			Short: "Preview the selected sound.",
			Args:  cobra.NoArgs,
			RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
				return s.TestSound(ctx)
			}),
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop any playback.",
			Args:  cobra.NoArgs,
			RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
				return s.StopSound(ctx)
			}),
		},
	)

	return cmd
}
