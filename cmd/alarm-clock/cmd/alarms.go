package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/service/client"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List alarms.",
		Args:    cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.ListAlarms(ctx)
		}),
	}
}

func newAddCommand() *cobra.Command {
	var (
		at      string
		soundID string
	)

	cmd := &cobra.Command{
		Use:   "add [name...]",
		Short: "Add an alarm at the selected time.",
		Long: `Adds an enabled alarm. --time accepts "HH:MM" or digits as typed into the
time field ("730" becomes 07:30 after clamping); without it the selected time
is used. --sound selects the sound first.`,
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			return s.AddAlarm(ctx, strings.Join(args, " "), at, soundID)
		}),
	}

	cmd.Flags().StringVarP(&at, "time", "t", "", "alarm time (HH:MM or digits)")
	cmd.Flags().StringVar(&soundID, "sound", "", "sound id")

	return cmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id|position>",
		Aliases: []string{"rm"},
		Short:   "Delete an alarm.",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			return s.RemoveAlarm(ctx, args[0])
		}),
	}
}

func newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id|position>",
		Short: "Enable or disable an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			return s.ToggleAlarm(ctx, args[0])
		}),
	}
}

func newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every alarm.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.ClearAlarms(ctx)
		}),
	}
}

func newTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "time <HH:MM|digits>",
		Short: "Set the selected time for new alarms.",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			return s.SetTime(ctx, args[0])
		}),
	}
}

func newThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <dark|light|navy|amber>",
		Short: "Change the theme.",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, s *client.Session, args []string) error {
			return s.SetTheme(ctx, args[0])
		}),
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the selection, playback and the ringing alarm.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.Status(ctx)
		}),
	}
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print notifications as they happen.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.Watch(ctx)
		}),
	}
}

func newSnoozeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snooze",
		Short: "Snooze the ringing alarm for 5 minutes.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.Snooze(ctx)
		}),
	}
}

func newDismissCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss the ringing alarm.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, s *client.Session, _ []string) error {
			return s.Dismiss(ctx)
		}),
	}
}
