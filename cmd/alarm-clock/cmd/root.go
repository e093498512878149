package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the daemon address from config.
	serverAddress string

	// rootCmd represents the base command; without a subcommand it opens the UI.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Manage alarms on the alarm clock daemon.",
		Long: `Client of alarm-clockd.

Run without arguments to open the terminal UI, or use a subcommand for one-shot
operations: add and manage alarms, upload and preview sounds, snooze or dismiss
a ringing alarm. Alarm references accept an id or the position shown by "list".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUI,
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withSession wraps a command body with signal handling and a daemon connection.
func withSession(
	run func(ctx context.Context, s *client.Session, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		defer logger.Sync()

		session, err := client.Open(ctx, &client.Options{
			ConfigPath:    cfgPath,
			ServerAddress: serverAddress,
			Out:           cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}

		// Close connection on function exit.
		defer func() {
			_ = session.Close()
		}()

		return run(ctx, session, args)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "address", "a", "", "daemon address (overrides config)")

	rootCmd.AddCommand(
		newListCommand(),
		newAddCommand(),
		newRemoveCommand(),
		newToggleCommand(),
		newClearCommand(),
		newTimeCommand(),
		newThemeCommand(),
		newStatusCommand(),
		newWatchCommand(),
		newSnoozeCommand(),
		newDismissCommand(),
		newSoundsCommand(),
		newTUICommand(),
	)
}
