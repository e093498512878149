package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/server"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where alarms, sounds and selection are persisted.
	stateFile string
	// noAudio discards sound output.
	noAudio bool

	// rootCmd represents the base command for running the daemon.
	rootCmd = &cobra.Command{
		Use:   "alarm-clockd [listen-address]",
		Short: "Run the alarm clock daemon.",
		Long: `Starts the alarm clock daemon: it keeps alarms and sounds, checks the wall clock
every second, rings matching alarms and serves the gRPC API used by alarm-clock.

A loopback ServerAddress from the configuration is listened on as is; for any other
host only the port is used. Listen address can be provided as argument to override
config (e.g., 127.0.0.1:9090, :50061).
State is persisted to a JSON file and restored on the next start.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			defer logger.Sync()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				StateFile:     stateFile,
				NoAudio:       noAudio,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-clockd CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&stateFile, "state-file", "s", "", "path to persist alarm clock state (overrides config)")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "do not open the audio device")
}
