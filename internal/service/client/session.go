package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Options configures how commands reach the daemon.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides server address from config when specified.
	ServerAddress string

	// Out receives command output; stdout when nil.
	Out io.Writer
}

// Session is a connected command line client.
type Session struct {
	// client is the daemon connection.
	client *common.Client
	// settings is the loaded configuration.
	settings *config.Config
	// out receives printed results.
	out io.Writer
}

// Open loads settings and connects to the daemon.
func Open(ctx context.Context, opts *Options) (*Session, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := settings.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for the daemon's access log.
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Failed to detect actor", "error", err)
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(settings.Timeout),
		common.WithActor(actor),
		common.WithMaxUploadSize(settings.MaxUploadSize))
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Connected to alarm clock daemon", "server_address", serverAddress)

	return NewSession(client, settings, opts.Out), nil
}

// NewSession wraps an existing client.
func NewSession(client *common.Client, settings *config.Config, out io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}

	if settings == nil {
		settings = config.Default()
	}

	return &Session{
		client:   client,
		settings: settings,
		out:      out,
	}
}

// Client returns the underlying daemon client.
func (s *Session) Client() *common.Client {
	return s.client
}

// Settings returns the loaded configuration.
func (s *Session) Settings() *config.Config {
	return s.settings
}

// Close releases the connection.
func (s *Session) Close() error {
	return s.client.Close()
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// resolveAlarmID accepts either an alarm id or its 1-based list position.
func (s *Session) resolveAlarmID(ctx context.Context, ref string) (string, error) {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref, nil
	}

	alarms, err := s.client.ListAlarms(ctx)
	if err != nil {
		return "", err
	}

	if n < 1 || n > len(alarms) {
		return "", fmt.Errorf("%w: %d (have %d)", ErrNoSuchPosition, n, len(alarms))
	}

	return alarms[n-1].ID, nil
}
