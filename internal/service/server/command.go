package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	repository "github.com/oshokin/alarm-clock/internal/repository/state"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/store"
)

// ProcessName is the executable name of the daemon.
const ProcessName = "alarm-clockd"

// Options controls the alarm-clockd process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StateFile specifies the path to persist the alarm clock state JSON.
	StateFile string
	// NoAudio discards sound output instead of opening the audio device.
	NoAudio bool
	// Output overrides the audio backend; used by tests.
	Output sound.Output
}

var (
	// ErrNoServerAddress indicates missing server configuration.
	ErrNoServerAddress = errors.New("no server address configured")
	// ErrAlreadyRunning indicates another daemon process exists.
	ErrAlreadyRunning = errors.New("another alarm-clockd is already running")
)

// Run starts the daemon and blocks until context is canceled or the server stops.
// On shutdown the gRPC server drains, the sound stops and the state is flushed.
//
//nolint:funlen // Startup is a linear sequence of steps.
func Run(ctx context.Context, opts *Options) error {
	// Load configuration first to get server and logging settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	accessLog := configureLogging(settings)

	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, ProcessName)

	if pid, found, lookupErr := findRunningInstance(ProcessName); lookupErr != nil {
		logger.WarnKV(ctx, "Failed to scan processes", "error", lookupErr)
	} else if found {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	// Use StateFile from config unless overridden by command line option.
	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	// Determine listen address: CLI argument overrides config.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	st := store.New(ctx, repository.NewFileRepository(stateFile))

	svc := newService(serviceOptions{
		Store:           st,
		Output:          selectOutput(opts, settings.SampleRate),
		SampleRate:      settings.SampleRate,
		PollInterval:    settings.PollInterval,
		RingTimeout:     settings.RingTimeout,
		PreviewDuration: settings.PreviewDuration,
		NotificationTTL: settings.NotificationTTL,
		MaxUploadSize:   settings.MaxUploadSize,
	})

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	serverOptions := append(api.ServerOptions(settings.MaxUploadSize),
		grpc.ChainUnaryInterceptor(api.LoggingInterceptor(accessLog)))

	grpcServer := grpc.NewServer(serverOptions...)
	api.RegisterClockServiceServer(grpcServer, api.NewServer(svc))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.InfoKV(ctx, "Alarm clock daemon listening", "listen_address", listenAddress, "state_file", stateFile)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	schedulerDone := make(chan error, 1)

	go func() {
		schedulerDone <- svc.scheduler.Run(ctx)
	}()

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		close(done)
	}()

	serveErr := grpcServer.Serve(lis)
	if errors.Is(serveErr, grpc.ErrServerStopped) {
		serveErr = nil
	}

	cancel()
	<-done

	if err := <-schedulerDone; err != nil {
		logger.ErrorKV(ctx, "Scheduler failed", "error", err)
	}

	shutdownCtx := context.WithoutCancel(ctx)
	svc.engine.Stop(shutdownCtx)

	if err := st.Close(shutdownCtx); err != nil {
		logger.ErrorKV(ctx, "Failed to flush state", "error", err)
	}

	logger.Info(ctx, "Alarm clock daemon stopped")

	if serveErr != nil {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	return nil
}

// configureLogging applies the configured level and format to the global
// logger and returns the RPC access logger.
func configureLogging(settings *config.Config) *zap.SugaredLogger {
	level, _ := logger.ParseLogLevel(settings.LogLevel)
	format, _ := logger.ParseFormat(settings.LogFormat)

	if format != logger.FormatConsole {
		logger.SetLogger(logger.NewWithOptions(logger.Options{Format: format}))
	}

	logger.SetLevel(level)

	rpcLevel, _ := logger.ParseLogLevel(settings.RPCLogLevel)

	return logger.Logger().Desugar().WithOptions(logger.WithLevel(rpcLevel)).Sugar().Named("rpc")
}

func selectOutput(opts *Options, sampleRate int) sound.Output {
	switch {
	case opts.Output != nil:
		return opts.Output
	case opts.NoAudio:
		return sound.SilentOutput{}
	default:
		return sound.NewOtoOutput(sampleRate)
	}
}

// findRunningInstance looks for another process with the given executable name.
func findRunningInstance(processName string) (int, bool, error) {
	processList, err := ps.Processes()
	if err != nil {
		return 0, false, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		executable := process.Executable()
		if strings.TrimSuffix(executable, filepath.Ext(executable)) != processName {
			continue
		}

		return process.Pid(), true, nil
	}

	return 0, false, nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// An override is used as is. A loopback config address is kept so the daemon
// stays local; any other host binds all interfaces on the configured port.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	host, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	if host == "localhost" {
		return configAddr, nil
	}

	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return configAddr, nil
	}

	return ":" + port, nil
}
