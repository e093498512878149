package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Config holds the settings of the daemon and its clients.
type Config struct {
	// ServerAddress is the gRPC address the daemon listens on and clients dial.
	ServerAddress string `yaml:"server_addr"`
	// StateFile is the path to the JSON file storing alarms, sounds and selection.
	StateFile string `yaml:"state_file"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// PollInterval is how often the scheduler compares the wall clock with alarms.
	PollInterval time.Duration `yaml:"poll_interval"`
	// RingTimeout stops a ringing sound automatically; zero rings until handled.
	RingTimeout time.Duration `yaml:"ring_timeout"`
	// PreviewDuration bounds sound previews and tests.
	PreviewDuration time.Duration `yaml:"preview_duration"`
	// NotificationTTL is how long notifications stay visible to clients.
	NotificationTTL time.Duration `yaml:"notification_ttl"`
	// SampleRate is the output sample rate of the sound engine.
	SampleRate int `yaml:"sample_rate"`
	// MaxUploadSize is the largest audio file, in bytes, the daemon accepts.
	MaxUploadSize int64 `yaml:"max_upload_size"`
	// LogLevel is the minimum level of the daemon log.
	LogLevel string `yaml:"log_level"`
	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format"`
	// RPCLogLevel is the minimum level of the RPC access log.
	RPCLogLevel string `yaml:"rpc_log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultStateFilename is the default filename for the persisted state.
	DefaultStateFilename = "alarm-clock-state.json"

	// DefaultServerAddress is a loopback address for a single-user setup.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultPollInterval is the scheduler polling period.
	DefaultPollInterval = time.Second

	// DefaultPreviewDuration matches the length of a sound test.
	DefaultPreviewDuration = 5 * time.Second

	// DefaultNotificationTTL is how long a notification stays visible.
	DefaultNotificationTTL = 4 * time.Second

	// DefaultSampleRate is the engine output rate.
	DefaultSampleRate = 44100

	// DefaultMaxUploadSize fits a few minutes of MP3.
	DefaultMaxUploadSize = 32 << 20

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600

	minPollInterval = 100 * time.Millisecond
	minSampleRate   = 8000
	maxSampleRate   = 192000
	maxUploadSize   = 512 << 20
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errPollIntervalTooShort is returned for sub-100ms polling.
	errPollIntervalTooShort = errors.New("poll interval must be at least 100ms")
	// errNegativeDuration is returned for negative timeouts.
	errNegativeDuration = errors.New("durations must not be negative")
	// errSampleRateOutOfRange is returned for unusable sample rates.
	errSampleRateOutOfRange = errors.New("sample rate must be between 8000 and 192000")
	// errUploadSizeOutOfRange is returned for negative or huge upload limits.
	errUploadSizeOutOfRange = errors.New("max upload size must be between 1 byte and 512MB")
	// errUnknownLogLevel is returned for unparsable levels.
	errUnknownLogLevel = errors.New("unknown log level")
	// errUnknownLogFormat is returned for unparsable formats.
	errUnknownLogFormat = errors.New("unknown log format")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)
	_ = Validate(cfg) //nolint:errcheck // Defaults always validate.

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for empty fields.
//
//nolint:cyclop // A flat list of independent checks reads best.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.Timeout < 0 || settings.RingTimeout < 0 || settings.PreviewDuration < 0 ||
		settings.NotificationTTL < 0 || settings.PollInterval < 0 {
		return errNegativeDuration
	}

	if settings.Timeout == 0 {
		settings.Timeout = DefaultTimeout
	}

	switch {
	case settings.PollInterval == 0:
		settings.PollInterval = DefaultPollInterval
	case settings.PollInterval < minPollInterval:
		return errPollIntervalTooShort
	}

	if settings.PreviewDuration == 0 {
		settings.PreviewDuration = DefaultPreviewDuration
	}

	if settings.NotificationTTL == 0 {
		settings.NotificationTTL = DefaultNotificationTTL
	}

	switch {
	case settings.SampleRate == 0:
		settings.SampleRate = DefaultSampleRate
	case settings.SampleRate < minSampleRate || settings.SampleRate > maxSampleRate:
		return errSampleRateOutOfRange
	}

	switch {
	case settings.MaxUploadSize == 0:
		settings.MaxUploadSize = DefaultMaxUploadSize
	case settings.MaxUploadSize < 0 || settings.MaxUploadSize > maxUploadSize:
		return errUploadSizeOutOfRange
	}

	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if settings.RPCLogLevel == "" {
		settings.RPCLogLevel = settings.LogLevel
	}

	for _, level := range []string{settings.LogLevel, settings.RPCLogLevel} {
		if _, ok := logger.ParseLogLevel(level); !ok {
			return fmt.Errorf("%q: %w", level, errUnknownLogLevel)
		}
	}

	if _, ok := logger.ParseFormat(settings.LogFormat); !ok {
		return fmt.Errorf("%q: %w", settings.LogFormat, errUnknownLogFormat)
	}

	return nil
}
