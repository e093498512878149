//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/version"
)

// Client wraps the clock service stub with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the daemon.
	conn grpc.ClientConnInterface
	// closer releases conn; nil for borrowed connections.
	closer func() error
	// api is the clock service stub.
	api *api.ClockServiceClient
	// health checks daemon liveness.
	health healthpb.HealthClient
	// actor identifies the caller on every request.
	actor *domain.Actor

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// userAgent is sent with every call.
	userAgent string
	// maxUpload sizes call messages so uploads up to it fit.
	maxUpload int64
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor attaches the actor to every call.
func WithActor(actor *domain.Actor) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// WithUserAgent overrides the user agent sent by Dial.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithMaxUploadSize sizes Dial's message limits for uploads of n bytes.
func WithMaxUploadSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxUpload = n
		}
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the daemon.
// Note: this uses insecure transport credentials; the daemon listens on
// loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := newClient(opts...)

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent(client.userAgent),
		grpc.WithDefaultCallOptions(api.CallOptions(client.maxUpload)...))
	if err != nil {
		return nil, fmt.Errorf("dial alarm clock daemon: %w", err)
	}

	client.bind(conn)
	client.closer = conn.Close

	return client, nil
}

// NewClient wraps an existing connection. Close does not close it.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	client := newClient(opts...)
	client.bind(conn)

	return client
}

func newClient(opts ...Option) *Client {
	client := &Client{
		callTimeout: config.DefaultTimeout,
		userAgent:   version.UserAgent("alarm-clock"),
		maxUpload:   config.DefaultMaxUploadSize,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *Client) bind(conn grpc.ClientConnInterface) {
	c.conn = conn
	c.api = api.NewClockServiceClient(conn)
	c.health = healthpb.NewHealthClient(conn)
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}

	return c.closer()
}

// Ping reports whether the daemon serves the clock service.
func (c *Client) Ping(ctx context.Context) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.health.Check(callCtx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", errNotServing, resp.GetStatus())
	}

	return nil
}

var errNotServing = errors.New("alarm clock daemon is not serving")

// ListAlarms returns every alarm in list order.
func (c *Client) ListAlarms(ctx context.Context) ([]api.Alarm, error) {
	resp, err := call(ctx, c, c.api.ListAlarms, &api.Empty{})
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return resp.Alarms, nil
}

// AddAlarm creates an alarm; empty hhmm or soundID keep the selection.
func (c *Client) AddAlarm(ctx context.Context, name, hhmm, soundID string) (api.Alarm, error) {
	resp, err := call(ctx, c, c.api.AddAlarm, &api.AddAlarmRequest{Name: name, Time: hhmm, SoundID: soundID})
	if err != nil {
		return api.Alarm{}, fmt.Errorf("add alarm: %w", err)
	}

	return resp.Alarm, nil
}

// RemoveAlarm deletes an alarm.
func (c *Client) RemoveAlarm(ctx context.Context, id string) (api.Alarm, error) {
	resp, err := call(ctx, c, c.api.RemoveAlarm, &api.AlarmRequest{ID: id})
	if err != nil {
		return api.Alarm{}, fmt.Errorf("remove alarm: %w", err)
	}

	return resp.Alarm, nil
}

// ToggleAlarm flips an alarm's enabled flag.
func (c *Client) ToggleAlarm(ctx context.Context, id string) (api.Alarm, error) {
	resp, err := call(ctx, c, c.api.ToggleAlarm, &api.AlarmRequest{ID: id})
	if err != nil {
		return api.Alarm{}, fmt.Errorf("toggle alarm: %w", err)
	}

	return resp.Alarm, nil
}

// ClearAlarms deletes every alarm and returns how many were removed.
func (c *Client) ClearAlarms(ctx context.Context) (int, error) {
	resp, err := call(ctx, c, c.api.ClearAlarms, &api.Empty{})
	if err != nil {
		return 0, fmt.Errorf("clear alarms: %w", err)
	}

	return resp.Cleared, nil
}

// ListSounds returns the default tone and the uploaded sounds.
func (c *Client) ListSounds(ctx context.Context) (*api.SoundList, error) {
	resp, err := call(ctx, c, c.api.ListSounds, &api.Empty{})
	if err != nil {
		return nil, fmt.Errorf("list sounds: %w", err)
	}

	return resp, nil
}

// UploadSound sends an audio file; mediaType may be empty.
func (c *Client) UploadSound(ctx context.Context, fileName, mediaType string, data []byte) (api.Sound, error) {
	req := &api.UploadSoundRequest{FileName: fileName, MediaType: mediaType, Data: data}

	resp, err := call(ctx, c, c.api.UploadSound, req)
	if err != nil {
		return api.Sound{}, fmt.Errorf("upload sound: %w", err)
	}

	return resp.Sound, nil
}

// RemoveSound deletes an uploaded sound.
func (c *Client) RemoveSound(ctx context.Context, id string) (api.Sound, error) {
	resp, err := call(ctx, c, c.api.RemoveSound, &api.SoundRequest{ID: id})
	if err != nil {
		return api.Sound{}, fmt.Errorf("remove sound: %w", err)
	}

	return resp.Sound, nil
}

// SelectSound sets the default sound for new alarms.
func (c *Client) SelectSound(ctx context.Context, id string) (*api.Selection, error) {
	resp, err := call(ctx, c, c.api.SelectSound, &api.SoundRequest{ID: id})
	if err != nil {
		return nil, fmt.Errorf("select sound: %w", err)
	}

	return resp, nil
}

// PlaySound previews a sound and reports whether it started.
func (c *Client) PlaySound(ctx context.Context, id string) (bool, error) {
	resp, err := call(ctx, c, c.api.PlaySound, &api.SoundRequest{ID: id})
	if err != nil {
		return false, fmt.Errorf("play sound: %w", err)
	}

	return resp.Playing, nil
}

// TestSound previews the selected sound.
func (c *Client) TestSound(ctx context.Context) (bool, error) {
	resp, err := call(ctx, c, c.api.TestSound, &api.Empty{})
	if err != nil {
		return false, fmt.Errorf("test sound: %w", err)
	}

	return resp.Playing, nil
}

// StopSound stops any playback.
func (c *Client) StopSound(ctx context.Context) error {
	if _, err := call(ctx, c, c.api.StopSound, &api.Empty{}); err != nil {
		return fmt.Errorf("stop sound: %w", err)
	}

	return nil
}

// SetSelectedTime sets the default time for new alarms.
func (c *Client) SetSelectedTime(ctx context.Context, hhmm string) (*api.Selection, error) {
	resp, err := call(ctx, c, c.api.SetSelectedTime, &api.SetSelectedTimeRequest{Time: hhmm})
	if err != nil {
		return nil, fmt.Errorf("set selected time: %w", err)
	}

	return resp, nil
}

// SetTheme sets the client theme.
func (c *Client) SetTheme(ctx context.Context, theme string) (*api.Selection, error) {
	resp, err := call(ctx, c, c.api.SetTheme, &api.SetThemeRequest{Theme: theme})
	if err != nil {
		return nil, fmt.Errorf("set theme: %w", err)
	}

	return resp, nil
}

// Status returns the daemon status.
func (c *Client) Status(ctx context.Context) (*api.StatusResponse, error) {
	resp, err := call(ctx, c, c.api.GetStatus, &api.Empty{})
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return resp, nil
}

// Snooze snoozes the ringing alarm and returns the snooze alarm.
func (c *Client) Snooze(ctx context.Context) (api.Alarm, error) {
	resp, err := call(ctx, c, c.api.Snooze, &api.Empty{})
	if err != nil {
		return api.Alarm{}, fmt.Errorf("snooze: %w", err)
	}

	return resp.Alarm, nil
}

// Dismiss dismisses the ringing alarm.
func (c *Client) Dismiss(ctx context.Context) (api.Alarm, error) {
	resp, err := call(ctx, c, c.api.Dismiss, &api.Empty{})
	if err != nil {
		return api.Alarm{}, fmt.Errorf("dismiss: %w", err)
	}

	return resp.Alarm, nil
}

// call runs one stub method with the call timeout and the actor metadata.
func call[Req, Resp any](
	ctx context.Context,
	c *Client,
	method func(context.Context, *Req, ...grpc.CallOption) (*Resp, error),
	in *Req,
) (*Resp, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	return method(api.WithActor(callCtx, c.actor), in)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
