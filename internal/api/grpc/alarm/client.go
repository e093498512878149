package alarm

import (
	"context"

	"google.golang.org/grpc"
)

// ClockServiceClient is the typed client stub of the clock service.
type ClockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient wraps a connection.
func NewClockServiceClient(cc grpc.ClientConnInterface) *ClockServiceClient {
	return &ClockServiceClient{cc: cc}
}

func invoke[Req, Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in *Req,
	opts ...grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// ListAlarms returns every alarm in list order.
func (c *ClockServiceClient) ListAlarms(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AlarmList, error) {
	return invoke[Empty, AlarmList](ctx, c.cc, MethodListAlarms, in, opts...)
}

// AddAlarm creates an alarm.
func (c *ClockServiceClient) AddAlarm(ctx context.Context, in *AddAlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AddAlarmRequest, AlarmResponse](ctx, c.cc, MethodAddAlarm, in, opts...)
}

// RemoveAlarm deletes an alarm.
func (c *ClockServiceClient) RemoveAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmRequest, AlarmResponse](ctx, c.cc, MethodRemoveAlarm, in, opts...)
}

// ToggleAlarm flips an alarm's enabled flag.
func (c *ClockServiceClient) ToggleAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmRequest, AlarmResponse](ctx, c.cc, MethodToggleAlarm, in, opts...)
}

// ClearAlarms deletes every alarm.
func (c *ClockServiceClient) ClearAlarms(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ClearAlarmsResponse, error) {
	return invoke[Empty, ClearAlarmsResponse](ctx, c.cc, MethodClearAlarms, in, opts...)
}

// ListSounds returns the default tone and every uploaded sound.
func (c *ClockServiceClient) ListSounds(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SoundList, error) {
	return invoke[Empty, SoundList](ctx, c.cc, MethodListSounds, in, opts...)
}

// UploadSound stores an audio file and selects it.
func (c *ClockServiceClient) UploadSound(ctx context.Context, in *UploadSoundRequest, opts ...grpc.CallOption) (*SoundResponse, error) {
	return invoke[UploadSoundRequest, SoundResponse](ctx, c.cc, MethodUploadSound, in, opts...)
}

// RemoveSound deletes a stored sound.
func (c *ClockServiceClient) RemoveSound(ctx context.Context, in *SoundRequest, opts ...grpc.CallOption) (*SoundResponse, error) {
	return invoke[SoundRequest, SoundResponse](ctx, c.cc, MethodRemoveSound, in, opts...)
}

// SelectSound sets the default sound for new alarms.
func (c *ClockServiceClient) SelectSound(ctx context.Context, in *SoundRequest, opts ...grpc.CallOption) (*Selection, error) {
	return invoke[SoundRequest, Selection](ctx, c.cc, MethodSelectSound, in, opts...)
}

// PlaySound previews a sound.
func (c *ClockServiceClient) PlaySound(ctx context.Context, in *SoundRequest, opts ...grpc.CallOption) (*PlaybackResponse, error) {
	return invoke[SoundRequest, PlaybackResponse](ctx, c.cc, MethodPlaySound, in, opts...)
}

// TestSound previews the selected sound.
func (c *ClockServiceClient) TestSound(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PlaybackResponse, error) {
	return invoke[Empty, PlaybackResponse](ctx, c.cc, MethodTestSound, in, opts...)
}

// StopSound stops any playback.
func (c *ClockServiceClient) StopSound(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty, Empty](ctx, c.cc, MethodStopSound, in, opts...)
}

// SetSelectedTime sets the default time for new alarms.
func (c *ClockServiceClient) SetSelectedTime(ctx context.Context, in *SetSelectedTimeRequest, opts ...grpc.CallOption) (*Selection, error) {
	return invoke[SetSelectedTimeRequest, Selection](ctx, c.cc, MethodSetSelectedTime, in, opts...)
}

// SetTheme sets the client theme.
func (c *ClockServiceClient) SetTheme(ctx context.Context, in *SetThemeRequest, opts ...grpc.CallOption) (*Selection, error) {
	return invoke[SetThemeRequest, Selection](ctx, c.cc, MethodSetTheme, in, opts...)
}

// GetStatus returns the daemon status.
func (c *ClockServiceClient) GetStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[Empty, StatusResponse](ctx, c.cc, MethodGetStatus, in, opts...)
}

// Snooze snoozes the ringing alarm.
func (c *ClockServiceClient) Snooze(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[Empty, AlarmResponse](ctx, c.cc, MethodSnooze, in, opts...)
}

// Dismiss dismisses the ringing alarm.
func (c *ClockServiceClient) Dismiss(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[Empty, AlarmResponse](ctx, c.cc, MethodDismiss, in, opts...)
}
