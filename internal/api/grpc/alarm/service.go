package alarm

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "alarmclock.v1.ClockService"

// Method names.
const (
	MethodListAlarms      = "ListAlarms"
	MethodAddAlarm        = "AddAlarm"
	MethodRemoveAlarm     = "RemoveAlarm"
	MethodToggleAlarm     = "ToggleAlarm"
	MethodClearAlarms     = "ClearAlarms"
	MethodListSounds      = "ListSounds"
	MethodUploadSound     = "UploadSound"
	MethodRemoveSound     = "RemoveSound"
	MethodSelectSound     = "SelectSound"
	MethodPlaySound       = "PlaySound"
	MethodTestSound       = "TestSound"
	MethodStopSound       = "StopSound"
	MethodSetSelectedTime = "SetSelectedTime"
	MethodSetTheme        = "SetTheme"
	MethodGetStatus       = "GetStatus"
	MethodSnooze          = "Snooze"
	MethodDismiss         = "Dismiss"
)

// ClockServiceServer is the server API of the clock service.
type ClockServiceServer interface {
	ListAlarms(ctx context.Context, req *Empty) (*AlarmList, error)
	AddAlarm(ctx context.Context, req *AddAlarmRequest) (*AlarmResponse, error)
	RemoveAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error)
	ToggleAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error)
	ClearAlarms(ctx context.Context, req *Empty) (*ClearAlarmsResponse, error)
	ListSounds(ctx context.Context, req *Empty) (*SoundList, error)
	UploadSound(ctx context.Context, req *UploadSoundRequest) (*SoundResponse, error)
	RemoveSound(ctx context.Context, req *SoundRequest) (*SoundResponse, error)
	SelectSound(ctx context.Context, req *SoundRequest) (*Selection, error)
	PlaySound(ctx context.Context, req *SoundRequest) (*PlaybackResponse, error)
	TestSound(ctx context.Context, req *Empty) (*PlaybackResponse, error)
	StopSound(ctx context.Context, req *Empty) (*Empty, error)
	SetSelectedTime(ctx context.Context, req *SetSelectedTimeRequest) (*Selection, error)
	SetTheme(ctx context.Context, req *SetThemeRequest) (*Selection, error)
	GetStatus(ctx context.Context, req *Empty) (*StatusResponse, error)
	Snooze(ctx context.Context, req *Empty) (*AlarmResponse, error)
	Dismiss(ctx context.Context, req *Empty) (*AlarmResponse, error)
}

// ClockServiceDesc describes the service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ClockServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListAlarms, ClockServiceServer.ListAlarms),
		unary(MethodAddAlarm, ClockServiceServer.AddAlarm),
		unary(MethodRemoveAlarm, ClockServiceServer.RemoveAlarm),
		unary(MethodToggleAlarm, ClockServiceServer.ToggleAlarm),
		unary(MethodClearAlarms, ClockServiceServer.ClearAlarms),
		unary(MethodListSounds, ClockServiceServer.ListSounds),
		unary(MethodUploadSound, ClockServiceServer.UploadSound),
		unary(MethodRemoveSound, ClockServiceServer.RemoveSound),
		unary(MethodSelectSound, ClockServiceServer.SelectSound),
		unary(MethodPlaySound, ClockServiceServer.PlaySound),
		unary(MethodTestSound, ClockServiceServer.TestSound),
		unary(MethodStopSound, ClockServiceServer.StopSound),
		unary(MethodSetSelectedTime, ClockServiceServer.SetSelectedTime),
		unary(MethodSetTheme, ClockServiceServer.SetTheme),
		unary(MethodGetStatus, ClockServiceServer.GetStatus),
		unary(MethodSnooze, ClockServiceServer.Snooze),
		unary(MethodDismiss, ClockServiceServer.Dismiss),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmclock/v1/clock",
}

// RegisterClockServiceServer registers srv on s.
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&ClockServiceDesc, srv)
}

// FullMethod returns "/alarmclock.v1.ClockService/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary builds the method descriptor of a unary call.
func unary[Req, Resp any](
	method string,
	call func(ClockServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			server, ok := srv.(ClockServiceServer)
			if !ok {
				return nil, fmt.Errorf("unexpected server type %T", srv)
			}

			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req)) //nolint:forcetypeassert // Decoded above.
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}
