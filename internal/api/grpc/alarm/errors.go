package alarm

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/store"
)

// errRequestRequired is reported for nil requests.
var errRequestRequired = status.Error(codes.InvalidArgument, "request is required")

// toStatus maps business errors to gRPC status errors.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	var code codes.Code

	switch {
	case errors.Is(err, store.ErrAlarmNotFound), errors.Is(err, store.ErrSoundNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrUnknownTheme),
		errors.Is(err, sound.ErrNotAudio),
		errors.Is(err, sound.ErrEmptyFile),
		errors.Is(err, sound.ErrFileTooLarge),
		errors.Is(err, store.ErrEmptySoundID):
		code = codes.InvalidArgument
	case errors.Is(err, scheduler.ErrNotRinging):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Internal
	}

	return status.Error(code, err.Error())
}
