package alarm

import (
	"context"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/notify"
	"github.com/oshokin/alarm-clock/internal/version"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Snapshot(ctx context.Context) *domain.State
	AddAlarm(ctx context.Context, name, hhmm, soundID string) (domain.Alarm, error)
	RemoveAlarm(ctx context.Context, id string) (domain.Alarm, error)
	ToggleAlarm(ctx context.Context, id string) (domain.Alarm, error)
	ClearAlarms(ctx context.Context) (int, error)
	UploadSound(ctx context.Context, fileName, mediaType string, data []byte) (string, domain.Sound, error)
	RemoveSound(ctx context.Context, id string) (domain.Sound, error)
	SelectSound(ctx context.Context, id string) (string, error)
	PlaySound(ctx context.Context, id string) bool
	TestSound(ctx context.Context) bool
	StopSound(ctx context.Context)
	SetSelectedTime(ctx context.Context, hhmm string) error
	SetTheme(ctx context.Context, theme string) error
	Status(ctx context.Context) domain.Status
	Notifications(ctx context.Context) []notify.Notification
	Snooze(ctx context.Context) (domain.Alarm, error)
	Dismiss(ctx context.Context) (domain.Alarm, error)
}

// Server implements the ClockService gRPC API.
type Server struct {
	// service provides the business logic.
	service Service
}

var _ ClockServiceServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ListAlarms returns every alarm in list order.
func (s *Server) ListAlarms(ctx context.Context, _ *Empty) (*AlarmList, error) {
	state := s.service.Snapshot(ctx)

	alarms := make([]Alarm, 0, len(state.Alarms))
	for _, a := range state.Alarms {
		alarms = append(alarms, toAlarm(a, state.Sounds))
	}

	return &AlarmList{Alarms: alarms}, nil
}

// AddAlarm creates an alarm from the selection, optionally updating it first.
func (s *Server) AddAlarm(ctx context.Context, req *AddAlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	a, err := s.service.AddAlarm(ctx, req.Name, req.Time, req.SoundID)
	if err != nil {
		return nil, toStatus(err)
	}

	return s.alarmResponse(ctx, a), nil
}

// RemoveAlarm deletes an alarm.
func (s *Server) RemoveAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	a, err := s.service.RemoveAlarm(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return s.alarmResponse(ctx, a), nil
}

// ToggleAlarm flips the enabled flag.
func (s *Server) ToggleAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	a, err := s.service.ToggleAlarm(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return s.alarmResponse(ctx, a), nil
}

// ClearAlarms deletes every alarm.
func (s *Server) ClearAlarms(ctx context.Context, _ *Empty) (*ClearAlarmsResponse, error) {
	n, err := s.service.ClearAlarms(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &ClearAlarmsResponse{Cleared: n}, nil
}

// ListSounds returns the default tone followed by uploads sorted by name.
func (s *Server) ListSounds(ctx context.Context, _ *Empty) (*SoundList, error) {
	return toSoundList(s.service.Snapshot(ctx)), nil
}

// UploadSound stores an audio file.
func (s *Server) UploadSound(ctx context.Context, req *UploadSoundRequest) (*SoundResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	id, sound, err := s.service.UploadSound(ctx, req.FileName, req.MediaType, req.Data)
	if err != nil {
		return nil, toStatus(err)
	}

	return &SoundResponse{Sound: Sound{ID: id, Name: sound.Name, Size: sound.Size, Selected: true}}, nil
}

// RemoveSound deletes a stored sound.
func (s *Server) RemoveSound(ctx context.Context, req *SoundRequest) (*SoundResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	sound, err := s.service.RemoveSound(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &SoundResponse{Sound: Sound{ID: req.ID, Name: sound.Name, Size: sound.Size}}, nil
}

// SelectSound sets the default sound.
func (s *Server) SelectSound(ctx context.Context, req *SoundRequest) (*Selection, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	if _, err := s.service.SelectSound(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	return s.selection(ctx), nil
}

// PlaySound previews a sound.
func (s *Server) PlaySound(ctx context.Context, req *SoundRequest) (*PlaybackResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	return &PlaybackResponse{Playing: s.service.PlaySound(ctx, req.ID)}, nil
}

// TestSound previews the selected sound.
func (s *Server) TestSound(ctx context.Context, _ *Empty) (*PlaybackResponse, error) {
	return &PlaybackResponse{Playing: s.service.TestSound(ctx)}, nil
}

// StopSound stops playback.
func (s *Server) StopSound(ctx context.Context, _ *Empty) (*Empty, error) {
	s.service.StopSound(ctx)

	return new(Empty), nil
}

// SetSelectedTime sets the default time.
func (s *Server) SetSelectedTime(ctx context.Context, req *SetSelectedTimeRequest) (*Selection, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	if err := s.service.SetSelectedTime(ctx, req.Time); err != nil {
		return nil, toStatus(err)
	}

	return s.selection(ctx), nil
}

// SetTheme sets the theme.
func (s *Server) SetTheme(ctx context.Context, req *SetThemeRequest) (*Selection, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	if err := s.service.SetTheme(ctx, req.Theme); err != nil {
		return nil, toStatus(err)
	}

	return s.selection(ctx), nil
}

// GetStatus returns the daemon status.
func (s *Server) GetStatus(ctx context.Context, _ *Empty) (*StatusResponse, error) {
	st := s.service.Status(ctx)

	resp := &StatusResponse{
		Selection:     toSelection(st.Selection, st.SelectedSoundName),
		State:         "idle",
		RingingSince:  st.RingingSince,
		Playback:      st.Playback,
		PlayingSound:  st.PlayingSound,
		Notifications: toNotifications(s.service.Notifications(ctx)),
		ServerTime:    time.Now(),
		Version:       version.Short(),
	}

	if st.Ringing != nil {
		ringing := toAlarm(*st.Ringing, s.service.Snapshot(ctx).Sounds)
		resp.Ringing = &ringing
		resp.State = "ringing"
	}

	return resp, nil
}

// Snooze snoozes the ringing alarm and returns the new alarm.
func (s *Server) Snooze(ctx context.Context, _ *Empty) (*AlarmResponse, error) {
	a, err := s.service.Snooze(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return s.alarmResponse(ctx, a), nil
}

// Dismiss dismisses the ringing alarm and returns it.
func (s *Server) Dismiss(ctx context.Context, _ *Empty) (*AlarmResponse, error) {
	a, err := s.service.Dismiss(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return s.alarmResponse(ctx, a), nil
}

func (s *Server) alarmResponse(ctx context.Context, a domain.Alarm) *AlarmResponse {
	return &AlarmResponse{Alarm: toAlarm(a, s.service.Snapshot(ctx).Sounds)}
}

func (s *Server) selection(ctx context.Context) *Selection {
	state := s.service.Snapshot(ctx)
	selection := state.Selection()

	result := toSelection(selection, domain.SoundLabel(selection.SoundID, state.Sounds))

	return &result
}
