package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

var errOffline = errors.New("daemon offline")

// fakeClient records calls made by the model.
type fakeClient struct {
	mu      sync.Mutex
	calls   []string
	status  *api.StatusResponse
	alarms  []api.Alarm
	sounds  *api.SoundList
	times   []string
	added   []string
	fail    error
	lastArg string
}

func (f *fakeClient) record(call, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
	f.lastArg = arg
}

func (f *fakeClient) ListAlarms(context.Context) ([]api.Alarm, error) {
	return f.alarms, f.fail
}

func (f *fakeClient) ListSounds(context.Context) (*api.SoundList, error) {
	return f.sounds, f.fail
}

func (f *fakeClient) Status(context.Context) (*api.StatusResponse, error) {
	return f.status, f.fail
}

func (f *fakeClient) AddAlarm(_ context.Context, name, hhmm, _ string) (api.Alarm, error) {
	f.record("AddAlarm", name)
	f.added = append(f.added, name+"@"+hhmm)

	return api.Alarm{Name: name, Time: hhmm}, nil
}

func (f *fakeClient) RemoveAlarm(_ context.Context, id string) (api.Alarm, error) {
	f.record("RemoveAlarm", id)

	return api.Alarm{ID: id}, nil
}

func (f *fakeClient) ToggleAlarm(_ context.Context, id string) (api.Alarm, error) {
	f.record("ToggleAlarm", id)

	return api.Alarm{ID: id}, nil
}

func (f *fakeClient) ClearAlarms(context.Context) (int, error) {
	f.record("ClearAlarms", "")

	return 0, nil
}

func (f *fakeClient) SelectSound(_ context.Context, id string) (*api.Selection, error) {
	f.record("SelectSound", id)

	return &api.Selection{SoundID: id}, nil
}

func (f *fakeClient) TestSound(context.Context) (bool, error) {
	f.record("TestSound", "")

	return true, nil
}

func (f *fakeClient) StopSound(context.Context) error {
	f.record("StopSound", "")

	return nil
}

func (f *fakeClient) SetSelectedTime(_ context.Context, hhmm string) (*api.Selection, error) {
	f.record("SetSelectedTime", hhmm)
	f.times = append(f.times, hhmm)

	return &api.Selection{Time: hhmm}, nil
}

func (f *fakeClient) SetTheme(_ context.Context, theme string) (*api.Selection, error) {
	f.record("SetTheme", theme)

	return &api.Selection{Theme: theme}, nil
}

func (f *fakeClient) Snooze(context.Context) (api.Alarm, error) {
	f.record("Snooze", "")

	return api.Alarm{}, nil
}

func (f *fakeClient) Dismiss(context.Context) (api.Alarm, error) {
	f.record("Dismiss", "")

	return api.Alarm{}, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds a key and runs the resulting command, if any.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)

	if cmd != nil {
		if out, isAction := cmd().(actionMsg); isAction {
			require.NoError(t, out.err)
		}
	}

	return model
}

func newTestModel(client *fakeClient) Model {
	if client.status == nil {
		client.status = &api.StatusResponse{
			Selection: api.Selection{Time: "06:15", SoundID: "default", SoundName: "Default Beep", Theme: "navy"},
			State:     "idle",
		}
	}

	m := New(Options{Context: context.Background(), Client: client})

	return m.applyFetch()
}

// applyFetch runs one fetch synchronously.
func (m Model) applyFetch() Model {
	next, _ := m.Update(m.fetchCmd()())

	return next.(Model) //nolint:forcetypeassert // Update always returns Model.
}

func TestModel_SnapshotAppliesSelection(t *testing.T) {
	t.Parallel()

	client := &fakeClient{alarms: []api.Alarm{{ID: "a1", Name: "Wake", Time: "07:00", Enabled: true}}}
	m := newTestModel(client)

	require.Equal(t, "navy", m.theme.Name)
	require.Equal(t, "06:15", m.timeField.Display())
	require.Len(t, m.alarms, 1)
	require.Contains(t, m.View(), "Wake")
	require.Contains(t, m.View(), "06:15")
}

func TestModel_TimeEntry(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	m := newTestModel(client)

	m = press(t, m, runes("t"))
	require.Equal(t, focusTime, m.focus)
	require.Equal(t, "00:00", m.timeField.Display())

	for _, r := range "0730" {
		m = press(t, m, runes(string(r)))
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, focusList, m.focus)
	require.Equal(t, []string{"07:00", "07:30"}, client.times)

	m = press(t, m, runes("t"))
	m = press(t, m, runes("9"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "09:00", m.timeField.Committed())
	require.Equal(t, []string{"07:00", "07:30", "09:00"}, client.times)
}

func TestModel_DigitFromListStartsEntry(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	m := newTestModel(client)

	m = press(t, m, runes("2"))
	require.Equal(t, focusTime, m.focus)
	require.Equal(t, "20:00", m.timeField.Display())
	require.Empty(t, client.times)

	m = press(t, m, runes("2"))
	require.Equal(t, "22:00", m.timeField.Display())
	require.Equal(t, []string{"22:00"}, client.times)
}

func TestModel_AddUsesNameAndTime(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	m := newTestModel(client)

	m = press(t, m, runes("n"))
	require.Equal(t, focusName, m.focus)

	for _, r := range "Gym" {
		m = press(t, m, runes(string(r)))
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, runes("a"))

	require.Equal(t, []string{"Gym@06:15"}, client.added)
	require.Empty(t, m.nameInput.Value())
}

func TestModel_ListKeys(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		alarms: []api.Alarm{
			{ID: "a1", Name: "One", Time: "07:00", Enabled: true},
			{ID: "a2", Name: "Two", Time: "08:00"},
		},
		sounds: &api.SoundList{
			Sounds:        []api.Sound{{ID: "default"}, {ID: "sound_1"}},
			SelectedSound: "default",
		},
	}
	m := newTestModel(client)

	m = press(t, m, runes("j"))
	m = press(t, m, runes(" "))
	require.Equal(t, "a2", client.lastArg)

	m = press(t, m, runes("k"))
	m = press(t, m, runes("x"))
	require.Equal(t, "a1", client.lastArg)

	m = press(t, m, runes("S"))
	require.Equal(t, "sound_1", client.lastArg)

	m = press(t, m, runes("T"))
	require.Equal(t, "amber", client.lastArg)

	m = press(t, m, runes("C"))
	m = press(t, m, runes("p"))
	_ = press(t, m, runes("P"))

	require.Equal(t, []string{
		"ToggleAlarm", "RemoveAlarm", "SelectSound", "SetTheme", "ClearAlarms", "TestSound", "StopSound",
	}, client.calls)
}

func TestModel_RingDialog(t *testing.T) {
	t.Parallel()

	client := &fakeClient{status: &api.StatusResponse{
		Selection: api.Selection{Time: "06:15", Theme: "dark"},
		State:     "ringing",
		Ringing:   &api.Alarm{ID: "a1", Name: "Wake", Time: "06:15"},
	}}
	m := newTestModel(client)

	view := m.View()
	require.Contains(t, view, "ALARM")
	require.Contains(t, view, "Wake")

	// List keys are inert while ringing.
	m = press(t, m, runes("x"))
	require.Empty(t, client.calls)

	m = press(t, m, runes("s"))
	_ = press(t, m, runes("d"))
	require.Equal(t, []string{"Snooze", "Dismiss"}, client.calls)
}

func TestModel_FetchError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	m := newTestModel(client)

	client.fail = errOffline
	m = m.applyFetch()

	require.ErrorIs(t, m.err, errOffline)
	require.Contains(t, m.View(), "daemon offline")
	require.Equal(t, "06:15", m.timeField.Display())
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeClient{})

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestGetTheme(t *testing.T) {
	t.Parallel()

	require.Equal(t, "amber", GetTheme("amber").Name)
	require.Equal(t, "dark", GetTheme("neon").Name)
}

func TestTheme_Styles(t *testing.T) {
	t.Parallel()

	for _, id := range domain.Themes() {
		theme := GetTheme(id)
		require.Equal(t, id, theme.Name)

		styles := theme.Styles()
		require.Equal(t, lipgloss.Color(theme.Text), styles.Clock.GetForeground())
		require.Equal(t, lipgloss.Color(theme.Accent), styles.FieldFocus.GetForeground())
		require.Equal(t, lipgloss.Color(theme.Danger), styles.Error.GetForeground())
		require.NotEmpty(t, styles.Clock.Render("07:30"))
	}
}
