package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/timeinput"
)

const (
	// ClockInterval is the refresh period of the clock display.
	ClockInterval = 100 * time.Millisecond
	// DefaultPollInterval is the status polling period.
	DefaultPollInterval = time.Second

	nameCharLimit = 40
)

// Client is the subset of the daemon client used by the UI.
type Client interface {
	ListAlarms(ctx context.Context) ([]api.Alarm, error)
	ListSounds(ctx context.Context) (*api.SoundList, error)
	Status(ctx context.Context) (*api.StatusResponse, error)
	AddAlarm(ctx context.Context, name, hhmm, soundID string) (api.Alarm, error)
	RemoveAlarm(ctx context.Context, id string) (api.Alarm, error)
	ToggleAlarm(ctx context.Context, id string) (api.Alarm, error)
	ClearAlarms(ctx context.Context) (int, error)
	SelectSound(ctx context.Context, id string) (*api.Selection, error)
	TestSound(ctx context.Context) (bool, error)
	StopSound(ctx context.Context) error
	SetSelectedTime(ctx context.Context, hhmm string) (*api.Selection, error)
	SetTheme(ctx context.Context, theme string) (*api.Selection, error)
	Snooze(ctx context.Context) (api.Alarm, error)
	Dismiss(ctx context.Context) (api.Alarm, error)
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       Client
	PollInterval time.Duration
}

// focus is the widget receiving keystrokes.
type focus int

const (
	focusList focus = iota
	focusTime
	focusName
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	client       Client
	pollInterval time.Duration

	// UI state
	theme  Theme
	styles Styles
	keys   keyMap
	help   help.Model
	focus  focus
	width  int
	height int
	now    time.Time

	// Inputs
	timeField *timeinput.Machine
	nameInput textinput.Model

	// Data state
	status      *api.StatusResponse
	alarms      []api.Alarm
	sounds      *api.SoundList
	cursor      int
	lastUpdated time.Time
	err         error
}

// New creates the model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	name := textinput.New()
	name.Placeholder = domain.DefaultName
	name.CharLimit = nameCharLimit
	name.Prompt = ""

	theme := GetTheme(domain.DefaultTheme)

	return Model{
		ctx:          ctx,
		client:       opts.Client,
		pollInterval: pollInterval,
		theme:        theme,
		styles:       theme.Styles(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		now:          time.Now(),
		timeField:    timeinput.New(domain.DefaultTime, nil),
		nameInput:    name,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		clockCmd(),
		pollCmd(m.pollInterval),
		m.fetchCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		return m, nil

	case clockMsg:
		m.now = time.Time(msg)

		return m, clockCmd()

	case pollMsg:
		return m, tea.Batch(m.fetchCmd(), pollCmd(m.pollInterval))

	case snapshotMsg:
		m.applySnapshot(msg)

		return m, nil

	case actionMsg:
		m.err = msg.err

		return m, m.fetchCmd()
	}

	return m, nil
}

// applySnapshot stores a poll result.
func (m *Model) applySnapshot(msg snapshotMsg) {
	if msg.err != nil {
		m.err = msg.err

		return
	}

	m.err = nil
	m.status = msg.status
	m.alarms = msg.alarms
	m.sounds = msg.sounds
	m.lastUpdated = m.now

	m.cursor = min(m.cursor, max(len(m.alarms)-1, 0))

	if msg.status != nil {
		if m.theme.Name != msg.status.Selection.Theme {
			m.theme = GetTheme(msg.status.Selection.Theme)
			m.styles = m.theme.Styles()
		}

		if !m.timeField.Editing() {
			m.timeField.Reset(msg.status.Selection.Time)
		}
	}
}

// ringing returns the ringing alarm, if any.
func (m Model) ringing() *api.Alarm {
	if m.status == nil {
		return nil
	}

	return m.status.Ringing
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The ring dialog is modal.
	if m.ringing() != nil {
		return m.handleRingKey(msg)
	}

	switch m.focus {
	case focusTime:
		return m.handleTimeKey(msg)
	case focusName:
		return m.handleNameKey(msg)
	}

	return m.handleListKey(msg)
}

func (m Model) handleRingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Snooze):
		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.Snooze(ctx)

			return err
		})
	case key.Matches(msg, m.keys.Dismiss):
		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.Dismiss(ctx)

			return err
		})
	}

	return m, nil
}

// handleTimeKey drives the time field. Every change of the committed value
// is pushed to the daemon as the selected time.
func (m Model) handleTimeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.timeField.Committed()

	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Cancel):
		m.timeField.Blur()
		m.focus = focusList
	case key.Matches(msg, m.keys.Backspace):
		m.timeField.Backspace()
	case key.Matches(msg, m.keys.Clear):
		m.timeField.Delete()
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.timeField.Key(r)
		}
	}

	if after := m.timeField.Committed(); after != before {
		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.SetSelectedTime(ctx, after)

			return err
		})
	}

	return m, nil
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.nameInput.Blur()
		m.focus = focusList

		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.nameInput.Blur()
		m.nameInput.Reset()
		m.focus = focusList

		return m, nil
	}

	var cmd tea.Cmd

	m.nameInput, cmd = m.nameInput.Update(msg)

	return m, cmd
}

//nolint:cyclop // One case per binding.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.EditTime):
		m.timeField.Focus()
		m.focus = focusTime

	case key.Matches(msg, m.keys.EditName):
		m.focus = focusName

		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.Add):
		name, hhmm := m.nameInput.Value(), m.timeField.Committed()
		m.nameInput.Reset()

		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.AddAlarm(ctx, name, hhmm, "")

			return err
		})

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.alarms)-1, 0))

	case key.Matches(msg, m.keys.Toggle):
		if a, ok := m.selectedAlarm(); ok {
			return m, m.action(func(ctx context.Context) error {
				_, err := m.client.ToggleAlarm(ctx, a.ID)

				return err
			})
		}

	case key.Matches(msg, m.keys.Delete):
		if a, ok := m.selectedAlarm(); ok {
			return m, m.action(func(ctx context.Context) error {
				_, err := m.client.RemoveAlarm(ctx, a.ID)

				return err
			})
		}

	case key.Matches(msg, m.keys.ClearAll):
		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.ClearAlarms(ctx)

			return err
		})

	case key.Matches(msg, m.keys.TestSound):
		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.TestSound(ctx)

			return err
		})

	case key.Matches(msg, m.keys.StopSound):
		return m, m.action(m.client.StopSound)

	case key.Matches(msg, m.keys.NextSound):
		next := m.nextSoundID()

		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.SelectSound(ctx, next)

			return err
		})

	case key.Matches(msg, m.keys.Theme):
		next := domain.NextTheme(m.theme.Name)

		return m, m.action(func(ctx context.Context) error {
			_, err := m.client.SetTheme(ctx, next)

			return err
		})

	case isDigitKey(msg):
		// Typing a digit anywhere starts a fresh time entry.
		m.focus = focusTime

		return m.handleTimeKey(msg)
	}

	return m, nil
}

func isDigitKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9'
}

func (m Model) selectedAlarm() (api.Alarm, bool) {
	if m.cursor < 0 || m.cursor >= len(m.alarms) {
		return api.Alarm{}, false
	}

	return m.alarms[m.cursor], true
}

// nextSoundID returns the sound after the selected one, wrapping around.
func (m Model) nextSoundID() string {
	if m.sounds == nil || len(m.sounds.Sounds) == 0 {
		return domain.DefaultSoundID
	}

	for i, snd := range m.sounds.Sounds {
		if snd.ID == m.sounds.SelectedSound {
			return m.sounds.Sounds[(i+1)%len(m.sounds.Sounds)].ID
		}
	}

	return m.sounds.Sounds[0].ID
}

// Messages

type clockMsg time.Time

type pollMsg time.Time

type snapshotMsg struct {
	status *api.StatusResponse
	alarms []api.Alarm
	sounds *api.SoundList
	err    error
}

type actionMsg struct {
	err error
}

// Commands

func clockCmd() tea.Cmd {
	return tea.Tick(ClockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func pollCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m Model) fetchCmd() tea.Cmd {
	ctx, client := m.ctx, m.client

	return func() tea.Msg {
		status, err := client.Status(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}

		alarms, err := client.ListAlarms(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}

		sounds, err := client.ListSounds(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}

		return snapshotMsg{status: status, alarms: alarms, sounds: sounds}
	}
}

// action runs one daemon call off the update loop.
func (m Model) action(call func(context.Context) error) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		return actionMsg{err: call(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)

	programOptions := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOptions = append(programOptions, tea.WithContext(opts.Context))
	}

	_, err := tea.NewProgram(m, programOptions...).Run()

	return err
}
