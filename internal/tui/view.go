package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/notify"
)

// View implements tea.Model.
func (m Model) View() string {
	if ring := m.ringing(); ring != nil {
		return m.renderRing(ring)
	}

	sections := []string{
		m.renderClock(),
		m.renderForm(),
		m.renderAlarms(),
		m.renderNotice(),
		m.renderHelp(),
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderClock() string {
	clock := m.styles.Clock.Render(m.now.Format(time.TimeOnly))
	date := m.styles.Date.Render(strings.ToUpper(m.now.Format("Mon, Jan 2")))

	return lipgloss.JoinHorizontal(lipgloss.Center, clock, "   ", date) + "\n"
}

func (m Model) renderForm() string {
	timeStyle, nameStyle := m.styles.Field, m.styles.Field

	switch m.focus {
	case focusTime:
		timeStyle = m.styles.FieldFocus
	case focusName:
		nameStyle = m.styles.FieldFocus
	}

	soundName := "…"
	if m.status != nil {
		soundName = m.status.Selection.SoundName
	}

	field := func(label string, style lipgloss.Style, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left, m.styles.Label.Render(label), style.Render(value))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		field("TIME", timeStyle, m.timeField.Display()),
		" ",
		field("NAME", nameStyle, m.nameView()),
		" ",
		field("SOUND", m.styles.Field, soundName),
	) + "\n"
}

func (m Model) nameView() string {
	if m.focus == focusName {
		return m.nameInput.View()
	}

	if v := m.nameInput.Value(); v != "" {
		return v
	}

	return m.styles.Muted.Render(m.nameInput.Placeholder)
}

func (m Model) renderAlarms() string {
	var b strings.Builder

	b.WriteString(m.styles.Label.Render("YOUR ALARMS"))
	b.WriteString("\n")

	if len(m.alarms) == 0 {
		b.WriteString(m.styles.Muted.Render("No alarms yet"))
		b.WriteString("\n")

		return b.String()
	}

	for i, a := range m.alarms {
		b.WriteString(m.renderAlarm(i, a))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderAlarm(i int, a api.Alarm) string {
	cursor := "  "
	if i == m.cursor && m.focus == focusList {
		cursor = m.styles.Selected.Render("▸ ")
	}

	dot := m.styles.Enabled.Render("●")
	text := m.styles.Text

	if !a.Enabled {
		dot = m.styles.Disabled.Render("○")
		text = m.styles.Disabled
	}

	return cursor + dot + " " + text.Render(fmt.Sprintf("%s  %-20s %s", a.Time, a.Name, a.SoundName))
}

func (m Model) renderNotice() string {
	if m.err != nil {
		return m.styles.Error.Render("Error: "+m.err.Error()) + "\n"
	}

	if m.status == nil || len(m.status.Notifications) == 0 {
		return "\n"
	}

	n := m.status.Notifications[len(m.status.Notifications)-1]

	return m.severityStyle(n.Severity).Render(n.Message) + "\n"
}

func (m Model) severityStyle(severity string) lipgloss.Style {
	switch notify.Severity(severity) {
	case notify.SeverityDanger:
		return m.styles.Danger
	case notify.SeverityWarning:
		return m.styles.Warning
	default:
		return m.styles.Success
	}
}

func (m Model) renderHelp() string {
	if m.focus == focusTime {
		return m.help.View(editHelp{keys: m.keys})
	}

	return m.help.View(m.keys)
}

func (m Model) renderRing(a *api.Alarm) string {
	dialog := m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.DialogHead.Render("ALARM"),
		"",
		m.styles.Clock.Render(a.Name),
		m.styles.Clock.Render(a.Time),
		"",
		m.help.View(ringHelp{keys: m.keys}),
	))

	if m.width == 0 || m.height == 0 {
		return dialog
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
