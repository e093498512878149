package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
)

//nolint:gochecknoglobals // Read-only styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// renderAlarms renders alarms with their 1-based positions.
func renderAlarms(alarms []api.Alarm) string {
	disabled := make(map[int]bool, len(alarms))

	t := newTable("#", "TIME", "NAME", "SOUND", "STATE", "ID")
	for i, a := range alarms {
		disabled[i] = !a.Enabled
		t.Row(strconv.Itoa(i+1), a.Time, a.Name, a.SoundName, enabledLabel(a.Enabled), a.ID)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case disabled[row]:
			return mutedStyle
		default:
			return cellStyle
		}
	})

	return t.Render()
}

// renderSounds renders the sound catalogue, marking the selection.
func renderSounds(list *api.SoundList) string {
	t := newTable("", "NAME", "SIZE", "ID")
	for _, snd := range list.Sounds {
		mark := ""
		if snd.Selected {
			mark = "*"
		}

		t.Row(mark, snd.Name, snd.Size, snd.ID)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}

		return cellStyle
	})

	return t.Render()
}

// renderStatus renders the daemon status as aligned key/value lines.
func renderStatus(status *api.StatusResponse) string {
	var b strings.Builder

	line := func(key, value string) {
		fmt.Fprintf(&b, "%-15s %s\n", key+":", value)
	}

	line("Server time", status.ServerTime.Local().Format(time.TimeOnly))
	line("Version", status.Version)
	line("Selected time", status.Selection.Time)
	line("Selected sound", status.Selection.SoundName)
	line("Theme", status.Selection.Theme)
	line("Playback", status.Playback)

	if status.Ringing != nil {
		line("State", ringingLine(status.Ringing.Name, status.Ringing.Time))
	} else {
		line("State", status.State)
	}

	for _, n := range status.Notifications {
		line("Notice", fmt.Sprintf("[%s] %s", n.Severity, n.Message))
	}

	return strings.TrimRight(b.String(), "\n")
}

func ringingLine(name, hhmm string) string {
	return fmt.Sprintf("RINGING: %q (%s)", name, hhmm)
}
