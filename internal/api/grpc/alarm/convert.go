package alarm

import (
	"cmp"
	"slices"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/notify"
)

func toAlarm(a domain.Alarm, sounds map[string]domain.Sound) Alarm {
	return Alarm{
		ID:        a.ID,
		Name:      a.Name,
		Time:      a.Time,
		SoundID:   a.SoundID,
		SoundName: domain.SoundLabel(a.SoundID, sounds),
		Enabled:   a.Enabled,
	}
}

func toSelection(s domain.Selection, soundName string) Selection {
	return Selection{
		Time:      s.Time,
		SoundID:   s.SoundID,
		SoundName: soundName,
		Theme:     s.Theme,
	}
}

func toSoundList(state *domain.State) *SoundList {
	sounds := make([]Sound, 0, len(state.Sounds)+1)
	sounds = append(sounds, Sound{
		ID:       domain.DefaultSoundID,
		Name:     domain.DefaultSoundName,
		Size:     "built-in",
		Selected: state.SelectedSound == domain.DefaultSoundID,
	})

	uploads := make([]Sound, 0, len(state.Sounds))
	for id, s := range state.Sounds {
		uploads = append(uploads, Sound{
			ID:       id,
			Name:     s.Name,
			Size:     s.Size,
			Selected: state.SelectedSound == id,
		})
	}

	slices.SortFunc(uploads, func(a, b Sound) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return &SoundList{
		Sounds:        append(sounds, uploads...),
		SelectedSound: state.SelectedSound,
	}
}

func toNotifications(items []notify.Notification) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		out = append(out, Notification{
			ID:        n.ID,
			Message:   n.Message,
			Severity:  string(n.Severity),
			CreatedAt: n.CreatedAt,
			ExpiresAt: n.ExpiresAt,
		})
	}

	return out
}
