package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/alarm-clock/internal/sound"
)

// ListSounds prints the sound table.
func (s *Session) ListSounds(ctx context.Context) error {
	list, err := s.client.ListSounds(ctx)
	if err != nil {
		return err
	}

	s.printf("%s\n", renderSounds(list))

	return nil
}

// UploadSound reads an audio file from disk and uploads it.
func (s *Session) UploadSound(ctx context.Context, path string) error {
	mediaType := sound.DetectMediaType(path)
	if err := sound.CheckMediaType(mediaType); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("read sound file: %w", err)
	}

	if err = sound.CheckSize(info.Size(), s.settings.MaxUploadSize); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sound file: %w", err)
	}

	snd, err := s.client.UploadSound(ctx, filepath.Base(path), mediaType, data)
	if err != nil {
		return err
	}

	s.printf("Sound uploaded successfully! %s (%s, id %s)\n", snd.Name, snd.Size, snd.ID)

	return nil
}

// RemoveSound deletes an uploaded sound.
func (s *Session) RemoveSound(ctx context.Context, id string) error {
	snd, err := s.client.RemoveSound(ctx, id)
	if err != nil {
		return err
	}

	s.printf("Sound %q deleted\n", snd.Name)

	return nil
}

// SelectSound selects the default sound for new alarms.
func (s *Session) SelectSound(ctx context.Context, id string) error {
	selection, err := s.client.SelectSound(ctx, id)
	if err != nil {
		return err
	}

	s.printf("Selected sound: %s\n", selection.SoundName)

	return nil
}

// PlaySound previews a sound.
func (s *Session) PlaySound(ctx context.Context, id string) error {
	playing, err := s.client.PlaySound(ctx, id)
	if err != nil {
		return err
	}

	s.printf("%s\n", playbackLine("Playing sound preview...", playing))

	return nil
}

// TestSound previews the selected sound.
func (s *Session) TestSound(ctx context.Context) error {
	playing, err := s.client.TestSound(ctx)
	if err != nil {
		return err
	}

	s.printf("%s\n", playbackLine("Testing alarm sound...", playing))

	return nil
}

// StopSound stops any playback.
func (s *Session) StopSound(ctx context.Context) error {
	if err := s.client.StopSound(ctx); err != nil {
		return err
	}

	s.printf("Sound stopped\n")

	return nil
}

func playbackLine(message string, playing bool) string {
	if playing {
		return message
	}

	return message + " (sound could not be played)"
}
