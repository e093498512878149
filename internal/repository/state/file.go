package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Repository defines persistence operations for the alarm clock state.
type Repository interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
}

// FileRepository persists the state to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the state file does not exist yet.
	ErrNotFound = errors.New("state not found")
	// ErrCorrupt is returned when the state file cannot be decoded.
	ErrCorrupt = errors.New("state file is corrupt")
	// errStateIsNotSet is returned when Save receives nil.
	errStateIsNotSet = errors.New("state is not set")
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the state file.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the state from disk. Missing fields are filled with defaults.
func (r *FileRepository) Load(_ context.Context) (*domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state domain.State
	if err = json.Unmarshal(contents, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	state.Normalize()

	return &state, nil
}

// Save writes the state to disk. The document is written to a temporary file
// in the same directory and renamed over the target.
func (r *FileRepository) Save(_ context.Context, state *domain.State) error {
	if state == nil {
		return errStateIsNotSet
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary state file: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		_ = os.Remove(tmpName) //nolint:errcheck // Already renamed on success.
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // The write error is more relevant.

		return fmt.Errorf("write state file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}

	if err = os.Chmod(tmpName, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod state file: %w", err)
	}

	if err = os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
