// Package usagelog records command usage behind a narrow append/drain/clear
// interface, decoupling the bot from the storage mechanism.
package usagelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tartampluch/go-cumplebot/internal/config"
)

// Entry is one logged command invocation.
type Entry struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Command   string `json:"command"`
}

// Recorder abstracts persistence of usage entries. Implementations can be
// file-based, database-backed, or in-memory for tests.
type Recorder interface {
	Append(entry Entry) error
	DrainAll() ([]Entry, error)
	Clear() error
}

// FileRecorder persists entries as a flat JSON array. Writes happen
// synchronously inside the single command-handling path, so no locking is
// needed beyond that convention.
type FileRecorder struct {
	Path string
}

// NewFileRecorder creates a FileRecorder at the given path.
func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{Path: path}
}

// Append reads the current array, appends the entry and writes it back.
// The read-modify-write cycle matches the single-writer convention.
func (r *FileRecorder) Append(entry Entry) error {
	entries, err := r.DrainAll()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrUsageWrite, err)
	}
	if err := os.WriteFile(r.Path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrUsageWrite, err)
	}
	return nil
}

// DrainAll returns every logged entry. A missing file is an empty log,
// not an error.
func (r *FileRecorder) DrainAll() ([]Entry, error) {
	data, err := os.ReadFile(r.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrUsageRead, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrUsageRead, err)
	}
	return entries, nil
}

// Clear removes the log file. Clearing an absent log is a no-op.
func (r *FileRecorder) Clear() error {
	err := os.Remove(r.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
