package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/errors"
)

// taskFile is the on-disk shape of the task list.
type taskFile struct {
	Tasks []domain.Task `yaml:"tasks"`
}

// LoadTasks reads the task list file. A missing file yields an empty list;
// the file is startup input, nothing writes it back during a run.
func LoadTasks(path string) ([]domain.Task, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // Path comes from config, not user input over a trust boundary
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading task list %s", path)
	}

	var f taskFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrapf(errors.ErrTasksFileInvalid, "parsing %s: %v", path, err)
	}

	for i := range f.Tasks {
		// Hand-written files tend to omit ids; generate one so every
		// entry is addressable by remove and edit.
		if f.Tasks[i].ID == "" {
			f.Tasks[i].ID = uuid.NewString()
		}
		if err := f.Tasks[i].Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrTasksFileInvalid, "task %d in %s: %v", i, path, err)
		}
	}
	if err := domain.ValidateList(f.Tasks); err != nil {
		return nil, errors.Wrapf(errors.ErrTasksFileInvalid, "%s: %v", path, err)
	}

	return f.Tasks, nil
}

// SaveTasks writes the task list file, creating its directory when needed.
// Used by the add command; a running sequencer never persists state.
func SaveTasks(path string, tasks []domain.Task) error {
	raw, err := yaml.Marshal(taskFile{Tasks: tasks})
	if err != nil {
		return errors.Wrap(err, "marshaling task list")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create task list directory: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "writing task list %s", path)
	}
	return nil
}
