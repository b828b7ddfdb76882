// Package domain provides shared domain types for the pacebell timer.
// These types are used across all internal packages to ensure consistent
// data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON and YAML field names use snake_case.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/pacebell/pacebell/internal/errors"
)

// Task represents a single timed task in the sequential run.
// Durations and intervals are whole seconds; countdown granularity is
// one second, so sub-second values are not representable.
//
// Example YAML representation:
//
//	- id: "6f1a2d0e-..."
//	  name: "deep work"
//	  duration: 1500
//	  reminder_interval: 300
//	  reminder_sound: "chime"
//	  completion_sound: "gong"
type Task struct {
	// ID is the opaque unique identifier for the task.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable display name, used in announcements
	// and notification titles.
	Name string `json:"name" yaml:"name"`

	// Duration is the total task duration in seconds. Must be positive.
	Duration int `json:"duration" yaml:"duration"`

	// ReminderInterval is the periodic "still working" reminder interval
	// in seconds. Zero disables reminders.
	ReminderInterval int `json:"reminder_interval" yaml:"reminder_interval"`

	// ReminderSoundID selects the reminder cue from the sound catalog.
	// Empty means the catalog default.
	ReminderSoundID string `json:"reminder_sound,omitempty" yaml:"reminder_sound,omitempty"`

	// CompletionSoundID selects the completion cue from the sound catalog.
	// Empty means the catalog default.
	CompletionSoundID string `json:"completion_sound,omitempty" yaml:"completion_sound,omitempty"`
}

// NewTask creates a Task with a generated id and validates it.
func NewTask(name string, duration, reminderInterval int) (Task, error) {
	t := Task{
		ID:               uuid.NewString(),
		Name:             name,
		Duration:         duration,
		ReminderInterval: reminderInterval,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the task fields against the data model invariants.
func (t Task) Validate() error {
	if t.Name == "" {
		return errors.ErrTaskNameEmpty
	}
	if t.Duration <= 0 {
		return errors.ErrTaskDurationInvalid
	}
	if t.ReminderInterval < 0 {
		return errors.ErrReminderIntervalInvalid
	}
	return nil
}

// RemindersDisabled reports whether periodic reminders are off for this task.
func (t Task) RemindersDisabled() bool {
	return t.ReminderInterval == 0
}

// DurationSpan returns the task duration as a time.Duration.
func (t Task) DurationSpan() time.Duration {
	return time.Duration(t.Duration) * time.Second
}

// ValidateList checks that every task is valid and that ids are unique
// within the list.
func ValidateList(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "task %q", t.Name)
		}
		if seen[t.ID] {
			return errors.Wrapf(errors.ErrDuplicateTaskID, "task %q", t.Name)
		}
		seen[t.ID] = true
	}
	return nil
}
