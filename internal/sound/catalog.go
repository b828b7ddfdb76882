// Package sound provides the sound catalog and audio playback for pacebell.
//
// The catalog is a fixed, ordered list of cue sounds per purpose; playback
// shells out to whichever OS audio player is installed and degrades to the
// terminal bell when none is found.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/sequencer, internal/tui, internal/cli
package sound

import (
	"runtime"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/domain"
	"github.com/pacebell/pacebell/internal/errors"
)

// Catalog is the ordered set of cue sounds, grouped by purpose. The first
// entry of each purpose is the default used when a task names no sound or
// names one that does not exist.
type Catalog struct {
	reminder   []domain.Sound
	completion []domain.Sound
}

// NewCatalog builds a catalog from explicit entries. Both lists must be
// non-empty so a default always exists.
func NewCatalog(reminder, completion []domain.Sound) (*Catalog, error) {
	if len(reminder) == 0 || len(completion) == 0 {
		return nil, errors.Wrap(errors.ErrSoundNotFound, "catalog requires at least one sound per purpose")
	}
	return &Catalog{reminder: reminder, completion: completion}, nil
}

// DefaultCatalog returns the built-in catalog for the current platform.
func DefaultCatalog() *Catalog {
	if runtime.GOOS == "darwin" {
		return &Catalog{
			reminder: []domain.Sound{
				{ID: "ping", Name: "Ping", AssetRef: "/System/Library/Sounds/Ping.aiff"},
				{ID: "tink", Name: "Tink", AssetRef: "/System/Library/Sounds/Tink.aiff"},
				{ID: "pop", Name: "Pop", AssetRef: "/System/Library/Sounds/Pop.aiff"},
			},
			completion: []domain.Sound{
				{ID: "glass", Name: "Glass", AssetRef: "/System/Library/Sounds/Glass.aiff"},
				{ID: "hero", Name: "Hero", AssetRef: "/System/Library/Sounds/Hero.aiff"},
				{ID: "funk", Name: "Funk", AssetRef: "/System/Library/Sounds/Funk.aiff"},
			},
		}
	}

	return &Catalog{
		reminder: []domain.Sound{
			{ID: "bell", Name: "Bell", AssetRef: "/usr/share/sounds/freedesktop/stereo/bell.oga"},
			{ID: "message", Name: "Message", AssetRef: "/usr/share/sounds/freedesktop/stereo/message.oga"},
			{ID: "dialog", Name: "Dialog", AssetRef: "/usr/share/sounds/freedesktop/stereo/dialog-information.oga"},
		},
		completion: []domain.Sound{
			{ID: "complete", Name: "Complete", AssetRef: "/usr/share/sounds/freedesktop/stereo/complete.oga"},
			{ID: "service-login", Name: "Service Login", AssetRef: "/usr/share/sounds/freedesktop/stereo/service-login.oga"},
			{ID: "bell", Name: "Bell", AssetRef: "/usr/share/sounds/freedesktop/stereo/bell.oga"},
		},
	}
}

// Resolve returns the sound with the given id for a purpose, falling back
// to the purpose's first entry when the id is empty or unknown.
func (c *Catalog) Resolve(purpose constants.SoundPurpose, id string) domain.Sound {
	list := c.list(purpose)
	for _, s := range list {
		if s.ID == id {
			return s
		}
	}
	return list[0]
}

// Default returns the first entry for a purpose.
func (c *Catalog) Default(purpose constants.SoundPurpose) domain.Sound {
	return c.list(purpose)[0]
}

// List returns the catalog entries for a purpose, in order.
func (c *Catalog) List(purpose constants.SoundPurpose) []domain.Sound {
	list := c.list(purpose)
	out := make([]domain.Sound, len(list))
	copy(out, list)
	return out
}

// Lookup reports whether a sound id exists for a purpose.
func (c *Catalog) Lookup(purpose constants.SoundPurpose, id string) (domain.Sound, bool) {
	for _, s := range c.list(purpose) {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Sound{}, false
}

func (c *Catalog) list(purpose constants.SoundPurpose) []domain.Sound {
	if purpose == constants.SoundPurposeCompletion {
		return c.completion
	}
	return c.reminder
}
