// Package notify delivers desktop notifications for pacebell.
//
// Delivery shells out to the platform notifier (notify-send on Linux,
// osascript on macOS). Availability of that binary doubles as the
// notification permission: there is no grant to ask the OS for, so the
// permission gate resolves to "is a notifier installed".
//
// Import rules:
//   - CAN import: internal/constants, internal/errors, std lib
//   - MUST NOT import: internal/sequencer, internal/tui, internal/cli
package notify

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pacebell/pacebell/internal/constants"
	"github.com/pacebell/pacebell/internal/errors"
)

// Runner abstracts the notifier subprocess for testing.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// notifierCandidate pairs a notifier binary with its argument builder.
type notifierCandidate struct {
	bin  string
	args func(title, body string, dismiss int) []string
}

//nolint:gochecknoglobals // Read-only lookup table for notifier detection
var notifierCandidates = []notifierCandidate{
	{bin: "notify-send", args: func(title, body string, dismiss int) []string {
		return []string{"-a", constants.AppName, "-t", strconv.Itoa(dismiss), title, body}
	}},
	{bin: "osascript", args: func(title, body string, _ int) []string {
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return []string{"-e", script}
	}},
}

// Notifier raises desktop notifications through the platform notifier
// command. Raise failures are returned to the caller; the ritual layer
// decides whether they are fatal (they never are).
type Notifier struct {
	log     zerolog.Logger
	runner  Runner
	bin     string
	args    func(title, body string, dismiss int) []string
	dismiss int
}

// NewNotifier detects the platform notifier. The returned Notifier is
// usable either way; Raise reports ErrNotifierUnavailable when nothing
// was found.
func NewNotifier(log zerolog.Logger, dismissTimeoutMS int) *Notifier {
	if dismissTimeoutMS <= 0 {
		dismissTimeoutMS = int(constants.NotificationDismissTimeout.Milliseconds())
	}
	n := &Notifier{log: log, runner: execRunner{}, dismiss: dismissTimeoutMS}
	for _, c := range notifierCandidates {
		if _, err := exec.LookPath(c.bin); err == nil {
			n.bin = c.bin
			n.args = c.args
			break
		}
	}
	if n.bin == "" {
		log.Debug().Msg("no desktop notifier found")
	} else {
		log.Debug().Str("notifier", n.bin).Msg("desktop notifier detected")
	}
	return n
}

// NewNotifierWithRunner creates a Notifier with an explicit runner and
// binary. This is useful for testing.
func NewNotifierWithRunner(log zerolog.Logger, runner Runner, bin string, args func(string, string, int) []string) *Notifier {
	return &Notifier{
		log:     log,
		runner:  runner,
		bin:     bin,
		args:    args,
		dismiss: int(constants.NotificationDismissTimeout.Milliseconds()),
	}
}

// Available reports whether a notifier binary was detected.
func (n *Notifier) Available() bool {
	return n.bin != ""
}

// Raise shows a desktop notification that auto-dismisses after the
// configured timeout.
func (n *Notifier) Raise(ctx context.Context, title, body string) error {
	if n.bin == "" {
		return errors.ErrNotifierUnavailable
	}
	if err := n.runner.Run(ctx, n.bin, n.args(title, body, n.dismiss)...); err != nil {
		return errors.Wrapf(err, "raising notification via %s", n.bin)
	}
	return nil
}

// Gate is the notification permission source. Request performs the
// availability probe once; Granted answers from the cached result.
type Gate struct {
	notifier *Notifier

	mu        sync.Mutex
	requested bool
	granted   bool
}

// NewGate creates an unrequested permission gate over the notifier.
func NewGate(notifier *Notifier) *Gate {
	return &Gate{notifier: notifier}
}

// Request resolves the permission. Repeat calls return the first outcome.
func (g *Gate) Request(_ context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.requested {
		g.requested = true
		g.granted = g.notifier.Available()
	}
	return g.granted, nil
}

// Granted reports the resolved permission; false until Request runs.
func (g *Gate) Granted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requested && g.granted
}
