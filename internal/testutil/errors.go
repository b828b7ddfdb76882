// Package testutil provides testing utilities for pacebell.
//
// This package contains mock errors used across test files to simulate
// failing cue sinks. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockNotifyFailed simulates a desktop notifier failure.
	ErrMockNotifyFailed = errors.New("notifier failed")

	// ErrMockPlaybackFailed simulates an audio player failure.
	ErrMockPlaybackFailed = errors.New("playback failed")

	// ErrMockSpeechFailed simulates a speech synthesizer failure.
	ErrMockSpeechFailed = errors.New("speech failed")

	// ErrMockRunnerFailed simulates a subprocess runner failure.
	ErrMockRunnerFailed = errors.New("runner failed")
)
