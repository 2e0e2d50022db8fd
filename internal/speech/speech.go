// Package speech is the fire-and-forget text-to-speech collaborator. The
// core never consumes a return value from playback; views just trigger it.
package speech

import (
	"log/slog"
	"os/exec"
	"strconv"
)

// Player speaks a piece of text at a playback rate (1.0 is normal speed;
// flashcard views use a slower 0.8 for children).
type Player interface {
	Play(text string, rate float64)
}

// CommandPlayer shells out to a local TTS command (espeak, say, ...). The
// command is invoked as `<command> <rate> <text>` and is expected to return
// immediately or run detached; playback failures are logged, never surfaced.
type CommandPlayer struct {
	command string
}

// NewCommandPlayer creates a player around the given command. An empty
// command makes Play a no-op.
func NewCommandPlayer(command string) *CommandPlayer {
	return &CommandPlayer{command: command}
}

// Play starts playback and does not wait for it to finish.
func (p *CommandPlayer) Play(text string, rate float64) {
	if p.command == "" || text == "" {
		return
	}
	cmd := exec.Command(p.command, strconv.FormatFloat(rate, 'f', -1, 64), text)
	if err := cmd.Start(); err != nil {
		slog.Warn("failed to start speech playback", "command", p.command, "error", err)
		return
	}
	go func() {
		_ = cmd.Wait()
	}()
}

// NopPlayer discards playback requests, for tests and headless use.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play(string, float64) {}
