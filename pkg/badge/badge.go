// Package badge is the presentation sink the watch daemon drives: a short
// persistent status label plus one-shot desktop notifications.
package badge

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Sink receives the badge label and notification requests. Set and Clear
// replace the whole label; Notify is one-shot and carries a title/body pair.
type Sink interface {
	Set(text string) error
	Clear() error
	Notify(title, body string) error
}

// FileSink writes the badge label to a file (status bars tail it) and sends
// notifications through notify-send when available.
type FileSink struct {
	// Path is the badge file location.
	Path string

	// DisableNotify suppresses desktop notifications; notifications then
	// degrade to a line on stderr.
	DisableNotify bool
}

// Set replaces the badge label atomically so a concurrent reader never sees
// a torn write.
func (s *FileSink) Set(text string) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("badge: ensure directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".badge-*")
	if err != nil {
		return fmt.Errorf("badge: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(text + "\n"); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("badge: replace badge file: %w", err)
	}
	return nil
}

// Clear empties the badge. Absence of a label is the only failure signal the
// background context has, so Clear must succeed even when Set never ran.
func (s *FileSink) Clear() error {
	return s.Set("")
}

// Notify sends a desktop notification, falling back to stderr when
// notify-send is unavailable.
func (s *FileSink) Notify(title, body string) error {
	if !s.DisableNotify {
		if path, err := exec.LookPath("notify-send"); err == nil {
			return exec.Command(path, title, body).Run()
		}
	}
	_, err := fmt.Fprintf(os.Stderr, "%s: %s\n", title, body)
	return err
}
