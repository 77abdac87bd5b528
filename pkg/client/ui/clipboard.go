package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
)

var clipboardWriteAll = clipboard.WriteAll
var clipboardWriteOSC52 = writeOSC52Clipboard

// copiedMsg reports the outcome of a clipboard write
type copiedMsg struct {
	Label string
	Err   error
}

// copyToClipboard tries the system clipboard, then the terminal's OSC 52
func copyToClipboard(text, label string) tea.Cmd {
	return func() tea.Msg {
		err := clipboardWriteAll(text)
		if err == nil {
			return copiedMsg{Label: label}
		}
		if oscErr := clipboardWriteOSC52(text); oscErr != nil {
			return copiedMsg{Label: label, Err: fmt.Errorf("system clipboard: %v; OSC52: %v", err, oscErr)}
		}
		return copiedMsg{Label: label}
	}
}

func writeOSC52Clipboard(text string) error {
	termName := strings.TrimSpace(os.Getenv("TERM"))
	if termName == "" || strings.EqualFold(termName, "dumb") {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text, termName)
}

func writeOSC52Sequence(w io.Writer, text, termName string) error {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(strings.ToLower(termName), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}
