// Package logx configures the process-wide standard logger.
package logx

import (
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

const Prefix = "linkfield: "

// Setup routes the standard logger to path when debug is on and discards it
// otherwise. The returned file, if any, must be closed by the caller. Hosts
// that own the terminal use this so log lines never land on the screen.
func Setup(debug bool, path string) (*os.File, error) {
	if !debug || path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil, err
	}
	f, err := tea.LogToFile(path, Prefix)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, err
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

// Stderr is for hosts that leave the terminal alone: warnings always show,
// and debug adds timestamps.
func Stderr(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetPrefix(Prefix)
	if debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetFlags(0)
	}
}
