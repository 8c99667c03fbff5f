// Package main provides UI utilities for the cross-reference CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// UI provides user-friendly output utilities.
type UI struct {
	jsonMode bool
}

// NewUI creates a new UI instance.
func NewUI(jsonMode bool) *UI {
	return &UI{jsonMode: jsonMode}
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (ui *UI) Error(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgYellow).Printf("⚠ %s\n", fmt.Sprintf(format, args...))
}

// Info prints an info message.
func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgCyan).Printf("ℹ %s\n", fmt.Sprintf(format, args...))
}

// Spinner starts a terminal spinner with the given message. The
// returned stop function is safe to call in JSON mode too.
func (ui *UI) Spinner(message string) func() {
	if ui.jsonMode {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}

// JSON prints v as indented JSON when in JSON mode and reports whether
// it did.
func (ui *UI) JSON(v any) bool {
	if !ui.jsonMode {
		return false
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
	return true
}
