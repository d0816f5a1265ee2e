package session

import (
	"io"
	"os/exec"
	"runtime"
)

// Clearer clears the operator's display ahead of each render of the session.
type Clearer interface {
	Clear(out io.Writer) error
}

// ClearFunc adapts a function to a Clearer.
type ClearFunc func(io.Writer) error

// Clear invokes the ClearFunc.
func (fn ClearFunc) Clear(out io.Writer) error { return fn(out) }

// NopClearer is a Clearer which does nothing.
var NopClearer = ClearFunc(func(io.Writer) error { return nil })

// TerminalClearer clears the terminal by running the host's clear command,
// with its output attached to the session's output.
type TerminalClearer struct{}

// Clear runs the clear command of the host OS family.
func (TerminalClearer) Clear(out io.Writer) error {
	var args = clearCommand(runtime.GOOS)
	var cmd = exec.Command(args[0], args[1:]...)
	cmd.Stdout = out
	return cmd.Run()
}

func clearCommand(goos string) []string {
	if goos == "windows" {
		return []string{"cmd", "/c", "cls"}
	}
	return []string{"clear"}
}
