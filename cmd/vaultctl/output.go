package main

import (
	"errors"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/MKhiriev/go-file-vault/internal/service"
)

func okMark() string   { return color.GreenString("✓") }
func failMark() string { return color.RedString("✗") }
func hintMark() string { return color.CyanString("→") }

// startSpinner writes a spinner to w while a request runs. The returned
// func stops it; with quiet set both are no-ops.
func startSpinner(w io.Writer, message string, quiet bool) func() {
	if quiet {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()

	return s.Stop
}

// humanizeError prefers the server's wording and adds a hint where the
// next step is obvious.
func humanizeError(err error) string {
	msg := err.Error()
	var remote *service.RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		msg = remote.Detail
	}

	switch {
	case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrNotAuthenticated):
		return msg + "\n" + hintMark() + " Run " + color.YellowString("vaultctl login") + " first"
	case errors.Is(err, service.ErrVaultLocked):
		return msg + "\n" + hintMark() + " Run " + color.YellowString("vaultctl recover") + " to answer your security question"
	case errors.Is(err, service.ErrVaultNotLocked):
		return msg + "\n" + hintMark() + " Run " + color.YellowString("vaultctl login") + " instead"
	case errors.Is(err, service.ErrServerUnavailable):
		return "No network or the vault server is unavailable: " + msg
	}
	return msg
}
