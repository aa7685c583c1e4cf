package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/autoarchive/internal/ui"
	"github.com/PolarWolf314/autoarchive/internal/utils"
	"github.com/briandowns/spinner"
)

// stdin is where --token-stdin reads from. Tests replace it.
var stdin io.Reader = os.Stdin

// activeSpinner is the spinner currently drawn, if any. Warnings pause it.
var activeSpinner *spinner.Spinner

// spinnerEnabled reports whether a spinner should be drawn at all.
// Verbose output and non-terminal stdout both print plain lines instead.
func spinnerEnabled() bool {
	return !verbose && !debug && utils.IsStdoutTerminal()
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	enabled := spinnerEnabled()
	if enabled {
		s.Start()
		activeSpinner = s
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if enabled {
			log.SetOutput(os.Stderr)
			s.Stop()
			activeSpinner = nil
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops the active spinner while fn prints, then restarts it.
func pauseSpinner(fn func()) {
	s := activeSpinner
	if s == nil || !s.Active() {
		fn()
		return
	}
	s.Stop()
	fn()
	s.Start()
}
