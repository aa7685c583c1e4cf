package cmd

import (
	"errors"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
	"github.com/PolarWolf314/autoarchive/internal/ui"
)

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrSourceNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Error.Sprint("✗") + " No matching files found\n" +
			ui.Muted.Sprint(err.Error())

	case errors.Is(err, kerrors.ErrArchiverNotFound):
		return ui.Error.Sprint("✗") + " 7-Zip could not be started\n" +
			ui.Info.Sprint("→") + " Install 7-Zip or point " + ui.Flag.Sprint("archiver.path") + " at it with " +
			ui.Code.Sprint("autoarchive config init --archiver <path>") + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrArchiver):
		return ui.Error.Sprint("✗") + " 7-Zip failed\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrNotFound):
		return ui.Error.Sprint("✗") + " No password is recorded for this archive\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("autoarchive sync --pull") + " if it was packed on another machine"

	case errors.Is(err, kerrors.ErrLocked):
		return ui.Error.Sprint("✗") + " Another autoarchive process is writing the catalog\n" +
			ui.Info.Sprint("→") + " Try again once it has finished"

	case errors.Is(err, kerrors.ErrIO):
		return ui.Error.Sprint("✗") + " The local catalog could not be saved\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrRemoteNotConfigured):
		return ui.Error.Sprint("✗") + " The remote catalog is not configured\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("autoarchive config init --token-stdin --document-id <gist id>") + " first"

	case errors.Is(err, kerrors.ErrAuth):
		return ui.Error.Sprint("✗") + " The remote catalog rejected the token\n" +
			ui.Info.Sprint("→") + " Check " + ui.Flag.Sprint("remote.token") + " or " + ui.Flag.Sprint("AUTOARCHIVE_TOKEN") + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrNetwork), errors.Is(err, kerrors.ErrParse):
		return ui.Error.Sprint("✗") + " The remote catalog is unavailable\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrInvalidLength),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " Invalid configuration\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	for _, known := range []error{
		kerrors.ErrSourceNotFound,
		kerrors.ErrNoFilesFound,
		kerrors.ErrArchiverNotFound,
		kerrors.ErrArchiver,
		kerrors.ErrNotFound,
		kerrors.ErrLocked,
		kerrors.ErrIO,
		kerrors.ErrNetwork,
		kerrors.ErrParse,
		kerrors.ErrRemoteNotConfigured,
		kerrors.ErrInvalidLength,
		kerrors.ErrInvalidDateFormat,
		kerrors.ErrInvalidConfig,
	} {
		if errors.Is(err, known) {
			return false
		}
	}
	return true
}

// remoteNote explains, in one line, why a result did not involve the remote.
// It is empty when the remote was used or is simply not configured.
func remoteNote(err error) string {
	if err == nil || errors.Is(err, kerrors.ErrRemoteNotConfigured) {
		return ""
	}
	return "\n" + ui.Warning.Sprint("⚠") + " Remote catalog unavailable: " + ui.Muted.Sprint(err.Error())
}
