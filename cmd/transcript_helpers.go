package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

// fetchTranscript retrieves a transcript for the given argument and optionally falls back to Whisper.
func fetchTranscript(cmd *cobra.Command, app *internal.App, arg string) (string, error) {
	transcript, err := app.GetTranscript(cmd.Context(), arg)
	if err == nil {
		return transcript, nil
	}
	if errors.Is(err, internal.ErrInvalidVideoLink) {
		return "", err
	}

	fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
	if !fallbackWhisper {
		return "", err
	}
	if keyErr := internal.ValidateWhisperRequirements(config); keyErr != nil {
		return "", keyErr
	}

	return app.Transcribe(cmd.Context(), arg)
}
