package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL or ID]",
	Short: "Copy the transcript of a YouTube video to the clipboard",
	Example: `  ytbrief cp tAP1eZYEuKA
  ytbrief cp "https://youtu.be/tAP1eZYEuKA" --fallback-whisper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := internal.NewApp(config)
		if err != nil {
			return err
		}

		transcript, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(transcript); err != nil {
			return fmt.Errorf("writing to clipboard: %w", err)
		}

		status("Copied %d characters to the clipboard", len(transcript))
		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
