package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [YouTube URL or ID]",
	Short: "Print the transcript of a YouTube video",
	Long: `Print the captions of a YouTube video as one block of text.

The transcript source is set by transcript_provider in config.toml. Videos
without captions can be transcribed with Whisper using --fallback-whisper.`,
	Example: `  ytbrief transcribe "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytbrief transcribe tAP1eZYEuKA -o transcript.txt

  # Use Whisper if no captions are available (costs money)
  ytbrief transcribe tAP1eZYEuKA --fallback-whisper`,
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

		output, _ := cmd.Flags().GetString("output")
		return writeResult(cmd, output, []byte(transcript))
	},
}

func init() {
	internal.AddTranscriptionFlags(transcribeCmd)
	transcribeCmd.Flags().StringP("output", "o", "", "Write the transcript to a file instead of stdout")
	rootCmd.AddCommand(transcribeCmd)
}
