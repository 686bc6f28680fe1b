package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID]",
	Short: "Generate summary from YouTube video",
	Example: `  # Generate summary from YouTube video
  ytbrief summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytbrief summarize tAP1eZYEuKA

  # Use a specific model and length
  ytbrief summarize tAP1eZYEuKA --model gpt-4o --length long

  # Export the summary to a Word document
  ytbrief summarize tAP1eZYEuKA -e notes.docx

  # Summarize the description when the video has no captions
  ytbrief summarize tAP1eZYEuKA --fallback-description`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd, args[0])
	},
}

// runSummarize is shared by the root and summarize commands
func runSummarize(cmd *cobra.Command, arg string) error {
	if err := internal.ApplySummaryFlags(cmd, config); err != nil {
		return err
	}
	if err := internal.ValidateProviderRequirements(config); err != nil {
		return err
	}
	exportPath, exportFormat, err := internal.ExportFlags(cmd)
	if err != nil {
		return err
	}

	app, err := internal.NewApp(config)
	if err != nil {
		return err
	}
	if err := internal.HandlePromptFlag(cmd, app); err != nil {
		return err
	}

	summary, err := app.Summarize(cmd.Context(), arg, internal.SummarizeOptionsFromFlags(cmd, config))
	if err != nil {
		return err
	}

	if err := internal.PrintSummary(cmd.OutOrStdout(), summary.Text); err != nil {
		return err
	}

	if exportPath == "" {
		return nil
	}
	doc, err := app.Export(summary.Text, exportPath, exportFormat, summary.Title())
	if err != nil {
		return fmt.Errorf("exporting summary: %w", err)
	}
	status("Summary exported to %s (%d pages)", exportPath, doc.PageCount())
	return nil
}

func init() {
	internal.AddTranscriptionFlags(summarizeCmd)
	internal.AddSummaryFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
