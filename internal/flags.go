package internal

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal/document"
)

// AddTranscriptionFlags adds flags related to transcription fallbacks
func AddTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fallback-whisper", false, "Fallback to Whisper if no captions available (costs money)")
}

// AddSummaryFlags adds flags related to summary generation and export
func AddSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "LLM provider for summaries (openai or gemini)")
	cmd.Flags().StringP("model", "m", "", "Model to use for summaries")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
	cmd.Flags().StringP("length", "l", "", "Summary length (short, medium or long)")
	cmd.Flags().Bool("fallback-description", false, "Summarize the video description if no transcript is available")
	AddExportFlags(cmd)
}

// AddExportFlags adds the --export and --format flags
func AddExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("export", "e", "", "Also write the summary to this file (.pdf, .docx or .txt)")
	cmd.Flags().String("format", "", "Export format, overrides the file extension (pdf, docx or txt)")
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}
	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.log.WithField("path", prompt).Debug("using custom prompt file")
	} else {
		app.log.Debug("using custom prompt string")
	}
	return nil
}

// HandleOutputFlags processes the --verbose and --quiet flags
func HandleOutputFlags(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	if cmd.Flags().Changed("verbose") {
		config.Verbose = verbose
	}
	config.Quiet = quiet
	return nil
}

// ApplySummaryFlags copies --provider, --model and --length into config and
// validates the result
func ApplySummaryFlags(cmd *cobra.Command, config *Config) error {
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		if err := ValidateProvider(provider); err != nil {
			return err
		}
		if provider != config.Provider && !slices.Contains(supportedModels[provider], config.Model) {
			config.Model = DefaultModel(provider)
		}
		config.Provider = provider
	}

	if model, _ := cmd.Flags().GetString("model"); model != "" {
		config.Model = model
	}
	if length, _ := cmd.Flags().GetString("length"); length != "" {
		config.SummaryLength = length
	}

	return config.Validate()
}

// ValidateProviderRequirements checks that the key of the configured provider is set
func ValidateProviderRequirements(config *Config) error {
	switch config.Provider {
	case ProviderGemini:
		if config.GeminiAPIKey == "" {
			return missingKeyError(ProviderGemini)
		}
	default:
		if config.OpenAIAPIKey == "" {
			return missingKeyError(ProviderOpenAI)
		}
	}
	return nil
}

// SummarizeOptionsFromFlags builds the fallback options of a summary command
func SummarizeOptionsFromFlags(cmd *cobra.Command, config *Config) SummarizeOptions {
	fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
	fallbackDescription, _ := cmd.Flags().GetBool("fallback-description")
	return SummarizeOptions{
		Length:              config.Length(),
		FallbackWhisper:     fallbackWhisper,
		Interactive:         !config.Quiet && IsTerminal(os.Stdin),
		FallbackDescription: fallbackDescription,
	}
}

// ExportFlags returns the --export path and --format value. The format is
// validated when set.
func ExportFlags(cmd *cobra.Command) (string, string, error) {
	path, _ := cmd.Flags().GetString("export")
	format, _ := cmd.Flags().GetString("format")
	if format != "" {
		if _, err := document.ParseFormat(format); err != nil {
			return "", "", err
		}
	}
	return path, format, nil
}

// ValidateWhisperRequirements checks that an OpenAI key is set for Whisper
func ValidateWhisperRequirements(config *Config) error {
	if config.OpenAIAPIKey == "" {
		return missingKeyError(ProviderOpenAI)
	}
	return nil
}
