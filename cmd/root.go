package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytbrief [YouTube URL or ID]",
	Short: "Summarize YouTube videos and export the summary as PDF",
	Long: `ytbrief summarizes YouTube videos using AI.

It fetches the captions of a video, asks an LLM (OpenAI or Gemini) for a
short, medium or long summary and prints it. The summary can also be
exported as a paginated PDF, Word document or plain text file.

When a video has no captions the audio can be transcribed with Whisper.`,
	Example: `  # Summarize a YouTube video (default behavior)
  ytbrief "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytbrief tAP1eZYEuKA

  # A short summary with Gemini, exported as PDF
  ytbrief "https://youtu.be/tAP1eZYEuKA" --provider gemini -l short -e summary.pdf

  # Use custom prompt for summary
  ytbrief tAP1eZYEuKA --prompt "tldr ({{.Length}}): {{.Transcript}}"

  # Fallback to Whisper if no captions available (costs money)
  ytbrief "https://youtu.be/tAP1eZYEuKA" --fallback-whisper`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]
		if internal.IsLikelyCommand(arg) {
			return unknownCommandError(cmd, arg)
		}
		return runSummarize(cmd, arg)
	},
}

// loadConfig reads the configuration once the flags are parsed
func loadConfig(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	if configFile == "" {
		configDir := defaultConfigDir()
		// Ensure default config and prompt exist in the XDG config directory
		if err := internal.EnsureDefaultConfig(configDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
		}
		if err := internal.EnsureDefaultPrompt(configDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
		}
	}

	cfg, err := internal.InitConfig(configFile)
	if err != nil {
		return err
	}
	if err := internal.HandleOutputFlags(cmd, cfg); err != nil {
		return err
	}
	if err := internal.EnsureDirs(cfg.ConfigDir, cfg.DataDir, cfg.CacheDir); err != nil {
		return fmt.Errorf("creating XDG directories: %w", err)
	}

	config = cfg
	return nil
}

func defaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "ytbrief")
}

func unknownCommandError(cmd *cobra.Command, arg string) error {
	var suggestions []string
	for _, c := range cmd.Root().Commands() {
		name := c.Name()
		if strings.Contains(name, arg) || (len(arg) <= len(name) && strings.Contains(arg, name[:len(arg)])) {
			suggestions = append(suggestions, name)
		}
	}

	if len(suggestions) > 0 {
		return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Did you mean: %s?", arg, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Use --help to see available commands", arg)
}

// Execute runs the root command. An interrupt cancels the running operation,
// removes leftover audio chunks and exits.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
		interrupted()
	}()

	return rootCmd.ExecuteContext(ctx)
}

// interrupted gives cleanup a few seconds before exiting
func interrupted() {
	fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
	if config == nil {
		os.Exit(130)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := internal.CleanupTempDir(config.TempDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning up temporary files: %v\n", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		fmt.Fprintln(os.Stderr, "Warning: cleanup timed out")
	}
	os.Exit(130)
}

func init() {
	internal.AddTranscriptionFlags(rootCmd)
	internal.AddSummaryFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print results")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/ytbrief/config.toml)")
}
