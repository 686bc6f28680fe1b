package internal

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "summarize"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().BoolP("quiet", "q", false, "")
	AddSummaryFlags(cmd)
	AddTranscriptionFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplySummaryFlags(t *testing.T) {
	config := testConfig(t)
	cmd := summaryCommand(t, "--model", "gpt-4o", "-l", "long")

	require.NoError(t, ApplySummaryFlags(cmd, config))
	assert.Equal(t, "gpt-4o", config.Model)
	assert.Equal(t, LengthLong, config.Length())
}

func TestApplySummaryFlagsProviderSwitchResetsModel(t *testing.T) {
	config := testConfig(t)

	require.NoError(t, ApplySummaryFlags(summaryCommand(t, "--provider", "gemini"), config))
	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)

	config = testConfig(t)
	require.NoError(t, ApplySummaryFlags(summaryCommand(t, "--provider", "gemini", "-m", "gemini-2.5-pro"), config))
	assert.Equal(t, "gemini-2.5-pro", config.Model)
}

func TestApplySummaryFlagsInvalid(t *testing.T) {
	assert.Error(t, ApplySummaryFlags(summaryCommand(t, "--provider", "mistral"), testConfig(t)))
	assert.Error(t, ApplySummaryFlags(summaryCommand(t, "-m", "gemini-2.5-pro"), testConfig(t)))
	assert.Error(t, ApplySummaryFlags(summaryCommand(t, "-l", "epic"), testConfig(t)))
}

func TestHandleOutputFlags(t *testing.T) {
	config := testConfig(t)
	config.Quiet = false

	require.NoError(t, HandleOutputFlags(summaryCommand(t, "-v"), config))
	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)

	assert.Error(t, HandleOutputFlags(summaryCommand(t, "-v", "-q"), testConfig(t)))
}

func TestSummarizeOptionsFromFlags(t *testing.T) {
	config := testConfig(t)
	config.SummaryLength = "short"

	opts := SummarizeOptionsFromFlags(summaryCommand(t, "--fallback-whisper", "--fallback-description"), config)
	assert.Equal(t, LengthShort, opts.Length)
	assert.True(t, opts.FallbackWhisper)
	assert.True(t, opts.FallbackDescription)
	// quiet runs never prompt
	assert.False(t, opts.Interactive)
}

func TestExportFlags(t *testing.T) {
	path, format, err := ExportFlags(summaryCommand(t, "-e", "out.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "out.pdf", path)
	assert.Empty(t, format)

	_, _, err = ExportFlags(summaryCommand(t, "-e", "out", "--format", "odt"))
	assert.Error(t, err)
}

func TestProviderRequirements(t *testing.T) {
	config := testConfig(t)
	assert.ErrorIs(t, ValidateProviderRequirements(config), ErrUnauthorized)
	assert.ErrorIs(t, ValidateWhisperRequirements(config), ErrUnauthorized)

	config.Provider = ProviderGemini
	config.GeminiAPIKey = "g"
	assert.NoError(t, ValidateProviderRequirements(config))
	assert.ErrorIs(t, ValidateWhisperRequirements(config), ErrUnauthorized)

	config.OpenAIAPIKey = "sk"
	assert.NoError(t, ValidateWhisperRequirements(config))
}
