package internal

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/rtzll/ytbrief/internal/document"
	"github.com/rtzll/ytbrief/internal/pagination"
)

const appName = "ytbrief"

// ExportConfig holds the page layout of exported summaries
type ExportConfig struct {
	Format       string
	PageSize     string
	Font         string
	FontSize     float64
	LeftMargin   float64
	TopMargin    float64
	BottomMargin float64
	LineHeight   float64
	Wrap         bool
}

// Config holds application settings
type Config struct {
	// User configurable settings
	Provider            string
	Model               string
	SummaryLength       string
	SummaryTimeout      time.Duration
	WhisperTimeout      time.Duration
	TranscriptProvider  string
	TranscriptLanguages []string
	MetadataProvider    string
	Verbose             bool
	Quiet               bool
	Prompt              string
	MCPLogEnabled       bool
	Export              ExportConfig

	// Credentials
	OpenAIAPIKey  string
	GeminiAPIKey  string
	YouTubeAPIKey string

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
	TempDir   string

	// ConfigFile is the file the settings were read from, if any
	ConfigFile string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// WhisperLimit is the maximum file size accepted by OpenAI's Whisper API (25 MiB)
const WhisperLimit int64 = 25 << 20

// ensureDefaultFile creates configDir/name from the embedded default if missing
func ensureDefaultFile(configDir, name, description string) error {
	filePath := filepath.Join(configDir, name)
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig writes the default config.toml into configDir if missing
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt writes the default prompt.txt into configDir if missing
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// configDirs holds the XDG directories of the application
type configDirs struct {
	config string
	data   string
	cache  string
}

func xdgDirs() configDirs {
	return configDirs{
		config: filepath.Join(xdg.ConfigHome, appName),
		data:   filepath.Join(xdg.DataHome, appName),
		cache:  filepath.Join(xdg.CacheHome, appName),
	}
}

// InitConfig loads configuration from configFile, or from config.toml in the
// XDG config directory or the working directory when configFile is empty.
func InitConfig(configFile string) (*Config, error) {
	return loadConfig(viper.New(), configFile, xdgDirs())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("model", "")
	v.SetDefault("summary_length", LengthMedium.String())
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("whisper_timeout", 10*time.Minute)
	v.SetDefault("transcript_provider", TranscriptProviderYTDLP)
	v.SetDefault("transcript_languages", []string{"en"})
	v.SetDefault("metadata_provider", MetadataProviderYTDLP)
	v.SetDefault("verbose", false)
	v.SetDefault("prompt", "") // empty uses the default prompt template
	v.SetDefault("mcp_log", false)

	// Letter with 50pt margins and 11pt Helvetica
	v.SetDefault("export.format", string(document.FormatPDF))
	v.SetDefault("export.page_size", "letter")
	v.SetDefault("export.font", document.DefaultOptions.Font)
	v.SetDefault("export.font_size", document.DefaultOptions.FontSize)
	v.SetDefault("export.left_margin", pagination.Letter.LeftMargin)
	v.SetDefault("export.top_margin", pagination.Letter.TopMargin)
	v.SetDefault("export.bottom_margin", pagination.Letter.BottomMargin)
	v.SetDefault("export.line_height", pagination.Letter.LineHeight)
	v.SetDefault("export.wrap", true)
}

func loadConfig(v *viper.Viper, configFile string, dirs configDirs) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(dirs.config)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("YTBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials also come from the variables the provider SDKs document
	_ = v.BindEnv("openai_api_key", "YTBRIEF_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "YTBRIEF_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("youtube_api_key", "YTBRIEF_YOUTUBE_API_KEY", "YOUTUBE_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	config := &Config{
		Provider:            strings.ToLower(v.GetString("provider")),
		Model:               v.GetString("model"),
		SummaryLength:       v.GetString("summary_length"),
		SummaryTimeout:      v.GetDuration("summary_timeout"),
		WhisperTimeout:      v.GetDuration("whisper_timeout"),
		TranscriptProvider:  strings.ToLower(v.GetString("transcript_provider")),
		TranscriptLanguages: v.GetStringSlice("transcript_languages"),
		MetadataProvider:    strings.ToLower(v.GetString("metadata_provider")),
		Verbose:             v.GetBool("verbose"),
		Prompt:              v.GetString("prompt"),
		MCPLogEnabled:       v.GetBool("mcp_log"),
		Export: ExportConfig{
			Format:       v.GetString("export.format"),
			PageSize:     v.GetString("export.page_size"),
			Font:         v.GetString("export.font"),
			FontSize:     v.GetFloat64("export.font_size"),
			LeftMargin:   v.GetFloat64("export.left_margin"),
			TopMargin:    v.GetFloat64("export.top_margin"),
			BottomMargin: v.GetFloat64("export.bottom_margin"),
			LineHeight:   v.GetFloat64("export.line_height"),
			Wrap:         v.GetBool("export.wrap"),
		},

		OpenAIAPIKey:  v.GetString("openai_api_key"),
		GeminiAPIKey:  v.GetString("gemini_api_key"),
		YouTubeAPIKey: v.GetString("youtube_api_key"),

		ConfigDir:  dirs.config,
		DataDir:    dirs.data,
		CacheDir:   dirs.cache,
		TempDir:    filepath.Join(dirs.cache, "temp_chunks"),
		ConfigFile: v.ConfigFileUsed(),
	}

	if config.Model == "" {
		config.Model = DefaultModel(config.Provider)
	}

	return config, nil
}

// Validate rejects unknown providers, models, lengths and impossible page layouts
func (c *Config) Validate() error {
	if err := ValidateModel(c.Provider, c.Model); err != nil {
		return err
	}
	if _, err := ParseSummaryLength(c.SummaryLength); err != nil {
		return err
	}

	switch c.TranscriptProvider {
	case TranscriptProviderYTDLP, TranscriptProviderTimedText, TranscriptProviderTranscriptAPI:
	default:
		return fmt.Errorf("unsupported transcript provider: %q (supported: %s, %s, %s)", c.TranscriptProvider,
			TranscriptProviderYTDLP, TranscriptProviderTimedText, TranscriptProviderTranscriptAPI)
	}

	switch c.MetadataProvider {
	case MetadataProviderYTDLP, MetadataProviderDataAPI:
	default:
		return fmt.Errorf("unsupported metadata provider: %q (supported: %s, %s)", c.MetadataProvider,
			MetadataProviderYTDLP, MetadataProviderDataAPI)
	}

	if _, err := document.ParseFormat(c.Export.Format); err != nil {
		return err
	}
	if _, err := c.Geometry(); err != nil {
		return err
	}
	return nil
}

// Length returns the configured summary length, medium if invalid
func (c *Config) Length() SummaryLength {
	length, _ := ParseSummaryLength(c.SummaryLength)
	return length
}

// Credentials returns the API keys of the generation providers
func (c *Config) Credentials() Credentials {
	return Credentials{OpenAI: c.OpenAIAPIKey, Gemini: c.GeminiAPIKey}
}

// Geometry returns the page layout used for exports
func (c *Config) Geometry() (pagination.Geometry, error) {
	_, height, err := document.PageSize(c.Export.PageSize)
	if err != nil {
		return pagination.Geometry{}, err
	}

	g := pagination.Geometry{
		LeftMargin:   c.Export.LeftMargin,
		TopMargin:    c.Export.TopMargin,
		BottomMargin: c.Export.BottomMargin,
		LineHeight:   c.Export.LineHeight,
		PageHeight:   height,
	}
	if g.LineHeight <= 0 {
		return pagination.Geometry{}, fmt.Errorf("export line_height must be positive, got %v", g.LineHeight)
	}
	if g.LeftMargin < 0 || g.TopMargin < 0 || g.BottomMargin < 0 {
		return pagination.Geometry{}, errors.New("export margins must not be negative")
	}
	if g.TopMargin+g.BottomMargin >= g.PageHeight {
		return pagination.Geometry{}, fmt.Errorf("export margins leave no room on a %s page", c.Export.PageSize)
	}
	return g, nil
}

// DocumentOptions returns the encoder options used for exports
func (c *Config) DocumentOptions(title string) document.Options {
	return document.Options{
		Title:    title,
		Font:     c.Export.Font,
		FontSize: c.Export.FontSize,
		PageSize: c.Export.PageSize,
	}
}
