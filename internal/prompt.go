package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
)

// PromptData for template injection
type PromptData struct {
	Title       string
	Channel     string
	Description string
	Transcript  string
	Length      string
}

// PromptManager handles loading and processing prompt templates
type PromptManager struct {
	promptFile   string
	promptString string
	configDir    string
}

// NewPromptManager creates a new prompt manager. promptSetting is either a
// template string or a path to a template file; empty selects prompt.txt in
// configDir, falling back to the built-in template.
func NewPromptManager(configDir, promptSetting string) *PromptManager {
	pm := &PromptManager{
		configDir: configDir,
	}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// CreatePrompt builds a prompt from a transcript and metadata. An empty
// transcript asks for a summary of the description instead.
func (pm *PromptManager) CreatePrompt(transcript string, metadata *VideoMetadata, length SummaryLength) (string, error) {
	tmplContent, err := pm.templateContent()
	if err != nil {
		return "", err
	}
	return buildPromptFromTemplate(tmplContent, promptData(transcript, metadata, length))
}

// templateContent picks the first template source that is set: the custom
// string, the custom file, prompt.txt in the config directory, the built-in
// template
func (pm *PromptManager) templateContent() (string, error) {
	if pm.promptString != "" {
		return pm.promptString, nil
	}

	path := pm.promptFile
	if path == "" {
		path = filepath.Join(pm.configDir, "prompt.txt")
		if !FileExists(path) {
			content, err := defaultFS.ReadFile("prompt.txt")
			return string(content), err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading prompt template: %w", err)
	}
	return string(content), nil
}

func promptData(transcript string, metadata *VideoMetadata, length SummaryLength) PromptData {
	data := PromptData{
		Transcript: strings.TrimSpace(transcript),
		Length:     length.String(),
	}
	if metadata != nil {
		data.Title = metadata.Title
		data.Channel = metadata.Channel
		data.Description = metadata.Description
		// chapters are usually part of the description already
	}
	return data
}

func buildPromptFromTemplate(templateContent string, data PromptData) (string, error) {
	tmpl, err := template.New("prompt").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}

// templateExts are extensions that mark a --prompt value as a file
var templateExts = []string{".txt", ".md", ".tmpl", ".template"}

// IsLikelyFilePath guesses whether a --prompt value names a file rather than
// being the template itself
func IsLikelyFilePath(s string) bool {
	switch {
	case strings.ContainsAny(s, `/\`):
		return true
	case slices.Contains(templateExts, strings.ToLower(filepath.Ext(s))):
		return true
	case len(s) > 200:
		return false
	}
	return !strings.ContainsAny(s, " \n")
}
