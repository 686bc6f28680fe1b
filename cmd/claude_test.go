package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMCPServerKeepsExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "globalShortcut": "Ctrl+Space",
  "mcpServers": {"other": {"command": "/bin/other", "args": []}}
}`), 0644))

	require.NoError(t, registerMCPServer(path, "ytbrief"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		GlobalShortcut string                    `json:"globalShortcut"`
		MCPServers     map[string]mcpServerEntry `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "Ctrl+Space", doc.GlobalShortcut)
	assert.Equal(t, "/bin/other", doc.MCPServers["other"].Command)

	entry := doc.MCPServers["ytbrief"]
	assert.Equal(t, []string{"mcp"}, entry.Args)
	assert.NotEmpty(t, entry.Command)
	assert.Contains(t, entry.Env, "XDG_CONFIG_HOME")
}

func TestRegisterMCPServerEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	require.NoError(t, registerMCPServer(path, "yt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"yt"`)
}

func TestRegisterMCPServerMissingConfig(t *testing.T) {
	err := registerMCPServer(filepath.Join(t.TempDir(), "missing.json"), "ytbrief")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUnknownCommandError(t *testing.T) {
	err := unknownCommandError(rootCmd, "summ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean: summarize")

	err = unknownCommandError(rootCmd, "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--help")
}
