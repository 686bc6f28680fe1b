package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
)

// setupClaudeCmd registers the MCP server with Claude Desktop
var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Register the ytbrief MCP server with Claude Desktop",
	Long: `Add ytbrief to the mcpServers section of claude_desktop_config.json.

Other servers and settings in the file are kept. The entry passes the XDG
base directories of the current user so the server reads the same
config.toml as the CLI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := claudeDesktopConfigPath()
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		if err := registerMCPServer(path, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\nRestart Claude Desktop to load it\n", name, path)
		return nil
	},
}

// mcpServerEntry is one server in claude_desktop_config.json
type mcpServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

func claudeDesktopConfigPath() (string, error) {
	const file = "claude_desktop_config.json"
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA is not set")
		}
		return filepath.Join(appData, "Claude", file), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", file), nil
	case "linux":
		return filepath.Join(xdg.ConfigHome, "Claude", file), nil
	}
	return "", fmt.Errorf("Claude Desktop is not available on %s", runtime.GOOS)
}

// registerMCPServer adds or replaces the named server in the Claude Desktop
// config at path. The file must already exist.
func registerMCPServer(path, name string) error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating ytbrief executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("Claude Desktop config not found at %s, start Claude Desktop once first", path)
	}
	if err != nil {
		return fmt.Errorf("reading Claude Desktop config: %w", err)
	}

	// unknown top-level keys are carried through untouched
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := doc["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parsing mcpServers in %s: %w", path, err)
		}
	}

	entry, err := json.Marshal(mcpServerEntry{
		Command: executable,
		Args:    []string{"mcp"},
		Env: map[string]string{
			"XDG_CONFIG_HOME": xdg.ConfigHome,
			"XDG_DATA_HOME":   xdg.DataHome,
			"XDG_CACHE_HOME":  xdg.CacheHome,
		},
	})
	if err != nil {
		return err
	}
	servers[name] = entry

	if doc["mcpServers"], err = json.Marshal(servers); err != nil {
		return err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}

func init() {
	setupClaudeCmd.Flags().String("name", "ytbrief", "Server name in the Claude Desktop config")
	mcpCmd.AddCommand(setupClaudeCmd)
}
