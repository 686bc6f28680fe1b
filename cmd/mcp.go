package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server exposing ytbrief as tools",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytbrief functionality as tools.

The MCP server provides these tools:
- extract_video_id: Extract the video ID and thumbnail from a link
- get_youtube_metadata: Extract video metadata as formatted text
- get_youtube_transcript: Fetch built-in captions
- transcribe_youtube_whisper: Transcribe the audio with Whisper (paid)
- summarize_youtube_video: Summarize a video from its captions

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)

Set mcp_log = true in config.toml to write a rotated mcp.log to the cache directory.`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  ytbrief mcp

  # Run MCP server with HTTP transport on port 8080
  ytbrief mcp --transport=http --port=8080

  # Set up Claude Desktop integration
  ytbrief mcp setup-claude`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		if transport != "stdio" && transport != "http" {
			return fmt.Errorf("unsupported transport: %s (supported: stdio, http)", transport)
		}

		log, err := internal.NewMCPLogger(config.MCPLogEnabled, config.CacheDir)
		if err != nil {
			return fmt.Errorf("creating MCP log: %w", err)
		}

		// stdio carries the protocol, so nothing else may be drawn
		config.Quiet = true
		app, err := internal.NewApp(config,
			internal.WithLogger(log),
			internal.WithUI(internal.NewUIManager(true)),
		)
		if err != nil {
			return err
		}

		log.WithField("transport", transport).Info("starting MCP server")
		return internal.NewMCPServer(app, version, log).Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	rootCmd.AddCommand(mcpCmd)
}
