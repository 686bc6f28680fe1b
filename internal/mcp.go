package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// MCPServer exposes the app as Model Context Protocol tools
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
	log       logrus.FieldLogger
	handlers  map[string]server.ToolHandlerFunc
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string, log logrus.FieldLogger) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytbrief",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
		log:       log,
		handlers:  make(map[string]server.ToolHandlerFunc),
	}
	s.registerTools()
	return s
}

// urlHandler handles a tool call whose url argument is already validated
type urlHandler func(ctx context.Context, url string, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// addURLTool registers a tool taking the url of a video plus opts
func (s *MCPServer) addURLTool(name, description string, handle urlHandler, opts ...mcp.ToolOption) {
	opts = append([]mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11 character video ID"),
			mcp.Required(),
		),
	}, opts...)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url must be a YouTube link or video ID"), nil
		}
		s.log.WithFields(logrus.Fields{"tool": name, "url": url}).Info("tool call")
		return handle(ctx, url, request)
	}

	s.handlers[name] = handler
	s.mcpServer.AddTool(mcp.NewTool(name, opts...), handler)
}

func (s *MCPServer) registerTools() {
	s.addURLTool("extract_video_id",
		"Extract the 11 character video ID and thumbnail URL from a YouTube link. Works offline.",
		s.extractVideoID)

	s.addURLTool("get_youtube_metadata",
		"Get video metadata including caption availability. If 'Has Captions' is true use get_youtube_transcript (free), otherwise consider transcribe_youtube_whisper (paid).",
		s.metadata)

	s.addURLTool("get_youtube_transcript",
		"Get the existing YouTube captions as plain text (FREE). Fails if the video has no captions.",
		s.transcript)

	s.addURLTool("transcribe_youtube_whisper",
		"Create a transcript with the OpenAI Whisper API (PAID, needs OPENAI_API_KEY). Only use it for videos without captions when the user agreed to the cost.",
		s.whisper)

	s.addURLTool("summarize_youtube_video",
		"Summarize a YouTube video from its captions with the configured LLM provider. Never uses Whisper.",
		s.summarize,
		mcp.WithString("length",
			mcp.Description("Summary length"),
			mcp.Enum(LengthShort.String(), LengthMedium.String(), LengthLong.String()),
			mcp.DefaultString(LengthMedium.String()),
		),
		mcp.WithBoolean("fallback_description",
			mcp.Description("Summarize the video description when no captions are available"),
		),
	)
}

func (s *MCPServer) extractVideoID(ctx context.Context, url string, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.app.VideoID(url)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("no video ID found", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Video ID: %s\nThumbnail: %s\n", id, ThumbnailURL(id))), nil
}

func (s *MCPServer) metadata(ctx context.Context, url string, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metadata, err := s.app.Metadata(ctx, url)
	if err != nil {
		s.log.WithError(err).Error("metadata failed")
		return mcp.NewToolResultErrorFromErr("metadata error", err), nil
	}
	return mcp.NewToolResultText(FormatMetadata(metadata)), nil
}

func (s *MCPServer) transcript(ctx context.Context, url string, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transcript, err := s.app.GetTranscript(ctx, url)
	if err != nil {
		s.log.WithError(err).Error("transcript failed")
		return mcp.NewToolResultErrorFromErr("no captions available, check get_youtube_metadata or consider transcribe_youtube_whisper (paid)", err), nil
	}
	return mcp.NewToolResultText(transcript), nil
}

func (s *MCPServer) whisper(ctx context.Context, url string, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	transcript, err := s.app.Transcribe(ctx, url)
	if err != nil {
		s.log.WithError(err).Error("whisper transcription failed")
		return mcp.NewToolResultErrorFromErr("Whisper transcription failed", err), nil
	}
	return mcp.NewToolResultText(transcript), nil
}

func (s *MCPServer) summarize(ctx context.Context, url string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	length, err := ParseSummaryLength(request.GetString("length", LengthMedium.String()))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := s.app.Summarize(ctx, url, SummarizeOptions{
		Length:              length,
		FallbackDescription: request.GetBool("fallback_description", false),
	})
	if err != nil {
		s.log.WithError(err).Error("summary failed")
		return mcp.NewToolResultErrorFromErr("failed to summarize video", err), nil
	}

	s.log.WithFields(logrus.Fields{"video_id": summary.VideoID, "source": summary.Source}).Debug("summary done")
	return mcp.NewToolResultText(summary.Text), nil
}

// FormatMetadata renders metadata as the plain text shown to MCP clients
func FormatMetadata(metadata *VideoMetadata) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Title: %s\n", metadata.Title)
	fmt.Fprintf(&buf, "Channel: %s\n", metadata.Channel)
	fmt.Fprintf(&buf, "Duration: %.0f seconds\n", metadata.Duration)
	fmt.Fprintf(&buf, "Description: %s\n", metadata.Description)
	fmt.Fprintf(&buf, "Has Captions: %t\n", metadata.HasCaptions)
	if metadata.ThumbnailURL != "" {
		fmt.Fprintf(&buf, "Thumbnail: %s\n", metadata.ThumbnailURL)
	}

	if len(metadata.Tags) > 0 {
		fmt.Fprintf(&buf, "Tags: %s\n", strings.Join(metadata.Tags, ", "))
	}
	if len(metadata.Categories) > 0 {
		fmt.Fprintf(&buf, "Categories: %s\n", strings.Join(metadata.Categories, ", "))
	}
	for _, ch := range metadata.Chapters {
		fmt.Fprintf(&buf, "Chapter (%.0f-%.0f): %s\n", ch.StartTime, ch.EndTime, ch.Title)
	}
	return buf.String()
}

// Start serves until ctx is cancelled, over stdio or streamable HTTP
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)

		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.Start(addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	}

	return server.ServeStdio(s.mcpServer)
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
