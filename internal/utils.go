package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rtzll/ytbrief/internal/videoid"
)

// ParseArg accepts a YouTube link or a bare video ID and returns the watch
// URL and the video ID
func ParseArg(arg string) (string, string, error) {
	arg = strings.TrimSpace(arg)
	if videoid.Valid(arg) {
		return watchURL(arg), arg, nil
	}

	id, ok := videoid.Extract(arg)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidVideoLink, arg)
	}
	return watchURL(id), id, nil
}

// IsLikelyCommand checks if a string looks like it might be a mistyped command
func IsLikelyCommand(arg string) bool {
	return len(arg) <= 10 && !strings.ContainsAny(arg, "/.?=")
}

// AskUser asks a yes/no question on stderr and reads the answer from stdin.
// Anything but an answer starting with y is a no. Tests replace it.
var AskUser = func(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// CleanupTempDir removes the temporary chunk directory and everything in it
func CleanupTempDir(tempDir string) error {
	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("removing %s: %w", tempDir, err)
	}
	return nil
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// wrapWidth is the glamour word wrap for the terminal on stdout, 80 when
// stdout is not a terminal
func wrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		return 80
	case width > 10:
		return width - 4 // glamour adds a margin
	default:
		return width
	}
}

// RenderMarkdown renders markdown for the terminal
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth()),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// PrintSummary writes a summary to w, rendered as markdown when w is a terminal
func PrintSummary(w io.Writer, summary string) error {
	if f, ok := w.(*os.File); ok && IsTerminal(f) {
		rendered, err := RenderMarkdown(summary)
		if err != nil {
			return err
		}
		summary = rendered
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// EnsureDirs creates every directory that does not exist yet
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// cleanupFiles removes temporary files, ignoring those already gone
func cleanupFiles(paths ...string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: could not remove %s: %v\n", path, err)
		}
	}
}
