package internal

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner runs commands with os/exec and returns their combined output
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Audio cuts audio files with ffmpeg so every piece fits the Whisper upload limit
type Audio struct {
	cmdRunner CommandRunner
	tempDir   string
	log       logrus.FieldLogger
}

// NewAudio creates an audio splitter writing chunks to tempDir
func NewAudio(cmdRunner CommandRunner, tempDir string, log logrus.FieldLogger) *Audio {
	return &Audio{
		cmdRunner: cmdRunner,
		tempDir:   tempDir,
		log:       log,
	}
}

// span is a section of an audio file in whole seconds
type span struct {
	start  int
	length int
}

// spans divides duration into n sections of equal length. The last section
// may extend past the end, which ffmpeg tolerates.
func spans(duration float64, n int) []span {
	length := int(math.Ceil(duration / float64(n)))
	result := make([]span, n)
	for i := range result {
		result[i] = span{start: i * length, length: length}
	}
	return result
}

// Duration asks ffprobe for the length of audioFile in seconds
func (a *Audio) Duration(ctx context.Context, audioFile string) (float64, error) {
	out, err := a.cmdRunner.Run(ctx, "ffprobe",
		"-v", "quiet",
		"-i", audioFile,
		"-show_entries", "format=duration",
		"-of", "csv=p=0")
	if err != nil {
		return 0, fmt.Errorf("running ffprobe on %s: %w: %s", audioFile, err, strings.TrimSpace(string(out)))
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("reading duration of %s: %w", audioFile, err)
	}
	return seconds, nil
}

// Split writes numChunks pieces of audioFile to the temp directory and
// returns their paths in playback order. Pieces already written are removed
// when a later one fails.
func (a *Audio) Split(ctx context.Context, audioFile string, numChunks int) ([]string, error) {
	if numChunks < 1 {
		return nil, fmt.Errorf("cannot split audio into %d chunks", numChunks)
	}
	if err := EnsureDirs(a.tempDir); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	duration, err := a.Duration(ctx, audioFile)
	if err != nil {
		return nil, err
	}

	plan := spans(duration, numChunks)
	a.log.WithFields(logrus.Fields{
		"path":    audioFile,
		"chunks":  numChunks,
		"seconds": plan[0].length,
	}).Debug("splitting audio")

	base := filepath.Base(audioFile)
	paths := make([]string, 0, numChunks)
	for i, s := range plan {
		output := filepath.Join(a.tempDir, fmt.Sprintf("%s_chunk_%d.mp3", base, i))
		if err := a.Chunk(ctx, audioFile, s.start, s.length, output); err != nil {
			cleanupFiles(paths...)
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, numChunks, err)
		}
		paths = append(paths, output)
	}
	return paths, nil
}

// Chunk copies length seconds of audioFile starting at start into output
// without re-encoding
func (a *Audio) Chunk(ctx context.Context, audioFile string, start, length int, output string) error {
	out, err := a.cmdRunner.Run(ctx, "ffmpeg",
		"-v", "quiet",
		"-ss", strconv.Itoa(start),
		"-t", strconv.Itoa(length),
		"-i", audioFile,
		"-c:a", "copy",
		"-y", output)
	if err != nil {
		return fmt.Errorf("running ffmpeg: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
