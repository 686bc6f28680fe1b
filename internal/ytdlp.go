package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
)

// YouTube handles yt-dlp backed metadata, caption and audio operations
type YouTube struct {
	cacheDir    string
	log         logrus.FieldLogger
	installOnce sync.Once
}

// NewYouTube creates a yt-dlp client writing its downloads to cacheDir
func NewYouTube(cacheDir string, log logrus.FieldLogger) *YouTube {
	return &YouTube{
		cacheDir: cacheDir,
		log:      log,
	}
}

// ensureInstalled downloads yt-dlp on first use if it is not on the PATH
func (yt *YouTube) ensureInstalled(ctx context.Context) {
	yt.installOnce.Do(func() {
		ytdlp.MustInstall(ctx, nil)
	})
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func stderrOf(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	return result.Stderr
}

// Metadata fetches video details using go-ytdlp
func (yt *YouTube) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	yt.ensureInstalled(ctx)
	log := yt.log.WithField("video_id", videoID)
	log.Debug("extracting video metadata")

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, watchURL(videoID))
	if err != nil {
		log.WithError(err).Debugf("yt-dlp stderr: %s", stderrOf(result))
		return nil, fmt.Errorf("extracting video metadata: %w: %w", ErrMetadataNotFound, err)
	}

	// Parse into a raw map first to read subtitle availability
	var rawData map[string]any
	if err := json.Unmarshal([]byte(result.Stdout), &rawData); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	var metadata VideoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	metadata.ID = videoID
	metadata.HasCaptions = extractSubtitleInfo(rawData)
	metadata.ThumbnailURL = ThumbnailURL(videoID)

	log.WithFields(logrus.Fields{
		"title":    metadata.Title,
		"channel":  metadata.Channel,
		"duration": metadata.Duration,
		"chapters": len(metadata.Chapters),
	}).Debug("metadata extraction completed")

	return &metadata, nil
}

// Audio downloads the mp3 audio track of a video and returns its path
func (yt *YouTube) Audio(ctx context.Context, videoID string) (string, error) {
	yt.ensureInstalled(ctx)
	log := yt.log.WithField("video_id", videoID)
	log.Debug("downloading audio")

	if err := EnsureDirs(yt.cacheDir); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	dl := ytdlp.New().
		Format("bestaudio").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("10"). // 0 is best, 10 is worst
		Output(filepath.Join(yt.cacheDir, "%(id)s.%(ext)s"))

	result, err := dl.Run(ctx, watchURL(videoID))
	if err != nil {
		return "", fmt.Errorf("%w: yt-dlp: %w\nOutput: %s", ErrDownloadFailed, err, stderrOf(result))
	}

	log.Debug("audio download completed")
	return filepath.Join(yt.cacheDir, videoID+".mp3"), nil
}

// Transcript downloads English subtitles (manual or automatic) as SRT and
// returns their segments. Downloaded files are removed after reading.
func (yt *YouTube) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	yt.ensureInstalled(ctx)
	log := yt.log.WithField("video_id", videoID)
	log.Debug("downloading subtitles")

	if err := EnsureDirs(yt.cacheDir); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs("en").
		ConvertSubs("srt").
		SkipDownload().
		Output(filepath.Join(yt.cacheDir, "%(id)s"))

	result, err := dl.Run(ctx, watchURL(videoID))
	if err != nil {
		log.WithError(err).Debugf("yt-dlp stderr: %s", stderrOf(result))
		return nil, fmt.Errorf("%w: %w: %w", ErrTranscriptUnavailable, ErrDownloadFailed, err)
	}

	files, err := filepath.Glob(filepath.Join(yt.cacheDir, videoID+"*.srt"))
	if err != nil || len(files) == 0 {
		return nil, fmt.Errorf("%w: no subtitle files found for %s", ErrTranscriptUnavailable, videoID)
	}
	defer cleanupFiles(files...)

	log.Debugf("found %d subtitle file(s)", len(files))

	content, err := os.ReadFile(files[0])
	if err != nil {
		return nil, fmt.Errorf("reading SRT file: %w", err)
	}

	segments := removeDuplicates(parseSRT(string(content)))
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: subtitles for %s are empty", ErrTranscriptUnavailable, videoID)
	}
	return segments, nil
}

// parseSRT extracts timed text blocks from SRT content
func parseSRT(content string) []Segment {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var segments []Segment

	for block := range strings.SplitSeq(content, "\n\n") {
		blockLines := strings.Split(strings.TrimSpace(block), "\n")
		if len(blockLines) < 3 {
			continue
		}

		start, end, ok := parseSRTTiming(blockLines[1])
		if !ok {
			continue
		}

		// Skip sequence number and timestamp, keep text lines
		var text []string
		for _, line := range blockLines[2:] {
			if line = strings.TrimSpace(line); line != "" {
				text = append(text, line)
			}
		}
		if len(text) == 0 {
			continue
		}

		segments = append(segments, Segment{
			Start:    start,
			Duration: end - start,
			Text:     strings.Join(text, " "),
		})
	}

	return segments
}

// parseSRTTiming parses "00:00:01,000 --> 00:00:03,500"
func parseSRTTiming(line string) (time.Duration, time.Duration, bool) {
	from, to, found := strings.Cut(line, "-->")
	if !found {
		return 0, 0, false
	}
	start, err := parseSRTTimestamp(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, false
	}
	end, err := parseSRTTimestamp(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func parseSRTTimestamp(ts string) (time.Duration, error) {
	clock, millis, _ := strings.Cut(strings.ReplaceAll(ts, ".", ","), ",")
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid SRT timestamp: %q", ts)
	}

	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid SRT timestamp: %q", ts)
		}
		total += time.Duration(n) * units[i]
	}

	if millis != "" {
		n, err := strconv.Atoi(millis)
		if err != nil {
			return 0, fmt.Errorf("invalid SRT timestamp: %q", ts)
		}
		total += time.Duration(n) * time.Millisecond
	}
	return total, nil
}

// extractSubtitleInfo extracts subtitle availability from yt-dlp JSON output
func extractSubtitleInfo(rawData map[string]any) bool {
	if subtitles, ok := rawData["subtitles"].(map[string]any); ok && len(subtitles) > 0 {
		return true
	}
	if autoCaptions, ok := rawData["automatic_captions"].(map[string]any); ok && len(autoCaptions) > 0 {
		return true
	}
	return false
}
