package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// YouTube caption endpoint: the watch page embeds ytInitialPlayerResponse,
// whose caption tracks point at timedtext XML documents.

const (
	playerResponseMarker = "ytInitialPlayerResponse = "
	captionsUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	watchPageLimit       = 6 << 20
	timedTextLimit       = 2 << 20
)

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" is auto-generated
}

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// Captions fetches transcripts from the public captions endpoint
type Captions struct {
	httpClient *http.Client
	languages  []string
	// watchBase is overridden in tests
	watchBase string
}

// NewCaptions creates a captions client. A nil client uses a 15s timeout.
func NewCaptions(httpClient *http.Client, languages []string) *Captions {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &Captions{
		httpClient: httpClient,
		languages:  languages,
		watchBase:  "https://www.youtube.com/watch?v=",
	}
}

// Transcript scrapes the watch page for caption tracks and fetches the best one
func (c *Captions) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	body, err := c.get(ctx, c.watchBase+videoID, watchPageLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: watch page: %w", ErrTranscriptUnavailable, err)
	}

	tracks, err := captionTracks(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptUnavailable, err)
	}

	track, ok := pickBestTrack(tracks, c.languages)
	if !ok {
		return nil, fmt.Errorf("%w: all caption tracks require a PoToken", ErrTranscriptUnavailable)
	}

	data, err := c.get(ctx, track.BaseURL, timedTextLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: timedtext: %w", ErrTranscriptUnavailable, err)
	}

	segments, err := parseTimedText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptUnavailable, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty caption track", ErrTranscriptUnavailable)
	}
	return segments, nil
}

func (c *Captions) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", captionsUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// captionTracks extracts the caption tracks from watch page HTML
func captionTracks(page []byte) ([]captionTrack, error) {
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	data := extractJSON(page[idx+len(playerResponseMarker):])
	if data == nil {
		return nil, errors.New("malformed ytInitialPlayerResponse")
	}

	var resp playerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding ytInitialPlayerResponse: %w", err)
	}
	if resp.Captions == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", resp.PlayabilityStatus.Reason)
		}
		return nil, errors.New("video has no captions")
	}

	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("video has no caption tracks")
	}
	return tracks, nil
}

// extractJSON returns the leading JSON object of b by brace matching
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// needsPoToken reports whether a track URL can only be fetched by a browser
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack prefers a manual track in a preferred language, then an
// automatic one, then any English track, then whatever is usable.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}

	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// parseTimedText decodes a timedtext XML document into segments
func parseTimedText(data []byte) ([]Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parsing timedtext XML: %w", err)
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// entities arrive double escaped ("&amp;#39;")
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
			Text:     text,
		})
	}
	return segments, nil
}

func parseSeconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
