package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

const dataAPIBase = "https://www.googleapis.com/youtube/v3"

type dataAPIVideosResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			ChannelTitle string   `json:"channelTitle"`
			Tags         []string `json:"tags"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
			Caption  string `json:"caption"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// DataAPI fetches metadata from the YouTube Data API v3
type DataAPI struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewDataAPI creates a Data API client authenticated with apiKey. A nil client
// uses a 15s timeout.
func NewDataAPI(httpClient *http.Client, apiKey string) *DataAPI {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &DataAPI{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    dataAPIBase,
	}
}

func (d *DataAPI) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if d.apiKey == "" {
		return nil, fmt.Errorf("%w: YouTube API key is required - set youtube_api_key in config.toml or YOUTUBE_API_KEY", ErrUnauthorized)
	}

	q := url.Values{}
	q.Set("part", "snippet,contentDetails")
	q.Set("id", videoID)
	q.Set("key", d.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching video metadata: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUnauthorized, resp.StatusCode, snippet)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, videoID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching video metadata: HTTP %d", resp.StatusCode)
	}

	var data dataAPIVideosResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding video metadata: %w", err)
	}
	if len(data.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, videoID)
	}

	item := data.Items[0]
	return &VideoMetadata{
		ID:           videoID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		Channel:      item.Snippet.ChannelTitle,
		Tags:         item.Snippet.Tags,
		Duration:     parseISODuration(item.ContentDetails.Duration).Seconds(),
		HasCaptions:  item.ContentDetails.Caption == "true",
		ThumbnailURL: ThumbnailURL(videoID),
	}, nil
}

var isoDurationRE = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration parses Data API durations such as "PT1H2M3S". Unknown
// formats yield zero.
func parseISODuration(s string) time.Duration {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, _ := strconv.Atoi(m[i+1])
		total += time.Duration(n) * unit
	}
	return total
}
