// Package videoid extracts canonical YouTube video identifiers from links.
package videoid

import "regexp"

// Length is the number of characters in a YouTube video identifier.
const Length = 11

var (
	validRE = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

	// patterns are tried in order; the first valid candidate wins.
	patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
		regexp.MustCompile(`v=([^&?]+)`),
		regexp.MustCompile(`youtu\.be/([^?]+)`),
	}
)

// Extract returns the video identifier embedded in link. The boolean is false
// when no accepted form matched.
func Extract(link string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(link)
		if m == nil {
			continue
		}
		if Valid(m[1]) {
			return m[1], true
		}
	}
	return "", false
}

// Valid reports whether id is exactly 11 characters of [0-9A-Za-z_-].
func Valid(id string) bool {
	return validRE.MatchString(id)
}
