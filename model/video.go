package model

import (
	"fmt"
	"strings"
)

// VideoInfo is the subset of the extraction tool's JSON metadata the bot
// reads. Newer tool versions report artists/creators as lists and keep the
// singular fields only for compatibility, so both shapes are decoded.
type VideoInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Uploader string   `json:"uploader"`
	Artist   string   `json:"artist"`
	Artists  []string `json:"artists"`
	Creator  string   `json:"creator"`
	Creators []string `json:"creators"`
	WebURL   string   `json:"webpage_url"`
	Duration float64  `json:"duration"`
}

// TitleOrDefault returns the title, or "Unknown Title" when the tool
// reported none.
func (v VideoInfo) TitleOrDefault() string {
	if t := strings.TrimSpace(v.Title); t != "" {
		return v.Title
	}
	return "Unknown Title"
}

// ArtistName prefers the singular field and falls back to the first listed
// artist.
func (v VideoInfo) ArtistName() string {
	return firstNonEmpty(v.Artist, v.Artists)
}

// CreatorName prefers the singular field and falls back to the first listed
// creator.
func (v VideoInfo) CreatorName() string {
	return firstNonEmpty(v.Creator, v.Creators)
}

// Seconds returns the duration truncated to whole seconds.
func (v VideoInfo) Seconds() int {
	if v.Duration <= 0 {
		return 0
	}
	return int(v.Duration)
}

// FormatDuration renders seconds as m:ss, or "Unknown" for zero.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func firstNonEmpty(single string, list []string) string {
	if strings.TrimSpace(single) != "" {
		return single
	}
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
