package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fallback literals used when nothing better can be derived.
const (
	DefaultArtist = "Various Artists"
	DefaultTrack  = "Unknown Title"
)

// maxSplitArtistRunes is the exclusive upper bound on the length of an artist
// taken from a title split.
const maxSplitArtistRunes = 50

// Separators are tried in order; the first one present in the title wins.
var Separators = []string{" - ", " – ", " | ", " ｜ ", ": "}

// LabelWords mark a leading segment as a label or channel brand rather than
// the performer.
var LabelWords = []string{"beer", "music", "records", "entertainment", "studio", "production"}

// placeholderArtists are metadata values that carry no artist information.
var placeholderArtists = []string{"NA", "Unknown", DefaultArtist}

// Source identifies which branch of Parse produced a Match.
type Source int

const (
	// SourceDefault means neither the title nor the metadata named an artist.
	SourceDefault Source = iota
	// SourceSeparator means the title was split on a separator.
	SourceSeparator
	// SourceMetadata means the artist came from extractor metadata.
	SourceMetadata
)

func (s Source) String() string {
	switch s {
	case SourceSeparator:
		return "separator"
	case SourceMetadata:
		return "metadata"
	default:
		return "default"
	}
}

// Metadata holds the artist-like fields reported by the extraction tool.
type Metadata struct {
	Artist   string
	Creator  string
	Uploader string
}

// Match is the parsed identity of a title.
type Match struct {
	Artist    string
	Track     string
	Source    Source
	Separator string // set when Source is SourceSeparator
	Shifted   bool   // the leading label segment was skipped
}

// Parse splits raw into artist and track.
//
// A separator split is accepted when the candidate artist is shorter than 50
// runes and contains a letter. A leading segment containing a label
// word is skipped only when the title has at least three segments. When no
// separator yields an acceptable artist, the first non-empty metadata field
// (artist, creator, uploader) is used with the whole title as track, unless
// it is a placeholder, in which case DefaultArtist is returned.
func Parse(raw string, meta Metadata) Match {
	if m, ok := splitOnSeparator(raw); ok {
		return m
	}

	if artist := meta.firstArtist(); artist != "" && !isPlaceholder(artist) {
		return Match{Artist: artist, Track: raw, Source: SourceMetadata}
	}

	return Match{Artist: DefaultArtist, Track: raw, Source: SourceDefault}
}

func splitOnSeparator(raw string) (Match, bool) {
	for _, sep := range Separators {
		if !strings.Contains(raw, sep) {
			continue
		}
		parts := strings.Split(raw, sep)

		m := Match{
			Artist:    strings.TrimSpace(parts[0]),
			Track:     strings.TrimSpace(strings.Join(parts[1:], sep)),
			Source:    SourceSeparator,
			Separator: sep,
		}
		if hasLabelWord(m.Artist) && len(parts) >= 3 {
			m.Artist = strings.TrimSpace(parts[1])
			m.Track = strings.TrimSpace(strings.Join(parts[2:], sep))
			m.Shifted = true
		}

		if utf8.RuneCountInString(m.Artist) < maxSplitArtistRunes && hasLetter(m.Artist) {
			return m, true
		}
	}
	return Match{}, false
}

func (m Metadata) firstArtist() string {
	for _, v := range []string{m.Artist, m.Creator, m.Uploader} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func hasLabelWord(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range LabelWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isPlaceholder(s string) bool {
	for _, p := range placeholderArtists {
		if s == p {
			return true
		}
	}
	return false
}
