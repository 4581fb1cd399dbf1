package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length bounds for the two halves of an output filename.
const (
	ArtistMaxRunes = 50
	TrackMaxRunes  = 80
)

// Sanitize maps text to a filesystem-safe fragment of at most max runes
// (max <= 0 disables the bound). ASCII letters, digits, space, hyphen and
// underscore are kept, as is every non-ASCII rune so that non-Latin scripts
// survive; any other rune becomes a space. Whitespace runs collapse to one
// space and the result is trimmed, before and after truncation.
func Sanitize(text string, max int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if keepRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if max <= 0 {
		return cleaned
	}

	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:max]))
}

func keepRune(r rune) bool {
	if r > unicode.MaxASCII {
		return true
	}
	switch {
	case r == ' ', r == '-', r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return true
	}
	return false
}

// Filename builds "<artist> - <track><ext>" from a Match, sanitizing both
// halves and substituting the fallback literals for halves that sanitize to
// nothing. ext includes its leading dot.
func Filename(m Match, ext string) (artist, track, name string) {
	artist = Sanitize(m.Artist, ArtistMaxRunes)
	if artist == "" {
		artist = DefaultArtist
	}
	track = Sanitize(m.Track, TrackMaxRunes)
	if track == "" {
		track = DefaultTrack
	}
	return artist, track, artist + " - " + track + ext
}

// MaxNameBytes is the per-component filename limit of common filesystems.
const MaxNameBytes = 255

// DiskName fits name into MaxNameBytes by cutting the part before ext on a
// rune boundary. Names that already fit are returned unchanged.
func DiskName(name, ext string) string {
	if len(name) <= MaxNameBytes {
		return name
	}
	stem := strings.TrimSuffix(name, ext)
	cut := MaxNameBytes - len(ext)
	if cut > len(stem) {
		cut = len(stem)
	}
	for cut > 0 && !utf8.RuneStart(stem[cut]) {
		cut--
	}
	return strings.TrimSpace(stem[:cut]) + ext
}
