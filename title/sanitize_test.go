package title

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "plain", in: "Artist Name", max: 50, want: "Artist Name"},
		{name: "punctuation becomes space", in: "AC/DC: Back (Live)", max: 50, want: "AC DC Back Live"},
		{name: "keeps hyphen and underscore", in: "lo-fi_beats", max: 50, want: "lo-fi_beats"},
		{name: "collapses whitespace", in: "  a \t\n  b  ", max: 50, want: "a b"},
		{name: "khmer preserved", in: "ចម្រៀង ខ្មែរ", max: 50, want: "ចម្រៀង ខ្មែរ"},
		{name: "cjk preserved", in: "歌手/曲名", max: 50, want: "歌手 曲名"},
		{name: "emoji preserved", in: "Song 🎵!", max: 50, want: "Song 🎵"},
		{name: "empty", in: "", max: 50, want: ""},
		{name: "only symbols", in: "?!*<>|", max: 50, want: ""},
		{name: "truncates then trims", in: "abc def", max: 4, want: "abc"},
		{name: "truncates by rune", in: "ខ្មែរខ្មែរ", max: 3, want: "ខ្ម"},
		{name: "no bound", in: strings.Repeat("x", 200), max: 0, want: strings.Repeat("x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in, tt.max); got != tt.want {
				t.Errorf("Sanitize(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"GANZBERG Beer - John Doe - My Song",
		"a  b",
		"tab\tand\nnewline",
		"ចម្រៀង   ខ្មែរ (Official MV) [4K]",
		"　全角　スペース　",
		"bad utf8 \xff\xfe here",
		strings.Repeat("word ", 40),
		strings.Repeat("ខ", 120),
		"x" + strings.Repeat(" ", 48) + "y",
	}
	for _, in := range inputs {
		for _, max := range []int{0, 1, 5, ArtistMaxRunes, TrackMaxRunes} {
			once := Sanitize(in, max)
			twice := Sanitize(once, max)
			if once != twice {
				t.Errorf("Sanitize not idempotent for %q (max %d): %q then %q", in, max, once, twice)
			}
			if max > 0 && utf8.RuneCountInString(once) > max {
				t.Errorf("Sanitize(%q, %d) = %q exceeds bound", in, max, once)
			}
		}
	}
}

func TestFilename(t *testing.T) {
	artist, track, name := Filename(Match{Artist: "AC/DC", Track: "T.N.T."}, ".mp3")
	if artist != "AC DC" || track != "T N T" {
		t.Fatalf("unexpected halves: %q / %q", artist, track)
	}
	if name != "AC DC - T N T.mp3" {
		t.Fatalf("unexpected filename %q", name)
	}

	artist, track, name = Filename(Match{Artist: "???", Track: "!!!"}, ".mp3")
	if artist != DefaultArtist || track != DefaultTrack {
		t.Fatalf("expected fallbacks, got %q / %q", artist, track)
	}
	if name != DefaultArtist+" - "+DefaultTrack+".mp3" {
		t.Fatalf("unexpected filename %q", name)
	}

	long := strings.Repeat("a", 100)
	artist, track, _ = Filename(Match{Artist: long, Track: long}, ".mp3")
	if len(artist) != ArtistMaxRunes || len(track) != TrackMaxRunes {
		t.Fatalf("bounds not applied: %d / %d", len(artist), len(track))
	}
}

func TestDiskName(t *testing.T) {
	if got := DiskName("A - B.mp3", ".mp3"); got != "A - B.mp3" {
		t.Fatalf("short name changed: %q", got)
	}

	_, _, name := Filename(Match{Artist: strings.Repeat("ក", ArtistMaxRunes), Track: strings.Repeat("ខ", TrackMaxRunes)}, ".mp3")
	if len(name) <= MaxNameBytes {
		t.Fatalf("expected display name over %d bytes, got %d", MaxNameBytes, len(name))
	}

	got := DiskName(name, ".mp3")
	if len(got) > MaxNameBytes {
		t.Fatalf("disk name is %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("disk name split a rune: %q", got)
	}
	if !strings.HasSuffix(got, ".mp3") || !strings.HasPrefix(name, strings.TrimSuffix(got, ".mp3")) {
		t.Fatalf("disk name %q is not a prefix of %q plus extension", got, name)
	}
}
