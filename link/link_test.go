package link

import (
	"strings"
	"testing"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "watch url", text: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: true},
		{name: "short link", text: "https://youtu.be/dQw4w9WgXcQ", want: true},
		{name: "mobile", text: "m.youtube.com/watch?v=abc", want: true},
		{name: "upper case", text: "HTTPS://YOUTU.BE/ABC", want: true},
		{name: "mixed case embedded in sentence", text: "listen to this WwW.YouTube.Com/watch?v=x please", want: true},
		{name: "bare domain without scheme", text: "youtube.com", want: true},
		{name: "other host", text: "https://vimeo.com/12345", want: false},
		{name: "plain text", text: "hello there", want: false},
		{name: "empty", text: "", want: false},
		{name: "near miss", text: "youtube dot com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupported(tt.text); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsSupportedEveryHostAnyCase(t *testing.T) {
	for _, host := range Hosts {
		for _, variant := range []string{host, strings.ToUpper(host), strings.Title(host)} { //nolint:staticcheck
			if !IsSupported("see " + variant + "/x") {
				t.Errorf("expected %q to be supported", variant)
			}
		}
	}
}
