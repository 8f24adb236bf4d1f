package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLyrics(t *testing.T) {
	tc := []struct {
		name string
		html string
		want string
	}{
		{
			name: "containers joined by blank line",
			html: `<html><body>
				<div data-lyrics-container="true">  Line one<br>Line two  </div>
				<p>ad</p>
				<div data-lyrics-container="true"><i>Chorus</i></div>
			</body></html>`,
			want: "Line one\nLine two\n\nChorus",
		},
		{
			name: "container false is ignored",
			html: `<div data-lyrics-container="false">nope</div><div class="song lyrics"> legacy text </div>`,
			want: "legacy text",
		},
		{
			name: "legacy fallback uses first match",
			html: `<div class="lyrics">first</div><div class="lyrics">second</div>`,
			want: "first",
		},
		{
			name: "class must match exactly",
			html: `<div class="lyrics-header">header</div>`,
			want: NotFound,
		},
		{
			name: "excluded header skipped",
			html: `<div data-lyrics-container="true"><div data-exclude-from-selection="true">12 Contributors</div>[Verse 1]<br/>Hello</div>`,
			want: "[Verse 1]\nHello",
		},
		{
			name: "nothing found",
			html: `<html><body><p>no lyrics here</p></body></html>`,
			want: NotFound,
		},
		{
			name: "empty document",
			html: ``,
			want: NotFound,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lyrics(tt.html))
		})
	}
}

func TestLyricsNeverPanics(t *testing.T) {
	inputs := []string{
		"<<<>>>",
		"<div data-lyrics-container=\"true\"",
		strings.Repeat("<div>", 500),
		"\x00\xff\xfe",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Lyrics(in) })
	}
}

func TestFound(t *testing.T) {
	assert.False(t, Found(NotFound))
	assert.False(t, Found(ParseError))
	assert.True(t, Found("la la"))
	assert.Equal(t, "2 lines", Describe("a\nb"))
	assert.Equal(t, NotFound, Describe(NotFound))
}
