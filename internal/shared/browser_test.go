package shared

import (
	"errors"
	"slices"
	"testing"
)

func TestParseWebURL(t *testing.T) {
	for _, raw := range []string{"https://genius.com/Adele-hello-lyrics", "http://example.com/a?b=c"} {
		if _, err := ParseWebURL(raw); err != nil {
			t.Errorf("ParseWebURL(%q) = %v", raw, err)
		}
	}
	for _, raw := range []string{"", "genius.com/song", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		if _, err := ParseWebURL(raw); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseWebURL(%q) error = %v, want ErrInvalidArgument", raw, err)
		}
	}
}

func TestBrowserCommand(t *testing.T) {
	t.Run("windows passes the url last", func(t *testing.T) {
		cmd, err := browserCommand("windows", "https://genius.com")
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"rundll32", "url.dll,FileProtocolHandler", "https://genius.com"}
		if !slices.Equal(cmd.Args, want) {
			t.Errorf("args = %v, want %v", cmd.Args, want)
		}
	})

	t.Run("linux", func(t *testing.T) {
		cmd, err := browserCommand("linux", "https://genius.com")
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(cmd.Args, []string{"xdg-open", "https://genius.com"}) {
			t.Errorf("args = %v", cmd.Args)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		if _, err := browserCommand("plan9", "https://genius.com"); err == nil {
			t.Error("expected error for plan9")
		}
	})

	t.Run("OpenBrowser rejects before launching", func(t *testing.T) {
		prev := getRuntime
		t.Cleanup(func() { getRuntime = prev })
		getRuntime = func() string { return "plan9" }

		if err := OpenBrowser("ftp://example.com"); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
		if err := OpenBrowser("https://example.com"); err == nil || errors.Is(err, ErrInvalidArgument) {
			t.Errorf("error = %v, want unsupported platform", err)
		}
	})
}
