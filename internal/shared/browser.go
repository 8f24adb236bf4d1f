package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// openers maps GOOS to the command that hands a URL to the desktop.
var openers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// ParseWebURL accepts only absolute http(s) URLs with a host.
func ParseWebURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an http(s) url", ErrInvalidArgument, raw)
	}
	return u, nil
}

func browserCommand(goos, target string) (*exec.Cmd, error) {
	argv, ok := openers[goos]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
	args := append(append([]string{}, argv[1:]...), target)
	return exec.Command(argv[0], args...), nil
}

// OpenBrowser shows a song page in the system browser without waiting for it to exit.
func OpenBrowser(raw string) error {
	u, err := ParseWebURL(raw)
	if err != nil {
		return err
	}
	cmd, err := browserCommand(getRuntime(), u.String())
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", cmd.Path, err)
	}
	return nil
}
