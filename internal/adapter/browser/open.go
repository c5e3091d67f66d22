// Package browser opens URLs in the user's default browser.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// System opens URLs with the platform's launcher.
type System struct {
	goos string
}

// NewSystem returns an opener for the running platform.
func NewSystem() System {
	return System{goos: runtime.GOOS}
}

// Command returns the launcher invocation for url.
func (s System) Command(url string) (string, []string) {
	switch s.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// Open starts the launcher without waiting for the browser to exit.
func (s System) Open(ctx context.Context, url string) error {
	name, args := s.Command(url)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}
