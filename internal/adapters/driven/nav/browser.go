// Package nav opens search results in the user's default browser.
package nav

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
	"github.com/cabinet-lcv/cherche-cli/internal/logger"
)

// Ensure Browser implements the interface.
var _ driven.Navigator = (*Browser)(nil)

// Browser resolves site-relative routes against the site's base URL and
// opens them in the default browser.
type Browser struct {
	baseURL string
	open    func(url string) error
}

// NewBrowser creates a navigator for the given site base URL, e.g.
// "https://www.cabinet-lcv.fr".
func NewBrowser(baseURL string) *Browser {
	return &Browser{
		baseURL: strings.TrimRight(baseURL, "/"),
		open:    openBrowser,
	}
}

// Navigate resolves target against the site base URL and opens it.
func (b *Browser) Navigate(_ context.Context, target string) error {
	resolved, err := b.Resolve(target)
	if err != nil {
		return err
	}

	logger.Debug("opening %s", resolved)
	return b.open(resolved)
}

// Resolve turns a site-relative route into an absolute URL. Absolute
// URLs pass through unchanged.
func (b *Browser) Resolve(target string) (string, error) {
	if target == "" {
		return "", domain.ErrInvalidInput
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", target, err)
	}
	if u.IsAbs() {
		return target, nil
	}

	if b.baseURL == "" {
		return "", fmt.Errorf("relative route %q without a site base url: %w",
			target, domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return b.baseURL + target, nil
}

// openBrowser opens the default browser to the given URL.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
