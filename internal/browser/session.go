// Package browser wraps a chromedp browser session and exposes the few
// element operations the bot needs.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strconv"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/jakopako/clickr/internal/config"
	"github.com/jakopako/clickr/internal/log"
)

// ErrElementNotFound is returned if no element matches a selector. The
// page may still be loading or updating, so callers usually retry.
var ErrElementNotFound = errors.New("element not found")

// Session is a browser session rendering a single tab.
type Session struct {
	*config.BrowserConfig
	allocContext context.Context
	cancelAlloc  context.CancelFunc
	tabContext   context.Context
	cancelTab    context.CancelFunc
	logger       *slog.Logger
}

// Open starts a new browser and opens a tab. The browser lives until
// Close is called.
func Open(ctx context.Context, bc *config.BrowserConfig) (*Session, error) {
	logger := log.LoggerFromContext(ctx).With(slog.String("component", "browser"))

	width, height := bc.WindowWidth, bc.WindowHeight
	if width == 0 || height == 0 {
		width, height = 1920, 1080
	}
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(width, height),
		chromedp.Flag("headless", bc.Headless),
	)
	if bc.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(bc.UserAgent))
	}
	// only Close shuts down the browser, not the cancellation of ctx
	allocContext, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	tabContext, cancelTab := chromedp.NewContext(allocContext)

	s := &Session{
		BrowserConfig: bc,
		allocContext:  allocContext,
		cancelAlloc:   cancelAlloc,
		tabContext:    tabContext,
		cancelTab:     cancelTab,
		logger:        logger,
	}

	// the first Run starts the browser
	if err := chromedp.Run(tabContext, chromedp.ActionFunc(s.logVersion)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logger.Debug("opened browser session", slog.Bool("headless", bc.Headless))
	return s, nil
}

func (s *Session) logVersion(ctx context.Context) error {
	if !log.Debug {
		return nil
	}
	protocolVersion, product, revision, userAgent, jsVersion, err := cdpbrowser.GetVersion().Do(ctx)
	if err != nil {
		s.logger.Warn("failed to get chrome version", slog.String("err", err.Error()))
		return nil
	}
	s.logger.Debug(fmt.Sprintf("chrome version: protocolVersion=%s, product=%s, revision=%s, userAgent=%s, jsVersion=%s",
		protocolVersion, product, revision, userAgent, jsVersion))
	return nil
}

// Close shuts down the tab and the browser. It is safe to call Close
// more than once.
func (s *Session) Close() {
	s.cancelTab()
	s.cancelAlloc()
	s.logger.Debug("closed browser session")
}

// run executes actions in the session's tab, bounded by timeout (the
// action timeout if zero) and by ctx.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = s.ActionTimeout
	}
	// cancelling a child of the tab context aborts the actions but keeps
	// the tab open
	runCtx, cancel := context.WithCancel(s.tabContext)
	defer cancel()
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, timeout)
		defer cancelTimeout()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url in the session's tab.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("navigating", slog.String("url", url))
	return s.run(ctx, s.PageLoadTimeout, chromedp.Navigate(url))
}

// firstNode returns the first node matching sel without waiting for it
// to appear.
func firstNode(ctx context.Context, sel string) (*cdp.Node, error) {
	var nodes []*cdp.Node
	if err := chromedp.Nodes(sel, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, sel)
	}
	return nodes[0], nil
}

// Click performs a mouse click on the first element matching sel.
func (s *Session) Click(ctx context.Context, sel string) error {
	return s.run(ctx, 0, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := firstNode(ctx, sel)
		if err != nil {
			return err
		}
		return chromedp.MouseClickNode(node).Do(ctx)
	}))
}

// JSClick dispatches a click event on the first element matching sel
// from javascript. Unlike Click this also works for elements that are
// covered by other elements, eg. tooltips.
func (s *Session) JSClick(ctx context.Context, sel string) error {
	var found bool
	if err := s.run(ctx, 0, chromedp.Evaluate(jsClickExpr(sel), &found)); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrElementNotFound, sel)
	}
	return nil
}

func jsClickExpr(sel string) string {
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) {
			return false;
		}
		el.click();
		return true;
	})()`, strconv.Quote(sel))
}

// Text returns the visible text of the first element matching sel.
func (s *Session) Text(ctx context.Context, sel string) (string, error) {
	var text string
	err := s.run(ctx, 0, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := firstNode(ctx, sel)
		if err != nil {
			return err
		}
		return chromedp.Text([]cdp.NodeID{node.NodeID}, &text, chromedp.ByNodeID).Do(ctx)
	}))
	return text, err
}

// OuterHTML returns the html of the first element matching sel.
func (s *Session) OuterHTML(ctx context.Context, sel string) (string, error) {
	var html string
	err := s.run(ctx, 0, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := firstNode(ctx, sel)
		if err != nil {
			return err
		}
		return chromedp.OuterHTML([]cdp.NodeID{node.NodeID}, &html, chromedp.ByNodeID).Do(ctx)
	}))
	return html, err
}

// WaitVisible blocks until the first element matching sel is visible or
// timeout has passed.
func (s *Session) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitVisible(sel, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s not visible after %v", ErrElementNotFound, sel, timeout)
		}
		return err
	}
	return nil
}

// Screenshot writes a png screenshot of the tab to the debug directory
// and returns the file name.
func (s *Session) Screenshot(ctx context.Context, name string) (string, error) {
	if s.DebugDir != "" {
		if err := os.MkdirAll(s.DebugDir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create debug directory: %v", err)
		}
	}
	var buf []byte
	if err := s.run(ctx, s.PageLoadTimeout, chromedp.CaptureScreenshot(&buf)); err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}
	filename := path.Join(s.DebugDir, fmt.Sprintf("%s.png", name))
	if err := os.WriteFile(filename, buf, 0644); err != nil {
		return "", err
	}
	s.logger.Debug(fmt.Sprintf("wrote screenshot to file %s", filename))
	return filename, nil
}
