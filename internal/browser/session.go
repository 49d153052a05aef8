package browser

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nao1215/decklist/internal/extract"
	"github.com/nao1215/decklist/internal/model"
)

// Default timeouts.
const (
	// DefaultNavigationTimeout bounds navigation and the load event.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultSelectorTimeout bounds the wait for the first card row.
	DefaultSelectorTimeout = 30 * time.Second
)

// Session owns one browser process or connection.
// Fetch calls are serialized; the session handles one page at a time.
type Session struct {
	mu sync.Mutex

	logger *slog.Logger

	// controlURL is a DevTools endpoint of an already running browser.
	controlURL string

	// bin is an explicit browser executable.
	bin string

	// headless hides the browser window.
	headless bool

	// downloadDir is where a managed Chromium is stored.
	downloadDir string

	navigationTimeout time.Duration
	selectorTimeout   time.Duration

	// waitSelector must attach before a snapshot is taken.
	waitSelector string

	// now is replaced in tests.
	now func() time.Time

	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithControlURL connects to a running browser instead of launching one.
// Accepts a ws:// URL, an http://host:port address or a bare port.
func WithControlURL(u string) Option {
	return func(s *Session) {
		s.controlURL = u
	}
}

// WithBinary sets the browser executable to launch.
func WithBinary(path string) Option {
	return func(s *Session) {
		s.bin = path
	}
}

// WithHeadless toggles the browser window.
func WithHeadless(headless bool) Option {
	return func(s *Session) {
		s.headless = headless
	}
}

// WithDownloadDir sets where a managed Chromium is downloaded to.
func WithDownloadDir(dir string) Option {
	return func(s *Session) {
		s.downloadDir = dir
	}
}

// WithNavigationTimeout sets the navigation timeout.
func WithNavigationTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.navigationTimeout = d
	}
}

// WithSelectorTimeout sets how long to wait for the deck table.
func WithSelectorTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.selectorTimeout = d
	}
}

// WithWaitSelector overrides the CSS selector that marks a loaded deck.
func WithWaitSelector(selector string) Option {
	return func(s *Session) {
		s.waitSelector = selector
	}
}

// DefaultDownloadDir returns the managed browser directory under the XDG
// cache home.
func DefaultDownloadDir() string {
	return filepath.Join(xdg.CacheHome, "decklist", "browser")
}

// NewSession creates a Session. No browser is started until Start.
func NewSession(opts ...Option) *Session {
	s := &Session{
		headless:          true,
		downloadDir:       DefaultDownloadDir(),
		navigationTimeout: DefaultNavigationTimeout,
		selectorTimeout:   DefaultSelectorTimeout,
		waitSelector:      extract.RowSelector,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Start launches or connects to the browser. Calling Start on a started
// session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return nil
	}

	controlURL, err := s.resolveControlURL(ctx)
	if err != nil {
		return err
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		s.cleanupLauncher()
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	// Detach from the start context so later fetches are not bound to it.
	s.browser = b.Context(context.Background())

	s.logger.Debug("browser connected", "control_url", controlURL)
	return nil
}

// resolveControlURL returns a DevTools URL, launching a browser if needed.
func (s *Session) resolveControlURL(ctx context.Context) (string, error) {
	if s.controlURL != "" {
		u, err := launcher.ResolveURL(s.controlURL)
		if err != nil {
			return "", fmt.Errorf("failed to resolve control URL %s: %w", s.controlURL, err)
		}
		return u, nil
	}

	bin, err := s.resolveBinary(ctx)
	if err != nil {
		return "", err
	}

	l := launcher.New().Context(ctx).Bin(bin).Headless(s.headless)
	u, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser %s: %w", bin, err)
	}
	s.launcher = l

	s.logger.Debug("browser launched", "bin", bin, "headless", s.headless)
	return u, nil
}

// resolveBinary picks the browser executable: explicit, on PATH, or a
// managed download.
func (s *Session) resolveBinary(ctx context.Context) (string, error) {
	if s.bin != "" {
		return s.bin, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}

	s.logger.Info("no local browser found, downloading Chromium", "dir", s.downloadDir)
	b := launcher.NewBrowser()
	b.Context = ctx
	b.RootDir = s.downloadDir
	path, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("failed to download browser: %w", err)
	}
	return path, nil
}

// Fetch loads the URL in a new page, waits for the deck table and returns
// the page HTML. The page is closed before Fetch returns.
func (s *Session) Fetch(ctx context.Context, url string) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil, ErrNotStarted
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			s.logger.Debug("failed to close page", "error", err)
		}
	}()

	p := page.Context(ctx)

	s.logger.Debug("navigating", "url", url, "timeout", s.navigationTimeout)
	if err := p.Timeout(s.navigationTimeout).Navigate(url); err != nil {
		return nil, waitError(ctx, err, ErrNavigation, url)
	}
	if err := p.Timeout(s.navigationTimeout).WaitLoad(); err != nil {
		return nil, waitError(ctx, err, ErrNavigation, url)
	}

	s.logger.Debug("waiting for selector", "selector", s.waitSelector, "timeout", s.selectorTimeout)
	if _, err := p.Timeout(s.selectorTimeout).Element(s.waitSelector); err != nil {
		return nil, waitError(ctx, err, ErrSelectorTimeout, s.waitSelector)
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	finalURL := url
	if info, err := p.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &model.Snapshot{
		URL:       finalURL,
		HTML:      html,
		FetchedAt: s.now(),
	}, nil
}

// waitError maps a failed page operation. Cancellation of the caller's
// context is returned as is so that the loop can stop; anything else,
// including an expired step timeout, is wrapped in sentinel.
func waitError(ctx context.Context, err, sentinel error, subject string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %s: %w", sentinel, subject, err)
}

// Close shuts down the browser. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.browser != nil {
		// A connected (not launched) browser belongs to someone else.
		if s.launcher != nil {
			err = s.browser.Close()
		}
		s.browser = nil
	}
	s.cleanupLauncher()

	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

// cleanupLauncher stops a launched browser process and removes its
// temporary profile.
func (s *Session) cleanupLauncher() {
	if s.launcher == nil {
		return
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
	s.launcher = nil
}

// Started reports whether the session has a browser.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser != nil
}
