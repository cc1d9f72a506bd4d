// Package rod renders challenge pages in a Chrome browser so notes can be
// generated from JavaScript-built markup and the page's web storage.
package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/writeup"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultLoadTimeout bounds navigation plus rendering of one page.
const DefaultLoadTimeout = 10 * time.Second

// Ensure Loader implements writeup.PageLoader at compile time.
var _ writeup.PageLoader = (*Loader)(nil)

// storageScript returns both storage areas of the current origin as a JSON
// document {"local": {...}, "session": {...}}.
const storageScript = `() => {
	const dump = (s) => {
		const out = {};
		try {
			for (let i = 0; i < s.length; i++) {
				const k = s.key(i);
				out[k] = s.getItem(k);
			}
		} catch (e) {}
		return out;
	};
	return JSON.stringify({local: dump(window.localStorage), session: dump(window.sessionStorage)});
}`

// Loader loads pages through a Chrome browser. Each Load opens a fresh tab
// which is closed before returning.
//
// Loader is safe for concurrent use.
type Loader struct {
	timeout     time.Duration
	settle      time.Duration
	headless    bool
	userDataDir string

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the per-page load timeout. Defaults to DefaultLoadTimeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithSettle waits until the DOM has not changed for d after the load event.
// Useful for single-page apps that fill in content after loading.
func WithSettle(d time.Duration) Option {
	return func(l *Loader) {
		l.settle = d
	}
}

// WithHeadless toggles headless mode. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(l *Loader) {
		l.headless = headless
	}
}

// WithUserDataDir runs Chrome with a persistent profile, so logins and
// stored tokens survive between runs.
func WithUserDataDir(dir string) Option {
	return func(l *Loader) {
		l.userDataDir = dir
	}
}

// NewLoader launches Chrome and connects to it.
// Close must be called when the Loader is no longer needed.
//
// Returns EUNAVAILABLE if Chrome cannot be found or launched.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{
		timeout:  DefaultLoadTimeout,
		headless: true,
	}
	for _, opt := range opts {
		opt(l)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(l.headless)
	if l.userDataDir != "" {
		lnchr = lnchr.UserDataDir(l.userDataDir)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	l.browser = browser
	l.launcher = lnchr
	return l, nil
}

// Load navigates to url and returns the rendered page. The returned page
// carries a snapshot of the origin's localStorage and sessionStorage and
// the cookies the browser would send to the page URL.
func (l *Loader) Load(ctx context.Context, url string) (*writeup.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	browser := l.browser
	l.mu.Unlock()
	if browser == nil {
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "browser closed")
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, writeup.Errorf(writeup.EUNAVAILABLE, "opening tab: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, loadError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, loadError(ctx, url, err)
	}
	if l.settle > 0 {
		if err := page.WaitDOMStable(l.settle, 0); err != nil {
			return nil, loadError(ctx, url, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, loadError(ctx, url, err)
	}

	result := &writeup.Page{URL: url, HTML: html}
	if info, err := page.Info(); err == nil {
		result.URL = info.URL
		result.Title = info.Title
	}

	storage, err := snapshotStorage(page)
	if err != nil {
		return nil, loadError(ctx, url, err)
	}
	result.Storage = storage

	cookies, err := page.Cookies([]string{result.URL})
	if err != nil {
		return nil, loadError(ctx, url, err)
	}
	result.Cookies = HTTPCookies(cookies)

	return result, nil
}

// HTTPCookies converts browser cookies to name/value pairs suitable for a
// Cookie request header.
func HTTPCookies(cookies []*proto.NetworkCookie) []*http.Cookie {
	if len(cookies) == 0 {
		return nil
	}
	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

func snapshotStorage(page *rod.Page) (writeup.StorageSnapshot, error) {
	obj, err := page.Eval(storageScript)
	if err != nil {
		return nil, fmt.Errorf("reading storage: %w", err)
	}
	return ParseStorage(obj.Value.Str())
}

// ParseStorage decodes the JSON produced by the in-page storage dump.
// Returns EINVALID for malformed input.
func ParseStorage(raw string) (writeup.StorageSnapshot, error) {
	var dump struct {
		Local   map[string]string `json:"local"`
		Session map[string]string `json:"session"`
	}
	if err := json.Unmarshal([]byte(raw), &dump); err != nil {
		return nil, writeup.Errorf(writeup.EINVALID, "malformed storage dump: %v", err)
	}

	snapshot := writeup.NewStorageSnapshot()
	for k, v := range dump.Local {
		snapshot[writeup.ScopeLocal][k] = v
	}
	for k, v := range dump.Session {
		snapshot[writeup.ScopeSession][k] = v
	}
	return snapshot, nil
}

// loadError keeps context errors intact so callers can match them with
// errors.Is.
func loadError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if writeup.ErrorCode(err) != writeup.EINTERNAL {
		return err
	}
	return writeup.Errorf(writeup.EUNAVAILABLE, "rendering %s: %v", url, err)
}

// Close shuts down the browser and its launcher process.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.browser != nil {
		err = l.browser.Close()
		l.browser = nil
	}
	if l.launcher != nil {
		l.launcher.Kill()
		l.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 after
// Close. It exists so tests can verify cleanup.
func (l *Loader) LauncherPID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.launcher == nil {
		return 0
	}
	return l.launcher.PID()
}
