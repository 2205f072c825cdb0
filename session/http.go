package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent mimics a desktop browser; the game serves a reduced page
// to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxBody bounds how much of a page is read into memory.
const maxBody = 8 << 20

// Options configures an HTTPSession.
type Options struct {
	CookieFile string // empty disables persistence
	UserAgent  string
	Timeout    time.Duration
	Transport  http.RoundTripper // nil uses http.DefaultTransport
	Logger     *slog.Logger
}

// HTTPSession is the net/http implementation of Session. Cookies live in a
// public-suffix aware jar and are persisted to a single file.
type HTTPSession struct {
	client     *http.Client
	jar        *cookiejar.Jar
	cookieFile string
	userAgent  string
	logger     *slog.Logger
	visited    map[string]*url.URL // cookie scopes seen this run, keyed by scopeKey
}

// NewHTTPSession builds a session with an empty cookie jar.
func NewHTTPSession(opts Options) (*HTTPSession, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &HTTPSession{
		client: &http.Client{
			Jar:       jar,
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		jar:        jar,
		cookieFile: opts.CookieFile,
		userAgent:  opts.UserAgent,
		logger:     opts.Logger,
		visited:    make(map[string]*url.URL),
	}, nil
}

func (s *HTTPSession) Fetch(ctx context.Context, address string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return Document{}, fmt.Errorf("build request: %w", err)
	}
	return s.do(ctx, req)
}

func (s *HTTPSession) Submit(ctx context.Context, address string, fields url.Values) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, strings.NewReader(fields.Encode()))
	if err != nil {
		return Document{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(ctx, req)
}

func (s *HTTPSession) do(ctx context.Context, req *http.Request) (Document, error) {
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Document{}, fmt.Errorf("%s %s: %w", req.Method, req.URL, ctx.Err())
		}
		return Document{}, Transient(fmt.Errorf("%s %s: %w", req.Method, req.URL, err))
	}
	defer resp.Body.Close()

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	s.remember(req.URL)
	s.remember(final)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Document{}, Transient(fmt.Errorf("read %s: %w", req.URL, err))
	}

	doc := Document{Address: final.String(), Status: resp.StatusCode, Body: body}
	switch {
	case resp.StatusCode >= 500:
		return doc, Transient(fmt.Errorf("%s %s: HTTP %d", req.Method, req.URL, resp.StatusCode))
	case resp.StatusCode >= 400:
		return doc, fmt.Errorf("%s %s: HTTP %d", req.Method, req.URL, resp.StatusCode)
	}
	s.logger.Debug("page loaded", "method", req.Method, "url", doc.Address, "status", resp.StatusCode, "bytes", len(body))
	return doc, nil
}

// remember records a cookie scope so PersistCredentials knows which cookies
// to write; the jar itself cannot be enumerated.
func (s *HTTPSession) remember(u *url.URL) {
	scope := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	s.visited[scopeKey(scope)] = scope
}

func scopeKey(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// PersistCredentials writes the cookies of every visited scope to the cookie file.
func (s *HTTPSession) PersistCredentials() error {
	if s.cookieFile == "" {
		return nil
	}
	store := cookieStore{Version: cookieStoreVersion, Scopes: make(map[string][]storedCookie)}
	for key, u := range s.visited {
		for _, c := range s.jar.Cookies(u) {
			store.Scopes[key] = append(store.Scopes[key], storedCookie{Name: c.Name, Value: c.Value})
		}
	}
	if err := writeCookieFile(s.cookieFile, store); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	s.logger.Info("saved authentication data", "file", s.cookieFile, "scopes", len(store.Scopes))
	return nil
}

// RestoreCredentials loads the cookie file into the jar.
func (s *HTTPSession) RestoreCredentials() (bool, error) {
	if s.cookieFile == "" {
		return false, nil
	}
	store, ok, err := readCookieFile(s.cookieFile)
	if err != nil {
		return false, fmt.Errorf("restore credentials: %w", err)
	}
	if !ok || len(store.Scopes) == 0 {
		return false, nil
	}
	for key, cookies := range store.Scopes {
		u, err := url.Parse(key)
		if err != nil {
			return false, fmt.Errorf("restore credentials: bad scope %q: %w", key, err)
		}
		hc := make([]*http.Cookie, 0, len(cookies))
		for _, c := range cookies {
			hc = append(hc, &http.Cookie{Name: c.Name, Value: c.Value})
		}
		s.jar.SetCookies(u, hc)
		s.visited[key] = u
	}
	s.logger.Info("found stored cookies", "file", s.cookieFile, "scopes", len(store.Scopes))
	return true, nil
}
