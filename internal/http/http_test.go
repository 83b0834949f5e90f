package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"titleview/internal/config"
	"titleview/internal/session"
	"titleview/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testConfig = `
app:
  title: "Test page"
  name: "Default"
  initial_number: 3
security:
  session_secret: test-secret
ratelimit:
  limit: 100
  window: 1m
`

func newHandler(t *testing.T, src string) http.Handler {
	t.Helper()
	cfg, err := config.FromReader(strings.NewReader(src))
	require.NoError(t, err)
	codec, err := session.NewCodec(cfg.Security.SessionSecret, cfg.SessionTTL())
	require.NoError(t, err)
	mux, err := NewMux(cfg, codec)
	require.NoError(t, err)
	return WithStandardMiddleware(mux, codec)
}

// captureLogs points the default logger at a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postCounter(t *testing.T, h http.Handler, referer, key, action string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	if key != "" {
		form.Set("key", key)
	}
	if action != "" {
		form.Set("action", action)
	}
	req := httptest.NewRequest(http.MethodPost, view.CounterPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func stateCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", session.CookieName)
	return nil
}

func TestPage_RendersProps(t *testing.T) {
	h := newHandler(t, testConfig)
	rec := get(t, h, "/?name=Alice&n=5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>title:Alice</h1>")
	assert.Contains(t, body, `<span class="counter-value">5</span>`)
	assert.Contains(t, body, `data-default="5"`)
	assert.Contains(t, body, "<title>Test page</title>")
	assert.Contains(t, body, `"Name":"Alice"`)
	assert.Contains(t, body, `"InitialNumber":5`)
}

func TestPage_ConfigDefaults(t *testing.T) {
	h := newHandler(t, testConfig)
	body := get(t, h, "/").Body.String()
	assert.Contains(t, body, "<h1>title:Default</h1>")
	assert.Contains(t, body, `<span class="counter-value">3</span>`)
}

func TestPage_EmptyNameOverride(t *testing.T) {
	h := newHandler(t, testConfig)
	body := get(t, h, "/?name=").Body.String()
	assert.Contains(t, body, "<h1>title:</h1>")
}

func TestPage_NonNumericFallsBack(t *testing.T) {
	h := newHandler(t, testConfig)
	rec := get(t, h, "/?n=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<span class="counter-value">3</span>`)
}

func TestPage_EscapesName(t *testing.T) {
	h := newHandler(t, testConfig)
	body := get(t, h, "/?name="+url.QueryEscape("<b>x</b>")).Body.String()
	assert.Contains(t, body, "<h1>title:&lt;b&gt;x&lt;/b&gt;</h1>")
	assert.NotContains(t, body, "<b>x</b>")
}

func TestPage_Idempotent(t *testing.T) {
	h := newHandler(t, testConfig)
	first := get(t, h, "/?name=Alice&n=5").Body.String()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, get(t, h, "/?name=Alice&n=5").Body.String())
	}
}

func TestPage_OneRenderLogPerRequest(t *testing.T) {
	logs := captureLogs(t)
	h := newHandler(t, testConfig)

	get(t, h, "/?name=Alice&n=5")
	get(t, h, "/?name=Alice&n=5")

	var rendered int
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry struct {
			Msg       string     `json:"msg"`
			RequestID string     `json:"request_id"`
			Props     view.Props `json:"props"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry.Msg != view.RenderedMsg {
			continue
		}
		rendered++
		assert.Equal(t, view.Props{Name: "Alice", InitialNumber: 5}, entry.Props)
		assert.NotEmpty(t, entry.RequestID)
	}
	assert.Equal(t, 2, rendered)
}

func TestPage_RenderLogDisabled(t *testing.T) {
	logs := captureLogs(t)
	h := newHandler(t, testConfig+"debug:\n  log_renders: false\n")
	get(t, h, "/")
	assert.NotContains(t, logs.String(), view.RenderedMsg)
}

func TestCounter_IncrementFlow(t *testing.T) {
	h := newHandler(t, testConfig)

	rec := postCounter(t, h, "http://example.com/?name=A&n=5", view.CounterKey, view.ActionIncrement)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?n=5&name=A", rec.Header().Get("Location"))
	ck := stateCookie(t, rec)

	body := get(t, h, "/?name=A&n=5", ck).Body.String()
	assert.Contains(t, body, `<span class="counter-value">6</span>`)
	assert.Contains(t, body, "<h1>title:A</h1>")

	rec = postCounter(t, h, "http://example.com/?name=A&n=5", view.CounterKey, view.ActionIncrement, ck)
	ck = stateCookie(t, rec)
	rec = postCounter(t, h, "http://example.com/?name=A&n=5", view.CounterKey, view.ActionDecrement, ck)
	ck = stateCookie(t, rec)
	body = get(t, h, "/?name=A&n=5", ck).Body.String()
	assert.Contains(t, body, `<span class="counter-value">6</span>`)

	rec = postCounter(t, h, "http://example.com/?name=A&n=5", view.CounterKey, view.ActionReset, ck)
	ck = stateCookie(t, rec)
	body = get(t, h, "/?name=A&n=5", ck).Body.String()
	assert.Contains(t, body, `<span class="counter-value">5</span>`)
}

func TestCounter_ForeignRefererIgnored(t *testing.T) {
	h := newHandler(t, testConfig)
	rec := postCounter(t, h, "http://evil.test/?n=9", view.CounterKey, view.ActionIncrement)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestCounter_BadRequests(t *testing.T) {
	h := newHandler(t, testConfig)

	assert.Equal(t, http.StatusBadRequest, postCounter(t, h, "", view.CounterKey, "explode").Code)
	assert.Equal(t, http.StatusBadRequest, postCounter(t, h, "", "no/such", view.ActionIncrement).Code)
	assert.Equal(t, http.StatusBadRequest, postCounter(t, h, "", "", view.ActionIncrement).Code)
	assert.Equal(t, http.StatusBadRequest, postCounter(t, h, "", view.CounterKey, "").Code)
}

func TestCounter_InvalidCookieStartsFresh(t *testing.T) {
	h := newHandler(t, testConfig)
	bad := &http.Cookie{Name: session.CookieName, Value: "garbage"}
	body := get(t, h, "/?n=2", bad).Body.String()
	assert.Contains(t, body, `<span class="counter-value">2</span>`)
}

func TestCounter_RateLimited(t *testing.T) {
	h := newHandler(t, strings.Replace(testConfig, "limit: 100", "limit: 1", 1))

	assert.Equal(t, http.StatusSeeOther, postCounter(t, h, "", view.CounterKey, view.ActionIncrement).Code)
	assert.Equal(t, http.StatusTooManyRequests, postCounter(t, h, "", view.CounterKey, view.ActionIncrement).Code)
}

func TestCounter_StateDoesNotOverrideNewInitialNumber(t *testing.T) {
	h := newHandler(t, testConfig)

	rec := postCounter(t, h, "/?name=A&n=5", view.CounterKey, view.ActionIncrement)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	ck := stateCookie(t, rec)

	body := get(t, h, "/?name=Alice&n=100", ck).Body.String()
	assert.Contains(t, body, "<h1>title:Alice</h1>")
	assert.Contains(t, body, `<span class="counter-value">100</span>`)

	body = get(t, h, "/?name=A&n=5", ck).Body.String()
	assert.Contains(t, body, `<span class="counter-value">6</span>`)

	rec = postCounter(t, h, "/?name=Alice&n=100", view.CounterKey, view.ActionIncrement, ck)
	ck = stateCookie(t, rec)
	body = get(t, h, "/?name=Alice&n=100", ck).Body.String()
	assert.Contains(t, body, `<span class="counter-value">101</span>`)
}

func TestCounter_RateLimitIgnoresForwardedFor(t *testing.T) {
	h := newHandler(t, strings.Replace(testConfig, "limit: 100", "limit: 1", 1))
	post := func(xff string) int {
		form := url.Values{"key": {view.CounterKey}, "action": {view.ActionIncrement}}
		req := httptest.NewRequest(http.MethodPost, view.CounterPath, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusSeeOther, post("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, post("198.51.100.3"))
}

func TestPropsJSON(t *testing.T) {
	h := newHandler(t, testConfig)
	rec := get(t, h, "/props.json?n=7")
	require.Equal(t, http.StatusOK, rec.Code)

	var p view.Props
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, view.Props{Name: "Default", InitialNumber: 7}, p)
}

func TestAmbientRoutes(t *testing.T) {
	h := newHandler(t, testConfig)

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	assert.Equal(t, http.StatusOK, get(t, h, "/readyz").Code)

	rec = get(t, h, "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".counter")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
}

func TestMiddleware_Headers(t *testing.T) {
	h := newHandler(t, testConfig)

	rec := get(t, h, "/")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "6f1c2b1e-3d4a-4b5c-9d8e-7f6a5b4c3d2e")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "6f1c2b1e-3d4a-4b5c-9d8e-7f6a5b4c3d2e", rec.Header().Get("X-Request-ID"))
}

func TestPageLink(t *testing.T) {
	assert.Equal(t, "/", pageLink("", ""))
	assert.Equal(t, "https://x.test/?n=1", pageLink("https://x.test/", "n=1"))
}
