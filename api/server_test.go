package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/seenimoa/folio/internal/config"
	"github.com/seenimoa/folio/pkg/models"
	"github.com/seenimoa/folio/web"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	_, _, err := web.WriteScaffold(dir)
	require.NoError(t, err)

	return &config.Config{
		Site: config.SiteConfig{
			Profile: filepath.Join(dir, "profile.json"),
			Views:   filepath.Join(dir, "views"),
			Public:  filepath.Join(dir, "public"),
		},
		Build: config.BuildConfig{
			Dir:      filepath.Join(dir, "build"),
			RootHTML: filepath.Join(dir, "index.html"),
		},
		Server: config.ServerConfig{Host: "127.0.0.1", CORSOrigins: []string{"*"}},
	}
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// startHub runs the hub until the test ends.
func startHub(t *testing.T, h *Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = h.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

// ════════════════════════════════════════════════════════════════════
// Routes
// ════════════════════════════════════════════════════════════════════

func TestHealth(t *testing.T) {
	rec := get(t, NewServer(testConfig(t), nil), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndex(t *testing.T) {
	rec := get(t, NewServer(testConfig(t), nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Jane Doe - Software Engineer</title>")
	assert.Contains(t, body, `<canvas id="timeChart"></canvas>`)
	assert.Contains(t, body, `<script src="/js/app.js"></script>`)
	assert.NotContains(t, body, "/ws/reload")
}

func TestIndex_LiveReloadSnippet(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.LiveReload = true

	rec := get(t, NewServer(cfg, nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ws/reload")
}

func TestIndex_ReloadsProfilePerRequest(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg, nil)
	assert.Contains(t, get(t, srv, "/").Body.String(), "Jane Doe")

	data, err := os.ReadFile(cfg.Site.Profile)
	require.NoError(t, err)
	data = []byte(strings.ReplaceAll(string(data), "Jane Doe", "John Roe"))
	require.NoError(t, os.WriteFile(cfg.Site.Profile, data, 0644))

	assert.Contains(t, get(t, srv, "/").Body.String(), "John Roe")
}

func TestIndex_ProfileError(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.Site.Profile))

	rec := get(t, NewServer(cfg, nil), "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error loading profile data\n", rec.Body.String())
}

func TestIndex_TemplateError(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Site.Views, "index.html"), []byte("{{.Broken"), 0644))

	rec := get(t, NewServer(cfg, nil), "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error\n", rec.Body.String())
}

func TestAPIProfile(t *testing.T) {
	rec := get(t, NewServer(testConfig(t), nil), "/api/profile")

	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, "Jane Doe", p.PersonalInfo.Name)
	require.NotEmpty(t, p.TimeActivities)
	assert.Equal(t, "Deep Work", p.TimeActivities[0].Label)
}

func TestAPIProfile_Error(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Site.Profile, []byte("{"), 0644))

	rec := get(t, NewServer(cfg, nil), "/api/profile")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Error loading profile data"}`, rec.Body.String())
}

func TestAPIConfig(t *testing.T) {
	cfg := testConfig(t)
	rec := get(t, NewServer(cfg, nil), "/api/config")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Config config.Config `json:"config"`
		Status struct {
			ProfileFound bool `json:"profile_found"`
			BuildExists  bool `json:"build_exists"`
		} `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, cfg.Site.Profile, resp.Config.Site.Profile)
	assert.True(t, resp.Status.ProfileFound)
	assert.False(t, resp.Status.BuildExists)
}

func TestStaticFiles(t *testing.T) {
	srv := NewServer(testConfig(t), nil)

	for _, path := range []string{"/css/style.css", "/js/app.js", "/images/avatar.svg"} {
		rec := get(t, srv, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/js/missing.js").Code)
}

func TestCORS(t *testing.T) {
	srv := NewServer(testConfig(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// ════════════════════════════════════════════════════════════════════
// Hub
// ════════════════════════════════════════════════════════════════════

func TestHub_Broadcast(t *testing.T) {
	h := NewHub()
	startHub(t, h)

	a, b := h.NewClient(), h.NewClient()
	require.True(t, h.Register(a))
	require.True(t, h.Register(b))
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	h.Broadcast(Message{Type: "reload"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send():
			assert.Equal(t, "reload", msg.Type)
		case <-time.After(time.Second):
			t.Fatal("no message received")
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub()
	startHub(t, h)

	c := h.NewClient()
	require.True(t, h.Register(c))
	h.Unregister(c)

	_, open := <-c.Send()
	assert.False(t, open, "queue closed on unregister")
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_StopClosesClients(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	c := h.NewClient()
	require.True(t, h.Register(c))
	cancel()
	require.NoError(t, <-done)

	_, open := <-c.Send()
	assert.False(t, open)
	assert.False(t, h.Register(h.NewClient()), "register after stop")
	h.Unregister(c) // must not block
}

// ════════════════════════════════════════════════════════════════════
// WebSocket
// ════════════════════════════════════════════════════════════════════

func TestWebSocketReload(t *testing.T) {
	srv := NewServer(testConfig(t), nil)
	startHub(t, srv.Hub())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/reload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return srv.Hub().ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	srv.Hub().Broadcast(Message{Type: "reload"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "reload", msg.Type)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return srv.Hub().ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

// ════════════════════════════════════════════════════════════════════
// Serve / Watcher
// ════════════════════════════════════════════════════════════════════

func TestServe_GracefulShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.LiveReload = true
	srv := NewServer(cfg, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(profile, []byte("{}"), 0644))
	views := filepath.Join(dir, "views")
	require.NoError(t, os.MkdirAll(filepath.Join(views, "partials"), 0755))
	unrelated := filepath.Join(dir, "notes.txt")

	changes := make(chan string, 16)
	w := NewWatcher([]string{profile, views}, 50*time.Millisecond, nil, func(path string) {
		changes <- path
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(unrelated, []byte("x"), 0644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(profile, []byte(`{"n":1}`), 0644))
	}

	select {
	case path := <-changes:
		assert.Equal(t, profile, path)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	drain := time.After(200 * time.Millisecond)
loop:
	for {
		select {
		case <-changes:
		case <-drain:
			break loop
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(views, "partials", "nav.html"), []byte("x"), 0644))
	select {
	case path := <-changes:
		assert.Equal(t, filepath.Join(views, "partials", "nav.html"), path)
	case <-time.After(2 * time.Second):
		t.Fatal("nested change not reported")
	}
}
