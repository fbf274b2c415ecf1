package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/doeshing/nlterm/internal/application/terminal"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/fsys"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type nopRunner struct{}

func (nopRunner) Run(context.Context, string, string) domain.ProcessResult {
	return domain.ProcessResult{Output: "external\n"}
}
func (nopRunner) LookPath(string) (string, error) { return "", errors.New("none") }
func (nopRunner) LookAll(string) []string        { return nil }

func newTestServer(t *testing.T, max int) (*Server, *Registry, string) {
	t.Helper()
	root := t.TempDir()
	registry := NewRegistry(func(id string) *terminal.Service {
		return terminal.New(terminal.Options{
			SessionID: id,
			Home:      root,
			FS:        fsys.New(),
			Runner:    nopRunner{},
		})
	}, max)
	srv := NewServer(registry, nil, "")
	srv.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return srv, registry, root
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var payload map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestTerminalStatus(t *testing.T) {
	srv, _, root := newTestServer(t, 0)
	rec, body := do(t, srv.Handler(), http.MethodGet, "/api/terminal", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, root, body["current_path"])
	assert.Equal(t, "2024-03-01T09:30:00Z", body["timestamp"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHelp(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	rec, body := do(t, srv.Handler(), http.MethodGet, "/api/help", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body["help"], "nlterm commands")
	assert.EqualValues(t, 0, body["exit_code"])
}

func TestPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	req := httptest.NewRequest(http.MethodOptions, "/api/execute", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-Session-ID", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestUnknownRoute(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	rec, body := do(t, srv.Handler(), http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Not found", body["message"])
}

func TestExecuteNaturalLanguage(t *testing.T) {
	srv, _, root := newTestServer(t, 0)
	h := srv.Handler()

	rec, body := do(t, h, http.MethodPost, "/api/execute",
		`{"command":"create a folder called docs","natural_language":true}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mkdir docs", body["ai_translation"])

	_, body = do(t, h, http.MethodPost, "/api/execute", `{"command":"go to docs","natural_language":true}`, nil)
	assert.Equal(t, "cd docs", body["ai_translation"])
	assert.EqualValues(t, 0, body["exit_code"])
	assert.Nil(t, body["error"])
	assert.Equal(t, filepath.Join(root, "docs"), body["current_path"])

	_, body = do(t, h, http.MethodGet, "/api/terminal", "", nil)
	assert.Equal(t, filepath.Join(root, "docs"), body["current_path"])
}

func TestExecuteNullFields(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	_, body := do(t, srv.Handler(), http.MethodPost, "/api/execute", `{"command":"pwd"}`, nil)

	assert.Nil(t, body["ai_translation"])
	assert.Nil(t, body["error"])
	assert.Equal(t, "pwd", body["command"])
}

func TestExecuteUnknownNaturalLanguage(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	_, body := do(t, srv.Handler(), http.MethodPost, "/api/execute",
		`{"command":"make me a sandwich","natural_language":true}`, nil)

	assert.EqualValues(t, 1, body["exit_code"])
	assert.Equal(t, terminal.TranslationFailedError, body["error"])
	assert.Nil(t, body["ai_translation"])
}

func TestExecuteBadJSON(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	rec, body := do(t, srv.Handler(), http.MethodPost, "/api/execute", `{"command":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestTranslate(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	h := srv.Handler()

	_, body := do(t, h, http.MethodPost, "/api/translate", `{"text":"show files"}`, nil)
	assert.Equal(t, "ls", body["translated"])
	assert.Equal(t, "show files", body["original"])

	_, body = do(t, h, http.MethodPost, "/api/translate", `{"text":"make me a sandwich"}`, nil)
	assert.Nil(t, body["translated"])
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, registry, root := newTestServer(t, 0)
	h := srv.Handler()

	_, body := do(t, h, http.MethodPost, "/api/session", "", nil)
	id, _ := body["session_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, 2, registry.Len())

	headers := map[string]string{domain.SessionHeader: id}
	_, body = do(t, h, http.MethodPost, "/api/execute", `{"command":"mkdir a && cd a"}`, headers)
	assert.Equal(t, filepath.Join(root, "a"), body["current_path"])

	_, body = do(t, h, http.MethodGet, "/api/terminal", "", nil)
	assert.Equal(t, root, body["current_path"])
}

func TestSessionErrors(t *testing.T) {
	srv, _, _ := newTestServer(t, 2)
	h := srv.Handler()

	rec, _ := do(t, h, http.MethodPost, "/api/session", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, h, http.MethodPost, "/api/session", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, domain.ErrSessionLimit.Error(), body["message"])

	rec, _ = do(t, h, http.MethodGet, "/api/terminal", "", map[string]string{domain.SessionHeader: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _, _ := newTestServer(t, 0)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, srv.Handler(), nil) }()

	transport := &http.Transport{DisableKeepAlives: true}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/help")
	require.NoError(t, err)
	resp.Body.Close()
	transport.CloseIdleConnections()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
