package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/burnroom-server/internal/config"
	"github.com/vovakirdan/burnroom-server/internal/core"
	"github.com/vovakirdan/burnroom-server/internal/policy"
)

const (
	testStart  int64 = 1_700_000_000 // 22:13:20 UTC
	testSealed       = "-----BEGIN ENCRYPTED MESSAGE-----QUJD-----END ENCRYPTED MESSAGE-----"
	testPage         = `<html><input value="room_id_PLACEHOLDER"><div><!-- Messages will be dynamically inserted here --></div></html>`
)

type testEnv struct {
	server *http.Server
	relay  *core.Relay
	store  *core.Store
	clock  *core.ManualClock
	cfg    *config.Config
}

// newTestEnv builds a server over a fresh relay with a frozen clock and a page template on disk.
func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(testPage), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.StaticDir = staticDir
	cfg.ReadHeaderTimeout = time.Second
	cfg.ShutdownTimeout = time.Second
	cfg.WSPollInterval = 10 * time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}

	clock := core.NewManualClock(testStart)
	store := core.NewStore(cfg.Limits)
	relay := core.NewRelay(store, core.NewRateLimiter(clock, cfg.Limits), clock, policy.IsEncrypted, cfg.Limits)

	disabledLogger := zerolog.New(nil)
	return &testEnv{
		server: NewServer(relay, &cfg, &disabledLogger),
		relay:  relay,
		store:  store,
		clock:  clock,
		cfg:    &cfg,
	}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	resp := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) send(t *testing.T, roomID, message string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{"room_id": roomID, "message": message})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var er ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &er); err != nil {
		t.Fatalf("failed to unmarshal error response %q: %v", resp.Body.String(), err)
	}
	return er
}
