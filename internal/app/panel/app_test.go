package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/config"
	"github.com/stretchr/testify/require"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		EnvLogsLevel:    "error",
		PanelAddr:       "127.0.0.1:0",
		ControlAPIURL:   apiURL,
		RequestTimeout:  time.Second,
		PollInterval:    10 * time.Millisecond,
		MessageTTL:      time.Second,
		DefaultLanguage: "en",
	}
}

func TestServiceProvider_Wiring(t *testing.T) {
	sp := NewServiceProvider(testConfig("http://localhost:5000"))

	require.Nil(t, sp.TokenVerifier())
	require.Same(t, sp.Panel(), sp.Panel())
	require.Same(t, sp.ControlAPI(), sp.ControlAPI())
	require.NotNil(t, sp.Poller())

	rec := httptest.NewRecorder()
	sp.Handler().Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cfg := testConfig("http://localhost:5000")
	cfg.VerifyToken = true
	require.NotNil(t, NewServiceProvider(cfg).TokenVerifier())
}

func TestApp_RunPollsUntilCancelled(t *testing.T) {
	var polls atomic.Int32
	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		_, _ = w.Write([]byte(`{"running": true}`))
	}))
	defer control.Close()

	a := &App{config: testConfig(control.URL)}
	require.NoError(t, a.initServiceProvider(context.Background()))
	require.NoError(t, a.initHTTPServer(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	require.Eventually(t, func() bool {
		return a.serviceProvider.Panel().View().Running
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return polls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
