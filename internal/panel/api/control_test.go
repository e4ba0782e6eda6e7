package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlAPI_Start(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/start", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"token": "abc", "channel_id": "123", "language": "en"}, body)
		_, _ = w.Write([]byte(`{"success": true, "message": "Bot started successfully"}`))
	}))
	defer srv.Close()

	res, err := NewControlAPI(srv.URL+"/", time.Second).Start(context.Background(),
		models.StartRequest{Token: "abc", ChannelID: "123", Language: "en"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "Bot started successfully", res.Message)
}

func TestControlAPI_ErrorStatusStillDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "message": "Bot is already running"}`))
	}))
	defer srv.Close()

	res, err := NewControlAPI(srv.URL, time.Second).Start(context.Background(), models.StartRequest{Token: "a", ChannelID: "b"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Bot is already running", res.Message)
}

func TestControlAPI_StopSendsNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/stop", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	res, err := NewControlAPI(srv.URL, time.Second).Stop(context.Background())
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestControlAPI_ChangeLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/change-language", r.URL.Path)
		var body models.LanguageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pt", body.Language)
		_, _ = w.Write([]byte(`{"success": true, "message": "Language changed to pt"}`))
	}))
	defer srv.Close()

	res, err := NewControlAPI(srv.URL, time.Second).ChangeLanguage(context.Background(), "pt")
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestControlAPI_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"running": true}`))
	}))
	defer srv.Close()

	res, err := NewControlAPI(srv.URL, time.Second).Status(context.Background())
	require.NoError(t, err)
	require.True(t, res.Running)
}

func TestControlAPI_Errors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		_, err := NewControlAPI(srv.URL, time.Second).Status(context.Background())
		require.ErrorContains(t, err, "status 502")
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewControlAPI(url, time.Second).Stop(context.Background())
		require.ErrorContains(t, err, "failed to execute request")
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"running": true}`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewControlAPI(srv.URL, time.Second).Status(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
