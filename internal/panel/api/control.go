// Package api provides the clients the panel talks to: the bot control API and,
// optionally, the Telegram Bot API for token preflight.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	"github.com/DenisKhanov/BotPanel/internal/panel/models"
	"github.com/sirupsen/logrus"
)

// ControlAPI is a client for the bot control API.
type ControlAPI struct {
	baseURL string       // Base URL of the control server, without trailing slash
	client  *http.Client // HTTP client with request timeout
}

// NewControlAPI creates a new instance of ControlAPI.
// Arguments:
//   - baseURL: the base URL of the control server (e.g., http://localhost:5000).
//   - timeout: per-request timeout; zero means constant.REQUEST_TIMEOUT.
//
// Returns a pointer to a ControlAPI.
func NewControlAPI(baseURL string, timeout time.Duration) *ControlAPI {
	if timeout <= 0 {
		timeout = constant.REQUEST_TIMEOUT
	}
	return &ControlAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Start asks the server to launch the bot.
func (c *ControlAPI) Start(ctx context.Context, reqBody models.StartRequest) (models.ActionResponse, error) {
	var response models.ActionResponse
	err := c.do(ctx, http.MethodPost, constant.PATH_START, reqBody, &response)
	return response, err
}

// Stop asks the server to stop the bot. The request carries no body.
func (c *ControlAPI) Stop(ctx context.Context) (models.ActionResponse, error) {
	var response models.ActionResponse
	err := c.do(ctx, http.MethodPost, constant.PATH_STOP, nil, &response)
	return response, err
}

// ChangeLanguage switches the language of a running (or future) bot.
func (c *ControlAPI) ChangeLanguage(ctx context.Context, language string) (models.ActionResponse, error) {
	var response models.ActionResponse
	err := c.do(ctx, http.MethodPost, constant.PATH_CHANGE_LANGUAGE, models.LanguageRequest{Language: language}, &response)
	return response, err
}

// Status fetches the current run state of the bot.
func (c *ControlAPI) Status(ctx context.Context) (models.StatusResponse, error) {
	var response models.StatusResponse
	err := c.do(ctx, http.MethodGet, constant.PATH_STATUS, nil, &response)
	return response, err
}

// do sends one request and decodes the JSON answer into out.
// The HTTP status is not checked: the control server reports failures as
// {"success": false, "message": ...} with 4xx/5xx codes and those bodies must reach the caller.
// Arguments:
//   - method: HTTP method.
//   - path: path relative to the base URL.
//   - body: value marshalled as JSON, or nil for an empty body.
//   - out: pointer the response is decoded into.
//
// Returns an error if the request cannot be sent or the answer is not JSON.
func (c *ControlAPI) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed to marshal request body: %w", err)
			logrus.WithError(err).Errorf("Error preparing %s request", path)
			return err
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		err = fmt.Errorf("failed to create request: %w", err)
		logrus.WithError(err).Errorf("Error creating %s request", path)
		return err
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		logrus.WithError(err).Debugf("Failed to execute %s %s", method, req.URL)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if err = res.Body.Close(); err != nil {
			logrus.WithError(err).Errorf("Failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to read %s response", path)
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err = json.Unmarshal(data, out); err != nil {
		err = fmt.Errorf("unexpected response (status %d): %w", res.StatusCode, err)
		logrus.WithError(err).Errorf("Failed to unmarshal %s response", path)
		return err
	}

	logrus.Debugf("%s %s -> %s", method, path, res.Status)
	return nil
}
