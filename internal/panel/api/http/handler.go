// Package http serves the control panel page and its form actions.
package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"math"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/api/http/middleware"
	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	"github.com/DenisKhanov/BotPanel/internal/panel/service"
	"github.com/DenisKhanov/BotPanel/internal/panel/view"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

//go:embed templates/panel.html
var templatesFS embed.FS

// Panel is the subset of service.Panel the handler needs.
type Panel interface {
	Start(ctx context.Context, token, channelID, language string) error
	Stop(ctx context.Context) error
	ChangeLanguage(ctx context.Context, language string) error
	View() view.ViewModel
}

// Handler serves the panel page and forwards form actions to the panel.
type Handler struct {
	panel   Panel
	page    *template.Template
	timeout time.Duration // deadline of one action, control API call included
	refresh time.Duration // how often the page pulls /panel/state
}

// pageData is the template input: the view model plus the page refresh period.
type pageData struct {
	view.ViewModel
	RefreshMillis  int64
	RefreshSeconds int64
}

// actionForm is the JSON form of the panel inputs.
type actionForm struct {
	Token     string `json:"token"`
	ChannelID string `json:"channel_id"`
	Language  string `json:"language"`
}

// NewHandler creates a new instance of Handler.
// Arguments:
//   - panel: the control panel client.
//   - timeout: deadline of a single action; zero means constant.REQUEST_TIMEOUT.
//   - refresh: how often the page reloads its state; zero means constant.PAGE_REFRESH.
//
// Returns a pointer to a Handler.
func NewHandler(panel Panel, timeout, refresh time.Duration) *Handler {
	if timeout <= 0 {
		timeout = constant.REQUEST_TIMEOUT
	}
	if refresh <= 0 {
		refresh = constant.PAGE_REFRESH
	}
	return &Handler{
		panel:   panel,
		page:    template.Must(template.ParseFS(templatesFS, "templates/panel.html")),
		timeout: timeout,
		refresh: refresh,
	}
}

// Routes builds the chi router of the panel.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.LogrusLog())

	router.Get("/", h.Index)
	router.Get("/healthz", h.Health)
	router.Route("/panel", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Post("/start", h.Start)
		r.Post("/stop", h.Stop)
		r.Post("/language", h.ChangeLanguage)
	})
	return router
}

// Index renders the panel page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		ViewModel:      h.panel.View(),
		RefreshMillis:  h.refresh.Milliseconds(),
		RefreshSeconds: int64(math.Ceil(h.refresh.Seconds())),
	}
	if err := h.page.Execute(w, data); err != nil {
		logrus.WithError(err).Error("Failed to render panel page")
	}
}

// Health answers liveness checks.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// State returns the view model as JSON.
func (h *Handler) State(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.panel.View())
}

// Start handles the start form.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	h.respond(w, r, h.panel.Start(ctx, form.Token, form.ChannelID, form.Language))
}

// Stop handles the stop button.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	h.respond(w, r, h.panel.Stop(ctx))
}

// ChangeLanguage handles the language selector.
func (h *Handler) ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	h.respond(w, r, h.panel.ChangeLanguage(ctx, form.Language))
}

// respond sends browsers back to the page and API clients the fresh view model.
// The outcome itself is carried by the banner message in both cases.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, actionErr error) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	status := http.StatusOK
	var opErr *service.OperationError
	switch {
	case errors.Is(actionErr, service.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.As(actionErr, &opErr):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, h.panel.View())
}

// readForm accepts both urlencoded forms and JSON bodies.
func readForm(r *http.Request) (actionForm, error) {
	var form actionForm
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil && !errors.Is(err, io.EOF) {
			return form, err
		}
		return form, nil
	}
	if err := r.ParseForm(); err != nil {
		return form, err
	}
	form.Token = r.PostFormValue(constant.ID_TOKEN)
	form.ChannelID = r.PostFormValue(constant.ID_CHANNEL_ID)
	form.Language = r.PostFormValue(constant.ID_LANGUAGE)
	return form, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to write JSON response")
	}
}
