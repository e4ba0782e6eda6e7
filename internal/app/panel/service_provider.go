// Package panel provides dependency injection and the run loop of the control panel server.
// It initializes and provides access to the control API client, the panel state,
// the status poller and the HTTP handler.
package panel

import (
	"sync"

	"github.com/DenisKhanov/BotPanel/internal/panel/api"
	panelHTTP "github.com/DenisKhanov/BotPanel/internal/panel/api/http"
	"github.com/DenisKhanov/BotPanel/internal/panel/config"
	"github.com/DenisKhanov/BotPanel/internal/panel/service"
	"github.com/sirupsen/logrus"
)

// ServiceProvider lazily builds the panel components.
type ServiceProvider struct {
	config *config.Config

	controlAPI *api.ControlAPI
	verifier   service.TokenVerifier
	panel      *service.Panel
	poller     *service.Poller
	handler    *panelHTTP.Handler

	controlOnce  sync.Once
	verifierOnce sync.Once
	panelOnce    sync.Once
	pollerOnce   sync.Once
	handlerOnce  sync.Once
}

// NewServiceProvider creates a new instance of the service provider.
func NewServiceProvider(cfg *config.Config) *ServiceProvider {
	return &ServiceProvider{config: cfg}
}

// ControlAPI returns the client of the bot control API.
func (s *ServiceProvider) ControlAPI() *api.ControlAPI {
	s.controlOnce.Do(func() {
		s.controlAPI = api.NewControlAPI(s.config.ControlAPIURL, s.config.RequestTimeout)
		logrus.Infof("ControlAPI initialized for %s", s.config.ControlAPIURL)
	})
	return s.controlAPI
}

// TokenVerifier returns the Telegram token verifier, or nil when preflight is disabled.
func (s *ServiceProvider) TokenVerifier() service.TokenVerifier {
	s.verifierOnce.Do(func() {
		if !s.config.VerifyToken {
			return
		}
		s.verifier = api.NewTelegramVerifier(s.config.TelegramAPIEndpoint, s.config.RequestTimeout)
		logrus.Info("Telegram token preflight enabled")
	})
	return s.verifier
}

// Panel returns the control panel client.
func (s *ServiceProvider) Panel() *service.Panel {
	s.panelOnce.Do(func() {
		s.panel = service.NewPanel(s.ControlAPI(), service.Options{
			MessageTTL:      s.config.MessageTTL,
			DefaultLanguage: s.config.DefaultLanguage,
			Verifier:        s.TokenVerifier(),
		})
		logrus.Info("Panel initialized")
	})
	return s.panel
}

// Poller returns the status poller bound to the panel.
func (s *ServiceProvider) Poller() *service.Poller {
	s.pollerOnce.Do(func() {
		s.poller = service.NewPoller(s.Panel(), s.config.PollInterval, s.config.RequestTimeout)
		logrus.Info("Poller initialized")
	})
	return s.poller
}

// Handler returns the HTTP handler of the panel page.
func (s *ServiceProvider) Handler() *panelHTTP.Handler {
	s.handlerOnce.Do(func() {
		s.handler = panelHTTP.NewHandler(s.Panel(), s.config.RequestTimeout, s.config.PageRefresh)
		logrus.Info("HTTP handler initialized")
	})
	return s.handler
}
