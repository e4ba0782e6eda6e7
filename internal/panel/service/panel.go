// Package service holds the control panel client: the state behind the panel page and the
// operations the operator (or the status poller) triggers against the control API.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/api"
	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	"github.com/DenisKhanov/BotPanel/internal/panel/models"
	"github.com/DenisKhanov/BotPanel/internal/panel/view"
	"github.com/sirupsen/logrus"
)

// Control defines the control API operations the panel relies on.
type Control interface {
	Start(ctx context.Context, req models.StartRequest) (models.ActionResponse, error)
	Stop(ctx context.Context) (models.ActionResponse, error)
	ChangeLanguage(ctx context.Context, language string) (models.ActionResponse, error)
	Status(ctx context.Context) (models.StatusResponse, error)
}

// TokenVerifier checks a bot token before start. Optional.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// ErrValidation is returned when required operator input is missing.
// No request is sent in that case.
var ErrValidation = errors.New(constant.MSG_MISSING_CREDENTIALS)

// OperationError is a failure reported by the server or by the transport.
type OperationError struct {
	Op      string // start, stop, change-language, verify-token
	Message string // text shown to the operator
	Err     error  // transport cause, nil for server-reported failures
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Options configures a Panel.
type Options struct {
	MessageTTL      time.Duration // how long a banner stays visible; zero means constant.MESSAGE_TTL
	DefaultLanguage string        // initial recorded language; empty means constant.LANGUAGE_DEFAULT
	Verifier        TokenVerifier // nil disables token preflight
	// LanguageUnknown starts without a recorded language, so the first
	// ChangeLanguage is always sent. DefaultLanguage is ignored.
	LanguageUnknown bool
}

// Panel is the control panel client.
// All state is guarded by mu; network calls are made without holding it.
type Panel struct {
	control    Control
	verifier   TokenVerifier
	messageTTL time.Duration

	mu           sync.Mutex
	language     string          // last language acknowledged by the server
	run          models.RunState // last applied run state
	message      *models.Message // visible banner, nil when cleared
	messageTimer *time.Timer
	issuedGen    uint64 // generation of the newest run-state request sent
	appliedGen   uint64 // generation of the newest run-state result applied
}

// NewPanel creates a new instance of Panel.
// Arguments:
//   - control: the control API client.
//   - opts: timings, initial language and the optional token verifier.
//
// Returns a pointer to a Panel.
func NewPanel(control Control, opts Options) *Panel {
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = constant.MESSAGE_TTL
	}
	if opts.LanguageUnknown {
		opts.DefaultLanguage = ""
	} else if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = constant.LANGUAGE_DEFAULT
	}
	return &Panel{
		control:    control,
		verifier:   opts.Verifier,
		messageTTL: opts.MessageTTL,
		language:   opts.DefaultLanguage,
		run:        models.RunStateUnknown,
	}
}

// Start validates the credentials and asks the server to start the bot.
// Arguments:
//   - token: bot token, surrounding whitespace is ignored.
//   - channelID: channel id, surrounding whitespace is ignored.
//   - language: language to start with; empty means the current language.
//
// Returns ErrValidation when token or channel id is empty, an *OperationError when
// the server or the transport fails, nil on success.
func (p *Panel) Start(ctx context.Context, token, channelID, language string) error {
	token = strings.TrimSpace(token)
	channelID = strings.TrimSpace(channelID)
	if token == "" || channelID == "" {
		p.showMessage(constant.MSG_MISSING_CREDENTIALS, models.MessageError)
		return ErrValidation
	}
	if language == "" {
		language = p.Language()
	}

	if p.verifier != nil {
		if _, err := p.verifier.Verify(ctx, token); err != nil {
			var rejected *api.TokenRejectedError
			if errors.As(err, &rejected) {
				return p.fail("verify-token", constant.MSG_TOKEN_REJECTED+rejected.Reason, err)
			}
			return p.fail("verify-token", constant.MSG_TOKEN_CHECK_ERROR+err.Error(), err)
		}
	}

	res, err := p.control.Start(ctx, models.StartRequest{Token: token, ChannelID: channelID, Language: language})
	if err != nil {
		return p.fail("start", constant.MSG_START_ERROR+err.Error(), err)
	}
	if !res.Success {
		return p.fail("start", orDefault(res.Message, constant.MSG_START_FAILED), nil)
	}

	p.mu.Lock()
	p.setMessageLocked(constant.MSG_BOT_STARTED, models.MessageSuccess)
	p.forceRunLocked(models.RunStateRunning)
	p.language = language
	p.mu.Unlock()
	logrus.Infof("Bot started for channel %s with language %s", channelID, language)
	return nil
}

// Stop asks the server to stop the bot.
func (p *Panel) Stop(ctx context.Context) error {
	res, err := p.control.Stop(ctx)
	if err != nil {
		return p.fail("stop", constant.MSG_STOP_ERROR+err.Error(), err)
	}
	if !res.Success {
		return p.fail("stop", orDefault(res.Message, constant.MSG_STOP_FAILED), nil)
	}

	p.mu.Lock()
	p.setMessageLocked(constant.MSG_BOT_STOPPED, models.MessageSuccess)
	p.forceRunLocked(models.RunStateStopped)
	p.mu.Unlock()
	logrus.Info("Bot stopped")
	return nil
}

// ChangeLanguage switches the bot language.
// Nothing is sent when language is empty or already the recorded one.
// Failures are shown like those of start and stop.
func (p *Panel) ChangeLanguage(ctx context.Context, language string) error {
	if language == "" || language == p.Language() {
		return nil
	}

	res, err := p.control.ChangeLanguage(ctx, language)
	if err != nil {
		return p.fail("change-language", constant.MSG_LANGUAGE_ERROR+err.Error(), err)
	}
	if !res.Success {
		return p.fail("change-language", orDefault(res.Message, constant.MSG_LANGUAGE_FAILED), nil)
	}

	p.mu.Lock()
	p.language = language
	p.setMessageLocked(constant.MSG_LANGUAGE_CHANGED+models.LanguageDisplayName(language), models.MessageSuccess)
	p.mu.Unlock()
	logrus.Infof("Language changed to %s", language)
	return nil
}

// CheckStatus fetches the run state and applies it without diffing.
// A transport error is logged and leaves the state as it was.
func (p *Panel) CheckStatus(ctx context.Context) error {
	gen := p.nextGen()
	res, err := p.control.Status(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Error checking status")
		return err
	}

	p.mu.Lock()
	p.applyRunLocked(gen, models.RunStateOf(res.Running))
	p.mu.Unlock()
	return nil
}

// UpdateStatus sets the run state directly and returns the resulting view.
// Polls still in flight are discarded.
func (p *Panel) UpdateStatus(running bool) view.ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forceRunLocked(models.RunStateOf(running))
	return p.viewLocked()
}

// View returns the current view model.
func (p *Panel) View() view.ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

// Language returns the recorded language.
func (p *Panel) Language() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.language
}

// Close stops the pending banner timer.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.messageTimer != nil {
		p.messageTimer.Stop()
		p.messageTimer = nil
	}
}

func (p *Panel) viewLocked() view.ViewModel {
	return view.Project(view.State{Run: p.run, Message: p.message, Language: p.language})
}

// nextGen stamps a status poll.
func (p *Panel) nextGen() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issuedGen++
	return p.issuedGen
}

// applyRunLocked applies a poll result unless a newer one, or an acknowledged
// start or stop, was already applied.
func (p *Panel) applyRunLocked(gen uint64, run models.RunState) bool {
	if gen < p.appliedGen {
		logrus.Debugf("Discarding stale run state %s (generation %d < %d)", run, gen, p.appliedGen)
		return false
	}
	p.appliedGen = gen
	p.run = run
	return true
}

// forceRunLocked applies a state the server acknowledged and makes every poll
// issued so far stale.
func (p *Panel) forceRunLocked(run models.RunState) {
	p.issuedGen++
	p.appliedGen = p.issuedGen
	p.run = run
}

// fail shows text as an error banner and returns the matching OperationError.
func (p *Panel) fail(op, text string, cause error) error {
	p.showMessage(text, models.MessageError)
	if cause != nil {
		logrus.WithError(cause).Errorf("%s failed", op)
	} else {
		logrus.Warnf("%s rejected by server: %s", op, text)
	}
	return &OperationError{Op: op, Message: text, Err: cause}
}

func (p *Panel) showMessage(text string, typ models.MessageType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setMessageLocked(text, typ)
}

// setMessageLocked replaces the banner and restarts its visibility window.
func (p *Panel) setMessageLocked(text string, typ models.MessageType) {
	if p.messageTimer != nil {
		p.messageTimer.Stop()
	}
	msg := &models.Message{Text: text, Type: typ, ShownAt: time.Now()}
	p.message = msg
	p.messageTimer = time.AfterFunc(p.messageTTL, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.message == msg {
			p.message = nil
		}
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

