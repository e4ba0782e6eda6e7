package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TelegramVerifier checks a bot token against the Telegram Bot API before the bot is started.
type TelegramVerifier struct {
	endpoint string       // Bot API endpoint format, e.g. tgbotapi.APIEndpoint
	client   *http.Client // HTTP client used for getMe
}

// NewTelegramVerifier creates a new instance of TelegramVerifier.
// Arguments:
//   - endpoint: Bot API endpoint format with two %s verbs (token, method); empty means tgbotapi.APIEndpoint.
//   - timeout: request timeout; zero means constant.REQUEST_TIMEOUT.
//
// Returns a pointer to a TelegramVerifier.
func NewTelegramVerifier(endpoint string, timeout time.Duration) *TelegramVerifier {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if timeout <= 0 {
		timeout = constant.REQUEST_TIMEOUT
	}
	return &TelegramVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// TokenRejectedError means Telegram answered getMe and refused the token.
type TokenRejectedError struct {
	Code   int    // Bot API error_code
	Reason string // Bot API description
}

func (e *TokenRejectedError) Error() string {
	return fmt.Sprintf("token rejected (%d): %s", e.Code, e.Reason)
}

// Verify calls getMe with the token and returns the bot username.
// A *TokenRejectedError is returned when Telegram refuses the token; any other
// error means Telegram could not be asked.
func (v *TelegramVerifier) Verify(ctx context.Context, token string) (string, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, v.endpoint, ctxClient{ctx: ctx, client: v.client})
	if err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			logrus.Warnf("Telegram rejected the bot token: %s", apiErr.Message)
			return "", &TokenRejectedError{Code: apiErr.Code, Reason: apiErr.Message}
		}
		logrus.WithError(err).Warn("Telegram token preflight failed")
		return "", fmt.Errorf("getMe: %w", err)
	}
	logrus.Infof("Telegram token belongs to @%s", bot.Self.UserName)
	return bot.Self.UserName, nil
}

// ctxClient binds every request the bot library makes to ctx.
type ctxClient struct {
	ctx    context.Context
	client *http.Client
}

func (c ctxClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}
