// Package constant holds the user-facing texts, element ids and timings of the control panel.
package constant

import "time"

const (
	EMOJI_GREEN_CIRCLE = "\U0001F7E2" //🟢
	EMOJI_RED_CIRCLE   = "\U0001F534" //🔴
	EMOJI_HOURGLASS    = "\U000023F3" //⏳

	STATUS_TEXT_RUNNING = EMOJI_GREEN_CIRCLE + " Bot is running..."
	STATUS_TEXT_STOPPED = EMOJI_RED_CIRCLE + " Bot is stopped"
	STATUS_TEXT_UNKNOWN = EMOJI_HOURGLASS + " Checking status..."

	STATUS_CLASS_RUNNING = "status active running"
	STATUS_CLASS_STOPPED = "status active stopped"
	STATUS_CLASS_UNKNOWN = "status"

	MESSAGE_CLASS = "message"

	MSG_MISSING_CREDENTIALS = "Please enter both Token and Channel ID"
	MSG_BOT_STARTED         = "Bot started successfully!"
	MSG_BOT_STOPPED         = "Bot stopped successfully!"
	MSG_START_FAILED        = "Failed to start bot"
	MSG_STOP_FAILED         = "Failed to stop bot"
	MSG_LANGUAGE_FAILED     = "Failed to change language"
	MSG_START_ERROR         = "Error starting bot: "
	MSG_STOP_ERROR          = "Error stopping bot: "
	MSG_LANGUAGE_ERROR      = "Error changing language: "
	MSG_TOKEN_REJECTED      = "Token rejected by Telegram: "
	MSG_TOKEN_CHECK_ERROR   = "Error checking token: "
	MSG_LANGUAGE_CHANGED    = "Language changed to "
)

// DOM element ids the panel page exposes.
const (
	ID_MESSAGE    = "message"
	ID_STATUS     = "status"
	ID_START_BTN  = "startBtn"
	ID_STOP_BTN   = "stopBtn"
	ID_TOKEN      = "token"
	ID_CHANNEL_ID = "channel_id"
	ID_LANGUAGE   = "language"
)

// Control API paths.
const (
	PATH_START           = "/api/start"
	PATH_STOP            = "/api/stop"
	PATH_CHANGE_LANGUAGE = "/api/change-language"
	PATH_STATUS          = "/api/status"
)

const (
	POLL_INTERVAL   = 3 * time.Second
	MESSAGE_TTL     = 5 * time.Second
	PAGE_REFRESH    = time.Second
	REQUEST_TIMEOUT = 15 * time.Second
)

const (
	LANGUAGE_EN      = "en"
	LANGUAGE_PT      = "pt"
	LANGUAGE_DEFAULT = LANGUAGE_EN
)
