// Package models describes the control API wire format and the transient panel state.
package models

import (
	"time"

	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
)

// StartRequest is the body of POST /api/start.
type StartRequest struct {
	Token     string `json:"token"`      // Telegram bot token entered by the operator
	ChannelID string `json:"channel_id"` // Telegram channel the bot posts to
	Language  string `json:"language"`   // Locale code (en, pt)
}

// LanguageRequest is the body of POST /api/change-language.
type LanguageRequest struct {
	Language string `json:"language"`
}

// ActionResponse is returned by start, stop and change-language.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"` // Server explanation, mostly on failure
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	Running bool `json:"running"`
}

// MessageType is the severity tag of a banner message.
type MessageType string

const (
	MessageSuccess MessageType = "success"
	MessageError   MessageType = "error"
)

// Message is the banner currently shown to the operator.
type Message struct {
	Text    string
	Type    MessageType
	ShownAt time.Time
}

// RunState is the last run state reported by the server.
type RunState int

const (
	RunStateUnknown RunState = iota // no successful poll yet
	RunStateStopped
	RunStateRunning
)

// RunStateOf converts the server boolean into a RunState.
func RunStateOf(running bool) RunState {
	if running {
		return RunStateRunning
	}
	return RunStateStopped
}

func (s RunState) String() string {
	switch s {
	case RunStateRunning:
		return "running"
	case RunStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LanguageOption is one entry of the language selector.
type LanguageOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages lists the locales the bot understands.
var Languages = []LanguageOption{
	{Code: constant.LANGUAGE_EN, Name: "English"},
	{Code: constant.LANGUAGE_PT, Name: "Português"},
}

// LanguageDisplayName returns the human-readable name used in confirmations.
// Every code other than en is announced as Portuguese.
func LanguageDisplayName(code string) string {
	if code == constant.LANGUAGE_EN {
		return "English"
	}
	return "Português"
}
