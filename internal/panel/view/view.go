// Package view turns panel state into the values a page needs to render.
// It has no side effects so every front end (HTML, JSON, CLI) renders the same thing.
package view

import (
	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	"github.com/DenisKhanov/BotPanel/internal/panel/models"
)

// State is the input of the projection.
type State struct {
	Run      models.RunState
	Message  *models.Message // nil when no banner is visible
	Language string
}

// ViewModel is what the panel shows.
type ViewModel struct {
	Running       bool                    `json:"running"`
	RunState      string                  `json:"run_state"`
	StatusText    string                  `json:"status_text"`
	StatusClass   string                  `json:"status_class"`
	StartDisabled bool                    `json:"start_disabled"`
	StopDisabled  bool                    `json:"stop_disabled"`
	MessageText   string                  `json:"message"`
	MessageType   models.MessageType      `json:"message_type,omitempty"`
	MessageClass  string                  `json:"message_class"`
	Language      string                  `json:"language"`
	Languages     []models.LanguageOption `json:"languages"`
}

// Project maps state to a ViewModel.
func Project(s State) ViewModel {
	vm := ViewModel{
		RunState:     s.Run.String(),
		MessageClass: constant.MESSAGE_CLASS,
		Language:     s.Language,
		Languages:    models.Languages,
	}
	vm.Running, vm.StatusText, vm.StatusClass, vm.StartDisabled, vm.StopDisabled = projectRun(s.Run)

	if s.Message != nil {
		vm.MessageText = s.Message.Text
		vm.MessageType = s.Message.Type
		vm.MessageClass = constant.MESSAGE_CLASS + " show " + string(s.Message.Type)
	}
	return vm
}

// projectRun is the indicator half of the projection.
func projectRun(run models.RunState) (running bool, text, class string, startDisabled, stopDisabled bool) {
	switch run {
	case models.RunStateRunning:
		return true, constant.STATUS_TEXT_RUNNING, constant.STATUS_CLASS_RUNNING, true, false
	case models.RunStateStopped:
		return false, constant.STATUS_TEXT_STOPPED, constant.STATUS_CLASS_STOPPED, false, true
	default:
		// до первого ответа сервера обе кнопки доступны
		return false, constant.STATUS_TEXT_UNKNOWN, constant.STATUS_CLASS_UNKNOWN, false, false
	}
}
