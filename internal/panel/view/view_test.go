package view

import (
	"testing"

	"github.com/DenisKhanov/BotPanel/internal/panel/constant"
	"github.com/DenisKhanov/BotPanel/internal/panel/models"
	"github.com/stretchr/testify/assert"
)

func TestProject_RunState(t *testing.T) {
	tests := []struct {
		name          string
		run           models.RunState
		text          string
		class         string
		startDisabled bool
		stopDisabled  bool
	}{
		{"running", models.RunStateRunning, "🟢 Bot is running...", "status active running", true, false},
		{"stopped", models.RunStateStopped, "🔴 Bot is stopped", "status active stopped", false, true},
		{"unknown", models.RunStateUnknown, constant.STATUS_TEXT_UNKNOWN, "status", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := Project(State{Run: tt.run, Language: "en"})
			assert.Equal(t, tt.text, vm.StatusText)
			assert.Equal(t, tt.class, vm.StatusClass)
			assert.Equal(t, tt.startDisabled, vm.StartDisabled)
			assert.Equal(t, tt.stopDisabled, vm.StopDisabled)
			assert.Equal(t, tt.run == models.RunStateRunning, vm.Running)
			assert.Equal(t, tt.name, vm.RunState)
		})
	}
}

func TestProject_Message(t *testing.T) {
	vm := Project(State{Run: models.RunStateStopped})
	assert.Empty(t, vm.MessageText)
	assert.Equal(t, "message", vm.MessageClass)

	vm = Project(State{Message: &models.Message{Text: "Bot started successfully!", Type: models.MessageSuccess}})
	assert.Equal(t, "Bot started successfully!", vm.MessageText)
	assert.Equal(t, "message show success", vm.MessageClass)
	assert.Equal(t, models.MessageSuccess, vm.MessageType)
}

func TestProject_Languages(t *testing.T) {
	vm := Project(State{Language: "pt"})
	assert.Equal(t, "pt", vm.Language)
	assert.Len(t, vm.Languages, 2)
}
