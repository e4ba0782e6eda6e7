package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageDisplayName(t *testing.T) {
	assert.Equal(t, "English", LanguageDisplayName("en"))
	assert.Equal(t, "Português", LanguageDisplayName("pt"))
	assert.Equal(t, "Português", LanguageDisplayName("de"))
}

func TestRunStateOf(t *testing.T) {
	assert.Equal(t, RunStateRunning, RunStateOf(true))
	assert.Equal(t, RunStateStopped, RunStateOf(false))
	assert.Equal(t, "unknown", RunStateUnknown.String())
}
