package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyenv/internal/app"
	core "keyenv/internal/core"
	"keyenv/internal/launcher"
	"keyenv/internal/providers"
)

func testModel(t *testing.T, content string) (model, *app.Service) {
	t.Helper()
	dir := t.TempDir()
	svc := &app.Service{
		Path:        filepath.Join(dir, ".env"),
		Descriptors: providers.All(),
		Validator:   core.DefaultValidator(),
		LockTimeout: 200 * time.Millisecond,
		Launcher:    launcher.Launcher{Script: filepath.Join(dir, "start.sh")},
	}
	if content != "" {
		require.NoError(t, os.WriteFile(svc.Path, []byte(content), 0o600))
	}
	return newModel(svc, 10*time.Millisecond), svc
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func typeText(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func envFile(t *testing.T, svc *app.Service) string {
	t.Helper()
	b, err := os.ReadFile(svc.Path)
	require.NoError(t, err)
	return string(b)
}

func TestModel_LoadsResolvedValues(t *testing.T) {
	m, _ := testModel(t, "OPENAI_API_KEY=sk-legacy-123456\n")
	f := m.formState()
	assert.Equal(t, "sk-legacy-123456", f.Get(core.ProviderOpenAI))
	assert.Equal(t, "", f.Get(core.ProviderAnthropic))
	assert.Equal(t, 0, m.active)
	assert.True(t, m.inputs[0].Focused())
}

func TestModel_NavigationWraps(t *testing.T) {
	m, _ := testModel(t, "")
	m = press(t, m, key(tea.KeyUp))
	assert.Equal(t, len(m.descs)-1, m.active)
	m = press(t, m, key(tea.KeyTab))
	assert.Equal(t, 0, m.active)
	assert.True(t, m.inputs[0].Focused())
	assert.False(t, m.inputs[len(m.inputs)-1].Focused())
}

func TestModel_TypeAndSave(t *testing.T) {
	m, svc := testModel(t, "")
	m = press(t, m, typeText("sk-ant-1234567890"), key(tea.KeyCtrlS))

	assert.False(t, m.statusErr, m.status)
	assert.Equal(t, "ANTHROPIC_API_KEY_SECRET=sk-ant-1234567890\n", envFile(t, svc))
}

func TestModel_ValidationFocusesField(t *testing.T) {
	m, svc := testModel(t, "")
	// move to DeepSeek (third row) and type an invalid key
	m = press(t, m, key(tea.KeyDown), key(tea.KeyDown), typeText("short"))
	m = press(t, m, key(tea.KeyUp), key(tea.KeyUp), key(tea.KeyCtrlS))

	assert.True(t, m.statusErr)
	assert.Equal(t, 2, m.active)
	assert.Equal(t, core.ProviderDeepSeek, m.descs[m.active].ID)
	_, err := os.Stat(svc.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestModel_ClearAllAsksForConfirmation(t *testing.T) {
	m, svc := testModel(t, "OPENAI_API_KEY_SECRET=sk-1234567890\n")
	m = press(t, m, key(tea.KeyDown), key(tea.KeyCtrlU), key(tea.KeyCtrlS))
	require.Equal(t, modeConfirmEmpty, m.m)
	assert.Contains(t, envFile(t, svc), "OPENAI_API_KEY_SECRET")
	assert.Contains(t, m.View(), "Confirm Save")

	declined := press(t, m, typeText("n"))
	assert.Equal(t, modeEdit, declined.m)
	assert.Contains(t, envFile(t, svc), "OPENAI_API_KEY_SECRET")

	accepted := press(t, m, typeText("y"))
	assert.Equal(t, modeEdit, accepted.m)
	assert.False(t, accepted.statusErr, accepted.status)
	assert.Equal(t, "", envFile(t, svc))
}

func TestModel_SaveAndLaunchWithoutScriptStaysOpen(t *testing.T) {
	m, svc := testModel(t, "")
	m = press(t, m, typeText("sk-ant-1234567890"))
	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(model)

	assert.Nil(t, cmd)
	assert.Equal(t, modeEdit, m.m)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "not found")
	assert.Contains(t, envFile(t, svc), "ANTHROPIC_API_KEY_SECRET", "save happens before launch")
}

func TestModel_SaveAndLaunchQuitsAfterDelay(t *testing.T) {
	m, svc := testModel(t, "")
	require.NoError(t, os.WriteFile(svc.Launcher.Script, []byte("#!/bin/sh\nexit 0\n"), 0o700))

	next, cmd := m.Update(key(tea.KeyCtrlL))
	m = next.(model)
	require.NotNil(t, cmd)
	assert.Equal(t, modeLaunching, m.m)
	assert.False(t, m.statusErr, m.status)

	_, quit := m.Update(quitMsg{})
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestModel_LongPasteIsNotTruncated(t *testing.T) {
	m, svc := testModel(t, "")
	long := "sk-ant-" + strings.Repeat("k", 2000)
	m = press(t, m, typeText(long), key(tea.KeyCtrlS))

	assert.Equal(t, long, m.inputs[0].Value())
	assert.False(t, m.statusErr, m.status)
	assert.Equal(t, "ANTHROPIC_API_KEY_SECRET="+long+"\n", envFile(t, svc))
}

func TestModel_ViewMasksValues(t *testing.T) {
	m, _ := testModel(t, "OPENAI_API_KEY_SECRET=sk-1234567890\n")
	out := m.View()
	assert.Contains(t, out, "****7890")
	assert.NotContains(t, out, "sk-1234567890")
	assert.True(t, strings.Contains(out, "(not set)"))

	m = press(t, m, key(tea.KeyCtrlE))
	assert.Contains(t, m.View(), "sk-1234567890")
}
