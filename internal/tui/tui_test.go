package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/minecraft-fetcher/internal/config"
	"github.com/handiism/minecraft-fetcher/internal/download"
	"github.com/handiism/minecraft-fetcher/internal/model"
	"github.com/handiism/minecraft-fetcher/internal/platform"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	settings := config.DefaultSettings()
	settings.RootDir = t.TempDir()
	return NewModel(settings, platform.Static{OS: platform.Linux, Arch: platform.Arch64})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_ToggleVerbose(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.verbose)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.verbose)
	assert.Contains(t, m.View(), "[x] Verbose")
}

func TestModel_VerboseEventsAreFiltered(t *testing.T) {
	m := newTestModel(t)
	m.state = StateDownloading

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "chunk done", Level: download.LevelVerbose}})
	assert.Empty(t, m.logs)

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "Downloading 3 libraries files", Level: download.LevelInfo}})
	require.Len(t, m.logs, 1)
	assert.Equal(t, download.LevelInfo, m.logs[0].Level)
}

func TestModel_LogsAreCapped(t *testing.T) {
	m := newTestModel(t)
	m.state = StateDownloading

	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "event", Level: download.LevelWarning}})
	}
	assert.Len(t, m.logs, maxLogs)
}

func TestModel_DownloadDone(t *testing.T) {
	result := &download.Result{
		VersionID: "1.20.4",
		Counts: map[model.Category]download.CategoryCount{
			model.CategoryAsset: {Total: 3, Succeeded: 2, Failed: 1},
		},
	}

	t.Run("success", func(t *testing.T) {
		m := update(t, newTestModel(t), DownloadDoneMsg{Result: result})
		assert.Equal(t, StateComplete, m.state)
		assert.Contains(t, m.View(), "Download Complete!")
	})

	t.Run("run error", func(t *testing.T) {
		runErr := &download.RunError{VersionID: "1.20.4", Failed: map[model.Category]int{model.CategoryAsset: 1}}
		m := update(t, newTestModel(t), DownloadDoneMsg{Result: result, Err: runErr})
		assert.Equal(t, StateComplete, m.state)
		assert.Contains(t, m.View(), "finished with failures")
		assert.Contains(t, m.View(), "2/3")
	})

	t.Run("fatal error", func(t *testing.T) {
		m := update(t, newTestModel(t), DownloadDoneMsg{Err: errors.New("fetching version manifest: boom")})
		assert.Equal(t, StateError, m.state)
		assert.Contains(t, m.View(), "boom")
	})
}
