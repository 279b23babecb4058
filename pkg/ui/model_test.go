package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"kritagpt/pkg/config"
	"kritagpt/pkg/gpt"
	"kritagpt/pkg/host"
	"kritagpt/pkg/processor"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.Default()
	app := host.NewMemApp()
	app.NewDocument("Test", 800, 600)
	m := New(cfg, filepath.Join(t.TempDir(), "config.json"), app)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: t})
}

func TestSwitchTabCycles(t *testing.T) {
	m := newTestModel(t)

	if m.activeTab != tabCommands {
		t.Fatalf("initial tab = %v", m.activeTab)
	}
	m.Update(keyMsg(tea.KeyTab))
	if m.activeTab != tabSettings {
		t.Errorf("after tab: %v, want settings", m.activeTab)
	}
	m.Update(keyMsg(tea.KeyTab))
	if m.activeTab != tabHistory {
		t.Errorf("after two tabs: %v, want history", m.activeTab)
	}
	m.Update(keyMsg(tea.KeyTab))
	if m.activeTab != tabCommands {
		t.Errorf("after three tabs: %v, want commands", m.activeTab)
	}
	m.Update(keyMsg(tea.KeyShiftTab))
	if m.activeTab != tabHistory {
		t.Errorf("after shift+tab: %v, want history", m.activeTab)
	}
}

func TestSubmitSlashClear(t *testing.T) {
	m := newTestModel(t)
	m.appendLine("leftover")

	m.input.SetValue("/clear")
	m.Update(keyMsg(tea.KeyEnter))

	if len(m.lines) != 0 {
		t.Errorf("output not cleared: %v", m.lines)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestSubmitSlashHelp(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("/help")
	m.Update(keyMsg(tea.KeyEnter))

	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "/provider") {
		t.Errorf("help output missing commands:\n%s", joined)
	}
	// Slash commands are handled locally and never enter the command log.
	if m.commands.Len() != 0 {
		t.Errorf("command log = %v", m.commands.All())
	}
}

func TestSubmitStartsPipeline(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("draw a circle")
	cmd := m.submit()

	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if !m.processing {
		t.Error("processing = false after submit")
	}
	if got, _ := m.commands.At(0); got != "draw a circle" {
		t.Errorf("logged command = %q", got)
	}

	// Further submissions are ignored while the pipeline runs.
	m.input.SetValue("another")
	m.Update(keyMsg(tea.KeyEnter))
	if m.commands.Len() != 1 {
		t.Errorf("command log grew during processing: %v", m.commands.All())
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.submit(); cmd != nil {
		t.Error("empty input produced a command")
	}
	if m.processing {
		t.Error("processing = true after empty submit")
	}
}

func TestFinishPipelineSuccess(t *testing.T) {
	m := newTestModel(t)
	m.processing = true

	m.Update(pipelineMsg{
		command: "draw",
		gen:     gpt.Result{Success: true, Code: "doc.RefreshProjection()"},
		exec: processor.ExecResult{
			Success:  true,
			Executed: true,
			Message:  "Command executed successfully",
		},
		ran: true,
	})

	if m.processing {
		t.Error("processing still set")
	}
	if m.statusKind != statusOK {
		t.Errorf("statusKind = %v, want statusOK", m.statusKind)
	}
	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "Command executed successfully") {
		t.Errorf("output:\n%s", joined)
	}
	// show_code is off by default, so the code itself is not shown.
	if strings.Contains(joined, "RefreshProjection") {
		t.Errorf("code shown with show_code off:\n%s", joined)
	}
}

func TestFinishPipelineShowsCodeWhenEnabled(t *testing.T) {
	m := newTestModel(t)
	m.cfg.ShowCode = true
	m.processing = true

	m.Update(pipelineMsg{
		command: "draw",
		gen:     gpt.Result{Success: true, Code: "doc.RefreshProjection()"},
		exec:    processor.ExecResult{Success: true, Executed: true, Message: "ok"},
		ran:     true,
	})

	if !strings.Contains(strings.Join(m.lines, "\n"), "RefreshProjection") {
		t.Error("code not shown with show_code on")
	}
}

func TestFinishPipelineGenerationError(t *testing.T) {
	m := newTestModel(t)
	m.processing = true

	m.Update(pipelineMsg{
		command: "draw",
		gen:     gpt.Result{Err: "rate limited"},
	})

	if m.statusKind != statusError {
		t.Errorf("statusKind = %v, want statusError", m.statusKind)
	}
	if !strings.Contains(strings.Join(m.lines, "\n"), "rate limited") {
		t.Error("error not surfaced in output")
	}
}

func TestRecallHistory(t *testing.T) {
	m := newTestModel(t)
	m.commands.Add("first")
	m.commands.Add("second")

	m.Update(keyMsg(tea.KeyUp))
	if m.input.Value() != "second" {
		t.Errorf("after up: %q, want second", m.input.Value())
	}
	m.Update(keyMsg(tea.KeyUp))
	if m.input.Value() != "first" {
		t.Errorf("after up up: %q, want first", m.input.Value())
	}
	m.Update(keyMsg(tea.KeyDown))
	if m.input.Value() != "second" {
		t.Errorf("after down: %q, want second", m.input.Value())
	}
	// Walking past the newest entry restores the empty draft.
	m.Update(keyMsg(tea.KeyDown))
	if m.input.Value() != "" {
		t.Errorf("after down down: %q, want empty", m.input.Value())
	}
}

func TestRecallPreservesDraft(t *testing.T) {
	m := newTestModel(t)
	m.commands.Add("old command")
	m.input.SetValue("")

	m.Update(keyMsg(tea.KeyUp))
	if m.input.Value() != "old command" {
		t.Fatalf("recall failed: %q", m.input.Value())
	}
	m.Update(keyMsg(tea.KeyDown))
	if m.input.Value() != "" {
		t.Errorf("draft not restored: %q", m.input.Value())
	}
}

func TestHistoryTabReuse(t *testing.T) {
	m := newTestModel(t)
	m.commands.Add("first")
	m.commands.Add("second")

	m.Update(keyMsg(tea.KeyTab)) // settings
	m.Update(keyMsg(tea.KeyTab)) // history
	if m.histCursor != 1 {
		t.Fatalf("histCursor = %d, want 1 (newest)", m.histCursor)
	}

	m.Update(keyMsg(tea.KeyUp))
	m.Update(keyMsg(tea.KeyEnter))

	if m.activeTab != tabCommands {
		t.Errorf("tab = %v, want commands", m.activeTab)
	}
	if m.input.Value() != "first" {
		t.Errorf("input = %q, want first", m.input.Value())
	}
}

func TestSettingsToggle(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg(tea.KeyTab)) // settings

	// Move to the show-code toggle and flip it.
	for i, f := range m.settings.fields {
		if f.label == "Show code" {
			m.settings.index = i
			break
		}
	}
	m.Update(keyMsg(tea.KeyEnter))

	if !m.cfg.ShowCode {
		t.Error("show code not toggled")
	}
	// The change is persisted immediately.
	saved, err := config.Load(m.configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.ShowCode {
		t.Error("toggle not saved to disk")
	}
}

func TestSettingsEditTemperature(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg(tea.KeyTab)) // settings

	for i, f := range m.settings.fields {
		if f.label == "Temperature" {
			m.settings.index = i
			break
		}
	}
	m.Update(keyMsg(tea.KeyEnter))
	if !m.settings.editing {
		t.Fatal("not editing after enter")
	}

	m.settings.editor.SetValue("0.9")
	m.Update(keyMsg(tea.KeyEnter))

	if m.settings.editing {
		t.Error("still editing after commit")
	}
	if m.cfg.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want 0.9", m.cfg.Temperature)
	}
}

func TestSettingsRejectsBadTemperature(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg(tea.KeyTab))

	for i, f := range m.settings.fields {
		if f.label == "Temperature" {
			m.settings.index = i
			break
		}
	}
	m.Update(keyMsg(tea.KeyEnter))
	m.settings.editor.SetValue("2.5")
	m.Update(keyMsg(tea.KeyEnter))

	if m.cfg.Temperature == 2.5 {
		t.Error("invalid temperature applied")
	}
	if m.statusKind != statusError {
		t.Errorf("statusKind = %v, want statusError", m.statusKind)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "*****"},
		{"sk-abcdefghijklmnop", "sk-a********mnop"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestViewRendersTabs(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, name := range tabNames {
		if !strings.Contains(view, name) {
			t.Errorf("view missing tab %q", name)
		}
	}
}
