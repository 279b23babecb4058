package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"kritagpt/pkg/ai"
	"kritagpt/pkg/commands"
	"kritagpt/pkg/config"
	"kritagpt/pkg/gpt"
	"kritagpt/pkg/history"
	"kritagpt/pkg/host"
	"kritagpt/pkg/processor"
)

type tab int

const (
	tabCommands tab = iota
	tabSettings
	tabHistory
	tabCount
)

var tabNames = [tabCount]string{"Commands", "Settings", "History"}

type statusKind int

const (
	statusIdle statusKind = iota
	statusBusy
	statusOK
	statusWarn
	statusError
)

// pipelineMsg carries the outcome of one generate-and-execute round trip
// back into the update loop.
type pipelineMsg struct {
	command string
	gen     gpt.Result
	exec    processor.ExecResult
	ran     bool
}

// Model is the root bubbletea model for the docker.
type Model struct {
	cfg        config.Config
	configPath string
	app        host.App
	handler    *gpt.Handler
	executor   *processor.Executor
	dispatcher *commands.Dispatcher
	commands   *history.CommandLog

	activeTab tab
	input     textarea.Model
	output    viewport.Model
	spin      spinner.Model
	settings  settingsState

	// One command in flight at a time. While processing is set the input
	// is blurred and submissions are ignored.
	processing bool
	status     string
	statusKind statusKind
	lines      []string

	// histIndex is the recall cursor into the command log, counted from
	// the most recent entry. -1 means no recall in progress.
	histIndex int
	draft     string

	histCursor int

	width  int
	height int
	ready  bool
}

// New builds the docker model from a loaded configuration.
func New(cfg config.Config, configPath string, app host.App) *Model {
	input := textarea.New()
	input.Placeholder = "Describe what you want to do, or /help"
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = titleStyle

	m := &Model{
		cfg:        cfg,
		configPath: configPath,
		app:        app,
		executor:   processor.NewExecutor(app),
		dispatcher: commands.NewDispatcher(),
		commands:   history.NewCommandLog(cfg.HistorySize),
		input:      input,
		spin:       spin,
		histIndex:  -1,
	}
	m.settings = newSettingsState()
	m.rebuildHandler()
	m.appendLine(titleStyle.Render("KritaGPT") + mutedStyle.Render("  natural-language canvas control"))
	m.appendLine(mutedStyle.Render("Type /help for commands."))
	return m
}

// rebuildHandler reinitializes the provider from the current configuration.
// Called at startup and whenever the provider or its key changes.
func (m *Model) rebuildHandler() {
	provider, err := ai.GetProviderFromConfig(m.cfg)
	if err != nil {
		slog.Warn("provider unavailable", "provider", m.cfg.APIProvider, "error", err)
		provider = nil
	}
	m.handler = gpt.NewHandler(provider, m.cfg.Model, m.cfg.Temperature, m.cfg.MaxTokens, m.cfg.HistorySize)
	if provider == nil {
		m.setStatus(statusWarn, fmt.Sprintf("No API key for %s. Set it in the Settings tab.", m.cfg.APIProvider))
	} else {
		m.setStatus(statusIdle, fmt.Sprintf("%s / %s", m.cfg.APIProvider, m.cfg.Model))
	}
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pipelineMsg:
		m.finishPipeline(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.switchTab(1)
			return m, nil
		case "shift+tab":
			m.switchTab(-1)
			return m, nil
		}
		switch m.activeTab {
		case tabCommands:
			return m.updateCommands(msg)
		case tabSettings:
			return m.updateSettings(msg)
		case tabHistory:
			return m.updateHistory(msg)
		}
	}

	if m.activeTab == tabCommands && !m.processing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) switchTab(delta int) {
	m.activeTab = tab((int(m.activeTab) + delta + int(tabCount)) % int(tabCount))
	if m.activeTab == tabCommands && !m.processing {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if m.activeTab == tabHistory {
		m.histCursor = m.commands.Len() - 1
	}
}

func (m *Model) updateCommands(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.processing {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		return m, m.submit()
	case "up":
		if m.input.Value() == "" || m.histIndex >= 0 {
			m.recall(1)
			return m, nil
		}
	case "down":
		if m.histIndex >= 0 {
			m.recall(-1)
			return m, nil
		}
	case "esc":
		m.input.Reset()
		m.histIndex = -1
		return m, nil
	}
	m.histIndex = -1
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// recall moves the history cursor and replaces the input with the
// recalled command. Moving past the newest entry restores the draft.
func (m *Model) recall(delta int) {
	if m.commands.Len() == 0 {
		return
	}
	if m.histIndex == -1 && delta > 0 {
		m.draft = m.input.Value()
	}
	next := m.histIndex + delta
	if next < 0 {
		m.histIndex = -1
		m.input.SetValue(m.draft)
		m.input.CursorEnd()
		return
	}
	if next >= m.commands.Len() {
		next = m.commands.Len() - 1
	}
	entry, ok := m.commands.At(next)
	if !ok {
		return
	}
	m.histIndex = next
	m.input.SetValue(entry)
	m.input.CursorEnd()
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()
	m.histIndex = -1
	m.draft = ""

	if m.dispatcher.IsCommand(text) {
		m.runSlashCommand(text)
		return nil
	}

	m.commands.Add(text)
	m.processing = true
	m.input.Blur()
	m.setStatus(statusBusy, "Thinking...")
	m.appendLine("")
	m.appendLine(infoStyle.Render("> ") + textStyle.Render(text))
	return tea.Batch(m.spin.Tick, m.runPipeline(text))
}

func (m *Model) runSlashCommand(text string) {
	ctx := &commands.Context{
		Config:     &m.cfg,
		ConfigPath: m.configPath,
		Handler:    m.handler,
		Commands:   m.commands,
	}
	res := m.dispatcher.Dispatch(text, ctx)
	switch res.Action {
	case commands.ResultActionClearOutput:
		m.lines = nil
		m.syncOutput()
		m.setStatus(statusIdle, "Output cleared")
		return
	case commands.ResultActionReinitProvider:
		m.rebuildHandler()
	}
	m.appendLine("")
	if res.Title != "" {
		m.appendLine(titleStyle.Render(res.Title))
	}
	style := textStyle
	if res.IsError {
		style = errorStyle
		m.setStatus(statusError, res.Content)
	}
	for _, line := range strings.Split(res.Content, "\n") {
		m.appendLine(style.Render(line))
	}
}

// runPipeline produces the tea.Cmd that generates code for the command and
// executes it. It captures everything it needs so the closure never touches
// the model from another goroutine.
func (m *Model) runPipeline(command string) tea.Cmd {
	handler := m.handler
	executor := m.executor
	app := m.app
	autoExecute := m.cfg.AutoExecute
	return func() tea.Msg {
		dctx := host.Snapshot(app)
		gen := handler.GetCode(context.Background(), command, dctx)
		if !gen.Success {
			return pipelineMsg{command: command, gen: gen}
		}
		exec := executor.Execute(gen.Code, autoExecute)
		return pipelineMsg{command: command, gen: gen, exec: exec, ran: true}
	}
}

func (m *Model) finishPipeline(msg pipelineMsg) {
	m.processing = false
	if m.activeTab == tabCommands {
		m.input.Focus()
	}

	if !msg.ran {
		m.appendLine(errorStyle.Render("Error: " + msg.gen.Err))
		m.setStatus(statusError, msg.gen.Err)
		m.syncOutput()
		return
	}

	exec := msg.exec
	if m.cfg.ShowCode || !exec.Executed {
		m.appendCode(msg.gen.Code)
	}
	switch {
	case exec.Success:
		m.appendLine(successStyle.Render(exec.Message))
		m.setStatus(statusOK, exec.Message)
	default:
		m.appendLine(errorStyle.Render("Error: " + exec.Err))
		if exec.Trace != "" && m.cfg.ShowCode {
			for _, line := range strings.Split(exec.Trace, "\n") {
				m.appendLine(mutedStyle.Render(line))
			}
		}
		m.setStatus(statusError, exec.Err)
	}
	m.syncOutput()
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.commands.Len()
	switch msg.String() {
	case "up", "k":
		if m.histCursor > 0 {
			m.histCursor--
		}
	case "down", "j":
		if m.histCursor < n-1 {
			m.histCursor++
		}
	case "enter":
		if n == 0 || m.histCursor < 0 || m.histCursor >= n {
			return m, nil
		}
		m.input.SetValue(m.commands.All()[m.histCursor])
		m.input.CursorEnd()
		m.activeTab = tabCommands
		if !m.processing {
			m.input.Focus()
		}
	}
	return m, nil
}

func (m *Model) appendCode(code string) {
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		m.appendLine(codeStyle.Render("  " + line))
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.syncOutput()
}

func (m *Model) syncOutput() {
	if !m.ready {
		return
	}
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	inputHeight := m.input.Height() + 2
	// header + status + footer plus the output border.
	chrome := 3 + 2
	vh := height - inputHeight - chrome
	if vh < 3 {
		vh = 3
	}
	vw := width - 4
	if vw < 20 {
		vw = 20
	}
	if !m.ready {
		m.output = viewport.New(vw, vh)
		m.ready = true
	} else {
		m.output.Width = vw
		m.output.Height = vh
	}
	m.input.SetWidth(vw)
	m.syncOutput()
}
