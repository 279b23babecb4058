package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kritagpt/pkg/ai"
	"kritagpt/pkg/apidoc"
	"kritagpt/pkg/config"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSecret
	fieldToggle
)

// settingsField describes one editable row in the Settings tab. get renders
// the current value, set parses and applies a new one.
type settingsField struct {
	label   string
	kind    fieldKind
	reinit  bool // provider must be rebuilt after a change
	get     func(m *Model) string
	set     func(m *Model, value string) error
}

type settingsState struct {
	fields  []settingsField
	index   int
	editing bool
	editor  textinput.Model
}

func newSettingsState() settingsState {
	editor := textinput.New()
	editor.CharLimit = 0
	return settingsState{
		editor: editor,
		fields: []settingsField{
			{
				label:  "Provider",
				reinit: true,
				get:    func(m *Model) string { return m.cfg.APIProvider },
				set: func(m *Model, value string) error {
					value = strings.ToLower(strings.TrimSpace(value))
					if _, ok := ai.ValidateProviderType(value); !ok {
						return fmt.Errorf("unknown provider %q (openai, anthropic, google)", value)
					}
					m.cfg.APIProvider = value
					m.cfg.Model = apidoc.DefaultModel(value)
					return nil
				},
			},
			{
				label:  "OpenAI API key",
				kind:   fieldSecret,
				reinit: true,
				get:    func(m *Model) string { return m.cfg.OpenAIAPIKey },
				set: func(m *Model, value string) error {
					m.cfg.OpenAIAPIKey = strings.TrimSpace(value)
					return nil
				},
			},
			{
				label:  "Anthropic API key",
				kind:   fieldSecret,
				reinit: true,
				get:    func(m *Model) string { return m.cfg.AnthropicAPIKey },
				set: func(m *Model, value string) error {
					m.cfg.AnthropicAPIKey = strings.TrimSpace(value)
					return nil
				},
			},
			{
				label:  "Google API key",
				kind:   fieldSecret,
				reinit: true,
				get:    func(m *Model) string { return m.cfg.GoogleAPIKey },
				set: func(m *Model, value string) error {
					m.cfg.GoogleAPIKey = strings.TrimSpace(value)
					return nil
				},
			},
			{
				label: "Model",
				get:   func(m *Model) string { return m.cfg.Model },
				set: func(m *Model, value string) error {
					value = strings.TrimSpace(value)
					if value == "" {
						return fmt.Errorf("model name cannot be empty")
					}
					m.cfg.Model = value
					m.handler.SetModel(value)
					return nil
				},
			},
			{
				label: "Temperature",
				get:   func(m *Model) string { return strconv.FormatFloat(m.cfg.Temperature, 'g', -1, 64) },
				set: func(m *Model, value string) error {
					t, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
					if err != nil || t < 0 || t > 1 {
						return fmt.Errorf("temperature must be between 0.0 and 1.0")
					}
					m.cfg.Temperature = t
					m.handler.SetTemperature(t)
					return nil
				},
			},
			{
				label: "Max tokens",
				get:   func(m *Model) string { return strconv.Itoa(m.cfg.MaxTokens) },
				set: func(m *Model, value string) error {
					n, err := strconv.Atoi(strings.TrimSpace(value))
					if err != nil || n <= 0 {
						return fmt.Errorf("max tokens must be a positive integer")
					}
					m.cfg.MaxTokens = n
					return nil
				},
			},
			{
				label: "History size",
				get:   func(m *Model) string { return strconv.Itoa(m.cfg.HistorySize) },
				set: func(m *Model, value string) error {
					n, err := strconv.Atoi(strings.TrimSpace(value))
					if err != nil || n <= 0 {
						return fmt.Errorf("history size must be a positive integer")
					}
					m.cfg.HistorySize = n
					m.commands.SetLimit(n)
					return nil
				},
			},
			{
				label: "Show code",
				kind:  fieldToggle,
				get:   func(m *Model) string { return onOff(m.cfg.ShowCode) },
				set: func(m *Model, _ string) error {
					m.cfg.ShowCode = !m.cfg.ShowCode
					return nil
				},
			},
			{
				label: "Auto-execute",
				kind:  fieldToggle,
				get:   func(m *Model) string { return onOff(m.cfg.AutoExecute) },
				set: func(m *Model, _ string) error {
					m.cfg.AutoExecute = !m.cfg.AutoExecute
					return nil
				},
			},
		},
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.settings
	if s.editing {
		switch msg.String() {
		case "enter":
			m.commitSetting()
			return m, nil
		case "esc":
			s.editing = false
			s.editor.Blur()
			m.setStatus(statusIdle, "Edit cancelled")
			return m, nil
		}
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if s.index > 0 {
			s.index--
		}
	case "down", "j":
		if s.index < len(s.fields)-1 {
			s.index++
		}
	case "enter", " ":
		field := s.fields[s.index]
		if field.kind == fieldToggle {
			_ = field.set(m, "")
			m.saveConfig()
			return m, nil
		}
		s.editing = true
		s.editor.SetValue(field.get(m))
		if field.kind == fieldSecret {
			s.editor.EchoMode = textinput.EchoPassword
		} else {
			s.editor.EchoMode = textinput.EchoNormal
		}
		s.editor.CursorEnd()
		return m, s.editor.Focus()
	}
	return m, nil
}

func (m *Model) commitSetting() {
	s := &m.settings
	field := s.fields[s.index]
	s.editing = false
	s.editor.Blur()
	if err := field.set(m, s.editor.Value()); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.saveConfig()
	if field.reinit {
		m.rebuildHandler()
	}
}

func (m *Model) saveConfig() {
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.setStatus(statusError, "Failed to save settings: "+err.Error())
		return
	}
	m.setStatus(statusOK, "Settings saved")
}
