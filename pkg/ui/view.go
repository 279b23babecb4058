package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case tabCommands:
		b.WriteString(boxStyle.Render(m.output.View()))
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(m.input.View()))
	case tabSettings:
		b.WriteString(boxStyle.Render(m.renderSettings()))
	case tabHistory:
		b.WriteString(boxStyle.Render(m.renderHistory()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderTabs() string {
	rendered := make([]string, 0, int(tabCount))
	for i := tab(0); i < tabCount; i++ {
		style := tabStyle
		if i == m.activeTab {
			style = activeTabStyle
		}
		rendered = append(rendered, style.Render(tabNames[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderStatus() string {
	prefix := ""
	style := mutedStyle
	switch m.statusKind {
	case statusBusy:
		prefix = m.spin.View() + " "
		style = infoStyle
	case statusOK:
		style = successStyle
	case statusWarn:
		style = warningStyle
	case statusError:
		style = errorStyle
	}
	return " " + prefix + style.Render(m.status)
}

func (m *Model) renderFooter() string {
	var hint string
	switch m.activeTab {
	case tabCommands:
		hint = "enter run · up/down recall · tab switch · ctrl+c quit"
	case tabSettings:
		if m.settings.editing {
			hint = "enter save · esc cancel"
		} else {
			hint = "up/down select · enter edit/toggle · tab switch"
		}
	case tabHistory:
		hint = "up/down select · enter reuse · tab switch"
	}
	return footerStyle.Render(" " + hint)
}

func (m *Model) renderSettings() string {
	s := &m.settings
	rows := make([]string, 0, len(s.fields))
	for i, field := range s.fields {
		value := field.get(m)
		if field.kind == fieldSecret && value != "" {
			value = maskKey(value)
		}
		if value == "" {
			value = mutedStyle.Render("(not set)")
		} else {
			value = textStyle.Render(value)
		}
		if i == s.index && s.editing {
			value = s.editor.View()
		}
		label := labelStyle.Render(field.label)
		if i == s.index && !s.editing {
			label = selectedStyle.Render(fmt.Sprintf("%-18s", field.label))
		}
		rows = append(rows, label+" "+value)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderHistory() string {
	entries := m.commands.All()
	if len(entries) == 0 {
		return mutedStyle.Render("No commands yet.")
	}
	rows := make([]string, 0, len(entries))
	for i, entry := range entries {
		line := fmt.Sprintf("%2d. %s", i+1, entry)
		if i == m.histCursor {
			rows = append(rows, selectedStyle.Render(line))
		} else {
			rows = append(rows, textStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

// maskKey shows just enough of a key to tell which one is configured.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", 8) + key[len(key)-4:]
}
