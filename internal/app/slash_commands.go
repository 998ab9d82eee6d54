package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// slashCommandDef defines a slash command typed into the request input.
type slashCommandDef struct {
	name        string
	description string
	handler     func(m *Model) tea.Cmd
}

// getSlashCommands returns the registry of available slash commands.
// Using a function instead of a var avoids initialization cycles.
func getSlashCommands() []slashCommandDef {
	return []slashCommandDef{
		{
			name:        "help",
			description: "Show tips for writing requests",
			handler: func(m *Model) tea.Cmd {
				m.ctrl.Help()
				return m.sync()
			},
		},
		{
			name:        "settings",
			description: "Open the settings",
			handler: func(m *Model) tea.Cmd {
				m.ctrl.OpenSettings()
				return m.sync()
			},
		},
	}
}

// handleSlashCommand runs input if it names a slash command. Input that
// merely starts with a slash is sent as a request.
func (m *Model) handleSlashCommand(input string) (tea.Cmd, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return nil, false
	}
	name := strings.ToLower(strings.TrimPrefix(strings.Fields(trimmed)[0], "/"))
	for _, c := range getSlashCommands() {
		if c.name == name {
			m.log.Debug("slash command", "command", name)
			return c.handler(m), true
		}
	}
	return nil, false
}
