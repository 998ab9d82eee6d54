package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/zhubert/cadcopilot/internal/settings"
)

const optionAutoRun = "auto-run"

// SettingsState edits the persisted copilot settings. The form works on a
// copy; nothing is applied until the app layer reads Values on save.
type SettingsState struct {
	model       string
	projectRoot string
	options     []string

	form *huh.Form

	availableWidth int
}

func (*SettingsState) modalState() {}

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = min(width, palette.Width)
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 6
	}
	return palette.Width - 6
}

func (s *SettingsState) Title() string { return "Copilot Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	return frame(s.Title(), s.form.View(), s.Help())
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = stepForm(s.form, msg)
	return s, cmd
}

// Values returns the edited settings.
func (s *SettingsState) Values() settings.Settings {
	return settings.Settings{
		Model:       s.model,
		ProjectRoot: strings.TrimSpace(s.projectRoot),
		AutoRun:     slices.Contains(s.options, optionAutoRun),
	}.Normalize()
}

// NewSettingsState creates a form pre-filled with current.
func NewSettingsState(current settings.Settings) *SettingsState {
	current = current.Normalize()
	s := &SettingsState{
		model:          current.Model,
		projectRoot:    current.ProjectRoot,
		availableWidth: palette.Width,
	}

	models := settings.KnownModels
	if !slices.Contains(models, current.Model) {
		models = append(slices.Clone(models), current.Model)
	}
	modelOptions := make([]huh.Option[string], len(models))
	for i, m := range models {
		modelOptions[i] = huh.NewOption(settings.ModelDisplayName(m), m)
	}

	if current.AutoRun {
		s.options = append(s.options, optionAutoRun)
	}
	generalOpts := []huh.Option[string]{
		huh.NewOption("Run code as soon as it is generated", optionAutoRun).
			Selected(current.AutoRun),
	}

	s.form = newForm(s.contentWidth(),
		huh.NewSelect[string]().
			Title("Model").
			Options(modelOptions...).
			Value(&s.model),
		huh.NewInput().
			Title("Project root").
			Description("Sent to the host with every generation request").
			Placeholder("/path/to/project").
			CharLimit(palette.CharLimit).
			Value(&s.projectRoot),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.options),
	)
	return s
}
