package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/cadcopilot/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the saved copilot settings",
	Long: `Prints the settings record the panel uses: the generation backend, the
project root and whether generated code runs automatically.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Changes one field of the settings record and saves it.

Keys:
  model         one of ` + strings.Join(settings.KnownModels, ", ") + `
  project-root  directory generated scripts are written against
  auto-run      true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, release, err := storeForCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	s, err := store.Load()
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), s)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store, release, err := storeForCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	s, err := store.Load()
	if err != nil {
		return err
	}
	s, err = applySetting(s, args[0], args[1])
	if err != nil {
		return err
	}
	if err := store.Save(s); err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), s)
	return nil
}

func storeForCommand(cmd *cobra.Command) (settings.Store, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return openStore(cfg)
}

// applySetting returns s with key set to value.
func applySetting(s settings.Settings, key, value string) (settings.Settings, error) {
	switch strings.ToLower(key) {
	case "model":
		value = strings.ToLower(strings.TrimSpace(value))
		for _, m := range settings.KnownModels {
			if m == value {
				s.Model = value
				return s, nil
			}
		}
		return s, fmt.Errorf("unknown model %q (want one of %s)", value, strings.Join(settings.KnownModels, ", "))
	case "project-root", "projectroot":
		s.ProjectRoot = strings.TrimSpace(value)
		return s, nil
	case "auto-run", "autorun":
		on, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return s, fmt.Errorf("auto-run must be true or false, got %q", value)
		}
		s.AutoRun = on
		return s, nil
	default:
		return s, fmt.Errorf("unknown setting %q (want model, project-root or auto-run)", key)
	}
}

func printSettings(w io.Writer, s settings.Settings) {
	root := s.ProjectRoot
	if root == "" {
		root = "(not set)"
	}
	fmt.Fprintf(w, "Model:        %s (%s)\n", settings.ModelDisplayName(s.Model), s.Model)
	fmt.Fprintf(w, "Project root: %s\n", root)
	fmt.Fprintf(w, "Auto-run:     %t\n", s.AutoRun)
}
