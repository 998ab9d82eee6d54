package cmd

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/cadcopilot/internal/app"
	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/config"
	"github.com/zhubert/cadcopilot/internal/logger"
	"github.com/zhubert/cadcopilot/internal/settings"
)

var (
	debugMode             bool
	quietMode             bool
	bridgeCmdFlag         string
	settingsPathFlag      string
	settingsDBFlag        string
	logPathFlag           string
	callTimeoutFlag       time.Duration
	fixtureFailFlag       bool
	notifyFlag            bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "cadcopilot",
	Short: "Terminal copilot for generating and running CAD scripts",
	Long: `CAD Copilot is a chat panel for a CAD host. Describe a part, review the
generated script and its plan, then apply it to the active document.

Without --bridge (or CADCOPILOT_BRIDGE_CMD) a built-in fixture bridge
answers every request with a canned parametric bracket.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	pf.BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	pf.StringVar(&bridgeCmdFlag, "bridge", "", "Command line of the host bridge process (default: fixture bridge)")
	pf.StringVar(&settingsPathFlag, "settings-path", "", "Settings JSON file (default ~/.cadcopilot/settings.json)")
	pf.StringVar(&settingsDBFlag, "settings-db", "", "Store settings in this SQLite database instead of a JSON file")
	pf.StringVar(&logPathFlag, "log-path", "", "Debug log file (default "+logger.DefaultLogPath+")")
	pf.DurationVar(&callTimeoutFlag, "timeout", config.DefaultCallTimeout, "Timeout for a single bridge call")
	pf.BoolVar(&fixtureFailFlag, "fixture-fail", false, "Make the fixture bridge report an execution failure")
	rootCmd.Flags().BoolVar(&notifyFlag, "notify", false, "Desktop notification when an execution finishes in the background")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("cadcopilot %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("cadcopilot %s\n", version)
}

// loadConfig reads .env and the environment, then applies any flags the
// user set explicitly on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}
	cfg := config.Load()
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.LogPath != "" {
		if err := logger.Init(cfg.LogPath); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on cmd. A flag naming one
// settings backend drops the other one coming from the environment; both
// flags together are left for Validate to reject.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagChanged(cmd, "bridge") {
		cfg.BridgeCmd = bridgeCmdFlag
	}
	pathSet, dbSet := flagChanged(cmd, "settings-path"), flagChanged(cmd, "settings-db")
	if pathSet {
		cfg.SettingsPath = settingsPathFlag
		if !dbSet {
			cfg.SettingsDB = ""
		}
	}
	if dbSet {
		cfg.SettingsDB = settingsDBFlag
		if !pathSet {
			cfg.SettingsPath = ""
		}
	}
	if flagChanged(cmd, "log-path") {
		cfg.LogPath = logPathFlag
	}
	if flagChanged(cmd, "timeout") {
		cfg.CallTimeout = callTimeoutFlag
	}
	if flagChanged(cmd, "fixture-fail") {
		cfg.FixtureFail = fixtureFailFlag
	}
	if flagChanged(cmd, "notify") {
		cfg.Notify = notifyFlag
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// openStore returns the configured settings backend and a func releasing it.
func openStore(cfg *config.Config) (settings.Store, func() error, error) {
	if cfg.SettingsDB != "" {
		s, err := settings.OpenSQLite(cfg.SettingsDB)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	path := cfg.SettingsPath
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return nil, nil, fmt.Errorf("error locating settings file: %w", err)
		}
	}
	return settings.NewFileStore(path), func() error { return nil }, nil
}

// openBridge starts the configured host bridge, or the fixture bridge when
// no command is set.
func openBridge(ctx context.Context, cfg *config.Config) (bridge.Bridge, func() error, error) {
	if cfg.UsesFixture() {
		f := bridge.NewFixture()
		f.FailExecution = cfg.FixtureFail
		return f, func() error { return nil }, nil
	}
	p, err := bridge.StartProcess(ctx, cfg.BridgeArgs())
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	log := logger.WithComponent("cmd")

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b, closeBridge, err := openBridge(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error starting bridge: %w", err)
	}
	defer func() {
		if err := closeBridge(); err != nil {
			log.Warn("bridge close failed", "error", err)
		}
	}()
	log.Info("starting", "version", version, "fixture", cfg.UsesFixture(), "timeout", cfg.CallTimeout)

	m := app.New(app.Options{
		Bridge:      b,
		Store:       store,
		Notify:      cfg.Notify,
		CallTimeout: cfg.CallTimeout,
		Version:     version,
	})
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
