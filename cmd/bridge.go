package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/config"
	"github.com/zhubert/cadcopilot/internal/logger"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the host's active document summary",
	Args:  cobra.NoArgs,
	RunE:  runContext,
}

var explainCmd = &cobra.Command{
	Use:   "explain <file>",
	Short: "Ask the bridge to explain a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

var bridgeStubCmd = &cobra.Command{
	Use:   "bridge-stub",
	Short: "Serve the bridge protocol from the fixture bridge on stdin/stdout",
	Long: `Runs the built-in fixture bridge as a JSON-RPC server, one message per
line on stdin and stdout. Point --bridge at this command to exercise the
process transport without a CAD host:

  cadcopilot --bridge "cadcopilot bridge-stub"`,
	Args: cobra.NoArgs,
	RunE: runBridgeStub,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(bridgeStubCmd)
}

// withBridge loads configuration, opens the bridge and calls fn with a
// context bounded by the call timeout.
func withBridge(cmd *cobra.Command, fn func(ctx context.Context, b bridge.Bridge) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CallTimeout)
	defer cancel()
	b, closeBridge, err := openBridge(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error starting bridge: %w", err)
	}
	defer func() { _ = closeBridge() }()
	return fn(ctx, b)
}

func runContext(cmd *cobra.Command, args []string) error {
	return withBridge(cmd, func(ctx context.Context, b bridge.Bridge) error {
		return printContext(ctx, b, cmd.OutOrStdout())
	})
}

func printContext(ctx context.Context, b bridge.Bridge, w io.Writer) error {
	dc, err := b.Context(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Document:   %s\n", dc.DocumentName)
	fmt.Fprintf(w, "Units:      %s\n", dc.Units)
	fmt.Fprintf(w, "Selection:  %d\n", dc.SelectionCount)
	fmt.Fprintf(w, "Parameters: %d\n", dc.ParameterCount)
	return nil
}

func runExplain(cmd *cobra.Command, args []string) error {
	return withBridge(cmd, func(ctx context.Context, b bridge.Bridge) error {
		return explainFile(ctx, b, args[0], cmd.OutOrStdout())
	})
}

// explainFile sends the script at path to the bridge, titled by the file
// name without its extension.
func explainFile(ctx context.Context, b bridge.Bridge, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading script: %w", err)
	}
	code := string(data)
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%s is empty", path)
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	text, err := b.Explain(ctx, code, title)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

func runBridgeStub(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serveFixture(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

func serveFixture(ctx context.Context, cfg *config.Config, r io.Reader, w io.Writer) error {
	f := bridge.NewFixture()
	f.FailExecution = cfg.FixtureFail
	logger.WithComponent("bridge-stub").Info("serving fixture bridge", "fail", cfg.FixtureFail)
	return bridge.Serve(ctx, f, r, w)
}
