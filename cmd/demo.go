package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/cadcopilot/internal/demo"
	"github.com/zhubert/cadcopilot/internal/demo/scenarios"
)

var (
	demoOutput    string
	demoWidth     int
	demoHeight    int
	demoEveryStep bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Record scripted sessions of the copilot panel",
	Long: `Record scripted sessions of the copilot panel for docs and talks.
Scenarios run against the built-in fixture bridge, so no CAD host is needed.`,
}

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			listScenarios(cmd.OutOrStdout())
		},
	}
	stepsCmd := &cobra.Command{
		Use:   "steps <scenario>",
		Short: "Show what a scenario does, step by step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scenarios.Get(args[0])
			if s == nil {
				return unknownScenario(args[0])
			}
			printSteps(cmd.OutOrStdout(), s)
			return nil
		},
	}
	runCmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Play a scenario and print every frame",
		Args:  cobra.ExactArgs(1),
		RunE:  runDemoRun,
	}
	castCmd := &cobra.Command{
		Use:   "cast <scenario>",
		Short: "Record a scenario as an asciinema cast",
		Args:  cobra.ExactArgs(1),
		RunE:  runDemoCast,
	}

	for _, c := range []*cobra.Command{runCmd, castCmd} {
		c.Flags().IntVarP(&demoWidth, "width", "w", demo.DefaultWidth, "Terminal width")
		c.Flags().IntVarP(&demoHeight, "height", "H", demo.DefaultHeight, "Terminal height")
		c.Flags().BoolVar(&demoEveryStep, "capture-all", false, "Record a frame after every key press")
	}
	castCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Cast file (default <scenario>.cast)")

	demoCmd.AddCommand(listCmd, stepsCmd, runCmd, castCmd)
	rootCmd.AddCommand(demoCmd)
}

func unknownScenario(name string) error {
	return fmt.Errorf("unknown scenario %q (see 'cadcopilot demo list')", name)
}

func listScenarios(w io.Writer) {
	for _, s := range scenarios.All() {
		fmt.Fprintf(w, "%-12s %-45s %d steps\n", s.Name, s.Description, len(s.Steps))
	}
}

// printSteps lists the described steps; pauses and captions are skipped.
func printSteps(w io.Writer, s *demo.Scenario) {
	fmt.Fprintf(w, "%s: %s\n", s.Name, s.Description)
	if s.FailExecution {
		fmt.Fprintln(w, "  (the first execution fails)")
	}
	n := 0
	for _, step := range s.Steps {
		if step.Note == "" {
			continue
		}
		n++
		fmt.Fprintf(w, "  %2d. %-24s %s %q\n", n, step.Note, step.Action, step.Input)
	}
}

// getScenario returns a copy of the named scenario sized by the flags.
func getScenario(name string) (*demo.Scenario, error) {
	found := scenarios.Get(name)
	if found == nil {
		return nil, unknownScenario(name)
	}
	s := *found
	if demoWidth > 0 {
		s.Width = demoWidth
	}
	if demoHeight > 0 {
		s.Height = demoHeight
	}
	return &s, nil
}

func record(name string) (*demo.Scenario, []demo.Frame, error) {
	s, err := getScenario(name)
	if err != nil {
		return nil, nil, err
	}
	opts := demo.DefaultOptions()
	opts.EveryStep = demoEveryStep
	frames, err := demo.NewRecorder(opts).Record(s)
	if err != nil {
		return nil, nil, fmt.Errorf("recording %s: %w", name, err)
	}
	return s, frames, nil
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	_, frames, err := record(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, f := range frames {
		fmt.Fprintf(w, "--- frame %d/%d  +%v", i+1, len(frames), f.Delay)
		if f.Caption != "" {
			fmt.Fprintf(w, "  %q", f.Caption)
		}
		fmt.Fprintf(w, "\n%s\n", f.Content)
	}
	return nil
}

func runDemoCast(cmd *cobra.Command, args []string) error {
	s, frames, err := record(args[0])
	if err != nil {
		return err
	}

	path := demoOutput
	if path == "" {
		path = s.Name + ".cast"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := demo.WriteCast(f, s, frames); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames). Play it with: asciinema play %s\n", path, len(frames), path)
	return nil
}
