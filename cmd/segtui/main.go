// Command segtui runs the segmented selectors in a terminal. Options are
// terminal cells; the mouse drives the same gesture engine a touch screen
// would.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/segment"
)

var (
	configPath string
	logPath    string
	verbose    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "segtui",
	Short: "Drive a bottom bar and a tab group with the mouse",
	Long: `segtui renders a five-destination bottom bar and a three-tab group in the
terminal. Click an option, or press and drag across a row and release.

Tuning is read from --config (YAML) and SEGMENT_* environment variables.
The file is watched; saving it retunes both rows live.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal, so logs only go to a file.
		if logPath == "" {
			return nil
		}
		config := zap.NewDevelopmentConfig()
		config.OutputPaths = []string{logPath}
		config.ErrorOutputPaths = []string{logPath}
		if !verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runTUI,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning as YAML",
	Long: `Prints the profiles segtui would run with: built-in defaults, overlaid
with --config and SEGMENT_* environment variables. Redirect the output to
start a config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := segment.LoadProfiles(configPath)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(profiles); err != nil {
			return fmt.Errorf("encode profiles: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML tuning file")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log gesture phases")
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	loader, err := segment.NewLoader(configPath)
	if err != nil {
		return err
	}
	profiles, err := loader.Load()
	if err != nil {
		return err
	}

	m := newModel(profiles, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	loader.Watch(func(profiles segment.Profiles, err error) {
		p.Send(reloadMsg{profiles: profiles, err: err})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
