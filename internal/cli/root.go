package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/irongantt/internal/config"
	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	backend    string

	// cfg is loaded once per invocation by the root command
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gantt",
	Short: "IronGantt - Terminal Gantt chart",
	Long: `IronGantt is a terminal Gantt chart. Add tasks, drag their bars with
the mouse to reschedule them, and keep the chart in a file, SQLite,
S3 or a remote snapshot server.

Run 'gantt' without arguments to launch the interactive chart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			loaded.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			loaded.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("backend") {
			loaded.Backend = backend
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := loaded.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}
		cfg = loaded

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("IronGantt started", logger.F("command", cmd.Name()), logger.F("backend", cfg.Backend))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("the interactive chart needs a terminal; try 'gantt chart' or 'gantt list'")
		}

		ws, err := openWorkspace(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer func() {
			_ = ws.Close()
			logger.Info("Workspace closed")
		}()

		zoom, _ := gantt.ParseZoom(ws.cfg.Zoom)
		m := tui.NewModel(ws.store, tui.Options{
			Zoom:         zoom,
			Throttle:     time.Duration(ws.cfg.ThrottleMS) * time.Millisecond,
			DefaultColor: ws.cfg.DefaultColor,
			Saves:        ws.writer,
		})
		ws.writer.SetOnSaved(m.NotifySaved)

		logger.Info("Launching TUI")
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("IronGantt exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// currentConfig returns the config loaded by the root command, or the
// file and environment defaults when no command has run
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	loaded, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return loaded
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend (file, sqlite, s3, remote)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resizeCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(historyCmd)
}
