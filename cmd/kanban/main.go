package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/kanban/internal/api"
	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/config"
	"github.com/tgienger/kanban/internal/logging"
	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	configPath string
	apiURL     string
	insecure   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Terminal client for a Kanban board service",
	Long: `kanban manages boards, columns and cards on a Kanban REST service.

Run without arguments to start the interactive board UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Print the boards on the server",
	Args:  cobra.NoArgs,
	RunE:  runBoards,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kanban %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/kanban/config.yml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the board service (or set KANBAN_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to the log file")

	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers the command line over file and environment settings
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if cmd.Flags().Changed("insecure") {
		cfg.InsecureTLS = insecure
	}
	if verbose {
		cfg.LogLevel = "debug"
		if cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(cfg.DataDir, "kanban.log")
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config, logger *zap.Logger) *api.Client {
	opts := []api.Option{api.WithLogger(logger)}
	if cfg.InsecureTLS {
		opts = append(opts, api.WithInsecureTLS())
	}
	return api.New(cfg.APIURL, opts...)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	defer database.Close()

	logger.Info("starting", zap.String("version", version), zap.String("api_url", cfg.APIURL))

	syncer := board.NewSyncer(newClient(cfg, logger), logger)
	p := tea.NewProgram(ui.NewApp(syncer, database, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func runBoards(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	boards, err := newClient(cfg, logger).ListBoards(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing boards: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, b := range boards {
		fmt.Fprintf(w, "%s\t%s\n", b.ID, b.Title)
	}
	return w.Flush()
}
