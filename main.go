package main

import (
	"fmt"
	"os"

	"multi-image-viewer/internal/indexer"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/session"
	"multi-image-viewer/internal/startup"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configPath    string
	flagPattern   string
	flagOnNoMatch string
	flagLogLevel  string

	flagPort        string
	flagBind        string
	flagWatch       bool
	flagMetrics     bool
	flagMetricsPort string
	flagLogHTTP     bool

	flagPromptRule  bool
	flagInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "multi-image-viewer [folders...]",
	Short: "Compare images across folders side by side",
	Long: `multi-image-viewer pairs up images from several folders by a key taken
from each file name and pages through the matching sets side by side.

Without a subcommand it serves the browser viewer on a local port.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve [folders...]",
	Short: "Serve the browser viewer",
	RunE:  runServe,
}

var browseCmd = &cobra.Command{
	Use:   "browse [folders...]",
	Short: "Browse the folders in the terminal",
	RunE:  runBrowse,
}

var indexCmd = &cobra.Command{
	Use:   "index [folders...]",
	Short: "Print the key table for the folders and exit",
	RunE:  runIndex,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), startup.GetBuildInfo().String())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.config/multi-image-viewer/config.yaml)")
	pf.StringVar(&flagPattern, "pattern", "", "key pattern; the first capture group is the key, empty uses the full file name")
	pf.StringVar(&flagOnNoMatch, "on-no-match", "", "files the pattern does not match: fullname or skip")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")

	addServeFlags(rootCmd)
	addServeFlags(serveCmd)

	browseCmd.Flags().BoolVar(&flagWatch, "watch", false, "rebuild when images in the folders change")
	browseCmd.Flags().BoolVar(&flagPromptRule, "prompt-rule", false, "ask for the key pattern before browsing")
	indexCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "choose folders interactively")

	rootCmd.AddCommand(serveCmd, browseCmd, indexCmd, versionCmd)
}

func addServeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagPort, "port", "", "viewer port (default 8080)")
	f.StringVar(&flagBind, "bind", "", "viewer bind address (default 127.0.0.1)")
	f.BoolVar(&flagWatch, "watch", false, "rebuild when images in the folders change")
	f.BoolVar(&flagMetrics, "metrics", false, "serve Prometheus metrics")
	f.StringVar(&flagMetricsPort, "metrics-port", "", "metrics port (default 9090)")
	f.BoolVar(&flagLogHTTP, "log-http", true, "log HTTP requests")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers explicitly set flags and positional folders over the
// file and environment configuration, then applies the log level.
func loadConfig(cmd *cobra.Command, args []string) (*startup.Config, error) {
	cfg, err := startup.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("pattern") {
		p := flagPattern
		cfg.KeyPattern = &p
	}
	if flags.Changed("on-no-match") {
		cfg.OnNoMatch = flagOnNoMatch
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("bind") {
		cfg.BindAddress = flagBind
	}
	if flags.Changed("watch") {
		cfg.Watch = flagWatch
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled = flagMetrics
	}
	if flags.Changed("metrics-port") {
		cfg.MetricsPort = flagMetricsPort
	}
	if flags.Changed("log-http") {
		cfg.LogHTTP = flagLogHTTP
	}
	if len(args) > 0 {
		cfg.Folders = args
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.LogLevel != "" {
		level, _ := logging.ParseLevel(cfg.LogLevel)
		logging.SetLevel(level)
	}
	return cfg, nil
}

// newSession creates a session over the real filesystem with the configured
// rule and folders. It does not build the index.
func newSession(cfg *startup.Config) (*session.Session, error) {
	rule, err := cfg.Rule()
	if err != nil {
		return nil, fmt.Errorf("invalid key pattern: %w", err)
	}
	s := session.New(indexer.NewOS(), rule)
	s.SetFolders(cfg.Folders)
	return s, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// stderrNotifier prints notices for the command line surfaces.
type stderrNotifier struct{}

func (stderrNotifier) Notify(n session.Notice) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", n.Level, n.Message)
}
