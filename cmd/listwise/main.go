/*
Package main implements the ListWise suggestion service and CLI [DBG] application.

ListWise scores and ranks previously-entered list item titles against the
user's in-progress input, blending fuzzy title similarity with usage
frequency and recency, behind a time-bounded query cache. It can operate as
a MessagePack IPC child process for the host list-management app, or as a
CLI application for testing and debugging.

# Usage

Start the server over the host app's items database:

	listwise -db /path/to/items.db

Run in CLI mode against a seeded demo corpus and enable debug mode:

	listwise -c -d

# Configuration

Runtime configuration is managed through a TOML file holding the scoring
weights, recency decay, cache policy and limits:

	[engine]
	similarity_weight = 0.5
	frequency_weight = 0.3
	recency_weight = 0.2
	recency_half_life_days = 7
	cache_ttl_seconds = 300
	cache_max_entries = 100
	min_prefix = 2
	max_limit = 50

	[server]
	default_limit = 10
	max_limit = 50
	max_prefix = 200

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. A suggestion
query:

	{"id": "req1", "p": "mi", "x": "item-being-edited", "l": 10}

yields ranked suggestions; the host app sends {"action": "invalidate"} on
every item or list mutation so cached rankings are dropped. See pkg/server
for the full message set.

# Command Line Flags

	-db string
	    Path to the host app's items database (omit for a seeded demo corpus)
	-config string
	    Custom config file path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length before suggestions activate
	-scores
	    Show score columns in CLI output
	-no-filter
	    Disable input filtering in CLI mode
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mkarven/listwise/internal/cli"
	"github.com/mkarven/listwise/internal/store"
	"github.com/mkarven/listwise/internal/store/dbstore"
	"github.com/mkarven/listwise/internal/utils"
	"github.com/mkarven/listwise/pkg/config"
	"github.com/mkarven/listwise/pkg/server"
	"github.com/mkarven/listwise/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "listwise"
	gh      = "https://github.com/mkarven/listwise"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dbPath := flag.String("db", "", "Path to the host app's items database (omit for a seeded demo corpus)")
	configPathFlag := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.Engine.MinPrefix, "Minimum prefix length before suggestions activate")
	showScores := flag.Bool("scores", defaultConfig.CLI.ShowScores, "Show score columns in CLI output")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetOutput(os.Stderr)

	appConfig, configPath, err := loadConfig(pathResolver, *configPathFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	itemStore, err := openStore(pathResolver, *dbPath)
	if err != nil {
		log.Fatalf("Failed to open item store: %v", err)
	}
	defer itemStore.Close()

	opts := appConfig.EngineOptions()
	if *minPrefix > 0 {
		opts.MinPrefixRunes = *minPrefix
	}
	engine := suggest.NewEngine(itemStore, opts)
	itemStore.OnMutate(engine.Invalidate)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", opts.MinPrefixRunes,
			"limit", *limit,
			"showScores", *showScores,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(engine, opts.MinPrefixRunes, *limit, *showScores, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, appConfig, configPath)

	showStartupInfo(*dbPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadConfig resolves and loads the TOML config, creating it on first run.
func loadConfig(pathResolver *utils.PathResolver, customPath string) (*config.Config, string, error) {
	if customPath != "" {
		cfg, path, err := config.LoadConfigWithPriority(customPath)
		return cfg, path, err
	}
	configPath, err := pathResolver.GetConfigPath("config.toml")
	if err != nil {
		return nil, "", err
	}
	log.Debugf("Using config file: (%s)", configPath)
	cfg, err := config.InitConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// openStore picks the corpus source: the host app's sqlite database when
// -db is given, otherwise a seeded in-memory demo corpus.
func openStore(pathResolver *utils.PathResolver, dbPath string) (store.ItemStore, error) {
	if dbPath != "" {
		resolved := pathResolver.GetDatabasePath(dbPath)
		log.Debugf("Using items database at: %s", resolved)
		return dbstore.NewSQLiteStore(resolved)
	}
	log.Warn("No database specified, using seeded demo corpus...")
	return seedDemoStore()
}

// printVersion displays some basic info with styled output.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["version"] = lipgloss.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ ListWise ] Smart item suggestions for your lists!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dbPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	source := dbPath
	if source == "" {
		source = "demo corpus"
	}

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " ListWise ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("corpus source: ( %s )", source)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")

	log.SetLevel(currentLevel)
}
