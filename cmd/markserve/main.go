// Copyright 2026 The MarkServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the trademark search server and CLI [DBG] application.

MarkServe provides fuzzy trademark search over a local bbolt database. It
understands Korean: queries match product names by literal containment, by
sequence similarity, or by initial-consonant patterns (ㅅㅌㅂㅅ finds 스타벅스).
It can operate as a MessagePack IPC server for integration with front-end
services, or as a CLI application for testing and debugging.

Records are filtered by register status, main product code and date ranges
before the query gate runs, and matches are ordered by similarity to the
query. Small result sets go through a second ranking pass.

# Usage

Start the server with default settings:

	markserve

Use a custom database file and enable debug mode:

	markserve -db /path/to/marks.db -d

Run in CLI mode for interactive testing:

	markserve -c -limit 10

The database file is produced by the markload tool from a KIPRIS-style JSON
export. Records are keyed by application number and carry the product names,
dates, statuses and product codes the search filters operate on.

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, search tuning and CLI defaults:

	[server]
	max_limit = 64
	default_limit = 10
	min_query = 1
	max_query = 60

	[search]
	threshold = 0.6
	rerank_limit = 10
	suggest_limit = 5

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads the file on change without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Search requests
are processed synchronously with microsecond timing information included in
responses.

Send a search request:

	{"id": "req1", "q": "스타벅스", "l": 10}

Receive ranked hits with the pre-paging total:

	{"id": "req1", "r": [{"an": "40-2021-0001", "pn": "스타벅스", ...}], "tot": 2, "c": 2, "t": 145}

Other actions cover detail lookups, metadata enumeration and runtime config:

	{"id": "d1", "action": "detail", "an": "40-2021-0001"}
	{"id": "m1", "action": "statuses"}
	{"id": "c1", "action": "config", "threshold": 0.5}

# Server Mode

The default mode starts a MessagePack IPC server that processes search
requests from stdin and writes responses to stdout. This design enables
integration with web backends and other applications through process
communication.

	srv := server.NewServer(st, engine, config, configPath)
	err := srv.Start()

The server handles request parsing, validation and response formatting, and
picks up config file edits while running.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging search
behavior. It reads queries from stdin and displays ranked results with
status and application-number columns.

	inputHandler := cli.NewInputHandler(engine, minLen, maxLen, limit, noFilter)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode.

# Search Engine

The core matching lives in the hangul and fuzzy packages and is pure; the
search package wires it to the store with filtering, ordering and paging.

	engine, err := search.NewEngine(st, search.Options{Threshold: 0.6})
	res, err := engine.Search(search.Params{Query: "ㅅㅌㅂㅅ"})

# Command Line Flags

The following flags control application behavior:

	-db string
	    Path to the bbolt database file (default from config)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of results per page (default from config)
	-qmin int
	    Minimum query length in runes
	-qmax int
	    Maximum query length in runes
	-no-filter
	    Disable input filtering for debugging
	-rebuild-config
	    Recreate the config file with defaults and exit
	-version
	    Show current version

The application automatically resolves database and config paths relative
to the executable location, supporting both development and production
deployments.
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

	"github.com/haneulsoft/markserve/internal/cli"
	"github.com/haneulsoft/markserve/internal/utils"
	"github.com/haneulsoft/markserve/pkg/config"
	"github.com/haneulsoft/markserve/pkg/search"
	"github.com/haneulsoft/markserve/pkg/server"
	"github.com/haneulsoft/markserve/pkg/store"
)

const (
	Version = "0.4.0-beta"
	AppName = "markserve"
	gh      = "https://github.com/haneulsoft/markserve"
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

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dbPath := flag.String("db", defaultConfig.Store.DatabasePath, "Path to the trademark database file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of results per page")
	minQuery := flag.Int("qmin", defaultConfig.CLI.DefaultMinLen, "Minimum query length in runes (1 < n <= qmax)")
	maxQuery := flag.Int("qmax", defaultConfig.CLI.DefaultMaxLen, "Maximum query length in runes")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.NoFilter, "Disable input filtering (DBG only) - passes raw queries through untouched")
	rebuildConfig := flag.Bool("rebuild-config", false, "Recreate the config file with defaults and exit")

	flag.Parse()

	if *showVersion {
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
		logger.Print("[ MarkServe ] Fuzzy Korean trademark search!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
		os.Exit(1)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	configPath, err := pathResolver.GetConfigPath("markserve-config.toml")
	if err != nil {
		log.Fatalf("Failed to determine config path: (%v)", err)
		os.Exit(1)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	if *rebuildConfig {
		if err := config.RebuildConfigFile(configPath); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
			os.Exit(1)
		}
		log.Printf("Recreated default config at %s", config.GetActiveConfigPath(configPath))
		os.Exit(0)
	}

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}

	requestedDB := *dbPath
	if requestedDB == "" {
		requestedDB = appConfig.Store.DatabasePath
	}
	resolvedDB, err := pathResolver.GetDatabasePath(requestedDB)
	if err != nil {
		log.Fatalf("Failed to resolve database path: (%v)", err)
		os.Exit(1)
	}
	log.Debugf("Using database at: %s", resolvedDB)

	st, err := store.Open(resolvedDB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
		log.Print("Did you forget to run markload first?")
		os.Exit(1)
	}
	defer st.Close()

	engine, err := search.NewEngine(st, search.Options{
		Threshold:    appConfig.Search.Threshold,
		RerankLimit:  appConfig.Search.RerankLimit,
		DefaultLimit: appConfig.Server.DefaultLimit,
		MaxLimit:     appConfig.Server.MaxLimit,
	})
	if err != nil {
		log.Fatalf("Failed to build search engine: %v", err)
		os.Exit(1)
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minQuery", *minQuery,
			"maxQuery", *maxQuery,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(engine, *minQuery, *maxQuery, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(st, engine, appConfig, configPath)

	showStartupInfo(resolvedDB, st, engine)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dbPath string, st *store.Store, engine *search.Engine) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	count, err := st.Count()
	if err != nil {
		count = 0
	}

	println("===========")
	println(" MarkServe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("database: ( %s )", dbPath)
	log.Infof("records: [ %s ]", utils.FormatWithCommas(count))
	log.Infof("indexed names: [ %s ]", utils.FormatWithCommas(engine.IndexedNames()))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
