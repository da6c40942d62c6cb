/*
Package main implements markload, the bulk import tool for MarkServe.

It reads a KIPRIS-style JSON export of trademark records and writes them
into the bbolt database the search server reads from. Existing records with
the same application number are overwritten, so re-running an import is
safe.

Usage:

	markload -json trademarks.json -db marks.db
*/
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/haneulsoft/markserve/internal/utils"
	"github.com/haneulsoft/markserve/pkg/store"
)

func main() {
	jsonPath := flag.String("json", "", "Path to the JSON export file (required)")
	dbPath := flag.String("db", "marks.db", "Path to the bbolt database file to write")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	if *jsonPath == "" {
		log.Error("missing -json flag")
		flag.Usage()
		os.Exit(1)
	}
	if !utils.FileExists(*jsonPath) {
		log.Fatalf("JSON file not found: %s", *jsonPath)
		os.Exit(1)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", *dbPath, err)
		os.Exit(1)
	}
	defer st.Close()

	stats, err := st.ImportJSON(*jsonPath)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
		os.Exit(1)
	}

	log.Infof("Imported %s records (%s skipped) into %s in %v",
		utils.FormatWithCommas(stats.Loaded), utils.FormatWithCommas(stats.Skipped),
		*dbPath, stats.Elapsed)
}
