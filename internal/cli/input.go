// Package cli handles cmd line input and search output for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/haneulsoft/markserve/internal/utils"
	"github.com/haneulsoft/markserve/pkg/search"
)

// InputHandler reads queries from stdin and prints ranked results. It is
// the interactive counterpart of the IPC server, meant for testing filter
// and threshold behavior by hand.
type InputHandler struct {
	engine         *search.Engine
	minQueryLength int
	maxQueryLength int
	resultLimit    int
	noFilter       bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *search.Engine, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:         engine,
		minQueryLength: minLength,
		maxQueryLength: maxLength,
		resultLimit:    limit,
		noFilter:       noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed query to handleQuery() for processing.
// Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("MarkServe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a trademark name, initials (ㅅㅌㅂㅅ) or application number and press Enter (Ctrl+C to exit):")

	for {
		log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		h.handleQuery(query)
	}
}

// handleQuery runs a single search and prints the ranked page.
func (h *InputHandler) handleQuery(query string) {
	runeLen := len([]rune(query))
	if runeLen < h.minQueryLength {
		log.Errorf("Query too short: %s", query)
		return
	}
	if runeLen > h.maxQueryLength {
		log.Errorf("Query too long: %s", query)
		return
	}

	if !h.noFilter && !utils.IsValidQuery(query) {
		log.Infof("No results found for query: '%s'", query)
		return
	}

	start := time.Now()
	res, err := h.engine.Search(search.Params{Query: query, Limit: h.resultLimit})
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Search failed: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if res.Total == 0 {
		log.Warnf("No results found for query: '%s'", query)
		for _, sg := range h.engine.Suggest(query, 3) {
			log.Printf("  did you mean: %s (%.2f)", sg.Name, sg.Score)
		}
		return
	}

	log.Printf("Found %s results for query '%s':", utils.FormatWithCommas(res.Total), query)
	for i, tm := range res.Records {
		name := tm.DisplayName()
		clName := fmt.Sprintf("\033[38;5;75m%s\033[0m", name)
		log.Printf("%2d. %-40s %-14s %s", i+1, clName, tm.ApplicationNumber, tm.RegisterStatus)
	}
}
