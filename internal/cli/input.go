// Package cli handles cmd line input for testing the suggestion engine in real-time
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkarven/listwise/internal/logger"
	"github.com/mkarven/listwise/internal/utils"
	"github.com/mkarven/listwise/pkg/suggest"
)

// InputHandler processes user input from stdin, treating each line as an
// in-progress item title and printing the ranked suggestions. It accepts
// flags to control the activation threshold, result limit and filtering.
type InputHandler struct {
	engine       suggest.Suggester
	log          *log.Logger
	minPrefixLen int
	suggestLimit int
	showScores   bool
	noFilter     bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine suggest.Suggester, minLength, limit int, showScores, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:       engine,
		log:          logger.Default("cli"),
		minPrefixLen: minLength,
		suggestLimit: limit,
		showScores:   showScores,
		noFilter:     noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	h.log.Print("ListWise CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type an item title and press Enter to see the suggestions (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		prefix, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		h.handleInput(prefix)
	}
}

// handleInput runs a single prefix through the engine and prints the
// ranked results with frequency and score columns.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++
	if h.requestCount%50 == 0 {
		h.log.Debug("Engine stats", "stats", h.engine.Stats())
	}

	if len([]rune(prefix)) < h.minPrefixLen {
		h.log.Warnf("Prefix too short: %q (suggestions activate at %d characters)", prefix, h.minPrefixLen)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidPrefix(prefix) {
			h.log.Infof("No results for prefix: %q", prefix)
			return
		}
	} else {
		h.log.Debug("Input filtering disabled")
	}

	start := time.Now()
	suggestions, err := h.engine.Query(context.Background(), prefix, "", h.suggestLimit)
	elapsed := time.Since(start)
	if err != nil {
		h.log.Errorf("Query failed for %q: %v", prefix, err)
		return
	}
	h.log.Debugf("Took [ %v ] for prefix %q", elapsed, prefix)

	if len(suggestions) == 0 {
		h.log.Warnf("No suggestions found for prefix: %q", prefix)
		return
	}

	h.log.Printf("Found %d suggestions for prefix %q:", len(suggestions), prefix)
	for i, s := range suggestions {
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clTitle := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Title)
		if h.showScores {
			h.log.Printf("%2d. %-40s (freq: %6s, score: %5.1f, recency: %5.1f)", i+1, clTitle, fmtFreq, s.Score, s.RecencyScore)
			continue
		}
		h.log.Printf("%2d. %-40s (freq: %6s)", i+1, clTitle, fmtFreq)
	}
}
