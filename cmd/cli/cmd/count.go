package cmd

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/set-challenge/internal/engine"
	"github.com/set-challenge/internal/statistics"
	"github.com/set-challenge/pkg/cards"
	apperrors "github.com/set-challenge/pkg/errors"
	"github.com/set-challenge/pkg/utils"
)

var (
	countDeckSize  int
	countAlgorithm string
	countInclude   string
	countExclude   string
	countWorkers   int
	countBatchSize int
	countInterval  int
)

// countCmd runs the search engine once and prints the result.
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the decks of a given size that contain no Set",
	RunE:  runCount,
}

func init() {
	countCmd.Flags().IntVarP(&countDeckSize, "deck-size", "k", 0, "Target deck size in [3, 81] (default from config)")
	countCmd.Flags().StringVarP(&countAlgorithm, "algorithm", "a", "", "Engine: basic or incremental (default from config)")
	countCmd.Flags().StringVar(&countInclude, "include", "", "Comma-separated card indexes every deck must contain")
	countCmd.Flags().StringVar(&countExclude, "exclude", "", "Comma-separated card indexes no deck may contain")
	countCmd.Flags().IntVar(&countWorkers, "workers", 0, "Parallel workers (default from config; 0 there means max(1, CPU count - 4))")
	countCmd.Flags().IntVar(&countBatchSize, "batch-size", 0, "Evaluation steps per worker batch (default from config)")
	countCmd.Flags().IntVar(&countInterval, "status-interval", -1, "Seconds between status lines, 0 disables (default from config)")

	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	// Config supplies whatever the flags leave unset.
	if countDeckSize == 0 {
		countDeckSize = appConfig.Search.DeckSize
	}
	if countAlgorithm == "" {
		countAlgorithm = appConfig.Search.Algorithm
	}
	if countWorkers == 0 {
		countWorkers = appConfig.Search.Workers
	}
	if countBatchSize == 0 {
		countBatchSize = appConfig.Search.BatchSize
	}
	if countInterval < 0 {
		countInterval = appConfig.Status.Interval
	}

	alg, err := engine.ParseAlgorithm(countAlgorithm)
	if err != nil {
		return err
	}
	include, err := parseCardList(countInclude)
	if err != nil {
		return err
	}
	exclude, err := parseCardList(countExclude)
	if err != nil {
		return err
	}

	e, err := engine.New(alg, engine.Request{
		DeckSize: countDeckSize,
		Include:  include,
		Exclude:  exclude,
	}, &engine.Config{
		Workers:   countWorkers,
		BatchSize: countBatchSize,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// First Ctrl-C requests cancellation, second exits the process.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn("cancellation requested, press Ctrl-C again to exit immediately")
		cancel()
		<-sigCh
		os.Exit(130)
	}()

	printer := message.NewPrinter(language.English)
	logger.Info("counting no-Set decks of size %d (%s engine)", countDeckSize, e.Name())

	stopStatus := startStatusReporter(printer, e.Tracker(), countInterval)
	timer := utils.NewPhaseTimer(nil)
	stopSearch := timer.Start("search")

	count, err := e.Count(ctx)

	stopSearch()
	stopStatus()

	if err != nil {
		if apperrors.IsCanceled(err) {
			logger.Warn("run canceled after %s; partial counts are discarded", timer.Duration("search").Round(time.Millisecond))
		}
		return err
	}

	printSummary(printer, e.Tracker(), countDeckSize, count)
	logger.Debug("phases: %s", timer.Summary())
	return nil
}

// startStatusReporter prints a periodic status line and returns a stop
// function.
func startStatusReporter(printer *message.Printer, tracker *statistics.Tracker, intervalSecs int) func() {
	if intervalSecs <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(time.Duration(intervalSecs) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s := tracker.Snapshot()
				printer.Printf("[%7.1fs] triples=%d (%.1fM/s) decks=%d no-set=%d\n",
					s.Elapsed.Seconds(), s.TriplesTested, s.TriplesPerSec/1e6, s.DecksAnalyzed, s.DecksNoSet)
			}
		}
	}()
	return func() {
		close(done)
		<-stopped
	}
}

// printSummary reports the final count, the per-deck-size breakdown and
// the longest Set-free deck encountered.
func printSummary(printer *message.Printer, tracker *statistics.Tracker, deckSize int, count int64) {
	s := tracker.Snapshot()
	printer.Printf("\nDone in %.1fs: %d triples tested (%.1fM/s), %d decks analyzed\n",
		s.Elapsed.Seconds(), s.TriplesTested, s.TriplesPerSec/1e6, s.DecksAnalyzed)
	printer.Printf("No-Set decks of size %d: %d\n", deckSize, count)

	printer.Printf("\nSet-free decks seen per size:\n")
	for size, n := range tracker.NoSetBySize() {
		if n > 0 {
			printer.Printf("  %2d cards: %d\n", size, n)
		}
	}

	if longest := tracker.Longest(); len(longest) > 0 {
		printer.Printf("\nLongest Set-free deck seen (%d cards):\n", len(longest))
		for _, c := range longest {
			printer.Printf("  %s\n", c)
		}
	}
}

// parseCardList turns "0,10,20" into the canonical cards at those
// indexes. An empty string means no cards.
func parseCardList(s string) ([]cards.Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	deck := make([]cards.Card, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, apperrors.Newf(apperrors.CodeInvalidArgument, "invalid card index %q", part)
		}
		c, err := cards.AtIndex(idx)
		if err != nil {
			return nil, err
		}
		deck = append(deck, c)
	}
	return deck, nil
}
