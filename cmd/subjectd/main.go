package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shruggr/subjecttrie/kvstore"
	"github.com/shruggr/subjecttrie/logging"
	"github.com/shruggr/subjecttrie/registry"
	"github.com/shruggr/subjecttrie/token"
	"github.com/shruggr/subjecttrie/trie"
)

func main() {
	defaults := trie.DefaultConfig()

	// Parse flags
	storageType := flag.String("storage", "memory", "Storage type: memory, badger or sqlite")
	dataDir := flag.String("data-dir", "./data", "Data directory for BadgerDB")
	dbPath := flag.String("db-path", "./subscriptions.db", "SQLite database file")
	cacheSize := flag.Int("cache-size", defaults.CacheSize, "Max cached lookups, 0 disables the cache")
	separator := flag.String("separator", string(defaults.Separator), "Segment separator (one character)")
	single := flag.String("single", defaults.SingleWildcard, "Single-segment wildcard")
	multi := flag.String("multi", defaults.MultiWildcard, "Multi-segment wildcard")
	rejectEmpty := flag.Bool("reject-empty", false, "Reject empty segments in patterns and subjects")
	gcInterval := flag.Duration("gc-interval", 10*time.Minute, "BadgerDB value log GC interval, 0 disables it")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New(os.Stderr, *logLevel)
	slog.SetDefault(logger)

	sep, err := token.ParseSeparator(*separator)
	if err != nil {
		log.Fatalf("Invalid separator: %v", err)
	}

	t, err := trie.New[string](&trie.Config{
		CacheSize:      *cacheSize,
		Separator:      sep,
		SingleWildcard: *single,
		MultiWildcard:  *multi,
		RejectEmpty:    *rejectEmpty,
	})
	if err != nil {
		log.Fatalf("Failed to create trie: %v", err)
	}

	logger.Info("Opening journal", "storage", *storageType)
	store, err := registry.OpenJournal(&registry.StorageConfig{
		Type:    *storageType,
		DataDir: *dataDir,
		DBPath:  *dbPath,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}

	reg := registry.New(trie.NewSync(t), store, logger)
	defer reg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := reg.Restore(ctx); err != nil {
		logger.Error("Failed to restore subscriptions", "error", err)
		return
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("Failed to read input", "error", err)
		}
	}()

	// Periodic value log GC, badger only
	var gcTick <-chan time.Time
	gc, hasGC := store.(kvstore.GarbageCollector)
	if *storageType == "badger" && hasGC && *gcInterval > 0 {
		gcTicker := time.NewTicker(*gcInterval)
		defer gcTicker.Stop()
		gcTick = gcTicker.C
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	logger.Info("Ready", "subscriptions", reg.Len())

	// Main command loop
	for {
		select {
		case <-sigCh:
			logger.Info("Shutting down...")
			return

		case <-gcTick:
			if err := gc.RunGC(0.5); err != nil {
				logger.Error("Value log GC failed", "error", err)
			} else {
				logger.Debug("Value log GC complete")
			}

		case line, ok := <-lines:
			if !ok {
				logger.Info("Input closed, shutting down")
				return
			}
			if resp := handle(ctx, reg, line); resp != "" {
				fmt.Fprintln(out, resp)
				out.Flush()
			}
		}
	}
}
