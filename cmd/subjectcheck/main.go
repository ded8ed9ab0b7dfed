package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shruggr/subjecttrie/logging"
	"github.com/shruggr/subjecttrie/registry"
	"github.com/shruggr/subjecttrie/token"
	"github.com/shruggr/subjecttrie/trie"
)

func main() {
	defaults := trie.DefaultConfig()

	storageType := flag.String("storage", "badger", "Storage type: badger or sqlite")
	dataDir := flag.String("data-dir", "./data", "Data directory for BadgerDB")
	dbPath := flag.String("db-path", "./subscriptions.db", "SQLite database file")
	separator := flag.String("separator", string(defaults.Separator), "Segment separator the journal was written with")
	single := flag.String("single", defaults.SingleWildcard, "Single-segment wildcard")
	multi := flag.String("multi", defaults.MultiWildcard, "Multi-segment wildcard")
	rejectEmpty := flag.Bool("reject-empty", false, "Reject empty segments in patterns and subjects")
	flag.Usage = func() {
		fmt.Println("Usage: subjectcheck [flags] <subject>")
		fmt.Println("Example: subjectcheck -storage sqlite -db-path ./subscriptions.db orders.eu.created")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	subject := flag.Arg(0)

	logger := logging.New(os.Stderr, "warn")

	sep, err := token.ParseSeparator(*separator)
	if err != nil {
		log.Fatalf("Invalid separator: %v", err)
	}

	t, err := trie.New[string](&trie.Config{
		Separator:      sep,
		SingleWildcard: *single,
		MultiWildcard:  *multi,
		RejectEmpty:    *rejectEmpty,
	})
	if err != nil {
		log.Fatalf("Failed to create trie: %v", err)
	}

	// Markers in a subject are matched as plain text
	if seq, err := t.Parser().Parse(subject); err == nil && seq.HasWildcard() {
		log.Printf("Note: %s contains wildcard markers, which match literally in a subject", subject)
	}

	store, err := registry.OpenJournal(&registry.StorageConfig{
		Type:    *storageType,
		DataDir: *dataDir,
		DBPath:  *dbPath,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}

	reg := registry.New(trie.NewSync(t), store, logger)
	if err := check(reg, subject, os.Stdout); err != nil {
		reg.Close()
		log.Fatal(err)
	}
	reg.Close()
}

// check restores reg and writes the subscribers matching subject to w as
// indented JSON.
func check(reg *registry.Registry, subject string, w io.Writer) error {
	n, err := reg.Restore(context.Background())
	if err != nil {
		return fmt.Errorf("failed to restore subscriptions: %w", err)
	}
	log.Printf("Loaded %d subscriptions", n)

	ids, err := reg.Match(subject)
	if err != nil {
		return fmt.Errorf("invalid subject %q: %w", subject, err)
	}

	if len(ids) == 0 {
		log.Printf("✗ No subscribers match %s", subject)
		return nil
	}

	log.Printf("✓ %d subscribers match %s", len(ids), subject)
	out, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
