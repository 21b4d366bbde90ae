package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/patnr/gofzf/internal/contents"
	"github.com/patnr/gofzf/internal/preview"
)

// runHeadless is the re-invocation surface generated commands call:
// `headless --preview <entry>` renders a preview, `headless --source
// <name> [--opts <json>] [--query <q>]` drains a registered source to
// stdout.
func runHeadless(ctx context.Context, argv []string) error {
	fs := flag.NewFlagSet("headless", flag.ContinueOnError)
	source := fs.String("source", "", "registered source name")
	opts := fs.String("opts", "", "serialized source options")
	query := fs.String("query", "", "current query")
	previewEntry := fs.String("preview", "", "entry to preview")
	if err := fs.Parse(argv); err != nil {
		return err
	}

	if *previewEntry != "" {
		b := &preview.Builtin{}
		return b.Render(os.Stdout, *previewEntry)
	}

	if *source == "" {
		return errors.New("headless requires --source or --preview")
	}
	factory, ok := contents.LookupSource(*source)
	if !ok {
		return fmt.Errorf("unknown source %q", *source)
	}

	producer, err := factory(ctx, mergeQuery(*opts, *query))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return producer(func(entry string) bool {
		if _, err := w.WriteString(entry); err != nil {
			return false
		}
		return w.WriteByte('\n') == nil
	})
}

// mergeQuery folds the live query into the source options payload so
// query-aware sources see it without a second channel.
func mergeQuery(optsJSON, query string) string {
	if query == "" {
		return optsJSON
	}
	m := map[string]any{}
	if optsJSON != "" {
		if err := json.Unmarshal([]byte(optsJSON), &m); err != nil {
			return optsJSON
		}
	}
	m["query"] = query
	merged, err := json.Marshal(m)
	if err != nil {
		return optsJSON
	}
	return string(merged)
}
