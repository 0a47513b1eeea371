// Command denylist reads a deny-list payload and answers lookups, listings,
// stats and exports over it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/wiratR/batch-transaction-viewer/internal/denylist"
	"github.com/wiratR/batch-transaction-viewer/internal/denylist/source"
	"github.com/wiratR/batch-transaction-viewer/internal/platform/logger"
)

const defaultMaxBytes = 64 << 20

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	pan        string
	list       bool
	stats      bool
	exportCSV  string
	exportJSON string
	jsonStdout bool
	maxBytes   int64
	logLevel   string
	query      queryFlags
}

type queryFlags struct {
	text    string
	removed string
	reason  string
	sort    string
	dir     string
}

func (q queryFlags) params() (denylist.QueryParams, error) {
	removed, err := denylist.ParseRemovedState(q.removed)
	if err != nil {
		return denylist.QueryParams{}, err
	}
	key, err := denylist.ParseSortKey(q.sort)
	if err != nil {
		return denylist.QueryParams{}, err
	}
	dir, err := denylist.ParseDirection(q.dir)
	if err != nil {
		return denylist.QueryParams{}, err
	}
	return denylist.QueryParams{
		Criteria:  denylist.Criteria{Text: strings.TrimSpace(q.text), Removed: removed, Reason: strings.TrimSpace(q.reason)},
		Key:       key,
		Direction: dir,
	}, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("denylist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: denylist [flags] payload.json|payload.zip|-")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.pan, "pan", "", "PAN to check (exact match)")
	fs.BoolVar(&opts.list, "list", false, "print reasons and entries")
	fs.BoolVar(&opts.stats, "stats", false, "print summary stats")
	fs.StringVar(&opts.exportCSV, "export-csv", "", "export entries to CSV at `PATH`")
	fs.StringVar(&opts.exportJSON, "export-json", "", "export reasons and entries to JSON at `PATH` (- for stdout)")
	fs.BoolVar(&opts.jsonStdout, "json-stdout", false, "print the JSON export to stdout")
	fs.Int64Var(&opts.maxBytes, "max-bytes", defaultMaxBytes, "maximum payload size after decompression")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	fs.StringVar(&opts.query.text, "text", "", "keep entries whose PAN contains `TEXT` (case-insensitive)")
	fs.StringVar(&opts.query.removed, "removed", "", "filter by removed state: all, true or false")
	fs.StringVar(&opts.query.reason, "reason", "", "keep entries citing this reason label")
	fs.StringVar(&opts.query.sort, "sort", "", "sort key: pan, removed or reasons")
	fs.StringVar(&opts.query.dir, "dir", "", "sort direction: asc or desc")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	params, err := opts.query.params()
	if err != nil {
		fmt.Fprintln(stderr, "denylist:", err)
		return 2
	}

	log := logger.NewWithWriter(stderr, "local", opts.logLevel)
	result, err := load(fs.Arg(0), stdin, opts.maxBytes, log)
	if err != nil {
		fmt.Fprintln(stderr, "denylist:", err)
		return 1
	}
	view := denylist.Query(result.Entries, result.Reasons, params)

	if opts.jsonStdout || opts.exportJSON == "-" {
		if err := denylist.WriteJSON(stdout, result.Reasons, view.Entries); err != nil {
			fmt.Fprintln(stderr, "denylist:", err)
			return 1
		}
		return 0
	}

	if opts.pan != "" {
		printLookup(stdout, result.Entries, strings.TrimSpace(opts.pan))
	}
	if opts.stats {
		printStats(stdout, view, result.Reasons)
	}
	if opts.exportCSV != "" {
		if err := exportFile(opts.exportCSV, func(w io.Writer) error {
			return denylist.WriteCSV(w, view.Entries)
		}); err != nil {
			fmt.Fprintln(stderr, "denylist:", err)
			return 1
		}
		fmt.Fprintf(stdout, "[OK] exported CSV -> %s\n", opts.exportCSV)
	}
	if opts.exportJSON != "" {
		if err := exportFile(opts.exportJSON, func(w io.Writer) error {
			return denylist.WriteJSON(w, result.Reasons, view.Entries)
		}); err != nil {
			fmt.Fprintln(stderr, "denylist:", err)
			return 1
		}
		fmt.Fprintf(stdout, "[OK] exported JSON -> %s\n", opts.exportJSON)
	}
	if opts.list {
		printList(stdout, view, result.Reasons)
	}
	return 0
}

func load(name string, stdin io.Reader, limit int64, log *slog.Logger) (denylist.Result, error) {
	var (
		payload source.Payload
		err     error
	)
	if name == "-" {
		payload, err = source.Read(stdin, limit)
	} else {
		payload, err = source.ReadFile(name, limit)
	}
	if err != nil {
		return denylist.Result{}, err
	}
	log.Debug("payload unpacked",
		"format", payload.Format,
		"member", payload.Member,
		"bytes", len(payload.Data),
	)

	result, err := denylist.NormalizeJSON(payload.Data)
	if err != nil {
		return denylist.Result{}, err
	}
	if result.Shape == denylist.ShapeAbsent {
		log.Warn("payload has neither an entry list nor a PAN map", "format", payload.Format)
	}
	return result, nil
}

func printLookup(w io.Writer, entries []denylist.Entry, pan string) {
	e, ok := denylist.Lookup(entries, pan)
	if !ok {
		fmt.Fprintln(w, "[OK] Not in deny list.")
		return
	}
	fmt.Fprintln(w, "[DENIED]", e.PAN, e.ReasonIDs, e.ReasonLabels, "removed=", e.IsRemoved())
}

func printStats(w io.Writer, view denylist.View, catalog denylist.ReasonCatalog) {
	fmt.Fprintf(w, "Total entries: %s\n", humanize.Comma(int64(view.Stats.Count)))
	fmt.Fprintln(w, "Counts by reason id:")
	for _, rc := range denylist.CountByReason(view.Entries, catalog) {
		fmt.Fprintf(w, "  %3s  %-16s  %s\n", rc.ID, rc.Label, humanize.Comma(int64(rc.Count)))
	}
	fmt.Fprintf(w, "Removed=true: %s\n", humanize.Comma(int64(view.Stats.RemovedTrueCount)))
	fmt.Fprintf(w, "Removed=false: %s\n", humanize.Comma(int64(view.Stats.RemovedOtherCount())))
}

func printList(w io.Writer, view denylist.View, catalog denylist.ReasonCatalog) {
	fmt.Fprintf(w, "# Reasons (%d):\n", len(catalog))
	for _, id := range denylist.CatalogIDs(catalog) {
		fmt.Fprintf(w, "- %s: %s\n", id, catalog[id])
	}
	fmt.Fprintf(w, "\n# Entries (%d):\n", len(view.Entries))
	for _, e := range view.Entries {
		fmt.Fprintln(w, e.PAN, e.ReasonIDs, e.ReasonLabels, e.IsRemoved())
	}
}

func exportFile(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()
	return write(f)
}
