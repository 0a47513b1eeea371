// Command xmlinspect indexes an XML batch file and prints search hits, node
// details and validation findings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/wiratR/batch-transaction-viewer/internal/validation"
	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
)

const defaultMaxBytes = 16 << 20

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmlinspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: xmlinspect [flags] file.xml|-")
		fs.PrintDefaults()
	}
	var (
		search   = fs.String("search", "", "list nodes whose path contains `QUERY` (case-insensitive)")
		node     = fs.String("node", "", "print the details of the node at `PATH`")
		validate = fs.Bool("validate", false, "print validation findings")
		maxBytes = fs.Int64("max-bytes", defaultMaxBytes, "maximum document size")
	)
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
	nodeSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "node" {
			nodeSet = true
		}
	})

	name := fs.Arg(0)
	data, err := readInput(name, stdin, *maxBytes)
	if err != nil {
		fmt.Fprintln(stderr, "xmlinspect:", err)
		return 1
	}
	tree, err := xmltree.Load(string(data))
	if err != nil {
		fmt.Fprintln(stderr, "xmlinspect:", err)
		return 1
	}
	findings := validation.Validate(tree)

	fmt.Fprintf(stdout, "%s: %s nodes, %s, %s findings\n",
		name, humanize.Comma(int64(tree.Len())), humanize.IBytes(uint64(len(data))), humanize.Comma(int64(findings.Count())))

	if *search != "" {
		printSearch(stdout, tree, *search)
	}
	if nodeSet {
		if !printNode(stdout, tree, findings, *node) {
			fmt.Fprintf(stderr, "xmlinspect: no node at path %q\n", *node)
			return 1
		}
	}
	if *validate {
		printFindings(stdout, findings)
	}
	return 0
}

func readInput(name string, stdin io.Reader, limit int64) ([]byte, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %s", humanize.IBytes(uint64(limit)))
	}
	return data, nil
}

func printSearch(w io.Writer, tree *xmltree.IndexedTree, query string) {
	hits := tree.Search(query)
	fmt.Fprintf(w, "\n# Matches for %q (%d):\n", query, len(hits))
	for _, h := range hits {
		if h.Node.IsLeaf() {
			fmt.Fprintf(w, "%s = %s\n", h.Node.Label(), h.Node.TrimmedText())
			continue
		}
		fmt.Fprintf(w, "%s (%d children)\n", h.Node.Label(), len(h.Node.Children))
	}
}

func printNode(w io.Writer, tree *xmltree.IndexedTree, findings validation.Map, path string) bool {
	d, ok := tree.Describe(path)
	if !ok {
		return false
	}
	fmt.Fprintf(w, "\n# Node %s\n", strconv.Quote(d.Path))
	fmt.Fprintf(w, "name: %s\n", d.Name)
	for _, a := range d.Attrs {
		fmt.Fprintf(w, "@%s = %s\n", a.Name, a.Value)
	}
	for _, c := range d.Children {
		fmt.Fprintf(w, "  %s: %s\n", c.Path, c.Summary)
	}
	if d.Value != "" {
		fmt.Fprintf(w, "value: %s\n", d.Value)
	}
	if d.EMV != nil {
		fmt.Fprintf(w, "emv tag: %s\nemv hex: %s\nemv ascii: %s\n", d.EMV.Tag, d.EMV.Hex, d.EMV.ASCII)
	}
	for _, msg := range findings[d.Path] {
		fmt.Fprintf(w, "! %s\n", msg)
	}
	return true
}

func printFindings(w io.Writer, findings validation.Map) {
	fmt.Fprintf(w, "\n# Findings (%d):\n", findings.Count())
	for _, p := range findings.Paths() {
		for _, msg := range findings[p] {
			fmt.Fprintf(w, "%s: %s\n", p, msg)
		}
	}
}
