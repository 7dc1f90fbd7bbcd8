// Command featurize turns an annotated corpus into CRF feature sequences.
//
// Usage:
//
//	featurize -in corpus.jsonl [-out features.jsonl] [-labels labels.jsonl] [-model crf.json]
//
// Each input line is a sentence: [["palabra","POS","LABEL"], ...]. Each output
// line holds the feature maps of one sentence; -labels writes the matching
// label sequences. With -model the corpus is also labeled and scored.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	opts, err := parseArgs(os.Args[1:], ui)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "featurize: %v\n", err)
}
