package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/argmine/argmine"
)

// Options holds the parsed command line.
type Options struct {
	In        string
	Out       string
	Labels    string
	Model     string
	LemmaDict string
	Lexicon   string
	Features  argmine.FeatureOptions
	Progress  bool
}

func parseArgs(args []string, ui UI) (Options, error) {
	fs := flag.NewFlagSet("featurize", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := Options{Features: argmine.DefaultFeatureOptions()}
	fs.StringVar(&opts.In, "in", "", "Annotated corpus (JSON lines)")
	fs.StringVar(&opts.Out, "out", "", "Feature output (JSON lines); stdout when empty")
	fs.StringVar(&opts.Labels, "labels", "", "Label output (JSON lines)")
	fs.StringVar(&opts.Model, "model", "", "CRF model to evaluate on the corpus")
	fs.StringVar(&opts.LemmaDict, "lemma-dict", os.Getenv("MODEL_LEMMA_DICT_PATH"), "Lemma dictionary (form<TAB>lemma)")
	fs.StringVar(&opts.Lexicon, "lexicon", os.Getenv("MODEL_LEXICON_PATH"), "External sentiment lexicon (JSON)")
	fs.IntVar(&opts.Features.WindowSize, "window", opts.Features.WindowSize, "Context window radius")
	fs.BoolVar(&opts.Features.IncludeSentiment, "sentiment", opts.Features.IncludeSentiment, "Include sentiment features")
	fs.BoolVar(&opts.Features.Lemmatize, "lemma", opts.Features.Lemmatize, "Include lemma features")
	fs.BoolVar(&opts.Progress, "progress", true, "Show a progress bar when writing to a file")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s -in corpus.jsonl [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.In == "" {
		fs.SetOutput(ui.Err)
		err := errors.New("-in is required")
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}
	if opts.Features.WindowSize < 0 {
		err := fmt.Errorf("-window must be >= 0 (got %d)", opts.Features.WindowSize)
		fprintErr(ui.Err, err)
		return opts, err
	}

	return opts, nil
}
