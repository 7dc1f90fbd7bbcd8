package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uiprogress"

	"github.com/argmine/argmine"
)

func run(opts Options, ui UI) error {
	corpus, err := readCorpus(opts.In)
	if err != nil {
		return err
	}

	extractor, err := newExtractor(opts)
	if err != nil {
		return err
	}

	out, err := create(opts.Out, "features", ui.Out)
	if err != nil {
		return err
	}
	defer out.Close()

	var labels *output
	if opts.Labels != "" {
		if labels, err = create(opts.Labels, "labels", nil); err != nil {
			return err
		}
		defer labels.Close()
	}

	var bar *uiprogress.Bar
	if opts.Progress && opts.Out != "" {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(corpus))
		bar.AppendCompleted()
		bar.PrependElapsed()
		defer uiprogress.Stop()
	}

	featEnc := json.NewEncoder(out)
	var labelEnc *json.Encoder
	if labels != nil {
		labelEnc = json.NewEncoder(labels)
	}

	for i, sent := range corpus {
		if err := featEnc.Encode(extractor.ExtractAll(sent, opts.Features)); err != nil {
			return fmt.Errorf("write features of sentence %d: %w", i, err)
		}
		if labelEnc != nil {
			if err := labelEnc.Encode(argmine.Labels(sent)); err != nil {
				return fmt.Errorf("write labels of sentence %d: %w", i, err)
			}
		}
		if bar != nil {
			bar.Incr()
		}
	}

	if err := out.Close(); err != nil {
		return err
	}
	if err := labels.Close(); err != nil {
		return err
	}

	if opts.Model != "" {
		return evaluate(opts, extractor, corpus, ui)
	}
	return nil
}

func evaluate(opts Options, extractor *argmine.Extractor, corpus []argmine.LabeledSentence, ui UI) error {
	model, err := argmine.SequenceModelFromDisk(opts.Model)
	if err != nil {
		return err
	}

	res := argmine.Evaluate(model, extractor, opts.Features, corpus)
	if res.Tokens == 0 {
		return errors.New("evaluate: corpus has no gold labels")
	}
	_, _ = fmt.Fprintf(ui.Err, "tokens: %d  accuracy: %.4f  macro-F1: %.4f\n", res.Tokens, res.Accuracy, res.MacroF1)
	for _, m := range res.Labels {
		_, _ = fmt.Fprintf(ui.Err, "  %-20s P=%.4f R=%.4f F1=%.4f n=%d\n", m.Label, m.Precision, m.Recall, m.F1Score, m.Support)
	}
	return nil
}

func readCorpus(path string) ([]argmine.LabeledSentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	corpus, err := argmine.ReadCorpus(f)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return corpus, nil
}

func newExtractor(opts Options) (*argmine.Extractor, error) {
	lemmatizer, err := argmine.NewDictLemmatizerFromFile(opts.LemmaDict)
	if err != nil {
		return nil, err
	}
	scorer, err := argmine.NewSentimentAnalyzerWithExternal(argmine.DefaultSentimentConfig(), opts.Lexicon)
	if err != nil {
		return nil, err
	}
	return argmine.NewExtractor(
		argmine.UsingSentimentScorer(scorer),
		argmine.UsingLemmatizer(lemmatizer),
	), nil
}

// create opens path for writing, or wraps fallback when path is empty.
// output is a buffered JSON lines sink backed by a file, or by fallback
// when no path is given.
type output struct {
	*bufio.Writer
	name   string
	file   *os.File
	closed bool
}

func create(path, name string, fallback io.Writer) (*output, error) {
	if path == "" {
		return &output{Writer: bufio.NewWriter(fallback), name: name}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return &output{Writer: bufio.NewWriter(f), name: name, file: f}, nil
}

// Close flushes the buffer and closes the file. Later calls and a nil
// output are no-ops.
func (o *output) Close() error {
	if o == nil || o.closed {
		return nil
	}
	o.closed = true

	if err := o.Flush(); err != nil {
		if o.file != nil {
			_ = o.file.Close()
		}
		return fmt.Errorf("flush %s: %w", o.name, err)
	}
	if o.file != nil {
		if err := o.file.Close(); err != nil {
			return fmt.Errorf("close %s: %w", o.name, err)
		}
	}
	return nil
}
