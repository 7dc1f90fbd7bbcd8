package argmine

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// A LabeledSentence is one annotated sentence of an argument-mining corpus.
type LabeledSentence []Token

// ReadCorpus reads JSON lines of the form [["word","POS","LABEL"], ...], one
// sentence per line. Blank lines are skipped.
func ReadCorpus(r io.Reader) ([]LabeledSentence, error) {
	var corpus []LabeledSentence
	err := ScanCorpus(context.Background(), r, func(s LabeledSentence) error {
		corpus = append(corpus, s)
		return nil
	})
	return corpus, err
}

// ScanCorpus calls fn for every sentence read from r, stopping at the first
// error or when ctx is done.
func ScanCorpus(ctx context.Context, r io.Reader, fn func(LabeledSentence) error) error {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for scan.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		text := strings.TrimSpace(scan.Text())
		if text == "" {
			continue
		}
		sent, err := parseSentence(text)
		if err != nil {
			return fmt.Errorf("corpus line %d: %w", line, err)
		}
		if err := fn(sent); err != nil {
			return err
		}
	}
	return scan.Err()
}

func parseSentence(line string) (LabeledSentence, error) {
	var rows [][]string
	if err := json.Unmarshal([]byte(line), &rows); err != nil {
		return nil, err
	}
	sent := make(LabeledSentence, len(rows))
	for i, row := range rows {
		if len(row) < 2 || len(row) > 3 {
			return nil, fmt.Errorf("token %d: expected [word, pos] or [word, pos, label], got %d fields", i, len(row))
		}
		sent[i] = Token{Text: row[0], Tag: row[1]}
		if len(row) == 3 {
			sent[i].Label = row[2]
		}
	}
	return sent, nil
}

// LabelMetrics holds the scores of a single label.
type LabelMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1Score   float64
	Support   int
}

// ValidationResult contains validation metrics
type ValidationResult struct {
	Accuracy float64
	Tokens   int
	Labels   []LabelMetrics // Sorted by label.
	MacroF1  float64
}

// Evaluate labels every sentence of corpus with model and compares the
// predictions to the gold labels. Tokens without a gold label are not
// counted.
func Evaluate(model *SequenceModel, extractor *Extractor, opts FeatureOptions, corpus []LabeledSentence) ValidationResult {
	tp := map[string]int{}
	fp := map[string]int{}
	fn := map[string]int{}
	seen := map[string]bool{}

	correct, total := 0, 0
	for _, sent := range corpus {
		predicted := model.PredictSingle(extractor.ExtractAll(sent, opts))
		for i, tok := range sent {
			if tok.Label == "" {
				continue
			}
			gold, guess := tok.Label, predicted[i]
			seen[gold], seen[guess] = true, true
			total++
			if gold == guess {
				correct++
				tp[gold]++
				continue
			}
			fp[guess]++
			fn[gold]++
		}
	}

	var result ValidationResult
	result.Tokens = total
	if total == 0 {
		return result
	}
	result.Accuracy = float64(correct) / float64(total)

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, l := range labels {
		m := LabelMetrics{Label: l, Support: tp[l] + fn[l]}
		if d := tp[l] + fp[l]; d > 0 {
			m.Precision = float64(tp[l]) / float64(d)
		}
		if d := tp[l] + fn[l]; d > 0 {
			m.Recall = float64(tp[l]) / float64(d)
		}
		if m.Precision+m.Recall > 0 {
			m.F1Score = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		result.Labels = append(result.Labels, m)
		result.MacroF1 += m.F1Score
	}
	result.MacroF1 /= float64(len(labels))

	return result
}
