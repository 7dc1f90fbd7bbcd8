package argmine

import (
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/data"
)

// punktSegmenter splits text into sentences with a pre-trained Punkt model.
type punktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

var (
	punktOnce    sync.Once
	punktStorage *sentences.Storage
)

// spanishPunkt returns the shared Spanish Punkt parameters, or empty
// parameters when the bundled model cannot be loaded.
func spanishPunkt() *sentences.Storage {
	punktOnce.Do(func() {
		if b, err := data.Asset("data/spanish.json"); err == nil {
			if storage, err := sentences.LoadTraining(b); err == nil {
				punktStorage = storage
				return
			}
		}
		punktStorage = sentences.NewStorage()
	})
	return punktStorage
}

func newPunktSegmenter() *punktSegmenter {
	return &punktSegmenter{tokenizer: sentences.NewSentenceTokenizer(spanishPunkt())}
}

// segment returns the sentences of text with byte offsets into text.
func (p *punktSegmenter) segment(text string) []Sentence {
	var out []Sentence

	cursor := 0
	for _, s := range p.tokenizer.Tokenize(text) {
		sent := strings.TrimSpace(s.Text)
		if sent == "" {
			continue
		}
		idx := strings.Index(text[cursor:], sent)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		cursor = start + len(sent)
		out = append(out, Sentence{Text: sent, Start: start, End: cursor})
	}

	return out
}
