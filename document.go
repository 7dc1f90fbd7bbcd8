package argmine

import (
	"context"
	"strings"
	"sync"
	"time"
)

// A PartOfSpeechTagger sets the Tag of every token in a sequence.
type PartOfSpeechTagger interface {
	Tag(tokens []Token) []Token
}

// A DocOpt represents a setting that changes the document creation process.
//
// For example, it might label the tokens with a trained model:
//
//	doc, err := argmine.NewDocument("...", argmine.UsingModel(model))
type DocOpt func(doc *Document, opts *DocOpts)

// DocOpts controls the Document creation process:
type DocOpts struct {
	Segment          bool                   // If true, include segmentation
	Tag              bool                   // If true, include POS tagging
	Label            bool                   // If true, label tokens with the model
	Tokenizer        Tokenizer              // Tokenizer to use
	Tagger           PartOfSpeechTagger     // Tagger to use
	Extractor        *Extractor             // Feature extractor to use
	Features         FeatureOptions         // Feature groups to extract
	Context          context.Context        // Context for cancellation and timeouts
	Timeout          time.Duration          // Processing timeout
	ProgressCallback func(progress float64) // Progress reporting callback
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(include Tokenizer) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Tokenizer = include
	}
}

// UsingTagger specifies the part-of-speech tagger to use.
func UsingTagger(tagger PartOfSpeechTagger) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Tagger = tagger
	}
}

// UsingExtractor specifies the feature extractor, and with it the shared
// sentiment and lemma caches.
func UsingExtractor(e *Extractor) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Extractor = e
	}
}

// UsingModel sets the sequence model and enables labeling.
func UsingModel(model *SequenceModel) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		doc.Model = model
		opts.Label = model != nil
	}
}

// WithFeatures sets the feature groups to extract.
func WithFeatures(f FeatureOptions) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Features = f
	}
}

// WithTagging can enable (the default) or disable POS tagging.
func WithTagging(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Tag = include
	}
}

// WithSegmentation can enable (the default) or disable sentence segmentation.
func WithSegmentation(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Segment = include
	}
}

// WithLabeling can enable or disable sequence labeling.
func WithLabeling(include bool) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Label = include
	}
}

// WithContext sets the context for document processing
func WithContext(ctx context.Context) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Context = ctx
	}
}

// WithTimeout sets a timeout for document processing
func WithTimeout(timeout time.Duration) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.Timeout = timeout
	}
}

// WithProgressCallback sets a progress reporting callback
func WithProgressCallback(callback func(float64)) DocOpt {
	return func(doc *Document, opts *DocOpts) {
		opts.ProgressCallback = callback
	}
}

// DocumentMetadata describes how a Document was processed.
type DocumentMetadata struct {
	ProcessedAt      time.Time
	ProcessingTimeMs int64
	SentenceCount    int
	TokenCount       int
}

// A Document represents a parsed and labeled body of text.
type Document struct {
	Model    *SequenceModel
	Text     string
	Metadata DocumentMetadata

	sentences   []Sentence
	tokens      []Token
	features    []FeatureMap
	predictions []string
}

// Tokens returns `doc`'s tokens.
func (doc *Document) Tokens() []Token {
	tokens := make([]Token, len(doc.tokens))
	copy(tokens, doc.tokens)
	return tokens
}

// Sentences returns `doc`'s sentences.
func (doc *Document) Sentences() []Sentence {
	return doc.sentences
}

// Features returns the feature map of every token.
func (doc *Document) Features() []FeatureMap {
	return doc.features
}

// Predictions returns the label of every token, or nil when labeling was
// disabled.
func (doc *Document) Predictions() []string {
	return doc.predictions
}

var (
	defaultExtractorOnce sync.Once
	defaultExtractor     *Extractor
	defaultTaggerOnce    sync.Once
	defaultTagger        *Tagger
)

// DefaultExtractor returns the process-wide Extractor backed by the built-in
// Spanish sentiment lexicon and lemma table.
func DefaultExtractor() *Extractor {
	defaultExtractorOnce.Do(func() {
		defaultExtractor = NewExtractor(
			UsingSentimentScorer(NewSentimentAnalyzer(DefaultSentimentConfig())),
			UsingLemmatizer(NewDictLemmatizer()),
		)
	})
	return defaultExtractor
}

// DefaultTagger returns the process-wide Spanish Tagger.
func DefaultTagger() *Tagger {
	defaultTaggerOnce.Do(func() {
		defaultTagger = NewTagger()
	})
	return defaultTagger
}

func defaultOpts() DocOpts {
	return DocOpts{
		Segment:  true,
		Tag:      true,
		Features: DefaultFeatureOptions(),
		Context:  context.Background(),
		Timeout:  30 * time.Second,
	}
}

// NewDocument creates a Document according to the user-specified options.
//
// The words of all sentences are flattened into a single sequence before
// feature extraction and labeling.
func NewDocument(text string, opts ...DocOpt) (*Document, error) {
	startTime := time.Now()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	doc := Document{
		Text:     text,
		Metadata: DocumentMetadata{ProcessedAt: startTime},
	}

	base := defaultOpts()
	for _, applyOpt := range opts {
		applyOpt(&doc, &base)
	}
	if base.Tokenizer == nil {
		base.Tokenizer = NewIterTokenizer()
	}
	if base.Tagger == nil {
		base.Tagger = DefaultTagger()
	}
	if base.Extractor == nil {
		base.Extractor = DefaultExtractor()
	}
	if base.Label && doc.Model == nil {
		return nil, ErrNoModel
	}

	ctx := base.Context
	if base.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, base.Timeout)
		defer cancel()
	}

	reportProgress := func(p float64) {
		if base.ProgressCallback != nil {
			base.ProgressCallback(p)
		}
	}

	// Segmentation
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if base.Segment {
		doc.sentences = newPunktSegmenter().segment(text)
	}
	if len(doc.sentences) == 0 {
		doc.sentences = []Sentence{{Text: text, Start: 0, End: len(text)}}
	}
	doc.Metadata.SentenceCount = len(doc.sentences)
	reportProgress(0.2)

	// Tokenization
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, sent := range doc.sentences {
		for _, tok := range base.Tokenizer.Tokenize(sent.Text) {
			tok.Start += sent.Start
			tok.End += sent.Start
			doc.tokens = append(doc.tokens, tok)
		}
	}
	doc.Metadata.TokenCount = len(doc.tokens)
	reportProgress(0.4)

	// POS tagging
	if base.Tag {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.tokens = base.Tagger.Tag(doc.tokens)
	}
	reportProgress(0.6)

	// Feature extraction
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc.features = base.Extractor.ExtractAll(doc.tokens, base.Features)
	reportProgress(0.8)

	// Labeling
	if base.Label {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.predictions = doc.Model.PredictSingle(doc.features)
		for i := range doc.tokens {
			doc.tokens[i].Label = doc.predictions[i]
		}
	}
	reportProgress(1.0)

	doc.Metadata.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	return &doc, nil
}
