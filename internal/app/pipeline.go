package app

import (
	"context"
	"fmt"

	"github.com/argmine/argmine"
	"github.com/argmine/argmine/internal/config"
)

// Pipeline runs segmentation, tagging, feature extraction and CRF labeling
// for the HTTP handlers.
type Pipeline struct {
	model     *argmine.SequenceModel
	extractor *argmine.Extractor
	tagger    *argmine.Tagger
	features  argmine.FeatureOptions
}

// NewPipeline builds a Pipeline from already loaded components.
func NewPipeline(model *argmine.SequenceModel, extractor *argmine.Extractor, tagger *argmine.Tagger, features argmine.FeatureOptions) *Pipeline {
	return &Pipeline{model: model, extractor: extractor, tagger: tagger, features: features}
}

// LoadPipeline loads the model, lemma dictionary and sentiment lexicon named
// in cfg.
func LoadPipeline(cfg config.Config) (*Pipeline, error) {
	model, err := argmine.SequenceModelFromDisk(cfg.Model.CRFPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	lemmatizer, err := argmine.NewDictLemmatizerFromFile(cfg.Model.LemmaDictPath)
	if err != nil {
		return nil, fmt.Errorf("load lemmas: %w", err)
	}

	scorer, err := argmine.NewSentimentAnalyzerWithExternal(argmine.DefaultSentimentConfig(), cfg.Model.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	extractor := argmine.NewExtractor(
		argmine.UsingSentimentScorer(scorer),
		argmine.UsingLemmatizer(lemmatizer),
	)

	return NewPipeline(model, extractor, argmine.NewTagger(), FeatureOptions(cfg.Features)), nil
}

// FeatureOptions converts the features config section.
func FeatureOptions(cfg config.FeaturesConfig) argmine.FeatureOptions {
	return argmine.FeatureOptions{
		WindowSize:       cfg.WindowSize,
		IncludeSentiment: cfg.IncludeSentiment,
		Lemmatize:        cfg.Lemmatize,
	}
}

// Predict returns the tagged and labeled tokens of text.
func (p *Pipeline) Predict(ctx context.Context, text string) ([]argmine.Token, error) {
	doc, err := argmine.NewDocument(text,
		argmine.WithContext(ctx),
		argmine.UsingTagger(p.tagger),
		argmine.UsingExtractor(p.extractor),
		argmine.UsingModel(p.model),
		argmine.WithFeatures(p.features),
	)
	if err != nil {
		return nil, err
	}
	return doc.Tokens(), nil
}

// ModelName returns the name stored in the model file.
func (p *Pipeline) ModelName() string {
	return p.model.Name
}

// Labels returns the model's label set.
func (p *Pipeline) Labels() []string {
	return p.model.Labels()
}

// CacheSizes reports how many sentiment and lemma entries are memoized.
func (p *Pipeline) CacheSizes() (sentiments, lemmas int) {
	return p.extractor.SentimentCache().Len(), p.extractor.LemmaCache().Len()
}
