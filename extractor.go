package argmine

import "strings"

// fallbackSentiment is used whenever the sentiment scorer fails.
const fallbackSentiment = string(Neutral)

// A SentimentScorer assigns a sentiment label to a single token.
type SentimentScorer interface {
	Sentiment(token string) (string, error)
}

// An Analysis is the first morphological analysis of a token.
type Analysis struct {
	Lemma string
}

// A Lemmatizer returns the first analysis of a token, or nil when the token
// has none.
type Lemmatizer interface {
	Lemmatize(token string) (*Analysis, error)
}

// An ExtractorOpt represents a setting that changes how an Extractor is built.
type ExtractorOpt func(*Extractor)

// UsingSentimentScorer sets the scorer behind the "sentiment" features.
func UsingSentimentScorer(s SentimentScorer) ExtractorOpt {
	return func(e *Extractor) {
		e.scorer = s
	}
}

// UsingLemmatizer sets the lemmatizer behind the "lemma" features.
func UsingLemmatizer(l Lemmatizer) ExtractorOpt {
	return func(e *Extractor) {
		e.lemmatizer = l
	}
}

// WithSentimentCache shares an existing sentiment cache.
func WithSentimentCache(m *Memo) ExtractorOpt {
	return func(e *Extractor) {
		e.sentiments = m
	}
}

// WithLemmaCache shares an existing lemma cache.
func WithLemmaCache(m *Memo) ExtractorOpt {
	return func(e *Extractor) {
		e.lemmas = m
	}
}

// An Extractor turns tagged sentences into per-token feature maps.
//
// Sentiment labels and lemmas are memoized by lowercased token text for the
// lifetime of the Extractor, across sentences. An Extractor is safe for
// concurrent use.
type Extractor struct {
	scorer     SentimentScorer
	lemmatizer Lemmatizer
	sentiments *Memo
	lemmas     *Memo
}

// NewExtractor creates an Extractor. Without a scorer every sentiment is
// "neutral"; without a lemmatizer every lemma is the token itself.
func NewExtractor(opts ...ExtractorOpt) *Extractor {
	e := &Extractor{}
	for _, applyOpt := range opts {
		applyOpt(e)
	}
	if e.sentiments == nil {
		e.sentiments = NewMemo()
	}
	if e.lemmas == nil {
		e.lemmas = NewMemo()
	}
	return e
}

// SentimentCache returns the sentiment memo.
func (e *Extractor) SentimentCache() *Memo {
	return e.sentiments
}

// LemmaCache returns the lemma memo.
func (e *Extractor) LemmaCache() *Memo {
	return e.lemmas
}

// ExtractAll returns the feature map of every position of sentence, in order.
func (e *Extractor) ExtractAll(sentence []Token, opts FeatureOptions) []FeatureMap {
	feats := make([]FeatureMap, len(sentence))
	for i := range sentence {
		feats[i] = e.Extract(sentence, i, opts)
	}
	return feats
}

// Extract returns the features of sentence[index]. The index must be within
// the sentence.
func (e *Extractor) Extract(sentence []Token, index int, opts FeatureOptions) FeatureMap {
	token := sentence[index].Text
	tag := sentence[index].Tag

	f := FeatureMap{
		Options: opts,
		Bias:    1.0,
		Token: TokenFeatures{
			Lower:         lower(token),
			Upper:         upper(token),
			Suffix3:       lastRunes(token, 3),
			Suffix2:       lastRunes(token, 2),
			Suffix1:       lastRunes(token, 1),
			Prefix2:       firstRunes(token, 2),
			Prefix3:       firstRunes(token, 3),
			IsUpper:       isUpper(token),
			IsLower:       isLower(token),
			IsTitle:       isTitle(token),
			IsDigit:       isDigit(token),
			IsAlpha:       isAlpha(token),
			IsAlnum:       isAlnum(token),
			Length:        runeLen(token),
			HasHyphen:     strings.Contains(token, "-"),
			HasApostrophe: strings.Contains(token, "'"),
			PosTag:        tag,
			PosPrefix:     firstRunes(tag, 2),
		},
		Lemma: token,
	}

	if opts.IncludeSentiment {
		f.Sentiment = e.sentiment(token)
	}
	if opts.Lemmatize {
		f.Lemma = e.lemma(token)
	}

	if opts.WindowSize > 0 {
		f.Prev = make([]*NeighborFeatures, opts.WindowSize)
		f.Next = make([]*NeighborFeatures, opts.WindowSize)
	}
	for v := 1; v <= opts.WindowSize; v++ {
		if index-v >= 0 {
			f.Prev[v-1] = e.neighbor(sentence[index-v], opts)
		}
		if index+v < len(sentence) {
			f.Next[v-1] = e.neighbor(sentence[index+v], opts)
		}
	}

	if opts.WindowSize >= 1 {
		if index > 0 {
			f.BigramPrev = lower(sentence[index-1].Text) + "_" + f.Token.Lower
		}
		if index < len(sentence)-1 {
			f.BigramNext = f.Token.Lower + "_" + lower(sentence[index+1].Text)
		}
	}
	if opts.WindowSize >= 2 && index > 0 && index < len(sentence)-1 {
		f.TrigramCenter = lower(sentence[index-1].Text) + "_" + f.Token.Lower + "_" + lower(sentence[index+1].Text)
	}

	return f
}

func (e *Extractor) neighbor(tok Token, opts FeatureOptions) *NeighborFeatures {
	n := &NeighborFeatures{
		Lower:     lower(tok.Text),
		Suffix3:   lastRunes(tok.Text, 3),
		Suffix2:   lastRunes(tok.Text, 2),
		IsUpper:   isUpper(tok.Text),
		IsLower:   isLower(tok.Text),
		IsTitle:   isTitle(tok.Text),
		IsDigit:   isDigit(tok.Text),
		Length:    runeLen(tok.Text),
		PosTag:    tok.Tag,
		PosPrefix: firstRunes(tok.Tag, 2),
	}
	if opts.IncludeSentiment {
		n.Sentiment = e.sentiment(tok.Text)
	}
	if opts.Lemmatize {
		n.Lemma = e.lemma(tok.Text)
	}
	return n
}

// sentiment looks token up in the sentiment memo. Scorer failures are stored
// as the neutral label.
func (e *Extractor) sentiment(token string) string {
	return e.sentiments.Resolve(lower(token), func() (string, bool) {
		if e.scorer == nil {
			return fallbackSentiment, true
		}
		label, err := e.scorer.Sentiment(token)
		if err != nil {
			return fallbackSentiment, true
		}
		return label, true
	})
}

// lemma looks token up in the lemma memo. A missing analysis yields the token
// itself; a failed lookup yields the token and is not stored.
//
// Missing analyses are stored as "" so that every casing of the token gets
// its own text back.
func (e *Extractor) lemma(token string) string {
	lemma := e.lemmas.Resolve(lower(token), func() (string, bool) {
		if e.lemmatizer == nil {
			return "", true
		}
		analysis, err := e.lemmatizer.Lemmatize(token)
		if err != nil {
			return "", false
		}
		if analysis == nil {
			return "", true
		}
		return analysis.Lemma, true
	})
	if lemma == "" {
		return token
	}
	return lemma
}
