package argmine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perroSentence() []Token {
	return []Token{
		{Text: "El", Tag: "DET"},
		{Text: "perro", Tag: "NOUN"},
		{Text: "corre", Tag: "VERB"},
	}
}

type countingScorer struct {
	calls atomic.Int32
	label string
	err   error
}

func (s *countingScorer) Sentiment(token string) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return s.label, nil
}

type stubLemmatizer struct {
	calls  atomic.Int32
	lemmas map[string]string
	err    error
}

func (l *stubLemmatizer) Lemmatize(token string) (*Analysis, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	if lemma, ok := l.lemmas[lower(token)]; ok {
		return &Analysis{Lemma: lemma}, nil
	}
	return nil, nil
}

var baseKeys = []string{
	"bias", "token.lower()", "token.upper()", "word[-3:]", "word[-2:]", "word[-1:]",
	"word[:2]", "word[:3]", "word.isupper()", "word.islower()", "word.istitle()",
	"word.isdigit()", "word.isalpha()", "word.isalnum()", "word.length",
	"word.has_hyphen", "word.has_apostrophe", "postag", "postag[:2]", "lemma",
}

func TestExtract_BaseFeatures(t *testing.T) {
	e := NewExtractor()
	sent := []Token{{Text: "Reino-Unido's", Tag: "PROPN"}}

	attrs := e.Extract(sent, 0, FeatureOptions{}).Attributes()

	for _, k := range baseKeys {
		assert.Contains(t, attrs, k)
	}
	assert.Equal(t, 1.0, attrs["bias"].Num)
	assert.Equal(t, "reino-unido's", attrs["token.lower()"].Str)
	assert.Equal(t, "REINO-UNIDO'S", attrs["token.upper()"].Str)
	assert.Equal(t, "o's", attrs["word[-3:]"].Str)
	assert.Equal(t, "'s", attrs["word[-2:]"].Str)
	assert.Equal(t, "s", attrs["word[-1:]"].Str)
	assert.Equal(t, "Re", attrs["word[:2]"].Str)
	assert.Equal(t, "Rei", attrs["word[:3]"].Str)
	assert.False(t, attrs["word.isupper()"].Bool)
	assert.False(t, attrs["word.islower()"].Bool)
	assert.False(t, attrs["word.istitle()"].Bool)
	assert.False(t, attrs["word.isalpha()"].Bool)
	assert.Equal(t, 13.0, attrs["word.length"].Num)
	assert.True(t, attrs["word.has_hyphen"].Bool)
	assert.True(t, attrs["word.has_apostrophe"].Bool)
	assert.Equal(t, "PROPN", attrs["postag"].Str)
	assert.Equal(t, "PR", attrs["postag[:2]"].Str)
	assert.Equal(t, "Reino-Unido's", attrs["lemma"].Str)
}

func TestExtract_ShortTagPrefix(t *testing.T) {
	e := NewExtractor()
	attrs := e.Extract([]Token{{Text: "x", Tag: "X"}}, 0, FeatureOptions{}).Attributes()

	assert.Equal(t, "X", attrs["postag[:2]"].Str)
}

func TestExtract_CountsRunesNotBytes(t *testing.T) {
	e := NewExtractor()
	attrs := e.Extract([]Token{{Text: "Conclusión", Tag: "NOUN"}}, 0, FeatureOptions{}).Attributes()

	assert.Equal(t, 10.0, attrs["word.length"].Num)
	assert.Equal(t, "ión", attrs["word[-3:]"].Str)
	assert.Equal(t, "n", attrs["word[-1:]"].Str)
	assert.True(t, attrs["word.istitle()"].Bool)
	assert.True(t, attrs["word.isalpha()"].Bool)
}

func TestExtract_MiddleWindowOne(t *testing.T) {
	e := NewExtractor()
	attrs := e.Extract(perroSentence(), 1, FeatureOptions{WindowSize: 1}).Attributes()

	assert.Equal(t, "NOUN", attrs["postag"].Str)
	assert.Equal(t, "el", attrs["-1:token.lower()"].Str)
	assert.Equal(t, "corre", attrs["+1:token.lower()"].Str)
	assert.Equal(t, "el_perro", attrs["bigrama_prev"].Str)
	assert.Equal(t, "perro_corre", attrs["bigrama_next"].Str)
	assert.NotContains(t, attrs, "trigrama_center")
	assert.NotContains(t, attrs, "BOS-1")
	assert.NotContains(t, attrs, "EOS-1")
	assert.NotContains(t, attrs, "sentiment")
	assert.NotContains(t, attrs, "-1:sentiment")
	assert.NotContains(t, attrs, "-1:lemma")
}

func TestExtract_FirstToken(t *testing.T) {
	e := NewExtractor()
	f := e.Extract(perroSentence(), 0, FeatureOptions{WindowSize: 1})
	attrs := f.Attributes()

	assert.Equal(t, BoolValue(true), attrs["BOS-1"])
	assert.Equal(t, "el_perro", attrs["bigrama_next"].Str)
	assert.NotContains(t, attrs, "bigrama_prev")
	for _, k := range f.Keys() {
		assert.NotRegexp(t, `^-1:`, k)
	}
}

func TestExtract_BoundaryMarkers(t *testing.T) {
	e := NewExtractor()
	sent := perroSentence()
	opts := FeatureOptions{WindowSize: 3}

	first := e.Extract(sent, 0, opts).Attributes()
	for v := 1; v <= 3; v++ {
		assert.Equal(t, BoolValue(true), first[fmt.Sprintf("BOS-%d", v)])
	}
	assert.Contains(t, first, "+2:token.lower()")
	assert.Equal(t, BoolValue(true), first["EOS-3"])

	last := e.Extract(sent, len(sent)-1, opts).Attributes()
	for v := 1; v <= 3; v++ {
		assert.Equal(t, BoolValue(true), last[fmt.Sprintf("EOS-%d", v)])
	}
	assert.Equal(t, "el", last["-2:token.lower()"].Str)
	assert.Equal(t, BoolValue(true), last["BOS-3"])
}

func TestExtract_Trigram(t *testing.T) {
	e := NewExtractor()
	sent := perroSentence()

	mid := e.Extract(sent, 1, FeatureOptions{WindowSize: 2}).Attributes()
	assert.Equal(t, "el_perro_corre", mid["trigrama_center"].Str)

	edge := e.Extract(sent, 0, FeatureOptions{WindowSize: 2}).Attributes()
	assert.NotContains(t, edge, "trigrama_center")
}

func TestExtract_WindowZero(t *testing.T) {
	e := NewExtractor()
	f := e.Extract(perroSentence(), 1, FeatureOptions{})

	assert.ElementsMatch(t, baseKeys, f.Keys())
}

func TestExtract_Sentiment(t *testing.T) {
	scorer := &countingScorer{label: "positive"}
	e := NewExtractor(UsingSentimentScorer(scorer))

	attrs := e.Extract(perroSentence(), 1, FeatureOptions{WindowSize: 1, IncludeSentiment: true}).Attributes()

	assert.Equal(t, "positive", attrs["sentiment"].Str)
	assert.Equal(t, "positive", attrs["-1:sentiment"].Str)
	assert.Equal(t, "positive", attrs["+1:sentiment"].Str)
}

func TestExtract_SentimentFailureIsNeutralAndCached(t *testing.T) {
	scorer := &countingScorer{err: errors.New("scorer down")}
	e := NewExtractor(UsingSentimentScorer(scorer))
	sent := []Token{{Text: "El", Tag: "DET"}, {Text: "perro", Tag: "NOUN"}, {Text: "el", Tag: "DET"}}

	feats := e.ExtractAll(sent, FeatureOptions{WindowSize: 1, IncludeSentiment: true})

	for i, f := range feats {
		assert.Equal(t, "neutral", f.Sentiment, "position %d", i)
	}
	assert.Equal(t, map[string]string{"el": "neutral", "perro": "neutral"}, e.SentimentCache().Snapshot())
	assert.Equal(t, int32(2), scorer.calls.Load())
}

func TestExtract_SentimentMemoizedAcrossSentences(t *testing.T) {
	scorer := &countingScorer{label: "negative"}
	e := NewExtractor(UsingSentimentScorer(scorer))
	opts := FeatureOptions{WindowSize: 3, IncludeSentiment: true}

	e.ExtractAll(perroSentence(), opts)
	e.ExtractAll([]Token{{Text: "PERRO", Tag: "NOUN"}, {Text: "corre", Tag: "VERB"}}, opts)

	assert.Equal(t, int32(3), scorer.calls.Load())
	assert.Equal(t, 3, e.SentimentCache().Len())
}

func TestExtract_NoScorerIsNeutral(t *testing.T) {
	e := NewExtractor()
	f := e.Extract(perroSentence(), 0, FeatureOptions{IncludeSentiment: true})

	assert.Equal(t, "neutral", f.Sentiment)
}

func TestExtract_Lemma(t *testing.T) {
	lem := &stubLemmatizer{lemmas: map[string]string{"corre": "correr", "el": "el"}}
	e := NewExtractor(UsingLemmatizer(lem))

	attrs := e.Extract(perroSentence(), 1, FeatureOptions{WindowSize: 1, Lemmatize: true}).Attributes()

	assert.Equal(t, "perro", attrs["lemma"].Str, "unknown form falls back to the token")
	assert.Equal(t, "el", attrs["-1:lemma"].Str)
	assert.Equal(t, "correr", attrs["+1:lemma"].Str)
}

func TestExtract_LemmaFallbackKeepsCasing(t *testing.T) {
	lem := &stubLemmatizer{}
	e := NewExtractor(UsingLemmatizer(lem))
	opts := FeatureOptions{Lemmatize: true}

	a := e.Extract([]Token{{Text: "Perro", Tag: "NOUN"}}, 0, opts)
	b := e.Extract([]Token{{Text: "perro", Tag: "NOUN"}}, 0, opts)

	assert.Equal(t, "Perro", a.Lemma)
	assert.Equal(t, "perro", b.Lemma)
	assert.Equal(t, int32(1), lem.calls.Load())
}

func TestExtract_LemmaErrorNotCached(t *testing.T) {
	lem := &stubLemmatizer{err: errors.New("lemmatizer down")}
	e := NewExtractor(UsingLemmatizer(lem))
	opts := FeatureOptions{Lemmatize: true}

	f := e.Extract([]Token{{Text: "Corre", Tag: "VERB"}}, 0, opts)
	e.Extract([]Token{{Text: "Corre", Tag: "VERB"}}, 0, opts)

	assert.Equal(t, "Corre", f.Lemma)
	assert.Equal(t, 0, e.LemmaCache().Len())
	assert.Equal(t, int32(2), lem.calls.Load())
}

func TestExtract_LemmaDisabledIsRawToken(t *testing.T) {
	lem := &stubLemmatizer{lemmas: map[string]string{"corre": "correr"}}
	e := NewExtractor(UsingLemmatizer(lem))

	feats := e.ExtractAll(perroSentence(), FeatureOptions{WindowSize: 2})

	for i, f := range feats {
		assert.Equal(t, StringValue(perroSentence()[i].Text), f.Attributes()["lemma"])
	}
	assert.Zero(t, lem.calls.Load())
}

func TestExtract_Idempotent(t *testing.T) {
	e := NewExtractor(
		UsingSentimentScorer(NewSentimentAnalyzer(DefaultSentimentConfig())),
		UsingLemmatizer(NewDictLemmatizer()),
	)
	sent := perroSentence()
	opts := DefaultFeatureOptions()

	first := e.ExtractAll(sent, opts)
	second := e.ExtractAll(sent, opts)
	assert.Equal(t, first, second)

	e.SentimentCache().Reset()
	e.LemmaCache().Reset()
	cold := e.ExtractAll(sent, opts)
	assert.Equal(t, first, cold)
}

func TestExtractAll_Order(t *testing.T) {
	e := NewExtractor()
	feats := e.ExtractAll(perroSentence(), FeatureOptions{WindowSize: 1})

	require.Len(t, feats, 3)
	assert.Equal(t, []string{"el", "perro", "corre"}, []string{
		feats[0].Token.Lower, feats[1].Token.Lower, feats[2].Token.Lower,
	})
}

func TestExtract_SharedCaches(t *testing.T) {
	sentiments := NewMemo()
	scorer := &countingScorer{label: "neutral"}
	a := NewExtractor(UsingSentimentScorer(scorer), WithSentimentCache(sentiments))
	b := NewExtractor(UsingSentimentScorer(scorer), WithSentimentCache(sentiments))
	opts := FeatureOptions{IncludeSentiment: true}

	a.ExtractAll(perroSentence(), opts)
	b.ExtractAll(perroSentence(), opts)

	assert.Equal(t, int32(3), scorer.calls.Load())
	assert.Same(t, a.SentimentCache(), b.SentimentCache())
}

func TestExtract_Concurrent(t *testing.T) {
	scorer := &countingScorer{label: "positive"}
	e := NewExtractor(UsingSentimentScorer(scorer), UsingLemmatizer(NewDictLemmatizer()))
	opts := DefaultFeatureOptions()
	want := e.ExtractAll(perroSentence(), opts)
	e.SentimentCache().Reset()
	scorer.calls.Store(0)

	var wg sync.WaitGroup
	results := make([][]FeatureMap, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.ExtractAll(perroSentence(), opts)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.LessOrEqual(t, scorer.calls.Load(), int32(3))
}
