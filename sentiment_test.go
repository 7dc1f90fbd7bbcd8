package argmine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentiment_Labels(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultSentimentConfig())
	analyzer.Lexicon().AddCustomWord("viable", 0.3, 0.8)
	analyzer.Lexicon().AddCustomWord("dudoso", -0.3, 0.8)

	tests := []struct {
		token string
		want  SentimentClass
	}{
		{"excelente", StrongPositive},
		{"Excelente", StrongPositive},
		{"terrible", StrongNegative},
		{"problema", Negative},
		{"viable", Positive},
		{"dudoso", Negative},
		{"el", Neutral},
		{"123", Neutral},
		{"¿", Neutral},
		{"mesa", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := analyzer.Sentiment(tt.token)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), got)
		})
	}
}

func TestSentiment_EmptyToken(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultSentimentConfig())

	_, err := analyzer.Sentiment("   ")

	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestScoreToken(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultSentimentConfig())

	score, err := analyzer.ScoreToken("terrible")
	require.NoError(t, err)

	assert.InDelta(t, -0.9, score.Polarity, 1e-9)
	assert.InDelta(t, 1.0, score.Intensity, 1e-9)
	assert.Equal(t, []string{"terrible"}, score.Negative)
	assert.Empty(t, score.Positive)
	assert.Len(t, score.Scores, 5)
	assert.Greater(t, score.Scores[StrongNegative], score.Scores[Positive])
}

func TestScoreToken_StopWordsConfigurable(t *testing.T) {
	cfg := DefaultSentimentConfig()
	cfg.SkipStopWords = false
	analyzer := NewSentimentAnalyzer(cfg)
	analyzer.Lexicon().AddCustomWord("el", 0.9, 1)

	got, err := analyzer.Sentiment("el")
	require.NoError(t, err)
	assert.Equal(t, string(StrongPositive), got)

	withStops := NewSentimentAnalyzer(DefaultSentimentConfig())
	withStops.Lexicon().AddCustomWord("el", 0.9, 1)
	got, err = withStops.Sentiment("el")
	require.NoError(t, err)
	assert.Equal(t, string(Neutral), got)
}

func TestSentiment_ContextFree(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultSentimentConfig())

	for _, token := range []string{"no", "nunca", "muy", "poco"} {
		got, err := analyzer.Sentiment(token)
		require.NoError(t, err)
		assert.Equal(t, string(Neutral), got, token)
	}
	// A token scores the same whatever precedes it in the sentence.
	e := NewExtractor(UsingSentimentScorer(analyzer))
	feats := e.ExtractAll([]Token{{Text: "no", Tag: "ADV"}, {Text: "excelente", Tag: "ADJ"}}, FeatureOptions{WindowSize: 1, IncludeSentiment: true})
	assert.Equal(t, string(StrongPositive), feats[1].Sentiment)
	assert.Equal(t, string(StrongPositive), feats[0].Next[0].Sentiment)
}

func TestExternalLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.json")
	data := `{
  "languages": {
    "spanish": {
      "positive": [{"word": "Sólido", "sentiment": 0.7, "confidence": 0.9}],
      "negative": [{"word": "falaz", "sentiment": -0.8, "confidence": 0.9}],
      "negations": ["ningunos"]
    }
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	analyzer, err := NewSentimentAnalyzerWithExternal(DefaultSentimentConfig(), path)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, analyzer.Lexicon().GetSentiment("sólido"), 1e-9)
	assert.InDelta(t, -0.8, analyzer.Lexicon().GetSentiment("FALAZ"), 1e-9)
	assert.Equal(t, LoadSentimentLexicon().GetLexiconSize()+2, analyzer.Lexicon().GetLexiconSize())
}

func TestExternalLexicon_Errors(t *testing.T) {
	_, err := NewSentimentAnalyzerWithExternal(DefaultSentimentConfig(), filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = NewSentimentAnalyzerWithExternal(DefaultSentimentConfig(), path)
	assert.Error(t, err)

	analyzer, err := NewSentimentAnalyzerWithExternal(DefaultSentimentConfig(), "")
	require.NoError(t, err)
	assert.NotNil(t, analyzer.Lexicon())
}

func TestClassifyPolarity(t *testing.T) {
	assert.Equal(t, Neutral, classifyPolarity(0.05, 0.9))
	assert.Equal(t, Positive, classifyPolarity(0.5, 0.75))
	assert.Equal(t, StrongPositive, classifyPolarity(0.6, 0.9))
	assert.Equal(t, Negative, classifyPolarity(-0.6, 0.5))
	assert.Equal(t, StrongNegative, classifyPolarity(-0.9, 1))
}
