package argmine

import (
	"math"
	"strings"

	"github.com/bbalet/stopwords"
)

// SentimentScore is the outcome of scoring a token.
type SentimentScore struct {
	Polarity  float64 // -1 (negative) to 1 (positive)
	Intensity float64 // 0 to 1
	Dominant  SentimentClass
	Scores    map[SentimentClass]float64
	Positive  []string
	Negative  []string
}

// SentimentAnalyzer performs lexicon-based sentiment analysis
type SentimentAnalyzer struct {
	lexicon *SentimentLexicon
	config  SentimentConfig
}

// SentimentConfig configures sentiment analysis
type SentimentConfig struct {
	Language      Language // Stop word list and external lexicon section
	SkipStopWords bool     // Score stop words as neutral
}

// DefaultSentimentConfig returns standard configuration
func DefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{
		Language:      Spanish,
		SkipStopWords: true,
	}
}

// NewSentimentAnalyzer creates a sentiment analyzer
func NewSentimentAnalyzer(config SentimentConfig) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		lexicon: LoadSentimentLexicon(),
		config:  config,
	}
}

// NewSentimentAnalyzerWithExternal creates a sentiment analyzer with external lexicon support
func NewSentimentAnalyzerWithExternal(config SentimentConfig, externalLexiconPath string) (*SentimentAnalyzer, error) {
	lexicon, err := LoadSentimentLexiconWithExternal(config.Language, externalLexiconPath)
	if err != nil {
		return nil, err
	}

	return &SentimentAnalyzer{
		lexicon: lexicon,
		config:  config,
	}, nil
}

// Lexicon returns the analyzer's word list.
func (sa *SentimentAnalyzer) Lexicon() *SentimentLexicon {
	return sa.lexicon
}

// Sentiment returns the sentiment class of a single token.
func (sa *SentimentAnalyzer) Sentiment(token string) (string, error) {
	score, err := sa.ScoreToken(token)
	if err != nil {
		return "", err
	}
	return string(score.Dominant), nil
}

// ScoreToken scores a single token without context.
func (sa *SentimentAnalyzer) ScoreToken(token string) (SentimentScore, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SentimentScore{}, ErrEmptyToken
	}
	if !hasLetter(token) || sa.isStopWord(token) {
		return newScore(0, 0), nil
	}

	polarity := sa.lexicon.GetSentiment(token)
	score := newScore(polarity, math.Min(1.0, math.Abs(polarity)*1.5))
	switch {
	case polarity > 0:
		score.Positive = []string{token}
	case polarity < 0:
		score.Negative = []string{token}
	}
	return score, nil
}

func (sa *SentimentAnalyzer) isStopWord(word string) bool {
	if !sa.config.SkipStopWords {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, string(sa.config.Language), false)) == ""
}

func newScore(polarity, intensity float64) SentimentScore {
	score := SentimentScore{
		Polarity:  polarity,
		Intensity: intensity,
		Dominant:  classifyPolarity(polarity, intensity),
		Scores:    make(map[SentimentClass]float64, 5),
	}
	for _, class := range []SentimentClass{StrongPositive, Positive, Neutral, Negative, StrongNegative} {
		score.Scores[class] = calculateClassProb(polarity, intensity, class)
	}
	return score
}

// classifyPolarity determines the sentiment class from polarity and intensity
func classifyPolarity(polarity, intensity float64) SentimentClass {
	if math.Abs(polarity) < 0.1 {
		return Neutral
	}

	if polarity > 0 {
		if intensity > 0.6 && polarity > 0.5 {
			return StrongPositive
		}
		return Positive
	}

	if intensity > 0.6 && polarity < -0.5 {
		return StrongNegative
	}
	return Negative
}

// calculateClassProb calculates probability for a sentiment class
func calculateClassProb(polarity, intensity float64, class SentimentClass) float64 {
	var center, spread float64

	switch class {
	case StrongPositive:
		center, spread = 0.8, 0.2
	case Positive:
		center, spread = 0.4, 0.3
	case Neutral:
		center, spread = 0.0, 0.2
	case Negative:
		center, spread = -0.4, 0.3
	case StrongNegative:
		center, spread = -0.8, 0.2
	default:
		return 0
	}

	distance := math.Abs(polarity - center)
	prob := math.Exp(-distance * distance / (2 * spread * spread))

	if class == StrongPositive || class == StrongNegative {
		prob *= intensity
	} else if class == Neutral {
		prob *= (1 - intensity)
	}

	return math.Min(1.0, math.Max(0.0, prob))
}
