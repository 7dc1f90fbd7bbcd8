package argmine

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Tag   string // The token's part-of-speech tag (Universal Dependencies UPOS).
	Text  string // The token's actual content.
	Label string // The token's argument label, set by a SequenceModel or read from a corpus.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// Texts returns the text of every token in order.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

// Labels returns the label of every token in order.
func Labels(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Label
	}
	return out
}

// Language is an ISO 639-1 code selecting stop words and the external
// lexicon section.
type Language string

const Spanish Language = "es"

// SentimentClass represents sentiment categories
type SentimentClass string

const (
	StrongPositive SentimentClass = "strong_positive"
	Positive       SentimentClass = "positive"
	Neutral        SentimentClass = "neutral"
	Negative       SentimentClass = "negative"
	StrongNegative SentimentClass = "strong_negative"
)

// Universal POS tags produced by the Tagger.
const (
	TagAdj   = "ADJ"
	TagAdp   = "ADP"
	TagAdv   = "ADV"
	TagAux   = "AUX"
	TagCconj = "CCONJ"
	TagDet   = "DET"
	TagIntj  = "INTJ"
	TagNoun  = "NOUN"
	TagNum   = "NUM"
	TagPron  = "PRON"
	TagPropn = "PROPN"
	TagPunct = "PUNCT"
	TagSconj = "SCONJ"
	TagSym   = "SYM"
	TagVerb  = "VERB"
	TagX     = "X"
)
