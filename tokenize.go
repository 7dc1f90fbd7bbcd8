package argmine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenTester reports whether a token must be kept whole.
type TokenTester func(string) bool

// A Tokenizer splits text into word and punctuation tokens.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
}

// TokenizerOptFunc configures an iterTokenizer.
type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// UsingSpecialRE uses the provided regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// UsingSanitizer uses the provided replacer on token text.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.sanitizer = x
	}
}

// UsingSuffixes uses the provided suffixes. Longer entries must come first.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// UsingPrefixes uses the provided prefixes.
func UsingPrefixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.prefixes = x
	}
}

// UsingEmoticons uses the provided map of emoticons.
func UsingEmoticons(x map[string]int) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.emoticons = x
	}
}

// NewIterTokenizer creates a tokenizer tuned for Spanish text.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := &iterTokenizer{
		emoticons:      emoticons,
		isUnsplittable: func(_ string) bool { return false },
		prefixes:       prefixes,
		sanitizer:      sanitizer,
		specialRE:      internalRE,
		suffixes:       suffixes,
	}

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	return tok
}

func (t *iterTokenizer) emit(s string, start int, toks []Token) []Token {
	if strings.TrimSpace(s) == "" {
		return toks
	}
	return append(toks, Token{
		Text:  t.sanitizer.Replace(s),
		Start: start,
		End:   start + len(s),
	})
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || abbreviations[lower(token)] || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

// doSplit peels prefixes and suffixes off a whitespace-delimited span.
func (t *iterTokenizer) doSplit(span string, offset int) []Token {
	var tokens, suffs []Token

	for span != "" {
		if t.isSpecial(span) {
			tokens = t.emit(span, offset, tokens)
			break
		}
		if p := matchPrefix(span, t.prefixes); p != "" && len(p) < len(span) {
			// ¿Por -> [¿, Por], (hola -> [(, hola].
			tokens = t.emit(p, offset, tokens)
			span = span[len(p):]
			offset += len(p)
		} else if s := matchSuffix(span, t.suffixes); s != "" && len(s) < len(span) {
			// bien?) -> [bien, ?, )].
			cut := len(span) - len(s)
			suffs = append(t.emit(s, offset+cut, nil), suffs...)
			span = span[:cut]
		} else {
			tokens = t.emit(span, offset, tokens)
			break
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits text into tokens. Offsets are byte positions in text.
func (t *iterTokenizer) Tokenize(text string) []Token {
	var tokens []Token

	start := -1
	for index := 0; index < len(text); {
		r, size := utf8.DecodeRuneInString(text[index:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.doSplit(text[start:index], start)...)
				start = -1
			}
		} else if start < 0 {
			start = index
		}
		index += size
	}
	if start >= 0 {
		tokens = append(tokens, t.doSplit(text[start:], start)...)
	}

	return tokens
}

func matchPrefix(s string, prefixes []string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return p
		}
	}
	return ""
}

func matchSuffix(s string, suffixes []string) string {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return suf
		}
	}
	return ""
}

var internalRE = regexp.MustCompile(`^(?:\p{L}\.){2,}$|^\d+(?:[.,]\d+)+$`)
var abbreviations = map[string]bool{
	"sr.": true, "sra.": true, "srta.": true, "dr.": true, "dra.": true,
	"ud.": true, "uds.": true, "etc.": true, "pág.": true, "núm.": true,
	"ej.": true, "p.ej.": true, "aprox.": true, "avda.": true, "prof.": true,
}
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var suffixes = []string{"...", "…", ",", ")", `"`, "”", "»", "]", "!", ";", ".", "?", ":", "'", "’"}
var prefixes = []string{"¿", "¡", "(", `"`, "“", "«", "[", "$", "'", "‘"}
var emoticons = map[string]int{
	":(":  1,
	":)":  1,
	":-(": 1,
	":-)": 1,
	":-/": 1,
	":-D": 1,
	":D":  1,
	":P":  1,
	";)":  1,
	";-)": 1,
	"=(":  1,
	"=)":  1,
	"xD":  1,
	"XD":  1,
}
