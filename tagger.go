package argmine

import (
	"regexp"
	"strings"
	"sync"
)

// A Tagger assigns Universal Dependencies part-of-speech tags to Spanish
// tokens.
//
// Tagging runs in two passes: a baseline pass (closed-class lexicon, then
// suffix heuristics) followed by contextual corrections.
type Tagger struct {
	mu      sync.RWMutex
	lexicon map[string]string
}

// NewTagger creates a Tagger with the built-in Spanish lexicon.
func NewTagger() *Tagger {
	t := &Tagger{lexicon: make(map[string]string, 512)}
	for tag, words := range spanishClosedClass {
		for _, w := range words {
			t.lexicon[w] = tag
		}
	}
	return t
}

// AddWord registers or overrides the tag of word.
func (t *Tagger) AddWord(word, tag string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lexicon[lower(word)] = tag
}

// Tag returns a copy of tokens with Tag set.
func (t *Tagger) Tag(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	fromLexicon := make([]bool, len(out))

	t.mu.RLock()
	for i := range out {
		out[i].Tag, fromLexicon[i] = t.baseline(out[i].Text, i == 0 || isSentenceStart(out, i))
	}
	t.mu.RUnlock()

	for i := range out {
		if fromLexicon[i] {
			continue
		}
		prev, prevText := "", ""
		if i > 0 {
			prev, prevText = out[i-1].Tag, lower(out[i-1].Text)
		}

		switch {
		// "la [crítica]", "un [fallo]": determiners force nouns.
		case prev == TagDet && out[i].Tag == TagVerb && !isInfinitive(out[i].Text):
			out[i].Tag = TagNoun
		// "ha [dicho]", "puede [mejorar]": auxiliaries and modals force verbs.
		case (prev == TagAux || modalVerbs[prevText]) && (out[i].Tag == TagNoun || out[i].Tag == TagAdj):
			out[i].Tag = TagVerb
		// "se [reduce]", "lo [aprueba]": clitics precede verbs.
		case clitics[prevText] && prev == TagPron && out[i].Tag == TagNoun:
			out[i].Tag = TagVerb
		// "para [mejorar]": prepositions before infinitives.
		case prev == TagAdp && isInfinitive(out[i].Text):
			out[i].Tag = TagVerb
		}
	}

	return out
}

// baseline returns the context-free tag of word and whether it came from the
// lexicon.
func (t *Tagger) baseline(word string, sentenceStart bool) (string, bool) {
	switch {
	case isPunctuation(word):
		if symbols[word] {
			return TagSym, false
		}
		return TagPunct, false
	case numberRE.MatchString(word):
		return TagNum, false
	}

	lw := lower(word)
	if tag, ok := t.lexicon[lw]; ok {
		return tag, true
	}
	if !hasLetter(word) {
		return TagSym, false
	}
	if !sentenceStart && isTitle(word) {
		return TagPropn, false
	}
	if isUpper(word) && runeLen(word) > 1 {
		return TagPropn, false
	}
	return suffixTag(lw), false
}

func isSentenceStart(tokens []Token, i int) bool {
	switch tokens[i-1].Text {
	case ".", "!", "?", "¿", "¡", ":", "\"", "«", "(", "...", "…":
		return true
	}
	return false
}

func suffixTag(w string) string {
	switch {
	case strings.HasSuffix(w, "mente") && runeLen(w) > 6:
		return TagAdv
	case hasAnySuffix(w, nounSuffixes):
		return TagNoun
	case hasAnySuffix(w, verbSuffixes):
		return TagVerb
	case hasAnySuffix(w, adjSuffixes):
		return TagAdj
	case isInfinitive(w):
		return TagVerb
	}
	return TagNoun
}

func isInfinitive(w string) bool {
	w = lower(w)
	if runeLen(w) < 4 {
		return false
	}
	for _, suf := range []string{"ar", "er", "ir", "arse", "erse", "irse"} {
		if strings.HasSuffix(w, suf) {
			return true
		}
	}
	return false
}

func hasAnySuffix(w string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(w, s) && runeLen(w) > runeLen(s)+1 {
			return true
		}
	}
	return false
}

var numberRE = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)*%?$`)

var symbols = map[string]bool{
	"$": true, "%": true, "€": true, "&": true, "+": true, "=": true, "#": true, "@": true, "*": true, "/": true,
}

var nounSuffixes = []string{
	"ción", "ciones", "sión", "siones", "dad", "dades", "tad", "tades",
	"miento", "mientos", "encia", "encias", "ancia", "ancias", "ismo", "ismos",
	"ista", "istas", "eza", "ezas", "ura", "uras", "aje", "ajes", "ía", "ías",
}

var verbSuffixes = []string{
	"ando", "iendo", "yendo", "aba", "aban", "ábamos", "aron", "ieron",
	"ará", "arán", "ería", "erían", "aría", "arían", "amos", "emos", "imos",
}

var adjSuffixes = []string{
	"oso", "osa", "osos", "osas", "ble", "bles", "ivo", "iva", "ivos", "ivas",
	"ico", "ica", "icos", "icas", "ante", "antes", "ente", "entes", "al", "ales",
	"ado", "ada", "ados", "adas", "ido", "ida", "idos", "idas",
}

var modalVerbs = map[string]bool{
	"puede": true, "pueden": true, "podría": true, "podrían": true, "debe": true,
	"deben": true, "debería": true, "deberían": true, "quiere": true, "quieren": true,
	"suele": true, "suelen": true,
}

var clitics = map[string]bool{
	"se": true, "lo": true, "la": true, "los": true, "las": true, "le": true,
	"les": true, "me": true, "te": true, "nos": true,
}

var spanishClosedClass = map[string][]string{
	TagDet: {
		"el", "la", "los", "las", "un", "una", "unos", "unas", "este", "esta",
		"estos", "estas", "ese", "esa", "esos", "esas", "aquel", "aquella",
		"aquellos", "aquellas", "mi", "mis", "tu", "tus", "su", "sus", "nuestro",
		"nuestra", "nuestros", "nuestras", "cada", "todo", "toda", "todos", "todas",
		"algún", "alguna", "algunos", "algunas", "ningún", "ninguna", "varios",
		"varias", "otro", "otra", "otros", "otras", "mucho", "mucha", "muchos",
		"muchas", "poca", "pocos", "pocas", "cualquier", "tanto", "tanta",
		"tantos", "tantas",
	},
	TagAdp: {
		"a", "al", "ante", "bajo", "con", "contra", "de", "del", "desde", "durante",
		"en", "entre", "hacia", "hasta", "mediante", "para", "por", "según", "sin",
		"sobre", "tras",
	},
	TagPron: {
		"yo", "me", "mí", "tú", "te", "ti", "él", "ella", "ello", "ellos", "ellas",
		"lo", "le", "les", "se", "nosotros", "nosotras", "nos", "vosotros", "usted",
		"ustedes", "esto", "eso", "aquello", "quien", "quienes", "cual", "cuales",
		"nadie", "nada", "alguien", "algo", "uno",
	},
	TagCconj: {"y", "e", "o", "u", "ni", "pero", "sino", "mas"},
	TagSconj: {
		"que", "porque", "si", "aunque", "como", "cuando", "mientras", "pues",
	},
	TagAux: {
		"es", "son", "soy", "eres", "somos", "era", "eran", "fue", "fueron", "sea",
		"sean", "sería", "serían", "será", "serán", "ser", "sido", "siendo",
		"está", "están", "estoy", "estamos", "estaba", "estaban", "esté", "estar",
		"ha", "han", "he", "has", "hemos", "había", "habían", "haya", "hayan",
		"habrá", "habría", "haber",
	},
	TagAdv: {
		"no", "sí", "muy", "más", "menos", "también", "tampoco", "siempre", "nunca",
		"jamás", "ya", "aún", "todavía", "bien", "mal", "así", "además", "entonces",
		"luego", "quizás", "quizá", "tal", "vez", "solo", "sólo", "aquí", "allí",
		"ahora", "hoy", "mañana", "ayer", "bastante", "demasiado", "casi", "incluso",
		"tan", "donde", "cuanto",
	},
	TagVerb: {
		"hay", "tiene", "tienen", "tengo", "tenemos", "hace", "hacen", "hizo",
		"puede", "pueden", "podría", "podrían", "debe", "deben", "debería",
		"deberían", "dice", "dicen", "creo", "cree", "creen", "pienso", "piensa",
		"demuestra", "demuestran", "muestra", "muestran", "indica", "indican",
		"implica", "implican", "permite", "permiten", "sigue", "siguen",
		"quiere", "quieren", "va", "van", "corre", "corren",
	},
	TagIntj: {"hola", "ay", "oh", "eh", "ojalá"},
}
