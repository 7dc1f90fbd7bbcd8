package argmine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// DictLemmatizer looks lemmas up in a form -> lemma table.
type DictLemmatizer struct {
	mu    sync.RWMutex
	forms map[string]string
}

// NewDictLemmatizer creates a lemmatizer seeded with frequent Spanish
// irregular forms.
func NewDictLemmatizer() *DictLemmatizer {
	l := &DictLemmatizer{forms: make(map[string]string, len(spanishIrregulars))}
	for form, lemma := range spanishIrregulars {
		l.forms[form] = lemma
	}
	return l
}

// NewDictLemmatizerFromFile creates a lemmatizer from the built-in table plus
// the entries of the file at path.
func NewDictLemmatizerFromFile(path string) (*DictLemmatizer, error) {
	l := NewDictLemmatizer()
	if path == "" {
		return l, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lemma dictionary: %w", err)
	}
	defer f.Close()

	if err := l.Load(f); err != nil {
		return nil, fmt.Errorf("load lemma dictionary %s: %w", path, err)
	}
	return l, nil
}

// Load reads "form<TAB>lemma" or "form,lemma" lines from r. Blank lines and
// lines starting with '#' are skipped.
func (l *DictLemmatizer) Load(r io.Reader) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		text := strings.TrimSpace(scan.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		sep := "\t"
		if !strings.Contains(text, sep) {
			sep = ","
		}
		parts := strings.SplitN(text, sep, 2)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: expected two columns", line)
		}
		form := lower(strings.TrimSpace(parts[0]))
		lemma := strings.TrimSpace(parts[1])
		if form == "" || lemma == "" {
			return fmt.Errorf("line %d: empty column", line)
		}
		l.forms[form] = lemma
	}
	return scan.Err()
}

// Add registers a single form.
func (l *DictLemmatizer) Add(form, lemma string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.forms[lower(form)] = lemma
}

// Size returns the number of known forms.
func (l *DictLemmatizer) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.forms)
}

// Lemmatize returns the analysis of token, or nil when the form is unknown.
func (l *DictLemmatizer) Lemmatize(token string) (*Analysis, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if lemma, ok := l.forms[lower(token)]; ok {
		return &Analysis{Lemma: lemma}, nil
	}
	return nil, nil
}

// spanishIrregulars covers determiners, contractions and the most frequent
// irregular verb forms found in argumentative text.
var spanishIrregulars = map[string]string{
	// Determiners and contractions
	"el": "el", "la": "el", "los": "el", "las": "el",
	"un": "uno", "una": "uno", "unos": "uno", "unas": "uno",
	"al": "a", "del": "de",
	"este": "este", "esta": "este", "estos": "este", "estas": "este",
	"ese": "ese", "esa": "ese", "esos": "ese", "esas": "ese",
	"aquel": "aquel", "aquella": "aquel", "aquellos": "aquel", "aquellas": "aquel",
	"mi": "mi", "mis": "mi", "tu": "tu", "tus": "tu", "su": "su", "sus": "su",
	"nuestro": "nuestro", "nuestra": "nuestro", "nuestros": "nuestro", "nuestras": "nuestro",

	// Pronouns
	"yo": "yo", "me": "yo", "mí": "yo",
	"tú": "tú", "te": "tú", "ti": "tú",
	"él": "él", "ella": "él", "ellos": "él", "ellas": "él",
	"lo": "él", "le": "él", "les": "él", "se": "él",
	"nosotros": "nosotros", "nosotras": "nosotros", "nos": "nosotros",

	// ser
	"es": "ser", "son": "ser", "soy": "ser", "eres": "ser", "somos": "ser",
	"era": "ser", "eran": "ser", "fue": "ser", "fueron": "ser", "sea": "ser",
	"sean": "ser", "sería": "ser", "serían": "ser", "será": "ser", "serán": "ser",
	"sido": "ser", "siendo": "ser",

	// estar
	"está": "estar", "están": "estar", "estoy": "estar", "estamos": "estar",
	"estaba": "estar", "estaban": "estar", "estuvo": "estar", "esté": "estar",
	"estén": "estar", "estado": "estar",

	// haber
	"hay": "haber", "ha": "haber", "han": "haber", "he": "haber", "hemos": "haber",
	"había": "haber", "habían": "haber", "hubo": "haber", "haya": "haber",
	"hayan": "haber", "habrá": "haber", "habría": "haber",

	// tener
	"tiene": "tener", "tienen": "tener", "tengo": "tener", "tenemos": "tener",
	"tenía": "tener", "tenían": "tener", "tuvo": "tener", "tenga": "tener",
	"tengan": "tener",

	// hacer
	"hace": "hacer", "hacen": "hacer", "hago": "hacer", "hizo": "hacer",
	"hicieron": "hacer", "haga": "hacer", "hecho": "hacer",

	// poder
	"puede": "poder", "pueden": "poder", "puedo": "poder", "podemos": "poder",
	"pudo": "poder", "pueda": "poder", "puedan": "poder", "podría": "poder",
	"podrían": "poder",

	// deber
	"debe": "deber", "deben": "deber", "debemos": "deber", "debería": "deber",
	"deberían": "deber",

	// ir
	"va": "ir", "van": "ir", "voy": "ir", "vamos": "ir", "iba": "ir", "vaya": "ir",

	// decir
	"dice": "decir", "dicen": "decir", "dijo": "decir", "dicho": "decir",

	// otros
	"quiere": "querer", "quieren": "querer", "sabe": "saber", "sé": "saber",
	"saben": "saber", "demuestra": "demostrar", "demuestran": "demostrar",
	"muestra": "mostrar", "muestran": "mostrar", "piensa": "pensar",
	"pienso": "pensar", "piensan": "pensar", "concluye": "concluir",
	"concluyen": "concluir", "sigue": "seguir", "siguen": "seguir",
	"corre": "correr", "corren": "correr",

	// Connectors frequent in arguments
	"porque": "porque", "pues": "pues", "luego": "luego", "entonces": "entonces",
	"mejor": "bueno", "peor": "malo", "mejores": "bueno", "peores": "malo",
}
