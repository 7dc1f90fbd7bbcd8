package argmine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// SentimentLexicon manages sentiment word lists
type SentimentLexicon struct {
	words map[string]LexiconEntry
	mutex sync.RWMutex
}

// LexiconEntry represents a word's sentiment information
type LexiconEntry struct {
	Word       string
	Sentiment  float64 // -1 to 1
	Confidence float64 // 0 to 1
}

// ExternalLexicon represents the JSON structure for external lexicon files
type ExternalLexicon struct {
	Languages map[string]LanguageLexicon `json:"languages"`
}

// LanguageLexicon contains all word categories for a specific language
type LanguageLexicon struct {
	Words    []WordEntry `json:"words,omitempty"`
	Positive []WordEntry `json:"positive,omitempty"`
	Negative []WordEntry `json:"negative,omitempty"`
}

// WordEntry represents a sentiment word in JSON format
type WordEntry struct {
	Word       string  `json:"word"`
	Sentiment  float64 `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// LoadSentimentLexicon returns the built-in Spanish lexicon.
func LoadSentimentLexicon() *SentimentLexicon {
	return &SentimentLexicon{words: spanishLexicon()}
}

// LoadSentimentLexiconWithExternal loads lexicon with optional external file support
func LoadSentimentLexiconWithExternal(lang Language, externalPath string) (*SentimentLexicon, error) {
	lexicon := LoadSentimentLexicon()

	if externalPath != "" {
		if err := lexicon.LoadExternalLexicon(externalPath, lang); err != nil {
			return nil, fmt.Errorf("failed to load external lexicon: %w", err)
		}
	}

	return lexicon, nil
}

// LoadExternalLexicon loads and merges external lexicon data
func (sl *SentimentLexicon) LoadExternalLexicon(path string, lang Language) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external ExternalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("error parsing lexicon JSON: %w", err)
	}

	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	if langData, exists := external.Languages[languageToJSONKey(lang)]; exists {
		sl.mergeLanguageData(langData)
	}

	return nil
}

// languageToJSONKey converts Language constants to JSON keys
func languageToJSONKey(lang Language) string {
	if lang == Spanish {
		return "spanish"
	}
	return strings.ToLower(string(lang))
}

// mergeLanguageData merges external language data with existing lexicon
func (sl *SentimentLexicon) mergeLanguageData(data LanguageLexicon) {
	for _, group := range [][]WordEntry{data.Words, data.Positive, data.Negative} {
		for _, entry := range group {
			sl.words[lower(entry.Word)] = LexiconEntry{
				Word:       entry.Word,
				Sentiment:  entry.Sentiment,
				Confidence: entry.Confidence,
			}
		}
	}
}

// GetSentiment returns sentiment score for a word
func (sl *SentimentLexicon) GetSentiment(word string) float64 {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	if entry, exists := sl.words[word]; exists {
		return entry.Sentiment
	}
	if entry, exists := sl.words[lower(word)]; exists {
		return entry.Sentiment
	}
	return 0.0
}

// AddCustomWord allows adding domain-specific words
func (sl *SentimentLexicon) AddCustomWord(word string, sentiment, confidence float64) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	sl.words[lower(word)] = LexiconEntry{
		Word:       word,
		Sentiment:  sentiment,
		Confidence: confidence,
	}
}

// GetLexiconSize returns the number of words in the lexicon
func (sl *SentimentLexicon) GetLexiconSize() int {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return len(sl.words)
}

func entries(scores map[string]float64, confidence float64) map[string]LexiconEntry {
	out := make(map[string]LexiconEntry, len(scores))
	for word, score := range scores {
		out[word] = LexiconEntry{Word: word, Sentiment: score, Confidence: confidence}
	}
	return out
}

// spanishLexicon returns the built-in Spanish word list.
func spanishLexicon() map[string]LexiconEntry {
	return entries(map[string]float64{
		// Strong positive
		"excelente": 0.9, "maravilloso": 0.85, "maravillosa": 0.85, "fantástico": 0.85,
		"fantástica": 0.85, "extraordinario": 0.85, "extraordinaria": 0.85, "perfecto": 0.95,
		"perfecta": 0.95, "magnífico": 0.9, "magnífica": 0.9, "brillante": 0.85,
		"increíble": 0.8, "espléndido": 0.85,

		// Positive
		"bueno": 0.6, "buena": 0.6, "buenos": 0.6, "buenas": 0.6, "bien": 0.5,
		"genial": 0.75, "amor": 0.8, "feliz": 0.7, "felices": 0.7, "hermoso": 0.75,
		"hermosa": 0.75, "mejor": 0.5, "mejores": 0.5, "beneficio": 0.6,
		"beneficios": 0.6, "beneficioso": 0.6, "ventaja": 0.55, "ventajas": 0.55,
		"positivo": 0.6, "positiva": 0.6, "útil": 0.55, "eficaz": 0.6, "eficiente": 0.55,
		"importante": 0.4, "necesario": 0.3, "justo": 0.5, "justa": 0.5,
		"correcto": 0.5, "correcta": 0.5, "éxito": 0.75, "progreso": 0.6,
		"mejora": 0.55, "mejorar": 0.5, "favorable": 0.6, "seguro": 0.4,
		"valioso": 0.6, "valiosa": 0.6, "acierto": 0.6, "libertad": 0.5,

		// Mild positive
		"aceptable": 0.3, "adecuado": 0.35, "adecuada": 0.35, "razonable": 0.4,

		// Strong negative
		"terrible": -0.9, "horrible": -0.85, "pésimo": -0.9, "pésima": -0.9,
		"desastroso": -0.9, "desastrosa": -0.9, "catastrófico": -0.9, "nefasto": -0.85,
		"atroz": -0.9, "desastre": -0.85,

		// Negative
		"malo": -0.6, "mala": -0.6, "malos": -0.6, "malas": -0.6, "mal": -0.5,
		"odio": -0.8, "triste": -0.7, "feo": -0.75, "fea": -0.75,
		"decepcionante": -0.7, "peor": -0.5, "peores": -0.5, "problema": -0.5,
		"problemas": -0.5, "riesgo": -0.5, "riesgos": -0.5, "peligro": -0.7,
		"peligroso": -0.7, "peligrosa": -0.7, "daño": -0.7, "daños": -0.7,
		"perjudicial": -0.7, "negativo": -0.6, "negativa": -0.6, "injusto": -0.65,
		"injusta": -0.65, "falso": -0.6, "falsa": -0.6, "error": -0.55,
		"errores": -0.55, "fracaso": -0.75, "crisis": -0.6, "violencia": -0.8,
		"pobreza": -0.6, "corrupción": -0.8, "desventaja": -0.55, "desventajas": -0.55,
		"inútil": -0.6, "grave": -0.5, "difícil": -0.3,
	}, 0.9)
}
