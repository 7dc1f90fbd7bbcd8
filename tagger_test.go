package argmine

import (
	"strings"
	"testing"
)

func tagged(t *testing.T, tagger *Tagger, text string) []Token {
	t.Helper()
	var tokens []Token
	for _, w := range strings.Fields(text) {
		tokens = append(tokens, Token{Text: w})
	}
	return tagger.Tag(tokens)
}

func TestTagger(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"El gobierno debe reducir la contaminación .", []string{"DET", "NOUN", "VERB", "VERB", "DET", "NOUN", "PUNCT"}},
		{"la traba", []string{"DET", "NOUN"}},
		{"ha aprobado", []string{"AUX", "VERB"}},
		{"se reduce", []string{"PRON", "VERB"}},
		{"para mejorar", []string{"ADP", "VERB"}},
		{"creció 3,5 %", []string{"NOUN", "NUM", "SYM"}},
		{"avanza rápidamente", []string{"NOUN", "ADV"}},
		{"según García y la ONU", []string{"ADP", "PROPN", "CCONJ", "DET", "PROPN"}},
		{"fin . Gobierno", []string{"NOUN", "PUNCT", "NOUN"}},
		{"ojalá", []string{"INTJ"}},
	}

	tagger := NewTagger()
	for _, tt := range tests {
		got := tagged(t, tagger, tt.text)
		for i, tok := range got {
			if tok.Tag != tt.want[i] {
				t.Errorf("%q: token %q tagged %s, want %s", tt.text, tok.Text, tok.Tag, tt.want[i])
			}
		}
	}
}

func TestTagger_AddWord(t *testing.T) {
	tagger := NewTagger()
	tagger.AddWord("Falacia", TagX)

	got := tagged(t, tagger, "una falacia")
	if got[1].Tag != TagX {
		t.Errorf("got %s, want %s", got[1].Tag, TagX)
	}
}

func TestTagger_DoesNotMutateInput(t *testing.T) {
	in := []Token{{Text: "Creo", Start: 0, End: 4}}
	out := NewTagger().Tag(in)

	if in[0].Tag != "" {
		t.Errorf("input tag changed to %q", in[0].Tag)
	}
	if out[0].Tag == "" || out[0].Start != 0 || out[0].End != 4 {
		t.Errorf("unexpected output %+v", out[0])
	}
}
