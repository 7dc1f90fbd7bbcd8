package argmine

import "testing"

func TestSegment(t *testing.T) {
	text := "La medida es necesaria. Tiene costes. Nadie los paga."
	sents := newPunktSegmenter().segment(text)

	if len(sents) != 3 {
		t.Fatalf("got %d sentences: %q", len(sents), sents)
	}
	for _, s := range sents {
		if text[s.Start:s.End] != s.Text {
			t.Errorf("offsets [%d,%d) select %q, want %q", s.Start, s.End, text[s.Start:s.End], s.Text)
		}
	}
	if sents[2].Text != "Nadie los paga." {
		t.Errorf("last sentence = %q", sents[2].Text)
	}
}

func TestSegment_Repeated(t *testing.T) {
	text := "Sí. Sí. Sí."
	sents := newPunktSegmenter().segment(text)

	prev := -1
	for _, s := range sents {
		if s.Start <= prev {
			t.Errorf("sentence %q starts at %d, before %d", s.Text, s.Start, prev)
		}
		prev = s.Start
	}
}
