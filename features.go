package argmine

import (
	"encoding/json"
	"sort"
	"strconv"
)

// FeatureOptions selects the optional feature groups of a FeatureMap.
type FeatureOptions struct {
	WindowSize       int  // Context radius; 0 disables context and n-grams.
	IncludeSentiment bool // If true, add sentiment labels.
	Lemmatize        bool // If true, look lemmas up instead of copying the token.
}

// DefaultFeatureOptions are the settings the argument model was trained with.
func DefaultFeatureOptions() FeatureOptions {
	return FeatureOptions{
		WindowSize:       3,
		IncludeSentiment: true,
		Lemmatize:        true,
	}
}

// TokenFeatures describes the token being labeled.
type TokenFeatures struct {
	Lower         string
	Upper         string
	Suffix3       string
	Suffix2       string
	Suffix1       string
	Prefix2       string
	Prefix3       string
	IsUpper       bool
	IsLower       bool
	IsTitle       bool
	IsDigit       bool
	IsAlpha       bool
	IsAlnum       bool
	Length        int
	HasHyphen     bool
	HasApostrophe bool
	PosTag        string
	PosPrefix     string
}

// NeighborFeatures describes a token inside the context window.
type NeighborFeatures struct {
	Lower     string
	Suffix3   string
	Suffix2   string
	IsUpper   bool
	IsLower   bool
	IsTitle   bool
	IsDigit   bool
	Length    int
	PosTag    string
	PosPrefix string
	Sentiment string // Set when FeatureOptions.IncludeSentiment.
	Lemma     string // Set when FeatureOptions.Lemmatize.
}

// A FeatureMap holds every feature of one token position.
//
// Prev[v-1] and Next[v-1] describe the tokens v positions before and after
// the current one; a nil entry means the window crossed the sentence
// boundary.
type FeatureMap struct {
	Options FeatureOptions

	Bias      float64
	Token     TokenFeatures
	Sentiment string // Set when Options.IncludeSentiment.
	Lemma     string // Always set; the raw token unless Options.Lemmatize.

	Prev []*NeighborFeatures
	Next []*NeighborFeatures

	BigramPrev    string
	BigramNext    string
	TrigramCenter string
}

// HasBigramPrev reports whether BigramPrev is part of the feature set.
func (f FeatureMap) HasBigramPrev() bool {
	return f.Options.WindowSize >= 1 && len(f.Prev) > 0 && f.Prev[0] != nil
}

// HasBigramNext reports whether BigramNext is part of the feature set.
func (f FeatureMap) HasBigramNext() bool {
	return f.Options.WindowSize >= 1 && len(f.Next) > 0 && f.Next[0] != nil
}

// HasTrigramCenter reports whether TrigramCenter is part of the feature set.
func (f FeatureMap) HasTrigramCenter() bool {
	return f.Options.WindowSize >= 2 && f.HasBigramPrev() && f.HasBigramNext()
}

// ValueKind tags the type held by a Value.
type ValueKind uint8

const (
	KindString ValueKind = iota
	KindBool
	KindNumber
)

// A Value is a single feature value: a string, a boolean or a number.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
	Num  float64
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberValue wraps n.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Interface returns the wrapped Go value.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num
	default:
		return v.Str
	}
}

// Attributes flattens f into the named attribute bag consumed by the
// sequence model. Key names are part of the model's contract.
func (f FeatureMap) Attributes() map[string]Value {
	attrs := make(map[string]Value, 24+len(f.Prev)*12+len(f.Next)*12)

	t := f.Token
	attrs["bias"] = NumberValue(f.Bias)
	attrs["token.lower()"] = StringValue(t.Lower)
	attrs["token.upper()"] = StringValue(t.Upper)
	attrs["word[-3:]"] = StringValue(t.Suffix3)
	attrs["word[-2:]"] = StringValue(t.Suffix2)
	attrs["word[-1:]"] = StringValue(t.Suffix1)
	attrs["word[:2]"] = StringValue(t.Prefix2)
	attrs["word[:3]"] = StringValue(t.Prefix3)
	attrs["word.isupper()"] = BoolValue(t.IsUpper)
	attrs["word.islower()"] = BoolValue(t.IsLower)
	attrs["word.istitle()"] = BoolValue(t.IsTitle)
	attrs["word.isdigit()"] = BoolValue(t.IsDigit)
	attrs["word.isalpha()"] = BoolValue(t.IsAlpha)
	attrs["word.isalnum()"] = BoolValue(t.IsAlnum)
	attrs["word.length"] = NumberValue(float64(t.Length))
	attrs["word.has_hyphen"] = BoolValue(t.HasHyphen)
	attrs["word.has_apostrophe"] = BoolValue(t.HasApostrophe)
	attrs["postag"] = StringValue(t.PosTag)
	attrs["postag[:2]"] = StringValue(t.PosPrefix)

	if f.Options.IncludeSentiment {
		attrs["sentiment"] = StringValue(f.Sentiment)
	}
	attrs["lemma"] = StringValue(f.Lemma)

	for i, n := range f.Prev {
		v := strconv.Itoa(i + 1)
		if n == nil {
			attrs["BOS-"+v] = BoolValue(true)
			continue
		}
		f.neighborAttributes(attrs, "-"+v+":", n)
	}
	for i, n := range f.Next {
		v := strconv.Itoa(i + 1)
		if n == nil {
			attrs["EOS-"+v] = BoolValue(true)
			continue
		}
		f.neighborAttributes(attrs, "+"+v+":", n)
	}

	if f.HasBigramPrev() {
		attrs["bigrama_prev"] = StringValue(f.BigramPrev)
	}
	if f.HasBigramNext() {
		attrs["bigrama_next"] = StringValue(f.BigramNext)
	}
	if f.HasTrigramCenter() {
		attrs["trigrama_center"] = StringValue(f.TrigramCenter)
	}

	return attrs
}

func (f FeatureMap) neighborAttributes(attrs map[string]Value, prefix string, n *NeighborFeatures) {
	attrs[prefix+"token.lower()"] = StringValue(n.Lower)
	attrs[prefix+"word[-3:]"] = StringValue(n.Suffix3)
	attrs[prefix+"word[-2:]"] = StringValue(n.Suffix2)
	attrs[prefix+"word.isupper()"] = BoolValue(n.IsUpper)
	attrs[prefix+"word.islower()"] = BoolValue(n.IsLower)
	attrs[prefix+"word.istitle()"] = BoolValue(n.IsTitle)
	attrs[prefix+"word.isdigit()"] = BoolValue(n.IsDigit)
	attrs[prefix+"word.length"] = NumberValue(float64(n.Length))
	attrs[prefix+"postag"] = StringValue(n.PosTag)
	attrs[prefix+"postag[:2]"] = StringValue(n.PosPrefix)
	if f.Options.IncludeSentiment {
		attrs[prefix+"sentiment"] = StringValue(n.Sentiment)
	}
	if f.Options.Lemmatize {
		attrs[prefix+"lemma"] = StringValue(n.Lemma)
	}
}

// CRFAttributes encodes f the way crfsuite encodes a feature dict: string
// values become "key:value" with weight 1, booleans and numbers keep the key
// and use the value as weight. Zero weights are dropped.
func (f FeatureMap) CRFAttributes() map[string]float64 {
	attrs := f.Attributes()
	out := make(map[string]float64, len(attrs))
	for key, v := range attrs {
		switch v.Kind {
		case KindString:
			out[key+":"+v.Str] = 1
		case KindBool:
			if v.Bool {
				out[key] = 1
			}
		case KindNumber:
			if v.Num != 0 {
				out[key] = v.Num
			}
		}
	}
	return out
}

// Keys returns the sorted attribute names of f.
func (f FeatureMap) Keys() []string {
	attrs := f.Attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes f as its flat attribute object.
func (f FeatureMap) MarshalJSON() ([]byte, error) {
	attrs := f.Attributes()
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v.Interface()
	}
	return json.Marshal(out)
}
