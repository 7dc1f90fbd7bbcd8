package argmine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorpus = `[["Creo","VERB","B-Premise"],["que","SCONJ","I-Premise"]]

[["hola","INTJ","B-Premise"]]
`

func TestReadCorpus(t *testing.T) {
	corpus, err := ReadCorpus(strings.NewReader(testCorpus))
	require.NoError(t, err)

	require.Len(t, corpus, 2)
	assert.Equal(t, []string{"Creo", "que"}, Texts(corpus[0]))
	assert.Equal(t, []string{"B-Premise", "I-Premise"}, Labels(corpus[0]))
	assert.Equal(t, "INTJ", corpus[1][0].Tag)
}

func TestReadCorpus_Unlabeled(t *testing.T) {
	corpus, err := ReadCorpus(strings.NewReader(`[["hola","INTJ"]]`))
	require.NoError(t, err)

	assert.Equal(t, Token{Text: "hola", Tag: "INTJ"}, corpus[0][0])
}

func TestReadCorpus_Errors(t *testing.T) {
	_, err := ReadCorpus(strings.NewReader("[[\"a\",\"X\"]]\n[[\"solo\"]]\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = ReadCorpus(strings.NewReader("no es json"))
	assert.Error(t, err)
}

func TestScanCorpus_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ScanCorpus(ctx, strings.NewReader(testCorpus), func(LabeledSentence) error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate(t *testing.T) {
	corpus, err := ReadCorpus(strings.NewReader(testCorpus))
	require.NoError(t, err)

	res := Evaluate(testModel(t), NewExtractor(), FeatureOptions{}, corpus)

	assert.Equal(t, 3, res.Tokens)
	assert.InDelta(t, 2.0/3.0, res.Accuracy, 1e-9)
	require.Len(t, res.Labels, 3)

	b := res.Labels[0]
	assert.Equal(t, "B-Premise", b.Label)
	assert.InDelta(t, 1.0, b.Precision, 1e-9)
	assert.InDelta(t, 0.5, b.Recall, 1e-9)
	assert.Equal(t, 2, b.Support)

	assert.Equal(t, "I-Premise", res.Labels[1].Label)
	assert.InDelta(t, 1.0, res.Labels[1].F1Score, 1e-9)

	o := res.Labels[2]
	assert.Equal(t, "O", o.Label)
	assert.Zero(t, o.F1Score)
	assert.Zero(t, o.Support)

	assert.InDelta(t, (2.0/3.0+1.0)/3.0, res.MacroF1, 1e-9)
}

func TestEvaluate_SkipsUnlabeledTokens(t *testing.T) {
	corpus, err := ReadCorpus(strings.NewReader(testCorpus + "\n" + `[["Pero","CCONJ"],["no","ADV"]]` + "\n"))
	require.NoError(t, err)
	require.Len(t, corpus, 3)

	res := Evaluate(testModel(t), NewExtractor(), FeatureOptions{}, corpus)

	assert.Equal(t, 3, res.Tokens)
	assert.InDelta(t, 2.0/3.0, res.Accuracy, 1e-9)
	for _, m := range res.Labels {
		assert.NotEmpty(t, m.Label)
	}
}

func TestEvaluate_UnlabeledCorpus(t *testing.T) {
	corpus, err := ReadCorpus(strings.NewReader(`[["hola","INTJ"]]`))
	require.NoError(t, err)

	res := Evaluate(testModel(t), NewExtractor(), FeatureOptions{}, corpus)

	assert.Zero(t, res.Tokens)
	assert.Empty(t, res.Labels)
}

func TestEvaluate_EmptyCorpus(t *testing.T) {
	res := Evaluate(testModel(t), NewExtractor(), FeatureOptions{}, nil)

	assert.Zero(t, res.Tokens)
	assert.Zero(t, res.Accuracy)
}
