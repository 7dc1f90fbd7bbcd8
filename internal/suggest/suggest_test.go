package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessages struct {
	params   anthropic.MessageNewParams
	deadline bool
	reply    *anthropic.Message
	err      error
}

func (f *fakeMessages) New(ctx context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.params = body
	_, f.deadline = ctx.Deadline()
	return f.reply, f.err
}

func textReply(text string) *anthropic.Message {
	return &anthropic.Message{Content: []anthropic.ContentBlockUnion{{Type: "text", Text: text}}}
}

func testConfig() Config {
	return Config{Model: "claude-test", MaxTokens: 200, Temperature: 0.7, Timeout: time.Second}
}

func TestRecommend_SplitsNonBlankLines(t *testing.T) {
	fake := &fakeMessages{reply: textReply("Primera sugerencia.\n\n  \nSegunda sugerencia.\n")}
	s := &Suggester{messages: fake, cfg: testConfig()}

	recs, err := s.Recommend(context.Background(), []string{"Los impuestos financian escuelas"}, []string{"Hay que pagar impuestos"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Primera sugerencia.", "Segunda sugerencia."}, recs)

	assert.Equal(t, anthropic.Model("claude-test"), fake.params.Model)
	assert.Equal(t, int64(200), fake.params.MaxTokens)
	require.Len(t, fake.params.System, 1)
	assert.Equal(t, systemPrompt, fake.params.System[0].Text)
	require.Len(t, fake.params.Messages, 1)
	assert.True(t, fake.deadline)
}

func TestRecommend_APIError(t *testing.T) {
	boom := errors.New("rate limited")
	s := &Suggester{messages: &fakeMessages{err: boom}, cfg: testConfig()}

	_, err := s.Recommend(context.Background(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRecommend_EmptyResponse(t *testing.T) {
	s := &Suggester{messages: &fakeMessages{reply: &anthropic.Message{}}, cfg: testConfig()}

	_, err := s.Recommend(context.Background(), []string{"p"}, []string{"c"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestRecommend_BlankTextGivesNoLines(t *testing.T) {
	s := &Suggester{messages: &fakeMessages{reply: textReply("   \n  ")}, cfg: testConfig()}

	recs, err := s.Recommend(context.Background(), []string{"p"}, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]string{"A", "B"}, []string{"C"})

	assert.True(t, strings.HasPrefix(prompt, "Eres un asistente experto en argumentación académica."))
	assert.True(t, strings.HasSuffix(prompt,
		"Premisas:\n- A\n- B\n\nConclusiones:\n- CAhora, genera las sugerencias solicitadas."))
}
