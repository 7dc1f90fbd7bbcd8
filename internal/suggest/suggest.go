// Package suggest asks a language model for improvement suggestions on the
// premises and conclusions found in a text.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrEmptyResponse is returned when the model answers without text.
var ErrEmptyResponse = errors.New("suggest: empty model response")

const systemPrompt = "Eres un experto en argumentación académica. Responde de forma clara y concisa."

// messageCreator is the subset of the Anthropic client used here.
// *anthropic.MessageService satisfies it.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Config controls the model call.
type Config struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Suggester produces one suggestion per premise or conclusion.
type Suggester struct {
	messages messageCreator
	cfg      Config
}

// New creates a Suggester backed by the Anthropic Messages API.
func New(apiKey string, cfg Config) *Suggester {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Suggester{messages: &client.Messages, cfg: cfg}
}

// Recommend returns the non-blank lines of the model's answer.
func (s *Suggester) Recommend(ctx context.Context, premises, conclusions []string) ([]string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	msg, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.cfg.Model),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: anthropic.Float(s.cfg.Temperature),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(premises, conclusions))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: messages api: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, ErrEmptyResponse
	}

	return splitLines(sb.String()), nil
}

// BuildPrompt renders the user prompt for the given premises and conclusions.
func BuildPrompt(premises, conclusions []string) string {
	var b strings.Builder
	b.WriteString("Eres un asistente experto en argumentación académica.\n\n")
	b.WriteString("A continuación verás una lista de premisas y conclusiones extraídas de un texto.\n")
	b.WriteString("Para cada elemento, genera **exactamente una** sugerencia clara y práctica que ayude a mejorar esa premisa o conclusión.\n")
	b.WriteString("Las sugerencias deben ser específicas y directamente aplicables.\n")
	b.WriteString("Además, haz un solo párrafo por sugerencia sin agregar titulos ni numeraciones y menciones previas a las premisas o conclusiones.\n\n")
	b.WriteString("Premisas:\n")
	writeItems(&b, premises)
	b.WriteString("\n\nConclusiones:\n")
	writeItems(&b, conclusions)
	// The closing instruction follows the last item with no separator.
	b.WriteString("Ahora, genera las sugerencias solicitadas.")
	return b.String()
}

func writeItems(b *strings.Builder, items []string) {
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
}

func splitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
