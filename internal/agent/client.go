package agent

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"bioethicare/internal/casereview"
)

// Sentinel strings stored in place of a real answer when the model cannot be
// reached or returns nothing usable. Callers persist them as if they were
// normal analysis results; they must never surface as errors.
const (
	SentinelConnectionError = "Error de conexión."
	SentinelInvalidResponse = "No se pudo obtener una respuesta válida."
)

const systemPrompt = "Eres un asistente experto en bioética clínica. Respondes en español, " +
	"con rigor deliberativo y sin inventar datos clínicos."

// TextGenerator is the transport seam: one prompt in, free text out.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type anthropicGenerator struct {
	messages *anthropic.MessageService
	model    string
}

func (g *anthropicGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: 2048,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// Client implements the generative-AI collaborator over the Anthropic
// messages API.
type Client struct {
	gen    TextGenerator
	logger zerolog.Logger
}

func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewClientWithGenerator(&anthropicGenerator{messages: &c.Messages, model: model}, logger)
}

// NewClientWithGenerator lets tests substitute the transport.
func NewClientWithGenerator(gen TextGenerator, logger zerolog.Logger) *Client {
	return &Client{gen: gen, logger: logger.With().Str("component", "agent").Logger()}
}

// generate runs one prompt and degrades failures to the sentinels.
func (c *Client) generate(ctx context.Context, prompt string) string {
	out, err := c.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		c.logger.Warn().Err(err).Msg("AI request failed")
		return SentinelConnectionError
	}
	out = strings.TrimSpace(out)
	if out == "" {
		c.logger.Warn().Msg("AI returned an empty response")
		return SentinelInvalidResponse
	}
	return out
}

// AnalyzeClinicalHistory extracts the bioethically relevant elements from a
// free-text clinical history and, when the model names one of the known
// dilemma categories on its closing line, returns it as the suggested
// dilemma. The suggestion is free text from the model's point of view; it
// is only matched, never enforced, downstream.
func (c *Client) AnalyzeClinicalHistory(ctx context.Context, clinicalHistory string) (string, string) {
	var sb strings.Builder
	sb.WriteString("Analiza la siguiente historia clínica. Extrae los elementos más relevantes para un análisis bioético.\n")
	sb.WriteString("**Historia Clínica:**\n")
	sb.WriteString(clinicalHistory)
	sb.WriteString("\n\n**Instrucciones:**\n")
	sb.WriteString("1. **Resumen de Datos Clave:** Diagnóstico, estado, tratamientos.\n")
	sb.WriteString("2. **Conflictos Éticos Potenciales:** ¿Qué dilemas se vislumbran?\n")
	sb.WriteString("3. **Sugerencias para 'Descripción Detallada':** Extrae la narrativa principal.\n")
	sb.WriteString("4. **Sugerencias para 'Contexto Sociocultural':** ¿Hay factores familiares o culturales?\n")
	sb.WriteString("5. **Sugerencias para 'Puntos Clave para Deliberación':** Formula preguntas clave.\n")
	sb.WriteString("6. **Dilema Ético Sugerido:** De la lista `")
	sb.WriteString(strings.Join(casereview.Dilemmas, ", "))
	sb.WriteString("`, ¿cuál es el más probable? Responde solo el nombre en la última línea.\n")

	analysis := c.generate(ctx, sb.String())
	if analysis == SentinelConnectionError || analysis == SentinelInvalidResponse {
		return analysis, ""
	}
	return analysis, matchSuggestedDilemma(analysis)
}

// Deliberate produces the deliberative analysis for a full report context.
func (c *Client) Deliberate(ctx context.Context, reportContext, keyPoints string) string {
	prompt := "Como comité de bioética, analiza: " + reportContext + "\n" +
		"Instrucciones: 1. Sintetiza el conflicto. " +
		"2. Delibera sobre la tensión entre principios/perspectivas. " +
		"3. Enfócate en estos Puntos Clave: '" + keyPoints + "'. " +
		"4. Concluye con una recomendación."
	return c.generate(ctx, prompt)
}

// Chat answers one deliberation question over the case context.
func (c *Client) Chat(ctx context.Context, reportContext, question string) string {
	prompt := "Eres un experto en bioética. Caso: " + reportContext +
		". Pregunta: '" + question + "'. Responde concisamente."
	return c.generate(ctx, prompt)
}

// matchSuggestedDilemma scans the response from the last line backward for a
// known dilemma category. Unmatched output yields no suggestion.
func matchSuggestedDilemma(analysis string) string {
	lines := strings.Split(analysis, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		for _, d := range casereview.Dilemmas {
			if strings.Contains(line, d) {
				return d
			}
		}
		break
	}
	return ""
}
