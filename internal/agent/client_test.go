package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"bioethicare/internal/casereview"
)

type fakeGenerator struct {
	out string
	err error
}

func (f *fakeGenerator) Generate(context.Context, string, string) (string, error) {
	return f.out, f.err
}

func TestTransportFailureDegradesToSentinel(t *testing.T) {
	c := NewClientWithGenerator(&fakeGenerator{err: errors.New("dial tcp: connection refused")}, zerolog.Nop())

	if got := c.Deliberate(context.Background(), "{}", ""); got != SentinelConnectionError {
		t.Errorf("Deliberate = %q, want sentinel", got)
	}
	if got := c.Chat(context.Background(), "{}", "¿pregunta?"); got != SentinelConnectionError {
		t.Errorf("Chat = %q, want sentinel", got)
	}

	analysis, suggested := c.AnalyzeClinicalHistory(context.Background(), "historia")
	if analysis != SentinelConnectionError {
		t.Errorf("analysis = %q, want sentinel", analysis)
	}
	if suggested != "" {
		t.Errorf("no dilemma may be suggested on failure, got %q", suggested)
	}
}

func TestEmptyResponseDegradesToSentinel(t *testing.T) {
	c := NewClientWithGenerator(&fakeGenerator{out: "   \n  "}, zerolog.Nop())

	if got := c.Chat(context.Background(), "{}", "¿pregunta?"); got != SentinelInvalidResponse {
		t.Errorf("Chat = %q, want %q", got, SentinelInvalidResponse)
	}
}

func TestAnalyzeClinicalHistoryParsesSuggestedDilemma(t *testing.T) {
	out := "1. Resumen de datos clave...\n2. Conflictos éticos...\n\nConsentimiento Informado"
	c := NewClientWithGenerator(&fakeGenerator{out: out}, zerolog.Nop())

	analysis, suggested := c.AnalyzeClinicalHistory(context.Background(), "historia")
	if analysis != out {
		t.Errorf("analysis altered: %q", analysis)
	}
	if suggested != "Consentimiento Informado" {
		t.Errorf("suggested = %q", suggested)
	}
}

func TestAnalyzeClinicalHistoryUnknownClosingLine(t *testing.T) {
	c := NewClientWithGenerator(&fakeGenerator{out: "Análisis...\nNinguno de los anteriores"}, zerolog.Nop())

	_, suggested := c.AnalyzeClinicalHistory(context.Background(), "historia")
	if suggested != "" {
		t.Errorf("suggested = %q, want empty", suggested)
	}
}

func TestMatchSuggestedDilemmaOnlyChecksClosingLine(t *testing.T) {
	// A dilemma mentioned mid-analysis must not be mistaken for the
	// closing suggestion.
	out := "Se discute la Eutanasia y Muerte Digna en el contexto...\nSin sugerencia final"
	if got := matchSuggestedDilemma(out); got != "" {
		t.Errorf("matched %q from a non-closing line", got)
	}

	out = "Análisis extenso...\n\n" + casereview.Dilemmas[5]
	if got := matchSuggestedDilemma(out); got != casereview.Dilemmas[5] {
		t.Errorf("got %q, want %q", got, casereview.Dilemmas[5])
	}
}
