package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"bioethicare/internal/casereview"
)

// fontOrSkip returns a usable TTF path or skips the test on hosts without
// one installed.
func fontOrSkip(t *testing.T) string {
	t.Helper()
	for _, path := range defaultFontPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("no TTF font available on this host")
	return ""
}

func sampleDocument() *casereview.Document {
	rec := casereview.Build(casereview.Fields{
		"historia_clinica": "HC-30",
		"nombre_paciente":  "Ana",
		"edad":             30,
		"genero":           "Femenino",
		"descripcion_caso": "Descripción del caso de prueba.",
	})
	doc := casereview.AssembleDocument(rec, casereview.ComputeAggregates(rec.Perspectivas), "", nil, map[string]string{
		casereview.ChartRadarKey: `{"data":[]}`,
		casereview.ChartStatsKey: `{"data":[]}`,
	})
	doc.SetDeliberativeAnalysis("Análisis deliberativo de prueba.")
	doc.AppendChatTurn(casereview.RoleUser, "¿Pregunta?")
	doc.AppendChatTurn(casereview.RoleAssistant, "Respuesta.")
	return doc
}

func TestExportProducesPDF(t *testing.T) {
	svc := NewService(fontOrSkip(t), zerolog.Nop())

	data, err := svc.Export(sampleDocument())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(8, len(data))])
	}
}

func TestExportSkipsEmptyFields(t *testing.T) {
	svc := NewService(fontOrSkip(t), zerolog.Nop())

	doc := sampleDocument()
	doc.DilemaSugeridoIA = ""
	doc.ContextoSociocultural = ""
	doc.Chat = nil

	if _, err := svc.Export(doc); err != nil {
		t.Fatalf("Export with empty fields: %v", err)
	}
}

func TestExportFailsWithoutFont(t *testing.T) {
	svc := &Service{fontPath: "/nonexistent/font.ttf", logger: zerolog.Nop()}
	// Bypass system fallbacks to force the error path.
	orig := defaultFontPaths
	defaultFontPaths = nil
	defer func() { defaultFontPaths = orig }()

	if _, err := svc.Export(sampleDocument()); err == nil {
		t.Fatal("expected a font-loading error")
	}
}
