// Package report renders a case report document into a paginated PDF. The
// export covers the labeled fields, the multiperspective score block and the
// chat transcript in their fixed order; the chart payloads are deliberately
// left out and shown only in the interactive view.
package report

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"

	"bioethicare/internal/casereview"
)

const (
	pageTitle = "Reporte Deliberativo - BIOETHICARE 360"
	wrapWidth = 500
)

// Fallback font locations when none is configured.
var defaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

type Service struct {
	fontPath string
	logger   zerolog.Logger
}

func NewService(fontPath string, logger zerolog.Logger) *Service {
	return &Service{
		fontPath: fontPath,
		logger:   logger.With().Str("component", "report").Logger(),
	}
}

// Export renders the document. Field order matches the dashboard and the
// persisted document exactly; empty fields are skipped.
func (s *Service) Export(doc *casereview.Document) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := s.loadFont(&pdf); err != nil {
		return nil, err
	}

	if err := pdf.SetFont("Report", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, pageTitle)
	pdf.Br(30)

	sections := []struct {
		label string
		value string
	}{
		{"ID del Caso", doc.CaseID},
		{"Fecha Análisis", doc.FechaAnalisis},
		{"Analista", doc.Analista},
		{"Resumen del Paciente", doc.ResumenPaciente},
		{"Dilema Ético Principal (Seleccionado)", doc.DilemaSeleccionado},
		{"Dilema Sugerido por IA", doc.DilemaSugeridoIA},
		{"Descripción Detallada del Caso", doc.Descripcion},
		{"Contexto Sociocultural y Familiar", doc.ContextoSociocultural},
		{"Puntos Clave para Deliberación IA", doc.PuntosClave},
		{"Análisis IA de Historia Clínica", doc.AnalisisHistoriaClinica},
	}
	for _, sec := range sections {
		if sec.value == "" {
			continue
		}
		if err := s.section(&pdf, sec.label, sec.value); err != nil {
			return nil, err
		}
	}

	if err := s.heading(&pdf, "Análisis Multiperspectiva"); err != nil {
		return nil, err
	}
	for _, st := range casereview.Stakeholders {
		label := casereview.StakeholderLabels[st]
		v := doc.Multiperspectiva[label]
		line := fmt.Sprintf("%s: Autonomía: %d, Beneficencia: %d, No Maleficencia: %d, Justicia: %d",
			label, v.Autonomia, v.Beneficencia, v.NoMaleficencia, v.Justicia)
		if err := s.body(&pdf, line); err != nil {
			return nil, err
		}
	}
	pdf.Br(10)

	if doc.AnalisisDeliberativo != "" {
		if err := s.section(&pdf, "Análisis Deliberativo (IA)", doc.AnalisisDeliberativo); err != nil {
			return nil, err
		}
	}

	pdf.AddPage()
	if err := pdf.SetFont("Report", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Visualizaciones de Datos")
	pdf.Br(25)
	if err := s.body(&pdf, "Los gráficos de radar y consenso/disenso se muestran de forma interactiva en la aplicación web."); err != nil {
		return nil, err
	}

	if len(doc.Chat) > 0 {
		pdf.AddPage()
		if err := pdf.SetFont("Report", "", 18); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Historial del Chat de Deliberación")
		pdf.Br(25)
		for _, turn := range doc.Chat {
			role := "Usuario"
			if turn.Role == casereview.RoleAssistant {
				role = "Asistente IA"
			}
			if err := s.body(&pdf, fmt.Sprintf("%s: %s", role, turn.Content)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	s.logger.Info().Str("case_id", doc.CaseID).Int("bytes", buf.Len()).Msg("PDF report generated")
	return buf.Bytes(), nil
}

// loadFont registers a TTF with accented-character coverage, preferring the
// configured path and falling back to common system locations.
func (s *Service) loadFont(pdf *gopdf.GoPdf) error {
	paths := defaultFontPaths
	if s.fontPath != "" {
		paths = append([]string{s.fontPath}, paths...)
	}

	var lastErr error
	for _, path := range paths {
		if err := pdf.AddTTFFont("Report", path); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("failed to load a PDF font (set PDF_FONT_PATH or install ttf-dejavu): %w", lastErr)
}

func (s *Service) heading(pdf *gopdf.GoPdf, text string) error {
	if err := pdf.SetFont("Report", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, text)
	pdf.Br(15)
	return nil
}

func (s *Service) body(pdf *gopdf.GoPdf, text string) error {
	if err := pdf.SetFont("Report", "", 11); err != nil {
		return err
	}
	lines, _ := pdf.SplitText(text, wrapWidth)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
	pdf.Br(5)
	return nil
}

func (s *Service) section(pdf *gopdf.GoPdf, label, value string) error {
	if err := s.heading(pdf, label); err != nil {
		return err
	}
	return s.body(pdf, value)
}
