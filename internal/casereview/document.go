package casereview

import (
	"fmt"
	"time"
)

// Chart payload keys the chart renderer must use.
const (
	ChartRadarKey = "radar_comparativo_json"
	ChartStatsKey = "estadisticas_json"
)

// Document is the exportable/persistable report for one case. Its JSON keys
// are the presentation labels consumed by the web dashboard, the PDF export
// and the AI prompt builder, so they are part of the serialization contract
// and must not change.
//
// Only AnalisisDeliberativo and Chat are mutated after assembly; every other
// field is written once.
type Document struct {
	CaseID                  string                       `json:"ID del Caso"`
	FechaAnalisis           string                       `json:"Fecha Análisis"`
	Analista                string                       `json:"Analista"`
	ResumenPaciente         string                       `json:"Resumen del Paciente"`
	DilemaSeleccionado      string                       `json:"Dilema Ético Principal (Seleccionado)"`
	DilemaSugeridoIA        string                       `json:"Dilema Sugerido por IA"`
	Descripcion             string                       `json:"Descripción Detallada del Caso"`
	ContextoSociocultural   string                       `json:"Contexto Sociocultural y Familiar"`
	PuntosClave             string                       `json:"Puntos Clave para Deliberación IA"`
	AnalisisHistoriaClinica string                       `json:"Análisis IA de Historia Clínica"`
	Multiperspectiva        map[string]PerspectiveScores `json:"AnalisisMultiperspectiva"`
	Estadisticas            AggregateStatistics          `json:"EstadisticasPrincipios"`
	AnalisisDeliberativo    string                       `json:"Análisis Deliberativo (IA)"`
	Chat                    []ChatTurn                   `json:"Historial del Chat de Deliberación"`
	RadarChartJSON          string                       `json:"radar_chart_json"`
	StatsChartJSON          string                       `json:"stats_chart_json"`
}

// PatientSummary composes the human-readable one-line patient summary. The
// gestational clause is appended only when gestational weeks > 0.
func PatientSummary(rec CaseRecord) string {
	s := fmt.Sprintf("Paciente %s, %d años, género %s, condición %s.",
		rec.NombrePaciente, rec.Edad, rec.Genero, rec.Condicion)
	if rec.SemanasGestacion > 0 {
		s += fmt.Sprintf(" Neonato de %d sem.", rec.SemanasGestacion)
	}
	return s
}

// AssembleDocument builds the report document from a case record, its
// derived statistics, the AI-suggested dilemma (may be empty and is stored
// as-is, not validated against the dilemma catalog), the chat history so
// far, and the opaque chart payloads. The chart payloads pass through
// unchanged; their contents are never inspected here. The deliberative
// analysis starts empty. Pure construction, no side effects.
func AssembleDocument(rec CaseRecord, stats AggregateStatistics, suggestedDilemma string, chat []ChatTurn, chartPayloads map[string]string) *Document {
	multi := make(map[string]PerspectiveScores, len(Stakeholders))
	for _, st := range Stakeholders {
		multi[StakeholderLabels[st]] = rec.Perspectivas[st]
	}

	if chat == nil {
		chat = []ChatTurn{}
	}

	return &Document{
		CaseID:                  rec.HistoriaClinica,
		FechaAnalisis:           time.Now().Format("2006-01-02 15:04:05"),
		Analista:                rec.NombreAnalista,
		ResumenPaciente:         PatientSummary(rec),
		DilemaSeleccionado:      rec.DilemaEtico,
		DilemaSugeridoIA:        suggestedDilemma,
		Descripcion:             rec.DescripcionCaso,
		ContextoSociocultural:   rec.AntecedentesCulturales,
		PuntosClave:             rec.PuntosClaveIA,
		AnalisisHistoriaClinica: rec.AnalisisHistoriaClinica,
		Multiperspectiva:        multi,
		Estadisticas:            stats,
		AnalisisDeliberativo:    "",
		Chat:                    chat,
		RadarChartJSON:          chartPayloads[ChartRadarKey],
		StatsChartJSON:          chartPayloads[ChartStatsKey],
	}
}

// SetDeliberativeAnalysis overwrites the deliberative-analysis field. The
// caller must persist the change afterward.
func (d *Document) SetDeliberativeAnalysis(text string) {
	d.AnalisisDeliberativo = text
}

// AppendChatTurn appends one turn, preserving insertion order. The caller
// must persist the change afterward.
func (d *Document) AppendChatTurn(role, content string) ChatTurn {
	turn := ChatTurn{Role: role, Content: content, Timestamp: time.Now()}
	d.Chat = append(d.Chat, turn)
	return turn
}
