package casereview

import "time"

// Principle names, in the order the aggregate statistics and the charts
// report them. The order is part of the contract.
const (
	PrincipioAutonomia      = "autonomia"
	PrincipioBeneficencia   = "beneficencia"
	PrincipioNoMaleficencia = "no_maleficencia"
	PrincipioJusticia       = "justicia"
)

// Principles lists the four bioethics principles in their fixed order.
var Principles = []string{
	PrincipioAutonomia,
	PrincipioBeneficencia,
	PrincipioNoMaleficencia,
	PrincipioJusticia,
}

// PrincipleLabels maps principle keys to their display names.
var PrincipleLabels = map[string]string{
	PrincipioAutonomia:      "Autonomía",
	PrincipioBeneficencia:   "Beneficencia",
	PrincipioNoMaleficencia: "No Maleficencia",
	PrincipioJusticia:       "Justicia",
}

// Stakeholder keys. Every case carries exactly one score set per stakeholder.
const (
	PerspectivaMedico  = "medico"
	PerspectivaFamilia = "familia"
	PerspectivaComite  = "comite"
)

// Stakeholders lists the three stakeholder groups in their fixed order.
var Stakeholders = []string{PerspectivaMedico, PerspectivaFamilia, PerspectivaComite}

// StakeholderLabels maps stakeholder keys to their display names.
var StakeholderLabels = map[string]string{
	PerspectivaMedico:  "Equipo Médico",
	PerspectivaFamilia: "Familia/Paciente",
	PerspectivaComite:  "Comité de Bioética",
}

// Dilemmas is the fixed catalog of ethical-dilemma categories. The first
// entry is the default when a submission carries none, so the declaration
// order must be preserved.
var Dilemmas = []string{
	"Dilemas Éticos en Neonatología",
	"Limitación del Esfuerzo Terapéutico (Adultos/Pediatría)",
	"Consentimiento Informado",
	"Confidencialidad y Manejo de Datos",
	"Cuidados Paliativos y Futilidad",
	"Eutanasia y Muerte Digna",
	"Asignación de Recursos Escasos",
	"Ética en la Genética y Medicina Predictiva",
	"Conflictos de Interés",
}

// Patient condition categories. Estable is the default.
const (
	CondicionEstable  = "Estable"
	CondicionCritico  = "Crítico"
	CondicionTerminal = "Terminal"
	CondicionNeonato  = "Neonato"
)

// Condiciones lists the condition categories in display order.
var Condiciones = []string{CondicionEstable, CondicionCritico, CondicionTerminal, CondicionNeonato}

// PerspectiveScores holds one stakeholder's weighting of the four
// principles. The form surface clamps values to [0,5]; out-of-range values
// are tolerated here and simply propagate into the aggregates.
type PerspectiveScores struct {
	Autonomia      int `json:"autonomia"`
	Beneficencia   int `json:"beneficencia"`
	NoMaleficencia int `json:"no_maleficencia"`
	Justicia       int `json:"justicia"`
}

// Score returns the value for the given principle key, 0 for unknown keys.
func (p PerspectiveScores) Score(principle string) int {
	switch principle {
	case PrincipioAutonomia:
		return p.Autonomia
	case PrincipioBeneficencia:
		return p.Beneficencia
	case PrincipioNoMaleficencia:
		return p.NoMaleficencia
	case PrincipioJusticia:
		return p.Justicia
	}
	return 0
}

// Perspectives maps stakeholder key to that group's scores. A built record
// always carries exactly one entry per stakeholder in Stakeholders.
type Perspectives map[string]PerspectiveScores

// CaseRecord is the canonical representation of one bioethics case under
// review. It is created once per submission and not mutated afterward; the
// deliberative analysis and the chat transcript live on the report document.
type CaseRecord struct {
	NombrePaciente          string       `json:"nombre_paciente"`
	HistoriaClinica         string       `json:"historia_clinica"`
	Edad                    int          `json:"edad"`
	Genero                  string       `json:"genero"`
	NombreAnalista          string       `json:"nombre_analista"`
	DilemaEtico             string       `json:"dilema_etico"`
	DescripcionCaso         string       `json:"descripcion_caso"`
	AntecedentesCulturales  string       `json:"antecedentes_culturales"`
	Condicion               string       `json:"condicion"`
	SemanasGestacion        int          `json:"semanas_gestacion"`
	PuntosClaveIA           string       `json:"puntos_clave_ia"`
	AnalisisHistoriaClinica string       `json:"ai_clinical_analysis_summary"`
	Perspectivas            Perspectives `json:"perspectivas"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one message of the deliberation chat. Turns are append-only
// and keep insertion order.
type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
