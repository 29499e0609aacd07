package casereview

import (
	"fmt"
	"time"
)

// Fields is the flat form-input boundary: field name to raw value, no schema
// enforced upstream. Absence of any key is valid.
type Fields map[string]any

// generatedIDPrefix is prepended to the Unix timestamp when a submission
// carries no case identifier. Two records built within the same second
// without explicit identifiers will collide; explicit identifiers are
// expected in normal operation.
const generatedIDPrefix = "caso_"

// Build assembles a canonical CaseRecord from raw keyed input. It is total:
// malformed or missing input degrades to the documented defaults and never
// produces an error.
func Build(fields Fields) CaseRecord {
	rec := CaseRecord{
		NombrePaciente:          CoerceText(fields["nombre_paciente"], "N/A"),
		HistoriaClinica:         CoerceText(fields["historia_clinica"], ""),
		Edad:                    nonNegative(CoerceInt(fields["edad"], 0)),
		Genero:                  CoerceText(fields["genero"], "N/A"),
		NombreAnalista:          CoerceText(fields["nombre_analista"], "N/A"),
		DilemaEtico:             CoerceText(fields["dilema_etico"], ""),
		DescripcionCaso:         CoerceText(fields["descripcion_caso"], ""),
		AntecedentesCulturales:  CoerceText(fields["antecedentes_culturales"], ""),
		Condicion:               CoerceText(fields["condicion"], ""),
		SemanasGestacion:        nonNegative(CoerceInt(fields["semanas_gestacion"], 0)),
		PuntosClaveIA:           CoerceText(fields["puntos_clave_ia"], ""),
		AnalisisHistoriaClinica: CoerceText(fields["ai_clinical_analysis_summary"], ""),
	}

	if rec.HistoriaClinica == "" {
		rec.HistoriaClinica = fmt.Sprintf("%s%d", generatedIDPrefix, time.Now().Unix())
	}
	if rec.DilemaEtico == "" {
		rec.DilemaEtico = Dilemmas[0]
	}
	if rec.Condicion == "" {
		rec.Condicion = CondicionEstable
	}

	rec.Perspectivas = buildPerspectives(fields)
	return rec
}

// buildPerspectives prefers an explicit nested "perspectivas" value
// (stakeholder -> principle -> score) when the form layer supplies one, and
// falls back to the flat nivel_{principio}_{perspectiva} key convention.
// Either way the result carries exactly one entry per stakeholder; missing
// input yields all-zero scores.
func buildPerspectives(fields Fields) Perspectives {
	nested, _ := fields["perspectivas"].(map[string]any)

	p := make(Perspectives, len(Stakeholders))
	for _, st := range Stakeholders {
		if nested != nil {
			group, _ := nested[st].(map[string]any)
			p[st] = PerspectiveScores{
				Autonomia:      CoerceInt(group[PrincipioAutonomia], 0),
				Beneficencia:   CoerceInt(group[PrincipioBeneficencia], 0),
				NoMaleficencia: CoerceInt(group[PrincipioNoMaleficencia], 0),
				Justicia:       CoerceInt(group[PrincipioJusticia], 0),
			}
			continue
		}
		p[st] = PerspectiveScores{
			Autonomia:      CoerceInt(fields["nivel_autonomia_"+st], 0),
			Beneficencia:   CoerceInt(fields["nivel_beneficencia_"+st], 0),
			NoMaleficencia: CoerceInt(fields["nivel_no_maleficencia_"+st], 0),
			Justicia:       CoerceInt(fields["nivel_justicia_"+st], 0),
		}
	}
	return p
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
