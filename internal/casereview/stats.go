package casereview

import "math"

// PrincipleStat is the consensus/dissent view of one principle across the
// three stakeholder groups.
type PrincipleStat struct {
	Media              float64 `json:"media"`
	DesviacionEstandar float64 `json:"desviacion_estandar"`
}

// AggregateStatistics carries one PrincipleStat per principle, in the fixed
// principle order. It is a pure projection over the perspective scores and
// is recomputed on demand, never treated as authoritative state.
type AggregateStatistics struct {
	Autonomia      PrincipleStat `json:"autonomia"`
	Beneficencia   PrincipleStat `json:"beneficencia"`
	NoMaleficencia PrincipleStat `json:"no_maleficencia"`
	Justicia       PrincipleStat `json:"justicia"`
}

// Ordered returns the per-principle stats in the Principles order.
func (a AggregateStatistics) Ordered() []PrincipleStat {
	return []PrincipleStat{a.Autonomia, a.Beneficencia, a.NoMaleficencia, a.Justicia}
}

// ComputeAggregates derives, for each principle, the arithmetic mean and the
// population standard deviation (divisor N=3, not N-1: the three stakeholder
// groups are the full population, not a sample) across the three groups.
// It always succeeds; out-of-range scores simply propagate.
func ComputeAggregates(p Perspectives) AggregateStatistics {
	return AggregateStatistics{
		Autonomia:      principleStat(p, PrincipioAutonomia),
		Beneficencia:   principleStat(p, PrincipioBeneficencia),
		NoMaleficencia: principleStat(p, PrincipioNoMaleficencia),
		Justicia:       principleStat(p, PrincipioJusticia),
	}
}

func principleStat(p Perspectives, principle string) PrincipleStat {
	n := float64(len(Stakeholders))

	var sum float64
	for _, st := range Stakeholders {
		sum += float64(p[st].Score(principle))
	}
	mean := sum / n

	var sq float64
	for _, st := range Stakeholders {
		d := float64(p[st].Score(principle)) - mean
		sq += d * d
	}

	return PrincipleStat{Media: mean, DesviacionEstandar: math.Sqrt(sq / n)}
}
