package charts

import (
	"encoding/json"
	"testing"

	"bioethicare/internal/casereview"
)

func samplePerspectives() casereview.Perspectives {
	return casereview.Perspectives{
		casereview.PerspectivaMedico:  {Autonomia: 5, Beneficencia: 5, NoMaleficencia: 5, Justicia: 5},
		casereview.PerspectivaFamilia: {},
		casereview.PerspectivaComite:  {Autonomia: 5, NoMaleficencia: 5},
	}
}

func TestRenderProducesBothPayloads(t *testing.T) {
	p := samplePerspectives()
	payloads := NewRenderer().Render(p, casereview.ComputeAggregates(p))

	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}
	for _, key := range []string{casereview.ChartRadarKey, casereview.ChartStatsKey} {
		if payloads[key] == "" {
			t.Errorf("missing payload %q", key)
		}
		if !json.Valid([]byte(payloads[key])) {
			t.Errorf("payload %q is not valid JSON", key)
		}
	}
}

func TestRadarPayloadHasOneTracePerStakeholder(t *testing.T) {
	p := samplePerspectives()
	payloads := NewRenderer().Render(p, casereview.ComputeAggregates(p))

	var fig figure
	if err := json.Unmarshal([]byte(payloads[casereview.ChartRadarKey]), &fig); err != nil {
		t.Fatalf("unmarshal radar: %v", err)
	}
	if len(fig.Data) != 3 {
		t.Fatalf("expected 3 traces, got %d", len(fig.Data))
	}
	for i, st := range casereview.Stakeholders {
		tr := fig.Data[i]
		if tr.Type != "scatterpolar" {
			t.Errorf("trace %d type = %q", i, tr.Type)
		}
		if tr.Name != casereview.StakeholderLabels[st] {
			t.Errorf("trace %d name = %q, want %q", i, tr.Name, casereview.StakeholderLabels[st])
		}
		if len(tr.R) != len(casereview.Principles) {
			t.Errorf("trace %d has %d values", i, len(tr.R))
		}
	}
	if fig.Data[0].R[0] != 5 {
		t.Errorf("medico autonomia = %d, want 5", fig.Data[0].R[0])
	}
}

func TestStatsPayloadCarriesMeansAndErrorBars(t *testing.T) {
	p := samplePerspectives()
	stats := casereview.ComputeAggregates(p)
	payloads := NewRenderer().Render(p, stats)

	var fig figure
	if err := json.Unmarshal([]byte(payloads[casereview.ChartStatsKey]), &fig); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if len(fig.Data) != 1 || fig.Data[0].Type != "bar" {
		t.Fatalf("unexpected traces: %+v", fig.Data)
	}

	tr := fig.Data[0]
	ordered := stats.Ordered()
	if len(tr.Y) != len(ordered) || tr.ErrorY == nil || len(tr.ErrorY.Array) != len(ordered) {
		t.Fatal("means/error bars incomplete")
	}
	for i, st := range ordered {
		if tr.Y[i] != st.Media {
			t.Errorf("mean[%d] = %v, want %v", i, tr.Y[i], st.Media)
		}
		if tr.ErrorY.Array[i] != st.DesviacionEstandar {
			t.Errorf("error bar[%d] = %v, want %v", i, tr.ErrorY.Array[i], st.DesviacionEstandar)
		}
	}
	if !tr.ErrorY.Visible {
		t.Error("error bars must be visible")
	}
}
