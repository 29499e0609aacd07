// Package charts produces the two chart payloads of a case dashboard as
// plotly figure JSON. Downstream consumers (web dashboard, document store)
// treat the payloads as opaque strings; only the interactive front end ever
// parses them.
package charts

import (
	"encoding/json"

	"bioethicare/internal/casereview"
)

var traceColors = map[string]string{
	casereview.PerspectivaMedico:  "rgba(239, 68, 68, 0.7)",
	casereview.PerspectivaFamilia: "rgba(59, 130, 246, 0.7)",
	casereview.PerspectivaComite:  "rgba(34, 197, 94, 0.7)",
}

const barColor = "#636EFA"

type figure struct {
	Data   []trace `json:"data"`
	Layout layout  `json:"layout"`
}

type trace struct {
	Type   string    `json:"type"`
	R      []int     `json:"r,omitempty"`
	Theta  []string  `json:"theta,omitempty"`
	Fill   string    `json:"fill,omitempty"`
	Name   string    `json:"name,omitempty"`
	Line   *line     `json:"line,omitempty"`
	X      []string  `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	ErrorY *errorY   `json:"error_y,omitempty"`
	Marker *marker   `json:"marker,omitempty"`
}

type line struct {
	Color string `json:"color"`
}

type marker struct {
	Color string `json:"color"`
}

type errorY struct {
	Type    string    `json:"type"`
	Array   []float64 `json:"array"`
	Visible bool      `json:"visible"`
}

type layout struct {
	Title      string `json:"title"`
	Polar      *polar `json:"polar,omitempty"`
	YAxis      *axis  `json:"yaxis,omitempty"`
	ShowLegend bool   `json:"showlegend"`
	Font       *font  `json:"font,omitempty"`
}

type font struct {
	Size int `json:"size"`
}

type polar struct {
	RadialAxis axis `json:"radialaxis"`
}

type axis struct {
	Visible bool      `json:"visible,omitempty"`
	Range   []float64 `json:"range,omitempty"`
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the comparative radar and the consensus/dissent bar chart
// for one case and returns them serialized, keyed by the contract keys.
func (r *Renderer) Render(p casereview.Perspectives, stats casereview.AggregateStatistics) map[string]string {
	labels := make([]string, 0, len(casereview.Principles))
	for _, pr := range casereview.Principles {
		labels = append(labels, casereview.PrincipleLabels[pr])
	}

	return map[string]string{
		casereview.ChartRadarKey: marshalFigure(radarFigure(p, labels)),
		casereview.ChartStatsKey: marshalFigure(statsFigure(stats, labels)),
	}
}

func radarFigure(p casereview.Perspectives, labels []string) figure {
	traces := make([]trace, 0, len(casereview.Stakeholders))
	for _, st := range casereview.Stakeholders {
		scores := p[st]
		values := make([]int, 0, len(casereview.Principles))
		for _, pr := range casereview.Principles {
			values = append(values, scores.Score(pr))
		}
		traces = append(traces, trace{
			Type:  "scatterpolar",
			R:     values,
			Theta: labels,
			Fill:  "toself",
			Name:  casereview.StakeholderLabels[st],
			Line:  &line{Color: traceColors[st]},
		})
	}

	return figure{
		Data: traces,
		Layout: layout{
			Title:      "Ponderación por Perspectiva",
			Polar:      &polar{RadialAxis: axis{Visible: true, Range: []float64{0, 5}}},
			ShowLegend: true,
			Font:       &font{Size: 14},
		},
	}
}

func statsFigure(stats casereview.AggregateStatistics, labels []string) figure {
	ordered := stats.Ordered()
	means := make([]float64, 0, len(ordered))
	devs := make([]float64, 0, len(ordered))
	for _, st := range ordered {
		means = append(means, st.Media)
		devs = append(devs, st.DesviacionEstandar)
	}

	return figure{
		Data: []trace{{
			Type:   "bar",
			X:      labels,
			Y:      means,
			ErrorY: &errorY{Type: "data", Array: devs, Visible: true},
			Marker: &marker{Color: barColor},
		}},
		Layout: layout{
			Title:    "Análisis de Consenso y Disenso",
			YAxis: &axis{Range: []float64{0, 6}},
			Font:  &font{Size: 14},
		},
	}
}

func marshalFigure(f figure) string {
	raw, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return string(raw)
}
