// Package plot turns a computed leverage series into the structured
// form a renderer consumes: aligned X/Y slices plus break-even labels
// for the secondary axis. Rendering itself (axes, layout) belongs to
// the presentation layer.
package plot

import (
	"fmt"

	"github.com/contactkeval/option-leverage/internal/leverage"
)

// Series is one plottable leverage curve. The slices are index-aligned:
// Strikes[i], Leverage[i], and BreakEvenLabels[i] describe the same
// row, as does Adjusted[i] when the adjusted curve is requested.
type Series struct {
	Strikes         []float64 `json:"strikes"`
	Leverage        []float64 `json:"leverage"`
	Adjusted        []float64 `json:"adjusted,omitempty"`
	BreakEvenLabels []string  `json:"break_even_labels"`

	// Skipped counts rows omitted because a required ratio was
	// undefined; renderers may surface it as a data-quality note.
	Skipped int `json:"skipped,omitempty"`
}

// Build assembles the plottable series from computed rows. Rows whose
// leverage ratio is undefined are omitted rather than plotted as
// non-finite values; when showAdjusted is set, rows with an undefined
// adjusted ratio are omitted too so the two curves stay aligned.
func Build(rows []leverage.Row, showAdjusted bool) Series {
	s := Series{
		Strikes:         []float64{},
		Leverage:        []float64{},
		BreakEvenLabels: []string{},
	}
	if showAdjusted {
		s.Adjusted = []float64{}
	}

	for _, row := range rows {
		lev, ok := row.Leverage.Value()
		if !ok {
			s.Skipped++
			continue
		}

		var adj float64
		if showAdjusted {
			adj, ok = row.Adjusted.Value()
			if !ok {
				s.Skipped++
				continue
			}
		}

		s.Strikes = append(s.Strikes, row.Strike)
		s.Leverage = append(s.Leverage, lev)
		if showAdjusted {
			s.Adjusted = append(s.Adjusted, adj)
		}
		s.BreakEvenLabels = append(s.BreakEvenLabels, fmt.Sprintf("%.1f", row.BreakEven))
	}

	return s
}
