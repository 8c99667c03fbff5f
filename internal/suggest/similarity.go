package suggest

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Metric scores the similarity of two strings in [0, 1]. The concrete
// algorithm is an implementation detail behind this seam.
type Metric interface {
	Ratio(a, b string) float64
}

type diceMetric struct {
	m *metrics.SorensenDice
}

// NewMetric returns the default bigram-overlap metric.
func NewMetric() Metric {
	m := metrics.NewSorensenDice()
	m.CaseSensitive = false
	return &diceMetric{m: m}
}

func (d *diceMetric) Ratio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}
	return strutil.Similarity(a, b, d.m)
}
