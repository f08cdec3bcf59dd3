package text

import (
	"github.com/go-text/typesetting/di"
	"golang.org/x/text/unicode/bidi"
)

// run is a range of runes [start, end) with a single direction.
type run struct {
	start, end int
	dir        di.Direction
}

// bidiRuns splits one line into directional runs in logical order.
// Text without strong right-to-left characters is a single run.
func bidiRuns(line []rune) []run {
	if len(line) == 0 {
		return nil
	}
	whole := []run{{start: 0, end: len(line), dir: di.DirectionLTR}}
	if !hasRTL(line) {
		return whole
	}

	var p bidi.Paragraph
	if _, err := p.SetString(string(line), bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return whole
	}
	o, err := p.Order()
	if err != nil {
		return whole
	}

	runs := make([]run, 0, o.NumRuns())
	for i := range o.NumRuns() {
		r := o.Run(i)
		start, end := r.Pos()
		d := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			d = di.DirectionRTL
		}
		runs = append(runs, run{start: start, end: min(end+1, len(line)), dir: d})
	}
	return runs
}

func hasRTL(line []rune) bool {
	for _, r := range line {
		if p, _ := bidi.LookupRune(r); p.Class() == bidi.R || p.Class() == bidi.AL {
			return true
		}
	}
	return false
}
