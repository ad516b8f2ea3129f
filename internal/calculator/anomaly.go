package calculator

import (
	"math"

	"PaperDesk/internal/model"
)

// LorentzianAnomalies flags bars whose consecutive-return Lorentzian
// distance, ln(1 + (r[t] - r[t-1])^2), exceeds mean + 2*stddev of all
// distances (population stddev). A distance ends at the bar of its later
// return, so the first two bars are never flagged.
//
// With fewer than two return samples there are no distances and no
// threshold; the scan is reported as undefined.
func LorentzianAnomalies(bars []model.OHLCV) model.AnomalyScan {
	scan := model.AnomalyScan{
		Distances: make(model.Series, len(bars)),
		Flags:     make([]bool, len(bars)),
	}
	for i, b := range bars {
		scan.Distances[i] = model.Point{Time: b.Time}
	}
	if len(bars) < 3 {
		return scan
	}

	// Simple returns exist from bar 1; distances from bar 2.
	prevReturn := 0.0
	var sum, sumSq float64
	count := 0
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			return model.AnomalyScan{Distances: scan.Distances, Flags: scan.Flags}
		}
		r := bars[i].Close/prev - 1
		if i >= 2 {
			d := math.Log(1 + (r-prevReturn)*(r-prevReturn))
			scan.Distances[i] = model.Point{Time: bars[i].Time, Value: d, Valid: true}
			sum += d
			sumSq += d * d
			count++
		}
		prevReturn = r
	}

	n := float64(count)
	mean := sum / n
	// Population stddev: the threshold describes this sample, not an estimate.
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	scan.Threshold = mean + 2*math.Sqrt(variance)
	scan.Defined = true

	for i := range bars {
		if scan.Distances[i].Valid && scan.Distances[i].Value > scan.Threshold {
			scan.Flags[i] = true
		}
	}
	return scan
}
