package model

import "time"

// Point is one sample of a derived indicator series. Valid is false for
// entries inside the lookback window, where the value is undefined.
type Point struct {
	Time  time.Time
	Value float64
	Valid bool
}

// Series is an indicator series aligned 1:1 with the bar series it was
// computed from.
type Series []Point

// Last returns the most recent valid point, or false if none exists.
func (s Series) Last() (Point, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Valid {
			return s[i], true
		}
	}
	return Point{}, false
}

// ValidCount returns the number of defined points.
func (s Series) ValidCount() int {
	n := 0
	for _, p := range s {
		if p.Valid {
			n++
		}
	}
	return n
}
