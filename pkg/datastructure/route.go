package datastructure

import (
	"github.com/lintang-b-s/arterial/pkg"
)

// RouteLeg. one segment of a route with the prediction made at the hour it is entered
type RouteLeg struct {
	Segment     Segment             `json:"segment"`
	EnterHour   int                 `json:"enter_hour"`
	Minutes     float64             `json:"minutes"`
	Reliability float64             `json:"reliability"`
	Congestion  pkg.CongestionLevel `json:"congestion"`
}

func NewRouteLeg(seg Segment, enterHour int, minutes, reliability float64) RouteLeg {
	return RouteLeg{
		Segment:     seg,
		EnterHour:   enterHour,
		Minutes:     minutes,
		Reliability: reliability,
	}
}

// Route. result of a route search. an empty route (no legs, zero totals) means no path was found.
type Route struct {
	Legs         []RouteLeg          `json:"legs"`
	TotalMinutes float64             `json:"total_minutes"`
	Reliability  float64             `json:"reliability"`
	DistanceKm   float64             `json:"distance_km"`
	Congestion   pkg.CongestionLevel `json:"congestion"`
}

func NewEmptyRoute() *Route {
	return &Route{Legs: []RouteLeg{}}
}

// NewRoute. totals are the sum of leg minutes and the mean of leg reliabilities.
func NewRoute(legs []RouteLeg) *Route {
	if len(legs) == 0 {
		return NewEmptyRoute()
	}
	r := &Route{Legs: legs}
	for _, l := range legs {
		r.TotalMinutes += l.Minutes
		r.Reliability += l.Reliability
		r.DistanceKm += l.Segment.LengthKm
	}
	r.Reliability /= float64(len(legs))
	return r
}

func (r *Route) IsEmpty() bool {
	return len(r.Legs) == 0
}

func (r *Route) Segments() []Segment {
	segs := make([]Segment, len(r.Legs))
	for i, l := range r.Legs {
		segs[i] = l.Segment
	}
	return segs
}

// IsContiguous. end point of leg i equals start point of leg i+1
func (r *Route) IsContiguous() bool {
	for i := 1; i < len(r.Legs); i++ {
		if r.Legs[i-1].Segment.EndPoint != r.Legs[i].Segment.StartPoint {
			return false
		}
	}
	return true
}

// Geometry. concatenated geometry of all legs, shared vertices between legs kept once
func (r *Route) Geometry() []Coordinate {
	coords := make([]Coordinate, 0)
	for _, l := range r.Legs {
		for i, c := range l.Segment.Geometry {
			if i == 0 && len(coords) > 0 && coords[len(coords)-1] == c {
				continue
			}
			coords = append(coords, c)
		}
	}
	return coords
}
