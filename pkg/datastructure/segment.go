package datastructure

import (
	"strings"

	"github.com/lintang-b-s/arterial/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

// Segment. a directed named road link ("axe") between two labelled points.
// Name is a display string and is not unique.
type Segment struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	StartPoint string       `json:"start_point"`
	EndPoint   string       `json:"end_point"`
	LengthKm   float64      `json:"length_km"`
	Geometry   []Coordinate `json:"geometry,omitempty"`
}

func NewSegment(id int64, name, startPoint, endPoint string, lengthKm float64,
	geometry []Coordinate) Segment {
	return Segment{
		ID:         id,
		Name:       name,
		StartPoint: startPoint,
		EndPoint:   endPoint,
		LengthKm:   lengthKm,
		Geometry:   geometry,
	}
}

// Validate. checks the fields every store must enforce before accepting a segment.
func (s Segment) Validate() error {
	if strings.TrimSpace(s.StartPoint) == "" || strings.TrimSpace(s.EndPoint) == "" {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "segment %d: start and end point are required", s.ID)
	}
	if s.LengthKm < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "segment %d: length must be non-negative, got %f",
			s.ID, s.LengthKm)
	}
	return nil
}

// FirstCoordinate. first vertex of the geometry, ok == false for segments without geometry
func (s Segment) FirstCoordinate() (Coordinate, bool) {
	if len(s.Geometry) == 0 {
		return Coordinate{}, false
	}
	return s.Geometry[0], true
}

func (s Segment) LastCoordinate() (Coordinate, bool) {
	if len(s.Geometry) == 0 {
		return Coordinate{}, false
	}
	return s.Geometry[len(s.Geometry)-1], true
}
