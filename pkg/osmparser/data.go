package osmparser

import (
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
)

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

// arterialWay. an accepted osm way reduced to what segment extraction needs
type arterialWay struct {
	id       int64
	name     string
	highway  string
	nodes    []int64
	forward  bool
	backward bool
}

type node struct {
	id    int64
	coord da.Coordinate
}

var (
	// arterial road classes, smaller streets are not modelled
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
	}
)
