package heuristic

import "github.com/matzehuels/gridlock/pkg/puzzle"

// intersects reports whether vehicle i currently sits on v's lane of travel.
// Parallel vehicles intersect when they share a lane; perpendicular ones when
// v's lane crosses i's span [iStart, iEnd).
func intersects(vOrient, iOrient puzzle.Orientation, vFixed, iFixed, iStart, iEnd int) bool {
	if vOrient == iOrient {
		return vFixed == iFixed
	}
	return vFixed >= iStart && vFixed < iEnd
}

// isBehind reports whether intersecting vehicle i lies on v's back side.
func isBehind(vOrient, iOrient puzzle.Orientation, iFixed, iStart, iLength, vStart, vLength int) bool {
	if vOrient == iOrient {
		return iStart+iLength < vStart
	}
	return iFixed < vStart+vLength
}
