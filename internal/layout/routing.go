package layout

import "github.com/alexanderramin/horae/internal/domain"

// MaxDependencyPairs caps the visible connector set so a pathological
// dependency graph cannot stall rendering. Pairs beyond the cap are
// dropped, not an error.
const MaxDependencyPairs = 2500

// Pair is one visible finish-to-start edge.
type Pair struct {
	PredecessorID string
	SuccessorID   string
}

// VisiblePairs collects (predecessor, successor) pairs where both ends
// are currently visible. Self-references and dangling ids never appear
// because dependencies are read through LiveDependencies.
func VisiblePairs(doc *domain.ScheduleDocument, visible map[string]bool) []Pair {
	var pairs []Pair
	for _, item := range doc.Items {
		if !visible[item.ID] {
			continue
		}
		for _, dep := range doc.LiveDependencies(item) {
			if !visible[dep] {
				continue
			}
			if len(pairs) >= MaxDependencyPairs {
				return pairs
			}
			pairs = append(pairs, Pair{PredecessorID: dep, SuccessorID: item.ID})
		}
	}
	return pairs
}

// Point is a vertex of a routed connector, in content coordinates.
type Point struct {
	X, Y int
}

// Path is one routed connector: anchor points at the predecessor's
// right edge and the successor's left edge, an orthogonal point list,
// and the arrowhead direction at the successor (+1 pointing right,
// -1 pointing left for edges that run backward in time).
type Path struct {
	Pair
	X1, Y1 int
	X2, Y2 int
	Points []Point
	Arrow  int
}

// Rect is a rectangle in content coordinates, used for offscreen culling.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// RoutePaths computes orthogonal connector routes for the given pairs.
// boxes holds content-absolute item boxes (phase offsets and scroll
// already applied); pairs with a missing box are skipped, as are pairs
// whose anchors both fall outside bounds.
func RoutePaths(pairs []Pair, boxes map[string]Box, bounds Rect, stub int) []Path {
	var paths []Path
	for _, pair := range pairs {
		pred, ok := boxes[pair.PredecessorID]
		if !ok {
			continue
		}
		succ, ok := boxes[pair.SuccessorID]
		if !ok {
			continue
		}

		x1 := pred.X + pred.W
		y1 := pred.Y + pred.H/2
		x2 := succ.X
		y2 := succ.Y + succ.H/2

		if !bounds.contains(x1, y1) && !bounds.contains(x2, y2) {
			continue
		}

		elbow := x1 + stub
		arrow := 1
		if x2 < elbow {
			arrow = -1
		}

		paths = append(paths, Path{
			Pair: pair,
			X1:   x1, Y1: y1,
			X2: x2, Y2: y2,
			Points: []Point{
				{x1, y1},
				{elbow, y1},
				{elbow, y2},
				{x2, y2},
			},
			Arrow: arrow,
		})
	}
	return paths
}
