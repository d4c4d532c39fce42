package fixgeom

// Turn is the orientation of an ordered point triple.
type Turn int8

const (
	Clockwise        Turn = -1
	Collinear        Turn = 0
	CounterClockwise Turn = 1
)

func (t Turn) String() string {
	switch t {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "collinear"
}

// Orientation reports whether r lies to the left of (counter-clockwise),
// right of (clockwise) or on the directed line p->q. The sign of the integer
// cross product is exact, so no tolerance is involved.
func Orientation(p, q, r Point) Turn {
	return Turn(Sign(Cross(q.Sub(p), r.Sub(p))))
}
