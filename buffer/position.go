package buffer

import "fmt"

// Position is a location in the document. X is a display column, not a
// byte offset; Y is the row index. Positions order row-major: Y first,
// then X.
type Position struct {
	X int
	Y int
}

func Pos(x, y int) Position { return Position{X: x, Y: y} }

func (p Position) Less(q Position) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Position) LessEq(q Position) bool {
	return p == q || p.Less(q)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// SortPair returns the two positions in document order.
func SortPair(a, b Position) (Position, Position) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}
