package laps

import (
	"fmt"

	"github.com/joseph-ayodele/lap-analysis/constants"
)

// LapState is the lap currently being filled while scanning.
type LapState struct {
	Number int // 0 before the first lap opens
	Rows   int
	riders map[string]struct{}
}

// Has reports whether rider already has a row in this lap.
func (l LapState) Has(rider string) bool {
	_, ok := l.riders[rider]
	return ok
}

// BoundaryPolicy decides whether a row opens a new lap. It is asked once per
// row, in document order, before the row is added to the current lap.
type BoundaryPolicy interface {
	Opens(row Row, current LapState) bool
}

// BoundaryFunc adapts a function to BoundaryPolicy.
type BoundaryFunc func(row Row, current LapState) bool

func (f BoundaryFunc) Opens(row Row, current LapState) bool { return f(row, current) }

// LeaderRow opens a lap on every row without a gap. Only the lap leader's
// row has no gap, so a tie with the leader is read as a new lap.
var LeaderRow BoundaryPolicy = BoundaryFunc(func(row Row, _ LapState) bool {
	return row.Gap == ""
})

// RiderRepeat opens a lap when nothing is open yet or when the rider already
// has a row in the current lap. Gaps are ignored, so ties stay in one lap.
var RiderRepeat BoundaryPolicy = BoundaryFunc(func(row Row, current LapState) bool {
	return current.Number == 0 || current.Has(row.RiderID)
})

// BoundaryByName maps configuration names to policies.
func BoundaryByName(name string) (BoundaryPolicy, error) {
	switch name {
	case "", constants.BoundaryLeaderRow:
		return LeaderRow, nil
	case constants.BoundaryRiderRepeat:
		return RiderRepeat, nil
	}
	return nil, fmt.Errorf("unknown lap boundary policy %q", name)
}
