package planner

// PositionWrite moves every listed assignment to one position. Batch
// position rewrites are keyed by the new position so groups with one or two
// occupants are handled uniformly.
type PositionWrite struct {
	Position      int
	AssignmentIDs []uint
}

// SlotWrite rewrites one assignment's slot index (promotion).
type SlotWrite struct {
	AssignmentID uint
	SlotIndex    int
}

// DurationWrite sets the duration override on every listed assignment.
type DurationWrite struct {
	AssignmentIDs []uint
	Minutes       int
}

// Plan is the set of persisted writes a mutation needs. A plan is applied
// as a whole: if any write fails the caller rolls back its in-memory state
// and nothing is patched incrementally.
type Plan struct {
	Deletes   []uint
	Slots     []SlotWrite
	Positions []PositionWrite
	Durations []DurationWrite
}

// Empty reports whether the plan carries no writes.
func (p Plan) Empty() bool {
	return len(p.Deletes) == 0 && len(p.Slots) == 0 && len(p.Positions) == 0 && len(p.Durations) == 0
}
