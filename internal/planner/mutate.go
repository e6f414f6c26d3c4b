package planner

// CanAddSimultaneous checks the add-simultaneous precondition: the target
// group must exist and currently hold exactly one practice. Violations are
// reported before any write happens.
func CanAddSimultaneous(assignments []Assignment, position int) error {
	count := 0
	for _, a := range assignments {
		if a.Position == position {
			count++
		}
	}
	switch {
	case count == 0:
		return ErrGroupMissing
	case count >= 2:
		return ErrGroupFull
	default:
		return nil
	}
}

// RemoveFromGroup removes one assignment and repairs slot legality and
// position contiguity. Three cases:
//
//  1. removing slot 1: plain delete, the group keeps its position;
//  2. removing slot 0 with a slot-1 sibling: delete plus promotion of the
//     sibling to slot 0, the group keeps its position;
//  3. removing a sole occupant: the group vanishes and every group after it
//     shifts down one position.
//
// Returns the new flat list and the write plan. ErrNotFound when the
// assignment is not in the list; nothing is emitted speculatively.
func RemoveFromGroup(assignments []Assignment, assignmentID uint) ([]Assignment, Plan, error) {
	removedIdx := -1
	for i, a := range assignments {
		if a.ID == assignmentID {
			removedIdx = i
			break
		}
	}
	if removedIdx == -1 {
		return nil, Plan{}, ErrNotFound
	}

	removed := assignments[removedIdx]
	rest := make([]Assignment, 0, len(assignments)-1)
	rest = append(rest, assignments[:removedIdx]...)
	rest = append(rest, assignments[removedIdx+1:]...)

	plan := Plan{Deletes: []uint{removed.ID}}

	if removed.SlotIndex == 1 {
		return rest, plan, nil
	}

	// Removing the primary: promote the sibling if there is one.
	siblingIdx := -1
	for i, a := range rest {
		if a.Position == removed.Position && a.SlotIndex == 1 {
			siblingIdx = i
			break
		}
	}
	if siblingIdx >= 0 {
		rest[siblingIdx].SlotIndex = 0
		plan.Slots = append(plan.Slots, SlotWrite{AssignmentID: rest[siblingIdx].ID, SlotIndex: 0})
		return rest, plan, nil
	}

	// Sole occupant removed: close the gap. Recompute groups from the
	// post-removal set and write new positions for every shifted group.
	for i := range rest {
		if rest[i].Position > removed.Position {
			rest[i].Position--
		}
	}
	for _, g := range GroupByPosition(rest) {
		if g.Position < removed.Position {
			continue
		}
		write := PositionWrite{Position: g.Position}
		for _, a := range g.Practices {
			write.AssignmentIDs = append(write.AssignmentIDs, a.ID)
		}
		plan.Positions = append(plan.Positions, write)
	}
	return rest, plan, nil
}

// Reorder relocates the group at fromIndex to toIndex (single-element array
// move) and then rewrites position = array index for every assignment in
// every group. The rewrite is deliberately total rather than a delta: an
// array move can shift an arbitrary span of groups.
//
// fromIndex == toIndex is a no-op with an empty plan. An out-of-range index
// is rejected with ErrIndexOutOfRange before any write.
func Reorder(assignments []Assignment, fromIndex, toIndex int) ([]Assignment, Plan, error) {
	groups := GroupByPosition(assignments)
	if fromIndex < 0 || fromIndex >= len(groups) || toIndex < 0 || toIndex >= len(groups) {
		return nil, Plan{}, ErrIndexOutOfRange
	}
	if fromIndex == toIndex {
		return cloneAssignments(assignments), Plan{}, nil
	}

	moved := groups[fromIndex]
	groups = append(groups[:fromIndex], groups[fromIndex+1:]...)
	groups = append(groups[:toIndex], append([]Group{moved}, groups[toIndex:]...)...)

	var newList []Assignment
	var plan Plan
	for idx, g := range groups {
		write := PositionWrite{Position: idx}
		for _, a := range g.Practices {
			a.Position = idx
			newList = append(newList, a)
			write.AssignmentIDs = append(write.AssignmentIDs, a.ID)
		}
		plan.Positions = append(plan.Positions, write)
	}
	return newList, plan, nil
}
