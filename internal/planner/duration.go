package planner

// SyncGroupDuration sets the duration override on every practice at the
// given position. Occupants of a group run concurrently, so they must
// report the same duration or total-session accounting double counts.
// Triggered when a simultaneous practice is added (seeded from the
// primary's effective duration) and when a user edits one occupant's
// duration.
func SyncGroupDuration(assignments []Assignment, position int, minutes int) ([]Assignment, Plan, error) {
	newList := cloneAssignments(assignments)

	var ids []uint
	for i := range newList {
		if newList[i].Position == position {
			d := minutes
			newList[i].Duration = &d
			ids = append(ids, newList[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil, Plan{}, ErrGroupMissing
	}

	plan := Plan{Durations: []DurationWrite{{AssignmentIDs: ids, Minutes: minutes}}}
	return newList, plan, nil
}
