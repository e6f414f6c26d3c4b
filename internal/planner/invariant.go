package planner

import "fmt"

// CheckInvariants validates the structural rules the engine maintains:
// contiguous positions 0..N-1, one or two practices per position with slot
// set {0} or {0,1}, and equal effective durations within a group. Used by
// tests and as a debugging aid; mutations are written so it always passes
// after they return.
func CheckInvariants(assignments []Assignment) error {
	groups := GroupByPosition(assignments)

	for idx, g := range groups {
		if g.Position != idx {
			return fmt.Errorf("positions not contiguous: group %d has position %d", idx, g.Position)
		}

		switch len(g.Practices) {
		case 1:
			if g.Practices[0].SlotIndex != 0 {
				return fmt.Errorf("position %d: sole practice has slot %d, want 0", g.Position, g.Practices[0].SlotIndex)
			}
		case 2:
			if g.Practices[0].SlotIndex != 0 || g.Practices[1].SlotIndex != 1 {
				return fmt.Errorf("position %d: slot indices are {%d,%d}, want {0,1}",
					g.Position, g.Practices[0].SlotIndex, g.Practices[1].SlotIndex)
			}
			// Nil means unspecified and is never propagated, so only two
			// explicit values can disagree.
			a, b := g.Practices[0].EffectiveDuration(), g.Practices[1].EffectiveDuration()
			if a != nil && b != nil && *a != *b {
				return fmt.Errorf("position %d: effective durations differ", g.Position)
			}
		default:
			return fmt.Errorf("position %d has %d practices, want 1 or 2", g.Position, len(g.Practices))
		}
	}

	seen := map[[2]int]bool{}
	for _, a := range assignments {
		key := [2]int{a.Position, a.SlotIndex}
		if seen[key] {
			return fmt.Errorf("duplicate (position, slot) pair (%d, %d)", a.Position, a.SlotIndex)
		}
		seen[key] = true
	}
	return nil
}
