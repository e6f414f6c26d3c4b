// Package planner is the pure session-plan engine. It works on the flat
// list of block assignments for one session and computes new lists plus the
// minimal persisted writes for every mutation. It performs no I/O itself;
// the session package owns loading, writing and rollback.
package planner

import (
	"sort"

	"github.com/TomWrigley-7/touchline/internal/block"
)

// Assignment binds a catalog block to a session at a (position, slot)
// coordinate. Position values for one session are contiguous 0..N-1; at
// most two assignments share a position, with slot 0 ("primary") always
// present and slot 1 ("simultaneous") optional.
type Assignment struct {
	ID        uint
	SessionID uint
	BlockID   uint
	Position  int
	SlotIndex int
	// Duration is the assignment-local override in minutes; nil means the
	// block's own duration applies.
	Duration *int
	Block    *block.BlockDefinition
}

// EffectiveDuration is the override if set, otherwise the block's duration.
// Nil means unspecified.
func (a Assignment) EffectiveDuration() *int {
	if a.Duration != nil {
		return a.Duration
	}
	if a.Block != nil {
		return a.Block.Duration
	}
	return nil
}

// Group is the derived view of all assignments sharing a position. It is
// recomputed from the flat list on demand and never stored.
type Group struct {
	Position  int
	Practices []Assignment
}

// GroupByPosition folds a flat assignment list into groups sorted by
// position, practices sorted by slot. Pure; the input is not modified.
func GroupByPosition(assignments []Assignment) []Group {
	if len(assignments) == 0 {
		return []Group{}
	}

	sorted := cloneAssignments(assignments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].SlotIndex < sorted[j].SlotIndex
	})

	var groups []Group
	for _, a := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Position == a.Position {
			groups[n-1].Practices = append(groups[n-1].Practices, a)
			continue
		}
		groups = append(groups, Group{Position: a.Position, Practices: []Assignment{a}})
	}
	return groups
}

// NextPosition is where a newly assigned block goes: one past the last
// group. New groups always append; gaps are never reused.
func NextPosition(assignments []Assignment) int {
	return len(GroupByPosition(assignments))
}

// SessionDuration sums the effective duration of every group. Occupants of
// a group run concurrently, so each group counts once.
func SessionDuration(assignments []Assignment) int {
	total := 0
	for _, g := range GroupByPosition(assignments) {
		if d := g.Practices[0].EffectiveDuration(); d != nil {
			total += *d
		}
	}
	return total
}

func cloneAssignments(assignments []Assignment) []Assignment {
	out := make([]Assignment, len(assignments))
	copy(out, assignments)
	return out
}
