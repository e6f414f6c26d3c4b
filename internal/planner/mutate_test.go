package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAddSimultaneous(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 1, 0),
		practice(3, 1, 1),
	}

	assert.NoError(t, CanAddSimultaneous(assignments, 0))
	assert.ErrorIs(t, CanAddSimultaneous(assignments, 1), ErrGroupFull)
	assert.ErrorIs(t, CanAddSimultaneous(assignments, 2), ErrGroupMissing)
}

func TestRemoveFromGroup_NotFound(t *testing.T) {
	assignments := []Assignment{practice(1, 0, 0)}

	_, plan, err := RemoveFromGroup(assignments, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, plan.Empty(), "nothing may be written speculatively")
}

func TestRemoveFromGroup_SimultaneousOccupant(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 0, 1),
		practice(3, 1, 0),
	}

	newList, plan, err := RemoveFromGroup(assignments, 2)
	require.NoError(t, err)

	assert.Equal(t, []uint{2}, plan.Deletes)
	assert.Empty(t, plan.Slots)
	assert.Empty(t, plan.Positions)

	require.NoError(t, CheckInvariants(newList))
	groups := GroupByPosition(newList)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Practices, 1)
	assert.Equal(t, uint(1), groups[0].Practices[0].ID)
}

// Scenario: group at position 0 has [X(slot0), Y(slot1)]; removing X keeps
// the group at position 0 with Y promoted to slot 0.
func TestRemoveFromGroup_PrimaryWithSibling_Promotes(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0), // X
		practice(2, 0, 1), // Y
		practice(3, 1, 0),
	}

	newList, plan, err := RemoveFromGroup(assignments, 1)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, plan.Deletes)
	require.Len(t, plan.Slots, 1)
	assert.Equal(t, SlotWrite{AssignmentID: 2, SlotIndex: 0}, plan.Slots[0])
	assert.Empty(t, plan.Positions, "the group keeps its position")

	require.NoError(t, CheckInvariants(newList))
	groups := GroupByPosition(newList)
	require.Len(t, groups, 2)
	assert.Equal(t, 0, groups[0].Position)
	require.Len(t, groups[0].Practices, 1)
	assert.Equal(t, uint(2), groups[0].Practices[0].ID)
	assert.Equal(t, 0, groups[0].Practices[0].SlotIndex)
}

// Scenario: positions [0,1,2]; removing the sole occupant of position 1
// renumbers position 2 to 1.
func TestRemoveFromGroup_SoleOccupant_ClosesGap(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 1, 0),
		practice(3, 2, 0),
		practice(4, 2, 1),
	}

	newList, plan, err := RemoveFromGroup(assignments, 2)
	require.NoError(t, err)

	assert.Equal(t, []uint{2}, plan.Deletes)
	assert.Empty(t, plan.Slots)
	require.Len(t, plan.Positions, 1)
	assert.Equal(t, 1, plan.Positions[0].Position)
	assert.ElementsMatch(t, []uint{3, 4}, plan.Positions[0].AssignmentIDs)

	require.NoError(t, CheckInvariants(newList))
	groups := GroupByPosition(newList)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{0, 1}, []int{groups[0].Position, groups[1].Position})
	assert.Len(t, groups[1].Practices, 2)
}

func TestRemoveFromGroup_LastGroup_NoPositionWrites(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 1, 0),
	}

	newList, plan, err := RemoveFromGroup(assignments, 2)
	require.NoError(t, err)
	assert.Empty(t, plan.Positions, "no groups after the removed one")
	require.NoError(t, CheckInvariants(newList))
	assert.Len(t, newList, 1)
}

// Promotion idempotence: whichever occupant was primary, removing it leaves
// a single-occupant group at slot 0.
func TestRemoveFromGroup_PromotionIdempotence(t *testing.T) {
	base := []Assignment{
		practice(1, 0, 0),
		practice(2, 0, 1),
	}

	for _, removeID := range []uint{1, 2} {
		newList, _, err := RemoveFromGroup(base, removeID)
		require.NoError(t, err)
		require.NoError(t, CheckInvariants(newList))

		groups := GroupByPosition(newList)
		require.Len(t, groups, 1)
		require.Len(t, groups[0].Practices, 1)
		assert.Equal(t, 0, groups[0].Practices[0].SlotIndex)
		assert.Equal(t, 0, groups[0].Position)
	}
}

func TestReorder_OutOfRange(t *testing.T) {
	assignments := []Assignment{practice(1, 0, 0), practice(2, 1, 0)}

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, plan, err := Reorder(assignments, idx[0], idx[1])
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.True(t, plan.Empty())
	}
}

func TestReorder_SameIndexIsNoop(t *testing.T) {
	assignments := []Assignment{practice(1, 0, 0), practice(2, 1, 0)}

	newList, plan, err := Reorder(assignments, 1, 1)
	require.NoError(t, err)
	assert.True(t, plan.Empty(), "no writes may be emitted")
	assert.Equal(t, assignments, newList)
}

// Scenario: dragging group 2 to index 0 in a 3-group session yields
// old-2 -> 0, old-0 -> 1, old-1 -> 2, visible in the batch writes.
func TestReorder_MoveToFront(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 1, 0),
		practice(3, 2, 0),
		practice(4, 2, 1),
	}

	newList, plan, err := Reorder(assignments, 2, 0)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(newList))

	require.Len(t, plan.Positions, 3)
	assert.Equal(t, 0, plan.Positions[0].Position)
	assert.ElementsMatch(t, []uint{3, 4}, plan.Positions[0].AssignmentIDs)
	assert.Equal(t, 1, plan.Positions[1].Position)
	assert.Equal(t, []uint{1}, plan.Positions[1].AssignmentIDs)
	assert.Equal(t, 2, plan.Positions[2].Position)
	assert.Equal(t, []uint{2}, plan.Positions[2].AssignmentIDs)
}

func TestReorder_MoveForward(t *testing.T) {
	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 1, 0),
		practice(3, 2, 0),
	}

	newList, plan, err := Reorder(assignments, 0, 2)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(newList))

	groups := GroupByPosition(newList)
	require.Len(t, groups, 3)
	assert.Equal(t, uint(2), groups[0].Practices[0].ID)
	assert.Equal(t, uint(3), groups[1].Practices[0].ID)
	assert.Equal(t, uint(1), groups[2].Practices[0].ID)
	assert.Len(t, plan.Positions, 3)
}

// Contiguity survives arbitrary operation sequences.
func TestContiguityAfterMixedOperations(t *testing.T) {
	var assignments []Assignment
	var nextID uint = 1

	assign := func() {
		a := practice(nextID, NextPosition(assignments), 0)
		nextID++
		assignments = append(assignments, a)
	}

	for i := 0; i < 5; i++ {
		assign()
	}

	var err error
	assignments, _, err = Reorder(assignments, 4, 1)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(assignments))

	assignments, _, err = RemoveFromGroup(assignments, assignments[0].ID)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(assignments))

	assignments, _, err = Reorder(assignments, 0, 3)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(assignments))

	assignments, _, err = RemoveFromGroup(assignments, assignments[2].ID)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(assignments))

	assign()
	require.NoError(t, CheckInvariants(assignments))

	groups := GroupByPosition(assignments)
	positions := make([]int, 0, len(groups))
	for _, g := range groups {
		positions = append(positions, g.Position)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, positions)
}
