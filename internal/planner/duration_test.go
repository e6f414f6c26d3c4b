package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncGroupDuration_SetsBothOccupants(t *testing.T) {
	x := practice(1, 0, 0)
	x.Duration = intPtr(20)
	y := practice(2, 0, 1)
	z := practice(3, 1, 0)

	newList, plan, err := SyncGroupDuration([]Assignment{x, y, z}, 0, 20)
	require.NoError(t, err)

	require.Len(t, plan.Durations, 1)
	assert.ElementsMatch(t, []uint{1, 2}, plan.Durations[0].AssignmentIDs)
	assert.Equal(t, 20, plan.Durations[0].Minutes)

	groups := GroupByPosition(newList)
	require.Len(t, groups[0].Practices, 2)
	for _, p := range groups[0].Practices {
		require.NotNil(t, p.Duration)
		assert.Equal(t, 20, *p.Duration)
	}

	// Other groups untouched.
	assert.Nil(t, groups[1].Practices[0].Duration)
	require.NoError(t, CheckInvariants(newList))
}

func TestSyncGroupDuration_MissingGroup(t *testing.T) {
	_, plan, err := SyncGroupDuration([]Assignment{practice(1, 0, 0)}, 3, 15)
	assert.ErrorIs(t, err, ErrGroupMissing)
	assert.True(t, plan.Empty())
}

func TestSyncGroupDuration_SingleOccupant(t *testing.T) {
	newList, plan, err := SyncGroupDuration([]Assignment{practice(1, 0, 0)}, 0, 45)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, plan.Durations[0].AssignmentIDs)
	require.NotNil(t, newList[0].Duration)
	assert.Equal(t, 45, *newList[0].Duration)
}
