package planner

import (
	"testing"

	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func practice(id uint, position, slot int) Assignment {
	return Assignment{ID: id, SessionID: 1, BlockID: id + 100, Position: position, SlotIndex: slot}
}

func TestGroupByPosition_Empty(t *testing.T) {
	groups := GroupByPosition(nil)
	assert.Empty(t, groups)

	groups = GroupByPosition([]Assignment{})
	assert.Empty(t, groups)
}

func TestGroupByPosition_SortsByPositionThenSlot(t *testing.T) {
	// Arbitrary input order, including a two-practice group listed
	// simultaneous-first.
	assignments := []Assignment{
		practice(3, 2, 0),
		practice(2, 1, 1),
		practice(1, 1, 0),
		practice(4, 0, 0),
	}

	groups := GroupByPosition(assignments)
	require.Len(t, groups, 3)

	assert.Equal(t, 0, groups[0].Position)
	assert.Equal(t, uint(4), groups[0].Practices[0].ID)

	assert.Equal(t, 1, groups[1].Position)
	require.Len(t, groups[1].Practices, 2)
	assert.Equal(t, uint(1), groups[1].Practices[0].ID)
	assert.Equal(t, uint(2), groups[1].Practices[1].ID)

	assert.Equal(t, 2, groups[2].Position)
}

func TestGroupByPosition_DoesNotMutateInput(t *testing.T) {
	assignments := []Assignment{
		practice(2, 1, 0),
		practice(1, 0, 0),
	}
	GroupByPosition(assignments)
	assert.Equal(t, uint(2), assignments[0].ID)
	assert.Equal(t, 1, assignments[0].Position)
}

func TestNextPosition(t *testing.T) {
	assert.Equal(t, 0, NextPosition(nil))

	assignments := []Assignment{
		practice(1, 0, 0),
		practice(2, 1, 0),
		practice(3, 1, 1),
	}
	// Two groups, not three assignments.
	assert.Equal(t, 2, NextPosition(assignments))
}

func TestEffectiveDuration(t *testing.T) {
	blockWithDuration := &block.BlockDefinition{Duration: intPtr(25)}

	a := Assignment{Block: blockWithDuration}
	require.NotNil(t, a.EffectiveDuration())
	assert.Equal(t, 25, *a.EffectiveDuration())

	a.Duration = intPtr(10) // override wins
	assert.Equal(t, 10, *a.EffectiveDuration())

	bare := Assignment{}
	assert.Nil(t, bare.EffectiveDuration())
}

func TestSessionDuration_SimultaneousGroupCountsOnce(t *testing.T) {
	x := practice(1, 0, 0)
	x.Duration = intPtr(20)
	y := practice(2, 0, 1)
	y.Duration = intPtr(20)
	z := practice(3, 1, 0)
	z.Duration = intPtr(15)

	assert.Equal(t, 35, SessionDuration([]Assignment{x, y, z}))
}

func TestCheckInvariants(t *testing.T) {
	tests := []struct {
		name        string
		assignments []Assignment
		wantErr     bool
	}{
		{
			name: "valid with simultaneous group",
			assignments: []Assignment{
				practice(1, 0, 0), practice(2, 0, 1), practice(3, 1, 0),
			},
		},
		{
			name:        "gap in positions",
			assignments: []Assignment{practice(1, 0, 0), practice(2, 2, 0)},
			wantErr:     true,
		},
		{
			name:        "slot 1 without slot 0",
			assignments: []Assignment{practice(1, 0, 1)},
			wantErr:     true,
		},
		{
			name: "three practices at one position",
			assignments: []Assignment{
				practice(1, 0, 0), practice(2, 0, 1), {ID: 3, Position: 0, SlotIndex: 2},
			},
			wantErr: true,
		},
		{
			name: "duplicate coordinate",
			assignments: []Assignment{
				practice(1, 0, 0), practice(2, 1, 0), practice(3, 1, 0),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInvariants(tt.assignments)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckInvariants_DurationMismatch(t *testing.T) {
	x := practice(1, 0, 0)
	x.Duration = intPtr(20)
	y := practice(2, 0, 1)
	y.Duration = intPtr(15)
	assert.Error(t, CheckInvariants([]Assignment{x, y}))

	// Nil on one side means unspecified, not a mismatch.
	y.Duration = nil
	assert.NoError(t, CheckInvariants([]Assignment{x, y}))
}
