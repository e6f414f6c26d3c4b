package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestRelevanceFor(t *testing.T) {
	r, err := RelevanceFor(OrderTypeFirst)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)

	r, err = RelevanceFor(OrderTypeSecond)
	require.NoError(t, err)
	assert.Equal(t, 0.5, r)

	_, err = RelevanceFor("third")
	assert.Error(t, err)
}

func TestValidateOutcomes(t *testing.T) {
	outcome := func(key, order string) BlockOutcome {
		rel, _ := RelevanceFor(order)
		return BlockOutcome{AttributeKey: key, OrderType: order, Relevance: rel}
	}

	t.Run("full allowance passes", func(t *testing.T) {
		outcomes := []BlockOutcome{
			outcome("passing", OrderTypeFirst),
			outcome("scanning", OrderTypeFirst),
			outcome("first_touch", OrderTypeFirst),
			outcome("pressing", OrderTypeSecond),
			outcome("stamina", OrderTypeSecond),
			outcome("communication", OrderTypeSecond),
		}
		assert.NoError(t, ValidateOutcomes(outcomes))
	})

	t.Run("fourth first-order outcome rejected", func(t *testing.T) {
		outcomes := []BlockOutcome{
			outcome("passing", OrderTypeFirst),
			outcome("scanning", OrderTypeFirst),
			outcome("first_touch", OrderTypeFirst),
			outcome("dribbling", OrderTypeFirst),
		}
		assert.Error(t, ValidateOutcomes(outcomes))
	})

	t.Run("fourth second-order outcome rejected", func(t *testing.T) {
		outcomes := []BlockOutcome{
			outcome("pressing", OrderTypeSecond),
			outcome("stamina", OrderTypeSecond),
			outcome("communication", OrderTypeSecond),
			outcome("agility", OrderTypeSecond),
		}
		assert.Error(t, ValidateOutcomes(outcomes))
	})

	t.Run("missing attribute key rejected", func(t *testing.T) {
		assert.Error(t, ValidateOutcomes([]BlockOutcome{outcome("", OrderTypeFirst)}))
	})

	t.Run("unknown order type rejected", func(t *testing.T) {
		assert.Error(t, ValidateOutcomes([]BlockOutcome{{AttributeKey: "passing", OrderType: "primary"}}))
	})
}

func TestBuildOutcomes(t *testing.T) {
	outcomes, err := BuildOutcomes([]OutcomeInput{
		{AttributeKey: "passing", OrderType: OrderTypeFirst},
		{AttributeKey: "pressing", OrderType: OrderTypeSecond},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 1.0, outcomes[0].Relevance)
	assert.Equal(t, 0.5, outcomes[1].Relevance)

	_, err = BuildOutcomes([]OutcomeInput{{AttributeKey: "passing", OrderType: "nope"}})
	assert.Error(t, err)
}

func TestPatchApply(t *testing.T) {
	b := BlockDefinition{
		Title:       "Rondo",
		Description: "4v1 in a tight square",
		Duration:    intPtr(15),
		Outcomes: []BlockOutcome{
			{AttributeKey: "passing", OrderType: OrderTypeFirst, Relevance: 1.0},
		},
	}

	t.Run("nil fields untouched", func(t *testing.T) {
		copied := b
		require.NoError(t, Patch{Title: strPtr("Rondo 6v2")}.Apply(&copied))
		assert.Equal(t, "Rondo 6v2", copied.Title)
		assert.Equal(t, "4v1 in a tight square", copied.Description)
		assert.Equal(t, intPtr(15), copied.Duration)
		assert.Len(t, copied.Outcomes, 1)
	})

	t.Run("outcomes replaced wholesale", func(t *testing.T) {
		copied := b
		patch := Patch{Outcomes: &[]OutcomeInput{
			{AttributeKey: "scanning", OrderType: OrderTypeFirst},
			{AttributeKey: "stamina", OrderType: OrderTypeSecond},
		}}
		require.NoError(t, patch.Apply(&copied))
		require.Len(t, copied.Outcomes, 2)
		assert.Equal(t, "scanning", copied.Outcomes[0].AttributeKey)
		assert.Equal(t, 0.5, copied.Outcomes[1].Relevance)
	})

	t.Run("invalid outcomes reject the whole patch", func(t *testing.T) {
		copied := b
		patch := Patch{Outcomes: &[]OutcomeInput{
			{AttributeKey: "a", OrderType: OrderTypeFirst},
			{AttributeKey: "b", OrderType: OrderTypeFirst},
			{AttributeKey: "c", OrderType: OrderTypeFirst},
			{AttributeKey: "d", OrderType: OrderTypeFirst},
		}}
		assert.Error(t, patch.Apply(&copied))
	})
}

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name    string
		block   BlockDefinition
		coachID uint
		clubID  *uint
		want    bool
	}{
		{
			name:    "creator always sees own private block",
			block:   BlockDefinition{CreatorID: 1, Visibility: VisibilityPrivate},
			coachID: 1,
			want:    true,
		},
		{
			name:    "other coach cannot see private block",
			block:   BlockDefinition{CreatorID: 1, Visibility: VisibilityPrivate},
			coachID: 2,
			want:    false,
		},
		{
			name:    "public block visible to anyone",
			block:   BlockDefinition{CreatorID: 1, Visibility: VisibilityPublic},
			coachID: 2,
			want:    true,
		},
		{
			name:    "club block visible to club member",
			block:   BlockDefinition{CreatorID: 1, Visibility: VisibilityClub, ClubID: uintPtr(5)},
			coachID: 2,
			clubID:  uintPtr(5),
			want:    true,
		},
		{
			name:    "club block hidden from other club",
			block:   BlockDefinition{CreatorID: 1, Visibility: VisibilityClub, ClubID: uintPtr(5)},
			coachID: 2,
			clubID:  uintPtr(6),
			want:    false,
		},
		{
			name:    "club block hidden from clubless coach",
			block:   BlockDefinition{CreatorID: 1, Visibility: VisibilityClub, ClubID: uintPtr(5)},
			coachID: 2,
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.block.VisibleTo(tt.coachID, tt.clubID))
		})
	}
}

func TestValidVisibility(t *testing.T) {
	assert.True(t, ValidVisibility(VisibilityPrivate))
	assert.True(t, ValidVisibility(VisibilityClub))
	assert.True(t, ValidVisibility(VisibilityPublic))
	assert.False(t, ValidVisibility("team"))
}
