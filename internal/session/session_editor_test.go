package session

import (
	"errors"
	"testing"

	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/TomWrigley-7/touchline/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// fakeStore is an in-memory Store with switchable write failures.
type fakeStore struct {
	nextID uint
	rows   map[uint]planner.Assignment

	failPositions bool
	failDuration  bool
	failDelete    bool
	failSlot      bool
	failRepoint   bool
}

var errWrite = errors.New("write failed")

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, rows: map[uint]planner.Assignment{}}
}

func (s *fakeStore) seed(a planner.Assignment) planner.Assignment {
	a.ID = s.nextID
	s.nextID++
	s.rows[a.ID] = a
	return a
}

func (s *fakeStore) FetchAssignments(sessionID uint) ([]planner.Assignment, error) {
	var out []planner.Assignment
	for _, a := range s.rows {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateAssignment(sessionID, blockID uint, position, slotIndex int, duration *int) (planner.Assignment, error) {
	return s.seed(planner.Assignment{
		SessionID: sessionID,
		BlockID:   blockID,
		Position:  position,
		SlotIndex: slotIndex,
		Duration:  duration,
	}), nil
}

func (s *fakeStore) DeleteAssignment(assignmentID uint) error {
	if s.failDelete {
		return errWrite
	}
	delete(s.rows, assignmentID)
	return nil
}

func (s *fakeStore) WritePositions(writes []planner.PositionWrite) error {
	if s.failPositions {
		return errWrite
	}
	for _, w := range writes {
		for _, id := range w.AssignmentIDs {
			a := s.rows[id]
			a.Position = w.Position
			s.rows[id] = a
		}
	}
	return nil
}

func (s *fakeStore) WriteSlotIndex(assignmentID uint, slotIndex int) error {
	if s.failSlot {
		return errWrite
	}
	a := s.rows[assignmentID]
	a.SlotIndex = slotIndex
	s.rows[assignmentID] = a
	return nil
}

func (s *fakeStore) WriteDuration(assignmentIDs []uint, minutes int) error {
	if s.failDuration {
		return errWrite
	}
	for _, id := range assignmentIDs {
		a := s.rows[id]
		d := minutes
		a.Duration = &d
		s.rows[id] = a
	}
	return nil
}

func (s *fakeStore) RepointAssignmentBlock(assignmentID, newBlockID uint) error {
	if s.failRepoint {
		return errWrite
	}
	a := s.rows[assignmentID]
	a.BlockID = newBlockID
	s.rows[assignmentID] = a
	return nil
}

// fakeCatalog is an in-memory BlockCatalog.
type fakeCatalog struct {
	nextID uint
	blocks map[uint]block.BlockDefinition
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{nextID: 1, blocks: map[uint]block.BlockDefinition{}}
}

func (c *fakeCatalog) seed(b block.BlockDefinition) uint {
	b.ID = c.nextID
	c.nextID++
	c.blocks[b.ID] = b
	return b.ID
}

func (c *fakeCatalog) GetBlockByID(id uint) (*block.BlockDefinition, error) {
	b, ok := c.blocks[id]
	if !ok {
		return nil, nil
	}
	copied := b
	return &copied, nil
}

func (c *fakeCatalog) UpdateBlock(b *block.BlockDefinition) error {
	c.blocks[b.ID] = *b
	return nil
}

func (c *fakeCatalog) CloneBlock(blockID uint, patch block.Patch, newOwnerID uint) (*block.BlockDefinition, error) {
	source, ok := c.blocks[blockID]
	if !ok {
		return nil, errors.New("block missing")
	}
	clone := source
	clone.ID = 0
	clone.CreatorID = newOwnerID
	clone.Visibility = block.VisibilityPrivate
	if err := patch.Apply(&clone); err != nil {
		return nil, err
	}
	id := c.seed(clone)
	clone.ID = id
	return &clone, nil
}

func loadedEditor(t *testing.T, store *fakeStore, catalog *fakeCatalog) *Editor {
	t.Helper()
	ed := NewEditor(1, store, catalog)
	require.NoError(t, ed.Load())
	return ed
}

func TestEditor_AssignAppendsAtEnd(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 1, SlotIndex: 0})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 12, Position: 1, SlotIndex: 1})

	ed := loadedEditor(t, store, newFakeCatalog())

	created, err := ed.Assign(13)
	require.NoError(t, err)
	assert.Equal(t, 2, created.Position, "two groups exist, new one appends after them")
	assert.Equal(t, 0, created.SlotIndex)

	require.NoError(t, planner.CheckInvariants(ed.Assignments()))
	assert.Len(t, ed.Groups(), 3)
}

// Scenario: primary X has duration 20; the added simultaneous practice Y
// ends up with duration 20 too.
func TestEditor_AddSimultaneousSeedsDuration(t *testing.T) {
	store := newFakeStore()
	x := store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0, Duration: intPtr(20)})

	ed := loadedEditor(t, store, newFakeCatalog())

	y, err := ed.AddSimultaneous(11, 0)
	require.NoError(t, err)
	require.NotNil(t, y.Duration)
	assert.Equal(t, 20, *y.Duration)

	// Persisted too, on both occupants.
	require.NotNil(t, store.rows[y.ID].Duration)
	assert.Equal(t, 20, *store.rows[y.ID].Duration)
	require.NotNil(t, store.rows[x.ID].Duration)
	assert.Equal(t, 20, *store.rows[x.ID].Duration)

	require.NoError(t, planner.CheckInvariants(ed.Assignments()))
}

func TestEditor_AddSimultaneousSkipsSyncWithoutPrimaryDuration(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})

	ed := loadedEditor(t, store, newFakeCatalog())

	y, err := ed.AddSimultaneous(11, 0)
	require.NoError(t, err)
	assert.Nil(t, y.Duration, "unspecified must not be overwritten with a value")
}

func TestEditor_AddSimultaneousPreconditions(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 0, SlotIndex: 1})

	ed := loadedEditor(t, store, newFakeCatalog())
	before := len(store.rows)

	_, err := ed.AddSimultaneous(12, 0)
	assert.ErrorIs(t, err, planner.ErrGroupFull)

	_, err = ed.AddSimultaneous(12, 5)
	assert.ErrorIs(t, err, planner.ErrGroupMissing)

	assert.Len(t, store.rows, before, "rejected before any write")
}

func TestEditor_AddSimultaneousRollsBackOnSyncFailure(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0, Duration: intPtr(20)})
	store.failDuration = true

	ed := loadedEditor(t, store, newFakeCatalog())
	before := ed.Assignments()

	_, err := ed.AddSimultaneous(11, 0)
	require.Error(t, err)

	assert.Equal(t, before, ed.Assignments(), "local list reverted to pre-mutation snapshot")
	assert.Len(t, store.rows, 1, "compensating delete removed the created row")
}

func TestEditor_RemoveRollsBackOnPositionWriteFailure(t *testing.T) {
	store := newFakeStore()
	a := store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 1, SlotIndex: 0})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 12, Position: 2, SlotIndex: 0})
	store.failPositions = true

	ed := loadedEditor(t, store, newFakeCatalog())
	before := ed.Assignments()

	err := ed.Remove(a.ID)
	require.Error(t, err)
	assert.ElementsMatch(t, before, ed.Assignments(), "nothing happened from the caller's view")
}

func TestEditor_RemoveNotFoundIsNoop(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})

	ed := loadedEditor(t, store, newFakeCatalog())

	err := ed.Remove(99)
	assert.ErrorIs(t, err, planner.ErrNotFound)
	assert.Len(t, store.rows, 1)
}

func TestEditor_RemovePromotesSibling(t *testing.T) {
	store := newFakeStore()
	x := store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})
	y := store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 0, SlotIndex: 1})

	ed := loadedEditor(t, store, newFakeCatalog())

	require.NoError(t, ed.Remove(x.ID))

	groups := ed.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].Position)
	require.Len(t, groups[0].Practices, 1)
	assert.Equal(t, y.ID, groups[0].Practices[0].ID)
	assert.Equal(t, 0, groups[0].Practices[0].SlotIndex)

	assert.Equal(t, 0, store.rows[y.ID].SlotIndex, "promotion persisted")
	_, exists := store.rows[x.ID]
	assert.False(t, exists)
}

func TestEditor_ReorderPersistsAllPositions(t *testing.T) {
	store := newFakeStore()
	a := store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})
	b := store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 1, SlotIndex: 0})
	c := store.seed(planner.Assignment{SessionID: 1, BlockID: 12, Position: 2, SlotIndex: 0})

	ed := loadedEditor(t, store, newFakeCatalog())

	require.NoError(t, ed.Reorder(2, 0))

	assert.Equal(t, 0, store.rows[c.ID].Position)
	assert.Equal(t, 1, store.rows[a.ID].Position)
	assert.Equal(t, 2, store.rows[b.ID].Position)
	require.NoError(t, planner.CheckInvariants(ed.Assignments()))
}

func TestEditor_ReorderRollsBackOnFailure(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 1, SlotIndex: 0})
	store.failPositions = true

	ed := loadedEditor(t, store, newFakeCatalog())
	before := ed.Assignments()

	err := ed.Reorder(0, 1)
	require.Error(t, err)
	assert.ElementsMatch(t, before, ed.Assignments())
}

func TestEditor_SetDurationPropagatesToSibling(t *testing.T) {
	store := newFakeStore()
	x := store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0, Duration: intPtr(10)})
	y := store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 0, SlotIndex: 1, Duration: intPtr(10)})

	ed := loadedEditor(t, store, newFakeCatalog())

	require.NoError(t, ed.SetDuration(y.ID, 25))

	require.NotNil(t, store.rows[x.ID].Duration)
	assert.Equal(t, 25, *store.rows[x.ID].Duration)
	require.NotNil(t, store.rows[y.ID].Duration)
	assert.Equal(t, 25, *store.rows[y.ID].Duration)
	require.NoError(t, planner.CheckInvariants(ed.Assignments()))
}

func TestEditor_SetDurationUnknownAssignment(t *testing.T) {
	ed := loadedEditor(t, newFakeStore(), newFakeCatalog())
	assert.ErrorIs(t, ed.SetDuration(1, 20), planner.ErrNotFound)
}

func TestEditor_TotalDuration(t *testing.T) {
	store := newFakeStore()
	store.seed(planner.Assignment{SessionID: 1, BlockID: 10, Position: 0, SlotIndex: 0, Duration: intPtr(20)})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 11, Position: 0, SlotIndex: 1, Duration: intPtr(20)})
	store.seed(planner.Assignment{SessionID: 1, BlockID: 12, Position: 1, SlotIndex: 0, Duration: intPtr(15)})

	ed := loadedEditor(t, store, newFakeCatalog())
	assert.Equal(t, 35, ed.TotalDuration())
}

func TestEditor_EditBlockOwnerEditsInPlace(t *testing.T) {
	store := newFakeStore()
	catalog := newFakeCatalog()
	blockID := catalog.seed(block.BlockDefinition{Title: "Rondo", CreatorID: 7, Visibility: block.VisibilityClub})
	a := store.seed(planner.Assignment{SessionID: 1, BlockID: blockID, Position: 0, SlotIndex: 0})

	ed := loadedEditor(t, store, catalog)

	title := "Rondo 6v2"
	edited, copied, err := ed.EditBlock(a.ID, block.Patch{Title: &title}, 7)
	require.NoError(t, err)
	assert.False(t, copied)
	assert.Equal(t, blockID, edited.ID)
	assert.Equal(t, "Rondo 6v2", catalog.blocks[blockID].Title)
	assert.Equal(t, blockID, store.rows[a.ID].BlockID, "no repoint for the owner")
}

// Scenario: coach 8 edits a club-shared block created by coach 7 through
// assignment a1. a1 repoints to a fresh private copy owned by 8; a2, which
// references the original, still resolves to the unedited original.
func TestEditor_EditBlockCopyOnWriteIsolation(t *testing.T) {
	store := newFakeStore()
	catalog := newFakeCatalog()
	blockID := catalog.seed(block.BlockDefinition{
		Title:      "Shooting circuit",
		CreatorID:  7,
		Visibility: block.VisibilityClub,
		Duration:   intPtr(15),
	})
	a1 := store.seed(planner.Assignment{SessionID: 1, BlockID: blockID, Position: 0, SlotIndex: 0})
	a2 := store.seed(planner.Assignment{SessionID: 2, BlockID: blockID, Position: 0, SlotIndex: 0})

	ed := loadedEditor(t, store, catalog)

	title := "Shooting circuit (far post)"
	edited, copied, err := ed.EditBlock(a1.ID, block.Patch{Title: &title}, 8)
	require.NoError(t, err)
	require.True(t, copied)

	// The clone is a fresh private block owned by the editor.
	assert.NotEqual(t, blockID, edited.ID)
	assert.Equal(t, uint(8), edited.CreatorID)
	assert.Equal(t, block.VisibilityPrivate, edited.Visibility)
	assert.Equal(t, "Shooting circuit (far post)", edited.Title)
	assert.Equal(t, intPtr(15), edited.Duration, "unpatched fields cloned")

	// a1 now points at the clone; a2 and the original are untouched.
	assert.Equal(t, edited.ID, store.rows[a1.ID].BlockID)
	assert.Equal(t, blockID, store.rows[a2.ID].BlockID)
	original := catalog.blocks[blockID]
	assert.Equal(t, "Shooting circuit", original.Title)
	assert.Equal(t, uint(7), original.CreatorID)
}

func TestEditor_EditBlockRepointFailureKeepsOriginal(t *testing.T) {
	store := newFakeStore()
	catalog := newFakeCatalog()
	blockID := catalog.seed(block.BlockDefinition{Title: "Pressing wave", CreatorID: 7, Visibility: block.VisibilityPublic})
	a := store.seed(planner.Assignment{SessionID: 1, BlockID: blockID, Position: 0, SlotIndex: 0})
	store.failRepoint = true

	ed := loadedEditor(t, store, catalog)

	title := "Pressing wave v2"
	_, _, err := ed.EditBlock(a.ID, block.Patch{Title: &title}, 8)
	require.Error(t, err)

	assert.Equal(t, blockID, store.rows[a.ID].BlockID)
	for _, asg := range ed.Assignments() {
		if asg.ID == a.ID {
			assert.Equal(t, blockID, asg.BlockID, "local state still on the original")
		}
	}
}

func TestEditor_EditBlockUnknownAssignment(t *testing.T) {
	ed := loadedEditor(t, newFakeStore(), newFakeCatalog())
	title := "x"
	_, _, err := ed.EditBlock(42, block.Patch{Title: &title}, 1)
	assert.ErrorIs(t, err, planner.ErrNotFound)
}
