package session

import (
	"fmt"

	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/TomWrigley-7/touchline/internal/planner"
)

// Store is the slice of the session repository the editor needs: the
// persistence primitives behind the planner's write plans.
type Store interface {
	FetchAssignments(sessionID uint) ([]planner.Assignment, error)
	CreateAssignment(sessionID, blockID uint, position, slotIndex int, duration *int) (planner.Assignment, error)
	DeleteAssignment(assignmentID uint) error
	WritePositions(writes []planner.PositionWrite) error
	WriteSlotIndex(assignmentID uint, slotIndex int) error
	WriteDuration(assignmentIDs []uint, minutes int) error
	RepointAssignmentBlock(assignmentID, newBlockID uint) error
}

// BlockCatalog is the slice of the block repository the copy-on-write path
// needs.
type BlockCatalog interface {
	GetBlockByID(id uint) (*block.BlockDefinition, error)
	UpdateBlock(b *block.BlockDefinition) error
	CloneBlock(blockID uint, patch block.Patch, newOwnerID uint) (*block.BlockDefinition, error)
}

// Editor owns the in-memory assignment list for one session-editing
// interaction. Every mutation applies the pure planner transform
// optimistically, then issues the resulting write plan; if any write
// fails, the list is restored to its pre-mutation snapshot so the caller
// never observes a partial state.
type Editor struct {
	sessionID   uint
	store       Store
	catalog     BlockCatalog
	assignments []planner.Assignment
}

// NewEditor creates an editor for one session. Call Load before use.
func NewEditor(sessionID uint, store Store, catalog BlockCatalog) *Editor {
	return &Editor{sessionID: sessionID, store: store, catalog: catalog}
}

// Load fetches the flat assignment list from storage. Also the recovery
// path after a NotFound: stale local state is replaced, not retried.
func (e *Editor) Load() error {
	assignments, err := e.store.FetchAssignments(e.sessionID)
	if err != nil {
		return fmt.Errorf("fetch assignments: %w", err)
	}
	e.assignments = assignments
	return nil
}

// Groups derives the ordered group view from the current list.
func (e *Editor) Groups() []planner.Group {
	return planner.GroupByPosition(e.assignments)
}

// Assignments returns a copy of the current flat list.
func (e *Editor) Assignments() []planner.Assignment {
	out := make([]planner.Assignment, len(e.assignments))
	copy(out, e.assignments)
	return out
}

// TotalDuration is the session running time; simultaneous practices count
// once.
func (e *Editor) TotalDuration() int {
	return planner.SessionDuration(e.assignments)
}

func (e *Editor) snapshot() []planner.Assignment {
	snap := make([]planner.Assignment, len(e.assignments))
	copy(snap, e.assignments)
	return snap
}

// applyPlan issues a write plan against the store. Deletes run first so
// slot promotions never collide with the row they replace.
func (e *Editor) applyPlan(plan planner.Plan) error {
	for _, id := range plan.Deletes {
		if err := e.store.DeleteAssignment(id); err != nil {
			return fmt.Errorf("delete assignment %d: %w", id, err)
		}
	}
	for _, w := range plan.Slots {
		if err := e.store.WriteSlotIndex(w.AssignmentID, w.SlotIndex); err != nil {
			return fmt.Errorf("write slot index: %w", err)
		}
	}
	if len(plan.Positions) > 0 {
		if err := e.store.WritePositions(plan.Positions); err != nil {
			return fmt.Errorf("write positions: %w", err)
		}
	}
	for _, w := range plan.Durations {
		if err := e.store.WriteDuration(w.AssignmentIDs, w.Minutes); err != nil {
			return fmt.Errorf("write durations: %w", err)
		}
	}
	return nil
}

// Assign appends a new single-practice group at the end of the session.
func (e *Editor) Assign(blockID uint) (planner.Assignment, error) {
	position := planner.NextPosition(e.assignments)

	created, err := e.store.CreateAssignment(e.sessionID, blockID, position, 0, nil)
	if err != nil {
		return planner.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}

	e.assignments = append(e.snapshot(), created)
	return created, nil
}

// AddSimultaneous adds a second practice to the group at position. The new
// practice is immediately duration-synced from the primary's effective
// duration so the pair starts consistent; when the primary has no duration
// at all, the sync is skipped.
func (e *Editor) AddSimultaneous(blockID uint, position int) (planner.Assignment, error) {
	if err := planner.CanAddSimultaneous(e.assignments, position); err != nil {
		return planner.Assignment{}, err
	}

	var seed *int
	for _, a := range e.assignments {
		if a.Position == position && a.SlotIndex == 0 {
			seed = a.EffectiveDuration()
			break
		}
	}

	created, err := e.store.CreateAssignment(e.sessionID, blockID, position, 1, nil)
	if err != nil {
		return planner.Assignment{}, fmt.Errorf("create simultaneous assignment: %w", err)
	}

	snapshot := e.snapshot()
	e.assignments = append(e.snapshot(), created)

	if seed == nil {
		return created, nil
	}

	newList, plan, err := planner.SyncGroupDuration(e.assignments, position, *seed)
	if err != nil {
		// Cannot happen: the group exists, we just appended into it.
		e.assignments = snapshot
		return planner.Assignment{}, err
	}
	e.assignments = newList
	if err := e.applyPlan(plan); err != nil {
		// Compensate for the already-persisted create, then roll back.
		_ = e.store.DeleteAssignment(created.ID)
		e.assignments = snapshot
		return planner.Assignment{}, err
	}

	for _, a := range e.assignments {
		if a.ID == created.ID {
			created = a
			break
		}
	}
	return created, nil
}

// Remove deletes one assignment, promoting its sibling or closing the
// position gap as needed.
func (e *Editor) Remove(assignmentID uint) error {
	newList, plan, err := planner.RemoveFromGroup(e.assignments, assignmentID)
	if err != nil {
		return err
	}

	snapshot := e.snapshot()
	e.assignments = newList
	if err := e.applyPlan(plan); err != nil {
		e.assignments = snapshot
		return err
	}
	return nil
}

// Reorder moves the group at fromIndex to toIndex and rewrites every
// group's position.
func (e *Editor) Reorder(fromIndex, toIndex int) error {
	newList, plan, err := planner.Reorder(e.assignments, fromIndex, toIndex)
	if err != nil {
		return err
	}
	if plan.Empty() {
		return nil
	}

	snapshot := e.snapshot()
	e.assignments = newList
	if err := e.applyPlan(plan); err != nil {
		e.assignments = snapshot
		return err
	}
	return nil
}

// SetDuration sets an assignment's duration and propagates it to its group
// sibling, keeping session-time accounting non-duplicative.
func (e *Editor) SetDuration(assignmentID uint, minutes int) error {
	position := -1
	for _, a := range e.assignments {
		if a.ID == assignmentID {
			position = a.Position
			break
		}
	}
	if position == -1 {
		return planner.ErrNotFound
	}

	newList, plan, err := planner.SyncGroupDuration(e.assignments, position, minutes)
	if err != nil {
		return err
	}

	snapshot := e.snapshot()
	e.assignments = newList
	if err := e.applyPlan(plan); err != nil {
		e.assignments = snapshot
		return err
	}
	return nil
}

// EditBlock edits the block behind one assignment. The creator's blocks
// are patched in place; anyone else gets a private copy with only the
// current assignment repointed to it (copy-on-write), so every other
// assignment referencing the original keeps seeing it unchanged.
func (e *Editor) EditBlock(assignmentID uint, patch block.Patch, editingCoachID uint) (*block.BlockDefinition, bool, error) {
	var target *planner.Assignment
	for i := range e.assignments {
		if e.assignments[i].ID == assignmentID {
			target = &e.assignments[i]
			break
		}
	}
	if target == nil {
		return nil, false, planner.ErrNotFound
	}

	original, err := e.catalog.GetBlockByID(target.BlockID)
	if err != nil {
		return nil, false, fmt.Errorf("fetch block: %w", err)
	}
	if original == nil {
		return nil, false, planner.ErrNotFound
	}

	if original.CreatorID == editingCoachID {
		if err := patch.Apply(original); err != nil {
			return nil, false, err
		}
		if err := e.catalog.UpdateBlock(original); err != nil {
			return nil, false, fmt.Errorf("update block: %w", err)
		}
		target.Block = original
		return original, false, nil
	}

	clone, err := e.catalog.CloneBlock(original.ID, patch, editingCoachID)
	if err != nil {
		return nil, false, fmt.Errorf("clone block: %w", err)
	}
	if err := e.store.RepointAssignmentBlock(assignmentID, clone.ID); err != nil {
		// The clone is a private orphan at worst; local state stays on
		// the original.
		return nil, false, fmt.Errorf("repoint assignment: %w", err)
	}

	target.BlockID = clone.ID
	target.Block = clone
	return clone, true, nil
}
