package planner

import "errors"

var (
	// ErrNotFound means the referenced assignment no longer exists in the
	// working list, usually because of a stale view. Callers should
	// refresh from storage rather than retry.
	ErrNotFound = errors.New("assignment not found")

	// ErrGroupMissing means no group exists at the target position.
	ErrGroupMissing = errors.New("no group at target position")

	// ErrGroupFull means the target group already has a simultaneous
	// occupant.
	ErrGroupFull = errors.New("group already has two practices")

	// ErrIndexOutOfRange means a reorder index is outside the group list.
	ErrIndexOutOfRange = errors.New("group index out of range")
)
