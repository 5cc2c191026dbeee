package record

// State is the lifecycle position of a record. The is_deleted column is its only
// persisted form.
type State int

const (
	StateActive State = iota
	StateTrashed
	// StateGone is the terminal state after a purge; it is never persisted.
	StateGone
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateTrashed:
		return "trashed"
	case StateGone:
		return "gone"
	}
	return "unknown"
}

func StateOf(isDeleted bool) State {
	if isDeleted {
		return StateTrashed
	}
	return StateActive
}

// IsDeleted maps a persisted state back to its column value.
func (s State) IsDeleted() bool { return s == StateTrashed }

type Action string

const (
	ActionEdit       Action = "edit"
	ActionSoftDelete Action = "soft_delete"
	ActionRestore    Action = "restore"
	ActionPurge      Action = "purge"
)

// Transition returns the state reached by applying action in state from.
//
//	ACTIVE  --edit-->       ACTIVE
//	ACTIVE  --softDelete--> TRASHED
//	TRASHED --restore-->    ACTIVE
//	TRASHED --purge-->      GONE
func Transition(from State, action Action) (State, error) {
	switch {
	case from == StateActive && action == ActionEdit:
		return StateActive, nil
	case from == StateActive && action == ActionSoftDelete:
		return StateTrashed, nil
	case from == StateTrashed && action == ActionRestore:
		return StateActive, nil
	case from == StateTrashed && action == ActionPurge:
		return StateGone, nil
	case from == StateActive && action == ActionPurge:
		return from, ErrNotTrashed
	}
	return from, ErrInvalidTransition
}

// Source returns the only state from which action is allowed.
func (a Action) Source() State {
	switch a {
	case ActionRestore, ActionPurge:
		return StateTrashed
	}
	return StateActive
}
