// ABOUTME: Row-level action intents emitted by the list engine.
// ABOUTME: The host owns confirmation, the mutation call and the refetch.

package listview

// Action is a row-level action kind.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Intent is a request to run Action against Record.
type Intent[R Record] struct {
	Action Action
	Record R
}

// TriggerEdit invokes the OnEdit callback, if configured, and reports whether it ran.
func (e *Engine[R]) TriggerEdit(r R) bool {
	if e.onEdit == nil {
		return false
	}
	e.onEdit(r)
	return true
}

// TriggerDelete invokes the OnDelete callback, if configured, and reports whether it ran.
func (e *Engine[R]) TriggerDelete(r R) bool {
	if e.onDelete == nil {
		return false
	}
	e.onDelete(r)
	return true
}

// Dispatch routes an intent to the matching callback. Unknown actions are ignored.
func (e *Engine[R]) Dispatch(in Intent[R]) bool {
	switch in.Action {
	case ActionEdit:
		return e.TriggerEdit(in.Record)
	case ActionDelete:
		return e.TriggerDelete(in.Record)
	default:
		return false
	}
}

// ParseAction maps a form or query value to an Action.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionEdit, ActionDelete:
		return Action(s), true
	default:
		return "", false
	}
}
