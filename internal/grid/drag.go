package grid

// DragSession tracks a column drag from start to drop. Nothing touches the
// column order until Drop, so a cancelled drag leaves the state as it was.
type DragSession struct {
	active string
	over   string
}

// StartDrag begins dragging the column with the given id.
func StartDrag(id string) DragSession {
	return DragSession{active: id, over: id}
}

// Active is the id of the dragged column, or "" when no drag is in progress.
func (d DragSession) Active() string { return d.active }

// Over is the id of the column currently under the dragged one.
func (d DragSession) Over() string { return d.over }

// Dragging reports whether a drag is in progress.
func (d DragSession) Dragging() bool { return d.active != "" }

// DragOver moves the drop target. An empty id means no valid target.
func (d DragSession) DragOver(id string) DragSession {
	if !d.Dragging() {
		return d
	}
	d.over = id
	return d
}

// Cancel ends the drag without changing anything.
func (d DragSession) Cancel() DragSession {
	return DragSession{}
}

// Drop ends the drag and returns the state with the move applied. The move
// only happens when there is a target different from the dragged column.
func (d DragSession) Drop(s State) (State, DragSession) {
	if !d.Dragging() || d.over == "" || d.over == d.active {
		return s, DragSession{}
	}
	return s.MoveColumn(d.active, d.over), DragSession{}
}
