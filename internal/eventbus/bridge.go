package eventbus

import (
	"spinewalk/internal/navigation"
)

// CursorBridge republishes cursor moves on the bus as SectionChangedEvent.
// Subscribers on the bus see a snapshot; they cannot influence the move.
type CursorBridge struct {
	bus EventBus
}

// NewCursorBridge creates a bridge and subscribes it to cursor
func NewCursorBridge(bus EventBus, cursor *navigation.Cursor) *CursorBridge {
	b := &CursorBridge{bus: bus}
	cursor.Subscribe(b)
	return b
}

// SectionChanged implements navigation.Observer
func (b *CursorBridge) SectionChanged(event navigation.ChangeEvent) {
	ev := SectionChangedEvent{
		PreviousIndex: event.PreviousIndex,
		CurrentIndex:  event.CurrentIndex(),
	}
	if event.PreviousSection != nil {
		ev.PreviousID = event.PreviousSection.ID
	}
	if current := event.CurrentSection(); current != nil {
		ev.CurrentID = current.ID
	}
	b.bus.Publish(ev)
}
