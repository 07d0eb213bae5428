package navigation

import (
	"errors"

	"spinewalk/internal/domain"
)

// Unset is the index reported by a cursor that has no position yet
const Unset = -1

var (
	// ErrNilSequence is returned when a cursor is built without a sequence
	ErrNilSequence = errors.New("navigation: nil sequence")
	// ErrOutOfRange is returned by the silent setters for an invalid index
	ErrOutOfRange = errors.New("navigation: index out of range")
	// ErrNotInSequence is returned by SetSection for a section the sequence does not hold
	ErrNotInSequence = errors.New("navigation: section not in sequence")
)

// Sequence is the ordered list of sections a cursor walks over.
// Implementations report a missing section or id as -1.
type Sequence interface {
	Len() int
	At(index int) *domain.Section
	IndexOf(section *domain.Section) int
	IndexOfID(id string) int
}

// Observer is notified after every move that changed the position.
// Observers are matched with == on Unsubscribe, so their dynamic type must be
// comparable; use OnChange to register a plain function.
type Observer interface {
	SectionChanged(event ChangeEvent)
}

// ChangeEvent describes a completed move.
// The previous position is captured at firing time; the current position is
// read from the cursor when asked for, so a handler running after a nested
// move sees where the cursor is now.
type ChangeEvent struct {
	PreviousIndex   int
	PreviousSection *domain.Section
	cursor          *Cursor
}

// Cursor returns the cursor that fired the event
func (e ChangeEvent) Cursor() *Cursor {
	return e.cursor
}

// CurrentIndex returns the cursor's index at the time of the call
func (e ChangeEvent) CurrentIndex() int {
	return e.cursor.Index()
}

// CurrentSection returns the cursor's section at the time of the call
func (e ChangeEvent) CurrentSection() *domain.Section {
	return e.cursor.Section()
}

// SectionChanged reports whether the cursor is at a different index than before the move
func (e ChangeEvent) SectionChanged() bool {
	return e.PreviousIndex != e.CurrentIndex()
}

// WasPositioned reports whether the cursor had a position before the move
func (e ChangeEvent) WasPositioned() bool {
	return e.PreviousIndex != Unset
}
