// Package navigation tracks the reading position within a book's spine.
package navigation

import (
	"fmt"
	"reflect"

	"spinewalk/internal/domain"
)

// subscription wraps one registration so a handler removed mid-dispatch can be skipped
type subscription struct {
	observer Observer
	active   bool
}

// funcObserver gives OnChange handlers a comparable identity
type funcObserver struct {
	fn func(event ChangeEvent)
}

func (o *funcObserver) SectionChanged(event ChangeEvent) { o.fn(event) }

// Cursor is the current reading position within a Sequence.
//
// Every move goes through GotoIndex: moving to the current index or outside
// [0, Len()) is a no-op. A move that changes the index notifies all
// observers synchronously, in subscription order, before it returns.
// Observer panics are not recovered.
//
// A Cursor is not safe for concurrent use; give each viewer its own cursor
// over a shared sequence instead.
type Cursor struct {
	seq           Sequence
	index         int
	section       *domain.Section
	subscriptions []*subscription
}

// NewCursor creates an unpositioned cursor over seq
func NewCursor(seq Sequence) (*Cursor, error) {
	if seq == nil {
		return nil, ErrNilSequence
	}
	return &Cursor{
		seq:   seq,
		index: Unset,
	}, nil
}

// Sequence returns the sequence the cursor walks over
func (c *Cursor) Sequence() Sequence {
	return c.seq
}

// Index returns the current index, or Unset
func (c *Cursor) Index() int {
	return c.index
}

// Section returns the section at the current index, or nil when unset
func (c *Cursor) Section() *domain.Section {
	return c.section
}

// Positioned reports whether the cursor has a current section
func (c *Cursor) Positioned() bool {
	return c.index != Unset
}

// HasNext reports whether Next would move the cursor
func (c *Cursor) HasNext() bool {
	return c.index < c.seq.Len()-1
}

// HasPrevious reports whether Previous would move the cursor to an earlier section
func (c *Cursor) HasPrevious() bool {
	return c.index > 0
}

// First moves to the first section
func (c *Cursor) First() int {
	return c.GotoIndex(0)
}

// Last moves to the last section
func (c *Cursor) Last() int {
	return c.GotoIndex(c.seq.Len() - 1)
}

// Previous moves one section back; an unset cursor moves to the first section
func (c *Cursor) Previous() int {
	if c.index == Unset {
		return c.GotoIndex(0)
	}
	return c.GotoIndex(c.index - 1)
}

// Next moves one section forward; an unset cursor moves to the first section
func (c *Cursor) Next() int {
	if c.index == Unset {
		return c.GotoIndex(0)
	}
	return c.GotoIndex(c.index + 1)
}

// GotoIndex moves to index and returns the resulting index
func (c *Cursor) GotoIndex(index int) int {
	if index == c.index {
		return c.index
	}
	if index < 0 || index >= c.seq.Len() {
		return c.index
	}

	prevIndex, prevSection := c.index, c.section
	c.index = index
	c.section = c.seq.At(index)
	c.notify(prevIndex, prevSection)
	return index
}

// GotoID moves to the first section with the given id.
// An unknown id leaves the cursor where it is.
func (c *Cursor) GotoID(id string) int {
	return c.GotoIndex(c.seq.IndexOfID(id))
}

// GotoSection moves to the given section, matched by identity.
// A section the sequence does not hold leaves the cursor where it is.
func (c *Cursor) GotoSection(section *domain.Section) int {
	return c.GotoIndex(c.seq.IndexOf(section))
}

// SetPosition moves to index without notifying observers.
// Passing Unset clears the position.
func (c *Cursor) SetPosition(index int) (int, error) {
	if index == Unset {
		c.index, c.section = Unset, nil
		return c.index, nil
	}
	if n := c.seq.Len(); index < 0 || index >= n {
		return c.index, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, n)
	}
	c.index = index
	c.section = c.seq.At(index)
	return c.index, nil
}

// SetSection moves to section without notifying observers
func (c *Cursor) SetSection(section *domain.Section) (int, error) {
	index := c.seq.IndexOf(section)
	if index < 0 {
		return c.index, ErrNotInSequence
	}
	return c.SetPosition(index)
}

// Subscribe registers an observer. The same observer may be registered
// more than once and is then notified once per registration.
// Observers whose type is not comparable are rejected.
func (c *Cursor) Subscribe(observer Observer) bool {
	if !isComparable(observer) {
		return false
	}
	c.subscriptions = append(c.subscriptions, &subscription{observer: observer, active: true})
	return true
}

// Unsubscribe removes the earliest registration of observer and reports
// whether one was found. The observer receives nothing further, even from
// a dispatch already in progress.
func (c *Cursor) Unsubscribe(observer Observer) bool {
	if !isComparable(observer) {
		return false
	}
	for i, sub := range c.subscriptions {
		if sub.observer != observer {
			continue
		}
		sub.active = false

		// Copy so that a dispatch iterating the old slice is unaffected
		remaining := make([]*subscription, 0, len(c.subscriptions)-1)
		remaining = append(remaining, c.subscriptions[:i]...)
		remaining = append(remaining, c.subscriptions[i+1:]...)
		c.subscriptions = remaining
		return true
	}
	return false
}

// OnChange subscribes fn and returns a function that unsubscribes it
func (c *Cursor) OnChange(fn func(event ChangeEvent)) func() {
	observer := &funcObserver{fn: fn}
	c.Subscribe(observer)
	return func() {
		c.Unsubscribe(observer)
	}
}

// Observers returns the number of registrations
func (c *Cursor) Observers() int {
	return len(c.subscriptions)
}

// isComparable reports whether observer can be matched with ==
func isComparable(observer Observer) bool {
	return observer != nil && reflect.TypeOf(observer).Comparable()
}

func (c *Cursor) notify(prevIndex int, prevSection *domain.Section) {
	if prevIndex == c.index {
		return
	}
	event := ChangeEvent{
		PreviousIndex:   prevIndex,
		PreviousSection: prevSection,
		cursor:          c,
	}
	for _, sub := range c.subscriptions {
		if !sub.active {
			continue
		}
		sub.observer.SectionChanged(event)
	}
}
