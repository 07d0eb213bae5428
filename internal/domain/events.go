package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBookLoaded     EventType = "BookLoaded"
	EventSectionChanged EventType = "SectionChanged"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BookLoadedEvent is emitted once a book has been read from disk
type BookLoadedEvent struct {
	Path     string
	Title    string
	Sections int
}

func (e BookLoadedEvent) Type() EventType { return EventBookLoaded }

// SectionChangedEvent is emitted after the reading position moved.
// Unlike the cursor's own notification it is a snapshot, taken at publish time.
type SectionChangedEvent struct {
	PreviousIndex int // -1 if the cursor had no position yet
	CurrentIndex  int
	PreviousID    string
	CurrentID     string
}

func (e SectionChangedEvent) Type() EventType { return EventSectionChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
