package watcher

// EventType represents the type of file system event.
type EventType int

const (
	// EventChanged is emitted once a written or created file has settled.
	EventChanged EventType = iota
	// EventRemoved is emitted when a file is deleted or renamed away.
	EventRemoved
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one debounced change in a watched directory.
type Event struct {
	Type EventType
	Path string
}
