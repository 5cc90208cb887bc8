package domain

import "time"

// EventKind classifies a settled file-system change.
type EventKind uint8

const (
	// EventChanged means an existing file was modified.
	EventChanged EventKind = iota
	// EventAdded means a file appeared.
	EventAdded
	// EventDeleted means a file disappeared.
	EventDeleted
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventChanged:
		return "changed"
	case EventAdded:
		return "added"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileEvent is a single settled change to a watched file.
type FileEvent struct {
	Kind EventKind
	// Path is absolute, in OS form.
	Path string
	Time time.Time
}

// FileMeta is the metadata used for cheap change detection.
type FileMeta struct {
	ModTime float64
	Size    int64
}
