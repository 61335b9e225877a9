// internal/types/handle.go
package types

// HandleState describes which draggable handles a text field currently shows.
type HandleState int

const (
	HandleStateNone      HandleState = iota // no handles visible
	HandleStateSelection                    // start + end selection handles
	HandleStateCursor                       // single cursor handle
)

func (s HandleState) String() string {
	switch s {
	case HandleStateNone:
		return "None"
	case HandleStateSelection:
		return "Selection"
	case HandleStateCursor:
		return "Cursor"
	}
	return "Unknown"
}

// HandleKind identifies a single draggable handle within a field.
type HandleKind int

const (
	HandleStart  HandleKind = iota // selection start boundary
	HandleEnd                      // selection end boundary
	HandleCursor                   // collapsed cursor handle
)

func (k HandleKind) String() string {
	switch k {
	case HandleStart:
		return "Start"
	case HandleEnd:
		return "End"
	case HandleCursor:
		return "Cursor"
	}
	return "Unknown"
}
