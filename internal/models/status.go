package models

// Status is the workflow state of a card
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// Statuses lists every status in workflow order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// OrDefault returns s, or StatusTodo when s is unknown
func (s Status) OrDefault() Status {
	if s.Valid() {
		return s
	}
	return StatusTodo
}

// Label returns the human readable name of the status
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Next returns the following status, wrapping around
func (s Status) Next() Status {
	return Statuses[(s.index()+1)%len(Statuses)]
}

// Prev returns the preceding status, wrapping around
func (s Status) Prev() Status {
	return Statuses[(s.index()+len(Statuses)-1)%len(Statuses)]
}

func (s Status) index() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return 0
}
