package runner

import "errors"

// State is the lifecycle position of a Runner.
type State string

const (
	StateIdle      State = "idle"
	StatePrepared  State = "prepared"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

var (
	// ErrNotPrepared is returned by Run when Prepare did not succeed.
	ErrNotPrepared = errors.New("runner is not prepared")

	// ErrAlreadyPrepared is returned by a second call to Prepare.
	ErrAlreadyPrepared = errors.New("runner is already prepared")

	// ErrAlreadyRun is returned when Run is called more than once.
	ErrAlreadyRun = errors.New("runner has already run")

	// ErrNoWriter is returned when a planned domain has no registered writer.
	ErrNoWriter = errors.New("no writer registered")
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}
