package live

import "errors"

// State is the lifecycle position of a live input session.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateSaving  State = "saving"
)

var (
	ErrSessionNotFound = errors.New("live session not found")
	ErrNotReady        = errors.New("no set and player loaded")
	ErrSaveInFlight    = errors.New("a save is already in flight")
)
