package cadence

// EntityStore is the interface for optional ECS integration.
// When set on a Scene or Manager, lifecycle events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of lifecycle event.
type EventType uint8

const (
	EventAnimationCompleted EventType = iota // an Animation finished all handlers
	EventAnimationLooped                     // a looping Animation finished and restarted
	EventObjectActivated                     // a LevelObject entered its lifetime window
	EventObjectDeactivated                   // a LevelObject left its lifetime window
	EventObjectFailed                        // a LevelObject's tick failed and it fell back to its local transform
)

// Event carries lifecycle data for the ECS bridge. Only the fields relevant
// to Type are set.
type Event struct {
	Type EventType

	// Animation fields
	AnimationID   uint64
	AnimationName string

	// Object fields
	ObjectID string
	Time     float32
	Err      error
}
