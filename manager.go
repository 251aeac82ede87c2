package cadence

import (
	"fmt"
	"slices"
)

// Manager is the registry of in-flight Animations for one session. It is an
// explicit context object: create one per level/session with NewManager, call
// Update once per tick, and Close it on teardown.
type Manager struct {
	// Speed is the global multiplier applied to every animation's elapsed time.
	Speed float32

	animations []*Animation
	updateBuf  []*Animation
	realClock  Clock
	audioClock Clock
	store      EntityStore
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRealClock overrides the wall clock used by TimeSourceReal animations.
func WithRealClock(c Clock) ManagerOption {
	return func(m *Manager) { m.realClock = c }
}

// WithAudioClock sets the clock used by TimeSourceAudio animations.
func WithAudioClock(c Clock) ManagerOption {
	return func(m *Manager) { m.audioClock = c }
}

// WithSpeed sets the initial global speed.
func WithSpeed(speed float32) ManagerOption {
	return func(m *Manager) { m.Speed = speed }
}

// WithEntityStore forwards animation completion events to store.
func WithEntityStore(store EntityStore) ManagerOption {
	return func(m *Manager) { m.store = store }
}

// NewManager creates an empty Manager. Without options real-time animations
// run on a RealClock and audio-time animations on an ExternalClock the host
// advances through AudioClock.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		Speed:      1,
		realClock:  NewRealClock(),
		audioClock: &ExternalClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RealClock returns the clock used by TimeSourceReal animations.
func (m *Manager) RealClock() Clock {
	return m.realClock
}

// AudioClock returns the clock used by TimeSourceAudio animations.
func (m *Manager) AudioClock() Clock {
	return m.audioClock
}

// SetEntityStore sets the optional ECS bridge.
func (m *Manager) SetEntityStore(store EntityStore) {
	m.store = store
}

// Play registers a (unless an animation with the same ID already is) and
// starts it. Playing an animation that is already playing is a no-op. An
// animation registered with another Manager moves to m.
func (m *Manager) Play(a *Animation) {
	if a == nil {
		panic("cadence: cannot play nil animation")
	}
	if _, ok := m.TryFindByID(a.id); !ok {
		if a.manager != nil {
			a.manager.detach(a)
		}
		a.manager = m
		m.animations = append(m.animations, a)
	}
	a.globalSpeed = m.Speed
	a.bind(m.clockFor(a.TimeSource))
	a.Play()
}

// Update advances every playing animation once. Animations added or removed
// by callbacks during Update take effect from the next tick; removed ones are
// not updated again.
func (m *Manager) Update() {
	m.updateBuf = append(m.updateBuf[:0], m.animations...)
	for _, a := range m.updateBuf {
		if a.manager != m || !a.playing {
			continue
		}
		a.globalSpeed = m.Speed
		if !a.Update() || m.store == nil {
			continue
		}
		typ := EventAnimationCompleted
		if a.Loop {
			typ = EventAnimationLooped
		}
		m.store.EmitEvent(Event{Type: typ, AnimationID: a.id, AnimationName: a.Name, Time: a.Length()})
	}
	clear(m.updateBuf)
}

// Len returns the number of registered animations.
func (m *Manager) Len() int {
	return len(m.animations)
}

// Animations returns the registered animations. The returned slice MUST NOT
// be mutated.
func (m *Manager) Animations() []*Animation {
	return m.animations
}

// RemoveByID unregisters the animation with the given ID and reports whether
// one was found.
func (m *Manager) RemoveByID(id uint64) bool {
	return m.RemoveFunc(func(a *Animation) bool { return a.id == id }) > 0
}

// RemoveByName unregisters every animation named name and returns how many
// were removed.
func (m *Manager) RemoveByName(name string) int {
	return m.RemoveFunc(func(a *Animation) bool { return a.Name == name })
}

// RemoveFunc unregisters every animation for which pred returns true and
// returns how many were removed. Removed animations are stopped.
func (m *Manager) RemoveFunc(pred func(*Animation) bool) int {
	before := len(m.animations)
	m.animations = slices.DeleteFunc(m.animations, func(a *Animation) bool {
		if !pred(a) {
			return false
		}
		if a.manager == m {
			a.manager = nil
		}
		a.Stop()
		return true
	})
	return before - len(m.animations)
}

// detach drops a from m without stopping it.
func (m *Manager) detach(a *Animation) {
	m.animations = slices.DeleteFunc(m.animations, func(x *Animation) bool { return x == a })
}

// FindByID returns the animation with the given ID.
func (m *Manager) FindByID(id uint64) (*Animation, error) {
	a, ok := m.TryFindByID(id)
	if !ok {
		return nil, fmt.Errorf("find animation %d: %w", id, ErrAnimationNotFound)
	}
	return a, nil
}

// TryFindByID is FindByID without the error.
func (m *Manager) TryFindByID(id uint64) (*Animation, bool) {
	for _, a := range m.animations {
		if a.id == id {
			return a, true
		}
	}
	return nil, false
}

// FindByName returns the first registered animation named name.
func (m *Manager) FindByName(name string) (*Animation, error) {
	a, ok := m.TryFindByName(name)
	if !ok {
		return nil, fmt.Errorf("find animation %q: %w", name, ErrAnimationNotFound)
	}
	return a, nil
}

// TryFindByName is FindByName without the error.
func (m *Manager) TryFindByName(name string) (*Animation, bool) {
	for _, a := range m.animations {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// FindAll returns every registered animation for which pred returns true.
func (m *Manager) FindAll(pred func(*Animation) bool) []*Animation {
	var out []*Animation
	for _, a := range m.animations {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}

// Close stops and unregisters every animation. The Manager may be reused
// afterwards.
func (m *Manager) Close() {
	m.RemoveFunc(func(*Animation) bool { return true })
	m.updateBuf = nil
}

func (m *Manager) clockFor(src TimeSource) Clock {
	if src == TimeSourceAudio {
		return m.audioClock
	}
	return m.realClock
}
