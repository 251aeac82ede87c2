package cadence

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Scene is the top-level object that owns the animation manager, the camera
// and the level objects, and runs one tick per frame.
type Scene struct {
	Manager *Manager
	Camera  *Camera

	objects []*LevelObject
	byID    map[string]*LevelObject
	active  []*LevelObject
	store   EntityStore
	debug   bool
	pool    *objectPool

	time     float32
	tickTime float32
	primed   bool
}

// NewScene creates an empty scene configured by cfg. cfg is not validated;
// use ParseConfig or Config.Validate first.
func NewScene(cfg Config) *Scene {
	cam := NewCamera(Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)})
	cam.Zoom = cfg.Camera.Zoom
	cam.Rotation = cfg.Camera.Rotation
	if cfg.Window.UnitSize > 0 {
		cam.UnitSize = cfg.Window.UnitSize
	}

	s := &Scene{
		Manager: NewManager(WithSpeed(cfg.Speed)),
		Camera:  cam,
		byID:    make(map[string]*LevelObject),
	}
	if cfg.Workers > 1 {
		s.pool = newObjectPool(cfg.Workers)
	}
	if lvl, err := cfg.Level(); err == nil && lvl != zerolog.NoLevel {
		SetLogger(logger.Level(lvl))
	}
	s.SetDebugMode(cfg.Debug)
	return s
}

// SetEntityStore sets the optional ECS bridge on the scene and its manager.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
	s.Manager.SetEntityStore(store)
}

// SetDebugMode enables or disables debug mode. When enabled, chain depth
// warnings and per-tick stats are logged, and the logger is lowered to debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled && logger.GetLevel() > zerolog.DebugLevel {
		SetLogger(logger.Level(zerolog.DebugLevel))
	}
}

// AddObject adds o to the scene, replacing any object with the same ID. The
// object follows the scene camera and starts inactive.
func (s *Scene) AddObject(o *LevelObject) {
	if o == nil {
		panic("cadence: cannot add nil object")
	}
	if _, ok := s.byID[o.ID]; ok {
		s.RemoveObject(o.ID)
	}
	o.SetCamera(s.Camera)
	s.objects = append(s.objects, o)
	s.byID[o.ID] = o
	if s.debug {
		debugCheckChainDepth(o)
	}
}

// RemoveObject destroys and removes the object with the given ID and reports
// whether it existed.
func (s *Scene) RemoveObject(id string) bool {
	o, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	s.objects = slices.DeleteFunc(s.objects, func(x *LevelObject) bool { return x == o })
	o.Destroy()
	return true
}

// Object returns the object with the given ID.
func (s *Scene) Object(id string) (*LevelObject, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("object %q: %w", id, ErrObjectNotFound)
	}
	return o, nil
}

// Objects returns the scene's objects in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Objects() []*LevelObject {
	return s.objects
}

// LoadLevel builds every record in b and adds the resulting objects. Objects
// with truncated chains are added anyway; the returned error reports them
// along with records that could not be built at all.
func (s *Scene) LoadLevel(b *Builder) error {
	objs, err := b.BuildAll()
	for _, o := range objs {
		s.AddObject(o)
	}
	return err
}

// Time returns the level time of the last Update.
func (s *Scene) Time() float32 {
	return s.time
}

// Update runs one tick at the given level time: camera tweens, then every
// playing animation, then the compositor for every object alive at that
// time. A failing object is logged once and rendered at its own local
// transform; it never stops the tick.
func (s *Scene) Update(globalTime float32) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	dt := float32(0)
	if s.primed {
		dt = max(globalTime-s.time, 0)
	}
	s.time = globalTime
	s.primed = true

	s.Camera.Update(dt)
	s.Manager.Update()

	if s.debug {
		stats.animateTime = time.Since(t0)
		stats.animations = s.Manager.Len()
		t0 = time.Now()
	}

	s.active = s.active[:0]
	for _, o := range s.objects {
		alive := o.AliveAt(globalTime)
		if alive != o.active {
			o.SetActive(alive)
			s.emitActivity(o, alive)
		}
		if alive {
			s.active = append(s.active, o)
		}
	}

	s.tickTime = globalTime
	if s.pool != nil && len(s.active) > 1 {
		s.pool.run(s.active, s.tickObject)
	} else {
		for _, o := range s.active {
			s.tickObject(o)
		}
	}

	for _, o := range s.active {
		if o.err == nil {
			o.failed = false
			continue
		}
		stats.failures++
		if o.failed {
			continue
		}
		o.failed = true
		logger.Warn().Str("object", o.ID).Err(o.err).Msg("object tick failed")
		if s.store != nil {
			s.store.EmitEvent(Event{Type: EventObjectFailed, ObjectID: o.ID, Time: globalTime, Err: o.err})
		}
	}

	if s.debug {
		stats.composeTime = time.Since(t0)
		stats.objects = len(s.objects)
		stats.interpolated = len(s.active)
		s.debugLog(stats)
	}
}

// tickObject interpolates one object, recovering from panics so a single
// broken object cannot abort the tick.
func (s *Scene) tickObject(o *LevelObject) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		o.err = fmt.Errorf("object %q: panic: %v", o.ID, r)
		// The visual that panicked may panic again on the fallback push.
		defer func() { _ = recover() }()
		o.fallback()
	}()
	o.err = o.Interpolate(s.tickTime)
}

func (s *Scene) emitActivity(o *LevelObject, alive bool) {
	if s.store == nil {
		return
	}
	typ := EventObjectDeactivated
	if alive {
		typ = EventObjectActivated
	}
	s.store.EmitEvent(Event{Type: typ, ObjectID: o.ID, Time: s.time})
}

// Close stops every animation, destroys every object and stops the worker
// pool. Later updates interpolate inline.
func (s *Scene) Close() {
	s.Manager.Close()
	if s.pool != nil {
		s.pool.close()
		s.pool = nil
	}
	for _, o := range s.objects {
		o.Destroy()
	}
	s.objects = nil
	clear(s.byID)
	s.active = nil
}
