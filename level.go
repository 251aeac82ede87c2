package cadence

import (
	"errors"
	"fmt"
)

// ObjectData is one object of a level as the level model resolved it. The
// Parent* fields are the object's own settings for how much of its parent
// reaches it: ParentAnimate switches a parent channel off, ParentParallax
// scales it, and ParentOffset shifts the time the parent is sampled at.
type ObjectData struct {
	ID       string
	Name     string
	ParentID string

	StartTime float32
	KillTime  float32
	Depth     float32

	Desync         bool
	ParentAnimate  [3]bool
	ParentAdditive [3]bool
	ParentOffset   [3]float32
	ParentParallax [3]float32

	CameraParent   bool
	CameraParallax [3]float32

	Gradient     bool
	PrefabOffset Transform

	Position []EventKeyframe
	Scale    []EventKeyframe
	Rotation []EventKeyframe
	Color    []EventKeyframe
}

// NewObjectData returns a record with every channel animated at full
// parallax and an identity prefab offset.
func NewObjectData(id string) *ObjectData {
	return &ObjectData{
		ID:             id,
		ParentAnimate:  [3]bool{true, true, true},
		ParentParallax: [3]float32{1, 1, 1},
		CameraParallax: [3]float32{1, 1, 1},
		PrefabOffset:   IdentityTransform,
	}
}

// ParentLookup resolves a parent ID to its record.
type ParentLookup interface {
	Lookup(id string) (*ObjectData, bool)
}

// Builder turns ObjectData records into LevelObjects with resolved chains.
type Builder struct {
	Palette Palette

	objects map[string]*ObjectData
	order   []string
	parents ParentLookup
}

// NewBuilder creates an empty Builder resolving color slots from palette.
func NewBuilder(palette Palette) *Builder {
	return &Builder{Palette: palette, objects: make(map[string]*ObjectData)}
}

// Add registers a record. A later record with the same ID replaces the
// earlier one but keeps its position in Build order.
func (b *Builder) Add(d *ObjectData) {
	if d == nil {
		panic("cadence: cannot add nil object data")
	}
	if _, ok := b.objects[d.ID]; !ok {
		b.order = append(b.order, d.ID)
	}
	b.objects[d.ID] = d
}

// Lookup implements ParentLookup.
func (b *Builder) Lookup(id string) (*ObjectData, bool) {
	d, ok := b.objects[id]
	return d, ok
}

// SetParentLookup resolves parent IDs through l instead of the Builder's own
// records, for levels whose ancestors live in a shared prefab library. A nil
// l restores the default.
func (b *Builder) SetParentLookup(l ParentLookup) {
	b.parents = l
}

// Len returns the number of registered records.
func (b *Builder) Len() int {
	return len(b.objects)
}

// Build creates the object for id. A missing or cyclic ancestor truncates
// the chain at that point; the object is still returned together with the
// soft error so callers can log it.
func (b *Builder) Build(id string) (*LevelObject, error) {
	d, ok := b.objects[id]
	if !ok {
		return nil, fmt.Errorf("build %q: %w", id, ErrObjectNotFound)
	}

	own, err := b.link(d)
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", id, err)
	}

	o := NewLevelObject(d.ID, d.Name)
	o.KillTime = d.KillTime
	o.Depth = d.Depth
	o.PrefabOffset = d.PrefabOffset

	cc, err := ColorKeyframes(d.Color, b.Palette, d.Gradient)
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", id, err)
	}
	o.Color, o.Opacity = cc.Color, cc.Opacity
	o.Hue, o.Saturation, o.Value = cc.Hue, cc.Saturation, cc.Value
	o.GradientColor, o.GradientOpacity = cc.GradientColor, cc.GradientOpacity

	chain, soft := b.chain(d, own)
	o.SetChain(chain)
	o.SetStartTime(d.StartTime)
	if soft != nil {
		logger.Warn().Str("object", id).Err(soft).Msg("chain truncated")
		return o, fmt.Errorf("build %q: %w", id, soft)
	}
	return o, nil
}

// BuildAll builds every registered object in the order they were added.
// Objects whose chain was truncated are still returned; hard failures are
// skipped. The returned error joins every failure.
func (b *Builder) BuildAll() ([]*LevelObject, error) {
	objs := make([]*LevelObject, 0, len(b.order))
	var errs []error
	for _, id := range b.order {
		o, err := b.Build(id)
		if err != nil {
			errs = append(errs, err)
		}
		if o != nil {
			objs = append(objs, o)
		}
	}
	return objs, errors.Join(errs...)
}

// chain walks parent references outward from d, creating a fresh link per
// ancestor so no two objects share sequence cursors.
func (b *Builder) chain(d *ObjectData, own *ParentLink) ([]*ParentLink, error) {
	var lookup ParentLookup = b
	if b.parents != nil {
		lookup = b.parents
	}
	links := []*ParentLink{own}
	visited := map[string]bool{d.ID: true}
	cur := d
	for cur.ParentID != "" {
		if visited[cur.ParentID] {
			return links, &ChainCycleError{ObjectID: d.ID, ParentID: cur.ParentID}
		}
		parent, ok := lookup.Lookup(cur.ParentID)
		if !ok {
			return links, &MissingAncestorError{ObjectID: cur.ID, ParentID: cur.ParentID}
		}
		visited[parent.ID] = true
		l, err := b.link(parent)
		if err != nil {
			return links, err
		}
		links = append(links, l)
		cur = parent
	}
	return links, nil
}

// link builds the ParentLink for d's own sequences and declared settings.
func (b *Builder) link(d *ObjectData) (*ParentLink, error) {
	pos, err := PositionKeyframes(d.Position)
	if err != nil {
		return nil, fmt.Errorf("object %q position: %w", d.ID, err)
	}
	scale, err := ScaleKeyframes(d.Scale)
	if err != nil {
		return nil, fmt.Errorf("object %q scale: %w", d.ID, err)
	}
	rot, err := RotationKeyframes(d.Rotation)
	if err != nil {
		return nil, fmt.Errorf("object %q rotation: %w", d.ID, err)
	}

	l := NewParentLink(d.ID)
	l.Position = NewSequence(LerpVec3, pos...)
	l.Scale = NewSequence(LerpVec2, scale...)
	l.Rotation = NewSequence(LerpFloat, rot...)
	l.TimeOffset = d.StartTime
	l.Animate = d.ParentAnimate
	l.Additive = d.ParentAdditive
	l.Offset = d.ParentOffset
	l.Parallax = d.ParentParallax
	l.Desync = d.Desync
	l.CameraParent = d.CameraParent
	l.CameraParallax = d.CameraParallax
	return l, nil
}
