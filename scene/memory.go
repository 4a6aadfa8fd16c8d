package scene

import (
	"slices"

	"github.com/pthm-cable/droplet/kinematics"
)

// Object is the stored state of one scene object.
type Object struct {
	ID        ObjectID
	Kind      Kind
	Transform Transform

	// Line geometry (KindLine).
	Line      []kinematics.Vec
	LineColor Color

	// Particles (KindPoints).
	Points []Point

	Opacity float64
}

// MemoryHost is an in-process Host. It backs headless runs and tests, and is
// embedded by the graphical renderer which draws its contents each frame.
type MemoryHost struct {
	objects map[ObjectID]*Object
	nextID  ObjectID

	spawned int
	removed int
}

// NewMemoryHost creates an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		objects: make(map[ObjectID]*Object),
		nextID:  1,
	}
}

// Spawn creates a visible object at the origin.
func (h *MemoryHost) Spawn(kind Kind) ObjectID {
	id := h.nextID
	h.nextID++
	h.objects[id] = &Object{
		ID:   id,
		Kind: kind,
		Transform: Transform{
			Rotation: kinematics.Identity(),
			Scale:    1,
			Visible:  true,
		},
		Opacity: 1,
	}
	h.spawned++
	return id
}

// Remove deletes an object. Unknown ids are ignored.
func (h *MemoryHost) Remove(id ObjectID) {
	if _, ok := h.objects[id]; !ok {
		return
	}
	delete(h.objects, id)
	h.removed++
}

// Exists reports whether id refers to a live object.
func (h *MemoryHost) Exists(id ObjectID) bool {
	_, ok := h.objects[id]
	return ok
}

// SetTransform places an object.
func (h *MemoryHost) SetTransform(id ObjectID, pos kinematics.Vec, rot kinematics.Quat) {
	if o, ok := h.objects[id]; ok {
		o.Transform.Position = pos
		o.Transform.Rotation = rot
	}
}

// Transform returns an object's placement.
func (h *MemoryHost) Transform(id ObjectID) (Transform, bool) {
	o, ok := h.objects[id]
	if !ok {
		return Transform{}, false
	}
	return o.Transform, true
}

// SetVisible toggles rendering of an object.
func (h *MemoryHost) SetVisible(id ObjectID, visible bool) {
	if o, ok := h.objects[id]; ok {
		o.Transform.Visible = visible
	}
}

// SetScale sets a uniform scale.
func (h *MemoryHost) SetScale(id ObjectID, s float64) {
	if o, ok := h.objects[id]; ok {
		o.Transform.Scale = s
	}
}

// SetLine replaces a line's geometry. The point slice is copied.
func (h *MemoryHost) SetLine(id ObjectID, pts []kinematics.Vec, color Color, opacity float64) {
	o, ok := h.objects[id]
	if !ok {
		return
	}
	o.Line = append(o.Line[:0], pts...)
	o.LineColor = color
	o.Opacity = opacity
}

// SetPoints replaces a point cloud. The point slice is copied.
func (h *MemoryHost) SetPoints(id ObjectID, pts []Point, opacity float64) {
	o, ok := h.objects[id]
	if !ok {
		return
	}
	o.Points = append(o.Points[:0], pts...)
	o.Opacity = opacity
}

// Project maps a world point to screen pixels using the camera's projection.
func (h *MemoryHost) Project(world kinematics.Vec, cam Camera) (kinematics.Vec2, bool) {
	return cam.Project(world)
}

// Pick returns the nearest target whose bounding sphere is hit by the ray
// through screen. Targets that no longer exist are skipped.
func (h *MemoryHost) Pick(screen kinematics.Vec2, cam Camera, targets []Pickable) (ObjectID, bool) {
	ray := cam.Ray(screen)
	best := None
	bestDist := 0.0
	for _, t := range targets {
		o, ok := h.objects[t.ID]
		if !ok || !o.Transform.Visible {
			continue
		}
		d, hit := ray.IntersectSphere(o.Transform.Position, t.Radius)
		if !hit {
			continue
		}
		if best == None || d < bestDist {
			best = t.ID
			bestDist = d
		}
	}
	return best, best != None
}

// Object returns the stored object for id.
func (h *MemoryHost) Object(id ObjectID) (*Object, bool) {
	o, ok := h.objects[id]
	return o, ok
}

// Objects returns all live objects of a kind in spawn order.
func (h *MemoryHost) Objects(kind Kind) []*Object {
	var out []*Object
	for _, o := range h.objects {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b *Object) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}

// Count returns the number of live objects of a kind.
func (h *MemoryHost) Count(kind Kind) int {
	n := 0
	for _, o := range h.objects {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of live objects.
func (h *MemoryHost) Len() int {
	return len(h.objects)
}

// Stats returns lifetime spawn and removal counts.
func (h *MemoryHost) Stats() (spawned, removed int) {
	return h.spawned, h.removed
}
