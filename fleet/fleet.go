// Package fleet simulates the scripted enemy fleet: its roster, the shared
// alert countdown, per-tick trajectory evaluation, picking and destruction
// bookkeeping.
package fleet

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/droplet/components"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
	"github.com/pthm-cable/droplet/trajectory"
)

// ShipRef is a weak handle to a ship. It stays comparable after the ship is
// destroyed; use Fleet.Valid to check it.
type ShipRef = ecs.Entity

// Settings holds fleet tuning.
type Settings struct {
	CountdownMin  float64 // seconds
	CountdownSpan float64 // countdown is uniform in [min, min+span)
	LookAhead     float64 // path distance used for heading
	DefaultRadius float64 // collision radius when a spec has none

	Ranges trajectory.Ranges
	Window trajectory.Window

	LineBaseColor        scene.Color
	LineBaseOpacity      float64 // maneuvering, not highlighted
	LineHighlightOpacity float64
	LineFadeRate         float64 // per second
	LineColorRate        float64 // per second

	LabelLift float64 // world units above the ship
}

// DefaultSettings returns the stock fleet tuning.
func DefaultSettings() Settings {
	return Settings{
		CountdownMin:         30,
		CountdownSpan:        30,
		LookAhead:            10,
		DefaultRadius:        20,
		Ranges:               trajectory.DefaultRanges(),
		Window:               trajectory.DefaultWindow(),
		LineBaseColor:        scene.Gray,
		LineBaseOpacity:      0.1,
		LineHighlightOpacity: 1.0,
		LineFadeRate:         2,
		LineColorRate:        10,
		LabelLift:            20,
	}
}

// ShipSpec describes a ship body handed to Initialize.
type ShipSpec struct {
	Body     scene.ObjectID
	Position kinematics.Vec
	Rotation kinematics.Quat
	Radius   float64
}

// AlertState is the fleet-wide alert and countdown. All times are on the
// fleet's simulation clock.
type AlertState struct {
	Alerted       bool
	CountingDown  bool
	Maneuvering   bool
	Duration      float64
	AlertTime     float64
	ManeuverStart float64
}

// Remaining returns the countdown time left at now, never negative.
func (a AlertState) Remaining(now float64) float64 {
	if !a.CountingDown {
		return 0
	}
	return math.Max(0, a.Duration-(now-a.AlertTime))
}

// DestroyedShip is the frozen record of a destroyed ship.
type DestroyedShip struct {
	Name     string
	Index    int
	Position kinematics.Vec
}

// Ship is a read-only view of an active ship.
type Ship struct {
	Ref      ShipRef
	Name     string
	Index    int
	Body     scene.ObjectID
	Radius   float64
	State    components.ShipState
	Position kinematics.Vec
	Velocity kinematics.Vec
	Rotation kinematics.Quat
	Speed    float64
	Params   trajectory.Params
	Hovered  bool
	Selected bool
}

// Pointer is the mouse state used for hover and click selection.
type Pointer struct {
	Pos     kinematics.Vec2
	Active  bool // pointer is over the viewport
	Clicked bool // primary button pressed this tick
}

// Label is an on-screen name tag for a visible ship.
type Label struct {
	Ref      ShipRef
	Name     string
	Screen   kinematics.Vec2
	Speed    float64
	Hovered  bool
	Selected bool
}

// TickResult reports what changed during a tick.
type TickResult struct {
	ManeuverStarted  bool
	Destroyed        []DestroyedShip
	SelectionChanged bool
}

// Fleet owns the ship roster.
type Fleet struct {
	host     scene.Host
	rng      *rand.Rand
	settings Settings

	world     *ecs.World
	mapper    *ecs.Map4[components.Identity, components.Motion, components.Kinetics, components.Status]
	identMap  *ecs.Map1[components.Identity]
	motionMap *ecs.Map1[components.Motion]
	kinMap    *ecs.Map1[components.Kinetics]
	statusMap *ecs.Map1[components.Status]

	roster    []ShipRef // active ships in spawn order
	byBody    map[scene.ObjectID]ShipRef
	destroyed []DestroyedShip
	total     int

	alert AlertState
	clock float64

	hovered     ShipRef
	hasHovered  bool
	selected    ShipRef
	hasSelected bool

	labels  []Label
	scratch []kinematics.Vec
}

// New creates an empty fleet.
func New(host scene.Host, rng *rand.Rand, s Settings) *Fleet {
	world := ecs.NewWorld()
	return &Fleet{
		host:     host,
		rng:      rng,
		settings: s,
		world:    world,
		mapper: ecs.NewMap4[
			components.Identity,
			components.Motion,
			components.Kinetics,
			components.Status,
		](world),
		identMap:  ecs.NewMap1[components.Identity](world),
		motionMap: ecs.NewMap1[components.Motion](world),
		kinMap:    ecs.NewMap1[components.Kinetics](world),
		statusMap: ecs.NewMap1[components.Status](world),
		byBody:    make(map[scene.ObjectID]ShipRef),
	}
}

// Initialize creates one idle ship per spec with a unique name and random
// motion parameters. It returns the new refs in spec order.
func (f *Fleet) Initialize(specs []ShipSpec) []ShipRef {
	names := drawNames(f.rng, len(specs))
	refs := make([]ShipRef, 0, len(specs))

	for i, spec := range specs {
		radius := spec.Radius
		if radius <= 0 {
			radius = f.settings.DefaultRadius
		}
		rot := spec.Rotation
		if rot == (kinematics.Quat{}) {
			rot = kinematics.Identity()
		}

		id := components.Identity{
			Name:   names[i],
			Index:  f.total,
			Body:   spec.Body,
			Line:   f.host.Spawn(scene.KindLine),
			Radius: radius,
		}
		motion := components.Motion{
			Params: trajectory.NewParams(f.rng, spec.Position, f.settings.Ranges),
		}
		kin := components.Kinetics{
			Position: spec.Position,
			Rotation: rot,
		}
		status := components.Status{
			State:          components.StateIdle,
			LineColor:      f.settings.LineBaseColor,
			HighlightColor: scene.HSL(f.rng.Float64(), 1, 0.5),
		}
		f.host.SetLine(id.Line, nil, status.LineColor, 0)

		ref := f.mapper.NewEntity(&id, &motion, &kin, &status)
		f.roster = append(f.roster, ref)
		f.byBody[spec.Body] = ref
		refs = append(refs, ref)
		f.total++
	}

	slog.Info("fleet_initialized", "ships", len(specs))
	return refs
}

// Alert starts the countdown. It is a no-op once the fleet has been alerted.
// Returns true if this call raised the alert.
func (f *Fleet) Alert() bool {
	if f.alert.Alerted {
		return false
	}
	f.alert.Alerted = true
	f.alert.CountingDown = true
	f.alert.AlertTime = f.clock
	f.alert.Duration = f.settings.CountdownMin + f.rng.Float64()*f.settings.CountdownSpan

	slog.Info("fleet_alerted", "countdown", f.alert.Duration, "sim_time", f.clock)
	return true
}

// Tick advances the fleet by dt seconds using cam for labels and picking.
func (f *Fleet) Tick(dt float64, cam scene.Camera, ptr Pointer) TickResult {
	var res TickResult
	f.clock += dt

	if f.alert.CountingDown && f.alert.Remaining(f.clock) <= 0 {
		f.startManeuver()
		res.ManeuverStarted = true
	}

	// Bodies removed outside the fleet (consumed by an explosion) are the
	// authoritative destroy path when no collision already marked them.
	var gone []ShipRef
	for _, ref := range f.roster {
		if !f.host.Exists(f.identMap.Get(ref).Body) {
			gone = append(gone, ref)
		}
	}
	for _, ref := range gone {
		if d, ok := f.MarkDestroyed(ref); ok {
			res.Destroyed = append(res.Destroyed, d)
		}
	}

	f.updateHover(cam, ptr)
	if ptr.Clicked {
		f.handleClick()
		res.SelectionChanged = true
	}

	t := f.ManeuverTime()
	fade := kinematics.Clamp(dt*f.settings.LineFadeRate, 0, 1)
	tint := kinematics.Clamp(dt*f.settings.LineColorRate, 0, 1)
	f.labels = f.labels[:0]

	for _, ref := range f.roster {
		id := f.identMap.Get(ref)
		motion := f.motionMap.Get(ref)
		kin := f.kinMap.Get(ref)
		st := f.statusMap.Get(ref)

		lineTime := 0.0
		if st.State == components.StateManeuvering {
			pose := trajectory.Evaluate(motion.Params, t, f.settings.LookAhead)
			kin.Position = pose.Position
			kin.Velocity = pose.Velocity
			kin.Speed = pose.Speed
			kin.Rotation = kinematics.LookRotation(pose.Heading, kinematics.AxisY)
			f.host.SetTransform(id.Body, kin.Position, kin.Rotation)
			lineTime = t
		} else {
			kin.Velocity = kinematics.Vec{}
			kin.Speed = 0
		}

		f.scratch = trajectory.SampleInto(f.scratch, motion.Params, lineTime, f.settings.Window)

		highlighted := st.Highlighted()
		targetColor := f.settings.LineBaseColor
		if highlighted {
			targetColor = st.HighlightColor
		}
		targetOpacity := 0.0
		switch {
		case highlighted:
			targetOpacity = f.settings.LineHighlightOpacity
		case st.State == components.StateManeuvering:
			targetOpacity = f.settings.LineBaseOpacity
		}
		st.LineColor = st.LineColor.Lerp(targetColor, tint)
		st.LineOpacity += (targetOpacity - st.LineOpacity) * fade
		f.host.SetLine(id.Line, f.scratch, st.LineColor, st.LineOpacity)

		if _, inView := f.host.Project(kin.Position, cam); inView {
			lifted := kinematics.Add(kin.Position, kinematics.V(0, f.settings.LabelLift, 0))
			if screen, ok := f.host.Project(lifted, cam); ok {
				f.labels = append(f.labels, Label{
					Ref:      ref,
					Name:     id.Name,
					Screen:   screen,
					Speed:    kin.Speed,
					Hovered:  st.Hovered,
					Selected: st.Selected,
				})
			}
		}
	}

	return res
}

func (f *Fleet) startManeuver() {
	f.alert.CountingDown = false
	f.alert.Maneuvering = true
	f.alert.ManeuverStart = f.clock

	n := 0
	for _, ref := range f.roster {
		st := f.statusMap.Get(ref)
		if st.State == components.StateIdle {
			st.State = components.StateManeuvering
			n++
		}
	}
	slog.Info("maneuver_started", "ships", n, "sim_time", f.clock)
}

func (f *Fleet) updateHover(cam scene.Camera, ptr Pointer) {
	if f.hasHovered && f.world.Alive(f.hovered) {
		f.statusMap.Get(f.hovered).Hovered = false
	}
	f.hasHovered = false
	if !ptr.Active || len(f.roster) == 0 {
		return
	}

	targets := make([]scene.Pickable, 0, len(f.roster))
	for _, ref := range f.roster {
		id := f.identMap.Get(ref)
		targets = append(targets, scene.Pickable{ID: id.Body, Radius: id.Radius})
	}
	hit, ok := f.host.Pick(ptr.Pos, cam, targets)
	if !ok {
		return
	}
	ref, ok := f.byBody[hit]
	if !ok {
		return
	}
	f.hovered = ref
	f.hasHovered = true
	f.statusMap.Get(ref).Hovered = true
}

// handleClick toggles selection of the hovered ship, or clears the
// selection when nothing is hovered.
func (f *Fleet) handleClick() {
	if !f.hasHovered {
		f.Select(ShipRef{}, false)
		return
	}
	if f.hasSelected && f.selected == f.hovered {
		f.Select(ShipRef{}, false)
		return
	}
	f.Select(f.hovered, true)
}

// Select marks ref as the selected ship, or clears the selection when ok is
// false or ref is no longer valid.
func (f *Fleet) Select(ref ShipRef, ok bool) {
	if f.hasSelected && f.world.Alive(f.selected) {
		f.statusMap.Get(f.selected).Selected = false
	}
	f.hasSelected = false
	if !ok || !f.world.Alive(ref) {
		return
	}
	f.selected = ref
	f.hasSelected = true
	f.statusMap.Get(ref).Selected = true
}

// Selected returns the selected ship, if any.
func (f *Fleet) Selected() (ShipRef, bool) {
	if !f.hasSelected || !f.world.Alive(f.selected) {
		return ShipRef{}, false
	}
	return f.selected, true
}

// Hovered returns the ship under the pointer, if any.
func (f *Fleet) Hovered() (ShipRef, bool) {
	if !f.hasHovered || !f.world.Alive(f.hovered) {
		return ShipRef{}, false
	}
	return f.hovered, true
}

// MarkDestroyed moves a ship to the destroyed roster, freezing its last
// position. Repeated calls for the same ship do nothing and return false.
func (f *Fleet) MarkDestroyed(ref ShipRef) (DestroyedShip, bool) {
	if !f.world.Alive(ref) {
		return DestroyedShip{}, false
	}
	id := f.identMap.Get(ref)
	kin := f.kinMap.Get(ref)

	d := DestroyedShip{
		Name:     id.Name,
		Index:    id.Index,
		Position: kin.Position,
	}

	f.host.Remove(id.Line)
	delete(f.byBody, id.Body)
	if i := slices.Index(f.roster, ref); i >= 0 {
		f.roster = slices.Delete(f.roster, i, i+1)
	}
	if f.hasSelected && f.selected == ref {
		f.hasSelected = false
	}
	if f.hasHovered && f.hovered == ref {
		f.hasHovered = false
	}
	f.world.RemoveEntity(ref)

	f.destroyed = append(f.destroyed, d)
	slog.Info("ship_destroyed",
		"name", d.Name,
		"alive", len(f.roster),
		"total", f.total,
	)
	return d, true
}

// Valid reports whether ref still refers to an active ship.
func (f *Fleet) Valid(ref ShipRef) bool {
	return f.world.Alive(ref)
}

// Ship returns a view of an active ship.
func (f *Fleet) Ship(ref ShipRef) (Ship, bool) {
	if !f.world.Alive(ref) {
		return Ship{}, false
	}
	return f.view(ref), true
}

// ShipByBody looks up an active ship by its scene body.
func (f *Fleet) ShipByBody(body scene.ObjectID) (Ship, bool) {
	ref, ok := f.byBody[body]
	if !ok {
		return Ship{}, false
	}
	return f.Ship(ref)
}

// Ships returns views of all active ships in spawn order.
func (f *Fleet) Ships() []Ship {
	out := make([]Ship, 0, len(f.roster))
	for _, ref := range f.roster {
		out = append(out, f.view(ref))
	}
	return out
}

func (f *Fleet) view(ref ShipRef) Ship {
	id := f.identMap.Get(ref)
	motion := f.motionMap.Get(ref)
	kin := f.kinMap.Get(ref)
	st := f.statusMap.Get(ref)
	return Ship{
		Ref:      ref,
		Name:     id.Name,
		Index:    id.Index,
		Body:     id.Body,
		Radius:   id.Radius,
		State:    st.State,
		Position: kin.Position,
		Velocity: kin.Velocity,
		Rotation: kin.Rotation,
		Speed:    kin.Speed,
		Params:   motion.Params,
		Hovered:  st.Hovered,
		Selected: st.Selected,
	}
}

// Locate returns the current position of an active ship.
func (f *Fleet) Locate(ref ShipRef) (kinematics.Vec, bool) {
	if !f.world.Alive(ref) {
		return kinematics.Vec{}, false
	}
	return f.kinMap.Get(ref).Position, true
}

// Nearest returns the active ship closest to pos.
func (f *Fleet) Nearest(pos kinematics.Vec) (ShipRef, float64, bool) {
	var best ShipRef
	bestDist := math.Inf(1)
	found := false
	for _, ref := range f.roster {
		d := kinematics.Distance(pos, f.kinMap.Get(ref).Position)
		if d < bestDist {
			best, bestDist, found = ref, d, true
		}
	}
	return best, bestDist, found
}

// Destroyed returns the destroyed roster in destruction order.
func (f *Fleet) Destroyed() []DestroyedShip {
	return f.destroyed
}

// Labels returns the labels computed on the last tick.
func (f *Fleet) Labels() []Label {
	return f.labels
}

// AlertState returns the current alert state.
func (f *Fleet) AlertState() AlertState {
	return f.alert
}

// Countdown returns the time left before the fleet maneuvers and whether a
// countdown is running.
func (f *Fleet) Countdown() (float64, bool) {
	return f.alert.Remaining(f.clock), f.alert.CountingDown
}

// ManeuverTime returns seconds since the maneuver started, or 0 before it.
func (f *Fleet) ManeuverTime() float64 {
	if !f.alert.Maneuvering {
		return 0
	}
	return math.Max(0, f.clock-f.alert.ManeuverStart)
}

// Clock returns the fleet's simulation time.
func (f *Fleet) Clock() float64 {
	return f.clock
}

// AliveCount returns the number of active ships.
func (f *Fleet) AliveCount() int { return len(f.roster) }

// DestroyedCount returns the number of destroyed ships.
func (f *Fleet) DestroyedCount() int { return len(f.destroyed) }

// Total returns the number of ships ever created.
func (f *Fleet) Total() int { return f.total }

// StatusText returns the roster summary shown on the HUD.
func (f *Fleet) StatusText() string {
	return fmt.Sprintf("Fleet Status: %d/%d Operational", len(f.roster), f.total)
}
