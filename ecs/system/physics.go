package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeDoorSensor
)

// PhysicsSystem mirrors colliders, moving bodies and door interaction
// sensors into a Chipmunk space. The space has no gravity; bodies move by
// the velocity the controllers set.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	dt            float64

	// world is only set while the space steps so sensor callbacks can
	// reach components.
	world *ecs.World

	entities map[ecs.Entity]*bodyInfo
	sensors  map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	shapes    []*cp.Shape
	static    bool
	kinematic bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		dt:       1.0 / common.TPS,
		entities: make(map[ecs.Entity]*bodyInfo),
		sensors:  make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) FreezesWithGameplay() bool { return true }

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncBodies(w)
	ps.syncColliders(w)
	ps.syncDoorSensors(w)
	ps.syncWorldBounds(w)
	ps.syncKinematic(w)

	ps.world = w
	ps.space.Step(ps.dt)
	ps.world = nil

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	sensorHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeDoorSensor)
	sensorHandler.UserData = ps
	sensorHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return false
		}
		sys.setDoorOccupied(arb, true)
		return false
	}
	sensorHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		sys.setDoorOccupied(arb, false)
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) setDoorOccupied(arb *cp.Arbiter, inside bool) {
	if ps.world == nil {
		return
	}
	shapeA, shapeB := arb.Shapes()
	doorEntity, ok := ps.sensors[shapeA]
	if !ok {
		if doorEntity, ok = ps.sensors[shapeB]; !ok {
			return
		}
	}
	door, ok := ecs.Get(ps.world, doorEntity, component.DoorComponent.Kind())
	if !ok || door.PlayerInZone == inside {
		return
	}
	door.PlayerInZone = inside
	if inside {
		ps.world.Events().Push(ecs.Event{Kind: ecs.EventInteractionZone, Entity: doorEntity, Data: door.BuildingID})
	}
}

// syncBodies creates a body for every new PhysicsBody. The player is
// dynamic with infinite moment; everything else is kinematic and follows
// its transform.
func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for _, e := range ecs.Query(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())

		width, height := bodyComp.Width, bodyComp.Height
		if width <= 0 || height <= 0 {
			width, height = 32, 32
		}
		center := bodyComp.Rect(*transform).Center()

		info := &bodyInfo{}
		var body *cp.Body
		if isPlayer {
			body = cp.NewBody(1, cp.INFINITY)
		} else {
			body = cp.NewKinematicBody()
			info.kinematic = true
		}
		body.SetPosition(cp.Vector{X: center.X, Y: center.Y})

		shape := cp.NewBox(body, width, height, 0)
		shape.SetFriction(0)
		shape.SetElasticity(0)
		if isPlayer {
			shape.SetCollisionType(collisionTypePlayer)
		} else {
			shape.SetCollisionType(collisionTypeSolid)
		}

		ps.space.AddBody(body)
		ps.space.AddShape(shape)
		info.body = body
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		ps.entities[e] = info

		bodyComp.Body = body
		bodyComp.Shape = shape
	}
}

func (ps *PhysicsSystem) syncColliders(w *ecs.World) {
	ecs.ForEach(w, component.CollidersComponent.Kind(), func(e ecs.Entity, col *component.Colliders) {
		if len(col.Shapes) > 0 || len(col.Rects) == 0 {
			return
		}
		info := ps.entities[e]
		if info == nil {
			info = &bodyInfo{static: true, body: ps.space.StaticBody}
			ps.entities[e] = info
		}
		for _, r := range col.Rects {
			shape := ps.staticBox(r, collisionTypeSolid)
			col.Shapes = append(col.Shapes, shape)
			info.shapes = append(info.shapes, shape)
		}
	})
}

func (ps *PhysicsSystem) syncDoorSensors(w *ecs.World) {
	ecs.ForEach(w, component.DoorComponent.Kind(), func(e ecs.Entity, door *component.Door) {
		if !door.HasInteraction || door.Sensor != nil || door.Interaction.Empty() {
			return
		}
		shape := ps.staticBox(door.Interaction, collisionTypeDoorSensor)
		shape.SetSensor(true)
		door.Sensor = shape
		ps.sensors[shape] = e

		info := ps.entities[e]
		if info == nil {
			info = &bodyInfo{static: true, body: ps.space.StaticBody}
			ps.entities[e] = info
		}
		info.shapes = append(info.shapes, shape)
	})
}

func (ps *PhysicsSystem) staticBox(r common.Rect, kind cp.CollisionType) *cp.Shape {
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
	shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(kind)
	ps.space.AddShape(shape)
	return shape
}

// syncWorldBounds walls every closed edge of the level.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := []struct {
		edge string
		a    cp.Vector
		b    cp.Vector
	}{
		{edge: "top", a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{edge: "bottom", a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{edge: "left", a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{edge: "right", a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		if bounds.Open[seg.edge] {
			continue
		}
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) syncKinematic(w *ecs.World) {
	for e, info := range ps.entities {
		if !info.kinematic {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		c := bodyComp.Rect(*transform).Center()
		info.body.SetPosition(cp.Vector{X: c.X, Y: c.Y})
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.kinematic || info.body == nil {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		if bodyComp.AlignTopLeft {
			transform.X = pos.X - bodyComp.Width/2 - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.Height/2 - bodyComp.OffsetY
		} else {
			transform.X = pos.X - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.OffsetY
		}
	}
}

// Teleport moves a dynamic body and its transform together.
func (ps *PhysicsSystem) Teleport(w *ecs.World, e ecs.Entity, x, y float64) {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	transform.X, transform.Y = x, y
	info := ps.entities[e]
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if info == nil || info.body == nil || !ok {
		return
	}
	c := bodyComp.Rect(*transform).Center()
	info.body.SetPosition(cp.Vector{X: c.X, Y: c.Y})
	info.body.SetVelocityVector(cp.Vector{})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) {
			continue
		}
		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.sensors, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
