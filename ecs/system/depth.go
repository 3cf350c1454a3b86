package system

import (
	"sort"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// DepthActor is one entity taking part in depth ordering.
type DepthActor struct {
	Entity ecs.Entity
	Pos    common.Vec
	Player bool
	// Fixed actors keep Depth as authored.
	Fixed bool
	Depth int
}

// ComputeDepths assigns draw depths. A player standing in a pass-through
// box drops behind the scenery; everyone else that is not fixed is ordered
// by Y above DepthBase, ties broken by entity.
func ComputeDepths(actors []DepthActor, passThrough []common.Rect) map[ecs.Entity]int {
	out := make(map[ecs.Entity]int, len(actors))
	sorted := make([]DepthActor, 0, len(actors))
	for _, a := range actors {
		switch {
		case a.Fixed:
			out[a.Entity] = a.Depth
		case a.Player && InPassThrough(a.Pos, passThrough):
			out[a.Entity] = common.DepthPassThrough
		default:
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Y != sorted[j].Pos.Y {
			return sorted[i].Pos.Y < sorted[j].Pos.Y
		}
		return sorted[i].Entity < sorted[j].Entity
	})
	for i, a := range sorted {
		out[a.Entity] = common.DepthBase + 1 + i
	}
	return out
}

func InPassThrough(pos common.Vec, rects []common.Rect) bool {
	for _, r := range rects {
		if r.Contains(pos.X, pos.Y) {
			return true
		}
	}
	return false
}

// DepthSystem writes ComputeDepths into render layers every tick.
type DepthSystem struct {
	behind bool
}

func NewDepthSystem() *DepthSystem {
	return &DepthSystem{}
}

func (ds *DepthSystem) Update(w *ecs.World) {
	var rects []common.Rect
	ecs.ForEach(w, component.PassThroughComponent.Kind(), func(_ ecs.Entity, p *component.PassThrough) {
		rects = append(rects, p.Rects...)
	})

	var actors []DepthActor
	var player ecs.Entity
	ecs.ForEach2(w, component.DepthSortedComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.DepthSorted, t *component.Transform) {
		a := DepthActor{Entity: e, Pos: common.Vec{X: t.X, Y: t.Y}}
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			a.Player = true
			player = e
		}
		if o, ok := ecs.Get(w, e, component.DepthOverrideComponent.Kind()); ok {
			a.Fixed = true
			a.Depth = o.Depth
		}
		actors = append(actors, a)
	})

	depths := ComputeDepths(actors, rects)
	for e, d := range depths {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer.Index = d
		}
	}

	if player == 0 {
		return
	}
	behind := depths[player] == common.DepthPassThrough
	if behind != ds.behind {
		ds.behind = behind
		w.Events().Push(ecs.Event{Kind: ecs.EventPassThroughChanged, Entity: player, Data: behind})
	}
}
