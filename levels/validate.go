package levels

import (
	"fmt"

	"github.com/milk9111/overworld/dialog"
)

// TextureSet answers whether a texture key exists in the manifest.
type TextureSet interface {
	Has(key string) bool
}

// Validate reports every problem found in lvl. A nil textures or scenes
// skips the corresponding checks.
func Validate(lvl *Level, textures TextureSet, scenes *SceneTable) []error {
	if lvl == nil {
		return []error{fmt.Errorf("nil level")}
	}
	v := validator{textures: textures, scenes: scenes, seen: map[string]bool{}}

	switch lvl.WorldType {
	case WorldOpen, WorldRoom:
	default:
		v.errorf("world type %q is not open or room", lvl.WorldType)
	}
	if lvl.Background != nil {
		v.texture("background", lvl.Background.Image)
	}
	for _, b := range lvl.Buildings {
		v.placement("building", b.Placement)
		if b.Door == nil || !b.Door.Enabled {
			continue
		}
		if b.Door.OpenTexture != "" {
			v.texture("building "+b.ID+" door", b.Door.OpenTexture)
		}
		if b.Door.TriggerZone != nil {
			v.zone("building "+b.ID+" trigger zone", *b.Door.TriggerZone)
		}
		if b.Door.InteractionZone != nil {
			v.zone("building "+b.ID+" interaction zone", *b.Door.InteractionZone)
			v.scene("building "+b.ID+" door", b.Door.TargetScene)
		}
	}
	for _, p := range lvl.Props {
		v.placement("prop", p.Placement)
	}
	for _, n := range lvl.NPCs {
		v.placement("npc", n.Placement)
		v.animation("npc "+n.ID, n.Animation)
	}
	for _, c := range lvl.CombatNPCs {
		v.placement("combat npc", c.Placement)
		v.animation("combat npc "+c.ID, c.Animation)
		if c.PatrolData != nil && len(c.PatrolData.Waypoints) == 1 {
			v.errorf("combat npc %s: patrol needs at least two waypoints", c.ID)
		}
	}
	for i, e := range lvl.Exits {
		switch e.Edge {
		case EdgeTop, EdgeBottom, EdgeLeft, EdgeRight:
		default:
			v.errorf("exit %d: unknown edge %q", i, e.Edge)
		}
		v.scene(fmt.Sprintf("exit %d", i), e.TargetScene)
	}
	return v.errs
}

// ValidateDialogs checks every reachable node in f: scene changes must
// name a known scene, combat actions need an enemy, and condition
// expressions must evaluate against a fresh player.
func ValidateDialogs(f dialog.File, scenes *SceneTable) []error {
	v := validator{scenes: scenes, seen: map[string]bool{}}
	exprs := dialog.NewExprCache()
	for _, npc := range f.NPCs() {
		d := f[npc]
		v.dialogTree(npc+" default", d.Default)
		for i := range d.Contextual {
			variant := &d.Contextual[i]
			owner := fmt.Sprintf("%s contextual %d", npc, i)
			if c := variant.Conditions; c != nil && c.Expr != "" {
				if _, err := exprs.Eval(c.Expr, npc, dialog.State{}); err != nil {
					v.errorf("%s: %v", owner, err)
				}
			}
			v.dialogTree(owner, &variant.Node)
		}
	}
	return v.errs
}

func (v *validator) dialogTree(owner string, root *dialog.Node) {
	dialog.Walk(root, func(n *dialog.Node) bool {
		if n.Text == "" && len(n.Lines) == 0 {
			v.errorf("%s: node %q has no text", owner, n.ID)
		}
		v.actions(owner, n.Actions)
		for _, c := range n.Choices {
			v.actions(owner, c.Actions)
		}
		return true
	})
}

func (v *validator) actions(owner string, actions []dialog.Action) {
	for _, a := range actions {
		switch a.Kind {
		case dialog.ActionChangeScene:
			v.scene(owner+" changeScene", a.Scene)
		case dialog.ActionStartCombat:
			if a.Combat == nil || a.Combat.EnemyID == "" {
				v.errorf("%s: startCombat has no enemy id", owner)
			}
		}
	}
}

type validator struct {
	textures TextureSet
	scenes   *SceneTable
	seen     map[string]bool
	errs     []error
}

func (v *validator) errorf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) placement(kind string, p Placement) {
	if p.ID == "" {
		v.errorf("%s at (%.0f, %.0f) has no id", kind, p.X, p.Y)
	} else if v.seen[p.ID] {
		v.errorf("duplicate id %q", p.ID)
	}
	v.seen[p.ID] = true
	v.texture(kind+" "+p.ID, p.Texture)
	if p.Physics != nil && (p.Physics.BodySize.Width <= 0 || p.Physics.BodySize.Height <= 0) {
		v.errorf("%s %s: physics body size must be positive", kind, p.ID)
	}
	for i, b := range p.Bodies {
		if b.Type != BodyCollision && b.Type != BodyPassThrough {
			v.errorf("%s %s: body %d has unknown type %q", kind, p.ID, i, b.Type)
		}
		if b.Width <= 0 || b.Height <= 0 {
			v.errorf("%s %s: body %d size must be positive", kind, p.ID, i)
		}
	}
}

func (v *validator) texture(owner, key string) {
	if key == "" {
		v.errorf("%s: missing texture", owner)
		return
	}
	if v.textures != nil && !v.textures.Has(key) {
		v.errorf("%s: unknown texture %q", owner, key)
	}
}

func (v *validator) zone(owner string, z Zone) {
	if z.Width <= 0 || z.Height <= 0 {
		v.errorf("%s: size must be positive", owner)
	}
}

func (v *validator) scene(owner, id string) {
	if id == "" {
		v.errorf("%s: missing target scene", owner)
		return
	}
	if v.scenes != nil && !v.scenes.Has(id) {
		v.errorf("%s: unknown target scene %q", owner, id)
	}
}

func (v *validator) animation(owner string, a *Animation) {
	if a == nil {
		return
	}
	if len(a.Frames) == 0 {
		v.errorf("%s: animation %q has no frames", owner, a.Key)
	}
	for _, f := range a.Frames {
		v.texture(owner+" animation", f)
	}
}
