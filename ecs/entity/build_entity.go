package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/player"
	"github.com/milk9111/overworld/prefabs"
)

type buildContext struct {
	PrefabPath string
	Library    *render.Library
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"player":       addPlayer,
	"input":        addInput,
	"transform":    addTransform,
	"animation":    addAnimation,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"depth_sorted": addDepthSorted,
	"camera":       addCamera,
	"physics_body": addPhysicsBody,
	"audio":        addAudio,
}

// Sprites read their first image from the animation, so animation must be
// built first.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"transform",
	"animation",
	"sprite",
	"render_layer",
	"depth_sorted",
	"camera",
	"physics_body",
	"audio",
}

// BuildEntity creates an entity from a YAML prefab.
func BuildEntity(w *ecs.World, lib *render.Library, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Library: lib}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addDepthSorted(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.DepthSortedComponent.Kind(), &component.DepthSorted{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	speed := spec.Speed
	if speed <= 0 {
		speed = player.DefaultSpeed
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Speed: speed, Facing: player.FacingDown})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.Sheet == "" {
		return fmt.Errorf("animation has no sheet")
	}

	clips := make(map[string]component.AnimationClip, len(spec.Clips))
	for name, def := range spec.Clips {
		fps := def.FPS
		if fps <= 0 {
			fps = spec.FPS
		}
		repeat := -1
		if def.Repeat != nil {
			repeat = *def.Repeat
		}
		clip, err := ctx.Library.SheetClip(spec.Sheet, def.First, def.Count, fps, repeat)
		if err != nil {
			return fmt.Errorf("clip %q: %w", name, err)
		}
		clips[name] = clip
	}

	anim := &component.Animation{Clips: clips}
	anim.Play(spec.Current)
	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{Alpha: spec.Alpha}
	if spec.Image != "" {
		img, err := ctx.Library.Image(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	} else if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		if clip, ok := anim.Clips[anim.Current]; ok && len(clip.Frames) > 0 {
			sprite.Image = clip.Frames[0]
		}
	}

	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		w, h := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
		sprite.OriginX = float64(w) / 2
		sprite.OriginY = float64(h) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	if spec.Smoothness <= 0 || spec.Smoothness > 1 {
		spec.Smoothness = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body needs a positive size")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        spec.Width,
		Height:       spec.Height,
		OffsetX:      spec.OffsetX,
		OffsetY:      spec.OffsetY,
		AlignTopLeft: spec.AlignTopLeft,
	})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponentFromSpec(ctx.Library, spec.Clips)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	for _, name := range spec.Autoplay {
		comp.Request(name)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponentFromSpec(lib *render.Library, clips []prefabs.AudioClipSpec) (*component.Audio, error) {
	n := len(clips)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, 0, n),
		Stop:    make([]bool, 0, n),
	}

	for i, clip := range clips {
		p, err := lib.Sound(clip.Sound)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, p)
		comp.Volume = append(comp.Volume, volume)
		comp.Play = append(comp.Play, false)
		comp.Stop = append(comp.Stop, false)
	}
	return comp, nil
}

// ParseHexColor accepts #rrggbb or #rrggbbaa.
func ParseHexColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", v, err)
	}
	g, err := parse(2)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", v, err)
	}
	b, err := parse(4)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", v, err)
	}
	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", v, err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
