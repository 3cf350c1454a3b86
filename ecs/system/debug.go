package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DebugOverlay draws physics shapes, door zones and the cursor's world
// position. Clicking copies the position to the clipboard.
type DebugOverlay struct {
	log          logrus.FieldLogger
	clipboardOK  bool
	lastCopied   string
	clipboardErr error
}

func NewDebugOverlay(log logrus.FieldLogger) *DebugOverlay {
	d := &DebugOverlay{log: log}
	if err := clipboard.Init(); err != nil {
		d.clipboardErr = err
		log.WithError(err).Warn("clipboard unavailable; coordinate copy disabled")
	} else {
		d.clipboardOK = true
	}
	return d
}

// Update handles the copy click. It runs outside the gameplay scheduler so
// it works while paused.
func (d *DebugOverlay) Update(w *ecs.World) {
	if d == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := cursorWorld(w)
	coords := fmt.Sprintf(`{"x": %.0f, "y": %.0f}`, x, y)
	d.lastCopied = coords
	if !d.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(coords))
	d.log.WithField("coords", coords).Debug("copied cursor position")
}

func (d *DebugOverlay) Draw(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if d == nil || w == nil || screen == nil {
		return
	}
	camX, camY, zoom := debugCameraTransform(w)
	if space != nil {
		cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom})
	}

	ecs.ForEach(w, component.DoorComponent.Kind(), func(_ ecs.Entity, door *component.Door) {
		if !door.HasTrigger {
			return
		}
		clr := color.RGBA{R: 255, G: 220, A: 180}
		if door.State == component.DoorOpen {
			clr = color.RGBA{G: 200, B: 255, A: 180}
		}
		r := door.Trigger
		vector.StrokeRect(screen, float32((r.X-camX)*zoom), float32((r.Y-camY)*zoom), float32(r.Width*zoom), float32(r.Height*zoom), 1, clr, false)
	})

	x, y := cursorWorld(w)
	msg := fmt.Sprintf("cursor %.0f,%.0f\nTPS %.0f FPS %.0f", x, y, ebiten.ActualTPS(), ebiten.ActualFPS())
	if d.lastCopied != "" {
		msg += "\ncopied " + d.lastCopied
	}
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			msg += fmt.Sprintf("\nplayer %.0f,%.0f", t.X, t.Y)
		}
		if layer, ok := ecs.Get(w, player, component.RenderLayerComponent.Kind()); ok {
			msg += fmt.Sprintf(" depth %d", layer.Index)
		}
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, screen.Bounds().Dy()-70)
}

func cursorWorld(w *ecs.World) (float64, float64) {
	camX, camY, zoom := debugCameraTransform(w)
	cx, cy := ebiten.CursorPosition()
	return float64(cx)/zoom + camX, float64(cy)/zoom + camY
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return cp.FColor{R: 0.2, G: 0.4, B: 1, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func debugCameraTransform(w *ecs.World) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}
