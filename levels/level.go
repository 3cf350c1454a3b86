package levels

import (
	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/common"
)

type WorldType string

const (
	WorldOpen WorldType = "open"
	WorldRoom WorldType = "room"
)

// Level is one scene's layout. It is read once and not mutated.
type Level struct {
	Name            string      `json:"name"`
	WorldType       WorldType   `json:"worldType,omitempty"`
	Background      *Background `json:"background,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
	Buildings       []Building  `json:"buildings,omitempty"`
	Props           []Prop      `json:"props,omitempty"`
	NPCs            []NPC       `json:"npcs,omitempty"`
	CombatNPCs      []CombatNPC `json:"combatNPCs,omitempty"`
	Player          common.Vec  `json:"player"`
	UI              *Caption    `json:"ui,omitempty"`
	Exits           []Exit      `json:"exits,omitempty"`
}

type Background struct {
	Image string   `json:"image"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Alpha *float64 `json:"alpha,omitempty"`
}

func (b Background) AlphaOrDefault() float64 {
	if b.Alpha == nil {
		return 1
	}
	return *b.Alpha
}

type Caption struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Color string  `json:"color,omitempty"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Physics is the single collision body form: a box of BodySize whose top
// left corner sits BodyOffset from the sprite's top left corner.
type Physics struct {
	BodySize   Size       `json:"bodySize"`
	BodyOffset common.Vec `json:"bodyOffset"`
}

type BodyType string

const (
	BodyCollision   BodyType = "collision"
	BodyPassThrough BodyType = "pass-through"
)

// Body is a box centered at the entity position plus (X, Y).
type Body struct {
	Type   BodyType `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// Placement is shared by every placed entity.
type Placement struct {
	ID      string   `json:"id"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Texture string   `json:"texture"`
	Scale   float64  `json:"scale,omitempty"`
	Depth   *int     `json:"depth,omitempty"`
	Physics *Physics `json:"physics,omitempty"`
	Bodies  []Body   `json:"bodies,omitempty"`
}

func (p Placement) ScaleOrDefault() float64 {
	if p.Scale <= 0 {
		return 1
	}
	return p.Scale
}

func (p Placement) Position() common.Vec {
	return common.Vec{X: p.X, Y: p.Y}
}

// Zone is a box centered at the owner position plus the offset.
type Zone struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (z Zone) Rect(owner common.Vec) common.Rect {
	return common.RectFromCenter(owner.X+z.OffsetX, owner.Y+z.OffsetY, z.Width, z.Height)
}

const DefaultCloseDistance = 120

type Door struct {
	Enabled         bool        `json:"enabled"`
	OpenTexture     string      `json:"openTexture,omitempty"`
	CloseDistance   float64     `json:"closeDistance,omitempty"`
	TriggerZone     *Zone       `json:"triggerZone,omitempty"`
	InteractionZone *Zone       `json:"interactionZone,omitempty"`
	TargetScene     string      `json:"targetScene,omitempty"`
	TargetPosition  *common.Vec `json:"targetPosition,omitempty"`
}

func (d Door) CloseDistanceOrDefault() float64 {
	if d.CloseDistance <= 0 {
		return DefaultCloseDistance
	}
	return d.CloseDistance
}

type Building struct {
	Placement
	Door *Door `json:"door,omitempty"`
}

type Prop struct {
	Placement
}

const (
	DefaultFrameRate = 3
	RepeatForever    = -1
)

// Animation cycles through texture keys.
type Animation struct {
	Key       string   `json:"key"`
	Frames    []string `json:"frames"`
	FrameRate float64  `json:"frameRate,omitempty"`
	Repeat    *int     `json:"repeat,omitempty"`
}

func (a Animation) FrameRateOrDefault() float64 {
	if a.FrameRate <= 0 {
		return DefaultFrameRate
	}
	return a.FrameRate
}

func (a Animation) RepeatOrDefault() int {
	if a.Repeat == nil {
		return RepeatForever
	}
	return *a.Repeat
}

type NPC struct {
	Placement
	Name         string     `json:"name,omitempty"`
	Animation    *Animation `json:"animation,omitempty"`
	Interactable *bool      `json:"interactable,omitempty"`
}

func (n NPC) IsInteractable() bool {
	return n.Interactable == nil || *n.Interactable
}

const (
	DefaultPatrolSpeed   = 50
	DefaultPatrolWaitMS  = 2000
	DefaultSightAngle    = 90
	DefaultSightDistance = 120
	DefaultCombatDepth   = 50
	DefaultCombatBody    = 32
)

type Patrol struct {
	Waypoints []common.Vec `json:"waypoints"`
	Speed     float64      `json:"speed,omitempty"`
	WaitTime  int          `json:"waitTime,omitempty"`
}

func (p Patrol) SpeedOrDefault() float64 {
	if p.Speed <= 0 {
		return DefaultPatrolSpeed
	}
	return p.Speed
}

func (p Patrol) WaitOrDefault() int {
	if p.WaitTime <= 0 {
		return DefaultPatrolWaitMS
	}
	return p.WaitTime
}

type CombatNPC struct {
	Placement
	Name                string      `json:"name,omitempty"`
	CombatData          combat.Data `json:"combatData"`
	PatrolData          *Patrol     `json:"patrolData,omitempty"`
	LineOfSightAngle    float64     `json:"lineOfSightAngle,omitempty"`
	LineOfSightDistance float64     `json:"lineOfSightDistance,omitempty"`
	FacingDirection     string      `json:"facingDirection,omitempty"`
	HasCollision        bool        `json:"hasCollision,omitempty"`
	Body                *Size       `json:"body,omitempty"`
	Animation           *Animation  `json:"animation,omitempty"`
}

func (c CombatNPC) SightAngle() float64 {
	if c.LineOfSightAngle <= 0 {
		return DefaultSightAngle
	}
	return c.LineOfSightAngle
}

func (c CombatNPC) SightDistance() float64 {
	if c.LineOfSightDistance <= 0 {
		return DefaultSightDistance
	}
	return c.LineOfSightDistance
}

func (c CombatNPC) Facing() string {
	switch c.FacingDirection {
	case "up", "left", "right":
		return c.FacingDirection
	default:
		return "down"
	}
}

func (c CombatNPC) BodySize() Size {
	if c.Body == nil || c.Body.Width <= 0 || c.Body.Height <= 0 {
		return Size{Width: DefaultCombatBody, Height: DefaultCombatBody}
	}
	return *c.Body
}

type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Exit fires when the player crosses a screen edge.
type Exit struct {
	Edge           Edge        `json:"edge"`
	TargetScene    string      `json:"targetScene"`
	TargetPosition *common.Vec `json:"targetPosition,omitempty"`
}

// Crossed reports whether pos lies past the edge of a width x height screen.
func (e Exit) Crossed(pos common.Vec, width, height float64) bool {
	switch e.Edge {
	case EdgeTop:
		return pos.Y < 0
	case EdgeBottom:
		return pos.Y > height
	case EdgeLeft:
		return pos.X < 0
	case EdgeRight:
		return pos.X > width
	}
	return false
}
