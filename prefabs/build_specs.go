package prefabs

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

type PlayerComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	Alpha              float64 `yaml:"alpha"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type AnimationClipSpec struct {
	First  int     `yaml:"first"`
	Count  int     `yaml:"count"`
	FPS    float64 `yaml:"fps"`
	Repeat *int    `yaml:"repeat"`
}

type AnimationComponentSpec struct {
	Sheet   string                       `yaml:"sheet"`
	FPS     float64                      `yaml:"fps"`
	Current string                       `yaml:"current"`
	Clips   map[string]AnimationClipSpec `yaml:"clips"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	Sound  string  `yaml:"sound"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

type PhysicsBodyComponentSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	OffsetX      float64 `yaml:"offset_x"`
	OffsetY      float64 `yaml:"offset_y"`
	AlignTopLeft bool    `yaml:"align_top_left"`
}
