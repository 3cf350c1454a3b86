package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type BackgroundTag struct{}

var BackgroundTagComponent = NewComponent[BackgroundTag]()

// ScreenSpace marks renderable entities drawn without the camera transform.
type ScreenSpace struct{}

var ScreenSpaceComponent = NewComponent[ScreenSpace]()
