package common

const (
	BaseWidth  = 1024
	BaseHeight = 768
	TPS        = 60
)

// Draw-order bands.
const (
	DepthBackground  = 0
	DepthPassThrough = 10
	DepthStatic      = 20
	DepthBase        = 50
	DepthOverlay     = 100
	DepthUI          = 1000
)
