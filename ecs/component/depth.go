package component

// DepthOverride pins an authored draw depth.
type DepthOverride struct {
	Depth int
}

var DepthOverrideComponent = NewComponent[DepthOverride]()

// DepthSorted marks actors whose depth follows their Y position.
type DepthSorted struct{}

var DepthSortedComponent = NewComponent[DepthSorted]()
