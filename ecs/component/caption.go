package component

import "image/color"

type Caption struct {
	Text  string
	Color color.Color
}

var CaptionComponent = NewComponent[Caption]()
