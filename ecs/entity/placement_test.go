package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/levels"
)

func TestPlacementBodies(t *testing.T) {
	tests := []struct {
		name      string
		placement levels.Placement
		texW      float64
		texH      float64
		wantSolid []common.Rect
		wantPass  []common.Rect
	}{
		{
			name:      "no bodies",
			placement: levels.Placement{X: 100, Y: 100},
			texW:      32,
			texH:      32,
		},
		{
			name: "legacy physics from sprite corner",
			placement: levels.Placement{
				X: 720, Y: 240,
				Physics: &levels.Physics{
					BodySize:   levels.Size{Width: 176, Height: 100},
					BodyOffset: common.Vec{X: 8, Y: 40},
				},
			},
			texW:      192,
			texH:      160,
			wantSolid: []common.Rect{{X: 632, Y: 200, Width: 176, Height: 100}},
		},
		{
			name: "legacy physics scaled",
			placement: levels.Placement{
				X: 100, Y: 100, Scale: 2,
				Physics: &levels.Physics{
					BodySize:   levels.Size{Width: 10, Height: 10},
					BodyOffset: common.Vec{X: 5, Y: 5},
				},
			},
			texW:      20,
			texH:      20,
			wantSolid: []common.Rect{{X: 70, Y: 70, Width: 20, Height: 20}},
		},
		{
			name: "centered bodies by type",
			placement: levels.Placement{
				X: 300, Y: 240,
				Bodies: []levels.Body{
					{Type: levels.BodyCollision, X: 0, Y: 20, Width: 176, Height: 100},
					{Type: levels.BodyPassThrough, X: 0, Y: -60, Width: 192, Height: 60},
				},
			},
			texW:      192,
			texH:      160,
			wantSolid: []common.Rect{{X: 212, Y: 210, Width: 176, Height: 100}},
			wantPass:  []common.Rect{{X: 204, Y: 150, Width: 192, Height: 60}},
		},
		{
			name: "zero size legacy physics ignored",
			placement: levels.Placement{
				X:       10,
				Y:       10,
				Physics: &levels.Physics{},
			},
			texW: 8,
			texH: 8,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			solid, pass := PlacementBodies(tc.placement, tc.texW, tc.texH)
			assert.Equal(t, tc.wantSolid, solid)
			assert.Equal(t, tc.wantPass, pass)
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	assert.NoError(t, err)
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0x8080), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)

	_, err = ParseHexColor("nope")
	assert.Error(t, err)
}
