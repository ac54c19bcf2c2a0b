package render

import (
	"strconv"

	"github.com/tomz197/sidescroller/internal/draw"
	"github.com/tomz197/sidescroller/internal/entity"
)

// Sprite is how one kind of entity is drawn.
type Sprite struct {
	Shape  []draw.Point // Outline in unit coordinates; nil draws a dot
	Size   float64      // World units per shape unit, multiplied by Entity.Scale
	Ink    draw.Ink
	Filled bool
}

// placeholder is drawn for entities whose sprite key has no entry.
var placeholder = Sprite{
	Shape: []draw.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
	Size:  0.6,
	Ink:   draw.InkPink,
}

// SpriteKey returns the most specific sprite key for an entity:
// "pickup/<type>" for pickups, "<kind>/<variant>" for variants other than
// zero, and the kind name otherwise.
func SpriteKey(e *entity.Entity) string {
	switch {
	case e.Kind == entity.KindPickup:
		return "pickup/" + e.Pickup.String()
	case e.Variant != 0:
		return e.Kind.String() + "/" + strconv.Itoa(e.Variant)
	}
	return e.Kind.String()
}

// DefaultSprites returns the stock sprite table.
func DefaultSprites() map[string]Sprite {
	diamond := []draw.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	return map[string]Sprite{
		"player": {
			Shape:  []draw.Point{{X: 1.2, Y: 0}, {X: -0.8, Y: 0.8}, {X: -0.4, Y: 0}, {X: -0.8, Y: -0.8}},
			Size:   0.9,
			Ink:    draw.InkCyan,
			Filled: true,
		},
		"enemy": {
			Shape:  []draw.Point{{X: -1, Y: 0}, {X: 0.2, Y: 0.8}, {X: 1, Y: 0.5}, {X: 0.6, Y: 0}, {X: 1, Y: -0.5}, {X: 0.2, Y: -0.8}},
			Size:   0.9,
			Ink:    draw.InkRed,
			Filled: true,
		},
		"enemy/1": {
			Shape:  []draw.Point{{X: -1, Y: 0}, {X: -0.3, Y: 0.9}, {X: 0.8, Y: 0.7}, {X: 0.8, Y: -0.7}, {X: -0.3, Y: -0.9}},
			Size:   0.9,
			Ink:    draw.InkOrange,
			Filled: true,
		},
		"kamikaze": {
			Shape:  []draw.Point{{X: -1.2, Y: 0}, {X: 0.8, Y: 0.7}, {X: 0.4, Y: 0}, {X: 0.8, Y: -0.7}},
			Size:   0.7,
			Ink:    draw.InkPink,
			Filled: true,
		},
		"shooter": {
			Shape: []draw.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
			Size:  0.75,
			Ink:   draw.InkMagenta,
		},
		"boss": {
			Shape: []draw.Point{
				{X: -1, Y: 0}, {X: -0.7, Y: 0.7}, {X: 0, Y: 1}, {X: 0.7, Y: 0.7}, {X: 1, Y: 0.3},
				{X: 0.6, Y: 0}, {X: 1, Y: -0.3}, {X: 0.7, Y: -0.7}, {X: 0, Y: -1}, {X: -0.7, Y: -0.7},
			},
			Size:   1.6,
			Ink:    draw.InkMagenta,
			Filled: true,
		},
		"asteroid": {
			Shape: []draw.Point{
				{X: 1, Y: 0.1}, {X: 0.6, Y: 0.8}, {X: -0.1, Y: 1}, {X: -0.8, Y: 0.6},
				{X: -1, Y: -0.1}, {X: -0.6, Y: -0.8}, {X: 0.2, Y: -1}, {X: 0.8, Y: -0.6},
			},
			Size: 0.9,
			Ink:  draw.InkGray,
		},
		"bullet": {
			Shape:  []draw.Point{{X: 1, Y: 0.2}, {X: -1, Y: 0.2}, {X: -1, Y: -0.2}, {X: 1, Y: -0.2}},
			Size:   0.35,
			Ink:    draw.InkYellow,
			Filled: true,
		},
		"enemyBullet": {
			Shape:  diamond,
			Size:   0.3,
			Ink:    draw.InkRed,
			Filled: true,
		},
		"pickup/health": {Shape: diamond, Size: 0.7, Ink: draw.InkGreen, Filled: true},
		"pickup/power":  {Shape: diamond, Size: 0.7, Ink: draw.InkYellow, Filled: true},
		"pickup/shield": {Shape: diamond, Size: 0.7, Ink: draw.InkCyan},
		"particle":      {Ink: draw.InkOrange},
		"particle/1":    {Size: 0.3, Ink: draw.InkWhite},
	}
}
