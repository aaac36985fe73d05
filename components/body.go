package components

import "image/color"

// Body holds the drawable shape of an entity.
type Body struct {
	Radius float32
	Color  color.RGBA
}

// Marker carries a stable identifier for logging and selection.
type Marker struct {
	ID uint32
}
