// Package components defines the ECS components for grid simulation entities.
package components

// Position represents an entity's world position (its center).
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y float32
}
