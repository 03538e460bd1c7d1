package scene

import (
	"fmt"
	"slices"

	"github.com/akmonengine/p3/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// groundLevel is the height of the demo floor
const groundLevel = -3.0

var demos = map[string]func() *Config{
	"bowling":          Bowling,
	"stacking-spheres": StackingSpheres,
	"stacking-boxes":   StackingBoxes,
}

// Demo returns a fresh copy of the named demo scene.
func Demo(name string) (*Config, error) {
	demo, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q, available: %v", ErrUnknownDemo, name, DemoNames())
	}
	return demo(), nil
}

// DemoNames lists the demos in alphabetical order.
func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func demoGround() *GroundConfig {
	return &GroundConfig{
		Normal: mgl64.Vec3{0, 1, 0},
		Point:  mgl64.Vec3{0, groundLevel, 0},
	}
}

// Bowling lines up five pins on the floor and rolls a ball into the middle one.
func Bowling() *Config {
	c := &Config{
		Name:   "bowling",
		Ground: demoGround(),
	}

	const startingX = -2.0
	for i := range 5 {
		c.Bodies = append(c.Bodies, BodyConfig{
			Name:        fmt.Sprintf("pin-%d", i),
			Shape:       ShapeBox,
			Position:    mgl64.Vec3{startingX + float64(i), groundLevel + 0.5, -15},
			HalfExtents: mgl64.Vec3{0.2, 0.5, 0.2},
			Mass:        1,
		})
	}

	c.Bodies = append(c.Bodies, BodyConfig{
		Name:     "ball",
		Shape:    ShapeSphere,
		Position: mgl64.Vec3{0, groundLevel + 0.5, -5},
		Velocity: mgl64.Vec3{0, 0, -8},
		Radius:   0.5,
		Mass:     5,
	})

	return c
}

// StackingSpheres drops two spheres of the same mass on top of each other.
func StackingSpheres() *Config {
	return &Config{
		Name:   "stacking-spheres",
		Ground: demoGround(),
		Bodies: []BodyConfig{
			{Name: "bottom", Shape: ShapeSphere, Position: mgl64.Vec3{0, 4, -20}, Radius: 0.5, Mass: 1},
			{Name: "top", Shape: ShapeSphere, Position: mgl64.Vec3{0, 5.5, -20}, Radius: 0.5, Mass: 1},
		},
	}
}

// StackingBoxes drops two unit cubes of the same mass on top of each other.
// The top one is a vertex mesh, the bottom one an analytic box.
func StackingBoxes() *Config {
	corners := actor.BoxVertices(mgl64.Vec3{0.5, 0.5, 0.5})

	return &Config{
		Name:   "stacking-boxes",
		Ground: demoGround(),
		Bodies: []BodyConfig{
			{Name: "bottom", Shape: ShapeBox, Position: mgl64.Vec3{0, 0, -15}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Mass: 1},
			{Name: "top", Shape: ShapeMesh, Position: mgl64.Vec3{0, 5, -15}, Vertices: corners[:], Mass: 1},
		},
	}
}
