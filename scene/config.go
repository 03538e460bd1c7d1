// Package scene loads sandbox scenes from YAML and ships the demo scenes.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	ShapeBox    = "box"
	ShapeSphere = "sphere"
	ShapeMesh   = "mesh"
)

var (
	ErrInvalidScene = errors.New("scene: invalid scene")
	ErrUnknownDemo  = errors.New("scene: unknown demo")
)

// Config describes a world and its bodies.
type Config struct {
	Name string `yaml:"name"`
	// Gravity defaults to p3.DefaultGravity when omitted
	Gravity       *mgl64.Vec3   `yaml:"gravity,omitempty"`
	Substeps      int           `yaml:"substeps,omitempty"`
	Workers       int           `yaml:"workers,omitempty"`
	MaxIterations int           `yaml:"max_iterations,omitempty"`
	Ground        *GroundConfig `yaml:"ground,omitempty"`
	Bodies        []BodyConfig  `yaml:"bodies"`
}

// GroundConfig is the plane through Point, facing Normal.
type GroundConfig struct {
	Normal      mgl64.Vec3 `yaml:"normal"`
	Point       mgl64.Vec3 `yaml:"point"`
	Restitution float64    `yaml:"restitution,omitempty"`
}

type BodyConfig struct {
	Name     string     `yaml:"name"`
	Shape    string     `yaml:"shape"`
	Position mgl64.Vec3 `yaml:"position"`
	Velocity mgl64.Vec3 `yaml:"velocity,omitempty"`
	// Rotation is RotationAngle degrees around RotationAxis, none when the axis is zero
	RotationAxis  mgl64.Vec3 `yaml:"rotation_axis,omitempty"`
	RotationAngle float64    `yaml:"rotation_angle,omitempty"`
	Mass          float64    `yaml:"mass,omitempty"`
	Static        bool       `yaml:"static,omitempty"`

	HalfExtents mgl64.Vec3   `yaml:"half_extents,omitempty"`
	Radius      float64      `yaml:"radius,omitempty"`
	Vertices    []mgl64.Vec3 `yaml:"vertices,omitempty"`
}

// Load decodes and validates a YAML scene. Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile loads the scene stored at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first inconsistency of the scene.
func (c *Config) Validate() error {
	if c.Substeps < 0 {
		return fmt.Errorf("%w: substeps %d", ErrInvalidScene, c.Substeps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidScene, c.Workers)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations %d", ErrInvalidScene, c.MaxIterations)
	}
	if c.Ground != nil {
		if c.Ground.Normal.LenSqr() == 0 {
			return fmt.Errorf("%w: ground normal is zero", ErrInvalidScene)
		}
		if c.Ground.Restitution < 0 || c.Ground.Restitution > 1 {
			return fmt.Errorf("%w: ground restitution %v not in [0,1]", ErrInvalidScene, c.Ground.Restitution)
		}
	}

	names := make(map[string]int, len(c.Bodies))
	for i, b := range c.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d %q: %w", i, b.Name, err)
		}
		if b.Name == "" {
			continue
		}
		if j, ok := names[b.Name]; ok {
			return fmt.Errorf("%w: bodies %d and %d are both named %q", ErrInvalidScene, j, i, b.Name)
		}
		names[b.Name] = i
	}

	return nil
}

func (b BodyConfig) Validate() error {
	switch b.Shape {
	case ShapeBox:
		if b.HalfExtents.X() <= 0 || b.HalfExtents.Y() <= 0 || b.HalfExtents.Z() <= 0 {
			return fmt.Errorf("%w: box half_extents %v must be positive", ErrInvalidScene, b.HalfExtents)
		}
	case ShapeSphere:
		if b.Radius <= 0 {
			return fmt.Errorf("%w: sphere radius %v must be positive", ErrInvalidScene, b.Radius)
		}
	case ShapeMesh:
		if len(b.Vertices) == 0 {
			return fmt.Errorf("%w: mesh without vertices", ErrInvalidScene)
		}
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidScene, b.Shape)
	}

	if !b.Static && b.Mass <= 0 {
		return fmt.Errorf("%w: dynamic body mass %v must be positive", ErrInvalidScene, b.Mass)
	}

	return nil
}
