package vec

import (
	"fmt"
	"math"
)

// Vec2 is a plain 2-D vector in world units (AU for positions,
// AU/day for velocities).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// NormSq avoids the square root where only relative distances matter.
func (v Vec2) NormSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Norm() float64 { return math.Sqrt(v.NormSq()) }

// Dist returns the Euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Norm() }

func (v Vec2) String() string {
	return fmt.Sprintf("<%g,%g>", v.X, v.Y)
}
