package geometry

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Small vector helpers over sdfx's v3.Vec. Only the operations the compute
// callbacks need; anything fancier belongs to the caller.

func sub(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func add(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func scale(a v3.Vec, s float64) v3.Vec {
	return v3.Vec{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

func dot(a, b v3.Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b v3.Vec) v3.Vec {
	return v3.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func norm(a v3.Vec) float64 {
	return math.Sqrt(dot(a, a))
}

func normalize(a v3.Vec) v3.Vec {
	n := norm(a)
	if n == 0 {
		return v3.Vec{}
	}
	return scale(a, 1/n)
}
