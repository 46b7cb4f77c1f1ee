// Package tessellate converts signed distance fields into welded
// triangle meshes using the github.com/deadsy/sdfx marching cubes
// renderer. The triangle soup produced by the renderer duplicates
// vertices per triangle; Weld merges coincident vertices so the result
// can be assembled into a connected halfedge mesh.
package tessellate

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/geometry"
	"github.com/chazu/geodesic/pkg/surface"
)

// DefaultCells controls marching cubes resolution along the longest
// axis of the bounding box.
const DefaultCells = 128

// Soup is an indexed triangle soup with shared vertices.
type Soup struct {
	Positions []v3.Vec
	Triangles [][3]int
}

// FromSDF renders a signed distance field with marching cubes and welds
// the resulting triangle soup into a halfedge mesh with vertex
// positions. cells <= 0 selects DefaultCells.
func FromSDF(s sdf.SDF3, cells int) (*surface.Mesh, []v3.Vec, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, nil, fmt.Errorf("tessellate: marching cubes produced no triangles")
	}

	soup := Weld(triangles, weldTolerance(s))
	m, err := surface.NewTriangleMesh(len(soup.Positions), soup.Triangles)
	if err != nil {
		return nil, nil, fmt.Errorf("tessellate: %w", err)
	}
	return m, soup.Positions, nil
}

// Geometry renders a signed distance field and wraps the result in an
// embedded geometry ready for quantity computation.
func Geometry(s sdf.SDF3, cells int) (*geometry.Geometry, error) {
	m, positions, err := FromSDF(s, cells)
	if err != nil {
		return nil, err
	}
	return geometry.NewEmbedded(m, positions)
}

// weldTolerance derives a merge distance from the bounding box scale.
func weldTolerance(s sdf.SDF3) float64 {
	bb := s.BoundingBox()
	ext := math.Max(bb.Max.X-bb.Min.X, math.Max(bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z))
	if ext <= 0 {
		ext = 1
	}
	return ext * 1e-6
}

// Weld merges triangle vertices that lie within tol of each other and
// drops triangles that collapse to fewer than three distinct vertices.
// Vertices are quantized onto a grid of spacing tol, so two points
// merge when they fall in the same grid cell.
func Weld(triangles []*sdf.Triangle3, tol float64) *Soup {
	if tol <= 0 {
		tol = 1e-9
	}
	type cell [3]int64
	lookup := make(map[cell]int)
	soup := &Soup{}

	index := func(p v3.Vec) int {
		key := cell{
			int64(math.Round(p.X / tol)),
			int64(math.Round(p.Y / tol)),
			int64(math.Round(p.Z / tol)),
		}
		if i, ok := lookup[key]; ok {
			return i
		}
		i := len(soup.Positions)
		lookup[key] = i
		soup.Positions = append(soup.Positions, p)
		return i
	}

	for _, tri := range triangles {
		a := index(tri[0])
		b := index(tri[1])
		c := index(tri[2])
		if a == b || b == c || a == c {
			continue
		}
		soup.Triangles = append(soup.Triangles, [3]int{a, b, c})
	}
	return soup
}

// Box returns a solid box with the given dimensions, with its minimum
// corner at the origin.
func Box(x, y, z float64) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("tessellate: box: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return sdf.Transform3D(s, m), nil
}

// Cylinder returns a solid cylinder of the given height and radius,
// centered on the z axis.
func Cylinder(height, radius float64) (sdf.SDF3, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("tessellate: cylinder: %w", err)
	}
	return s, nil
}

// Sphere returns a solid sphere of the given radius centered at the
// origin.
func Sphere(radius float64) (sdf.SDF3, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("tessellate: sphere: %w", err)
	}
	return s, nil
}
