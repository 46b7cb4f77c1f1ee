package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/geodesic/pkg/geometry"
	"github.com/chazu/geodesic/pkg/linalg"
	"github.com/chazu/geodesic/pkg/meshio"
	"github.com/chazu/geodesic/pkg/tessellate"
)

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpSolid wraps an sdf.SDF3 so solids can flow between builtins.
type sexpSolid struct {
	s sdf.SDF3
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	bb := s.s.BoundingBox()
	return fmt.Sprintf("(solid %.3gx%.3gx%.3g)",
		bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpMesh wraps an embedded geometry so meshes can flow between
// builtins.
type sexpMesh struct {
	geo *geometry.Geometry
}

func (m *sexpMesh) SexpString(ps *zygo.PrintState) string {
	mesh := m.geo.Mesh()
	return fmt.Sprintf("(mesh %dv %de %df)", mesh.NVertices(), mesh.NEdges(), mesh.NFaces())
}
func (m *sexpMesh) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by translateSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a translated keyword string, returning the
// keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toSolid(s zygo.Sexp) (sdf.SDF3, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

func toMesh(s zygo.Sexp) (*geometry.Geometry, error) {
	if v, ok := s.(*sexpMesh); ok {
		return v.geo, nil
	}
	return nil, fmt.Errorf("expected mesh, got %T (%s)", s, s.SexpString(nil))
}

// floatArgs extracts n positional numbers for a fixed-arity builtin.
func floatArgs(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// state accumulates side effects of script evaluation.
type state struct {
	output []string
}

func (st *state) emit(line string) {
	st.output = append(st.output, line)
}

// registerBuiltins installs the geometry builtins into a zygomys
// environment. Source code must be run through translateSource before
// evaluation so that :keyword tokens and kebab-case names are
// recognizable.
func registerBuiltins(env *zygo.Zlisp, st *state) {

	// -----------------------------------------------------------------------
	// (box x y z), (cylinder height radius), (sphere radius)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		dims, err := floatArgs("box", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := tessellate.Box(dims[0], dims[1], dims[2])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floatArgs("cylinder", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := tessellate.Cylinder(v[0], v[1])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floatArgs("sphere", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := tessellate.Sphere(v[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	// -----------------------------------------------------------------------
	// (mesh solid :cells 64)
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("mesh requires a solid argument")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		cells := 0
		if v, ok := pa.kw["cells"]; ok {
			cells, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mesh: cells: %w", err)
			}
		}
		geo, err := tessellate.Geometry(s, cells)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		return &sexpMesh{geo: geo}, nil
	})

	// -----------------------------------------------------------------------
	// (load-obj "path"), (save-obj m "path")
	// -----------------------------------------------------------------------
	env.AddFunction("load_obj", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("load-obj requires a path argument")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-obj: %w", err)
		}
		m, positions, err := meshio.ReadOBJFile(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-obj: %w", err)
		}
		geo, err := geometry.NewEmbedded(m, positions)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-obj: %w", err)
		}
		return &sexpMesh{geo: geo}, nil
	})

	env.AddFunction("save_obj", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("save-obj requires a mesh and a path")
		}
		geo, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("save-obj: %w", err)
		}
		path, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("save-obj: %w", err)
		}
		if err := meshio.WriteOBJFile(path, geo.Mesh(), geo.VertexPositions()); err != nil {
			return zygo.SexpNull, fmt.Errorf("save-obj: %w", err)
		}
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// Element counts: (vertices m), (edges m), (faces m), (euler m)
	// -----------------------------------------------------------------------
	counts := map[string]func(*geometry.Geometry) int{
		"vertices":       func(g *geometry.Geometry) int { return g.Mesh().NVertices() },
		"edges":          func(g *geometry.Geometry) int { return g.Mesh().NEdges() },
		"faces":          func(g *geometry.Geometry) int { return g.Mesh().NFaces() },
		"boundary_edges": func(g *geometry.Geometry) int { return g.Mesh().NBoundaryEdges() },
		"euler":          func(g *geometry.Geometry) int { return g.Mesh().EulerCharacteristic() },
	}
	for fname, count := range counts {
		fname, count := fname, count
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a mesh argument", fname)
			}
			geo, err := toMesh(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
			}
			return &zygo.SexpInt{Val: int64(count(geo))}, nil
		})
	}

	// -----------------------------------------------------------------------
	// Scalar queries: (total-area m), (total-curvature m),
	// (mean-edge-length m)
	// -----------------------------------------------------------------------
	env.AddFunction("total_area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		geo, err := meshArg("total-area", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := geo.RequireTotalArea(); err != nil {
			return zygo.SexpNull, fmt.Errorf("total-area: %w", err)
		}
		defer geo.UnrequireTotalArea()
		area, err := geo.TotalArea()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("total-area: %w", err)
		}
		return &zygo.SexpFloat{Val: area}, nil
	})

	env.AddFunction("total_curvature", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		geo, err := meshArg("total-curvature", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := geo.RequireVertexGaussianCurvatures(); err != nil {
			return zygo.SexpNull, fmt.Errorf("total-curvature: %w", err)
		}
		defer geo.UnrequireVertexGaussianCurvatures()
		curv, err := geo.VertexGaussianCurvatures()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("total-curvature: %w", err)
		}
		total := 0.0
		for _, k := range curv {
			total += k
		}
		return &zygo.SexpFloat{Val: total}, nil
	})

	env.AddFunction("mean_edge_length", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		geo, err := meshArg("mean-edge-length", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := geo.RequireMeanEdgeLength(); err != nil {
			return zygo.SexpNull, fmt.Errorf("mean-edge-length: %w", err)
		}
		defer geo.UnrequireMeanEdgeLength()
		mean, err := geo.MeanEdgeLength()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mean-edge-length: %w", err)
		}
		return &zygo.SexpFloat{Val: mean}, nil
	})

	// -----------------------------------------------------------------------
	// (quantity-stats m "edge-lengths")
	// -----------------------------------------------------------------------
	env.AddFunction("quantity_stats", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("quantity-stats requires a mesh and a quantity name")
		}
		geo, err := toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quantity-stats: %w", err)
		}
		qname, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quantity-stats: %w", err)
		}
		line, err := quantityStats(geo, qname)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quantity-stats: %w", err)
		}
		st.emit(line)
		return &zygo.SexpStr{S: line}, nil
	})

	// -----------------------------------------------------------------------
	// (show expr ...)
	// -----------------------------------------------------------------------
	env.AddFunction("show", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			switch v := a.(type) {
			case *zygo.SexpStr:
				parts[i] = v.S
			default:
				parts[i] = a.SexpString(nil)
			}
		}
		st.emit(strings.Join(parts, " "))
		if len(args) == 0 {
			return zygo.SexpNull, nil
		}
		return args[len(args)-1], nil
	})
}

// meshArg extracts the single mesh argument of a query builtin.
func meshArg(fname string, args []zygo.Sexp) (*geometry.Geometry, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s requires a mesh argument", fname)
	}
	geo, err := toMesh(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return geo, nil
}

// quantityStats computes a quantity by name and summarizes its storage
// in one line. The hold is released before returning so repeated calls
// leave the cache empty.
func quantityStats(geo *geometry.Geometry, qname string) (string, error) {
	if err := geo.Require(qname); err != nil {
		return "", err
	}
	defer geo.Unrequire(qname)

	view, err := geo.Access(qname)
	if err != nil {
		return "", err
	}
	switch v := view.(type) {
	case []float64:
		if len(v) == 0 {
			return fmt.Sprintf("%s: empty", qname), nil
		}
		min, max, sum := v[0], v[0], 0.0
		for _, x := range v {
			min = math.Min(min, x)
			max = math.Max(max, x)
			sum += x
		}
		return fmt.Sprintf("%s: n=%d min=%.6g max=%.6g mean=%.6g sum=%.6g",
			qname, len(v), min, max, sum/float64(len(v)), sum), nil
	case []complex128:
		sum := 0.0
		for _, x := range v {
			sum += math.Hypot(real(x), imag(x))
		}
		mean := 0.0
		if len(v) > 0 {
			mean = sum / float64(len(v))
		}
		return fmt.Sprintf("%s: n=%d mean-magnitude=%.6g", qname, len(v), mean), nil
	case []v3.Vec:
		sum := 0.0
		for _, x := range v {
			sum += math.Sqrt(x.X*x.X + x.Y*x.Y + x.Z*x.Z)
		}
		mean := 0.0
		if len(v) > 0 {
			mean = sum / float64(len(v))
		}
		return fmt.Sprintf("%s: n=%d mean-magnitude=%.6g", qname, len(v), mean), nil
	case *linalg.Sparse:
		return fmt.Sprintf("%s: %dx%d nnz=%d", qname, v.Rows(), v.Cols(), v.NNZ()), nil
	case float64:
		return fmt.Sprintf("%s: %.6g", qname, v), nil
	}
	return "", fmt.Errorf("quantity %q has unsupported storage %T", qname, view)
}
