package geometry

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/internal/tess"
)

// ErrUnknownBackend is returned when a backend name cannot be parsed.
var ErrUnknownBackend = errors.New("geometry: unknown render backend")

// Backend3D names a triangulation strategy.
type Backend3D int

const (
	// BackendConstrained uses constrained triangulation. It accepts
	// overlapping and self-intersecting outlines. This is the default.
	BackendConstrained Backend3D = iota

	// BackendMesh preserves input vertex identity and order so the result
	// can be fed to exact mesh booleans.
	BackendMesh
)

// String returns the configuration name of the backend.
func (b Backend3D) String() string {
	switch b {
	case BackendConstrained:
		return "constrained"
	case BackendMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// ParseBackend3D converts a configuration name into a Backend3D.
func ParseBackend3D(name string) (Backend3D, error) {
	switch name {
	case "constrained", "":
		return BackendConstrained, nil
	case "mesh":
		return BackendMesh, nil
	default:
		return BackendConstrained, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// RenderSettings carries the render configuration that the kernel reads.
// It is passed to each call rather than held globally.
type RenderSettings struct {
	Backend3D Backend3D
}

// DefaultRenderSettings returns settings selecting the constrained backend.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{Backend3D: BackendConstrained}
}

// Triangulator converts a polygon into a triangulated mesh. Implementations
// must not modify the polygon.
type Triangulator interface {
	// Name returns the backend identifier.
	Name() string

	// Triangulate returns a 2D-in-3D mesh with Z = 0.
	Triangulate(p *Polygon2d) (*PolySet, error)
}

// SelectTriangulator returns the triangulator chosen by s. The choice
// depends only on the settings, never on the polygon.
func SelectTriangulator(s RenderSettings) Triangulator {
	if s.Backend3D == BackendMesh {
		return meshTriangulator{}
	}
	return constrainedTriangulator{}
}

// Tessellate triangulates the polygon using the backend selected by s.
//
// The result is used for area computation, extrusion and rendering. With
// BackendMesh the vertices of the result are exactly the polygon's
// vertices, in outline order, with Z = 0 appended.
func (p *Polygon2d) Tessellate(s RenderSettings) (*PolySet, error) {
	t := SelectTriangulator(s)
	solid.Logger().Debug("tessellate", "outlines", len(p.outlines), "backend", t.Name())
	return t.Triangulate(p)
}

type constrainedTriangulator struct{}

func (constrainedTriangulator) Name() string { return BackendConstrained.String() }

func (constrainedTriangulator) Triangulate(p *Polygon2d) (*PolySet, error) {
	m, err := tess.Constrained(contours(p))
	if err != nil {
		return nil, err
	}
	return toPolySet(m), nil
}

type meshTriangulator struct{}

func (meshTriangulator) Name() string { return BackendMesh.String() }

func (meshTriangulator) Triangulate(p *Polygon2d) (*PolySet, error) {
	m, err := tess.Ordered(contours(p))
	if err != nil {
		return nil, err
	}
	return toPolySet(m), nil
}

func contours(p *Polygon2d) []tess.Contour {
	cs := make([]tess.Contour, len(p.outlines))
	for i, o := range p.outlines {
		cs[i] = o.Vertices
	}
	return cs
}

func toPolySet(m *tess.Mesh) *PolySet {
	ps := &PolySet{
		Vertices: make([]f64.Vec3, len(m.Vertices)),
		Indices:  m.Triangles,
	}
	for i, v := range m.Vertices {
		ps.Vertices[i] = f64.Vec3{v[0], v[1], 0}
	}
	return ps
}
