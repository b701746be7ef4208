// Package geometry is the 2D polygon kernel of solid.
//
// A [Polygon2d] is an ordered collection of closed [Outline2d] contours.
// Polygons are either unsanitized, where outlines may overlap and wind in
// any direction, or sanitized, where outlines never intersect, filled
// outlines wind counter-clockwise and holes wind clockwise. The kernel never
// verifies sanitization; it is established by whoever builds the polygon.
//
// # Queries
//
// Bounding boxes, convexity and memory estimates are computed directly from
// the vertex data. Area needs a triangulation and goes through
// [Polygon2d.Tessellate].
//
// # Tessellation
//
// Triangulation is delegated to one of two interchangeable backends,
// selected per call by [RenderSettings]:
//
//   - [BackendConstrained]: sweep-line constrained triangulation. Handles
//     overlapping and self-intersecting outlines and may introduce vertices.
//   - [BackendMesh]: keeps every input vertex and its order, only appending
//     a zero Z coordinate. Suitable for geometry fed to exact 3D booleans.
//
// Both backends emit counter-clockwise triangles, so [Polygon2d.Area] is
// positive regardless of the input winding.
//
// # Degenerate transforms
//
// Applying a transform with a zero determinant removes every outline and
// logs a warning through solid.Logger instead of producing collapsed
// geometry.
//
// A reflection reverses the vertex order of every outline after mapping,
// so winding roles and the sanitized flag are preserved.
package geometry
