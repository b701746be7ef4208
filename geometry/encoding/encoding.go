// Package encoding converts Polygon2d to and from the interchange formats
// understood by GIS tooling: WKT, WKB and GeoJSON.
//
// Outlines are grouped into polygons by orientation: counter-clockwise
// outlines become exterior rings and clockwise outlines become holes of
// the smallest exterior ring containing them.
package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/solid/geometry"
)

// ErrUnsupportedGeometry is returned when decoding a geometry that has no
// area, such as a point or a line string.
var ErrUnsupportedGeometry = errors.New("encoding: unsupported geometry type")

// ToOrb converts p into a multipolygon with closed rings.
func ToOrb(p *geometry.Polygon2d) orb.MultiPolygon {
	var outers, holes []orb.Ring
	for _, o := range p.Outlines() {
		if len(o.Vertices) < 3 {
			continue
		}
		r := closedRing(o)
		if o.SignedArea() >= 0 {
			outers = append(outers, r)
		} else {
			holes = append(holes, r)
		}
	}

	mp := make(orb.MultiPolygon, len(outers))
	for i, r := range outers {
		mp[i] = orb.Polygon{r}
	}
	for _, h := range holes {
		best := -1
		bestArea := math.Inf(1)
		for i, r := range outers {
			if !ringInside(h, r) {
				continue
			}
			if a := math.Abs(planar.Area(r)); a < bestArea {
				best, bestArea = i, a
			}
		}
		if best < 0 {
			// A hole with no exterior is kept as its own polygon.
			mp = append(mp, orb.Polygon{h})
			continue
		}
		mp[best] = append(mp[best], h)
	}
	return mp
}

// FromOrb converts an areal orb geometry into a polygon. Exterior rings
// are oriented counter-clockwise and holes clockwise. The result is not
// sanitized: the source may contain overlapping polygons.
func FromOrb(g orb.Geometry) (*geometry.Polygon2d, error) {
	p := geometry.NewPolygon2d()
	switch g := g.(type) {
	case orb.Ring:
		addPolygon(p, orb.Polygon{g})
	case orb.Polygon:
		addPolygon(p, g)
	case orb.MultiPolygon:
		for _, poly := range g {
			addPolygon(p, poly)
		}
	case orb.Collection:
		for _, sub := range g {
			q, err := FromOrb(sub)
			if err != nil {
				return nil, err
			}
			for _, o := range q.Outlines() {
				p.AddOutline(o)
			}
		}
	case nil:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.GeoJSONType())
	}
	return p, nil
}

func addPolygon(p *geometry.Polygon2d, poly orb.Polygon) {
	for i, r := range poly {
		o := openOutline(r)
		if len(o.Vertices) < 3 {
			continue
		}
		ccw := o.SignedArea() > 0
		if ccw != (i == 0) {
			o.Reverse()
		}
		p.AddOutline(o)
	}
}

// MarshalWKT returns the WKT text of p.
func MarshalWKT(p *geometry.Polygon2d) string {
	return wkt.MarshalString(ToOrb(p))
}

// UnmarshalWKT parses WKT text into a polygon.
func UnmarshalWKT(s string) (*geometry.Polygon2d, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding: wkt: %w", err)
	}
	return FromOrb(g)
}

// MarshalWKB returns the little endian WKB encoding of p.
func MarshalWKB(p *geometry.Polygon2d) ([]byte, error) {
	b, err := wkb.Marshal(ToOrb(p))
	if err != nil {
		return nil, fmt.Errorf("encoding: wkb: %w", err)
	}
	return b, nil
}

// UnmarshalWKB decodes WKB bytes into a polygon.
func UnmarshalWKB(b []byte) (*geometry.Polygon2d, error) {
	g, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding: wkb: %w", err)
	}
	return FromOrb(g)
}

// MarshalGeoJSON returns p as a GeoJSON feature with the given properties.
func MarshalGeoJSON(p *geometry.Polygon2d, props map[string]any) ([]byte, error) {
	f := geojson.NewFeature(ToOrb(p))
	for k, v := range props {
		f.Properties[k] = v
	}
	return f.MarshalJSON()
}

// UnmarshalGeoJSON decodes a GeoJSON feature collection, feature or bare
// geometry. The areal geometries of all features are merged.
func UnmarshalGeoJSON(data []byte) (*geometry.Polygon2d, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("encoding: geojson: %w", err)
	}

	var geoms []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("encoding: geojson: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("encoding: geojson: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("encoding: geojson: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}

	out := geometry.NewPolygon2d()
	for _, g := range geoms {
		p, err := FromOrb(g)
		if err != nil {
			return nil, err
		}
		for _, o := range p.Outlines() {
			out.AddOutline(o)
		}
	}
	return out, nil
}

func closedRing(o geometry.Outline2d) orb.Ring {
	r := make(orb.Ring, 0, len(o.Vertices)+1)
	for _, v := range o.Vertices {
		r = append(r, orb.Point(v))
	}
	return append(r, r[0])
}

func openOutline(r orb.Ring) geometry.Outline2d {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	o := geometry.Outline2d{Vertices: make([]f64.Vec2, n)}
	for i := 0; i < n; i++ {
		o.Vertices[i] = f64.Vec2(r[i])
	}
	return o
}

// ringInside reports whether every vertex of inner lies in outer.
func ringInside(inner, outer orb.Ring) bool {
	for _, pt := range inner {
		if !planar.RingContains(outer, pt) {
			return false
		}
	}
	return true
}
