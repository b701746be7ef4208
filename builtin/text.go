package builtin

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/solid"
	"github.com/gogpu/solid/geometry"
	"github.com/gogpu/solid/internal/cache"
	"github.com/gogpu/solid/module"
	"github.com/gogpu/solid/node"
)

// DefaultFont is the font used when text() is given no font or an
// unknown one.
const DefaultFont = "Go"

const (
	defaultTextSize  = 10
	defaultCurveStep = 4
	maxCurveStep     = 64
)

// embeddedFonts maps normalized "family:style" keys to font data.
var embeddedFonts = map[string][]byte{
	"go":             goregular.TTF,
	"go:bold":        gobold.TTF,
	"go:italic":      goitalic.TTF,
	"go:bold italic": gobolditalic.TTF,
	"go mono":        gomono.TTF,
}

// textFont is a parsed font: sfnt for outlines, go-text for shaping.
// Both are safe for concurrent use; faces are created per call.
type textFont struct {
	key      string
	outlines *sfnt.Font
	shaping  *font.Font
}

type glyphKey struct {
	font  string
	glyph sfnt.GlyphIndex
	steps int
}

// glyphCache holds flattened glyph outlines in font units. Entries are
// shared and must not be modified.
var glyphCache = cache.New[glyphKey, []geometry.Outline2d](1024)

var fontCache struct {
	mu    sync.Mutex
	fonts map[string]*textFont
}

// fontKey normalizes a fontconfig style name such as "Go:style=Bold".
func fontKey(name string) string {
	family, style, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":style=")
	family = strings.TrimSpace(family)
	style = strings.TrimSpace(style)
	if family == "" || family == "go regular" {
		family = "go"
	}
	if style == "" || style == "regular" {
		return family
	}
	return family + ":" + style
}

// loadFont returns the parsed font for name, falling back to DefaultFont.
func loadFont(name string) (*textFont, error) {
	key := fontKey(name)
	if _, ok := embeddedFonts[key]; !ok {
		solid.Logger().Warn("text: font not available, using default", "font", name, "default", DefaultFont)
		key = fontKey(DefaultFont)
	}

	fontCache.mu.Lock()
	defer fontCache.mu.Unlock()
	if f, ok := fontCache.fonts[key]; ok {
		return f, nil
	}

	data := embeddedFonts[key]
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse %s: %w", key, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse %s: %w", key, err)
	}
	f := &textFont{key: key, outlines: outlines, shaping: face.Font}
	if fontCache.fonts == nil {
		fontCache.fonts = make(map[string]*textFont)
	}
	fontCache.fonts[key] = f
	return f, nil
}

// TextOptions are the arguments of text().
type TextOptions struct {
	Text      string
	Size      float64
	Font      string
	Direction string
	Language  string
	HAlign    string
	VAlign    string
	Spacing   float64
	Fn        float64 // curve steps per segment when positive
}

// text(text, size = 10, font, halign, valign, spacing = 1, direction,
// language = "en", $fn)
func instantiateText(inst *module.ModuleInstantiation, args *module.Arguments, _ *module.Children) (node.Node, error) {
	p := args.Parse(inst, "text", "size", "font", "direction", "language", "halign", "valign", "spacing")

	opts := TextOptions{
		Size:     number(p.Get("size"), defaultTextSize),
		Font:     DefaultFont,
		Language: "en",
		HAlign:   "left",
		VAlign:   "baseline",
		Spacing:  number(p.Get("spacing"), 1),
		Fn:       number(p.Get("$fn"), module.DefaultFn),
	}
	if s, ok := p.Get("text").ToString(); ok {
		opts.Text = s
	} else if v := p.Get("text"); !v.IsUndef() {
		opts.Text = v.String()
	}
	stringArg(p, "font", &opts.Font)
	stringArg(p, "direction", &opts.Direction)
	stringArg(p, "language", &opts.Language)
	stringArg(p, "halign", &opts.HAlign)
	stringArg(p, "valign", &opts.VAlign)

	poly, err := TextPolygon(opts)
	if err != nil {
		return nil, err
	}
	params := fmt.Sprintf("text = %q, size = %s, spacing = %s, font = %q, direction = %q, language = %q, halign = %q, valign = %q, $fn = %s",
		opts.Text, formatNum(opts.Size), formatNum(opts.Spacing), opts.Font, opts.Direction,
		opts.Language, opts.HAlign, opts.VAlign, formatNum(opts.Fn))
	return node.NewLeaf("text", params, poly), nil
}

func stringArg(p *module.Parameters, name string, dst *string) {
	if s, ok := p.Get(name).ToString(); ok {
		*dst = s
	}
}

// TextPolygon shapes opts.Text and returns the glyph outlines as one
// polygon, outer contours counter-clockwise. The em square is opts.Size
// units high and the pen starts at the origin on the baseline.
func TextPolygon(opts TextOptions) (*geometry.Polygon2d, error) {
	poly := geometry.NewPolygon2d()
	text := norm.NFC.String(opts.Text)
	if text == "" || !validSize(opts.Size) {
		return poly, nil
	}

	f, err := loadFont(opts.Font)
	if err != nil {
		return nil, err
	}
	upem := float64(f.outlines.UnitsPerEm())
	scale := opts.Size / upem

	runes := []rune(text)
	dir := textDirection(opts.Direction, runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(f.shaping),
		Size:      fixed.Int26_6(upem * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage(textLanguage(opts.Language)),
	}
	glyphs := (&shaping.HarfbuzzShaper{}).Shape(input).Glyphs
	solid.Logger().Debug("text shaped", "runes", len(runes), "glyphs", len(glyphs), "vertical", dir.IsVertical())

	steps := defaultCurveStep
	if opts.Fn > 0 {
		steps = int(math.Min(math.Max(opts.Fn, 1), maxCurveStep))
	}

	var (
		buf        sfnt.Buffer
		penX, penY float64
	)
	ppem := fixed.Int26_6(upem * 64)
	for _, g := range glyphs {
		gid := sfnt.GlyphIndex(g.GlyphID)
		outlines := glyphCache.GetOrCreate(glyphKey{font: f.key, glyph: gid, steps: steps}, func() []geometry.Outline2d {
			segs, err := f.outlines.LoadGlyph(&buf, gid, ppem, nil)
			if err != nil {
				solid.Logger().Warn("text: glyph has no outline", "glyph", gid, "err", err)
				return nil
			}
			return flattenGlyph(segs, steps)
		})

		ox := (penX + fixedToFloat(g.XOffset)) * scale
		oy := (penY + fixedToFloat(g.YOffset)) * scale
		for _, o := range outlines {
			placed := geometry.Outline2d{Vertices: make([]f64.Vec2, len(o.Vertices))}
			for i, v := range o.Vertices {
				placed.Vertices[i] = f64.Vec2{ox + v[0]*scale, oy + v[1]*scale}
			}
			poly.AddOutline(placed)
		}

		adv := fixedToFloat(g.Advance) * opts.Spacing
		if dir.IsVertical() {
			penY += adv
		} else {
			penX += adv
		}
	}

	align(poly, opts, penX*scale)
	return poly, nil
}

// flattenGlyph converts an sfnt outline (y down) into closed polylines in
// y-up font units with outer contours counter-clockwise.
func flattenGlyph(segs sfnt.Segments, steps int) []geometry.Outline2d {
	pt := func(p fixed.Point26_6) f64.Vec2 {
		return f64.Vec2{fixedToFloat(p.X), -fixedToFloat(p.Y)}
	}

	var (
		out []geometry.Outline2d
		cur []f64.Vec2
	)
	flush := func() {
		if n := len(cur); n > 1 && cur[0] == cur[n-1] {
			cur = cur[:n-1]
		}
		if len(cur) >= 3 {
			o := geometry.Outline2d{Vertices: cur}
			// TrueType outer contours are clockwise.
			o.Reverse()
			out = append(out, o)
		}
		cur = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0 := last(cur)
			c, p1 := pt(seg.Args[0]), pt(seg.Args[1])
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				u := 1 - t
				cur = append(cur, f64.Vec2{
					u*u*p0[0] + 2*u*t*c[0] + t*t*p1[0],
					u*u*p0[1] + 2*u*t*c[1] + t*t*p1[1],
				})
			}
		case sfnt.SegmentOpCubeTo:
			p0 := last(cur)
			c1, c2, p1 := pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2])
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				u := 1 - t
				cur = append(cur, f64.Vec2{
					u*u*u*p0[0] + 3*u*u*t*c1[0] + 3*u*t*t*c2[0] + t*t*t*p1[0],
					u*u*u*p0[1] + 3*u*u*t*c1[1] + 3*u*t*t*c2[1] + t*t*t*p1[1],
				})
			}
		}
	}
	flush()
	return out
}

func last(pts []f64.Vec2) f64.Vec2 {
	if len(pts) == 0 {
		return f64.Vec2{}
	}
	return pts[len(pts)-1]
}

// align shifts poly according to the horizontal and vertical alignment.
// Horizontal alignment uses the advance width, vertical alignment the
// outline bounds.
func align(poly *geometry.Polygon2d, opts TextOptions, advance float64) {
	var dx, dy float64
	switch opts.HAlign {
	case "center":
		dx = -advance / 2
	case "right":
		dx = -advance
	}
	if bb := poly.BoundingBox(); !bb.IsEmpty() {
		switch opts.VAlign {
		case "top":
			dy = -bb.Max[1]
		case "center":
			dy = -(bb.Min[1] + bb.Max[1]) / 2
		case "bottom":
			dy = -bb.Min[1]
		}
	}
	if dx != 0 || dy != 0 {
		poly.Transform(geometry.Translation(dx, dy))
	}
}

// textDirection maps the direction argument. An empty argument selects
// right-to-left when the first strong character is right-to-left.
func textDirection(name string, runes []rune) di.Direction {
	switch strings.ToLower(name) {
	case "ltr":
		return di.DirectionLTR
	case "rtl":
		return di.DirectionRTL
	case "ttb":
		return di.DirectionTTB
	case "btt":
		return di.DirectionBTT
	case "":
	default:
		solid.Logger().Warn("text: unknown direction, using auto", "direction", name)
	}
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// textLanguage canonicalizes a BCP 47 tag, defaulting to English.
func textLanguage(tag string) string {
	t, err := xlanguage.Parse(tag)
	if err != nil {
		solid.Logger().Warn("text: invalid language tag, using en", "language", tag, "err", err)
		return "en"
	}
	return t.String()
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
