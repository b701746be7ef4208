package builtin

import (
	"testing"

	"github.com/go-text/typesetting/di"

	"github.com/gogpu/solid/geometry"
	"github.com/gogpu/solid/module"
)

func TestTextGlyphOrientation(t *testing.T) {
	p, err := TextPolygon(TextOptions{Text: "o", Size: 10, Spacing: 1})
	if err != nil {
		t.Fatalf("TextPolygon() error = %v", err)
	}
	outlines := p.Outlines()
	if len(outlines) != 2 {
		t.Fatalf("outlines = %d, want 2", len(outlines))
	}
	var outer, inner int
	for _, o := range outlines {
		if o.SignedArea() > 0 {
			outer++
		} else {
			inner++
		}
	}
	if outer != 1 || inner != 1 {
		t.Errorf("outer = %d, inner = %d; want 1 and 1", outer, inner)
	}

	bb := p.BoundingBox()
	if bb.Min[1] < -1 || bb.Max[1] > 10 || bb.Min[0] < 0 {
		t.Errorf("BoundingBox() = %v, want a glyph sitting on the baseline", bb)
	}
	if got := p.Area(geometry.DefaultRenderSettings()); got <= 0 {
		t.Errorf("Area() = %g, want > 0", got)
	}
}

func TestTextAlignment(t *testing.T) {
	tests := []struct {
		name   string
		halign string
		valign string
		check  func(bb geometry.BoundingBox) bool
	}{
		{"top", "left", "top", func(bb geometry.BoundingBox) bool { return almostEqual(bb.Max[1], 0) }},
		{"bottom", "left", "bottom", func(bb geometry.BoundingBox) bool { return almostEqual(bb.Min[1], 0) }},
		{"center", "left", "center", func(bb geometry.BoundingBox) bool { return almostEqual(bb.Min[1], -bb.Max[1]) }},
		{"right", "right", "baseline", func(bb geometry.BoundingBox) bool { return bb.Max[0] <= 1e-9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := TextPolygon(TextOptions{Text: "Ho", Size: 10, Spacing: 1, HAlign: tt.halign, VAlign: tt.valign})
			if err != nil {
				t.Fatalf("TextPolygon() error = %v", err)
			}
			if bb := p.BoundingBox(); !tt.check(bb) {
				t.Errorf("BoundingBox() = %v", bb)
			}
		})
	}
}

func TestTextSpacing(t *testing.T) {
	narrow, err := TextPolygon(TextOptions{Text: "ii", Size: 10, Spacing: 1})
	if err != nil {
		t.Fatalf("TextPolygon() error = %v", err)
	}
	wide, err := TextPolygon(TextOptions{Text: "ii", Size: 10, Spacing: 2})
	if err != nil {
		t.Fatalf("TextPolygon() error = %v", err)
	}
	if wide.BoundingBox().Sizes()[0] <= narrow.BoundingBox().Sizes()[0] {
		t.Errorf("spacing 2 width %g, want more than %g",
			wide.BoundingBox().Sizes()[0], narrow.BoundingBox().Sizes()[0])
	}
}

func TestTextEmpty(t *testing.T) {
	_, p := evaluate(t, module.Instantiate("text", []module.Assignment{module.Pos(module.Str(""))}))
	if !p.IsEmpty() {
		t.Errorf("outlines = %d, want 0", len(p.Outlines()))
	}
}

func TestTextModule(t *testing.T) {
	n, p := evaluate(t, module.Instantiate("text", []module.Assignment{
		module.Pos(module.Str("A")),
		module.Arg("size", module.Number(5)),
		module.Arg("font", module.Str("Go:style=Bold")),
	}))
	if p.IsEmpty() {
		t.Fatal("text(\"A\") produced no outlines")
	}
	if h := p.BoundingBox().Sizes()[1]; h <= 0 || h > 5 {
		t.Errorf("height = %g, want within the em size", h)
	}
	want := `text = "A", size = 5, spacing = 1, font = "Go:style=Bold", direction = "", language = "en", halign = "left", valign = "baseline", $fn = 0`
	if got := n.Params(); got != want {
		t.Errorf("Params() = %q, want %q", got, want)
	}
}

func TestFontKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "go"},
		{"Go", "go"},
		{"Go Regular", "go"},
		{"Go:style=Bold", "go:bold"},
		{"Go:style=Bold Italic", "go:bold italic"},
		{"Go Mono", "go mono"},
	}
	for _, tt := range tests {
		if got := fontKey(tt.name); got != tt.want {
			t.Errorf("fontKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTextDirection(t *testing.T) {
	tests := []struct {
		arg  string
		text string
		want di.Direction
	}{
		{"", "abc", di.DirectionLTR},
		{"", "שלום", di.DirectionRTL},
		{"", "123 שלום", di.DirectionRTL},
		{"ltr", "שלום", di.DirectionLTR},
		{"TTB", "abc", di.DirectionTTB},
	}
	for _, tt := range tests {
		if got := textDirection(tt.arg, []rune(tt.text)); got != tt.want {
			t.Errorf("textDirection(%q, %q) = %v, want %v", tt.arg, tt.text, got, tt.want)
		}
	}
}

func TestTextLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en", "en"},
		{"EN-us", "en-US"},
		{"not a tag!", "en"},
	}
	for _, tt := range tests {
		if got := textLanguage(tt.tag); got != tt.want {
			t.Errorf("textLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTextReusesGlyphOutlines(t *testing.T) {
	before := glyphCache.Stats().Hits
	p, err := TextPolygon(TextOptions{Text: "ll", Size: 10, Spacing: 1, Fn: 3})
	if err != nil {
		t.Fatalf("TextPolygon() error = %v", err)
	}
	if glyphCache.Stats().Hits <= before {
		t.Error("second glyph was not served from the cache")
	}
	outlines := p.Outlines()
	if len(outlines) != 2 {
		t.Fatalf("outlines = %d, want 2", len(outlines))
	}
	// Cached outlines are shared; placed copies must differ.
	if outlines[0].Vertices[0] == outlines[1].Vertices[0] {
		t.Error("both glyphs were placed at the same position")
	}
}
