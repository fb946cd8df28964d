package report

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Color is an RGB colour with 0-255 components
type Color struct {
	R, G, B int
}

// HexColor converts a "#rrggbb" string to a Color.
// Invalid input yields black.
func HexColor(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return Color{}
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}
	}
	return Color{R: r, G: g, B: b}
}

// Hex returns the colour as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Mix blends c towards other; t=0 is c, t=1 is other
func (c Color) Mix(other Color, t float64) Color {
	lerp := func(a, b int) int {
		return int(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: lerp(c.R, other.R), G: lerp(c.G, other.G), B: lerp(c.B, other.B)}
}

func (c Color) drawing() drawing.Color {
	return drawing.Color{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// Ramp returns n colours evenly spaced from 'from' to 'to'
func Ramp(from, to Color, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = from.Mix(to, t)
	}
	return out
}

// Palette names the report colours
type Palette struct {
	Primary   Color
	Secondary Color
	Success   Color
	Danger    Color
	Warning   Color
	Info      Color
	Purple    Color
	Pink      Color
	Brown     Color
	Gray      Color
	Text      Color
	Grid      Color
	White     Color
	Gold      Color
	Silver    Color
	Bronze    Color
}

// Theme is the immutable visual configuration of a report.
// It is built once and passed to every page; nothing in the package keeps
// style state of its own.
type Theme struct {
	// Page geometry, in millimetres
	PageSize    string
	PageWidth   float64
	PageHeight  float64
	Margin      float64
	Orientation string

	FontFamily   string
	TitleSize    float64
	HeadingSize  float64
	BodySize     float64
	SmallSize    float64
	CaptionAlpha float64

	Palette Palette

	// Accents cycles through categorical series such as pie wedges
	Accents []Color

	// RunColors maps runs-off-the-bat values to wedge and bar colours
	RunColors map[int]Color

	// Chart raster size for embedded bar charts, in pixels
	ChartWidth  int
	ChartHeight int
	ChartDPI    float64
}

// DefaultTheme returns the standard report styling on US Letter paper
func DefaultTheme() Theme {
	p := Palette{
		Primary:   HexColor("#1f77b4"),
		Secondary: HexColor("#ff7f0e"),
		Success:   HexColor("#2ca02c"),
		Danger:    HexColor("#d62728"),
		Warning:   HexColor("#ff9800"),
		Info:      HexColor("#17a2b8"),
		Purple:    HexColor("#9467bd"),
		Pink:      HexColor("#e377c2"),
		Brown:     HexColor("#8c564b"),
		Gray:      HexColor("#7f7f7f"),
		Text:      HexColor("#222222"),
		Grid:      HexColor("#e5e5e5"),
		White:     HexColor("#ffffff"),
		Gold:      HexColor("#ffd700"),
		Silver:    HexColor("#c0c0c0"),
		Bronze:    HexColor("#cd7f32"),
	}

	return Theme{
		PageSize:     "Letter",
		PageWidth:    215.9,
		PageHeight:   279.4,
		Margin:       15,
		Orientation:  "P",
		FontFamily:   "Helvetica",
		TitleSize:    22,
		HeadingSize:  13,
		BodySize:     10,
		SmallSize:    8,
		CaptionAlpha: 0.3,
		Palette:      p,
		Accents: []Color{
			HexColor("#667eea"), HexColor("#764ba2"), HexColor("#f093fb"), HexColor("#4facfe"),
			HexColor("#00c2ce"), HexColor("#43e97b"), HexColor("#fa709a"), HexColor("#fee140"),
		},
		RunColors: map[int]Color{
			0: p.Gray,
			1: p.Info,
			2: p.Success,
			3: p.Warning,
			4: p.Primary,
			6: p.Danger,
		},
		ChartWidth:  900,
		ChartHeight: 420,
		ChartDPI:    96,
	}
}

// ContentWidth is the printable width between the side margins
func (t Theme) ContentWidth() float64 {
	return t.PageWidth - 2*t.Margin
}

// Accent returns the i-th categorical colour, cycling when needed
func (t Theme) Accent(i int) Color {
	if len(t.Accents) == 0 {
		return t.Palette.Primary
	}
	return t.Accents[i%len(t.Accents)]
}

// RunColor returns the colour used for a runs-off-the-bat value
func (t Theme) RunColor(runs int) Color {
	if c, ok := t.RunColors[runs]; ok {
		return c
	}
	return t.Palette.Brown
}
