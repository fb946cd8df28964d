package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Rect is an area on the page, in millimetres from the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Inset shrinks the rectangle by d on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// CenterX returns the horizontal centre
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Bottom returns the lower edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Canvas is the drawing surface handed to a page while it renders.
// It wraps the document's current page and the report theme.
type Canvas struct {
	pdf   *fpdf.Fpdf
	theme Theme
	tr    func(string) string
	page  int
}

func newCanvas(pdf *fpdf.Fpdf, theme Theme, page int) *Canvas {
	return &Canvas{
		pdf:   pdf,
		theme: theme,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		page:  page,
	}
}

// Theme returns the report theme
func (c *Canvas) Theme() Theme { return c.theme }

// PageNumber is the 1-based number of the page being drawn
func (c *Canvas) PageNumber() int { return c.page }

// Content returns the printable area inside the margins
func (c *Canvas) Content() Rect {
	m := c.theme.Margin
	return Rect{X: m, Y: m, W: c.theme.PageWidth - 2*m, H: c.theme.PageHeight - 2*m}
}

// Err returns the first drawing error, if any
func (c *Canvas) Err() error {
	return c.pdf.Error()
}

// Font sets the font style ("", "B", "I", "BI") and size in points
func (c *Canvas) Font(style string, size float64) {
	c.pdf.SetFont(c.theme.FontFamily, style, size)
}

// TextColor sets the colour of subsequent text
func (c *Canvas) TextColor(col Color) {
	c.pdf.SetTextColor(col.R, col.G, col.B)
}

// FillColor sets the colour of subsequent filled shapes
func (c *Canvas) FillColor(col Color) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
}

// DrawColor sets the colour of subsequent strokes
func (c *Canvas) DrawColor(col Color) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
}

// LineWidth sets the stroke width in millimetres
func (c *Canvas) LineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

// TextWidth measures s in the current font
func (c *Canvas) TextWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

// Text draws s with its baseline starting at (x, y)
func (c *Canvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, c.tr(s))
}

// CenteredText draws s centred horizontally on cx
func (c *Canvas) CenteredText(cx, y float64, s string) {
	c.Text(cx-c.TextWidth(s)/2, y, s)
}

// RightText draws s ending at x
func (c *Canvas) RightText(x, y float64, s string) {
	c.Text(x-c.TextWidth(s), y, s)
}

// Fit shortens s with an ellipsis until it fits in w
func (c *Canvas) Fit(s string, w float64) string {
	if c.TextWidth(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "..."
		if c.TextWidth(candidate) <= w {
			return candidate
		}
	}
	return s
}

// PageTitle draws the page heading with a thin accent rule below it
// and returns the y coordinate where content may start.
func (c *Canvas) PageTitle(title string, col Color) float64 {
	area := c.Content()
	c.Font("B", c.theme.TitleSize)
	c.TextColor(col)
	y := area.Y + 10
	c.CenteredText(area.CenterX(), y, title)

	c.DrawColor(col)
	c.LineWidth(0.6)
	c.pdf.Line(area.X+30, y+4, area.X+area.W-30, y+4)
	return y + 10
}

// Heading draws a bold chart title centred over area
func (c *Canvas) Heading(area Rect, title string) {
	c.Font("B", c.theme.HeadingSize)
	c.TextColor(c.theme.Palette.Text)
	c.CenteredText(area.CenterX(), area.Y, title)
}

// CaptionBox draws a translucent rounded box with centred explanatory text.
// Lines in text are separated by "\n".
func (c *Canvas) CaptionBox(area Rect, text string, fill Color) {
	c.pdf.SetAlpha(c.theme.CaptionAlpha, "Normal")
	c.FillColor(fill)
	c.DrawColor(fill.Mix(c.theme.Palette.Text, 0.3))
	c.LineWidth(0.3)
	c.pdf.RoundedRect(area.X, area.Y, area.W, area.H, 4, "1234", "FD")
	c.pdf.SetAlpha(1, "Normal")

	c.Font("", c.theme.BodySize)
	c.TextColor(c.theme.Palette.Text)

	inner := area.Inset(4)
	lines := strings.Split(text, "\n")
	lineH := c.theme.BodySize * 0.45
	y := area.Y + (area.H-lineH*float64(len(lines)))/2 + lineH*0.75
	for _, line := range lines {
		c.CenteredText(inner.CenterX(), y, c.Fit(line, inner.W))
		y += lineH
	}
}

// NoData draws a dashed placeholder box used when a table has no entries
func (c *Canvas) NoData(area Rect) {
	c.DrawColor(c.theme.Palette.Gray)
	c.LineWidth(0.3)
	c.pdf.SetDashPattern([]float64{2, 2}, 0)
	c.pdf.Rect(area.X, area.Y, area.W, area.H, "D")
	c.pdf.SetDashPattern([]float64{}, 0)

	c.Font("I", c.theme.HeadingSize)
	c.TextColor(c.theme.Palette.Gray)
	c.CenteredText(area.CenterX(), area.Y+area.H/2, "No data")
}

// Image places PNG data into area
func (c *Canvas) Image(png []byte, area Rect) error {
	name := fmt.Sprintf("page%d-%d-%d", c.page, int(area.X*10), int(area.Y*10))
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}

	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("failed to register chart image: %w", err)
	}
	c.pdf.ImageOptions(name, area.X, area.Y, area.W, area.H, false, opts, 0, "")
	return c.pdf.Error()
}

// Footer draws small grey text centred at the bottom of the page,
// with the page number on the right
func (c *Canvas) Footer(text string) {
	area := c.Content()
	c.Font("I", c.theme.SmallSize)
	c.TextColor(c.theme.Palette.Gray)
	c.CenteredText(area.CenterX(), area.Bottom(), text)
	c.RightText(area.X+area.W, area.Bottom(), fmt.Sprintf("Page %d", c.PageNumber()))
}
