package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Bar is one bar of a bar chart
type Bar struct {
	Label string
	Value float64
	Text  string // value label drawn next to the bar
	Color Color
}

// Slice is one wedge of a pie chart
type Slice struct {
	Label   string
	Value   float64
	Color   Color
	Explode bool
	Legend  string // legend text, Label when empty
}

// renderColumnChart draws vertical bars to PNG with go-chart.
// Value labels are painted above each bar.
func renderColumnChart(theme Theme, bars []Bar, labelColor Color) ([]byte, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("column chart needs at least one bar")
	}

	max := 0.0
	values := make([]chart.Value, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		max = math.Max(max, b.Value)
		values[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   b.Color.Mix(Color{R: 255, G: 255, B: 255}, 0.12).drawing(),
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1.5,
			},
		}
		labels[i] = b.Text
	}
	if max <= 0 {
		max = 1
	}
	yRange := &chart.ContinuousRange{Min: 0, Max: max * 1.15}

	bc := chart.BarChart{
		Width:      theme.ChartWidth,
		Height:     theme.ChartHeight,
		DPI:        theme.ChartDPI,
		BarWidth:   80,
		BarSpacing: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{FontSize: 10},
		YAxis: chart.YAxis{
			Range: yRange,
			Style: chart.Style{FontSize: 9},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatInt(int(f))
				}
				return ""
			},
		},
		Bars: values,
	}
	bc.Elements = []chart.Renderable{columnLabels(&bc, yRange, labels, labelColor.drawing())}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render column chart: %w", err)
	}
	return buf.Bytes(), nil
}

// columnLabels paints text centred above each bar, following the bar
// geometry the chart itself uses.
func columnLabels(bc *chart.BarChart, yRange *chart.ContinuousRange, labels []string, color drawing.Color) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		n := len(bc.Bars)
		width, spacing := bc.BarWidth, bc.BarSpacing
		if n*(width+spacing) > canvasBox.Width() {
			spacing = 0
			if less := canvasBox.Width() - n*width; less > 0 {
				spacing = int(math.Ceil(float64(less) / float64(n)))
			}
			if n*(width+spacing) > canvasBox.Width() {
				width = 0
				if less := canvasBox.Width() - n*spacing; less > 0 {
					width = int(math.Ceil(float64(less) / float64(n)))
				}
			}
		}

		yr := chart.ContinuousRange{Min: yRange.Min, Max: yRange.Max, Domain: canvasBox.Height()}

		r.SetFont(defaults.Font)
		r.SetFontSize(11)
		r.SetFontColor(color)

		x := canvasBox.Left + spacing/2
		for i, bar := range bc.Bars {
			if i < len(labels) && labels[i] != "" {
				box := r.MeasureText(labels[i])
				top := canvasBox.Bottom - yr.Translate(bar.Value)
				r.Text(labels[i], x+(width-box.Width())/2, top-6)
			}
			x += width + spacing
		}
	}
}

// ColumnChart draws a titled vertical bar chart into area
func ColumnChart(c *Canvas, area Rect, title string, bars []Bar, labelColor Color) error {
	c.Heading(area, title)
	plot := Rect{X: area.X, Y: area.Y + 3, W: area.W, H: area.H - 3}
	if len(bars) == 0 {
		c.NoData(plot)
		return nil
	}

	png, err := renderColumnChart(c.Theme(), bars, labelColor)
	if err != nil {
		return err
	}
	return c.Image(png, plot)
}

// BarChart draws a titled horizontal bar chart into area, first entry at the top.
// With badges set, the first three rows get gold, silver and bronze rank markers.
func BarChart(c *Canvas, area Rect, title string, bars []Bar, labelColor Color, badges bool) {
	theme := c.Theme()
	c.Heading(area, title)
	plot := Rect{X: area.X, Y: area.Y + 5, W: area.W, H: area.H - 12}
	if len(bars) == 0 {
		c.NoData(plot)
		return
	}

	c.Font("", theme.BodySize)
	labelW := 0.0
	for _, b := range bars {
		labelW = math.Max(labelW, c.TextWidth(b.Label))
	}
	labelW = math.Min(labelW+3, plot.W*0.3)

	badgeW := 0.0
	if badges {
		badgeW = 8
	}

	valueW := 18.0
	left := plot.X + badgeW + labelW
	barsW := plot.W - badgeW - labelW - valueW

	max := 0.0
	for _, b := range bars {
		max = math.Max(max, b.Value)
	}
	if max <= 0 {
		max = 1
	}
	scale := barsW / max

	// vertical grid with tick labels along the bottom
	ticks := niceTicks(max, 5)
	c.DrawColor(theme.Palette.Grid)
	c.LineWidth(0.2)
	c.Font("", theme.SmallSize)
	c.TextColor(theme.Palette.Gray)
	for _, t := range ticks {
		x := left + t*scale
		c.pdf.Line(x, plot.Y, x, plot.Bottom())
		c.CenteredText(x, plot.Bottom()+4, FormatInt(int(t)))
	}

	rowH := plot.H / float64(len(bars))
	barH := math.Min(rowH*0.7, 14)
	medals := []Color{theme.Palette.Gold, theme.Palette.Silver, theme.Palette.Bronze}

	for i, b := range bars {
		cy := plot.Y + rowH*float64(i) + rowH/2
		w := b.Value * scale

		c.FillColor(b.Color)
		c.DrawColor(theme.Palette.Text)
		c.LineWidth(0.3)
		c.pdf.Rect(left, cy-barH/2, w, barH, "FD")

		c.Font("", theme.BodySize)
		c.TextColor(theme.Palette.Text)
		c.RightText(left-2, cy+1.2, c.Fit(b.Label, labelW-2))

		if b.Text != "" {
			c.Font("B", theme.BodySize)
			c.TextColor(labelColor)
			c.Text(left+w+2, cy+1.2, b.Text)
		}

		if badges && i < len(medals) {
			bx := plot.X + badgeW/2
			c.FillColor(medals[i])
			c.DrawColor(medals[i].Mix(theme.Palette.Text, 0.4))
			c.pdf.Circle(bx, cy, 3, "FD")
			c.Font("B", theme.SmallSize)
			c.TextColor(theme.Palette.Text)
			c.CenteredText(bx, cy+1, fmt.Sprintf("%d", i+1))
		}
	}

	c.DrawColor(theme.Palette.Text)
	c.LineWidth(0.3)
	c.pdf.Line(left, plot.Y, left, plot.Bottom())
}

// niceTicks returns round tick values from 0 up to max
func niceTicks(max float64, count int) []float64 {
	if max <= 0 || count < 1 {
		return []float64{0}
	}
	raw := max / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}
	if step < 1 {
		step = 1
	}

	var ticks []float64
	for v := 0.0; v <= max+step/1000; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// PieChart draws a pie centred in area with percentage labels on the wedges.
// Exploded wedges are pushed out along their bisector. The legend lists
// every wedge to the right of the pie.
func PieChart(c *Canvas, area Rect, title string, slices []Slice, startAngle float64) {
	theme := c.Theme()
	c.Heading(area, title)
	plot := Rect{X: area.X, Y: area.Y + 5, W: area.W, H: area.H - 5}

	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	if len(slices) == 0 || total <= 0 {
		c.NoData(plot)
		return
	}

	legendW := plot.W * 0.34
	radius := math.Min(plot.W-legendW, plot.H)/2 - 8
	cx := plot.X + (plot.W-legendW)/2
	cy := plot.Y + plot.H/2
	explode := radius * 0.08

	type wedge struct {
		start, end float64
		ox, oy     float64
	}
	wedges := make([]wedge, len(slices))
	angle := startAngle
	for i, s := range slices {
		sweep := s.Value / total * 360
		w := wedge{start: angle, end: angle + sweep}
		if s.Explode {
			mid := (w.start + w.end) / 2 * math.Pi / 180
			w.ox = math.Cos(mid) * explode
			w.oy = -math.Sin(mid) * explode
		}
		wedges[i] = w
		angle += sweep
	}

	// shadow
	c.pdf.SetAlpha(0.15, "Normal")
	c.FillColor(theme.Palette.Text)
	for i, w := range wedges {
		if slices[i].Value <= 0 {
			continue
		}
		c.pdf.Polygon(wedgePoints(cx+w.ox+1.2, cy+w.oy+1.2, radius, w.start, w.end), "F")
	}
	c.pdf.SetAlpha(1, "Normal")

	c.DrawColor(theme.Palette.White)
	c.LineWidth(0.8)
	for i, w := range wedges {
		if slices[i].Value <= 0 {
			continue
		}
		c.FillColor(slices[i].Color)
		c.pdf.Polygon(wedgePoints(cx+w.ox, cy+w.oy, radius, w.start, w.end), "FD")
	}

	c.Font("B", theme.SmallSize+1)
	c.TextColor(theme.Palette.White)
	for i, w := range wedges {
		if slices[i].Value/total < 0.02 {
			continue
		}
		mid := (w.start + w.end) / 2 * math.Pi / 180
		lx := cx + w.ox + math.Cos(mid)*radius*0.65
		ly := cy + w.oy - math.Sin(mid)*radius*0.65
		c.CenteredText(lx, ly+1.2, FormatPercent(slices[i].Value, total))
	}

	legend := Rect{X: plot.X + plot.W - legendW, Y: cy - float64(len(slices))*3.5, W: legendW, H: float64(len(slices)) * 7}
	Legend(c, legend, slices)
}

// Legend draws colour swatches with labels, one row per slice
func Legend(c *Canvas, area Rect, slices []Slice) {
	theme := c.Theme()
	rowH := area.H / float64(len(slices))
	c.Font("", theme.SmallSize+1)
	for i, s := range slices {
		y := area.Y + rowH*float64(i)
		c.FillColor(s.Color)
		c.DrawColor(theme.Palette.Text)
		c.LineWidth(0.2)
		c.pdf.Rect(area.X, y+rowH/2-2, 4, 4, "FD")

		text := s.Legend
		if text == "" {
			text = s.Label
		}
		c.TextColor(theme.Palette.Text)
		c.Text(area.X+6, y+rowH/2+1.2, c.Fit(text, area.W-6))
	}
}

// wedgePoints approximates a pie wedge as a polygon. Angles are in degrees,
// counter-clockwise from the positive x axis.
func wedgePoints(cx, cy, r, start, end float64) []fpdf.PointType {
	steps := int(math.Ceil((end-start)/3)) + 1
	if steps < 2 {
		steps = 2
	}
	points := make([]fpdf.PointType, 0, steps+2)
	points = append(points, fpdf.PointType{X: cx, Y: cy})
	for i := 0; i <= steps; i++ {
		a := (start + (end-start)*float64(i)/float64(steps)) * math.Pi / 180
		points = append(points, fpdf.PointType{X: cx + math.Cos(a)*r, Y: cy - math.Sin(a)*r})
	}
	return points
}

// TableColumn describes one column of a styled table
type TableColumn struct {
	Header string
	Width  float64 // fraction of the table width
	Align  string  // fpdf alignment: "L", "C" or "R"
}

// Table draws a table with a coloured header and banded rows.
// highlightFirst picks out the first data row.
func Table(c *Canvas, area Rect, columns []TableColumn, rows [][]string, highlightFirst bool) {
	theme := c.Theme()
	if len(rows) == 0 {
		c.NoData(area)
		return
	}

	rowH := math.Min(area.H/float64(len(rows)+1), 14)
	c.DrawColor(theme.Palette.Gray)
	c.LineWidth(0.3)

	c.pdf.SetXY(area.X, area.Y)
	c.Font("B", theme.HeadingSize)
	c.FillColor(theme.Palette.Primary)
	c.TextColor(theme.Palette.White)
	for _, col := range columns {
		c.pdf.CellFormat(area.W*col.Width, rowH, c.tr(col.Header), "1", 0, "C", true, 0, "")
	}

	highlight := HexColor("#ffffcc")
	band := HexColor("#f0f0f0")
	for i, row := range rows {
		c.pdf.SetXY(area.X, area.Y+rowH*float64(i+1))
		switch {
		case highlightFirst && i == 0:
			c.FillColor(highlight)
			c.Font("B", theme.BodySize+2)
		case i%2 == 0:
			c.FillColor(band)
			c.Font("", theme.BodySize+2)
		default:
			c.FillColor(theme.Palette.White)
			c.Font("", theme.BodySize+2)
		}
		c.TextColor(theme.Palette.Text)
		for j, col := range columns {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			w := area.W * col.Width
			c.pdf.CellFormat(w, rowH, c.tr(c.Fit(cell, w-4)), "1", 0, col.Align, true, 0, "")
		}
	}
}
