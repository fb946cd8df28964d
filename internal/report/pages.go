package report

import (
	"fmt"
	"strings"

	"iplreport/internal/analytics"
)

// Pages returns the report pages in their fixed order
func Pages(summary *analytics.Summary) []Page {
	return []Page{
		titlePage{summary: summary},
		topScorersPage{summary: summary},
		powerHittersPage{summary: summary},
		distributionPage{summary: summary},
		deathOversPage{summary: summary},
		featuredPlayerPage{summary: summary},
		recordsPage{summary: summary},
	}
}

// chart layout shared by the two-chart pages
func upperChart(c *Canvas) Rect {
	area := c.Content()
	return Rect{X: area.X, Y: 45, W: area.W, H: 95}
}

func lowerChart(c *Canvas) Rect {
	area := c.Content()
	return Rect{X: area.X, Y: 150, W: area.W, H: 88}
}

func captionArea(c *Canvas, y, h float64) Rect {
	area := c.Content()
	return Rect{X: area.X + 5, Y: y, W: area.W - 10, H: h}
}

type titlePage struct {
	summary *analytics.Summary
}

func (titlePage) Title() string { return "Title Page with Statistics" }

func (p titlePage) Render(c *Canvas) error {
	theme := c.Theme()
	pal := theme.Palette
	area := c.Content()
	h := theme.PageHeight
	cx := area.CenterX()

	// decorative bands and border
	primary, secondary := pal.Primary, theme.Accent(1)
	c.pdf.LinearGradient(0, 0, theme.PageWidth, 12,
		primary.R, primary.G, primary.B, secondary.R, secondary.G, secondary.B, 0, 0, 1, 0)
	c.pdf.LinearGradient(0, h-12, theme.PageWidth, 12,
		secondary.R, secondary.G, secondary.B, primary.R, primary.G, primary.B, 0, 0, 1, 0)
	c.DrawColor(pal.Primary)
	c.LineWidth(0.8)
	c.pdf.RoundedRect(area.X, area.Y+5, area.W, area.H-10, 6, "1234", "D")

	c.Font("B", 40)
	c.TextColor(pal.Primary)
	c.CenteredText(cx, h*0.35, "IPL DATA ANALYSIS")
	c.CenteredText(cx, h*0.42, "REPORT")

	c.DrawColor(pal.Secondary)
	c.LineWidth(1.2)
	c.pdf.Line(theme.PageWidth*0.25, h*0.47, theme.PageWidth*0.75, h*0.47)

	c.Font("I", 18)
	c.TextColor(pal.Gray)
	c.CenteredText(cx, h*0.53, "A Comprehensive Visual Analysis")
	c.CenteredText(cx, h*0.57, "of Batting Performance & Statistics")

	o := p.summary.Overview
	stats := []struct {
		text  string
		color Color
	}{
		{"Total Matches: " + FormatInt(o.Matches), pal.Info},
		{"Total Runs Scored: " + FormatInt(o.TotalRuns), pal.Success},
		{"Unique Batsmen: " + FormatInt(o.Batsmen), pal.Purple},
		{"Deliveries Analysed: " + FormatInt(o.Deliveries), pal.Secondary},
	}
	c.Font("B", 14)
	for i, s := range stats {
		c.TextColor(s.color)
		c.CenteredText(cx, h*0.68+float64(i)*11, s.text)
	}

	c.Footer("Generated with Go, fpdf & go-chart")
	return c.Err()
}

type topScorersPage struct {
	summary *analytics.Summary
}

func (p topScorersPage) Title() string {
	return fmt.Sprintf("Top %d Run Scorers", p.summary.Options.TopScorers)
}

func (p topScorersPage) Render(c *Canvas) error {
	theme := c.Theme()
	c.PageTitle("IPL BATTING LEGENDS", theme.Palette.Primary)

	scorers := p.summary.TopScorers
	ramp := Ramp(HexColor("#31688e"), HexColor("#b5de2b"), len(scorers))
	bars := make([]Bar, len(scorers))
	for i, s := range scorers {
		bars[i] = Bar{Label: s.Key, Value: float64(s.Value), Text: FormatInt(s.Value), Color: ramp[i]}
	}

	area := c.Content()
	BarChart(c, Rect{X: area.X, Y: 45, W: area.W, H: 185}, p.Title()+" in IPL History", bars, theme.Palette.Primary, true)

	c.CaptionBox(captionArea(c, 238, 20),
		"These batsmen have demonstrated exceptional consistency and skill throughout IPL history.\n"+
			"The chart showcases the cumulative runs scored by the top performers.",
		HexColor("#add8e6"))
	return c.Err()
}

type powerHittersPage struct {
	summary *analytics.Summary
}

func (powerHittersPage) Title() string { return "Power Hitters (Sixes & Fours)" }

func (p powerHittersPage) Render(c *Canvas) error {
	pal := c.Theme().Palette
	c.PageTitle("POWER HITTERS ANALYSIS", pal.Danger)
	n := p.summary.Options.TopBoundaryHitters

	if err := ColumnChart(c, upperChart(c), fmt.Sprintf("Top %d Batsmen with Most Sixes", n),
		rankedBars(p.summary.TopSixHitters, pal.Danger), pal.Danger); err != nil {
		return err
	}
	if err := ColumnChart(c, lowerChart(c), fmt.Sprintf("Top %d Batsmen with Most Fours", n),
		rankedBars(p.summary.TopFourHitters, pal.Success), pal.Success); err != nil {
		return err
	}

	c.CaptionBox(captionArea(c, 244, 18),
		"Power hitters are the game-changers in T20 cricket. Sixes demonstrate raw power,\n"+
			"while fours showcase timing and placement. These batsmen excel at boundary hitting.",
		HexColor("#ffffe0"))
	return c.Err()
}

func rankedBars(table []analytics.Ranked, col Color) []Bar {
	bars := make([]Bar, len(table))
	for i, r := range table {
		bars[i] = Bar{Label: r.Key, Value: float64(r.Value), Text: FormatInt(r.Value), Color: col}
	}
	return bars
}

type distributionPage struct {
	summary *analytics.Summary
}

func (distributionPage) Title() string { return "Run Distribution Analysis" }

func (p distributionPage) Render(c *Canvas) error {
	theme := c.Theme()
	pal := theme.Palette
	c.PageTitle("RUN DISTRIBUTION ANALYSIS", pal.Purple)

	dist := p.summary.Distribution
	values := make([]string, len(dist))
	slices := make([]Slice, len(dist))
	bars := make([]Bar, len(dist))
	for i, rc := range dist {
		col := theme.RunColor(rc.Runs)
		values[i] = fmt.Sprintf("%d", rc.Runs)
		slices[i] = Slice{
			Label:   values[i],
			Value:   float64(rc.Balls),
			Color:   col,
			Explode: rc.Runs == 4 || rc.Runs == 6,
			Legend:  fmt.Sprintf("%d runs: %s balls", rc.Runs, FormatInt(rc.Balls)),
		}
		bars[i] = Bar{Label: values[i], Value: float64(rc.Balls), Text: FormatInt(rc.Balls), Color: col}
	}

	PieChart(c, upperChart(c),
		fmt.Sprintf("Distribution of Runs by Type (%s)", strings.Join(values, ", ")), slices, 90)

	if err := ColumnChart(c, lowerChart(c), "Histogram: Frequency of Each Run Type", bars, pal.Text); err != nil {
		return err
	}

	c.CaptionBox(captionArea(c, 244, 18),
		"This analysis shows how runs are distributed across different scoring types.\n"+
			"Boundaries (4s & 6s) are highlighted, showing their impact on the game.",
		HexColor("#e6e6fa"))
	return c.Err()
}

type deathOversPage struct {
	summary *analytics.Summary
}

func (deathOversPage) Title() string { return "Death Overs & Strike Rate" }

func (p deathOversPage) Render(c *Canvas) error {
	pal := c.Theme().Palette
	opts := p.summary.Options
	c.PageTitle("DEATH OVERS & STRIKE RATE ANALYSIS", pal.Danger)

	death := p.summary.DeathHitters
	reds := Ramp(HexColor("#fb6a4a"), HexColor("#a50f15"), len(death))
	deathBars := make([]Bar, len(death))
	for i, r := range death {
		deathBars[i] = Bar{Label: r.Key, Value: float64(r.Value), Text: FormatInt(r.Value), Color: reds[i]}
	}
	title := fmt.Sprintf("Top %d Death Over Specialists (Overs %d-20)", opts.TopDeathHitters, opts.DeathOversAfter+1)
	if err := ColumnChart(c, upperChart(c), title, deathBars, pal.Danger); err != nil {
		return err
	}

	rates := p.summary.StrikeRates
	greens := Ramp(HexColor("#a1d99b"), HexColor("#006d2c"), len(rates))
	rateBars := make([]Bar, len(rates))
	for i, r := range rates {
		rateBars[i] = Bar{Label: r.Batsman, Value: r.Rate, Text: FormatRate(r.Rate), Color: greens[i]}
	}
	BarChart(c, lowerChart(c),
		fmt.Sprintf("Top %d Batsmen by Strike Rate (Min %s runs)", opts.TopStrikeRates, FormatInt(opts.StrikeRateMinRuns)),
		rateBars, pal.Success, false)

	c.CaptionBox(captionArea(c, 244, 18),
		"Death overs (16-20) are crucial in T20 cricket. Strike rate measures scoring efficiency.\n"+
			"These metrics identify the most impactful batsmen in pressure situations.",
		HexColor("#f08080"))
	return c.Err()
}

type featuredPlayerPage struct {
	summary *analytics.Summary
}

func (p featuredPlayerPage) Title() string {
	return p.summary.Options.FeaturedPlayer + " Performance"
}

func (p featuredPlayerPage) Render(c *Canvas) error {
	theme := c.Theme()
	pal := theme.Palette
	player := p.summary.Options.FeaturedPlayer
	c.PageTitle(strings.ToUpper(player)+" - PERFORMANCE BREAKDOWN", pal.Primary)

	teams := p.summary.FeaturedTeams
	slices := make([]Slice, len(teams))
	for i, t := range teams {
		slices[i] = Slice{
			Label:   t.Key,
			Value:   float64(t.Value),
			Color:   theme.Accent(i),
			Explode: i == 0,
			Legend:  fmt.Sprintf("%s: %s runs", t.Key, FormatInt(t.Value)),
		}
	}
	area := c.Content()
	PieChart(c, Rect{X: area.X, Y: 45, W: area.W, H: 145}, "Runs Distribution Against Different Teams", slices, 45)

	box := Rect{X: area.CenterX() - 35, Y: 200, W: 70, H: 14}
	c.pdf.SetAlpha(0.3, "Normal")
	c.FillColor(HexColor("#ffff00"))
	c.pdf.RoundedRect(box.X, box.Y, box.W, box.H, 3, "1234", "F")
	c.pdf.SetAlpha(1, "Normal")
	c.Font("B", 14)
	c.TextColor(pal.Primary)
	c.CenteredText(box.CenterX(), box.Y+9.5, "Total Runs: "+FormatInt(p.summary.FeaturedRuns))

	c.CaptionBox(captionArea(c, 226, 20),
		player+" is one of IPL's most consistent performers. This pie chart shows\n"+
			"the distribution of the runs scored against various teams.",
		HexColor("#add8e6"))
	return c.Err()
}

type recordsPage struct {
	summary *analytics.Summary
}

func (recordsPage) Title() string { return "Record-Breaking Performances" }

func (p recordsPage) Render(c *Canvas) error {
	pal := c.Theme().Palette
	area := c.Content()
	c.PageTitle("RECORD-BREAKING PERFORMANCES", pal.Warning)

	c.Font("B", 16)
	c.TextColor(pal.Primary)
	c.CenteredText(area.CenterX(), 62,
		fmt.Sprintf("Top %d Highest Individual Scores in a Single Match", p.summary.Options.TopInnings))

	innings := p.summary.HighestInnings
	rows := make([][]string, len(innings))
	for i, s := range innings {
		rows[i] = []string{fmt.Sprintf("%d", i+1), s.Batsman, FormatInt(s.Runs)}
	}
	columns := []TableColumn{
		{Header: "Rank", Width: 0.18, Align: "C"},
		{Header: "Batsman", Width: 0.54, Align: "C"},
		{Header: "Runs Scored", Width: 0.28, Align: "C"},
	}
	Table(c, Rect{X: area.X + 15, Y: 75, W: area.W - 30, H: 100}, columns, rows, true)

	c.CaptionBox(captionArea(c, 205, 26),
		"These extraordinary innings represent the pinnacle of individual batting performances in IPL.\n"+
			"Each score showcases exceptional skill, concentration, and match-winning ability.\n"+
			"These batsmen dominated their respective matches with remarkable consistency and power.",
		HexColor("#ffffe0"))
	return c.Err()
}
