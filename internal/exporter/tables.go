package exporter

import (
	"iplreport/internal/analytics"
)

// Table is one exported summary table
type Table struct {
	Name    string // file name stem and identifier
	Sheet   string // worksheet name, at most 31 characters
	Headers []string
	Rows    [][]string
}

// SummaryTables flattens a summary into exportable tables, overview first
func SummaryTables(s *analytics.Summary) []Table {
	o := s.Overview
	tables := []Table{
		{
			Name:    "overview",
			Sheet:   "Overview",
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Deliveries", formatInt(o.Deliveries)},
				{"Matches", formatInt(o.Matches)},
				{"Total Runs", formatInt(o.TotalRuns)},
				{"Batsmen", formatInt(o.Batsmen)},
			},
		},
		rankedTable("top_scorers", "Top Scorers", "Batsman", "Runs", s.TopScorers),
		rankedTable("six_hitters", "Sixes", "Batsman", "Sixes", s.TopSixHitters),
		rankedTable("four_hitters", "Fours", "Batsman", "Fours", s.TopFourHitters),
		rankedTable("death_over_hitters", "Death Overs", "Batsman", "Boundaries", s.DeathHitters),
		rankedTable("featured_player_teams", "Featured Player", "Bowling Team", "Runs", s.FeaturedTeams),
	}

	innings := Table{
		Name:    "highest_innings",
		Sheet:   "Highest Innings",
		Headers: []string{"Rank", "Match ID", "Batsman", "Runs"},
	}
	for i, in := range s.HighestInnings {
		innings.Rows = append(innings.Rows, []string{formatInt(i + 1), in.MatchID, in.Batsman, formatInt(in.Runs)})
	}

	dist := Table{
		Name:    "run_distribution",
		Sheet:   "Run Distribution",
		Headers: []string{"Runs", "Balls"},
	}
	for _, rc := range s.Distribution {
		dist.Rows = append(dist.Rows, []string{formatInt(rc.Runs), formatInt(rc.Balls)})
	}

	rates := Table{
		Name:    "strike_rates",
		Sheet:   "Strike Rates",
		Headers: []string{"Rank", "Batsman", "Runs", "Balls", "Strike Rate"},
	}
	for i, r := range s.StrikeRates {
		rates.Rows = append(rates.Rows, []string{
			formatInt(i + 1), r.Batsman, formatInt(r.Runs), formatInt(r.Balls), formatFloat(r.Rate),
		})
	}

	return append(tables, innings, dist, rates)
}

func rankedTable(name, sheet, keyHeader, valueHeader string, entries []analytics.Ranked) Table {
	t := Table{
		Name:    name,
		Sheet:   sheet,
		Headers: []string{"Rank", keyHeader, valueHeader},
	}
	for i, e := range entries {
		t.Rows = append(t.Rows, []string{formatInt(i + 1), e.Key, formatInt(e.Value)})
	}
	return t
}
