package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iplreport/internal/analytics"
	"iplreport/pkg/contracts/domain"
)

func sampleSummary(t *testing.T) *analytics.Summary {
	t.Helper()
	deliveries := []domain.Delivery{
		{MatchID: "1", Over: 16, Ball: 1, Batsman: "A", BowlingTeam: "MI", BatsmanRuns: 6},
		{MatchID: "1", Over: 16, Ball: 2, Batsman: "B", BowlingTeam: "MI", BatsmanRuns: 6},
		{MatchID: "1", Over: 16, Ball: 3, Batsman: "B", BowlingTeam: "MI", BatsmanRuns: 6},
		{MatchID: "2", Over: 3, Ball: 1, Batsman: "A", BowlingTeam: "CSK", BatsmanRuns: 4},
		{MatchID: "2", Over: 3, Ball: 2, Batsman: "V Kohli", BowlingTeam: "CSK", BatsmanRuns: 1},
	}
	opts := analytics.DefaultOptions()
	opts.StrikeRateMinRuns = 1

	summary, err := analytics.Summarize(deliveries, opts)
	require.NoError(t, err)
	return summary
}

func TestSummaryTables(t *testing.T) {
	tables := SummaryTables(sampleSummary(t))

	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
		assert.LessOrEqual(t, len(tbl.Sheet), 31, "sheet names fit excel's limit")
		for _, row := range tbl.Rows {
			assert.Len(t, row, len(tbl.Headers), tbl.Name)
		}
	}
	assert.Equal(t, []string{
		"overview", "top_scorers", "six_hitters", "four_hitters", "death_over_hitters",
		"featured_player_teams", "highest_innings", "run_distribution", "strike_rates",
	}, names)

	overview := tables[0]
	assert.Equal(t, []string{"Deliveries", "5"}, overview.Rows[0])
	assert.Equal(t, []string{"Total Runs", "23"}, overview.Rows[2])

	assert.Equal(t, [][]string{{"1", "B", "12"}, {"2", "A", "10"}, {"3", "V Kohli", "1"}}, tables[1].Rows)
	assert.Equal(t, [][]string{{"1", "1", "B", "12"}, {"2", "1", "A", "6"}, {"3", "2", "A", "4"}, {"4", "2", "V Kohli", "1"}}, tables[6].Rows)
	assert.Equal(t, []string{"1", "B", "12", "2", "600.00"}, tables[8].Rows[0])
}
