package analytics

import "errors"

// OthersKey labels the bucket that collects the smallest groups of a breakdown
const OthersKey = "Others"

// ErrZeroBallsFaced is returned when a strike rate would divide by zero
var ErrZeroBallsFaced = errors.New("strike rate undefined: zero balls faced")

// Ranked is one entry of a summary table keyed by player or team name
type Ranked struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// RunCount is the number of deliveries on which the batsman scored Runs
type RunCount struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// InningsScore is a batsman's total in one match
type InningsScore struct {
	MatchID string `json:"match_id"`
	Batsman string `json:"batsman"`
	Runs    int    `json:"runs"`
}

// StrikeRate holds a batsman's career scoring speed
type StrikeRate struct {
	Batsman string  `json:"batsman"`
	Runs    int     `json:"runs"`
	Balls   int     `json:"balls"`
	Rate    float64 `json:"strike_rate"`
}

// Overview is the headline block of the report
type Overview struct {
	Deliveries int `json:"deliveries"`
	Matches    int `json:"matches"`
	TotalRuns  int `json:"total_runs"`
	Batsmen    int `json:"batsmen"`
}

// Options sets the table sizes and thresholds used by Summarize
type Options struct {
	FeaturedPlayer     string
	TopScorers         int
	TopBoundaryHitters int
	TopDeathHitters    int
	DeathOversAfter    int
	TopInnings         int
	StrikeRateMinRuns  int
	TopStrikeRates     int
	TeamBuckets        int
}

// DefaultOptions returns the standard report parameters
func DefaultOptions() Options {
	return Options{
		FeaturedPlayer:     "V Kohli",
		TopScorers:         10,
		TopBoundaryHitters: 5,
		TopDeathHitters:    5,
		DeathOversAfter:    15,
		TopInnings:         5,
		StrikeRateMinRuns:  500,
		TopStrikeRates:     10,
		TeamBuckets:        6,
	}
}

// Summary is the complete, read-only result of one aggregation pass
type Summary struct {
	Options        Options
	Overview       Overview
	TopScorers     []Ranked
	TopSixHitters  []Ranked
	TopFourHitters []Ranked
	DeathHitters   []Ranked
	FeaturedTeams  []Ranked
	FeaturedRuns   int
	HighestInnings []InningsScore
	Distribution   []RunCount
	StrikeRates    []StrikeRate
}
