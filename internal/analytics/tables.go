package analytics

import (
	"fmt"
	"sort"

	"iplreport/pkg/contracts/domain"
)

// TopRunScorers totals runs per batsman and returns the n highest
func TopRunScorers(deliveries []domain.Delivery, n int) []Ranked {
	g := newGrouper()
	for _, d := range deliveries {
		g.add(d.Batsman, d.BatsmanRuns)
	}
	return topN(g.ranked(), n)
}

// BoundaryCounts counts, per batsman, the deliveries worth exactly runs
// and returns the n batsmen with the most. Batsmen who never hit one are absent.
func BoundaryCounts(deliveries []domain.Delivery, runs, n int) []Ranked {
	g := newGrouper()
	for _, d := range deliveries {
		if d.BatsmanRuns == runs {
			g.add(d.Batsman, 1)
		}
	}
	return topN(g.ranked(), n)
}

// DeathOverBoundaries counts fours and sixes hit in overs numbered above afterOver
func DeathOverBoundaries(deliveries []domain.Delivery, afterOver, n int) []Ranked {
	g := newGrouper()
	for _, d := range deliveries {
		if d.IsDeathOver(afterOver) && d.IsBoundary() {
			g.add(d.Batsman, 1)
		}
	}
	return topN(g.ranked(), n)
}

// RunsAgainstTeams breaks one player's runs down by bowling team.
// When there are more than keep+1 teams, all but the top keep are summed into
// a single OthersKey entry appended last.
func RunsAgainstTeams(deliveries []domain.Delivery, player string, keep int) []Ranked {
	g := newGrouper()
	for _, d := range deliveries {
		if d.Batsman == player {
			g.add(d.BowlingTeam, d.BatsmanRuns)
		}
	}
	teams := g.ranked()
	if keep < 1 || len(teams) <= keep+1 {
		return teams
	}

	others := 0
	for _, t := range teams[keep:] {
		others += t.Value
	}
	out := make([]Ranked, keep, keep+1)
	copy(out, teams[:keep])
	return append(out, Ranked{Key: OthersKey, Value: others})
}

// HighestInnings returns the n best single-match totals
func HighestInnings(deliveries []domain.Delivery, n int) []InningsScore {
	type inningsKey struct{ match, batsman string }

	index := make(map[inningsKey]int)
	var scores []InningsScore
	for _, d := range deliveries {
		k := inningsKey{d.MatchID, d.Batsman}
		i, ok := index[k]
		if !ok {
			i = len(scores)
			index[k] = i
			scores = append(scores, InningsScore{MatchID: d.MatchID, Batsman: d.Batsman})
		}
		scores[i].Runs += d.BatsmanRuns
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Runs > scores[j].Runs
	})
	return topN(scores, n)
}

// RunDistribution counts deliveries per runs-off-the-bat value, ascending by value
func RunDistribution(deliveries []domain.Delivery) []RunCount {
	counts := make(map[int]int)
	for _, d := range deliveries {
		counts[d.BatsmanRuns]++
	}

	out := make([]RunCount, 0, len(counts))
	for runs, balls := range counts {
		out = append(out, RunCount{Runs: runs, Balls: balls})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Runs < out[j].Runs
	})
	return out
}

// StrikeRates ranks batsmen with at least minRuns career runs by runs per 100 balls.
// Every delivery row counts as a ball faced.
func StrikeRates(deliveries []domain.Delivery, minRuns, n int) ([]StrikeRate, error) {
	index := make(map[string]int)
	var rates []StrikeRate
	for _, d := range deliveries {
		i, ok := index[d.Batsman]
		if !ok {
			i = len(rates)
			index[d.Batsman] = i
			rates = append(rates, StrikeRate{Batsman: d.Batsman})
		}
		rates[i].Runs += d.BatsmanRuns
		rates[i].Balls++
	}

	qualified := rates[:0]
	for _, r := range rates {
		if r.Runs < minRuns {
			continue
		}
		if r.Balls == 0 {
			return nil, fmt.Errorf("%s: %w", r.Batsman, ErrZeroBallsFaced)
		}
		r.Rate = float64(r.Runs) / float64(r.Balls) * 100
		qualified = append(qualified, r)
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Rate > qualified[j].Rate
	})
	return topN(qualified, n), nil
}

// PlayerRuns returns a player's total runs
func PlayerRuns(deliveries []domain.Delivery, player string) int {
	total := 0
	for _, d := range deliveries {
		if d.Batsman == player {
			total += d.BatsmanRuns
		}
	}
	return total
}

// Summarize computes the report overview and every summary table once
func Summarize(deliveries []domain.Delivery, opts Options) (*Summary, error) {
	rates, err := StrikeRates(deliveries, opts.StrikeRateMinRuns, opts.TopStrikeRates)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Options:        opts,
		Overview:       summarizeOverview(deliveries),
		TopScorers:     TopRunScorers(deliveries, opts.TopScorers),
		TopSixHitters:  BoundaryCounts(deliveries, domain.RunsSix, opts.TopBoundaryHitters),
		TopFourHitters: BoundaryCounts(deliveries, domain.RunsFour, opts.TopBoundaryHitters),
		DeathHitters:   DeathOverBoundaries(deliveries, opts.DeathOversAfter, opts.TopDeathHitters),
		FeaturedTeams:  RunsAgainstTeams(deliveries, opts.FeaturedPlayer, opts.TeamBuckets),
		FeaturedRuns:   PlayerRuns(deliveries, opts.FeaturedPlayer),
		HighestInnings: HighestInnings(deliveries, opts.TopInnings),
		Distribution:   RunDistribution(deliveries),
		StrikeRates:    rates,
	}, nil
}

func summarizeOverview(deliveries []domain.Delivery) Overview {
	matches := make(map[string]struct{})
	batsmen := make(map[string]struct{})
	o := Overview{Deliveries: len(deliveries)}
	for _, d := range deliveries {
		matches[d.MatchID] = struct{}{}
		batsmen[d.Batsman] = struct{}{}
		o.TotalRuns += d.BatsmanRuns
	}
	o.Matches = len(matches)
	o.Batsmen = len(batsmen)
	return o
}
