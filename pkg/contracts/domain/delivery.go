package domain

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Delivery represents one bowled ball from a ball-by-ball log.
// Deliveries are immutable once loaded.
type Delivery struct {
	MatchID     string `json:"match_id" csv:"match_id" validate:"required"`
	Over        int    `json:"over" csv:"over" validate:"min=0"`
	Ball        int    `json:"ball" csv:"ball" validate:"min=0"`
	Batsman     string `json:"batsman" csv:"batsman" validate:"required"`
	BowlingTeam string `json:"bowling_team" csv:"bowling_team" validate:"required"`
	BatsmanRuns int    `json:"batsman_runs" csv:"batsman_runs" validate:"min=0"`
}

// Boundary run values
const (
	RunsFour = 4
	RunsSix  = 6
)

// IsBoundary reports whether the batsman scored a four or a six off this ball
func (d Delivery) IsBoundary() bool {
	return d.BatsmanRuns == RunsFour || d.BatsmanRuns == RunsSix
}

// IsDeathOver reports whether the ball was bowled after the given over
func (d Delivery) IsDeathOver(afterOver int) bool {
	return d.Over > afterOver
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func deliveryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the struct tags of a delivery
func (d Delivery) Validate() error {
	return deliveryValidator().Struct(d)
}
