package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryValidate(t *testing.T) {
	valid := Delivery{
		MatchID:     "1",
		Over:        1,
		Ball:        1,
		Batsman:     "DA Warner",
		BowlingTeam: "Royal Challengers Bangalore",
		BatsmanRuns: 4,
	}

	tests := []struct {
		name    string
		mutate  func(d *Delivery)
		wantErr bool
	}{
		{name: "valid delivery", mutate: func(d *Delivery) {}},
		{name: "dot ball", mutate: func(d *Delivery) { d.BatsmanRuns = 0 }},
		{name: "missing match", mutate: func(d *Delivery) { d.MatchID = "" }, wantErr: true},
		{name: "missing batsman", mutate: func(d *Delivery) { d.Batsman = "" }, wantErr: true},
		{name: "missing bowling team", mutate: func(d *Delivery) { d.BowlingTeam = "" }, wantErr: true},
		{name: "negative runs", mutate: func(d *Delivery) { d.BatsmanRuns = -1 }, wantErr: true},
		{name: "negative over", mutate: func(d *Delivery) { d.Over = -2 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeliveryBoundaryAndDeathOver(t *testing.T) {
	tests := []struct {
		runs     int
		over     int
		boundary bool
		death    bool
	}{
		{runs: 4, over: 16, boundary: true, death: true},
		{runs: 6, over: 15, boundary: true, death: false},
		{runs: 1, over: 20, boundary: false, death: true},
		{runs: 5, over: 3, boundary: false, death: false},
	}

	for _, tt := range tests {
		d := Delivery{BatsmanRuns: tt.runs, Over: tt.over}
		assert.Equal(t, tt.boundary, d.IsBoundary(), "runs=%d", tt.runs)
		assert.Equal(t, tt.death, d.IsDeathOver(15), "over=%d", tt.over)
	}
}
