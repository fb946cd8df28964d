package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderColumnChart(t *testing.T) {
	theme := DefaultTheme()
	bars := []Bar{
		{Label: "CH Gayle", Value: 327, Text: "327", Color: theme.Palette.Danger},
		{Label: "AB de Villiers", Value: 214, Text: "214", Color: theme.Palette.Danger},
	}

	png, err := renderColumnChart(theme, bars, theme.Palette.Danger)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output is a PNG image")

	_, err = renderColumnChart(theme, nil, theme.Palette.Danger)
	assert.Error(t, err)
}

func TestRenderColumnChart_AllZero(t *testing.T) {
	theme := DefaultTheme()
	png, err := renderColumnChart(theme, []Bar{{Label: "A", Value: 0}}, theme.Palette.Text)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestNiceTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 2000, 4000, 6000}, niceTicks(6624, 5))
	assert.Equal(t, []float64{0, 1, 2, 3}, niceTicks(3, 5))
	assert.Equal(t, []float64{0}, niceTicks(0, 5))
}

func TestWedgePoints(t *testing.T) {
	points := wedgePoints(100, 100, 10, 0, 90)

	require.GreaterOrEqual(t, len(points), 3)
	assert.Equal(t, 100.0, points[0].X)
	assert.InDelta(t, 110, points[1].X, 1e-9)
	assert.InDelta(t, 100, points[1].Y, 1e-9)
	last := points[len(points)-1]
	assert.InDelta(t, 100, last.X, 1e-9)
	assert.InDelta(t, 90, last.Y, 1e-9, "angles run counter-clockwise, y grows downwards")
}
