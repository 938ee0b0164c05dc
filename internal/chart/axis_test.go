package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
)

func TestScaleFor(t *testing.T) {
	series := []Series{
		{Laps: []int{2, 3}, Times: lapsOf("1'32.127", "1'31.998")},
		{Laps: []int{2}, Times: lapsOf("1'32.472")},
	}
	sc, ok := scaleFor(series, 0.1)
	require.True(t, ok)

	assert.Equal(t, 91.8, sc.Min)
	assert.Equal(t, 92.6, sc.Max)
	assert.Equal(t, 0.1, sc.MinorStep)
	require.Len(t, sc.MinorLines, 9)
	assert.Equal(t, 91.8, sc.MinorLines[0])
	assert.Equal(t, 91.9, sc.MinorLines[1])
	assert.Equal(t, 92.6, sc.MinorLines[8])

	assert.Equal(t, 0.2, sc.MajorStep)
	assert.Equal(t, []float64{91.8, 92, 92.2, 92.4, 92.6}, sc.MajorTicks)
	assert.Equal(t, "1'31.800", laptime.FormatSeconds(sc.MajorTicks[0]))
}

func TestScaleFor_WideRangePicksCoarserTicks(t *testing.T) {
	series := []Series{{Laps: []int{1, 2}, Times: lapsOf("1'38.000", "1'32.000")}}
	sc, ok := scaleFor(series, 0.1)
	require.True(t, ok)
	assert.Equal(t, 1.0, sc.MajorStep)
	assert.LessOrEqual(t, len(sc.MajorTicks), maxMajorTicks+1)
}

func TestScaleFor_Empty(t *testing.T) {
	_, ok := scaleFor([]Series{{ID: "1"}}, 0.1)
	assert.False(t, ok)
}

func TestLapRange(t *testing.T) {
	first, last, ok := lapRange([]Series{{Laps: []int{2, 3}}, {Laps: []int{2, 3, 4, 5}}, {}})
	require.True(t, ok)
	assert.Equal(t, 2, first)
	assert.Equal(t, 5, last)

	_, _, ok = lapRange(nil)
	assert.False(t, ok)
}
