package laps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/lap-analysis/internal/common"
	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
	"github.com/joseph-ayodele/lap-analysis/internal/roster"
)

func testRoster() *roster.Roster {
	return roster.New("2024", "test", map[string]string{
		"89": "Jorge Martin",
		"93": "Marc Marquez",
		"99": "Reserve Rider",
	})
}

func d(s string) laptime.Duration { return laptime.MustParse(s) }

func TestScan(t *testing.T) {
	rows := Scan(3, "Lap 1\n1'32.127 89\n1'32.400 93 0.273\n")
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Page: 3, LapTime: "1'32.127", RiderID: "89", Gap: ""}, rows[0])
	assert.Equal(t, Row{Page: 3, LapTime: "1'32.400", RiderID: "93", Gap: "0.273"}, rows[1])
}

func TestScan_NoSpaceBeforeRider(t *testing.T) {
	rows := Scan(1, "2'03.95831 \n")
	require.Len(t, rows, 1)
	assert.Equal(t, "2'03.958", rows[0].LapTime)
	assert.Equal(t, "31", rows[0].RiderID)
	assert.Empty(t, rows[0].Gap)
}

func TestExtract_TwoPagesEndToEnd(t *testing.T) {
	pages := []string{
		"Grand Prix de France - Analysis by lap\n1'32.127 89\n1'32.472 93 0.345\n",
		"1'31.998 89\n1'32.010 93 0.012\n",
	}

	x, err := NewExtractor(testRoster()).Extract(context.Background(), pages)
	require.NoError(t, err)

	assert.Equal(t, "Grand Prix de France - Analysis by lap", x.Title)
	assert.Equal(t, 2, x.LapCount)
	assert.Equal(t, 4, x.Rows)
	assert.Equal(t, 2, x.Pages)
	assert.Equal(t, map[string][]laptime.Duration{
		"89": {d("1'32.127"), d("1'31.998")},
		"93": {d("1'32.472"), d("1'32.010")},
		"99": {},
	}, x.LapsByRider())
}

func TestExtract_EveryRosterRiderHasEntry(t *testing.T) {
	x, err := NewExtractor(testRoster()).Extract(context.Background(), []string{"GP\n1'32.127 89\n"})
	require.NoError(t, err)

	assert.Equal(t, []string{"89", "93", "99"}, x.Riders())
	laps, ok := x.Laps("99")
	require.True(t, ok, "absent rider must still have an entry")
	assert.NotNil(t, laps)
	assert.Empty(t, laps)

	_, ok = x.Laps("7")
	assert.False(t, ok)
}

func TestExtract_OrderSurvivesPageBreaks(t *testing.T) {
	pages := []string{
		"GP\n1'33.000 89\n",
		"1'32.000 89\n",
		"1'34.000 89\n",
	}
	x, err := NewExtractor(testRoster()).Extract(context.Background(), pages)
	require.NoError(t, err)

	laps, _ := x.Laps("89")
	assert.Equal(t, []laptime.Duration{d("1'33.000"), d("1'32.000"), d("1'34.000")}, laps)
	assert.Equal(t, 3, x.LapCount, "counter is document scoped, not reset per page")
}

func TestExtract_RosterMismatch(t *testing.T) {
	_, err := NewExtractor(testRoster()).Extract(context.Background(), []string{"GP\n1'32.127 89\n1'32.300 46 0.173\n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRosterMismatch))
	assert.Contains(t, err.Error(), `"46"`)
}

func TestExtract_Malformed(t *testing.T) {
	tests := map[string][]string{
		"no pages":         nil,
		"empty first page": {""},
		"blank title":      {"   \n1'32.127 89\n"},
		"no matches":       {"Grand Prix\nno timing here\n", "still nothing\n"},
		"seconds overflow": {"GP\n1'75.000 89\n"},
	}
	for name, pages := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewExtractor(testRoster()).Extract(context.Background(), pages)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrMalformedDocument))
		})
	}
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExtractor(testRoster()).Extract(ctx, []string{"GP\n1'32.127 89\n"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_TieWithLeader(t *testing.T) {
	// #93 ties the leader, so its row carries no gap either.
	pages := []string{"GP\n1'32.127 89\n1'32.127 93\n1'32.500 89\n1'32.600 93 0.100\n"}

	leader, err := NewExtractor(testRoster()).Extract(context.Background(), pages)
	require.NoError(t, err)
	assert.Equal(t, 3, leader.LapCount, "leader-row counts the tie as a lap")

	repeat, err := NewExtractor(testRoster(), WithBoundary(RiderRepeat)).Extract(context.Background(), pages)
	require.NoError(t, err)
	assert.Equal(t, 2, repeat.LapCount)

	assert.Equal(t, leader.LapsByRider(), repeat.LapsByRider(), "sequences do not depend on the policy")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Title", FirstLine("Title \r\nrest"))
	assert.Equal(t, "Only", FirstLine("Only"))
	assert.Equal(t, "", FirstLine("\nTitle"))
}
