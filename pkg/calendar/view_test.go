package calendar

import (
	"testing"

	"github.com/sheetcal/sheetcal/pkg/callback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DayCountAndRows(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := -2; month <= 13; month++ {
			view := Render(year, month, nil)
			normYear, normMonth := Normalize(year, month)
			days := DaysIn(normYear, normMonth)

			total := 0
			rows := view.DayButtons()
			for i, row := range rows {
				if i < len(rows)-1 {
					assert.Len(t, row, 7)
				} else {
					assert.LessOrEqual(t, len(row), 7)
					assert.NotEmpty(t, row)
				}
				total += len(row)
			}
			assert.Equal(t, days, total, "year %d month %d", year, month)
			assert.Equal(t, normYear, view.Year)
			assert.Equal(t, normMonth, view.Month)
		}
	}
}

func TestRender_Header(t *testing.T) {
	// when
	view := Render(2024, 1, nil)

	// then
	require.GreaterOrEqual(t, len(view.Rows), 3)
	header := view.Rows[0]
	require.Len(t, header, 3)
	assert.Equal(t, "prev_2024_1", header[0].Payload)
	assert.Equal(t, "February 2024", header[1].Label)
	assert.Equal(t, "ignore", header[1].Payload)
	assert.Equal(t, "next_2024_1", header[2].Payload)

	require.Len(t, view.Rows[1], 1)
	assert.Equal(t, TodayLabel, view.Rows[1][0].Label)
	assert.Equal(t, "today_2024_1", view.Rows[1][0].Payload)
}

func TestRender_NormalizesBeforeEncodingHeader(t *testing.T) {
	view := Render(2024, -1, nil)

	assert.Equal(t, "December 2023", view.Title())
	assert.Equal(t, "prev_2023_11", view.Rows[0][0].Payload)
}

func TestRender_DayButtons(t *testing.T) {
	// given
	marked := map[DateKey]bool{"10_1_2024": true}

	// when
	view := Render(2024, 0, marked)

	// then
	rows := view.DayButtons()
	require.Len(t, rows, 5)
	first := rows[0][0]
	assert.Equal(t, "1", first.Label)
	assert.Equal(t, "date_1_1_2024", first.Payload)

	tenth := rows[1][2]
	assert.Equal(t, EventMarker+" 10", tenth.Label)
	action, err := callback.Decode(tenth.Payload)
	require.NoError(t, err)
	assert.Equal(t, callback.SelectDate(2024, 1, 10), action)

	last := rows[4]
	assert.Len(t, last, 3)
	assert.Equal(t, "31", last[2].Label)
}
