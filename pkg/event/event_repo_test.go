package event

import (
	"context"
	"errors"
	"testing"

	"github.com/sheetcal/sheetcal/pkg/calendar"
	"github.com/sheetcal/sheetcal/pkg/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = "Events"

func setupRepositoryTest(t *testing.T) (*SheetsEventRepository, *sheets.StoreStub, context.Context) {
	store := sheets.NewStoreStub()
	t.Cleanup(store.Reset)
	return NewSheetsEventRepository(store, testTable, "A:C"), store, context.Background()
}

func TestSheetsEventRepository_LoadAll(t *testing.T) {
	t.Run("should group rows by date key in table order", func(t *testing.T) {
		// given
		repo, store, ctx := setupRepositoryTest(t)
		store.SetRows(testTable,
			[]string{"Date", "Event", "Time"},
			[]string{"1_1_2024", "Lunch", "12:00"},
			[]string{"1_1_2024", "Call", "09:00"},
		)

		// when
		events := repo.LoadAll(ctx)

		// then
		require.Len(t, events, 1)
		assert.Equal(t, []Event{
			{Date: "1_1_2024", Name: "Lunch", Time: "12:00"},
			{Date: "1_1_2024", Name: "Call", Time: "09:00"},
		}, events["1_1_2024"])
	})

	t.Run("should skip the header even when it looks like data", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		store.SetRows(testTable,
			[]string{"2_2_2024", "Header", "00:00"},
			[]string{"3_2_2024", "Dentist", "15:30"},
		)

		events := repo.LoadAll(ctx)

		assert.NotContains(t, events, calendar.DateKey("2_2_2024"))
		assert.Len(t, events["3_2_2024"], 1)
	})

	t.Run("should tolerate short and empty rows", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		store.SetRows(testTable,
			[]string{"Date", "Event", "Time"},
			[]string{},
			[]string{"5_5_2024", "No time"},
		)

		events := repo.LoadAll(ctx)

		require.Len(t, events, 1)
		assert.Equal(t, Event{Date: "5_5_2024", Name: "No time", Time: ""}, events["5_5_2024"][0])
	})

	t.Run("should return no events when the table is empty", func(t *testing.T) {
		repo, _, ctx := setupRepositoryTest(t)

		events := repo.LoadAll(ctx)

		assert.Empty(t, events)
	})

	t.Run("should return no events when the store fails", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		store.SetRows(testTable, []string{"Date"}, []string{"1_1_2024", "Lunch", "12:00"})
		store.ReadErr = errors.New("boom")

		events := repo.LoadAll(ctx)

		assert.NotNil(t, events)
		assert.Empty(t, events)
	})
}

func TestSheetsEventRepository_Append(t *testing.T) {
	t.Run("should append one row per call without deduplication", func(t *testing.T) {
		// given
		repo, store, ctx := setupRepositoryTest(t)

		// when
		require.NoError(t, repo.Append(ctx, "1_1_2024", "Lunch", "12:00"))
		require.NoError(t, repo.Append(ctx, "1_1_2024", "Lunch", "12:00"))

		// then
		appended := store.Appended()
		require.Len(t, appended, 2)
		assert.Equal(t, sheets.AppendedRow{Table: testTable, Range: "A:C", Row: []string{"1_1_2024", "Lunch", "12:00"}}, appended[0])
		assert.Equal(t, appended[0], appended[1])
	})

	t.Run("should report store failures", func(t *testing.T) {
		repo, store, ctx := setupRepositoryTest(t)
		store.AppendErr = errors.New("quota exceeded")

		err := repo.Append(ctx, "1_1_2024", "Lunch", "12:00")

		assert.ErrorIs(t, err, sheets.ErrStoreUnavailable)
		assert.Empty(t, store.Appended())
	})
}

func TestEvents_Marked(t *testing.T) {
	events := Events{
		"1_1_2024": {{Date: "1_1_2024", Name: "Lunch"}},
		"2_1_2024": {},
	}

	assert.Equal(t, map[calendar.DateKey]bool{"1_1_2024": true}, events.Marked())
}
