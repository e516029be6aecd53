package event

import (
	"context"
	"fmt"

	"github.com/sheetcal/sheetcal/pkg/calendar"
	"github.com/sheetcal/sheetcal/pkg/sheets"
	log "github.com/sirupsen/logrus"
)

type EventRepository interface {
	Append(ctx context.Context, date calendar.DateKey, name string, time string) error
	LoadAll(ctx context.Context) Events
}

// SheetsEventRepository reads and appends three-column rows
// (date key, name, time) in one table of the tabular store.
type SheetsEventRepository struct {
	store sheets.Store
	table string
	rng   string
}

func NewSheetsEventRepository(store sheets.Store, table string, rng string) *SheetsEventRepository {
	return &SheetsEventRepository{store: store, table: table, rng: rng}
}

// Append writes a single row. Identical events are not deduplicated.
func (r *SheetsEventRepository) Append(ctx context.Context, date calendar.DateKey, name string, time string) error {
	err := r.store.AppendRow(ctx, r.table, r.rng, []string{string(date), name, time})
	if err != nil {
		err := fmt.Errorf("could not append event for %s: %w", date, err)
		log.Error(err)
		return err
	}
	return nil
}

// LoadAll fetches the whole table. A failed read yields no events.
func (r *SheetsEventRepository) LoadAll(ctx context.Context) Events {
	rows, err := r.store.ReadRange(ctx, r.table, r.rng)
	if err != nil {
		log.Errorf("Error loading events from %s: %v", sheets.A1(r.table, r.rng), err)
		return Events{}
	}
	return groupRows(rows)
}

// groupRows drops the header row and groups the rest by their date key.
// Rows without a date key are skipped; missing name or time cells are empty.
func groupRows(rows [][]string) Events {
	events := Events{}
	if len(rows) <= 1 {
		return events
	}
	for _, row := range rows[1:] {
		date := cell(row, 0)
		if date == "" {
			continue
		}
		key := calendar.DateKey(date)
		events[key] = append(events[key], Event{
			Date: key,
			Name: cell(row, 1),
			Time: cell(row, 2),
		})
	}
	return events
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
