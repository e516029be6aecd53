package sheets

import (
	"context"
	"fmt"
	"sync"
)

type AppendedRow struct {
	Table string
	Range string
	Row   []string
}

// StoreStub keeps tables in memory. Ranges are recorded but not interpreted.
type StoreStub struct {
	mu        sync.Mutex
	tables    map[string][][]string
	appended  []AppendedRow
	reads     int
	ReadErr   error
	AppendErr error
}

func NewStoreStub() *StoreStub {
	return &StoreStub{tables: make(map[string][][]string)}
}

func (s *StoreStub) SetRows(table string, rows ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = rows
}

func (s *StoreStub) ReadRange(_ context.Context, table string, rng string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.ReadErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, s.ReadErr)
	}
	rows := make([][]string, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		rows = append(rows, append([]string(nil), row...))
	}
	return rows, nil
}

func (s *StoreStub) AppendRow(_ context.Context, table string, rng string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, s.AppendErr)
	}
	s.tables[table] = append(s.tables[table], append([]string(nil), row...))
	s.appended = append(s.appended, AppendedRow{Table: table, Range: rng, Row: row})
	return nil
}

func (s *StoreStub) Appended() []AppendedRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AppendedRow(nil), s.appended...)
}

func (s *StoreStub) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *StoreStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string][][]string)
	s.appended = nil
	s.reads = 0
	s.ReadErr = nil
	s.AppendErr = nil
}
