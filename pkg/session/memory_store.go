package session

import (
	"context"
	"sync"

	"github.com/sheetcal/sheetcal/internal/utils"
	"github.com/sheetcal/sheetcal/pkg/calendar"
)

// MemoryStore keeps selections for the lifetime of the process.
type MemoryStore struct {
	mu         sync.RWMutex
	selections map[int64]Selection
	clock      utils.Clock
}

func NewMemoryStore(clock utils.Clock) *MemoryStore {
	return &MemoryStore{
		selections: make(map[int64]Selection),
		clock:      clock,
	}
}

func (s *MemoryStore) SetSelectedDate(_ context.Context, chatId int64, date calendar.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[chatId] = Selection{Date: date, SelectedAt: s.clock.Now()}
	return nil
}

func (s *MemoryStore) GetSelectedDate(_ context.Context, chatId int64) (Selection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selection, ok := s.selections[chatId]
	return selection, ok, nil
}
