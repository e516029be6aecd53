package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sheetcal/sheetcal/internal/utils"
	"github.com/sheetcal/sheetcal/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// PostgresStore keeps selections in the chat_session table so they survive
// restarts.
type PostgresStore struct {
	db    *pgxpool.Pool
	clock utils.Clock
}

func NewPostgresStore(db *pgxpool.Pool, clock utils.Clock) *PostgresStore {
	return &PostgresStore{db: db, clock: clock}
}

func (s *PostgresStore) SetSelectedDate(ctx context.Context, chatId int64, date calendar.Date) error {
	query := `INSERT INTO chat_session (chat_id, selected_date, selected_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (chat_id) DO UPDATE
				SET selected_date = EXCLUDED.selected_date, selected_at = EXCLUDED.selected_at`

	_, err := s.db.Exec(ctx, query, chatId, date.Time(time.UTC), s.clock.Now())
	if err != nil {
		err := fmt.Errorf("could not store selected date for chat %d: %w", chatId, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *PostgresStore) GetSelectedDate(ctx context.Context, chatId int64) (Selection, bool, error) {
	query := `SELECT selected_date, selected_at FROM chat_session WHERE chat_id = $1`

	var selectedDate, selectedAt time.Time
	err := s.db.QueryRow(ctx, query, chatId).Scan(&selectedDate, &selectedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Selection{}, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not read selected date for chat %d: %w", chatId, err)
		log.Error(err)
		return Selection{}, false, err
	}

	return Selection{
		Date:       calendar.DateOf(selectedDate.UTC()),
		SelectedAt: selectedAt,
	}, true, nil
}
