package access

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sheetcal/sheetcal/internal/utils"
	"github.com/sheetcal/sheetcal/pkg/sheets"
	log "github.com/sirupsen/logrus"
)

// Gate decides whether a chat may use the bot by looking its id up in a
// single-column allow-list kept in the tabular store.
//
// With a zero ttl the list is re-read on every check, so a revocation takes
// effect immediately. A positive ttl serves the last successful read for at
// most ttl; failed reads are never cached.
type Gate struct {
	store sheets.Store
	table string
	rng   string
	ttl   time.Duration
	clock utils.Clock

	mu        sync.Mutex
	allowed   map[string]struct{}
	fetchedAt time.Time
}

func NewGate(store sheets.Store, table string, rng string, ttl time.Duration, clock utils.Clock) *Gate {
	return &Gate{store: store, table: table, rng: rng, ttl: ttl, clock: clock}
}

// IsAuthorized never returns an error: any failure to read the list denies access.
func (g *Gate) IsAuthorized(ctx context.Context, chatId int64) bool {
	allowed, err := g.allowList(ctx)
	if err != nil {
		log.Errorf("Error checking authorized chat id %d: %v", chatId, err)
		return false
	}
	_, ok := allowed[strconv.FormatInt(chatId, 10)]
	if !ok {
		log.Debugf("chat %d is not on the allow-list", chatId)
	}
	return ok
}

func (g *Gate) allowList(ctx context.Context) (map[string]struct{}, error) {
	if g.ttl > 0 {
		g.mu.Lock()
		if g.allowed != nil && g.clock.Now().Sub(g.fetchedAt) < g.ttl {
			allowed := g.allowed
			g.mu.Unlock()
			return allowed, nil
		}
		g.mu.Unlock()
	}

	rows, err := g.store.ReadRange(ctx, g.table, g.rng)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		for _, id := range row {
			allowed[id] = struct{}{}
		}
	}

	if g.ttl > 0 {
		g.mu.Lock()
		g.allowed = allowed
		g.fetchedAt = g.clock.Now()
		g.mu.Unlock()
	}
	return allowed, nil
}
