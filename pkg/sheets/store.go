package sheets

import (
	"context"
	"errors"
)

var ErrStoreUnavailable = errors.New("tabular store unavailable")

// Store is the request/response API of the remote tabular store. Rows are
// returned in store order; a missing trailing cell is simply absent from its row.
type Store interface {
	ReadRange(ctx context.Context, table string, rng string) ([][]string, error)
	AppendRow(ctx context.Context, table string, rng string, row []string) error
}

// A1 joins a table (sheet) name and a range into A1 notation.
func A1(table string, rng string) string {
	if table == "" {
		return rng
	}
	return table + "!" + rng
}
