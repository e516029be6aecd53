package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sheetcal/sheetcal/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	rawInput           = "RAW"
	serviceAccountType = "service_account"
)

var ErrNotServiceAccount = errors.New("google credentials are not a service account key")

type GoogleStore struct {
	service       *gsheets.Service
	spreadsheetId string
}

// NewGoogleStore authenticates with the service account key found at
// cfg.CredentialsPath and binds the store to one spreadsheet.
func NewGoogleStore(ctx context.Context, cfg config.Google) (*GoogleStore, error) {
	key, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read Google credentials %s: %w", cfg.CredentialsPath, err)
	}

	creds, err := serviceAccountCredentials(ctx, key)
	if err != nil {
		return nil, err
	}

	return newGoogleStore(ctx, cfg.SpreadsheetId, option.WithTokenSource(creds.TokenSource))
}

// serviceAccountCredentials only accepts service account keys; the bot has
// no user to run an OAuth consent flow for.
func serviceAccountCredentials(ctx context.Context, key []byte) (*google.Credentials, error) {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(key, &header); err != nil {
		return nil, fmt.Errorf("unable to parse Google credentials: %w", err)
	}
	if header.Type != serviceAccountType {
		return nil, fmt.Errorf("%w: got %q", ErrNotServiceAccount, header.Type)
	}

	creds, err := google.CredentialsFromJSON(ctx, key, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse Google credentials: %w", err)
	}
	return creds, nil
}

func newGoogleStore(ctx context.Context, spreadsheetId string, opts ...option.ClientOption) (*GoogleStore, error) {
	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return &GoogleStore{service: service, spreadsheetId: spreadsheetId}, nil
}

func (s *GoogleStore) ReadRange(ctx context.Context, table string, rng string) ([][]string, error) {
	a1 := A1(table, rng)
	log.Tracef("Reading range %s from spreadsheet %s", a1, s.spreadsheetId)

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetId, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read %s: %v", ErrStoreUnavailable, a1, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, 0, len(values))
		for _, cell := range values {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *GoogleStore) AppendRow(ctx context.Context, table string, rng string, row []string) error {
	a1 := A1(table, rng)
	values := make([]interface{}, 0, len(row))
	for _, cell := range row {
		values = append(values, cell)
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetId, a1, &gsheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption(rawInput).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: unable to append to %s: %v", ErrStoreUnavailable, a1, err)
	}

	log.Debugf("Appended row to %s", a1)
	return nil
}
