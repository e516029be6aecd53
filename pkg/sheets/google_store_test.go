package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func setupGoogleStoreTest(t *testing.T, handler http.HandlerFunc) *GoogleStore {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := newGoogleStore(context.Background(), "sheet-1",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return store
}

func TestGoogleStore_ReadRange(t *testing.T) {
	// given
	var requestedPath string
	store := setupGoogleStoreTest(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":  "Events!A1:C3",
			"values": [][]any{{"date", "name", "time"}, {"1_1_2024", "Lunch", "12:00"}, {"2_1_2024", 42}},
		})
	})

	// when
	rows, err := store.ReadRange(context.Background(), "Events", "A:C")

	// then
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(requestedPath, "/v4/spreadsheets/sheet-1/values/"), requestedPath)
	assert.Equal(t, [][]string{
		{"date", "name", "time"},
		{"1_1_2024", "Lunch", "12:00"},
		{"2_1_2024", "42"},
	}, rows)
}

func TestGoogleStore_ReadRange_Error(t *testing.T) {
	store := setupGoogleStoreTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	rows, err := store.ReadRange(context.Background(), "Events", "A:C")

	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGoogleStore_AppendRow(t *testing.T) {
	// given
	var body struct {
		Values [][]string `json:"values"`
	}
	var inputOption string
	store := setupGoogleStoreTest(t, func(w http.ResponseWriter, r *http.Request) {
		inputOption = r.URL.Query().Get("valueInputOption")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	})

	// when
	err := store.AppendRow(context.Background(), "Events", "A:C", []string{"1_1_2024", "Lunch", "12:00"})

	// then
	require.NoError(t, err)
	assert.Equal(t, "RAW", inputOption)
	assert.Equal(t, [][]string{{"1_1_2024", "Lunch", "12:00"}}, body.Values)
}

func TestA1(t *testing.T) {
	assert.Equal(t, "Events!A:C", A1("Events", "A:C"))
	assert.Equal(t, "H:H", A1("", "H:H"))
}

func TestServiceAccountCredentials_RejectsOtherKeyTypes(t *testing.T) {
	testCases := []struct {
		name string
		key  string
	}{
		{"authorized user", `{"type":"authorized_user","client_id":"id","client_secret":"secret","refresh_token":"token"}`},
		{"missing type", `{"client_email":"bot@example.iam.gserviceaccount.com"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds, err := serviceAccountCredentials(context.Background(), []byte(tc.key))

			assert.Nil(t, creds)
			assert.ErrorIs(t, err, ErrNotServiceAccount)
		})
	}
}

func TestServiceAccountCredentials_RejectsMalformedJSON(t *testing.T) {
	creds, err := serviceAccountCredentials(context.Background(), []byte("not json"))

	assert.Nil(t, creds)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotServiceAccount)
}
