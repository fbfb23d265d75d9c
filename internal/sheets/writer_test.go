package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cox_coop/internal/retry"
)

func TestAppendRow(t *testing.T) {
	var (
		method string
		path   string
		query  map[string]string
		body   struct {
			Values [][]string `json:"values"`
		}
	)
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		query = map[string]string{
			"valueInputOption": r.URL.Query().Get("valueInputOption"),
			"insertDataOption": r.URL.Query().Get("insertDataOption"),
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	})

	writer := newWriterForService(service, WriterConfig{SpreadsheetID: "sheet-1"})
	ok := writer.AppendRow(context.Background(), "Tips", []string{"2025-01-01 10:00:00", "Ann", "", "Growth", "Post daily", ""})
	if !ok {
		t.Fatal("Expected append to succeed")
	}

	if method != http.MethodPost {
		t.Errorf("Expected POST, got %s", method)
	}
	if !strings.HasSuffix(path, "/values/Tips!A:Z:append") {
		t.Errorf("Unexpected path %q", path)
	}
	if query["valueInputOption"] != "USER_ENTERED" || query["insertDataOption"] != "INSERT_ROWS" {
		t.Errorf("Unexpected query options %v", query)
	}
	if len(body.Values) != 1 || len(body.Values[0]) != 6 {
		t.Fatalf("Expected one row of 6 values, got %v", body.Values)
	}
	if body.Values[0][1] != "Ann" || body.Values[0][4] != "Post daily" {
		t.Errorf("Values out of order: %v", body.Values[0])
	}
}

func TestAppendRowFailure(t *testing.T) {
	var calls atomic.Int32
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})

	writer := newWriterForService(service, WriterConfig{
		SpreadsheetID: "sheet-1",
		Retry:         retry.Config{Timeout: time.Second},
	})
	if writer.AppendRow(context.Background(), "Tips", []string{"x"}) {
		t.Error("Expected append to fail")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("Expected a single attempt, got %d", n)
	}
}

func TestNewWriterWithoutCredentials(t *testing.T) {
	ctx := context.Background()

	for _, creds := range []string{"", "not json"} {
		writer := NewWriter(ctx, WriterConfig{SpreadsheetID: "sheet-1", CredentialsJSON: creds})
		if writer.AppendRow(ctx, "Tips", []string{"x"}) {
			t.Errorf("Expected append to fail for credentials %q", creds)
		}
	}
}
