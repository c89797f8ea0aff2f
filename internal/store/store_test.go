package store

import (
	"errors"
	"testing"
	"time"

	"govorun/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestInsertAndFetchCall verifies a record round-trips through DuckDB.
func TestInsertAndFetchCall(t *testing.T) {
	s := openTestStore(t)
	ctx := testutil.Context(t, 0)

	id, err := s.InsertCall(ctx, CallRecord{
		SessionID:  "sess-1",
		Utterance:  "столица Франции",
		Reply:      "Париж.",
		Outcome:    "success",
		Shape:      "responses",
		Attempts:   1,
		Status:     200,
		DurationMs: 840,
		Request:    `{"model":"gpt-5-mini"}`,
		Response:   `{"status":"completed"}`,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatalf("insert returned empty id")
	}

	rec, err := s.CallByID(ctx, id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rec.Reply != "Париж." || rec.Outcome != "success" || rec.Attempts != 1 {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Request == "" || rec.Response == "" {
		t.Fatalf("full record should carry bodies, got %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("created_at was not filled in")
	}
}

// TestRecentCallsOrderAndLimit verifies newest-first ordering and the
// row cap.
func TestRecentCallsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := testutil.Context(t, 0)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.InsertCall(ctx, CallRecord{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Utterance: "вопрос",
			Reply:     "ответ",
			Outcome:   "success",
			Shape:     "responses",
			Attempts:  i + 1,
			Status:    200,
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	records, err := s.RecentCalls(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].Attempts != 5 || records[2].Attempts != 3 {
		t.Fatalf("unexpected order: %d, %d, %d", records[0].Attempts, records[1].Attempts, records[2].Attempts)
	}
}

// TestCallByIDMissing verifies the not-found sentinel.
func TestCallByIDMissing(t *testing.T) {
	s := openTestStore(t)
	ctx := testutil.Context(t, 0)

	if _, err := s.CallByID(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
