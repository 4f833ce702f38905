package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	want := Cursor{
		CreatedAt: time.Date(2026, time.March, 4, 12, 30, 0, 123456000, time.UTC),
		ID:        uuid.New(),
	}

	got, err := Decode(want.Token())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got == nil {
		t.Fatal("Decode returned nil cursor")
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at = %s, want %s", got.CreatedAt, want.CreatedAt)
	}
	if got.ID != want.ID {
		t.Fatalf("id = %s, want %s", got.ID, want.ID)
	}
}

func TestDecodeEmptyToken(t *testing.T) {
	t.Parallel()

	got, err := Decode("  ")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil cursor, got %+v", got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"not-base64!!", "bm8tcGlwZQ==", "MjAyNnxub3QtYS11dWlk"} {
		if _, err := Decode(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	if got := ClampLimit(0); got != DefaultLimit {
		t.Fatalf("ClampLimit(0) = %d, want %d", got, DefaultLimit)
	}
	if got := ClampLimit(-3); got != DefaultLimit {
		t.Fatalf("ClampLimit(-3) = %d, want %d", got, DefaultLimit)
	}
	if got := ClampLimit(500); got != MaxLimit {
		t.Fatalf("ClampLimit(500) = %d, want %d", got, MaxLimit)
	}
	if got := ClampLimit(7); got != 7 {
		t.Fatalf("ClampLimit(7) = %d, want 7", got)
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	type row struct {
		at time.Time
		id uuid.UUID
	}
	cursorOf := func(r row) Cursor { return Cursor{CreatedAt: r.at, ID: r.id} }

	rows := make([]row, 4)
	for i := range rows {
		rows[i] = row{at: time.Now().Add(-time.Duration(i) * time.Minute), id: uuid.New()}
	}

	page, next := Trim(rows, 3, cursorOf)
	if len(page) != 3 {
		t.Fatalf("page size = %d, want 3", len(page))
	}
	if next == "" {
		t.Fatal("expected a next cursor when an extra row was fetched")
	}

	page, next = Trim(rows[:2], 3, cursorOf)
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if next != "" {
		t.Fatalf("expected empty next cursor, got %q", next)
	}
}
