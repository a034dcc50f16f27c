package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation teams does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableIntConversions(t *testing.T) {
	t.Run("null stays nil", func(t *testing.T) {
		if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil, got %d", *got)
		}
		if got := intPtrToNullInt64(nil); got.Valid {
			t.Fatalf("expected invalid null int")
		}
	})

	t.Run("round trips value", func(t *testing.T) {
		v := 7
		got := nullInt64ToIntPtr(intPtrToNullInt64(&v))
		if got == nil || *got != 7 {
			t.Fatalf("expected 7, got %v", got)
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
