package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func TestTodoMarshalOmitsNilCompletedAt(t *testing.T) {
	item := Todo{ID: "t1", UserID: "u1", Title: "Title", Order: 0}

	payload, err := sonic.Marshal(item)
	if err != nil {
		t.Fatalf("marshal todo: %v", err)
	}

	if strings.Contains(string(payload), "completedAt") {
		t.Fatalf("expected completedAt to be omitted for active items, got %s", payload)
	}
	if !strings.Contains(string(payload), "\"order\":0") {
		t.Fatalf("expected order field to be present, got %s", payload)
	}
}

func TestTodoMarshalIncludesCompletedAt(t *testing.T) {
	done := time.Date(2025, 12, 11, 20, 10, 34, 0, time.UTC)
	item := Todo{ID: "t1", UserID: "u1", Title: "Title", CompletedAt: &done}

	payload, err := sonic.Marshal(item)
	if err != nil {
		t.Fatalf("marshal todo: %v", err)
	}
	if !strings.Contains(string(payload), "\"completedAt\"") {
		t.Fatalf("expected completedAt for completed items, got %s", payload)
	}
	if !item.Completed() {
		t.Fatal("Completed() must report true with a timestamp set")
	}
}

func TestListQueryNormalizeDefaults(t *testing.T) {
	q := ListQuery{}.Normalize()
	if q.Filter != FilterAll || q.SortBy != SortByOrder || q.Direction != SortAsc {
		t.Fatalf("unexpected defaults: %+v", q)
	}

	explicit := ListQuery{Filter: FilterCompleted, SortBy: SortByTitle, Direction: SortDesc}.Normalize()
	if explicit.Filter != FilterCompleted || explicit.SortBy != SortByTitle || explicit.Direction != SortDesc {
		t.Fatalf("normalize must not override explicit selectors: %+v", explicit)
	}
}

func TestSelectorValidation(t *testing.T) {
	if StatusFilter("done").Valid() {
		t.Fatal("unknown filter accepted")
	}
	if SortKey("priority").Valid() {
		t.Fatal("unknown sort key accepted")
	}
	if SortDirection("up").Valid() {
		t.Fatal("unknown direction accepted")
	}
	if !FilterActive.Valid() || !SortByUpdatedAt.Valid() || !SortDesc.Valid() {
		t.Fatal("known selector rejected")
	}
}
