package dto

import (
	"encoding/json"
	"testing"
	"time"

	"taskboard/internal/model"
)

func TestFromModelEmitsPriorityName(t *testing.T) {
	desc := "two litres"
	due := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	view := FromModel(model.TaskItem{
		ID:          4,
		Title:       "Buy milk",
		Description: &desc,
		DueDate:     &due,
		Priority:    model.PriorityHigh,
		Version:     3,
	})
	if view.ID != 4 || view.Title != "Buy milk" || view.Priority != "High" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Description == nil || *view.Description != desc {
		t.Fatalf("description not carried over: %+v", view.Description)
	}
	if view.DueDate == nil || !view.DueDate.Equal(due) {
		t.Fatalf("due date not carried over: %v", view.DueDate)
	}
}

func TestFromModelsNeverNil(t *testing.T) {
	out := FromModels(nil)
	if out == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("expected [], got %s", b)
	}
}

func TestReadViewJSONShape(t *testing.T) {
	b, err := json.Marshal(TaskItem{ID: 1, Title: "t", Priority: "Low"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"title":"t","description":null,"isCompleted":false,"dueDate":null,"priority":"Low"}`
	if string(b) != want {
		t.Fatalf("unexpected JSON:\n got %s\nwant %s", b, want)
	}
}

func TestDueDateAcceptedLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2025-11-30T10:20:30Z"`:      time.Date(2025, 11, 30, 10, 20, 30, 0, time.UTC),
		`"2025-11-30T10:20:30+02:00"`: time.Date(2025, 11, 30, 8, 20, 30, 0, time.UTC),
		`"2025-11-30T10:20:30"`:       time.Date(2025, 11, 30, 10, 20, 30, 0, time.UTC),
		`"2025-11-30"`:                time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var in CreateTaskItem
		if err := json.Unmarshal([]byte(`{"dueDate":`+raw+`}`), &in); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if in.DueDate == nil || !in.DueDate.Equal(want) {
			t.Fatalf("decode %s: got %v, want %v", raw, in.DueDate, want)
		}
	}
}

func TestDueDateNullAndInvalid(t *testing.T) {
	var in UpdateTaskItem
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &in); err != nil {
		t.Fatalf("decode null: %v", err)
	}
	if in.DueDate.Ptr() != nil {
		t.Fatalf("expected nil due date, got %v", in.DueDate)
	}
	if err := json.Unmarshal([]byte(`{"dueDate":"tomorrow"}`), &in); err == nil {
		t.Fatalf("expected error for unparseable due date")
	}
	if err := json.Unmarshal([]byte(`{"dueDate":20251130}`), &in); err == nil {
		t.Fatalf("expected error for numeric due date")
	}
}

func TestUpdateFromViewKeepsFields(t *testing.T) {
	due := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	upd := UpdateFromView(TaskItem{ID: 9, Title: "x", IsCompleted: true, DueDate: &due, Priority: "Medium"})
	if upd.Title != "x" || !upd.IsCompleted || upd.Priority != "Medium" {
		t.Fatalf("unexpected update body: %+v", upd)
	}
	if got := upd.DueDate.Ptr(); got == nil || !got.Equal(due) {
		t.Fatalf("due date lost: %v", got)
	}
}
