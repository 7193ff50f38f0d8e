// Package dto holds the wire shapes of tasks and their mapping from the
// stored entity.
package dto

import (
	"time"

	"taskboard/internal/model"
)

// TaskItem is the read view returned by list, get and create.
type TaskItem struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
}

// CreateTaskItem is the body accepted when creating a task.
type CreateTaskItem struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	DueDate     *DueDate `json:"dueDate"`
	Priority    string   `json:"priority"`
}

// UpdateTaskItem is the body accepted when replacing a task's fields.
type UpdateTaskItem struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	IsCompleted bool     `json:"isCompleted"`
	DueDate     *DueDate `json:"dueDate"`
	Priority    string   `json:"priority"`
}

// FromModel builds the read view of a stored task.
func FromModel(t model.TaskItem) TaskItem {
	return TaskItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		Priority:    t.Priority.String(),
	}
}

// FromModels maps a slice of tasks; the result is never nil.
func FromModels(tasks []model.TaskItem) []TaskItem {
	out := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, FromModel(t))
	}
	return out
}

// UpdateFromView returns an update body that rewrites every field of v
// unchanged. Callers tweak the fields they want to change.
func UpdateFromView(v TaskItem) UpdateTaskItem {
	return UpdateTaskItem{
		Title:       v.Title,
		Description: v.Description,
		IsCompleted: v.IsCompleted,
		DueDate:     NewDueDate(v.DueDate),
		Priority:    v.Priority,
	}
}
