package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns all tasks, or only those whose completion flag equals
// *completed when it is non-nil.
func (r *TaskRepository) List(ctx context.Context, completed *bool) ([]model.TaskItem, error) {
	tasks := make([]model.TaskItem, 0)
	q := r.db.WithContext(ctx).Model(&model.TaskItem{})
	if completed != nil {
		q = q.Where("is_completed = ?", *completed)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.TaskItem, error) {
	var task model.TaskItem
	err := r.db.WithContext(ctx).First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
}

func (r *TaskRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.TaskItem{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check task %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *model.TaskItem) error {
	if task.Version == 0 {
		task.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update writes every mutable field of task, provided the stored version
// still equals task.Version. Otherwise it returns ErrConcurrencyConflict.
// On success task.Version is advanced to the stored value.
func (r *TaskRepository) Update(ctx context.Context, task *model.TaskItem) error {
	res := r.db.WithContext(ctx).Model(&model.TaskItem{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]any{
			"title":        task.Title,
			"description":  task.Description,
			"is_completed": task.IsCompleted,
			"due_date":     task.DueDate,
			"priority":     task.Priority,
			"version":      gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return fmt.Errorf("update task %d: %w", task.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConcurrencyConflict
	}
	task.Version++
	return nil
}

// Delete removes the task permanently.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.TaskItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks that the underlying database answers.
func (r *TaskRepository) Ping(ctx context.Context) error {
	return Ping(ctx, r.db)
}
