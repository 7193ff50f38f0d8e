package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var (
	ErrNotFound            = repository.ErrNotFound
	ErrConcurrencyConflict = repository.ErrConcurrencyConflict
)

// TaskStore is the persistence the service needs. *repository.TaskRepository
// implements it.
type TaskStore interface {
	List(ctx context.Context, completed *bool) ([]model.TaskItem, error)
	FindByID(ctx context.Context, id uint) (*model.TaskItem, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, task *model.TaskItem) error
	Update(ctx context.Context, task *model.TaskItem) error
	Delete(ctx context.Context, id uint) error
}

// TaskService translates between the wire shapes and stored tasks.
type TaskService struct {
	store TaskStore
	log   logrus.FieldLogger
}

func NewTaskService(store TaskStore, log logrus.FieldLogger) *TaskService {
	return &TaskService{store: store, log: log.WithField("component", "task_service")}
}

// List returns every task, or only those whose completion flag equals
// *completed.
func (s *TaskService) List(ctx context.Context, completed *bool) ([]dto.TaskItem, error) {
	tasks, err := s.store.List(ctx, completed)
	if err != nil {
		return nil, err
	}
	return dto.FromModels(tasks), nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (dto.TaskItem, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return dto.TaskItem{}, err
	}
	return dto.FromModel(*task), nil
}

// Create stores a new, not yet completed task. Priority text that names no
// level leaves the task at PriorityLow.
func (s *TaskService) Create(ctx context.Context, input dto.CreateTaskItem) (dto.TaskItem, error) {
	task := model.TaskItem{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate.Ptr(),
		IsCompleted: false,
	}

	if p, err := model.ParsePriority(input.Priority); err == nil {
		task.Priority = p
	} else {
		s.log.WithField("priority", input.Priority).Warn("unrecognised priority on create, using default")
	}

	if err := s.store.Create(ctx, &task); err != nil {
		return dto.TaskItem{}, err
	}

	s.log.WithField("task", task.ID).Debug("task created")
	return dto.FromModel(task), nil
}

// Update replaces title, description, completion and due date. Priority is
// replaced only when the text names a level; otherwise the stored one stays.
func (s *TaskService) Update(ctx context.Context, id uint, input dto.UpdateTaskItem) error {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.IsCompleted = input.IsCompleted
	task.DueDate = input.DueDate.Ptr()

	if p, err := model.ParsePriority(input.Priority); err == nil {
		task.Priority = p
	} else {
		s.log.WithFields(logrus.Fields{"task": id, "priority": input.Priority}).
			Warn("unrecognised priority on update, keeping stored value")
	}

	err = s.store.Update(ctx, task)
	if !errors.Is(err, ErrConcurrencyConflict) {
		return err
	}

	exists, existsErr := s.store.Exists(ctx, id)
	if existsErr != nil {
		return existsErr
	}
	if !exists {
		return ErrNotFound
	}
	s.log.WithField("task", id).Error("task changed concurrently during update")
	return fmt.Errorf("update task %d: %w", id, err)
}

// Delete removes the task permanently.
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("task", id).Debug("task deleted")
	return nil
}
