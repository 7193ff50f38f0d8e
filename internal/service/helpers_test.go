package service

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

func newTestRepo(t *testing.T) *repository.TaskRepository {
	t.Helper()
	logger, _ := test.NewNullLogger()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.NewDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + name + "?mode=memory&cache=shared",
	}, logger)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewTaskRepository(db)
}

func newTestService(t *testing.T) (*TaskService, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewTaskService(newTestRepo(t), logger), hook
}

// conflictStore fails the next Update with a concurrency conflict after
// running interfere, which simulates a concurrent writer.
type conflictStore struct {
	*repository.TaskRepository
	interfere func(ctx context.Context, task *model.TaskItem)
	existsErr error
}

func (s *conflictStore) Update(ctx context.Context, task *model.TaskItem) error {
	if s.interfere != nil {
		s.interfere(ctx, task)
	}
	return s.TaskRepository.Update(ctx, task)
}

func (s *conflictStore) Exists(ctx context.Context, id uint) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.TaskRepository.Exists(ctx, id)
}

func strPtr(s string) *string { return &s }
